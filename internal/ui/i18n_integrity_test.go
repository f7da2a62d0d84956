package ui_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salat/internal/config"
)

// configTKeys lists every translation key defined in config.go.
var configTKeys = []string{
	config.TKeyWinTitle,
	config.TKeyWinSettings,
	config.TKeyTabTimes,
	config.TKeyTabQibla,
	config.TKeyMenuRefresh,
	config.TKeyMenuSettings,
	config.TKeyMenuExport,
	config.TKeyTrayStatus,
	config.TKeyTrayNoData,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblMethod,
	config.TKeyHelpMethod,
	config.TKeyLblLatitude,
	config.TKeyLblLongitude,
	config.TKeyLblPlace,
	config.TKeyHelpPlace,
	config.TKeyLblLocation,
	config.TKeyLblGeocoder,
	config.TKeyHelpGeocoder,
	config.TKeyLblAPIKey,
	config.TKeyBtnLookup,
	config.TKeyBtnImport,
	config.TKeyLblNotif,
	config.TKeyLblEnabled,
	config.TKeyLblBefore,
	config.TKeyLblExact,
	config.TKeyLblAzan,
	config.TKeyLblPreMin,
	config.TKeyLblMinutes,
	config.TKeyLblGeneral,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyLblFooter,
	config.TKeyErrLocMissing,
	config.TKeyErrLatRange,
	config.TKeyErrLngRange,
	config.TKeyBtnRetryLoc,
	config.TKeyPrayerFajr,
	config.TKeyPrayerSunrise,
	config.TKeyPrayerDhuhr,
	config.TKeyPrayerAsr,
	config.TKeyPrayerMaghrib,
	config.TKeyPrayerIsha,
	config.TKeyTomorrowFajr,
	config.TKeyTomorrowPrefix,
	config.TKeyRemainingHM,
	config.TKeyRemainingM,
	config.TKeyRemainingNow,
	config.TKeyNextPrayer,
	config.TKeyNotifExactTitle,
	config.TKeyNotifExactBody,
	config.TKeyNotifBeforeTitle,
	config.TKeyNotifBeforeBody,
	config.TKeyQiblaAligned,
	config.TKeyQiblaClose,
	config.TKeyQiblaLeft,
	config.TKeyQiblaRight,
	config.TKeyQiblaCalib,
	config.TKeyQiblaBearing,
	config.TKeyQiblaDist,
}

func loadLocale(t *testing.T, lang string) map[string]interface{} {
	t.Helper()

	content, err := os.ReadFile("locales/active." + lang + ".json")
	require.NoError(t, err, "Must load locale file for %s", lang)

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")
	return jsonMap
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in every locale JSON file.
func TestI18nIntegrity(t *testing.T) {
	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			jsonMap := loadLocale(t, lang)

			for _, key := range configTKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}

			// Check for orphan keys in JSON (keys that exist in JSON but not in Go)
			defined := make(map[string]bool, len(configTKeys))
			for _, k := range configTKeys {
				defined[k] = true
			}
			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !defined[jsonKey] {
					t.Logf("Warning: Key '%s' exists in JSON but is not defined in config.go (might be unused)", jsonKey)
				}
			}
		})
	}
}

// TestI18nParity ensures every language carries the same key set as English.
func TestI18nParity(t *testing.T) {
	en := loadLocale(t, "en")

	for _, lang := range config.SupportedLanguages {
		if lang == "en" {
			continue
		}
		t.Run(lang, func(t *testing.T) {
			other := loadLocale(t, lang)
			for key := range en {
				_, exists := other[key]
				assert.Truef(t, exists, "Key '%s' missing in active.%s.json", key, lang)
			}
			for key := range other {
				_, exists := en[key]
				assert.Truef(t, exists, "Key '%s' in active.%s.json has no English counterpart", key, lang)
			}
		})
	}
}
