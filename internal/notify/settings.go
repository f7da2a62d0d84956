package notify

import "github.com/tartampluch/go-salat/internal/config"

// Settings is the user-controlled notification policy. It is persisted
// across restarts and read on every scheduling pass.
type Settings struct {
	Enabled            bool `json:"enabled"`
	NotifyBeforePrayer bool `json:"notifyBeforePrayer"`
	NotifyAtPrayerTime bool `json:"notifyAtPrayerTime"`
	AzanSoundEnabled   bool `json:"azanSoundEnabled"`
	PrePrayerMinutes   int  `json:"prePrayerMinutes"`
}

// DefaultSettings mirrors the defaults of the original preference set.
func DefaultSettings() Settings {
	return Settings{
		Enabled:            config.DefaultNotifEnabled,
		NotifyBeforePrayer: config.DefaultNotifBefore,
		NotifyAtPrayerTime: config.DefaultNotifExact,
		AzanSoundEnabled:   config.DefaultAzanSound,
		PrePrayerMinutes:   config.DefaultPrePrayerMin,
	}
}

// Normalized clamps the pre-prayer offset into [0, MaxPrePrayerMin].
func (s Settings) Normalized() Settings {
	if s.PrePrayerMinutes < 0 {
		s.PrePrayerMinutes = 0
	}
	if s.PrePrayerMinutes > config.MaxPrePrayerMin {
		s.PrePrayerMinutes = config.MaxPrePrayerMin
	}
	return s
}
