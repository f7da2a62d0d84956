package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Salat/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go Salat"
	AppID          = "com.github.tartampluch.go-salat"
	KeyringService = "com.github.tartampluch.go-salat"
	LogFileName    = "app.log"
	IconFile       = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Preferences Keys
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600

	PrefLanguage    = "language"
	PrefCalcMethod  = "calc_method"
	PrefGeocoderURL = "geocoder_url"
	PrefExportDir   = "export_dir"
	PrefLastRun     = "last_run_version"

	// JSON document keys used through the key-value store.
	StoreKeyLocation = "location"
	StoreKeySettings = "notification_settings"
	StoreKeySchedule = "prayer_schedule_cache"
	StoreKeyLastDay  = "last_scheduled_date"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "ar"}

// -----------------------------------------------------------------------------
// Calculation Methods
// -----------------------------------------------------------------------------

const (
	MethodEgyptian  = "Egyptian"
	MethodUmmAlQura = "UmmAlQura"
	MethodMWL       = "MuslimWorldLeague"

	// DefaultMethod is used when the configured method name is unknown.
	DefaultMethod = MethodEgyptian
)

// CalculationMethods lists the selectable method names, in menu order.
var CalculationMethods = []string{MethodEgyptian, MethodUmmAlQura, MethodMWL}

// -----------------------------------------------------------------------------
// Scheduling Defaults & Limits
// -----------------------------------------------------------------------------

const (
	DefaultNotifEnabled    = true
	DefaultNotifBefore     = true
	DefaultNotifExact      = true
	DefaultAzanSound       = true
	DefaultPrePrayerMin    = 5
	MaxPrePrayerMin        = 120
	DefaultMinuteTick      = 1 * time.Minute
	ScheduleWindowMax      = 365 * 24 * time.Hour
	SchedulePastGrace      = 1 * time.Second
	RelocationThresholdKm  = 1.0
	NotificationIDExact    = "prayer_%s_exact"
	NotificationIDBefore   = "prayer_%s_before"
	DateKeyLayout          = "2006-01-02"
	DefaultGeocodeTimeout  = 15 * time.Second
	MaxGeocodeResponseSize = 1 * 1024 * 1024 // 1MB
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinSettings   = "win_settings_title"
	TKeyTabTimes      = "tab_times"
	TKeyTabQibla      = "tab_qibla"
	TKeyMenuRefresh   = "menu_refresh"
	TKeyMenuSettings  = "menu_settings"
	TKeyMenuExport    = "menu_export"
	TKeyTrayStatus    = "tray_status" // Requires Prayer + Time
	TKeyTrayNoData    = "tray_status_none"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblMethod     = "lbl_calc_method"
	TKeyHelpMethod    = "help_calc_method"
	TKeyLblLatitude   = "lbl_latitude"
	TKeyLblLongitude  = "lbl_longitude"
	TKeyLblPlace      = "lbl_place"
	TKeyHelpPlace     = "help_place"
	TKeyLblLocation   = "lbl_location"
	TKeyLblGeocoder   = "lbl_geocoder_url"
	TKeyHelpGeocoder  = "help_geocoder_url"
	TKeyLblAPIKey     = "lbl_api_key"
	TKeyBtnLookup     = "btn_lookup"
	TKeyBtnImport     = "btn_import_places"
	TKeyLblNotif      = "lbl_notifications"
	TKeyLblEnabled    = "lbl_notif_enabled"
	TKeyLblBefore     = "lbl_notif_before"
	TKeyLblExact      = "lbl_notif_exact"
	TKeyLblAzan       = "lbl_azan_sound"
	TKeyLblPreMin     = "lbl_pre_minutes"
	TKeyLblMinutes    = "lbl_minutes_suffix"
	TKeyLblGeneral    = "lbl_general"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
	TKeyErrLocMissing = "err_location_missing"
	TKeyErrLatRange   = "err_latitude_range"
	TKeyErrLngRange   = "err_longitude_range"
	TKeyBtnRetryLoc   = "btn_retry_location"

	// Prayer display names.
	TKeyPrayerFajr     = "prayer_fajr"
	TKeyPrayerSunrise  = "prayer_sunrise"
	TKeyPrayerDhuhr    = "prayer_dhuhr"
	TKeyPrayerAsr      = "prayer_asr"
	TKeyPrayerMaghrib  = "prayer_maghrib"
	TKeyPrayerIsha     = "prayer_isha"
	TKeyTomorrowFajr   = "prayer_tomorrow_fajr"
	TKeyTomorrowPrefix = "tomorrow_prefix" // Requires Time
	TKeyRemainingHM    = "remaining_hm"    // Requires Hours, Minutes
	TKeyRemainingM     = "remaining_m"     // Requires Minutes
	TKeyRemainingNow   = "remaining_now"
	TKeyNextPrayer     = "lbl_next_prayer" // Requires Name

	// Notification content.
	TKeyNotifExactTitle  = "notif_exact_title"  // Requires Name
	TKeyNotifExactBody   = "notif_exact_body"   // Requires Name
	TKeyNotifBeforeTitle = "notif_before_title" // Requires Name
	TKeyNotifBeforeBody  = "notif_before_body"  // Requires Name, Minutes

	// Qibla guidance.
	TKeyQiblaAligned = "qibla_aligned"
	TKeyQiblaClose   = "qibla_close"
	TKeyQiblaLeft    = "qibla_turn_left"  // Requires Degrees
	TKeyQiblaRight   = "qibla_turn_right" // Requires Degrees
	TKeyQiblaCalib   = "qibla_calibrating"
	TKeyQiblaBearing = "qibla_bearing" // Requires Degrees
	TKeyQiblaDist    = "qibla_distance_km"
)

// -----------------------------------------------------------------------------
// Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage = "en"

	// ICS export
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Salat//Engine//EN"
	ICalCalName   = "Prayer Times"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gosalat"
	FormatUID     = "%s-%s@%s" // date, prayer, domain

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	ExportFileName  = "prayer-times-%s.ics" // date

	// vCard places import
	VCardGEO   = "GEO"
	VCardFN    = "FN"
	ExtVCF     = ".vcf"
	ExtVCard   = ".vcard"
	GeoURIPref = "geo:"

	// Geocoder query contract (Nominatim-style search endpoint).
	QueryParamQ      = "q"
	QueryParamFormat = "format"
	QueryParamLimit  = "limit"
	QueryParamKey    = "key"
	QueryValueJSON   = "json"
	QueryValueLimit  = "1"

	// KeyringAPIKeyUser is the account name under which the geocoder API
	// key is stored in the system keyring.
	KeyringAPIKeyUser = "geocoder_api_key"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"

	HeaderUserAgent = "User-Agent"
	HeaderAccept    = "Accept"
	MimeJSON        = "application/json"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLatitudeRange    = "input error: latitude out of range [-90, 90]"
	ErrLongitudeRange   = "input error: longitude out of range [-180, 180]"
	ErrDateZero         = "input error: calendar date is zero"
	ErrNoEvents         = "no prayer events available"
	ErrCancelFailed     = "cancelling previous notifications failed"
	ErrLocUnavailable   = "location unavailable"
	ErrSensorGone       = "compass sensor unavailable"
	ErrGeocodeURL       = "invalid geocoder URL structure"
	ErrGeocodeProtocol  = "unsupported protocol scheme (http/https only)"
	ErrGeocodeStatus    = "geocoder returned unexpected status"
	ErrGeocodeEmpty     = "geocoder returned no results"
	ErrGeocodeDecode    = "failed to decode geocoder response"
	ErrPlacesOpen       = "failed to open places file"
	ErrPlacesNone       = "no places with coordinates found"
	ErrStoreDecode      = "failed to decode stored value"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	MsgLogWarning       = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Fallback Strings (used when no localizer is wired, e.g. headless tests)
// -----------------------------------------------------------------------------

const (
	FallbackExactTitle  = "Prayer time: %s"
	FallbackExactBody   = "It is now time for %s prayer."
	FallbackBeforeTitle = "Upcoming prayer: %s"
	FallbackBeforeBody  = "%s prayer begins in %d minutes."
	FallbackTrayLabel   = "Go Salat"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgComputeDone     = "Prayer times computed"
	MsgRefreshReq      = "Schedule refresh requested"
	MsgComputeFallback = "Astronomical computation degraded, using fixed fallback schedule"
	MsgCacheHit        = "Using cached prayer times"
	MsgCacheStale      = "Cached prayer times stale, recomputing"
	MsgPassSkipped     = "Daily scheduling already performed today, skipping"
	MsgPassStarted     = "Notification scheduling pass started"
	MsgPassDone        = "Notification scheduling pass finished"
	MsgPassFailed      = "Notification scheduling pass aborted"
	MsgSubmitFailed    = "Failed to schedule notification"
	MsgSubmitDropped   = "Notification outside scheduling window, dropped"
	MsgCancelled       = "Cancelled all scheduled prayer notifications"
	MsgGeocodeLookup   = "Geocoder lookup"
	MsgPlacesImported  = "Places imported"
	MsgPlaceSkipped    = "Skipping place without usable coordinates"
	MsgLocationSet     = "Location updated"
	MsgSettingsApplied = "Notification settings applied"
	MsgWorkerStart     = "Background worker started"
	MsgWorkerStop      = "Worker stopping due to context cancellation"
	MsgExportDone      = "Prayer calendar exported"
	MsgCompassStart    = "Compass subscription started"
	MsgCompassStop     = "Compass subscription stopped"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgKeyringMiss     = "API key retrieval failed (might be empty)"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyMethod    = "method"
	LogKeyLatitude  = "latitude"
	LogKeyLongitude = "longitude"
	LogKeyPlace     = "place"
	LogKeyDate      = "date"
	LogKeyTrigger   = "trigger_at"
	LogKeyID        = "identifier"
	LogKeyBuilt     = "built"
	LogKeyScheduled = "scheduled"
	LogKeyDropped   = "dropped"
	LogKeyFailed    = "failed"
	LogKeyCount     = "count"
	LogKeyFallback  = "fallback"
	LogKeyDuration  = "duration_ms"
	LogKeyValue     = "value"
	LogKeyManual    = "manual"
	LogKeyInterval  = "interval"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompAstro    = "astro"
	CompNotify   = "notify"
	CompLocation = "location"
	CompService  = "service"
	CompCompass  = "compass"
	CompMain     = "main"
	CompWorker   = "worker"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	MainWinWidth        = 420
	MainWinHeight       = 560
)
