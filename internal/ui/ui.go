// Package ui is the Fyne front end: the prayer times window, the Qibla view,
// the settings dialog, and the system tray integration.
package ui

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/location"
	"github.com/tartampluch/go-salat/internal/notify"
	"github.com/tartampluch/go-salat/internal/prayer"
	"github.com/tartampluch/go-salat/internal/qibla"
	"github.com/tartampluch/go-salat/internal/service"
)

//go:embed Icon.png
var appIconData []byte

// GoSalatApp encapsulates the UI state, preferences, and background logic.
type GoSalatApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Service *service.Service
	Clock   prayer.Clock // Injected clock for testability (e.g. mocking time travel)
	Sensor  qibla.SensorStream

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TrayExportItem   *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	settingsWindow fyne.Window
	stopCompass    func()

	// Main window widgets, rebuilt in place on refresh.
	hijriLabel    *widget.Label
	timeRows      [6]*timeRow
	nextLabel     *widget.Label
	retryButton   *widget.Button
	qiblaBearing  *widget.Label
	qiblaDistance *widget.Label
	qiblaGuide    *widget.Label
}

// NewGoSalatApp constructs the application and wires dependencies.
func NewGoSalatApp(a fyne.App, ctx context.Context, svc *service.Service, clock prayer.Clock) *GoSalatApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	if clock == nil {
		clock = prayer.RealClock{}
	}
	return &GoSalatApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Service:            svc,
		Clock:              clock,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run launches the application services and the main UI loop.
func (app *GoSalatApp) Run() {
	app.SetupI18n()
	app.Service.Summary = func(n prayer.Name) string { return app.PrayerLabel(n) }
	app.Service.Scheduler.Messages = app.buildNotifMessages()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.buildMainWindow()
	app.startCompass()

	go app.backgroundWorker()
	app.App.Run()
}

// setupTrayMenu constructs the system tray menu.
func (app *GoSalatApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.Window.Show()
		app.Window.RequestFocus()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performRefresh(true)
	})

	app.TrayExportItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuExport), func() {
		go app.performExport()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TrayExportItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *GoSalatApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TrayExportItem.Label = app.GetMsg(config.TKeyMenuExport)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker drives the minute tick (display updates) and the daily
// notification maintenance.
func (app *GoSalatApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performRefresh(false)

	ticker := time.NewTicker(config.DefaultMinuteTick)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, config.DefaultMinuteTick)

	currentDay := prayer.DateKey(app.Clock.Now())

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-ticker.C:
			// The scheduler's own guard makes this a no-op after the first
			// successful pass of the day.
			if err := app.Service.DailyMaintenance(app.Ctx); err != nil &&
				!errors.Is(err, location.ErrUnavailable) {
				log.Error(config.MsgPassFailed, config.LogKeyError, err)
			}

			if day := prayer.DateKey(app.Clock.Now()); day != currentDay {
				currentDay = day
				app.performRefresh(false)
				continue
			}
			app.updateNextDisplay()
		}
	}
}

// performRefresh recomputes the schedule and redraws everything. Manual
// refreshes force recomputation and confirm with a notification.
func (app *GoSalatApp) performRefresh(manual bool) {
	slog.Info(config.MsgRefreshReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	var (
		day prayer.Schedule
		err error
	)
	if manual {
		day, err = app.Service.Refresh(app.Ctx)
	} else {
		day, err = app.Service.CurrentSchedule(app.Ctx)
	}
	if err != nil {
		if errors.Is(err, location.ErrUnavailable) {
			app.showLocationMissing()
			return
		}
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}

	app.renderDay(day)
	app.updateNextDisplay()
	app.updateQiblaView()

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyMenuRefresh)))
	}
}

// updateNextDisplay refreshes the countdown label and the tray status.
func (app *GoSalatApp) updateNextDisplay() {
	next, err := app.Service.Next(app.Ctx)
	if err != nil {
		app.setTrayStatus(app.GetMsg(config.TKeyTrayNoData))
		return
	}

	now := app.Clock.Now()
	arabic := app.Language() == "ar"
	clock := prayer.FormatClock(next.Event.Time, arabic)

	name := app.PrayerLabel(next.Event.Name)
	if next.Tomorrow {
		name = app.GetMsg(config.TKeyTomorrowFajr)
		clock = app.GetMsgData(config.TKeyTomorrowPrefix, map[string]interface{}{
			"Time": clock,
		})
	}
	label := app.GetMsgData(config.TKeyNextPrayer, map[string]interface{}{
		"Name": name,
	})

	if app.nextLabel != nil {
		app.nextLabel.SetText(label + " · " + clock + " · " + app.remainingLabel(next, now))
	}

	app.setTrayStatus(app.GetMsgData(config.TKeyTrayStatus, map[string]interface{}{
		"Prayer": name,
		"Time":   clock,
	}))

	app.markNextRow(next)
}

// remainingLabel renders the time left until the event.
func (app *GoSalatApp) remainingLabel(next prayer.Next, now time.Time) string {
	hours, minutes := prayer.SplitHoursMinutes(next.Remaining(now))
	switch {
	case hours == 0 && minutes == 0:
		return app.GetMsg(config.TKeyRemainingNow)
	case hours == 0:
		return app.GetMsgData(config.TKeyRemainingM, map[string]interface{}{
			"Minutes": minutes,
		})
	default:
		return app.GetMsgData(config.TKeyRemainingHM, map[string]interface{}{
			"Hours":   hours,
			"Minutes": minutes,
		})
	}
}

// setTrayStatus updates the top tray menu item.
func (app *GoSalatApp) setTrayStatus(label string) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// performExport writes today's schedule as an .ics file and confirms via
// notification.
func (app *GoSalatApp) performExport() {
	dir := app.Preferences.String(config.PrefExportDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error(config.ErrICalEncode,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			return
		}
		dir = home
	}

	path, err := app.Service.ExportICS(app.Ctx, dir)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.App.SendNotification(fyne.NewNotification(config.AppName, path))
}

// startCompass begins streaming resolved readings into the Qibla view when a
// sensor is available. Desktops usually have none; the view then shows the
// static bearing only.
func (app *GoSalatApp) startCompass() {
	if app.Sensor == nil {
		return
	}
	stop, err := app.Service.SubscribeCompass(app.Ctx, app.Sensor, app.onCompassReading)
	if err != nil {
		slog.Warn(config.ErrSensorGone,
			config.LogKeyComponent, config.CompCompass,
			config.LogKeyError, err)
		return
	}
	app.stopCompass = stop
}

// buildNotifMessages localizes the notification content produced by the
// scheduler.
func (app *GoSalatApp) buildNotifMessages() notify.Messages {
	return notify.Messages{
		Exact: func(n prayer.Name) (string, string) {
			name := app.PrayerLabel(n)
			return app.GetMsgData(config.TKeyNotifExactTitle, map[string]interface{}{"Name": name}),
				app.GetMsgData(config.TKeyNotifExactBody, map[string]interface{}{"Name": name})
		},
		Before: func(n prayer.Name, minutes int) (string, string) {
			name := app.PrayerLabel(n)
			return app.GetMsgData(config.TKeyNotifBeforeTitle, map[string]interface{}{"Name": name}),
				app.GetMsgData(config.TKeyNotifBeforeBody, map[string]interface{}{
					"Name":    name,
					"Minutes": minutes,
				})
		},
	}
}

// PrayerLabel returns the localized display name of a prayer event.
func (app *GoSalatApp) PrayerLabel(n prayer.Name) string {
	return app.GetMsg(prayerTKey(n))
}

// prayerTKey maps an event name to its translation key.
func prayerTKey(n prayer.Name) string {
	switch n {
	case prayer.Fajr:
		return config.TKeyPrayerFajr
	case prayer.Sunrise:
		return config.TKeyPrayerSunrise
	case prayer.Dhuhr:
		return config.TKeyPrayerDhuhr
	case prayer.Asr:
		return config.TKeyPrayerAsr
	case prayer.Maghrib:
		return config.TKeyPrayerMaghrib
	case prayer.Isha:
		return config.TKeyPrayerIsha
	default:
		return string(n)
	}
}
