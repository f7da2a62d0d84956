package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/hijri"
	"github.com/tartampluch/go-salat/internal/prayer"
	"github.com/tartampluch/go-salat/internal/qibla"
)

// timeRow is one line of the times list.
type timeRow struct {
	name *widget.Label
	time *widget.Label
}

// buildMainWindow assembles the main window: the times tab and the Qibla tab.
func (app *GoSalatApp) buildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	w.Resize(fyne.NewSize(config.MainWinWidth, config.MainWinHeight))
	// Closing hides; the app lives in the tray.
	w.SetCloseIntercept(func() { w.Hide() })

	tabs := container.NewAppTabs(
		container.NewTabItem(app.GetMsg(config.TKeyTabTimes), app.buildTimesTab()),
		container.NewTabItem(app.GetMsg(config.TKeyTabQibla), app.buildQiblaTab()),
	)
	w.SetContent(container.NewPadded(tabs))
	w.Show()
}

// buildTimesTab creates the schedule view: Hijri date, the six events, and
// the next-prayer countdown.
func (app *GoSalatApp) buildTimesTab() fyne.CanvasObject {
	app.hijriLabel = widget.NewLabel("")
	app.hijriLabel.Alignment = fyne.TextAlignCenter

	app.nextLabel = widget.NewLabel("")
	app.nextLabel.Alignment = fyne.TextAlignCenter
	app.nextLabel.TextStyle = fyne.TextStyle{Bold: true}

	app.retryButton = widget.NewButton(app.GetMsg(config.TKeyBtnRetryLoc), func() {
		app.ShowSettingsWindow()
	})
	app.retryButton.Hide()

	rows := make([]fyne.CanvasObject, 0, len(prayer.Order)*2)
	for i, name := range prayer.Order {
		row := &timeRow{
			name: widget.NewLabel(app.PrayerLabel(name)),
			time: widget.NewLabel("--:--"),
		}
		row.time.Alignment = fyne.TextAlignTrailing
		app.timeRows[i] = row
		rows = append(rows, row.name, row.time)
	}
	grid := container.NewGridWithColumns(config.LayoutColumnsDouble, rows...)

	return container.NewVBox(
		app.hijriLabel,
		app.nextLabel,
		app.retryButton,
		widget.NewSeparator(),
		grid,
	)
}

// buildQiblaTab creates the Qibla view. Without a compass sensor it shows the
// static bearing and distance for the current location.
func (app *GoSalatApp) buildQiblaTab() fyne.CanvasObject {
	app.qiblaBearing = widget.NewLabel("")
	app.qiblaBearing.Alignment = fyne.TextAlignCenter
	app.qiblaBearing.TextStyle = fyne.TextStyle{Bold: true}

	app.qiblaDistance = widget.NewLabel("")
	app.qiblaDistance.Alignment = fyne.TextAlignCenter

	app.qiblaGuide = widget.NewLabel("")
	app.qiblaGuide.Alignment = fyne.TextAlignCenter

	return container.NewVBox(
		app.qiblaBearing,
		app.qiblaDistance,
		widget.NewSeparator(),
		app.qiblaGuide,
	)
}

// renderDay writes the computed schedule into the times list.
func (app *GoSalatApp) renderDay(day prayer.Schedule) {
	arabic := app.Language() == "ar"

	if app.retryButton != nil {
		app.retryButton.Hide()
	}

	if app.hijriLabel != nil {
		h := hijri.FromTime(app.Clock.Now())
		label := day.Date + " · " + h.String()
		if arabic {
			label = day.Date + " · " + prayer.ToArabicNumerals(h.String())
		}
		app.hijriLabel.SetText(label)
	}

	for i, ev := range day.Events {
		row := app.timeRows[i]
		if row == nil {
			continue
		}
		row.name.SetText(app.PrayerLabel(ev.Name))
		row.time.SetText(prayer.FormatClock(ev.Time, arabic))
		row.time.Refresh()
	}
}

// markNextRow bolds exactly the selected next event's row.
func (app *GoSalatApp) markNextRow(next prayer.Next) {
	day, err := app.Service.CurrentSchedule(app.Ctx)
	if err != nil {
		return
	}
	for i, ev := range day.Events {
		row := app.timeRows[i]
		if row == nil {
			continue
		}
		bold := next.IsNext(ev)
		row.name.TextStyle = fyne.TextStyle{Bold: bold}
		row.time.TextStyle = fyne.TextStyle{Bold: bold}
		row.name.Refresh()
		row.time.Refresh()
	}
}

// showLocationMissing replaces the countdown with a prompt to configure a
// location and reveals the settings shortcut.
func (app *GoSalatApp) showLocationMissing() {
	if app.nextLabel != nil {
		app.nextLabel.SetText(app.GetMsg(config.TKeyErrLocMissing))
	}
	if app.retryButton != nil {
		app.retryButton.Show()
	}
	app.setTrayStatus(app.GetMsg(config.TKeyTrayNoData))
}

// updateQiblaView refreshes the static bearing/distance labels.
func (app *GoSalatApp) updateQiblaView() {
	if app.qiblaBearing == nil {
		return
	}
	bearing, distance, err := app.Service.QiblaInfo(app.Ctx)
	if err != nil {
		app.qiblaBearing.SetText(app.GetMsg(config.TKeyErrLocMissing))
		app.qiblaDistance.SetText("")
		return
	}

	app.qiblaBearing.SetText(app.GetMsgData(config.TKeyQiblaBearing, map[string]interface{}{
		"Degrees": fmt.Sprintf("%.1f", bearing),
	}))
	app.qiblaDistance.SetText(app.GetMsgData(config.TKeyQiblaDist, map[string]interface{}{
		"Km": fmt.Sprintf("%.0f", distance),
	}))
}

// onCompassReading maps live sensor readings onto the guidance label.
func (app *GoSalatApp) onCompassReading(r qibla.Reading) {
	if app.qiblaGuide == nil {
		return
	}
	if r.AlignmentState() == qibla.AlignmentCalibrating {
		app.qiblaGuide.SetText(app.GetMsg(config.TKeyQiblaCalib))
		return
	}

	g := qibla.Guide(r.Heading, r.Bearing)
	switch g.Kind {
	case qibla.GuideFacing:
		app.qiblaGuide.SetText(app.GetMsg(config.TKeyQiblaAligned))
	case qibla.GuideClose:
		app.qiblaGuide.SetText(app.GetMsg(config.TKeyQiblaClose))
	case qibla.GuideTurnLeft:
		app.qiblaGuide.SetText(app.GetMsgData(config.TKeyQiblaLeft, map[string]interface{}{
			"Degrees": g.Degrees,
		}))
	default:
		app.qiblaGuide.SetText(app.GetMsgData(config.TKeyQiblaRight, map[string]interface{}{
			"Degrees": g.Degrees,
		}))
	}
}
