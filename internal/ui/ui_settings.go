package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/location"
	"github.com/tartampluch/go-salat/internal/notify"
	"github.com/tartampluch/go-salat/internal/qibla"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	methodSelect  *widget.Select
	placeEntry    *widget.Entry
	latEntry      *DecimalEntry
	lngEntry      *DecimalEntry
	geocoderEntry *widget.Entry
	apiKeyEntry   *widget.Entry
	checkEnabled  *widget.Check
	checkBefore   *widget.Check
	checkExact    *widget.Check
	checkAzan     *widget.Check
	preMinEntry   *DecimalEntry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *GoSalatApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	// --- 1. General Section (Language & Method) ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.methodSelect = widget.NewSelect(config.CalculationMethods, nil)
	sw.methodSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefCalcMethod, config.DefaultMethod))

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemMethod := widget.NewFormItem(app.GetMsg(config.TKeyLblMethod), sw.methodSelect)
	itemMethod.HintText = app.GetMsg(config.TKeyHelpMethod)

	generalForm := widget.NewForm(itemLang, itemMethod)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- 2. Location Section ---
	locationCard := app.buildLocationCard(w, sw)

	// --- 3. Notification Section ---
	notifCard := app.buildNotifCard(sw)

	// --- Actions ---
	saveAction := func() {
		if err := sw.latEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := sw.lngEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerText := fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version)
	footerLabel := widget.NewLabel(footerText)
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		locationCard,
		notifCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// buildLocationCard constructs the location UI: manual coordinates, the
// geocoder lookup, and the vCard places import.
func (app *GoSalatApp) buildLocationCard(w fyne.Window, sw *settingsWidgets) *widget.Card {
	current, _ := app.Service.Provider.Current(app.Ctx)

	sw.placeEntry = widget.NewEntry()
	sw.placeEntry.SetText(current.Name)

	sw.latEntry = NewDecimalEntry()
	sw.lngEntry = NewDecimalEntry()
	if current.Name != "" || current.Coordinates != (qibla.Coordinates{}) {
		sw.latEntry.SetText(strconv.FormatFloat(current.Coordinates.Latitude, 'f', 4, 64))
		sw.lngEntry.SetText(strconv.FormatFloat(current.Coordinates.Longitude, 'f', 4, 64))
	}

	sw.latEntry.Validator = func(s string) error {
		if s == "" {
			return nil // keeps the stored location
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < -90 || v > 90 {
			return errors.New(app.GetMsg(config.TKeyErrLatRange))
		}
		return nil
	}
	sw.lngEntry.Validator = func(s string) error {
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < -180 || v > 180 {
			return errors.New(app.GetMsg(config.TKeyErrLngRange))
		}
		return nil
	}

	sw.geocoderEntry = widget.NewEntry()
	sw.geocoderEntry.SetText(app.Preferences.String(config.PrefGeocoderURL))

	sw.apiKeyEntry = widget.NewPasswordEntry()
	if key, err := keyring.Get(config.KeyringService, config.KeyringAPIKeyUser); err == nil {
		sw.apiKeyEntry.SetText(key)
	} else {
		slog.Debug(config.MsgKeyringMiss,
			config.LogKeyComponent, config.CompUISet,
			config.LogKeyError, err)
	}

	lookupBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnLookup), theme.SearchIcon(), func() {
		go app.performLookup(sw, w)
	})

	importBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.FolderOpenIcon(), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			defer func() { _ = r.Close() }()

			places, err := location.ImportPlaces(r)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			app.showPlacePicker(places, sw, w)
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemPlace := widget.NewFormItem(app.GetMsg(config.TKeyLblPlace),
		container.NewBorder(nil, nil, nil, lookupBtn, sw.placeEntry))
	itemPlace.HintText = app.GetMsg(config.TKeyHelpPlace)

	itemLat := widget.NewFormItem(app.GetMsg(config.TKeyLblLatitude), sw.latEntry)
	itemLng := widget.NewFormItem(app.GetMsg(config.TKeyLblLongitude), sw.lngEntry)

	itemGeocoder := widget.NewFormItem(app.GetMsg(config.TKeyLblGeocoder), sw.geocoderEntry)
	itemGeocoder.HintText = app.GetMsg(config.TKeyHelpGeocoder)

	itemKey := widget.NewFormItem(app.GetMsg(config.TKeyLblAPIKey), sw.apiKeyEntry)

	form := widget.NewForm(itemPlace, itemLat, itemLng, itemGeocoder, itemKey)

	return widget.NewCard(app.GetMsg(config.TKeyLblLocation), "",
		container.NewVBox(form, importBtn))
}

// buildNotifCard constructs the notification settings UI.
func (app *GoSalatApp) buildNotifCard(sw *settingsWidgets) *widget.Card {
	set := app.Service.Settings()

	sw.checkEnabled = widget.NewCheck(app.GetMsg(config.TKeyLblEnabled), nil)
	sw.checkEnabled.Checked = set.Enabled

	sw.checkExact = widget.NewCheck(app.GetMsg(config.TKeyLblExact), nil)
	sw.checkExact.Checked = set.NotifyAtPrayerTime

	sw.checkBefore = widget.NewCheck(app.GetMsg(config.TKeyLblBefore), nil)
	sw.checkBefore.Checked = set.NotifyBeforePrayer

	sw.checkAzan = widget.NewCheck(app.GetMsg(config.TKeyLblAzan), nil)
	sw.checkAzan.Checked = set.AzanSoundEnabled

	sw.preMinEntry = NewDecimalEntry()
	sw.preMinEntry.SetText(strconv.Itoa(set.PrePrayerMinutes))

	row := container.NewBorder(nil, nil,
		widget.NewLabel(app.GetMsg(config.TKeyLblPreMin)),
		widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)),
		sw.preMinEntry)

	toggleDetails := func(bool) {
		enabled := sw.checkEnabled.Checked
		for _, c := range []*widget.Check{sw.checkExact, sw.checkBefore, sw.checkAzan} {
			if enabled {
				c.Enable()
			} else {
				c.Disable()
			}
		}
	}
	sw.checkEnabled.OnChanged = toggleDetails
	toggleDetails(set.Enabled)

	return widget.NewCard(app.GetMsg(config.TKeyLblNotif), "", container.NewVBox(
		sw.checkEnabled,
		sw.checkExact,
		sw.checkBefore,
		sw.checkAzan,
		row,
	))
}

// performLookup resolves the place entry through the geocoder and fills the
// coordinate fields.
func (app *GoSalatApp) performLookup(sw *settingsWidgets, w fyne.Window) {
	baseURL := sw.geocoderEntry.Text
	if baseURL == "" {
		dialog.ShowError(errors.New(config.ErrGeocodeURL), w)
		return
	}

	place, err := location.NewHTTPGeocoder(baseURL).Lookup(app.Ctx, sw.placeEntry.Text, sw.apiKeyEntry.Text)
	if err != nil {
		dialog.ShowError(err, w)
		return
	}

	sw.placeEntry.SetText(place.Name)
	sw.latEntry.SetText(strconv.FormatFloat(place.Coordinates.Latitude, 'f', 4, 64))
	sw.lngEntry.SetText(strconv.FormatFloat(place.Coordinates.Longitude, 'f', 4, 64))
}

// showPlacePicker lets the user pick one of the imported places.
func (app *GoSalatApp) showPlacePicker(places []location.Place, sw *settingsWidgets, w fyne.Window) {
	names := make([]string, len(places))
	for i, p := range places {
		names[i] = p.Name
	}

	sel := widget.NewSelect(names, nil)
	sel.SetSelectedIndex(0)

	dialog.ShowCustomConfirm(app.GetMsg(config.TKeyBtnImport),
		app.GetMsg(config.TKeyBtnSave), app.GetMsg(config.TKeyBtnCancel), sel,
		func(ok bool) {
			if !ok || sel.SelectedIndex() < 0 {
				return
			}
			p := places[sel.SelectedIndex()]
			sw.placeEntry.SetText(p.Name)
			sw.latEntry.SetText(strconv.FormatFloat(p.Coordinates.Latitude, 'f', 4, 64))
			sw.lngEntry.SetText(strconv.FormatFloat(p.Coordinates.Longitude, 'f', 4, 64))
		}, w)
}

// saveSettings persists the form and applies it: one settings write and one
// notification reschedule covering any location change in the same batch.
func (app *GoSalatApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefCalcMethod, sw.methodSelect.Selected)
	app.Preferences.SetString(config.PrefGeocoderURL, sw.geocoderEntry.Text)

	// The API key lives in the system keyring, never in preferences.
	if sw.apiKeyEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, config.KeyringAPIKeyUser, sw.apiKeyEntry.Text); err != nil {
			slog.Error("Failed to save API key to keyring",
				config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	app.Service.SetMethod(sw.methodSelect.Selected)

	// Notification settings: empty minutes falls back to the default offset.
	set := notify.Settings{
		Enabled:            sw.checkEnabled.Checked,
		NotifyAtPrayerTime: sw.checkExact.Checked,
		NotifyBeforePrayer: sw.checkBefore.Checked,
		AzanSoundEnabled:   sw.checkAzan.Checked,
		PrePrayerMinutes:   config.DefaultPrePrayerMin,
	}
	if v, err := strconv.Atoi(sw.preMinEntry.Text); err == nil {
		set.PrePrayerMinutes = v
	}

	// Location: only applied when both coordinates are present and valid.
	var place *location.Place
	if sw.latEntry.Text != "" && sw.lngEntry.Text != "" {
		lat, errLat := strconv.ParseFloat(sw.latEntry.Text, 64)
		lng, errLng := strconv.ParseFloat(sw.lngEntry.Text, 64)
		if errLat == nil && errLng == nil {
			p := location.Place{
				Name:        sw.placeEntry.Text,
				Coordinates: qibla.Coordinates{Latitude: lat, Longitude: lng},
			}
			if p.Name == "" {
				p.Name = p.Coordinates.String()
			}
			place = &p
		}
	}

	// One pass for the whole batch, location change included.
	if err := app.Service.Apply(app.Ctx, set, place); err != nil &&
		!errors.Is(err, location.ErrUnavailable) {
		dialog.ShowError(err, w)
		return
	}

	// Trigger system-wide updates
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	go app.performRefresh(false)

	w.Close()
}
