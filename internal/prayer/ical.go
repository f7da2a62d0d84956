package prayer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-salat/internal/config"
)

// ICS renders the day's six events as an iCalendar document so the schedule
// can be opened or subscribed to from any calendar application.
//
// reminder > 0 attaches a DISPLAY alarm that many minutes before each
// notifiable event; Sunrise is listed but never gets an alarm. summary, when
// non-nil, localizes the event titles.
func (s Schedule) ICS(now time.Time, reminder time.Duration, summary func(Name) string) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())

	for _, ev := range s.Events {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID,
			fmt.Sprintf(config.FormatUID, s.Date, string(ev.Name), config.ICalDomain))

		title := string(ev.Name)
		if summary != nil {
			title = summary(ev.Name)
		}
		event.Props.SetText(config.PropSummary, title)

		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDateTime(ev.Time)
		event.Props.Set(dtStart)
		event.Props.Set(dtStamp)

		if reminder > 0 && ev.Name.Notifiable() {
			addAlarm(event, reminder, title)
		}

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, before time.Duration, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param.
	trigger := ical.NewProp(config.PropTrigger)
	trigger.Value = fmt.Sprintf("-PT%dM", int(before.Minutes()))
	alarm.Props.Set(trigger)

	event.Children = append(event.Children, alarm)
}
