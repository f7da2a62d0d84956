// Package service is the orchestration layer between the UI and the domain
// packages. It owns the cached day schedule and its staleness rule, routes
// settings changes into exactly one notification reschedule, and manages the
// compass subscription lifecycle.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/location"
	"github.com/tartampluch/go-salat/internal/notify"
	"github.com/tartampluch/go-salat/internal/prayer"
	"github.com/tartampluch/go-salat/internal/qibla"
	"github.com/tartampluch/go-salat/internal/store"
)

// Service wires the location provider, the prayer engine, the notification
// scheduler and the key-value store together.
type Service struct {
	Provider  location.Provider
	Engine    *prayer.Engine
	Scheduler *notify.Scheduler
	Store     store.Store
	Clock     prayer.Clock

	// Summary localizes event titles for the calendar export. Injected by
	// the UI; nil falls back to the symbolic names.
	Summary func(prayer.Name) string

	mu sync.Mutex
}

// New wires the service's collaborators.
func New(provider location.Provider, engine *prayer.Engine, scheduler *notify.Scheduler, st store.Store, clock prayer.Clock) *Service {
	if clock == nil {
		clock = prayer.RealClock{}
	}
	return &Service{
		Provider:  provider,
		Engine:    engine,
		Scheduler: scheduler,
		Store:     st,
		Clock:     clock,
	}
}

// Settings loads the persisted notification settings, falling back to the
// defaults when nothing has been saved yet.
func (s *Service) Settings() notify.Settings {
	set := notify.DefaultSettings()
	found, err := s.Store.Get(config.StoreKeySettings, &set)
	if err != nil {
		slog.Warn(config.ErrStoreDecode,
			config.LogKeyComponent, config.CompService,
			config.LogKeyError, err,
		)
		return notify.DefaultSettings()
	}
	if !found {
		return notify.DefaultSettings()
	}
	return set.Normalized()
}

// UpdateSettings persists the new settings and runs exactly one notification
// reschedule, no matter how many fields changed.
func (s *Service) UpdateSettings(ctx context.Context, set notify.Settings) error {
	return s.Apply(ctx, set, nil)
}

// Apply persists one settings batch, optionally together with a new location,
// and runs exactly one notification reschedule for the whole batch. The
// settings dialog funnels its save through here so a combined location plus
// settings change does not cancel and rebuild twice.
func (s *Service) Apply(ctx context.Context, set notify.Settings, place *location.Place) error {
	set = set.Normalized()
	if err := s.Store.Set(config.StoreKeySettings, set); err != nil {
		return err
	}
	slog.Info(config.MsgSettingsApplied, config.LogKeyComponent, config.CompService)

	var (
		day prayer.Schedule
		err error
	)
	if place != nil {
		if err = s.saveLocation(*place); err != nil {
			return err
		}
		s.mu.Lock()
		day, err = s.recompute(*place, s.Clock.Now())
		s.mu.Unlock()
	} else {
		day, err = s.CurrentSchedule(ctx)
	}
	if err != nil {
		return err
	}

	_, err = s.Scheduler.Reschedule(ctx, day, set)
	return err
}

// SetMethod switches the calculation method. The engine is shared with the
// background worker goroutine, so the write takes the service mutex.
func (s *Service) SetMethod(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Engine.Method = method
}

// CurrentSchedule returns today's schedule for the current location. The
// cached schedule is reused while it is fresh; a date change, a relocation
// beyond the threshold distance, or a method change all force recomputation.
func (s *Service) CurrentSchedule(ctx context.Context) (prayer.Schedule, error) {
	place, err := s.Provider.Current(ctx)
	if err != nil {
		return prayer.Schedule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.Now()
	if cached, ok := s.loadCached(); ok && s.fresh(cached, place.Coordinates, now) {
		slog.Debug(config.MsgCacheHit,
			config.LogKeyComponent, config.CompService,
			config.LogKeyDate, cached.Date,
		)
		return cached, nil
	}

	return s.recompute(place, now)
}

// Refresh recomputes today's schedule unconditionally and reschedules the
// notifications for it.
func (s *Service) Refresh(ctx context.Context) (prayer.Schedule, error) {
	place, err := s.Provider.Current(ctx)
	if err != nil {
		return prayer.Schedule{}, err
	}

	s.mu.Lock()
	day, err := s.recompute(place, s.Clock.Now())
	s.mu.Unlock()
	if err != nil {
		return prayer.Schedule{}, err
	}

	if _, err := s.Scheduler.Reschedule(ctx, day, s.Settings()); err != nil {
		return day, err
	}
	return day, nil
}

// Next selects the upcoming prayer for the current schedule, rolling over to
// tomorrow's Fajr when the day has run out.
func (s *Service) Next(ctx context.Context) (prayer.Next, error) {
	day, err := s.CurrentSchedule(ctx)
	if err != nil {
		return prayer.Next{}, err
	}

	// Selection can recompute tomorrow's day and so reads the engine method;
	// that read shares the engine with SetMethod.
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.SelectNext(day, s.Clock.Now())
}

// DailyMaintenance is the background refresh entry point: it recomputes the
// schedule when stale and runs the once-per-day notification pass.
func (s *Service) DailyMaintenance(ctx context.Context) error {
	day, err := s.CurrentSchedule(ctx)
	if err != nil {
		return err
	}
	_, err = s.Scheduler.DailyReschedule(ctx, day, s.Settings())
	return err
}

// SetLocation saves the place as the current location and refreshes the
// schedule and notifications for it.
func (s *Service) SetLocation(ctx context.Context, place location.Place) error {
	if err := s.saveLocation(place); err != nil {
		return err
	}
	_, err := s.Refresh(ctx)
	return err
}

// saveLocation persists the place through the provider.
func (s *Service) saveLocation(place location.Place) error {
	saver, ok := s.Provider.(*location.StoredProvider)
	if !ok {
		return fmt.Errorf("%s: provider is read-only", config.ErrLocUnavailable)
	}
	if err := saver.Save(place); err != nil {
		return err
	}
	slog.Info(config.MsgLocationSet,
		config.LogKeyComponent, config.CompService,
		config.LogKeyPlace, place.Name,
		config.LogKeyLatitude, place.Coordinates.Latitude,
		config.LogKeyLongitude, place.Coordinates.Longitude,
	)
	return nil
}

// QiblaInfo returns the bearing and great-circle distance to the Kaaba from
// the current location.
func (s *Service) QiblaInfo(ctx context.Context) (bearing, distanceKm float64, err error) {
	place, err := s.Provider.Current(ctx)
	if err != nil {
		return 0, 0, err
	}
	bearing, err = qibla.Bearing(place.Coordinates)
	if err != nil {
		return 0, 0, err
	}
	distanceKm, err = qibla.DistanceKm(place.Coordinates)
	if err != nil {
		return 0, 0, err
	}
	return bearing, distanceKm, nil
}

// SubscribeCompass resolves the qibla bearing for the current location and
// starts streaming resolved readings. The returned stop function ends the
// subscription; it is safe to call more than once.
func (s *Service) SubscribeCompass(ctx context.Context, stream qibla.SensorStream, onReading func(qibla.Reading)) (func(), error) {
	place, err := s.Provider.Current(ctx)
	if err != nil {
		return nil, err
	}
	bearing, err := qibla.Bearing(place.Coordinates)
	if err != nil {
		return nil, err
	}

	unsubscribe, err := stream.Subscribe(func(sample qibla.Sample) {
		onReading(qibla.Resolve(sample, bearing))
	})
	if err != nil {
		return nil, err
	}
	slog.Debug(config.MsgCompassStart, config.LogKeyComponent, config.CompCompass)

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			slog.Debug(config.MsgCompassStop, config.LogKeyComponent, config.CompCompass)
		})
	}, nil
}

// ExportICS writes today's schedule as an iCalendar file into dir and
// returns the full path.
func (s *Service) ExportICS(ctx context.Context, dir string) (string, error) {
	day, err := s.CurrentSchedule(ctx)
	if err != nil {
		return "", err
	}

	set := s.Settings()
	reminder := time.Duration(0)
	if set.NotifyBeforePrayer {
		reminder = time.Duration(set.PrePrayerMinutes) * time.Minute
	}

	data, err := day.ICS(s.Clock.Now(), reminder, s.Summary)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf(config.ExportFileName, day.Date))
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return "", err
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompService,
		config.LogKeyFile, path,
	)
	return path, nil
}

// loadCached reads the persisted schedule. A missing or undecodable entry is
// treated as a cache miss.
func (s *Service) loadCached() (prayer.Schedule, bool) {
	var cached prayer.Schedule
	found, err := s.Store.Get(config.StoreKeySchedule, &cached)
	if err != nil {
		slog.Warn(config.ErrStoreDecode,
			config.LogKeyComponent, config.CompService,
			config.LogKeyError, err,
		)
		return prayer.Schedule{}, false
	}
	return cached, found
}

// fresh applies the staleness rule: same calendar date, same calculation
// method, and a location within the relocation threshold.
func (s *Service) fresh(cached prayer.Schedule, here qibla.Coordinates, now time.Time) bool {
	if cached.Date != prayer.DateKey(now) {
		slog.Debug(config.MsgCacheStale,
			config.LogKeyComponent, config.CompService,
			config.LogKeyDate, cached.Date,
		)
		return false
	}
	if cached.Method != s.Engine.MethodName() {
		return false
	}
	if qibla.GreatCircleKm(cached.Location, here) > config.RelocationThresholdKm {
		return false
	}
	return true
}

// recompute runs the engine and persists the result. Caller holds s.mu.
func (s *Service) recompute(place location.Place, now time.Time) (prayer.Schedule, error) {
	day, err := s.Engine.ComputeDay(place.Coordinates.Latitude, place.Coordinates.Longitude, now)
	if err != nil {
		return prayer.Schedule{}, err
	}

	if err := s.Store.Set(config.StoreKeySchedule, day); err != nil {
		slog.Warn(config.ErrStoreDecode,
			config.LogKeyComponent, config.CompService,
			config.LogKeyError, err,
		)
	}

	slog.Info(config.MsgComputeDone,
		config.LogKeyComponent, config.CompService,
		config.LogKeyDate, day.Date,
		config.LogKeyMethod, day.Method,
		config.LogKeyFallback, day.Fallback,
	)
	return day, nil
}
