// Package notify maps a computed prayer day and the user's notification
// settings onto the device notification sink. Every pass is a full
// cancel-then-rebuild: the previous batch is cancelled unconditionally, the
// new batch is built from scratch and submitted concurrently. A once-per-day
// guard keyed on the calendar date prevents redundant churn from background
// refresh triggers.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-salat/internal/config"
	"github.com/tartampluch/go-salat/internal/prayer"
	"github.com/tartampluch/go-salat/internal/store"
)

// State names the phases of one scheduling pass.
type State string

const (
	StateIdle       State = "idle"
	StateCancelling State = "cancelling"
	StateBuilding   State = "building"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Messages localizes notification content. The UI injects translated
// formatters; the zero value falls back to English templates so the
// scheduler stays usable headless.
type Messages struct {
	Exact  func(name prayer.Name) (title, body string)
	Before func(name prayer.Name, minutes int) (title, body string)
}

func (m Messages) exact(name prayer.Name) (string, string) {
	if m.Exact != nil {
		return m.Exact(name)
	}
	return fmt.Sprintf(config.FallbackExactTitle, name),
		fmt.Sprintf(config.FallbackExactBody, name)
}

func (m Messages) before(name prayer.Name, minutes int) (string, string) {
	if m.Before != nil {
		return m.Before(name, minutes)
	}
	return fmt.Sprintf(config.FallbackBeforeTitle, name),
		fmt.Sprintf(config.FallbackBeforeBody, name, minutes)
}

// Result summarizes one scheduling pass.
type Result struct {
	State     State
	Built     int
	Scheduled int
	Dropped   int
	Failed    int
	// Skipped is true when the once-per-day guard short-circuited the pass.
	Skipped bool
}

// Scheduler owns the cancel-then-rebuild pass. Passes are serialized by a
// mutex so two racing triggers cannot interleave: the last writer's cancel
// always precedes its own build, and the last submission wins.
type Scheduler struct {
	Sink     Sink
	Clock    prayer.Clock
	Store    store.Store
	Messages Messages

	mu sync.Mutex

	stateMu sync.Mutex
	state   State
}

// NewScheduler wires the scheduler's collaborators.
func NewScheduler(sink Sink, clock prayer.Clock, st store.Store) *Scheduler {
	if clock == nil {
		clock = prayer.RealClock{}
	}
	return &Scheduler{Sink: sink, Clock: clock, Store: st, state: StateIdle}
}

// State returns the most recently entered pass state.
func (s *Scheduler) State() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

func (s *Scheduler) setState(st State) {
	s.stateMu.Lock()
	s.state = st
	s.stateMu.Unlock()
}

// Reschedule runs one full pass for the given day and settings. It is the
// entry point for settings changes and explicit reschedule requests; it
// never touches the once-per-day guard, so same-day re-runs are allowed.
func (s *Scheduler) Reschedule(ctx context.Context, day prayer.Schedule, set Settings) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx, day, set)
}

// DailyReschedule is the once-per-day scheduling path used by the background
// refresh. When the guard date equals today's calendar date the entire pass
// is skipped with zero work; on success the guard is advanced to today.
func (s *Scheduler) DailyReschedule(ctx context.Context, day prayer.Schedule, set Settings) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := prayer.DateKey(s.Clock.Now())

	var last string
	if s.Store != nil {
		if _, err := s.Store.Get(config.StoreKeyLastDay, &last); err != nil {
			slog.Warn(config.ErrStoreDecode,
				config.LogKeyComponent, config.CompNotify,
				config.LogKeyError, err,
			)
		}
	}
	if last == today {
		slog.Debug(config.MsgPassSkipped,
			config.LogKeyComponent, config.CompNotify,
			config.LogKeyDate, today,
		)
		s.setState(StateDone)
		return Result{State: StateDone, Skipped: true}, nil
	}

	res, err := s.run(ctx, day, set)
	if err != nil {
		return res, err
	}
	if s.Store != nil {
		if err := s.Store.Set(config.StoreKeyLastDay, today); err != nil {
			slog.Warn(config.MsgSubmitFailed,
				config.LogKeyComponent, config.CompNotify,
				config.LogKeyError, err,
			)
		}
	}
	return res, nil
}

// run executes Cancelling -> Building -> Submitting -> Done. The caller
// holds s.mu.
func (s *Scheduler) run(ctx context.Context, day prayer.Schedule, set Settings) (Result, error) {
	start := s.Clock.Now()
	set = set.Normalized()
	log := slog.With(config.LogKeyComponent, config.CompNotify)
	log.Info(config.MsgPassStarted, config.LogKeyDate, day.Date)

	// Cancelling: unconditional, no partial cancellation. If this step
	// fails the pass aborts so the previous (possibly stale) schedule stays
	// in place rather than leaving no schedule at all.
	s.setState(StateCancelling)
	if err := s.Sink.CancelAll(ctx); err != nil {
		s.setState(StateFailed)
		log.Error(config.MsgPassFailed, config.LogKeyError, err)
		return Result{State: StateFailed}, fmt.Errorf("%s: %w", config.ErrCancelFailed, err)
	}
	log.Debug(config.MsgCancelled)

	if !set.Enabled {
		s.setState(StateDone)
		log.Info(config.MsgPassDone, config.LogKeyScheduled, 0)
		return Result{State: StateDone}, nil
	}

	s.setState(StateBuilding)
	now := s.Clock.Now()
	requests := buildRequests(day, set, now, s.Messages)

	s.setState(StateSubmitting)
	res := s.submit(ctx, requests, now)
	res.State = StateDone
	s.setState(StateDone)

	log.Info(config.MsgPassDone,
		config.LogKeyBuilt, res.Built,
		config.LogKeyScheduled, res.Scheduled,
		config.LogKeyDropped, res.Dropped,
		config.LogKeyFailed, res.Failed,
		config.LogKeyDuration, s.Clock.Now().Sub(start).Milliseconds(),
	)
	return res, nil
}

// buildRequests constructs the batch for the day: an "exact" request per
// notifiable, not-yet-passed event, and a "before" request shifted by the
// pre-prayer offset when that shifted time is still in the future.
func buildRequests(day prayer.Schedule, set Settings, now time.Time, msgs Messages) []Request {
	var requests []Request
	for _, ev := range day.Events {
		if !ev.Name.Notifiable() {
			continue
		}
		if ev.Passed(now) {
			continue
		}

		if set.NotifyAtPrayerTime {
			title, body := msgs.exact(ev.Name)
			requests = append(requests, Request{
				ID:    fmt.Sprintf(config.NotificationIDExact, ev.Name),
				At:    ev.Time,
				Title: title,
				Body:  body,
				Sound: set.AzanSoundEnabled,
			})
		}

		if set.NotifyBeforePrayer {
			at := ev.Time.Add(-time.Duration(set.PrePrayerMinutes) * time.Minute)
			if at.After(now) {
				title, body := msgs.before(ev.Name, set.PrePrayerMinutes)
				requests = append(requests, Request{
					ID:    fmt.Sprintf(config.NotificationIDBefore, ev.Name),
					At:    at,
					Title: title,
					Body:  body,
				})
			}
		}
	}
	return requests
}

// submit fans the batch out concurrently and joins on all outcomes. Each
// submission independently succeeds, is silently dropped (outside the
// scheduling window), or fails; failures are logged and never abort
// siblings.
func (s *Scheduler) submit(ctx context.Context, requests []Request, now time.Time) Result {
	res := Result{Built: len(requests)}
	if len(requests) == 0 {
		return res
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, req := range requests {
		wg.Add(1)
		go func(req Request) {
			defer wg.Done()

			// Window rule: strictly between now (minus a short grace) and
			// one year out; everything else is dropped, not an error.
			if !req.At.After(now.Add(-config.SchedulePastGrace)) ||
				req.At.After(now.Add(config.ScheduleWindowMax)) {
				slog.Debug(config.MsgSubmitDropped,
					config.LogKeyComponent, config.CompNotify,
					config.LogKeyID, req.ID,
					config.LogKeyTrigger, req.At,
				)
				mu.Lock()
				res.Dropped++
				mu.Unlock()
				return
			}

			if _, err := s.Sink.Schedule(ctx, req); err != nil {
				slog.Error(config.MsgSubmitFailed,
					config.LogKeyComponent, config.CompNotify,
					config.LogKeyID, req.ID,
					config.LogKeyError, err,
				)
				mu.Lock()
				res.Failed++
				mu.Unlock()
				return
			}

			mu.Lock()
			res.Scheduled++
			mu.Unlock()
		}(req)
	}
	wg.Wait()
	return res
}
