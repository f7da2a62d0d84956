package notify

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Request is one unit of work sent to the device notification sink.
// The identifier is derived deterministically from the prayer name and the
// event kind so re-scheduling the same event overwrites rather than
// duplicates.
type Request struct {
	ID    string    `json:"id"`
	At    time.Time `json:"at"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Sound bool      `json:"sound"`
}

// Sink is the device notification service contract.
type Sink interface {
	// Schedule registers a notification and returns its identifier.
	Schedule(ctx context.Context, req Request) (string, error)
	// CancelAll removes every pending prayer notification unconditionally.
	CancelAll(ctx context.Context) error
	// ListPending returns the not-yet-delivered requests.
	ListPending(ctx context.Context) ([]Request, error)
}

// Notifier is the subset of fyne.App the desktop sink needs.
type Notifier interface {
	SendNotification(*fyne.Notification)
}

// AzanPlayer plays the azan audio when a sound-enabled notification fires.
// A nil player leaves delivery silent beyond the system notification sound.
type AzanPlayer interface {
	Play()
}

// DesktopSink implements Sink with in-process timers delivering through the
// desktop notification facility. Scheduling an identifier that is already
// pending replaces the previous timer.
type DesktopSink struct {
	app    Notifier
	player AzanPlayer

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]Request
}

// NewDesktopSink wraps the application notifier and an optional azan player.
func NewDesktopSink(app Notifier, player AzanPlayer) *DesktopSink {
	return &DesktopSink{
		app:     app,
		player:  player,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]Request),
	}
}

func (d *DesktopSink) Schedule(_ context.Context, req Request) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[req.ID]; ok {
		t.Stop()
	}

	d.pending[req.ID] = req
	d.timers[req.ID] = time.AfterFunc(time.Until(req.At), func() {
		d.deliver(req)
	})
	return req.ID, nil
}

func (d *DesktopSink) deliver(req Request) {
	d.mu.Lock()
	delete(d.timers, req.ID)
	delete(d.pending, req.ID)
	d.mu.Unlock()

	d.app.SendNotification(fyne.NewNotification(req.Title, req.Body))
	if req.Sound && d.player != nil {
		d.player.Play()
	}
}

func (d *DesktopSink) CancelAll(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
	d.pending = make(map[string]Request)
	return nil
}

func (d *DesktopSink) ListPending(context.Context) ([]Request, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Request, 0, len(d.pending))
	for _, req := range d.pending {
		out = append(out, req)
	}
	return out, nil
}
