package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-salat/internal/notify"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []*fyne.Notification
	done chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 8)}
}

func (r *recordingNotifier) SendNotification(n *fyne.Notification) {
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
	r.done <- struct{}{}
}

// countingPlayer records azan playback requests.
type countingPlayer struct {
	mu     sync.Mutex
	plays  int
	played chan struct{}
}

func newCountingPlayer() *countingPlayer {
	return &countingPlayer{played: make(chan struct{}, 8)}
}

func (p *countingPlayer) Play() {
	p.mu.Lock()
	p.plays++
	p.mu.Unlock()
	p.played <- struct{}{}
}

func TestDesktopSink_ReplaceAndCancel(t *testing.T) {
	sink := notify.NewDesktopSink(newRecordingNotifier(), nil)
	ctx := context.Background()
	far := time.Now().Add(time.Hour)

	_, err := sink.Schedule(ctx, notify.Request{ID: "prayer_Asr_exact", At: far, Title: "a"})
	require.NoError(t, err)
	_, err = sink.Schedule(ctx, notify.Request{ID: "prayer_Isha_exact", At: far, Title: "b"})
	require.NoError(t, err)

	pending, err := sink.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	// Same identifier replaces, never duplicates.
	_, err = sink.Schedule(ctx, notify.Request{ID: "prayer_Asr_exact", At: far, Title: "a2"})
	require.NoError(t, err)
	pending, err = sink.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, req := range pending {
		if req.ID == "prayer_Asr_exact" {
			assert.Equal(t, "a2", req.Title)
		}
	}

	require.NoError(t, sink.CancelAll(ctx))
	pending, err = sink.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDesktopSink_DeliversDueNotification(t *testing.T) {
	app := newRecordingNotifier()
	sink := notify.NewDesktopSink(app, nil)
	ctx := context.Background()

	_, err := sink.Schedule(ctx, notify.Request{
		ID:    "prayer_Maghrib_exact",
		At:    time.Now().Add(10 * time.Millisecond),
		Title: "Maghrib",
		Body:  "It is time for Maghrib prayer",
	})
	require.NoError(t, err)

	select {
	case <-app.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}

	app.mu.Lock()
	defer app.mu.Unlock()
	require.Len(t, app.sent, 1)
	assert.Equal(t, "Maghrib", app.sent[0].Title)

	pending, err := sink.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "delivered requests leave the pending set")
}

func TestDesktopSink_PlaysAzanOnSoundRequestsOnly(t *testing.T) {
	app := newRecordingNotifier()
	player := newCountingPlayer()
	sink := notify.NewDesktopSink(app, player)
	ctx := context.Background()

	_, err := sink.Schedule(ctx, notify.Request{
		ID:    "prayer_Fajr_exact",
		At:    time.Now().Add(10 * time.Millisecond),
		Title: "Fajr",
		Sound: true,
	})
	require.NoError(t, err)
	_, err = sink.Schedule(ctx, notify.Request{
		ID:    "prayer_Fajr_before",
		At:    time.Now().Add(10 * time.Millisecond),
		Title: "Fajr soon",
		Sound: false,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case <-app.done:
		case <-time.After(2 * time.Second):
			t.Fatal("notification was not delivered")
		}
	}

	select {
	case <-player.played:
	case <-time.After(2 * time.Second):
		t.Fatal("azan was not played for the sound-enabled request")
	}

	player.mu.Lock()
	defer player.mu.Unlock()
	assert.Equal(t, 1, player.plays, "silent requests must not trigger playback")
}
