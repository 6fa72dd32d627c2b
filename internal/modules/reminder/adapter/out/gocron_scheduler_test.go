package out

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sankalp/internal/modules/reminder/domain"
	"sankalp/internal/platform/kv"
	"sankalp/internal/platform/metrics"
	"sankalp/internal/platform/notify"
)

type countingRecorder struct {
	mu    sync.Mutex
	fired int
}

func (r *countingRecorder) ObserveProgress(metrics.Progress) {}
func (r *countingRecorder) IncReminderFired() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired++
}

func (r *countingRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fired
}

func TestGocronSchedulerDeliversToSink(t *testing.T) {
	t.Parallel()
	sink := notify.NewLogSink(zerolog.Nop())
	rec := &countingRecorder{}
	s, err := NewGocronScheduler(sink, WithRecorder(rec))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })

	ctx := context.Background()
	trigger := domain.Trigger{ID: "r-1", At: domain.TimeOfDay{Hour: 6, Minute: 0}, Title: domain.ReminderTitle, Body: domain.Messages[3]}
	require.NoError(t, s.ScheduleDaily(ctx, trigger))
	s.Start()

	require.Eventually(t, func() bool {
		pending := s.Pending()
		return len(pending) == 1 && pending[0].ID == "r-1" &&
			pending[0].NextRun.Hour() == 6 && pending[0].NextRun.Minute() == 0
	}, 2*time.Second, 10*time.Millisecond)

	jobs := s.scheduler.Jobs()
	require.Len(t, jobs, 1)
	require.NoError(t, jobs[0].RunNow())

	require.Eventually(t, func() bool { return len(sink.Sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, notify.Notice{Title: domain.ReminderTitle, Body: domain.Messages[3]}, sink.Sent()[0])
	require.Eventually(t, func() bool { return rec.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestGocronSchedulerCancelAll(t *testing.T) {
	t.Parallel()
	s, err := NewGocronScheduler(notify.NewLogSink(zerolog.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })

	ctx := context.Background()
	for i, tod := range domain.DefaultTimes {
		require.NoError(t, s.ScheduleDaily(ctx, domain.Trigger{ID: string(rune('a' + i)), At: tod}))
	}
	require.Len(t, s.scheduler.Jobs(), len(domain.DefaultTimes))
	require.NoError(t, s.CancelAll(ctx))
	require.Empty(t, s.scheduler.Jobs())
}

func TestKVListStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	store := NewKVListStore(mem, zerolog.Nop())

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, empty)

	require.NoError(t, store.Save(ctx, domain.List{"2026-10-18T00:30:00.000Z"}))
	raw, found, err := mem.Get(ctx, kv.KeyReminders)
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `["2026-10-18T00:30:00.000Z"]`, string(raw))

	require.NoError(t, mem.Set(ctx, kv.KeyReminders, []byte("not json")))
	list, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}
