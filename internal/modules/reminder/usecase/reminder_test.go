package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	reminderout "sankalp/internal/modules/reminder/adapter/out"
	"sankalp/internal/modules/reminder/domain"
	reminderin "sankalp/internal/modules/reminder/port/in"
	"sankalp/internal/modules/reminder/service"
	"sankalp/internal/modules/reminder/usecase"
	apperrors "sankalp/internal/platform/errors"
	"sankalp/internal/platform/kv"
	"sankalp/internal/platform/tx"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type seqIDs struct{ n int }

func (s *seqIDs) New() string {
	s.n++
	return fmt.Sprintf("rem-%d", s.n)
}

type fakeScheduler struct {
	granted   bool
	permErr   error
	scheduled []domain.Trigger
	cancels   int
}

func (f *fakeScheduler) RequestPermission(context.Context) (bool, error) {
	return f.granted, f.permErr
}

func (f *fakeScheduler) ScheduleDaily(_ context.Context, t domain.Trigger) error {
	f.scheduled = append(f.scheduled, t)
	return nil
}

func (f *fakeScheduler) CancelAll(context.Context) error {
	f.cancels++
	f.scheduled = nil
	return nil
}

func newUsecase(t *testing.T, sched *fakeScheduler) (reminderin.Usecase, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	svc := service.NewReminderService(
		reminderout.NewKVListStore(store, zerolog.Nop()),
		sched,
		fakeClock{now: time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)},
		&seqIDs{},
		tx.NewMutexManager(),
		service.WithRandom(func(int) int { return 1 }),
	)
	return usecase.NewInteractor(svc), store
}

func TestAddPersistsAndSchedulesWithMotivationalMessage(t *testing.T) {
	t.Parallel()
	sched := &fakeScheduler{granted: true}
	uc, store := newUsecase(t, sched)
	ctx := context.Background()

	out, err := uc.Add(ctx, "07:30")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(out.Reminders) != 1 || out.Reminders[0].Time != "07:30" {
		t.Fatalf("unexpected list %+v", out)
	}
	raw, _, _ := store.Get(ctx, kv.KeyReminders)
	list, ok := domain.DecodeList(raw)
	if !ok || len(list) != 1 || list[0][len(list[0])-1] != 'Z' {
		t.Fatalf("expected one persisted ISO string, got %s", raw)
	}
	if len(sched.scheduled) != 1 {
		t.Fatalf("expected one trigger, got %d", len(sched.scheduled))
	}
	got := sched.scheduled[0]
	if got.ID != "rem-1" || got.Title != domain.ReminderTitle || got.Body != domain.Messages[1] || got.At != (domain.TimeOfDay{Hour: 7, Minute: 30}) {
		t.Fatalf("unexpected trigger %+v", got)
	}

	if _, err := uc.Add(ctx, "later"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestPermissionDenialIsSilent(t *testing.T) {
	t.Parallel()
	sched := &fakeScheduler{permErr: errors.New("no notifier")}
	uc, _ := newUsecase(t, sched)

	out, err := uc.Add(context.Background(), "21:00")
	if err != nil {
		t.Fatalf("denial must not fail add: %v", err)
	}
	if len(out.Reminders) != 1 || len(sched.scheduled) != 0 {
		t.Fatalf("expected persisted but unscheduled reminder, got %+v / %d", out, len(sched.scheduled))
	}
	res, err := uc.Sync(context.Background())
	if err != nil || res.Permitted || res.Scheduled != 0 {
		t.Fatalf("unexpected sync %+v %v", res, err)
	}
}

func TestRemoveAtResyncsRemainingTriggers(t *testing.T) {
	t.Parallel()
	sched := &fakeScheduler{granted: true}
	uc, _ := newUsecase(t, sched)
	ctx := context.Background()
	for _, at := range []string{"06:00", "12:00", "18:00"} {
		if _, err := uc.Add(ctx, at); err != nil {
			t.Fatalf("add %s: %v", at, err)
		}
	}

	out, err := uc.RemoveAt(ctx, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(out.Reminders) != 2 || out.Reminders[1].Time != "18:00" {
		t.Fatalf("unexpected list %+v", out)
	}
	if sched.cancels != 1 || len(sched.scheduled) != 2 {
		t.Fatalf("expected a full resync, cancels=%d scheduled=%d", sched.cancels, len(sched.scheduled))
	}
	for _, trig := range sched.scheduled {
		if trig.At.Hour == 12 {
			t.Fatalf("removed reminder still scheduled")
		}
	}

	if _, err := uc.RemoveAt(ctx, 5); !errors.Is(err, apperrors.ErrIndexOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
}

func TestScheduleDefaultsUsesDefaultContent(t *testing.T) {
	t.Parallel()
	sched := &fakeScheduler{granted: true}
	uc, _ := newUsecase(t, sched)
	ctx := context.Background()
	if _, err := uc.Add(ctx, "05:00"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := uc.ScheduleDefaults(ctx)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if len(out.Reminders) != 7 || out.Reminders[0].Time != "06:00" || out.Reminders[6].Time != "22:00" {
		t.Fatalf("unexpected defaults %+v", out.Reminders)
	}
	if len(sched.scheduled) != 7 {
		t.Fatalf("expected seven triggers, got %d", len(sched.scheduled))
	}
	for _, trig := range sched.scheduled {
		if trig.Title != domain.DefaultTitle || trig.Body != domain.DefaultBody {
			t.Fatalf("default trigger has wrong content %+v", trig)
		}
	}
}

func TestClearCancelsEverything(t *testing.T) {
	t.Parallel()
	sched := &fakeScheduler{granted: true}
	uc, _ := newUsecase(t, sched)
	ctx := context.Background()
	if _, err := uc.ScheduleDefaults(ctx); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	out, err := uc.Clear(ctx)
	if err != nil || len(out.Reminders) != 0 || len(sched.scheduled) != 0 {
		t.Fatalf("unexpected clear %+v %v %d", out, err, len(sched.scheduled))
	}
	listed, err := uc.List(ctx)
	if err != nil || len(listed.Reminders) != 0 {
		t.Fatalf("clear not persisted %+v %v", listed, err)
	}
}
