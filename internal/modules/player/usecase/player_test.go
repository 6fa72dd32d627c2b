package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	playerout "sankalp/internal/modules/player/adapter/out"
	"sankalp/internal/modules/player/dto"
	"sankalp/internal/modules/player/service"
	"sankalp/internal/modules/player/usecase"
	sankalpout "sankalp/internal/modules/sankalp/adapter/out"
	sankalpdomain "sankalp/internal/modules/sankalp/domain"
	sankalpservice "sankalp/internal/modules/sankalp/service"
	sankalpusecase "sankalp/internal/modules/sankalp/usecase"
	"sankalp/internal/platform/clock"
	"sankalp/internal/platform/kv"
	"sankalp/internal/platform/tx"
)

func TestPlaythroughsAutoLoopUntilTarget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()

	seed := sankalpdomain.Default()
	seed.DailyTarget = 2
	seed.LastDate = clock.DayKey(time.Now())
	payload, err := sankalpdomain.Encode(seed)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := store.Set(ctx, kv.KeyState, payload); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tracker := sankalpusecase.NewInteractor(sankalpservice.NewTrackerService(
		clock.SystemClock{},
		sankalpout.NewKVStateStore(store, zerolog.Nop()),
		tx.NewMutexManager(),
	))

	track := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(track, []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write track: %v", err)
	}
	ctrl := playerout.NewSimulatedController(30 * time.Millisecond)
	uc := usecase.NewInteractor(service.NewOrchestrator(
		ctrl,
		playerout.NewSankalpTrackerAdapter(tracker),
		track,
		service.WithPollInterval(5*time.Millisecond),
	))
	t.Cleanup(func() { _ = uc.Close() })

	if err := uc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = uc.Run(runCtx) }()

	if _, err := uc.TogglePlay(ctx); err != nil {
		t.Fatalf("play: %v", err)
	}

	var completions []dto.Completion
	deadline := time.After(3 * time.Second)
	for len(completions) < 2 {
		select {
		case u := <-uc.Updates():
			if u.Completion != nil {
				completions = append(completions, *u.Completion)
			}
		case <-deadline:
			t.Fatalf("timed out after %d completions", len(completions))
		}
	}
	if !completions[0].Continue || completions[0].CompletedToday != 1 {
		t.Fatalf("first playthrough should loop: %+v", completions[0])
	}
	if completions[1].Continue || !completions[1].GoalReached || completions[1].Streak != 1 {
		t.Fatalf("second playthrough should stop at target: %+v", completions[1])
	}

	snap, err := tracker.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.CompletedToday != 2 || snap.TotalCompletedAllTime != 2 {
		t.Fatalf("unexpected persisted tally %+v", snap)
	}
	st, err := uc.Status(ctx)
	if err != nil || st.Phase != "idle" {
		t.Fatalf("expected idle after target, got %+v %v", st, err)
	}
}

func TestBeadMappingsThroughUsecase(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewOrchestrator(playerout.NewSimulatedController(time.Second, playerout.WithoutAudioFile()), nil, ""))
	if got := uc.BeadIndex(dto.BeadInput{PositionMillis: 999, DurationMillis: 1000}); got != 107 {
		t.Fatalf("expected 107, got %d", got)
	}
	if got := uc.FilledBeads(3, 7); got != 46 {
		t.Fatalf("expected 46, got %d", got)
	}
}
