package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"sankalp/internal/modules/sankalp/domain"
	sankalpout "sankalp/internal/modules/sankalp/port/out"
	"sankalp/internal/platform/clock"
	"sankalp/internal/platform/metrics"
	"sankalp/internal/platform/tx"
)

// TrackerService owns every write to the sankalp record. Each operation is a
// load-modify-persist cycle run inside the tx manager.
type TrackerService struct {
	clock    clock.Clock
	store    sankalpout.StateStore
	tx       tx.Manager
	notifier sankalpout.Notifier
	recorder sankalpout.ProgressRecorder
	logger   zerolog.Logger
}

type Option func(*TrackerService)

func WithNotifier(n sankalpout.Notifier) Option {
	return func(s *TrackerService) { s.notifier = n }
}

func WithRecorder(r sankalpout.ProgressRecorder) Option {
	return func(s *TrackerService) { s.recorder = r }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *TrackerService) { s.logger = l }
}

func NewTrackerService(clk clock.Clock, store sankalpout.StateStore, txm tx.Manager, opts ...Option) *TrackerService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	s := &TrackerService{
		clock:    clk,
		store:    store,
		tx:       txm,
		recorder: metrics.NoopRecorder{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TrackerService) today() string {
	return clock.DayKey(s.clock.Now())
}

func (s *TrackerService) observe(state domain.State) {
	s.recorder.ObserveProgress(metrics.Progress{
		CompletedToday: state.CompletedToday,
		DailyTarget:    state.DailyTarget,
		Streak:         state.Streak,
		TotalCompleted: state.TotalCompletedAllTime,
	})
}

func (s *TrackerService) LoadAndRollover(ctx context.Context) (domain.State, error) {
	var state domain.State
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		loaded, _, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		if loaded.Rollover(s.today()) {
			s.logger.Debug().Str("date", loaded.LastDate).Msg("daily rollover")
		}
		if err := s.store.Save(ctx, loaded); err != nil {
			return err
		}
		state = loaded
		return nil
	})
	if err != nil {
		return domain.State{}, fmt.Errorf("load and rollover: %w", err)
	}
	s.observe(state)
	return state, nil
}

func (s *TrackerService) RecordCompletion(ctx context.Context) (domain.State, domain.Completion, error) {
	var state domain.State
	var completion domain.Completion
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		loaded, _, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		completion = loaded.RecordCompletion(s.today())
		if err := s.store.Save(ctx, loaded); err != nil {
			return err
		}
		state = loaded
		return nil
	})
	if err != nil {
		return domain.State{}, domain.Completion{}, fmt.Errorf("record completion: %w", err)
	}

	s.observe(state)
	s.logger.Info().
		Int("completed", state.CompletedToday).
		Int("target", state.DailyTarget).
		Int("streak", state.Streak).
		Str("decision", string(completion.Decision)).
		Msg("completion recorded")

	if completion.GoalReached && s.notifier != nil {
		if err := s.notifier.GoalComplete(ctx, state); err != nil {
			s.logger.Warn().Err(err).Msg("goal complete notice failed")
		}
	}
	return state, completion, nil
}

func (s *TrackerService) UndoLast(ctx context.Context) (domain.State, error) {
	var state domain.State
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		loaded, _, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		if !loaded.Undo() {
			state = loaded
			return nil
		}
		if err := s.store.Save(ctx, loaded); err != nil {
			return err
		}
		state = loaded
		return nil
	})
	if err != nil {
		return domain.State{}, fmt.Errorf("undo: %w", err)
	}
	s.observe(state)
	return state, nil
}

func (s *TrackerService) SetGoalAndProfile(ctx context.Context, target int, name, email string) (domain.State, error) {
	var state domain.State
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		loaded, _, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		if err := loaded.Onboard(target, name, email, s.today()); err != nil {
			return err
		}
		if err := s.store.Save(ctx, loaded); err != nil {
			return err
		}
		state = loaded
		return nil
	})
	if err != nil {
		return domain.State{}, fmt.Errorf("set goal and profile: %w", err)
	}

	if s.notifier != nil {
		granted, err := s.notifier.RequestPermission(ctx)
		if err != nil || !granted {
			s.logger.Debug().Err(err).Bool("granted", granted).Msg("notification permission not granted")
		}
	}
	s.observe(state)
	return state, nil
}

func (s *TrackerService) UpdateSettings(ctx context.Context, autoLoop, resumePrompt *bool) (domain.State, error) {
	var state domain.State
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		loaded, _, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		if autoLoop != nil {
			loaded.Settings.AutoLoopToTarget = *autoLoop
		}
		if resumePrompt != nil {
			loaded.Settings.AutoResumePrompt = *resumePrompt
		}
		if err := s.store.Save(ctx, loaded); err != nil {
			return err
		}
		state = loaded
		return nil
	})
	if err != nil {
		return domain.State{}, fmt.Errorf("update settings: %w", err)
	}
	s.observe(state)
	return state, nil
}

// Observe returns the record as it would look after rollover without writing
// it back. The foreground check uses this.
func (s *TrackerService) Observe(ctx context.Context) (domain.State, error) {
	var state domain.State
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		loaded, _, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		loaded.Rollover(s.today())
		state = loaded
		return nil
	})
	if err != nil {
		return domain.State{}, fmt.Errorf("observe: %w", err)
	}
	s.observe(state)
	return state, nil
}

func (s *TrackerService) Snapshot(ctx context.Context) (domain.State, error) {
	state, _, err := s.store.Load(ctx)
	if err != nil {
		return domain.State{}, fmt.Errorf("snapshot: %w", err)
	}
	return state, nil
}
