package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"sankalp/internal/modules/reminder/domain"
	reminderout "sankalp/internal/modules/reminder/port/out"
	"sankalp/internal/platform/clock"
	"sankalp/internal/platform/id"
	"sankalp/internal/platform/tx"
)

type SyncResult struct {
	Scheduled int
	Skipped   int
	Permitted bool
}

// ReminderService keeps the persisted list and the scheduler in step.
type ReminderService struct {
	store     reminderout.ListStore
	scheduler reminderout.Scheduler
	clock     clock.Clock
	ids       id.Generator
	tx        tx.Manager
	intn      func(int) int
	logger    zerolog.Logger
}

type Option func(*ReminderService)

func WithLogger(l zerolog.Logger) Option {
	return func(s *ReminderService) { s.logger = l }
}

// WithRandom replaces the message draw, mainly for tests.
func WithRandom(intn func(int) int) Option {
	return func(s *ReminderService) { s.intn = intn }
}

func NewReminderService(store reminderout.ListStore, scheduler reminderout.Scheduler, clk clock.Clock, ids id.Generator, txm tx.Manager, opts ...Option) *ReminderService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	s := &ReminderService{
		store:     store,
		scheduler: scheduler,
		clock:     clk,
		ids:       ids,
		tx:        txm,
		intn:      rand.Intn,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReminderService) List(ctx context.Context) (domain.List, error) {
	list, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return list, nil
}

func (s *ReminderService) Add(ctx context.Context, raw string) (domain.List, error) {
	tod, err := domain.ParseTimeOfDay(raw)
	if err != nil {
		return nil, err
	}
	list, err := s.mutate(ctx, func(l domain.List) (domain.List, error) {
		return append(l, tod.ISO(s.clock.Now())), nil
	})
	if err != nil {
		return nil, fmt.Errorf("add reminder: %w", err)
	}
	if s.permitted(ctx) {
		if err := s.schedule(ctx, s.motivational(tod)); err != nil {
			return list, err
		}
	}
	s.logger.Info().Str("at", tod.String()).Msg("reminder added")
	return list, nil
}

// RemoveAt drops one entry and rebuilds the schedule so no trigger is left
// behind for it.
func (s *ReminderService) RemoveAt(ctx context.Context, index int) (domain.List, error) {
	list, err := s.mutate(ctx, func(l domain.List) (domain.List, error) {
		return l.RemoveAt(index)
	})
	if err != nil {
		return nil, fmt.Errorf("remove reminder: %w", err)
	}
	if _, err := s.Sync(ctx); err != nil {
		return list, err
	}
	return list, nil
}

func (s *ReminderService) ScheduleDefaults(ctx context.Context) (domain.List, error) {
	now := s.clock.Now()
	list, err := s.mutate(ctx, func(domain.List) (domain.List, error) {
		out := make(domain.List, 0, len(domain.DefaultTimes))
		for _, tod := range domain.DefaultTimes {
			out = append(out, tod.ISO(now))
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("schedule defaults: %w", err)
	}
	if _, err := s.Sync(ctx); err != nil {
		return list, err
	}
	return list, nil
}

func (s *ReminderService) Clear(ctx context.Context) (domain.List, error) {
	list, err := s.mutate(ctx, func(domain.List) (domain.List, error) {
		return domain.List{}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("clear reminders: %w", err)
	}
	if err := s.scheduler.CancelAll(ctx); err != nil {
		return list, fmt.Errorf("cancel reminders: %w", err)
	}
	return list, nil
}

// Sync cancels every trigger and schedules one per persisted entry.
func (s *ReminderService) Sync(ctx context.Context) (SyncResult, error) {
	list, err := s.store.Load(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("sync reminders: %w", err)
	}
	if err := s.scheduler.CancelAll(ctx); err != nil {
		return SyncResult{}, fmt.Errorf("cancel reminders: %w", err)
	}
	times, bad := list.Times()
	result := SyncResult{Skipped: len(bad)}
	for _, i := range bad {
		s.logger.Warn().Int("index", i).Str("value", list[i]).Msg("unreadable reminder time")
	}
	if len(times) == 0 {
		result.Permitted = true
		return result, nil
	}
	if !s.permitted(ctx) {
		return result, nil
	}
	result.Permitted = true

	defaults := list.IsDefaultSchedule()
	for _, tod := range times {
		trigger := s.motivational(tod)
		if defaults {
			trigger.Title, trigger.Body = domain.DefaultTitle, domain.DefaultBody
		}
		if err := s.schedule(ctx, trigger); err != nil {
			return result, err
		}
		result.Scheduled++
	}
	s.logger.Debug().Int("scheduled", result.Scheduled).Msg("reminders synced")
	return result, nil
}

func (s *ReminderService) mutate(ctx context.Context, fn func(domain.List) (domain.List, error)) (domain.List, error) {
	var out domain.List
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		list, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		next, err := fn(list)
		if err != nil {
			return err
		}
		if err := s.store.Save(ctx, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	return out, err
}

// permitted swallows a denial; reminders simply are not scheduled.
func (s *ReminderService) permitted(ctx context.Context) bool {
	granted, err := s.scheduler.RequestPermission(ctx)
	if err != nil || !granted {
		s.logger.Debug().Err(err).Bool("granted", granted).Msg("notification permission not granted")
		return false
	}
	return true
}

func (s *ReminderService) motivational(tod domain.TimeOfDay) domain.Trigger {
	return domain.Trigger{
		ID:    s.ids.New(),
		At:    tod,
		Title: domain.ReminderTitle,
		Body:  domain.PickMessage(s.intn),
	}
}

func (s *ReminderService) schedule(ctx context.Context, t domain.Trigger) error {
	if err := s.scheduler.ScheduleDaily(ctx, t); err != nil {
		return fmt.Errorf("schedule %s: %w", t.At, err)
	}
	return nil
}
