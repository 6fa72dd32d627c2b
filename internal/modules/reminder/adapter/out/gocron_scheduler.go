package out

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"sankalp/internal/modules/reminder/domain"
	reminderout "sankalp/internal/modules/reminder/port/out"
	"sankalp/internal/platform/metrics"
	"sankalp/internal/platform/notify"
)

const reminderTag = "reminder"

// GocronScheduler registers one daily gocron job per trigger and delivers
// fired reminders to a notify.Sink. Jobs only fire once Start is called.
type GocronScheduler struct {
	scheduler gocron.Scheduler
	sink      notify.Sink
	recorder  metrics.Recorder
	logger    zerolog.Logger
	timeout   time.Duration
}

var _ reminderout.Scheduler = (*GocronScheduler)(nil)

type SchedulerOption func(*GocronScheduler)

func WithRecorder(r metrics.Recorder) SchedulerOption {
	return func(s *GocronScheduler) { s.recorder = r }
}

func WithSchedulerLogger(l zerolog.Logger) SchedulerOption {
	return func(s *GocronScheduler) { s.logger = l }
}

func NewGocronScheduler(sink notify.Sink, opts ...SchedulerOption) (*GocronScheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}
	s := &GocronScheduler{
		scheduler: sched,
		sink:      sink,
		recorder:  metrics.NoopRecorder{},
		logger:    zerolog.Nop(),
		timeout:   10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *GocronScheduler) Start() {
	s.logger.Info().Int("jobs", len(s.scheduler.Jobs())).Msg("starting reminder scheduler")
	s.scheduler.Start()
}

func (s *GocronScheduler) Shutdown() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("stop reminder scheduler: %w", err)
	}
	return nil
}

func (s *GocronScheduler) RequestPermission(ctx context.Context) (bool, error) {
	return s.sink.RequestPermission(ctx)
}

func (s *GocronScheduler) ScheduleDaily(_ context.Context, t domain.Trigger) error {
	_, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(t.At.Hour), uint(t.At.Minute), 0))),
		gocron.NewTask(s.deliver, t),
		gocron.WithName(t.ID),
		gocron.WithTags(reminderTag),
	)
	if err != nil {
		return fmt.Errorf("create reminder job: %w", err)
	}
	return nil
}

func (s *GocronScheduler) CancelAll(context.Context) error {
	s.scheduler.RemoveByTags(reminderTag)
	return nil
}

type Pending struct {
	ID      string
	NextRun time.Time
}

// Pending lists scheduled reminders ordered by next run.
func (s *GocronScheduler) Pending() []Pending {
	jobs := s.scheduler.Jobs()
	out := make([]Pending, 0, len(jobs))
	for _, j := range jobs {
		next, err := j.NextRun()
		if err != nil {
			continue
		}
		out = append(out, Pending{ID: j.Name(), NextRun: next})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].NextRun.Before(out[b].NextRun) })
	return out
}

func (s *GocronScheduler) deliver(t domain.Trigger) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.sink.Notify(ctx, notify.Notice{Title: t.Title, Body: t.Body}); err != nil {
		s.logger.Error().Err(err).Str("id", t.ID).Msg("reminder delivery failed")
		return
	}
	s.recorder.IncReminderFired()
	s.logger.Info().Str("id", t.ID).Str("at", t.At.String()).Msg("reminder fired")
}
