package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sankalp/internal/modules/player/domain"
	"sankalp/internal/modules/player/dto"
	playerout "sankalp/internal/modules/player/port/out"
	apperrors "sankalp/internal/platform/errors"
)

var ErrClosed = errors.New("player closed")

const DefaultPollInterval = 250 * time.Millisecond

// Orchestrator couples the audio controller to the tracker. It owns the
// phase machine, runs the position poller only while playing and publishes
// every visible change on Updates.
type Orchestrator struct {
	ctrl      playerout.Controller
	tracker   playerout.Tracker
	audioPath string
	interval  time.Duration
	logger    zerolog.Logger

	mu       sync.Mutex
	machine  domain.Machine
	alive    bool
	stopPoll context.CancelFunc
	pollDone chan struct{}

	updates   chan dto.Update
	closeOnce sync.Once
}

type Option func(*Orchestrator)

func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

func WithPollInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.interval = d
		}
	}
}

func NewOrchestrator(ctrl playerout.Controller, tracker playerout.Tracker, audioPath string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		ctrl:      ctrl,
		tracker:   tracker,
		audioPath: audioPath,
		interval:  DefaultPollInterval,
		logger:    zerolog.Nop(),
		alive:     true,
		updates:   make(chan dto.Update, 32),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) Updates() <-chan dto.Update { return o.updates }

func (o *Orchestrator) Load(ctx context.Context) error {
	if err := o.ctrl.Load(ctx, o.audioPath); err != nil {
		if errors.Is(err, apperrors.ErrAudioUnavailable) {
			o.logger.Warn().Str("path", o.audioPath).Msg("audio track missing")
		}
		return fmt.Errorf("load audio: %w", err)
	}
	o.logger.Debug().Str("path", o.audioPath).Msg("audio loaded")
	return nil
}

func (o *Orchestrator) Phase() domain.Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.machine.Phase()
}

func (o *Orchestrator) Status(ctx context.Context) (domain.Status, domain.Phase, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	st, err := o.ctrl.Status(ctx)
	if err != nil {
		return domain.Status{}, o.machine.Phase(), fmt.Errorf("player status: %w", err)
	}
	return st, o.machine.Phase(), nil
}

// TogglePlay pauses while playing and plays while idle.
func (o *Orchestrator) TogglePlay(ctx context.Context) (domain.Status, domain.Phase, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.alive {
		return domain.Status{}, domain.PhaseIdle, ErrClosed
	}
	st, err := o.ctrl.Status(ctx)
	if err != nil {
		return domain.Status{}, o.machine.Phase(), fmt.Errorf("player status: %w", err)
	}
	if !st.IsLoaded {
		return st, o.machine.Phase(), apperrors.ErrNotLoaded
	}

	switch o.machine.Phase() {
	case domain.PhasePlaying:
		if err := o.pauseLocked(ctx, st); err != nil {
			return st, o.machine.Phase(), err
		}
	case domain.PhaseIdle:
		if err := o.ctrl.Play(ctx); err != nil {
			return st, o.machine.Phase(), fmt.Errorf("play: %w", err)
		}
		_ = o.machine.Play()
		o.startPollingLocked()
		o.publish(pointerUpdate(domain.PhasePlaying, st))
	default:
		return st, o.machine.Phase(), fmt.Errorf("%w: completion pending", apperrors.ErrInvalidTransition)
	}

	st, err = o.ctrl.Status(ctx)
	if err != nil {
		return domain.Status{}, o.machine.Phase(), fmt.Errorf("player status: %w", err)
	}
	return st, o.machine.Phase(), nil
}

// Pause is a no-op unless playing.
func (o *Orchestrator) Pause(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.alive || o.machine.Phase() != domain.PhasePlaying {
		return nil
	}
	st, err := o.ctrl.Status(ctx)
	if err != nil {
		return fmt.Errorf("player status: %w", err)
	}
	return o.pauseLocked(ctx, st)
}

func (o *Orchestrator) pauseLocked(ctx context.Context, st domain.Status) error {
	if err := o.ctrl.Pause(ctx); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	_ = o.machine.Pause()
	o.stopPollingLocked()
	o.publish(pointerUpdate(domain.PhaseIdle, st))
	return nil
}

// Run consumes controller events until ctx is done or the controller closes
// its event stream.
func (o *Orchestrator) Run(ctx context.Context) error {
	events := o.ctrl.Events()
	for {
		select {
		case <-ctx.Done():
			o.shutdown()
			return nil
		case ev, ok := <-events:
			if !ok {
				o.shutdown()
				return nil
			}
			switch ev.Kind {
			case domain.EventJustFinished:
				o.handleFinished(ctx, ev.Status)
			case domain.EventStatusChanged:
				o.handleStatus(ev.Status)
			}
		}
	}
}

func (o *Orchestrator) handleStatus(st domain.Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.alive || o.machine.Phase() != domain.PhasePlaying {
		return
	}
	if !st.IsPlaying {
		// The event may predate a resume; trust the controller's current view.
		cur, err := o.ctrl.Status(context.Background())
		if err == nil && !cur.IsPlaying {
			o.logger.Warn().Msg("playback stopped outside the player")
			o.machine.Reset()
			o.stopPollingLocked()
			o.publish(pointerUpdate(domain.PhaseIdle, cur))
			return
		}
		if err == nil {
			st = cur
		}
	}
	o.publish(pointerUpdate(domain.PhasePlaying, st))
}

func (o *Orchestrator) handleFinished(ctx context.Context, st domain.Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.alive {
		return
	}
	if err := o.machine.Finish(); err != nil {
		o.logger.Debug().Err(err).Msg("duplicate finish ignored")
		return
	}
	o.stopPollingLocked()
	o.publish(dto.Update{
		Phase:          domain.PhaseFinishedPendingUpdate.String(),
		HasPointer:     true,
		BeadIndex:      domain.RingSize - 1,
		PositionMillis: st.DurationMillis,
		DurationMillis: st.DurationMillis,
	})

	completion, err := o.tracker.RecordCompletion(ctx)
	if err != nil {
		o.machine.Reset()
		if ctx.Err() == nil {
			o.logger.Error().Err(err).Msg("record completion failed")
			o.publish(dto.Update{Phase: domain.PhaseIdle.String(), Notice: "Could not save progress"})
		}
		return
	}
	if ctx.Err() != nil {
		o.machine.Reset()
		return
	}

	if completion.Continue {
		if err := o.ctrl.ReplayFromStart(ctx); err != nil {
			o.logger.Error().Err(err).Msg("replay failed")
			o.machine.Reset()
			o.publish(dto.Update{Phase: domain.PhaseIdle.String(), Completion: &completion})
			return
		}
		_ = o.machine.Resolve(true)
		o.startPollingLocked()
		o.publish(dto.Update{
			Phase:          domain.PhasePlaying.String(),
			HasPointer:     true,
			BeadIndex:      0,
			DurationMillis: st.DurationMillis,
			Completion:     &completion,
		})
		return
	}

	_ = o.machine.Resolve(false)
	o.publish(dto.Update{Phase: domain.PhaseIdle.String(), Completion: &completion})
}

// ─── poller ───

func (o *Orchestrator) startPollingLocked() {
	if o.stopPoll != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	o.stopPoll, o.pollDone = cancel, done
	go o.poll(ctx, done)
}

func (o *Orchestrator) stopPollingLocked() {
	if o.stopPoll == nil {
		return
	}
	o.stopPoll()
	<-o.pollDone
	o.stopPoll, o.pollDone = nil, nil
}

// poll never takes o.mu; stopPollingLocked waits on it while holding the lock.
func (o *Orchestrator) poll(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st, err := o.ctrl.Status(ctx)
			if err != nil {
				if ctx.Err() == nil {
					o.logger.Debug().Err(err).Msg("poll status")
				}
				continue
			}
			if !st.IsPlaying || st.DurationMillis <= 0 {
				continue
			}
			o.publish(pointerUpdate(domain.PhasePlaying, st))
		}
	}
}

// publish drops the oldest pending update when the reader lags.
func (o *Orchestrator) publish(u dto.Update) {
	select {
	case o.updates <- u:
		return
	default:
	}
	select {
	case <-o.updates:
	default:
	}
	select {
	case o.updates <- u:
	default:
	}
}

func pointerUpdate(phase domain.Phase, st domain.Status) dto.Update {
	return dto.Update{
		Phase:          phase.String(),
		HasPointer:     st.DurationMillis > 0,
		BeadIndex:      domain.BeadIndex(st.PositionMillis, st.DurationMillis),
		PositionMillis: st.PositionMillis,
		DurationMillis: st.DurationMillis,
	}
}

func (o *Orchestrator) shutdown() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.alive = false
	o.stopPollingLocked()
}

// Close stops the poller, releases the controller and closes Updates.
func (o *Orchestrator) Close() error {
	o.shutdown()
	var err error
	o.closeOnce.Do(func() {
		err = o.ctrl.Close()
		o.mu.Lock()
		close(o.updates)
		o.mu.Unlock()
	})
	return err
}
