package out

import (
	"context"
	"sync"
	"time"

	"sankalp/internal/modules/player/domain"
	apperrors "sankalp/internal/platform/errors"
)

// SimulatedController plays a silent track of fixed length on the wall clock.
// It is used when no player command is configured and in tests.
type SimulatedController struct {
	duration    time.Duration
	requireFile bool

	mu      sync.Mutex
	loaded  bool
	playing bool
	offset  time.Duration
	started time.Time
	timer   *time.Timer
	gen     int
	closed  bool
	events  chan domain.Event
	now     func() time.Time
}

type SimulatedOption func(*SimulatedController)

// WithoutAudioFile lets Load succeed without a file on disk.
func WithoutAudioFile() SimulatedOption {
	return func(c *SimulatedController) { c.requireFile = false }
}

func NewSimulatedController(duration time.Duration, opts ...SimulatedOption) *SimulatedController {
	c := &SimulatedController{
		duration:    duration,
		requireFile: true,
		events:      make(chan domain.Event, 8),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SimulatedController) Load(_ context.Context, path string) error {
	if c.requireFile {
		if err := checkAudio(path); err != nil {
			return err
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
	c.offset = 0
	return nil
}

func (c *SimulatedController) Play(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return apperrors.ErrNotLoaded
	}
	if c.playing {
		return nil
	}
	if c.offset >= c.duration {
		c.offset = 0
	}
	c.startLocked()
	return nil
}

func (c *SimulatedController) startLocked() {
	c.playing = true
	c.started = c.now()
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.duration-c.offset, func() { c.finish(gen) })
}

func (c *SimulatedController) finish(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.playing || gen != c.gen {
		return
	}
	c.playing = false
	c.offset = c.duration
	c.emitLocked(domain.EventJustFinished)
}

func (c *SimulatedController) Pause(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return nil
	}
	c.stopTimerLocked()
	c.offset = c.positionLocked()
	c.playing = false
	c.emitLocked(domain.EventStatusChanged)
	return nil
}

func (c *SimulatedController) ReplayFromStart(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return apperrors.ErrNotLoaded
	}
	c.stopTimerLocked()
	c.offset = 0
	c.startLocked()
	c.emitLocked(domain.EventStatusChanged)
	return nil
}

func (c *SimulatedController) Status(context.Context) (domain.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked(), nil
}

func (c *SimulatedController) Events() <-chan domain.Event { return c.events }

func (c *SimulatedController) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.stopTimerLocked()
	c.playing = false
	c.closed = true
	close(c.events)
	return nil
}

func (c *SimulatedController) positionLocked() time.Duration {
	pos := c.offset
	if c.playing {
		pos += c.now().Sub(c.started)
	}
	if pos > c.duration {
		pos = c.duration
	}
	return pos
}

func (c *SimulatedController) statusLocked() domain.Status {
	return domain.Status{
		IsLoaded:       c.loaded,
		IsPlaying:      c.playing,
		PositionMillis: c.positionLocked().Milliseconds(),
		DurationMillis: c.duration.Milliseconds(),
	}
}

func (c *SimulatedController) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *SimulatedController) emitLocked(kind domain.EventKind) {
	if c.closed {
		return
	}
	emit(c.events, domain.Event{Kind: kind, Status: c.statusLocked()})
}
