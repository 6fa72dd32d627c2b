package out

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sankalp/internal/modules/player/domain"
	apperrors "sankalp/internal/platform/errors"
)

// FilePlaceholder in a player command is replaced with the track path.
const FilePlaceholder = "{file}"

// ProcessController plays the track through an external command such as
// ffplay or mpv. Pause suspends the process and play resumes it; the track
// counts as finished when the process exits cleanly.
type ProcessController struct {
	command  []string
	duration time.Duration
	lookPath func(string) (string, error)
	logger   zerolog.Logger

	mu      sync.Mutex
	path    string
	loaded  bool
	cmd     *exec.Cmd
	playing bool
	paused  bool
	offset  time.Duration
	started time.Time
	gen     int
	closed  bool
	events  chan domain.Event
}

func NewProcessController(command []string, duration time.Duration, logger zerolog.Logger) *ProcessController {
	return &ProcessController{
		command:  append([]string(nil), command...),
		duration: duration,
		lookPath: exec.LookPath,
		logger:   logger,
		events:   make(chan domain.Event, 8),
	}
}

func (c *ProcessController) Load(_ context.Context, path string) error {
	if len(c.command) == 0 {
		return fmt.Errorf("%w: no player command configured", apperrors.ErrInvalidInput)
	}
	if err := checkAudio(path); err != nil {
		return err
	}
	if _, err := c.lookPath(c.command[0]); err != nil {
		return fmt.Errorf("%w: player %q not found", apperrors.ErrAudioUnavailable, c.command[0])
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = path
	c.loaded = true
	return nil
}

func (c *ProcessController) Play(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return apperrors.ErrNotLoaded
	}
	if c.playing {
		return nil
	}
	if c.cmd != nil && c.paused {
		if err := resume(c.cmd.Process); err != nil {
			return fmt.Errorf("resume player: %w", err)
		}
		c.paused = false
		c.playing = true
		c.started = time.Now()
		c.emitLocked(domain.EventStatusChanged)
		return nil
	}
	return c.spawnLocked()
}

func (c *ProcessController) spawnLocked() error {
	args := expandCommand(c.command, c.path)
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	c.gen++
	gen := c.gen
	c.cmd = cmd
	c.offset = 0
	c.started = time.Now()
	c.playing = true
	c.paused = false
	c.logger.Debug().Int("pid", cmd.Process.Pid).Msg("player started")
	go c.wait(cmd, gen)
	c.emitLocked(domain.EventStatusChanged)
	return nil
}

func (c *ProcessController) wait(cmd *exec.Cmd, gen int) {
	err := cmd.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return
	}
	c.cmd = nil
	c.playing = false
	c.paused = false
	if err != nil {
		c.logger.Warn().Err(err).Msg("player exited with error")
		c.offset = 0
		c.emitLocked(domain.EventStatusChanged)
		return
	}
	c.offset = c.duration
	c.emitLocked(domain.EventJustFinished)
}

func (c *ProcessController) Pause(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing || c.cmd == nil {
		return nil
	}
	if err := suspend(c.cmd.Process); err != nil {
		return fmt.Errorf("suspend player: %w", err)
	}
	c.offset = c.positionLocked()
	c.playing = false
	c.paused = true
	c.emitLocked(domain.EventStatusChanged)
	return nil
}

func (c *ProcessController) ReplayFromStart(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return apperrors.ErrNotLoaded
	}
	c.killLocked()
	return c.spawnLocked()
}

func (c *ProcessController) Status(context.Context) (domain.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked(), nil
}

func (c *ProcessController) Events() <-chan domain.Event { return c.events }

func (c *ProcessController) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.killLocked()
	c.closed = true
	close(c.events)
	return nil
}

// killLocked bumps the generation first so the waiter does not report the
// exit as a finished playthrough.
func (c *ProcessController) killLocked() {
	c.gen++
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	c.cmd = nil
	c.playing = false
	c.paused = false
}

func (c *ProcessController) positionLocked() time.Duration {
	pos := c.offset
	if c.playing {
		pos += time.Since(c.started)
	}
	if pos > c.duration {
		pos = c.duration
	}
	return pos
}

func (c *ProcessController) statusLocked() domain.Status {
	return domain.Status{
		IsLoaded:       c.loaded,
		IsPlaying:      c.playing,
		PositionMillis: c.positionLocked().Milliseconds(),
		DurationMillis: c.duration.Milliseconds(),
	}
}

func (c *ProcessController) emitLocked(kind domain.EventKind) {
	if c.closed {
		return
	}
	emit(c.events, domain.Event{Kind: kind, Status: c.statusLocked()})
}

func expandCommand(command []string, path string) []string {
	out := make([]string, 0, len(command)+1)
	replaced := false
	for _, arg := range command {
		if strings.Contains(arg, FilePlaceholder) {
			replaced = true
			arg = strings.ReplaceAll(arg, FilePlaceholder, path)
		}
		out = append(out, arg)
	}
	if !replaced {
		out = append(out, path)
	}
	return out
}
