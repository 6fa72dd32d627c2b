package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

type Notice struct {
	Title string
	Body  string
}

// Sink delivers notices to the user.
type Sink interface {
	Notify(ctx context.Context, n Notice) error
	RequestPermission(ctx context.Context) (bool, error)
}

// DesktopSink shells out to the platform notifier (notify-send on linux,
// osascript on darwin).
type DesktopSink struct {
	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
	goos     string
}

func NewDesktopSink() *DesktopSink {
	return &DesktopSink{lookPath: exec.LookPath, command: exec.CommandContext, goos: runtime.GOOS}
}

func (s *DesktopSink) argv(n Notice) (string, []string, error) {
	switch s.goos {
	case "linux":
		return "notify-send", []string{"--app-name=sankalp", n.Title, n.Body}, nil
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", n.Body, n.Title)
		return "osascript", []string{"-e", script}, nil
	default:
		return "", nil, fmt.Errorf("desktop notifications are not supported on %s", s.goos)
	}
}

func (s *DesktopSink) Notify(ctx context.Context, n Notice) error {
	name, args, err := s.argv(n)
	if err != nil {
		return err
	}
	if err := s.command(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// RequestPermission reports whether a notifier binary is available; there is
// no interactive grant on desktop systems.
func (s *DesktopSink) RequestPermission(_ context.Context) (bool, error) {
	name, _, err := s.argv(Notice{})
	if err != nil {
		return false, err
	}
	if _, err := s.lookPath(name); err != nil {
		return false, nil
	}
	return true, nil
}

// LogSink writes notices to the log and remembers them.
type LogSink struct {
	logger zerolog.Logger
	mu     sync.Mutex
	sent   []Notice
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(_ context.Context, n Notice) error {
	s.mu.Lock()
	s.sent = append(s.sent, n)
	s.mu.Unlock()
	s.logger.Info().Str("title", n.Title).Str("body", n.Body).Msg("notification")
	return nil
}

func (s *LogSink) RequestPermission(context.Context) (bool, error) { return true, nil }

// Sent returns a copy of every notice delivered so far.
func (s *LogSink) Sent() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notice(nil), s.sent...)
}
