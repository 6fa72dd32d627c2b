package notify

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDesktopSinkArgv(t *testing.T) {
	s := &DesktopSink{goos: "linux"}
	name, args, err := s.argv(Notice{Title: "T", Body: "B"})
	require.NoError(t, err)
	require.Equal(t, "notify-send", name)
	require.Equal(t, []string{"--app-name=sankalp", "T", "B"}, args)

	s.goos = "darwin"
	name, args, err = s.argv(Notice{Title: "T", Body: "B"})
	require.NoError(t, err)
	require.Equal(t, "osascript", name)
	require.True(t, strings.Contains(args[1], `with title "T"`))

	s.goos = "plan9"
	_, _, err = s.argv(Notice{})
	require.Error(t, err)
}

func TestDesktopSinkPermissionFollowsBinaryAvailability(t *testing.T) {
	s := &DesktopSink{goos: "linux", lookPath: func(string) (string, error) { return "", exec.ErrNotFound }}
	granted, err := s.RequestPermission(context.Background())
	require.NoError(t, err)
	require.False(t, granted)

	s.lookPath = func(string) (string, error) { return "/usr/bin/notify-send", nil }
	granted, err = s.RequestPermission(context.Background())
	require.NoError(t, err)
	require.True(t, granted)
}

func TestDesktopSinkNotifyReportsCommandFailure(t *testing.T) {
	s := &DesktopSink{goos: "linux", command: func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "/nonexistent/notify-send")
	}}
	err := s.Notify(context.Background(), Notice{Title: "x"})
	require.Error(t, err)
	require.False(t, errors.Is(err, context.Canceled))
}

func TestLogSinkRecordsNotices(t *testing.T) {
	s := NewLogSink(zerolog.Nop())
	require.NoError(t, s.Notify(context.Background(), Notice{Title: "a", Body: "b"}))
	granted, err := s.RequestPermission(context.Background())
	require.NoError(t, err)
	require.True(t, granted)
	require.Equal(t, []Notice{{Title: "a", Body: "b"}}, s.Sent())
}
