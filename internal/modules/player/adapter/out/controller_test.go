package out

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sankalp/internal/modules/player/domain"
	apperrors "sankalp/internal/platform/errors"
)

func writeTrack(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3"), 0o644))
	return path
}

func nextEvent(t *testing.T, ch <-chan domain.Event, kind domain.EventKind) domain.Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			require.True(t, ok, "event stream closed")
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event kind %d", kind)
		}
	}
}

func TestSimulatedControllerMissingAudio(t *testing.T) {
	t.Parallel()
	c := NewSimulatedController(time.Second)
	err := c.Load(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"))
	require.ErrorIs(t, err, apperrors.ErrAudioUnavailable)
	require.ErrorIs(t, c.Play(context.Background()), apperrors.ErrNotLoaded)
}

func TestSimulatedControllerFinishesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewSimulatedController(40 * time.Millisecond)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Load(ctx, writeTrack(t)))
	require.NoError(t, c.Play(ctx))

	ev := nextEvent(t, c.Events(), domain.EventJustFinished)
	require.Equal(t, int64(40), ev.Status.PositionMillis)
	require.False(t, ev.Status.IsPlaying)

	select {
	case extra := <-c.Events():
		require.NotEqual(t, domain.EventJustFinished, extra.Kind, "finish reported twice")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSimulatedControllerPauseKeepsPosition(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewSimulatedController(time.Second, WithoutAudioFile())
	t.Cleanup(func() { _ = c.Close() })
	base := time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)
	now := base
	c.now = func() time.Time { return now }

	require.NoError(t, c.Load(ctx, "ignored"))
	require.NoError(t, c.Play(ctx))
	now = base.Add(300 * time.Millisecond)
	require.NoError(t, c.Pause(ctx))
	now = base.Add(5 * time.Second)

	st, err := c.Status(ctx)
	require.NoError(t, err)
	require.False(t, st.IsPlaying)
	require.Equal(t, int64(300), st.PositionMillis)

	require.NoError(t, c.ReplayFromStart(ctx))
	st, err = c.Status(ctx)
	require.NoError(t, err)
	require.True(t, st.IsPlaying)
	require.Equal(t, int64(0), st.PositionMillis)
}

func TestExpandCommand(t *testing.T) {
	t.Parallel()
	require.Equal(t, []string{"ffplay", "-nodisp", "/a b.mp3"}, expandCommand([]string{"ffplay", "-nodisp", "{file}"}, "/a b.mp3"))
	require.Equal(t, []string{"mpv", "/x.mp3"}, expandCommand([]string{"mpv"}, "/x.mp3"))
	require.Equal(t, []string{"play", "--input=/x.mp3"}, expandCommand([]string{"play", "--input={file}"}, "/x.mp3"))
}

func TestProcessControllerLoadErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewProcessController([]string{"definitely-not-a-player-binary"}, time.Second, zerolog.Nop())
	require.ErrorIs(t, c.Load(ctx, filepath.Join(t.TempDir(), "absent.mp3")), apperrors.ErrAudioUnavailable)
	require.ErrorIs(t, c.Load(ctx, writeTrack(t)), apperrors.ErrAudioUnavailable)

	empty := NewProcessController(nil, time.Second, zerolog.Nop())
	require.ErrorIs(t, empty.Load(ctx, writeTrack(t)), apperrors.ErrInvalidInput)
}

func TestProcessControllerReportsCleanExitAsFinish(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	t.Parallel()
	ctx := context.Background()
	c := NewProcessController([]string{"sh", "-c", "sleep 0.05", "player", "{file}"}, 50*time.Millisecond, zerolog.Nop())
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Load(ctx, writeTrack(t)))
	require.NoError(t, c.Play(ctx))

	ev := nextEvent(t, c.Events(), domain.EventJustFinished)
	require.Equal(t, int64(50), ev.Status.PositionMillis)
}

func TestProcessControllerReplayDoesNotReportKilledProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	t.Parallel()
	ctx := context.Background()
	c := NewProcessController([]string{"sh", "-c", "sleep 0.3", "player", "{file}"}, 300*time.Millisecond, zerolog.Nop())
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Load(ctx, writeTrack(t)))
	require.NoError(t, c.Play(ctx))
	require.NoError(t, c.ReplayFromStart(ctx))

	nextEvent(t, c.Events(), domain.EventJustFinished)
	select {
	case ev := <-c.Events():
		require.NotEqual(t, domain.EventJustFinished, ev.Kind, "killed process reported as finished")
	case <-time.After(200 * time.Millisecond):
	}
}
