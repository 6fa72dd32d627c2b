package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderReflectsStoredProgress(t *testing.T) {
	rec := NewPrometheusRecorder(nil)
	rec.IncReminderFired()
	rec.ObserveProgress(Progress{CompletedToday: 7, DailyTarget: 7, Streak: 3, TotalCompleted: 40})

	require.Equal(t, 7.0, testutil.ToFloat64(rec.completedToday))
	require.Equal(t, 7.0, testutil.ToFloat64(rec.dailyTarget))
	require.Equal(t, 3.0, testutil.ToFloat64(rec.streak))
	require.Equal(t, 40.0, testutil.ToFloat64(rec.totalCompleted))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.goalMet))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.remindersFired))

	// A later reading replaces the earlier one rather than adding to it.
	rec.ObserveProgress(Progress{CompletedToday: 0, DailyTarget: 7, Streak: 3, TotalCompleted: 40})
	require.Equal(t, 0.0, testutil.ToFloat64(rec.goalMet))
	require.Equal(t, 40.0, testutil.ToFloat64(rec.totalCompleted))

	srv := httptest.NewServer(rec.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "sankalp_streak_days 3")
	require.Contains(t, buf.String(), "sankalp_completions_all_time 40")
}

func TestProgressGoalMet(t *testing.T) {
	require.False(t, Progress{CompletedToday: 0, DailyTarget: 0}.GoalMet())
	require.False(t, Progress{CompletedToday: 6, DailyTarget: 7}.GoalMet())
	require.True(t, Progress{CompletedToday: 8, DailyTarget: 7}.GoalMet())
}
