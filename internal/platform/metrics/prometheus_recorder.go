package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics. Progress
// series are gauges set from the stored record, so the daemon can report
// completions made by other processes.
type PrometheusRecorder struct {
	reg            *prom.Registry
	completedToday prom.Gauge
	dailyTarget    prom.Gauge
	streak         prom.Gauge
	totalCompleted prom.Gauge
	goalMet        prom.Gauge
	remindersFired prom.Counter
}

// NewPrometheusRecorder registers the sankalp collectors on reg (a fresh
// registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	gauge := func(name, help string) prom.Gauge {
		return prom.NewGauge(prom.GaugeOpts{Namespace: "sankalp", Name: name, Help: help})
	}
	pr := &PrometheusRecorder{
		reg:            reg,
		completedToday: gauge("completed_today", "Completions since the last daily rollover"),
		dailyTarget:    gauge("daily_target", "Recitations committed to per day"),
		streak:         gauge("streak_days", "Current streak in days"),
		totalCompleted: gauge("completions_all_time", "Recitations completed since the first run"),
		goalMet:        gauge("goal_met", "1 when today's target has been reached"),
		remindersFired: prom.NewCounter(prom.CounterOpts{
			Namespace: "sankalp",
			Name:      "reminders_fired_total",
			Help:      "Reminder notifications delivered by this process",
		}),
	}
	reg.MustRegister(pr.completedToday, pr.dailyTarget, pr.streak, pr.totalCompleted, pr.goalMet, pr.remindersFired)
	return pr
}

func (p *PrometheusRecorder) ObserveProgress(pg Progress) {
	p.completedToday.Set(float64(pg.CompletedToday))
	p.dailyTarget.Set(float64(pg.DailyTarget))
	p.streak.Set(float64(pg.Streak))
	p.totalCompleted.Set(float64(pg.TotalCompleted))
	if pg.GoalMet() {
		p.goalMet.Set(1)
	} else {
		p.goalMet.Set(0)
	}
}

func (p *PrometheusRecorder) IncReminderFired() {
	p.remindersFired.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}
