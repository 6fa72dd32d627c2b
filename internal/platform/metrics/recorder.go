package metrics

// Progress is a reading of the stored sankalp record. Every series derived
// from it can be rebuilt by any process that reads the store.
type Progress struct {
	CompletedToday int
	DailyTarget    int
	Streak         int
	TotalCompleted int
}

func (p Progress) GoalMet() bool {
	return p.DailyTarget > 0 && p.CompletedToday >= p.DailyTarget
}

// Recorder receives progress and reminder observations. Implementations must
// be safe for concurrent use.
type Recorder interface {
	ObserveProgress(p Progress)
	IncReminderFired()
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveProgress(Progress) {}
func (NoopRecorder) IncReminderFired()        {}
