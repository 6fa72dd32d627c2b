package dto

// Completion is what the tracker reported for a finished playthrough.
type Completion struct {
	CompletedToday int
	DailyTarget    int
	Streak         int
	GoalReached    bool
	Continue       bool
}

// Update is published to the presentation layer whenever the pointer bead,
// phase, or tally moves.
type Update struct {
	Phase          string
	HasPointer     bool
	BeadIndex      int
	PositionMillis int64
	DurationMillis int64
	Completion     *Completion
	Notice         string
}

type BeadInput struct {
	PositionMillis int64
	DurationMillis int64
}

type StatusOutput struct {
	Phase          string
	Loaded         bool
	Playing        bool
	PositionMillis int64
	DurationMillis int64
	BeadIndex      int
}
