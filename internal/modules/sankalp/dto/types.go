package dto

type StateOutput struct {
	DailyTarget           int
	CompletedToday        int
	LastDate              string
	Streak                int
	TotalCompletedAllTime int
	Name                  string
	Email                 string
	AutoLoopToTarget      bool
	AutoResumePrompt      bool
	Onboarded             bool
	GoalMet               bool
}

type CompletionOutput struct {
	State       StateOutput
	GoalReached bool
	// Continue is true when playback should restart automatically.
	Continue bool
}

type OnboardInput struct {
	Target int
	Name   string
	Email  string
}

// SettingsInput leaves a toggle unchanged when its pointer is nil.
type SettingsInput struct {
	AutoLoopToTarget *bool
	AutoResumePrompt *bool
}

type ResumeOutput struct {
	Prompt bool
	State  StateOutput
}
