package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "sankalp/internal/platform/errors"
)

const DefaultTarget = 7

// GoalOptions is the menu offered during onboarding. Any positive target is
// accepted by Onboard.
var GoalOptions = []int{7, 11, 21, 108}

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Settings struct {
	AutoLoopToTarget bool `json:"autoLoopToTarget"`
	AutoResumePrompt bool `json:"autoResumePrompt"`
}

// State is the single persisted sankalp record.
type State struct {
	DailyTarget           int      `json:"dailyTarget"`
	CompletedToday        int      `json:"completedToday"`
	LastDate              string   `json:"lastDate"`
	Streak                int      `json:"streak"`
	TotalCompletedAllTime int      `json:"totalCompletedAllTime"`
	User                  User     `json:"user"`
	Settings              Settings `json:"settings"`
	// StreakCountedOn is the day the streak was last credited. Records written
	// before it existed decode with it empty and behave as before.
	StreakCountedOn string `json:"streakCountedOn,omitempty"`
}

type Decision string

const (
	DecisionContinue Decision = "continue"
	DecisionStop     Decision = "stop"
)

// Completion is the outcome of one recorded completion.
type Completion struct {
	GoalReached bool
	Decision    Decision
}

func Default() State {
	return State{
		DailyTarget: DefaultTarget,
		Settings:    Settings{AutoLoopToTarget: true, AutoResumePrompt: true},
	}
}

// Decode parses a persisted record. Absent or malformed input yields the
// defaults with ok=false; both cases are treated the same.
func Decode(raw []byte) (State, bool) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Default(), false
	}
	s := Default()
	if err := json.Unmarshal(raw, &s); err != nil {
		return Default(), false
	}
	return s.normalize(), true
}

func Encode(s State) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return payload, nil
}

func (s State) normalize() State {
	if s.DailyTarget <= 0 {
		s.DailyTarget = DefaultTarget
	}
	if s.CompletedToday < 0 {
		s.CompletedToday = 0
	}
	if s.Streak < 0 {
		s.Streak = 0
	}
	if s.TotalCompletedAllTime < 0 {
		s.TotalCompletedAllTime = 0
	}
	return s
}

// Rollover resets the daily tally when today differs from LastDate.
func (s *State) Rollover(today string) bool {
	if s.LastDate == today {
		return false
	}
	s.CompletedToday = 0
	s.LastDate = today
	return true
}

// RecordCompletion counts one completion. The streak is credited only by the
// completion that crosses the target (prev < target <= new), and at most once
// per day.
func (s *State) RecordCompletion(today string) Completion {
	prev := s.CompletedToday
	next := prev + 1
	s.CompletedToday = next
	s.TotalCompletedAllTime++
	s.LastDate = today

	out := Completion{Decision: DecisionStop}
	if next >= s.DailyTarget && prev < s.DailyTarget && s.StreakCountedOn != today {
		s.Streak++
		s.StreakCountedOn = today
		out.GoalReached = true
	}
	if s.Settings.AutoLoopToTarget && next < s.DailyTarget {
		out.Decision = DecisionContinue
	}
	return out
}

// Undo reverses one daily completion; it never touches streak or total.
func (s *State) Undo() bool {
	if s.CompletedToday <= 0 {
		return false
	}
	s.CompletedToday--
	return true
}

// Onboard replaces goal and profile, keeping historical counters.
func (s *State) Onboard(target int, name, email, today string) error {
	if target <= 0 {
		return fmt.Errorf("%w: daily target must be positive, got %d", apperrors.ErrInvalidInput, target)
	}
	s.DailyTarget = target
	s.User = User{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	s.CompletedToday = 0
	s.LastDate = today
	return nil
}

func (s State) GoalMet() bool {
	return s.CompletedToday >= s.DailyTarget
}

func (s State) IsOnboarded() bool {
	return strings.TrimSpace(s.User.Name) != ""
}

// ShouldPromptResume reports whether returning to the app should offer to
// continue today's sankalp.
func (s State) ShouldPromptResume() bool {
	return s.Settings.AutoResumePrompt && s.CompletedToday < s.DailyTarget
}
