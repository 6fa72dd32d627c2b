package in

import (
	"context"

	"sankalp/internal/modules/sankalp/dto"
)

type Usecase interface {
	LoadAndRollover(ctx context.Context) (dto.StateOutput, error)
	RecordCompletion(ctx context.Context) (dto.CompletionOutput, error)
	UndoLast(ctx context.Context) (dto.StateOutput, error)
	SetGoalAndProfile(ctx context.Context, input dto.OnboardInput) (dto.StateOutput, error)
	UpdateSettings(ctx context.Context, input dto.SettingsInput) (dto.StateOutput, error)
	ResumePrompt(ctx context.Context) (dto.ResumeOutput, error)
	Snapshot(ctx context.Context) (dto.StateOutput, error)
	GoalOptions() []int
}
