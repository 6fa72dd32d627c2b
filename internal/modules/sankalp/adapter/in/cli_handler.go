package in

import (
	"context"

	"sankalp/internal/modules/sankalp/dto"
	sankalpin "sankalp/internal/modules/sankalp/port/in"
)

type CLIHandler struct {
	usecase sankalpin.Usecase
}

func NewCLIHandler(usecase sankalpin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.LoadAndRollover(ctx)
}

func (h CLIHandler) Raw(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Mark(ctx context.Context) (dto.CompletionOutput, error) {
	return h.usecase.RecordCompletion(ctx)
}

func (h CLIHandler) Undo(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.UndoLast(ctx)
}

func (h CLIHandler) Onboard(ctx context.Context, target int, name, email string) (dto.StateOutput, error) {
	return h.usecase.SetGoalAndProfile(ctx, dto.OnboardInput{Target: target, Name: name, Email: email})
}

func (h CLIHandler) Settings(ctx context.Context, autoLoop, resumePrompt *bool) (dto.StateOutput, error) {
	return h.usecase.UpdateSettings(ctx, dto.SettingsInput{AutoLoopToTarget: autoLoop, AutoResumePrompt: resumePrompt})
}

func (h CLIHandler) Resume(ctx context.Context) (dto.ResumeOutput, error) {
	return h.usecase.ResumePrompt(ctx)
}
