package in

import (
	"context"

	"sankalp/internal/modules/sankalp/dto"
	sankalpin "sankalp/internal/modules/sankalp/port/in"
)

// TUIHandler exposes the tracker to the terminal UI in screen terms: focus,
// foreground, and the home screen buttons.
type TUIHandler struct {
	usecase sankalpin.Usecase
}

func NewTUIHandler(usecase sankalpin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Focus(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.LoadAndRollover(ctx)
}

func (h TUIHandler) Foreground(ctx context.Context) (dto.ResumeOutput, error) {
	return h.usecase.ResumePrompt(ctx)
}

func (h TUIHandler) MarkOne(ctx context.Context) (dto.CompletionOutput, error) {
	return h.usecase.RecordCompletion(ctx)
}

func (h TUIHandler) Undo(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.UndoLast(ctx)
}

func (h TUIHandler) Onboard(ctx context.Context, target int, name, email string) (dto.StateOutput, error) {
	return h.usecase.SetGoalAndProfile(ctx, dto.OnboardInput{Target: target, Name: name, Email: email})
}

func (h TUIHandler) GoalOptions() []int { return h.usecase.GoalOptions() }

func (h TUIHandler) Settings(ctx context.Context, autoLoop, resumePrompt *bool) (dto.StateOutput, error) {
	return h.usecase.UpdateSettings(ctx, dto.SettingsInput{AutoLoopToTarget: autoLoop, AutoResumePrompt: resumePrompt})
}
