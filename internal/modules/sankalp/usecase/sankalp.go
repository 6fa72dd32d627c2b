package usecase

import (
	"context"

	"sankalp/internal/modules/sankalp/domain"
	"sankalp/internal/modules/sankalp/dto"
	sankalpin "sankalp/internal/modules/sankalp/port/in"
	"sankalp/internal/modules/sankalp/service"
)

type Interactor struct {
	svc *service.TrackerService
}

func NewInteractor(svc *service.TrackerService) sankalpin.Usecase {
	return &Interactor{svc: svc}
}

// GoalOptions returns a copy of the onboarding menu of daily targets.
func (i *Interactor) GoalOptions() []int {
	return append([]int(nil), domain.GoalOptions...)
}

func (i *Interactor) LoadAndRollover(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.svc.LoadAndRollover(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func (i *Interactor) RecordCompletion(ctx context.Context) (dto.CompletionOutput, error) {
	state, completion, err := i.svc.RecordCompletion(ctx)
	if err != nil {
		return dto.CompletionOutput{}, err
	}
	return dto.CompletionOutput{
		State:       toOutput(state),
		GoalReached: completion.GoalReached,
		Continue:    completion.Decision == domain.DecisionContinue,
	}, nil
}

func (i *Interactor) UndoLast(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.svc.UndoLast(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func (i *Interactor) SetGoalAndProfile(ctx context.Context, input dto.OnboardInput) (dto.StateOutput, error) {
	state, err := i.svc.SetGoalAndProfile(ctx, input.Target, input.Name, input.Email)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.SettingsInput) (dto.StateOutput, error) {
	state, err := i.svc.UpdateSettings(ctx, input.AutoLoopToTarget, input.AutoResumePrompt)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func (i *Interactor) ResumePrompt(ctx context.Context) (dto.ResumeOutput, error) {
	state, err := i.svc.Observe(ctx)
	if err != nil {
		return dto.ResumeOutput{}, err
	}
	return dto.ResumeOutput{Prompt: state.ShouldPromptResume(), State: toOutput(state)}, nil
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.svc.Snapshot(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func toOutput(s domain.State) dto.StateOutput {
	return dto.StateOutput{
		DailyTarget:           s.DailyTarget,
		CompletedToday:        s.CompletedToday,
		LastDate:              s.LastDate,
		Streak:                s.Streak,
		TotalCompletedAllTime: s.TotalCompletedAllTime,
		Name:                  s.User.Name,
		Email:                 s.User.Email,
		AutoLoopToTarget:      s.Settings.AutoLoopToTarget,
		AutoResumePrompt:      s.Settings.AutoResumePrompt,
		Onboarded:             s.IsOnboarded(),
		GoalMet:               s.GoalMet(),
	}
}
