package usecase

import (
	"context"

	"sankalp/internal/modules/player/domain"
	"sankalp/internal/modules/player/dto"
	playerin "sankalp/internal/modules/player/port/in"
	"sankalp/internal/modules/player/service"
)

type Interactor struct {
	svc *service.Orchestrator
}

func NewInteractor(svc *service.Orchestrator) playerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) error {
	return i.svc.Load(ctx)
}

func (i *Interactor) TogglePlay(ctx context.Context) (dto.StatusOutput, error) {
	st, phase, err := i.svc.TogglePlay(ctx)
	return toStatusOutput(st, phase), err
}

func (i *Interactor) Pause(ctx context.Context) error {
	return i.svc.Pause(ctx)
}

func (i *Interactor) Run(ctx context.Context) error {
	return i.svc.Run(ctx)
}

func (i *Interactor) Updates() <-chan dto.Update {
	return i.svc.Updates()
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	st, phase, err := i.svc.Status(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return toStatusOutput(st, phase), nil
}

func (i *Interactor) BeadIndex(input dto.BeadInput) int {
	return domain.BeadIndex(input.PositionMillis, input.DurationMillis)
}

func (i *Interactor) FilledBeads(completed, target int) int {
	return domain.FilledBeads(completed, target)
}

func (i *Interactor) Close() error {
	return i.svc.Close()
}

func toStatusOutput(st domain.Status, phase domain.Phase) dto.StatusOutput {
	return dto.StatusOutput{
		Phase:          phase.String(),
		Loaded:         st.IsLoaded,
		Playing:        st.IsPlaying,
		PositionMillis: st.PositionMillis,
		DurationMillis: st.DurationMillis,
		BeadIndex:      domain.BeadIndex(st.PositionMillis, st.DurationMillis),
	}
}
