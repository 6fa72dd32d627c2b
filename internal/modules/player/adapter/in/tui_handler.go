package in

import (
	"context"

	"sankalp/internal/modules/player/dto"
	playerin "sankalp/internal/modules/player/port/in"
)

type TUIHandler struct {
	usecase playerin.Usecase
}

func NewTUIHandler(usecase playerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Load(ctx context.Context) error { return h.usecase.Load(ctx) }

func (h TUIHandler) Run(ctx context.Context) error { return h.usecase.Run(ctx) }

func (h TUIHandler) Toggle(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.TogglePlay(ctx)
}

func (h TUIHandler) Pause(ctx context.Context) error { return h.usecase.Pause(ctx) }

func (h TUIHandler) Updates() <-chan dto.Update { return h.usecase.Updates() }

func (h TUIHandler) FilledBeads(completed, target int) int {
	return h.usecase.FilledBeads(completed, target)
}

func (h TUIHandler) Close() error { return h.usecase.Close() }
