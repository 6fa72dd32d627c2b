package in

import (
	"context"

	"sankalp/internal/modules/reminder/dto"
	reminderin "sankalp/internal/modules/reminder/port/in"
)

type TUIHandler struct {
	usecase reminderin.Usecase
}

func NewTUIHandler(usecase reminderin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) List(ctx context.Context) (dto.ListOutput, error) { return h.usecase.List(ctx) }

func (h TUIHandler) Add(ctx context.Context, at string) (dto.ListOutput, error) {
	return h.usecase.Add(ctx, at)
}

func (h TUIHandler) RemoveAt(ctx context.Context, index int) (dto.ListOutput, error) {
	return h.usecase.RemoveAt(ctx, index)
}

func (h TUIHandler) Defaults(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.ScheduleDefaults(ctx)
}
