package in

import (
	"context"

	"sankalp/internal/modules/reminder/dto"
	reminderin "sankalp/internal/modules/reminder/port/in"
)

type CLIHandler struct {
	usecase reminderin.Usecase
}

func NewCLIHandler(usecase reminderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Add(ctx context.Context, at string) (dto.ListOutput, error) {
	return h.usecase.Add(ctx, at)
}

// Remove takes the 1-based position shown by List.
func (h CLIHandler) Remove(ctx context.Context, position int) (dto.ListOutput, error) {
	return h.usecase.RemoveAt(ctx, position-1)
}

func (h CLIHandler) Defaults(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.ScheduleDefaults(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) Sync(ctx context.Context) (dto.SyncOutput, error) {
	return h.usecase.Sync(ctx)
}
