package in

import (
	"context"

	"sankalp/internal/modules/reminder/dto"
)

type Usecase interface {
	List(ctx context.Context) (dto.ListOutput, error)
	Add(ctx context.Context, timeOfDay string) (dto.ListOutput, error)
	RemoveAt(ctx context.Context, index int) (dto.ListOutput, error)
	ScheduleDefaults(ctx context.Context) (dto.ListOutput, error)
	Clear(ctx context.Context) (dto.ListOutput, error)
	Sync(ctx context.Context) (dto.SyncOutput, error)
}
