package out

import (
	"context"

	"sankalp/internal/modules/reminder/domain"
)

type ListStore interface {
	Load(ctx context.Context) (domain.List, error)
	Save(ctx context.Context, list domain.List) error
}

type Scheduler interface {
	RequestPermission(ctx context.Context) (bool, error)
	ScheduleDaily(ctx context.Context, trigger domain.Trigger) error
	CancelAll(ctx context.Context) error
}
