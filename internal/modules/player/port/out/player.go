package out

import (
	"context"

	"sankalp/internal/modules/player/domain"
	"sankalp/internal/modules/player/dto"
)

// Controller drives one audio track. Events must carry exactly one
// EventJustFinished per completed playthrough.
type Controller interface {
	Load(ctx context.Context, path string) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	ReplayFromStart(ctx context.Context) error
	Status(ctx context.Context) (domain.Status, error)
	Events() <-chan domain.Event
	Close() error
}

// Tracker records one completed playthrough.
type Tracker interface {
	RecordCompletion(ctx context.Context) (dto.Completion, error)
}
