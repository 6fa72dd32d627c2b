package out

import (
	"context"

	"sankalp/internal/modules/sankalp/domain"
	"sankalp/internal/platform/metrics"
)

// StateStore persists the single sankalp record. Load reports found=false and
// default state when nothing usable is stored.
type StateStore interface {
	Load(ctx context.Context) (domain.State, bool, error)
	Save(ctx context.Context, state domain.State) error
}

// Notifier delivers the celebration notice and asks for permission to send
// reminders.
type Notifier interface {
	GoalComplete(ctx context.Context, state domain.State) error
	RequestPermission(ctx context.Context) (bool, error)
}

// ProgressRecorder receives a reading of the record after every load or write.
type ProgressRecorder interface {
	ObserveProgress(p metrics.Progress)
}
