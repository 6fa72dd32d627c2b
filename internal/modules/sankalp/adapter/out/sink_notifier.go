package out

import (
	"context"

	"sankalp/internal/modules/sankalp/domain"
	sankalpout "sankalp/internal/modules/sankalp/port/out"
	"sankalp/internal/platform/notify"
)

const (
	goalCompleteTitle = "Jai Hanuman 🙏"
	goalCompleteBody  = "Today’s sankalp complete. Your streak grows stronger."
)

type SinkNotifier struct {
	sink notify.Sink
}

func NewSinkNotifier(sink notify.Sink) sankalpout.Notifier {
	return &SinkNotifier{sink: sink}
}

func (n *SinkNotifier) GoalComplete(ctx context.Context, _ domain.State) error {
	return n.sink.Notify(ctx, notify.Notice{Title: goalCompleteTitle, Body: goalCompleteBody})
}

func (n *SinkNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return n.sink.RequestPermission(ctx)
}
