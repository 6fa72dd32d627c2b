package in

import (
	"context"
	"errors"
	"fmt"

	"sankalp/internal/modules/player/dto"
	playerin "sankalp/internal/modules/player/port/in"
)

type CLIHandler struct {
	usecase playerin.Usecase
}

func NewCLIHandler(usecase playerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Bead(positionMillis, durationMillis int64) int {
	return h.usecase.BeadIndex(dto.BeadInput{PositionMillis: positionMillis, DurationMillis: durationMillis})
}

// Play loads the track, starts it, and forwards updates to onUpdate until
// playback settles in idle or ctx is done.
func (h CLIHandler) Play(ctx context.Context, onUpdate func(dto.Update)) error {
	if err := h.usecase.Load(ctx); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- h.usecase.Run(runCtx) }()

	if _, err := h.usecase.TogglePlay(ctx); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			_ = h.usecase.Pause(context.Background())
			cancel()
			<-runErr
			return nil
		case u, ok := <-h.usecase.Updates():
			if !ok {
				return errors.New("player closed")
			}
			if onUpdate != nil {
				onUpdate(u)
			}
			if u.Completion != nil && !u.Completion.Continue {
				cancel()
				<-runErr
				return nil
			}
			if u.Notice != "" {
				cancel()
				<-runErr
				return errors.New(u.Notice)
			}
		}
	}
}
