package out

import (
	"context"

	"sankalp/internal/modules/player/dto"
	playerout "sankalp/internal/modules/player/port/out"
	sankalpin "sankalp/internal/modules/sankalp/port/in"
)

type SankalpTrackerAdapter struct {
	sankalp sankalpin.Usecase
}

func NewSankalpTrackerAdapter(sankalp sankalpin.Usecase) playerout.Tracker {
	return &SankalpTrackerAdapter{sankalp: sankalp}
}

func (a *SankalpTrackerAdapter) RecordCompletion(ctx context.Context) (dto.Completion, error) {
	out, err := a.sankalp.RecordCompletion(ctx)
	if err != nil {
		return dto.Completion{}, err
	}
	return dto.Completion{
		CompletedToday: out.State.CompletedToday,
		DailyTarget:    out.State.DailyTarget,
		Streak:         out.State.Streak,
		GoalReached:    out.GoalReached,
		Continue:       out.Continue,
	}, nil
}
