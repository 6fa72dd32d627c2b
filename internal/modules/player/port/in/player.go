package in

import (
	"context"

	"sankalp/internal/modules/player/dto"
)

type Usecase interface {
	Load(ctx context.Context) error
	TogglePlay(ctx context.Context) (dto.StatusOutput, error)
	Pause(ctx context.Context) error
	Run(ctx context.Context) error
	Updates() <-chan dto.Update
	Status(ctx context.Context) (dto.StatusOutput, error)
	BeadIndex(input dto.BeadInput) int
	FilledBeads(completed, target int) int
	Close() error
}
