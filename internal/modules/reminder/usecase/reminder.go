package usecase

import (
	"context"

	"sankalp/internal/modules/reminder/domain"
	"sankalp/internal/modules/reminder/dto"
	reminderin "sankalp/internal/modules/reminder/port/in"
	"sankalp/internal/modules/reminder/service"
)

type Interactor struct {
	svc *service.ReminderService
}

func NewInteractor(svc *service.ReminderService) reminderin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	return toOutput(i.svc.List(ctx))
}

func (i *Interactor) Add(ctx context.Context, timeOfDay string) (dto.ListOutput, error) {
	return toOutput(i.svc.Add(ctx, timeOfDay))
}

func (i *Interactor) RemoveAt(ctx context.Context, index int) (dto.ListOutput, error) {
	return toOutput(i.svc.RemoveAt(ctx, index))
}

func (i *Interactor) ScheduleDefaults(ctx context.Context) (dto.ListOutput, error) {
	return toOutput(i.svc.ScheduleDefaults(ctx))
}

func (i *Interactor) Clear(ctx context.Context) (dto.ListOutput, error) {
	return toOutput(i.svc.Clear(ctx))
}

func (i *Interactor) Sync(ctx context.Context) (dto.SyncOutput, error) {
	res, err := i.svc.Sync(ctx)
	if err != nil {
		return dto.SyncOutput{}, err
	}
	return dto.SyncOutput{Scheduled: res.Scheduled, Skipped: res.Skipped, Permitted: res.Permitted}, nil
}

func toOutput(list domain.List, err error) (dto.ListOutput, error) {
	if err != nil {
		return dto.ListOutput{}, err
	}
	out := dto.ListOutput{Reminders: make([]dto.ReminderOutput, 0, len(list))}
	for i, raw := range list {
		label := "??:??"
		if tod, perr := domain.ParseTimeOfDay(raw); perr == nil {
			label = tod.String()
		}
		out.Reminders = append(out.Reminders, dto.ReminderOutput{Index: i, Time: label, Raw: raw})
	}
	return out, nil
}
