package out

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"sankalp/internal/modules/reminder/domain"
	reminderout "sankalp/internal/modules/reminder/port/out"
	"sankalp/internal/platform/kv"
)

type KVListStore struct {
	kv     kv.Store
	logger zerolog.Logger
}

func NewKVListStore(store kv.Store, logger zerolog.Logger) reminderout.ListStore {
	return &KVListStore{kv: store, logger: logger}
}

func (s *KVListStore) Load(ctx context.Context) (domain.List, error) {
	raw, found, err := s.kv.Get(ctx, kv.KeyReminders)
	if err != nil {
		return nil, fmt.Errorf("read reminders: %w", err)
	}
	if !found {
		return domain.List{}, nil
	}
	list, ok := domain.DecodeList(raw)
	if !ok {
		s.logger.Warn().Msg("stored reminders unreadable, starting empty")
	}
	return list, nil
}

func (s *KVListStore) Save(ctx context.Context, list domain.List) error {
	payload, err := domain.EncodeList(list)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, kv.KeyReminders, payload); err != nil {
		return fmt.Errorf("write reminders: %w", err)
	}
	return nil
}
