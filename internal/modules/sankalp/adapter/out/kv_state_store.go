package out

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"sankalp/internal/modules/sankalp/domain"
	sankalpout "sankalp/internal/modules/sankalp/port/out"
	"sankalp/internal/platform/kv"
)

// KVStateStore keeps the record as JSON under kv.KeyState.
type KVStateStore struct {
	kv     kv.Store
	logger zerolog.Logger
}

func NewKVStateStore(store kv.Store, logger zerolog.Logger) sankalpout.StateStore {
	return &KVStateStore{kv: store, logger: logger}
}

func (s *KVStateStore) Load(ctx context.Context) (domain.State, bool, error) {
	raw, found, err := s.kv.Get(ctx, kv.KeyState)
	if err != nil {
		return domain.State{}, false, fmt.Errorf("read state: %w", err)
	}
	if !found {
		return domain.Default(), false, nil
	}
	state, ok := domain.Decode(raw)
	if !ok {
		s.logger.Warn().Msg("stored state unreadable, using defaults")
	}
	return state, ok, nil
}

func (s *KVStateStore) Save(ctx context.Context, state domain.State) error {
	payload, err := domain.Encode(state)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, kv.KeyState, payload); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
