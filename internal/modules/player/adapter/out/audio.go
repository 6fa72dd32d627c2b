package out

import (
	"fmt"
	"os"

	"sankalp/internal/modules/player/domain"
	apperrors "sankalp/internal/platform/errors"
)

// emit never blocks; when the buffer is full the oldest event is dropped.
func emit(ch chan domain.Event, ev domain.Event) {
	select {
	case ch <- ev:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- ev:
	default:
	}
}

func checkAudio(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrAudioUnavailable, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", apperrors.ErrAudioUnavailable, path)
	}
	return nil
}
