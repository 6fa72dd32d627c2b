package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrAudioUnavailable  = errors.New("audio unavailable")
	ErrNotLoaded         = errors.New("audio not loaded")
	ErrPermissionDenied  = errors.New("notification permission denied")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrInvalidTransition = errors.New("invalid playback transition")
)
