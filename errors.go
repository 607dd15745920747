package alsa

import "errors"

// Sentinel errors identifying which negotiation or streaming step failed.
// They are wrapped around the underlying driver error, so callers can both
// discriminate the step with errors.Is and inspect the cause.
var (
	ErrAccessModeUnsupported   = errors.New("access mode unsupported")
	ErrFormatUnsupported       = errors.New("sample format unsupported")
	ErrRateNegotiation         = errors.New("sample rate negotiation failed")
	ErrChannelCountUnsupported = errors.New("channel count unsupported")
	ErrPeriodNegotiation       = errors.New("period count negotiation failed")
	ErrBufferSizeNegotiation   = errors.New("buffer size negotiation failed")
	ErrCommitFailed            = errors.New("hardware parameter commit failed")
	ErrWriteFailed             = errors.New("write to sound card failed")
	ErrRecoveryFailed          = errors.New("stream recovery failed")
	ErrNilBuffer               = errors.New("nil sample buffer")
)
