package alsa

import "fmt"

// Direction is the rounding preference passed to the near-value negotiation
// stages when the exact requested value is unavailable. It is a pass-through
// hint: drivers are free to ignore it, and in practice the selected value
// rarely depends on it.
type Direction int

const (
	RoundExact Direction = 0
	RoundDown  Direction = -1
	RoundUp    Direction = 1
)

// HardwareConfig describes the hardware parameters requested for a device
// session. Configure mutates SampleRate and Periods in place when the driver
// substitutes nearby supported values; after a successful pass both fields
// hold values the device actually accepted.
type HardwareConfig struct {
	// SampleRate is the requested rate in Hz; updated to the accepted rate.
	SampleRate uint32
	// RateDirection is the rounding hint for the rate negotiation.
	RateDirection Direction
	// PeriodSize is the number of frames per period, which controls the
	// PCM interrupt granularity.
	PeriodSize uint32
	// Periods is the requested number of periods per ring buffer; updated
	// to the accepted count.
	Periods uint32
	// PeriodDirection is the rounding hint for the period negotiation.
	PeriodDirection Direction
	// Access is the transfer mode.
	Access Access
	// Channels is the number of channels per frame.
	Channels uint32
	// Format is the sample format.
	Format Format
}

// HwNegotiator is the device-side contract Configure drives: the capability
// probe, the six constraint stages and the final commit. *Device implements
// it against the kernel; tests implement it with mocks.
type HwNegotiator interface {
	ProbeParams() (*HwParams, error)
	SetAccess(p *HwParams, a Access) error
	SetFormat(p *HwParams, f Format) error
	SetRateNear(p *HwParams, rate *uint32, dir Direction) error
	SetChannels(p *HwParams, channels uint32) error
	SetPeriodsNear(p *HwParams, periods *uint32, dir Direction) error
	SetBufferSizeNear(p *HwParams, frames *uint32) error
	CommitParams(p *HwParams) error
}

// Configure negotiates and commits the hardware parameters in cfg on an open
// device.
//
// The stages run in a fixed order: capability probe, access mode, sample
// format, rate, channels, periods, buffer size, commit. The pipeline is
// fail-fast: the first failing stage aborts the whole operation with a
// distinct error kind, nothing is retried or rolled back, and the device is
// left for the caller to close.
//
// Rate and period count are negotiated to the nearest supported value; the
// accepted values are written back into cfg. A substituted sample rate is
// reported with a warning on Logger but is not an error. The ring buffer is
// sized as PeriodSize*Periods frames; the driver's final choice for it is
// not reported back.
func Configure(h HwNegotiator, cfg *HardwareConfig) error {
	params, err := h.ProbeParams()
	if err != nil {
		return fmt.Errorf("reading hardware capabilities: %w", err)
	}

	if err := h.SetAccess(params, cfg.Access); err != nil {
		return fmt.Errorf("%w: %w", ErrAccessModeUnsupported, err)
	}

	if err := h.SetFormat(params, cfg.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrFormatUnsupported, err)
	}

	requested := cfg.SampleRate
	if err := h.SetRateNear(params, &cfg.SampleRate, cfg.RateDirection); err != nil {
		return fmt.Errorf("%w: %w", ErrRateNegotiation, err)
	}

	if cfg.SampleRate != requested {
		Logger.Warn("sample rate not supported, using nearest",
			"requested", requested, "using", cfg.SampleRate)
	}

	if err := h.SetChannels(params, cfg.Channels); err != nil {
		return fmt.Errorf("%w: %w", ErrChannelCountUnsupported, err)
	}

	if err := h.SetPeriodsNear(params, &cfg.Periods, cfg.PeriodDirection); err != nil {
		return fmt.Errorf("%w: %w", ErrPeriodNegotiation, err)
	}

	bufferFrames := cfg.PeriodSize * cfg.Periods
	if err := h.SetBufferSizeNear(params, &bufferFrames); err != nil {
		return fmt.Errorf("%w: %w", ErrBufferSizeNegotiation, err)
	}

	if err := h.CommitParams(params); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	return nil
}
