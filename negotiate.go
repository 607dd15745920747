package alsa

import (
	"fmt"
	"unsafe"
)

// The methods in this file implement the staged hardware negotiation the
// configurator drives. Each stage narrows the HwParams context and asks the
// driver to refine it (HW_REFINE); CommitParams finally installs the result
// (HW_PARAMS), applies software parameters and prepares the stream.

// refine asks the driver to restrict the context to what the hardware
// actually supports. Fails if the context has become unsatisfiable.
func (d *Device) refine(p *HwParams) error {
	p.raw.Rmask = ^uint32(0)

	if err := ioctl(d.file.Fd(), sndrvPcmIoctlHwRefine, uintptr(unsafe.Pointer(&p.raw))); err != nil {
		return fmt.Errorf("ioctl HW_REFINE failed: %w", err)
	}

	return nil
}

// ProbeParams reads the device's full capability set as a fresh negotiation
// context.
func (d *Device) ProbeParams() (*HwParams, error) {
	p := NewHwParams()
	if err := d.refine(p); err != nil {
		return nil, err
	}

	return p, nil
}

// SetAccess constrains the context to a single transfer mode.
func (d *Device) SetAccess(p *HwParams, a Access) error {
	p.constrainMask(hwParamAccess, uint32(a))

	return d.refine(p)
}

// SetFormat constrains the context to a single sample format.
func (d *Device) SetFormat(p *HwParams, f Format) error {
	p.constrainMask(hwParamFormat, uint32(f))

	return d.refine(p)
}

// SetChannels constrains the context to an exact channel count.
func (d *Device) SetChannels(p *HwParams, channels uint32) error {
	p.constrain(hwParamChannels, channels)

	return d.refine(p)
}

// SetRateNear constrains the context to the supported sample rate nearest to
// *rate and writes the accepted rate back. The direction is a tie-break hint
// when the exact rate is unavailable; it cannot force a particular outcome.
func (d *Device) SetRateNear(p *HwParams, rate *uint32, dir Direction) error {
	return d.setNear(p, hwParamRate, rate, dir)
}

// SetPeriodsNear constrains the context to the supported period count nearest
// to *periods and writes the accepted count back.
func (d *Device) SetPeriodsNear(p *HwParams, periods *uint32, dir Direction) error {
	return d.setNear(p, hwParamPeriods, periods, dir)
}

// SetBufferSizeNear constrains the context to the supported ring buffer size
// (in frames) nearest to *frames and writes the accepted size back.
func (d *Device) SetBufferSizeNear(p *HwParams, frames *uint32) error {
	return d.setNear(p, hwParamBufferSize, frames, RoundExact)
}

// setNear implements the *_near negotiation: try the exact value first, and
// when the driver rejects it probe the nearest supported values above and
// below, picking one with the rounding direction as tie-break.
func (d *Device) setNear(p *HwParams, param int, val *uint32, dir Direction) error {
	want := *val

	exact := p.clone()
	exact.constrain(param, want)
	if err := d.refine(exact); err == nil {
		*p = *exact
		*val = p.value(param)

		return nil
	}

	var (
		up, down     uint32
		upOK, downOK bool
	)

	above := p.clone()
	above.constrainMin(param, want)
	if err := d.refine(above); err == nil {
		up = above.value(param)
		upOK = true
	}

	below := p.clone()
	below.constrainMax(param, want)
	if err := d.refine(below); err == nil {
		down = below.interval(param).MaxVal
		downOK = true
	}

	var chosen uint32
	switch {
	case !upOK && !downOK:
		return fmt.Errorf("no supported value near %d for hardware parameter %d", want, param)
	case upOK && !downOK:
		chosen = up
	case downOK && !upOK:
		chosen = down
	case dir == RoundDown:
		chosen = down
	case dir == RoundUp:
		chosen = up
	case up-want < want-down:
		chosen = up
	default:
		chosen = down
	}

	p.constrain(param, chosen)
	if err := d.refine(p); err != nil {
		return err
	}

	*val = p.value(param)

	return nil
}

// CommitParams installs the negotiated parameter set on the device. On
// success the driver-finalized values are read back into the handle, the
// software parameters are derived from them and the stream is prepared,
// matching the auto-prepare behavior of snd_pcm_hw_params.
func (d *Device) CommitParams(p *HwParams) error {
	p.raw.Rmask = ^uint32(0)

	if err := ioctl(d.file.Fd(), sndrvPcmIoctlHwParams, uintptr(unsafe.Pointer(&p.raw))); err != nil {
		return fmt.Errorf("ioctl HW_PARAMS failed: %w", err)
	}

	d.rate = p.Rate()
	d.channels = p.Channels()
	d.format = p.Format()
	d.access = p.AccessMode()
	d.periodSize = p.PeriodSize()
	d.periods = p.Periods()
	d.bufferSize = d.periodSize * d.periods

	if d.rate == 0 || d.channels == 0 || d.periodSize == 0 || d.periods == 0 {
		return fmt.Errorf("driver finalized invalid configuration (rate=%d channels=%d periodSize=%d periods=%d)",
			d.rate, d.channels, d.periodSize, d.periods)
	}

	sw := &sndPcmSwParams{}
	sw.TstampMode = 1 // SNDRV_PCM_TSTAMP_ENABLE
	sw.PeriodStep = 1
	sw.AvailMin = uframesT(d.periodSize)
	sw.StartThreshold = uframesT(d.bufferSize / 2)
	sw.StopThreshold = uframesT(d.bufferSize)
	sw.XferAlign = uframesT(d.periodSize / 2) // needed for old kernels

	if err := ioctl(d.file.Fd(), sndrvPcmIoctlSwParams, uintptr(unsafe.Pointer(sw))); err != nil {
		return fmt.Errorf("ioctl SW_PARAMS failed: %w", err)
	}

	return d.Prepare()
}
