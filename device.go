package alsa

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Device is an open ALSA playback PCM device.
//
// A freshly opened device accepts hardware parameter negotiation (see
// Configure and the negotiation methods); once the parameter set is
// committed the device is prepared and ready for WriteFrames.
type Device struct {
	file      *os.File
	card      uint
	device    uint
	subdevice uint32
	mode      OpenMode

	// Driver-accepted configuration, filled in by CommitParams.
	rate       uint32
	channels   uint32
	format     Format
	access     Access
	periodSize uint32
	periods    uint32
	bufferSize uint32

	xruns int
}

// Open opens the playback stream of the given card and device numbers
// (/dev/snd/pcmC<card>D<device>p).
//
// The node is always opened with O_NONBLOCK to avoid wedging on a busy
// device; for ModeBlock the flag is cleared again with fcntl afterwards.
func Open(card, device uint, mode OpenMode) (*Device, error) {
	path := fmt.Sprintf("/dev/snd/pcmC%dD%dp", card, device)

	file, err := os.OpenFile(path, os.O_RDWR|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open PCM device %s: %w", path, err)
	}

	if mode == ModeBlock {
		flags, err := unix.FcntlInt(file.Fd(), unix.F_GETFL, 0)
		if err != nil {
			_ = file.Close()

			return nil, fmt.Errorf("fcntl F_GETFL for %s failed: %w", path, err)
		}

		if _, err = unix.FcntlInt(file.Fd(), unix.F_SETFL, flags&^syscall.O_NONBLOCK); err != nil {
			_ = file.Close()

			return nil, fmt.Errorf("failed to set blocking mode on %s: %w", path, err)
		}
	}

	var info sndPcmInfo
	if err := ioctl(file.Fd(), sndrvPcmIoctlInfo, uintptr(unsafe.Pointer(&info))); err != nil {
		_ = file.Close()

		return nil, fmt.Errorf("ioctl INFO failed: %w", err)
	}

	return &Device{
		file:      file,
		card:      card,
		device:    device,
		subdevice: info.Subdevice,
		mode:      mode,
	}, nil
}

// OpenByName opens a playback device by name. Accepted forms are "hw:C,D"
// and "default". There is no plugin layer over the raw device nodes, so
// "default" resolves to hw:0,0.
func OpenByName(name string, mode OpenMode) (*Device, error) {
	if name == "default" {
		return Open(0, 0, mode)
	}

	if !strings.HasPrefix(name, "hw:") {
		return nil, fmt.Errorf("invalid PCM name %q: expected \"default\" or \"hw:card,device\"", name)
	}

	parts := strings.Split(strings.TrimPrefix(name, "hw:"), ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid PCM name %q: expected \"hw:card,device\"", name)
	}

	card, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid card number %q: %w", parts[0], err)
	}

	device, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid device number %q: %w", parts[1], err)
	}

	return Open(uint(card), uint(device), mode)
}

// IsReady reports whether the device handle is open.
func (d *Device) IsReady() bool {
	return d != nil && d.file != nil
}

// Close closes the device handle. Closing an already-closed device is a
// no-op.
func (d *Device) Close() error {
	if !d.IsReady() {
		return nil
	}

	err := d.file.Close()
	d.file = nil

	return err
}

// Rate returns the driver-accepted sample rate in Hz.
func (d *Device) Rate() uint32 { return d.rate }

// Channels returns the driver-accepted channel count.
func (d *Device) Channels() uint32 { return d.channels }

// Format returns the driver-accepted sample format.
func (d *Device) Format() Format { return d.format }

// PeriodSize returns the driver-accepted period size in frames.
func (d *Device) PeriodSize() uint32 { return d.periodSize }

// Periods returns the driver-accepted period count.
func (d *Device) Periods() uint32 { return d.periods }

// BufferSize returns the ring buffer size in frames.
func (d *Device) BufferSize() uint32 { return d.bufferSize }

// Subdevice returns the subdevice number of the stream.
func (d *Device) Subdevice() uint32 { return d.subdevice }

// Xruns returns the number of underruns recovered so far.
func (d *Device) Xruns() int { return d.xruns }

// FrameSize returns the size in bytes of one frame (one sample per channel).
func (d *Device) FrameSize() uint32 {
	bits := FormatBits(d.format)
	if bits == 0 {
		return 0
	}

	return d.channels * (bits / 8)
}

// PeriodTime returns the duration covered by one period.
func (d *Device) PeriodTime() time.Duration {
	if d.rate == 0 {
		return 0
	}

	ns := 1e9 * float64(d.periodSize) / float64(d.rate)

	return time.Duration(ns)
}

// State queries the current stream state from the driver.
func (d *Device) State() State {
	if !d.IsReady() {
		return StateDisconnected
	}

	var status sndPcmStatus
	if err := ioctl(d.file.Fd(), sndrvPcmIoctlStatus, uintptr(unsafe.Pointer(&status))); err != nil {
		return StateDisconnected
	}

	return State(status.State)
}

// Prepare readies the stream for I/O. It is also the recovery path out of an
// underrun.
func (d *Device) Prepare() error {
	if !d.IsReady() {
		return fmt.Errorf("PCM handle is not valid")
	}

	if err := ioctl(d.file.Fd(), sndrvPcmIoctlPrepare, 0); err != nil {
		return fmt.Errorf("ioctl PREPARE failed: %w", err)
	}

	return nil
}

// Drain blocks until all pending frames in the ring buffer have been played.
func (d *Device) Drain() error {
	if !d.IsReady() {
		return fmt.Errorf("PCM handle is not valid")
	}

	if err := ioctl(d.file.Fd(), sndrvPcmIoctlDrain, 0); err != nil {
		return fmt.Errorf("ioctl DRAIN failed: %w", err)
	}

	return nil
}

// Resume resumes a stream suspended by system power management.
func (d *Device) Resume() error {
	if !d.IsReady() {
		return fmt.Errorf("PCM handle is not valid")
	}

	if err := ioctl(d.file.Fd(), sndrvPcmIoctlResume, 0); err != nil {
		return fmt.Errorf("ioctl RESUME failed: %w", err)
	}

	return nil
}

// Recover tries to bring the stream back to a writable state after a failed
// transfer, mirroring snd_pcm_recover: an underrun (EPIPE) is recovered with
// Prepare, a suspend (ESTRPIPE) by resuming until the driver stops returning
// EAGAIN and preparing if the resume is not supported. Any other error is
// returned unchanged. When silent is false the recovery is logged.
func (d *Device) Recover(err error, silent bool) error {
	switch {
	case errors.Is(err, syscall.EPIPE):
		if !silent {
			Logger.Warn("underrun occurred, preparing stream", "device", fmt.Sprintf("hw:%d,%d", d.card, d.device))
		}

		d.xruns++

		return d.Prepare()

	case errors.Is(err, unix.ESTRPIPE):
		if !silent {
			Logger.Warn("stream suspended, resuming", "device", fmt.Sprintf("hw:%d,%d", d.card, d.device))
		}

		for {
			rerr := d.Resume()
			if rerr == nil {
				return nil
			}

			if errors.Is(rerr, syscall.EAGAIN) {
				time.Sleep(100 * time.Millisecond)

				continue
			}

			if errors.Is(rerr, syscall.ENOSYS) {
				return d.Prepare()
			}

			return rerr
		}

	default:
		return err
	}
}
