package alsa

import (
	"fmt"
	"runtime"
	"unsafe"
)

// samplePointer validates that data is a slice of a supported sample type
// and returns its base pointer and length in bytes.
func samplePointer(data any) (unsafe.Pointer, uint32, error) {
	switch s := data.(type) {
	case []int8:
		if len(s) == 0 {
			return nil, 0, nil
		}

		return unsafe.Pointer(&s[0]), uint32(len(s)), nil
	case []byte:
		if len(s) == 0 {
			return nil, 0, nil
		}

		return unsafe.Pointer(&s[0]), uint32(len(s)), nil
	case []int16:
		if len(s) == 0 {
			return nil, 0, nil
		}

		return unsafe.Pointer(&s[0]), uint32(len(s)) * 2, nil
	case []int32:
		if len(s) == 0 {
			return nil, 0, nil
		}

		return unsafe.Pointer(&s[0]), uint32(len(s)) * 4, nil
	case []float32:
		if len(s) == 0 {
			return nil, 0, nil
		}

		return unsafe.Pointer(&s[0]), uint32(len(s)) * 4, nil
	case []float64:
		if len(s) == 0 {
			return nil, 0, nil
		}

		return unsafe.Pointer(&s[0]), uint32(len(s)) * 8, nil
	case nil:
		return nil, 0, fmt.Errorf("data cannot be nil")
	default:
		return nil, 0, fmt.Errorf("unsupported sample slice type %T", data)
	}
}

// WriteFrames writes the given number of interleaved frames from data to the
// device. data must be a slice of a supported sample type holding at least
// frames full frames at the committed format and channel count.
//
// Partial transfers are continued until all frames are written. Transfer
// errors, including underruns, are returned to the caller; recovery is the
// caller's responsibility (see Recover and Play). Returns the number of
// frames actually written.
func (d *Device) WriteFrames(data any, frames uint32) (int, error) {
	if !d.IsReady() {
		return 0, fmt.Errorf("PCM handle is not valid")
	}

	ptr, byteLen, err := samplePointer(data)
	if err != nil {
		return 0, fmt.Errorf("invalid data for WriteFrames: %w", err)
	}

	if frames == 0 {
		return 0, nil
	}

	frameSize := d.FrameSize()
	if frameSize == 0 {
		return 0, fmt.Errorf("device has no committed configuration")
	}

	if byteLen < frames*frameSize {
		return 0, fmt.Errorf("data buffer too small: need %d bytes, got %d", frames*frameSize, byteLen)
	}

	defer runtime.KeepAlive(data)

	if d.State() == StateSetup {
		if err := d.Prepare(); err != nil {
			return 0, err
		}
	}

	written := uint32(0)
	for written < frames {
		xfer := sndXferi{
			Frames: uframesT(frames - written),
			Buf:    uintptr(ptr) + uintptr(written*frameSize),
		}

		err := ioctl(d.file.Fd(), sndrvPcmIoctlWriteiFrames, uintptr(unsafe.Pointer(&xfer)))

		if xfer.Result > 0 {
			written += uint32(xfer.Result)
		}

		if err != nil {
			return int(written), fmt.Errorf("ioctl WRITEI_FRAMES failed: %w", err)
		}
	}

	return int(written), nil
}
