// Package alsa provides a small Go interface to the Linux ALSA PCM subsystem,
// talking to /dev/snd device nodes directly through ioctls.
//
// The package covers the playback path: opening a PCM device, negotiating
// hardware parameters stage by stage (access mode, sample format, rate,
// channels, periods, buffer size), committing the parameter set, writing
// interleaved frames and recovering from xruns. It also carries a sine/noise
// test-signal generator and helpers to enumerate sound cards from
// /proc/asound. There is no userspace plugin layer; only direct hardware
// devices (hw:C,D) can be opened.
package alsa

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger receives the package's diagnostics, such as the non-fatal notice the
// configurator emits when the driver adjusts a requested sample rate. Callers
// may replace it to redirect or silence the output.
var Logger = log.New(os.Stderr)

// Format identifies the sample format of a PCM stream. The values correspond
// to the SNDRV_PCM_FORMAT_* constants in the ALSA kernel headers.
type Format int32

const (
	FormatInvalid   Format = -1
	FormatS8        Format = 0
	FormatU8        Format = 1
	FormatS16LE     Format = 2
	FormatS16BE     Format = 3
	FormatU16LE     Format = 4
	FormatU16BE     Format = 5
	FormatS24LE     Format = 6
	FormatS24BE     Format = 7
	FormatU24LE     Format = 8
	FormatU24BE     Format = 9
	FormatS32LE     Format = 10
	FormatS32BE     Format = 11
	FormatU32LE     Format = 12
	FormatU32BE     Format = 13
	FormatFloatLE   Format = 14
	FormatFloatBE   Format = 15
	FormatFloat64LE Format = 16
	FormatFloat64BE Format = 17
)

// FormatNames maps formats to the names ALSA uses for them.
var FormatNames = map[Format]string{
	FormatS8:        "S8",
	FormatU8:        "U8",
	FormatS16LE:     "S16_LE",
	FormatS16BE:     "S16_BE",
	FormatU16LE:     "U16_LE",
	FormatU16BE:     "U16_BE",
	FormatS24LE:     "S24_LE",
	FormatS24BE:     "S24_BE",
	FormatU24LE:     "U24_LE",
	FormatU24BE:     "U24_BE",
	FormatS32LE:     "S32_LE",
	FormatS32BE:     "S32_BE",
	FormatU32LE:     "U32_LE",
	FormatU32BE:     "U32_BE",
	FormatFloatLE:   "FLOAT_LE",
	FormatFloatBE:   "FLOAT_BE",
	FormatFloat64LE: "FLOAT64_LE",
	FormatFloat64BE: "FLOAT64_BE",
}

// FormatBits returns the in-memory size of one sample in bits.
// 24-bit formats live in 32-bit containers and therefore report 32.
func FormatBits(f Format) uint32 {
	switch f {
	case FormatFloat64LE, FormatFloat64BE:
		return 64
	case FormatS32LE, FormatS32BE, FormatU32LE, FormatU32BE,
		FormatFloatLE, FormatFloatBE,
		FormatS24LE, FormatS24BE, FormatU24LE, FormatU24BE:
		return 32
	case FormatS16LE, FormatS16BE, FormatU16LE, FormatU16BE:
		return 16
	case FormatS8, FormatU8:
		return 8
	default:
		return 0
	}
}

// Access identifies the transfer mode of a PCM stream. The values correspond
// to the SNDRV_PCM_ACCESS_* constants.
type Access int32

const (
	AccessMmapInterleaved    Access = 0
	AccessMmapNoninterleaved Access = 1
	AccessMmapComplex        Access = 2
	AccessRWInterleaved      Access = 3
	AccessRWNoninterleaved   Access = 4
)

// AccessNames maps access modes to the names ALSA uses for them,
// indexed by the Access value.
var AccessNames = []string{
	"MMAP_INTERLEAVED",
	"MMAP_NONINTERLEAVED",
	"MMAP_COMPLEX",
	"RW_INTERLEAVED",
	"RW_NONINTERLEAVED",
}

// State is the stream state reported by the driver, corresponding to the
// SNDRV_PCM_STATE_* constants.
type State int32

const (
	StateOpen         State = 0 // Stream is open.
	StateSetup        State = 1 // Stream has a setup.
	StatePrepared     State = 2 // Stream is ready to start.
	StateRunning      State = 3 // Stream is running.
	StateXrun         State = 4 // Stream reached an underrun or overrun.
	StateDraining     State = 5 // Stream is draining.
	StatePaused       State = 6 // Stream is paused.
	StateSuspended    State = 7 // Hardware is suspended.
	StateDisconnected State = 8 // Hardware is disconnected.
)

// OpenMode selects the I/O mode a PCM device is opened with.
type OpenMode uint32

const (
	// ModeBlock opens the device for blocking I/O: negotiation and write
	// calls block the caller until the driver responds.
	ModeBlock OpenMode = 0
	// ModeNonblock keeps O_NONBLOCK set on the device node; writes return
	// EAGAIN when the ring buffer is full.
	ModeNonblock OpenMode = 1
)
