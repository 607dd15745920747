package alsa

// The structs in this file and in types_32bit.go/types_64bit.go mirror the
// kernel ABI from sound/asound.h; field order and padding must match the C
// layout exactly.

// sndMask is a bitmask for a mask-type hardware parameter.
type sndMask struct {
	Bits [8]uint32
}

// sndInterval is the value range of an interval-type hardware parameter.
type sndInterval struct {
	MinVal uint32
	MaxVal uint32
	Flags  uint32
}

// Bitfields within sndInterval.Flags.
const (
	intervalOpenMin = 1 << 0
	intervalOpenMax = 1 << 1
	intervalInteger = 1 << 2
	intervalEmpty   = 1 << 3
)

// sndPcmInfo describes a PCM device (SNDRV_PCM_IOCTL_INFO).
type sndPcmInfo struct {
	Device          uint32
	Subdevice       uint32
	Stream          int32
	Card            int32
	Id              [64]byte
	Name            [80]byte
	Subname         [32]byte
	DevClass        int32
	DevSubclass     int32
	SubdevicesCount uint32
	SubdevicesAvail uint32
	Sync            [16]byte
	Reserved        [64]byte
}

// sndPcmHwParams is the negotiation context passed to HW_REFINE and
// HW_PARAMS. Masks and intervals are indexed by SNDRV_PCM_HW_PARAM_* values.
type sndPcmHwParams struct {
	Flags     uint32
	Masks     [3]sndMask
	Mres      [5]sndMask // reserved masks
	Intervals [12]sndInterval
	Ires      [9]sndInterval // reserved intervals
	Rmask     uint32
	Cmask     uint32
	Info      uint32
	Msbits    uint32
	RateNum   uint32
	RateDen   uint32
	FifoSize  uframesT
	Reserved  [64]byte
}

// sndXferi carries one interleaved transfer request (WRITEI/READI).
type sndXferi struct {
	Result int // C ssize_t
	Buf    uintptr
	Frames uframesT
}
