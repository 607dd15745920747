//go:build linux && (amd64 || arm64)

package alsa

import (
	"golang.org/x/sys/unix"
)

// uframesT is snd_pcm_uframes_t, an unsigned long: 64 bits here.
type uframesT = uint64

// sframesT is snd_pcm_sframes_t, a signed long: 64 bits here.
type sframesT = int64

// timespecT is the kernel timespec used in the PCM status struct.
type timespecT = unix.Timespec

// sndPcmSwParams holds the software parameters (SNDRV_PCM_IOCTL_SW_PARAMS).
// Four bytes of padding after SleepMin align the following 64-bit fields.
type sndPcmSwParams struct {
	TstampMode       uint32
	PeriodStep       uint32
	SleepMin         uint32
	_                [4]byte
	AvailMin         uframesT
	XferAlign        uframesT
	StartThreshold   uframesT
	StopThreshold    uframesT
	SilenceThreshold uframesT
	SilenceSize      uframesT
	Boundary         uframesT
	Reserved         [64]byte
}

// sndPcmStatus is the stream status (SNDRV_PCM_IOCTL_STATUS).
type sndPcmStatus struct {
	State               int32
	_                   [4]byte
	TriggerTstamp       timespecT
	Tstamp              timespecT
	ApplPtr             uframesT
	HwPtr               uframesT
	Delay               sframesT
	Avail               uframesT
	AvailMax            uframesT
	Overrange           uframesT
	SuspendedState      int32
	AudioTstampData     uint32
	AudioTstamp         timespecT
	DriverTstamp        timespecT
	AudioTstampAccuracy uint32
	_                   [20]byte // reserved
}
