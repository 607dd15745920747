//go:build linux && (386 || arm)

package alsa

// uframesT is snd_pcm_uframes_t, an unsigned long: 32 bits here.
type uframesT = uint32

// sframesT is snd_pcm_sframes_t, a signed long: 32 bits here.
type sframesT = int32

// timespecT matches the 32-bit kernel timespec ABI (32-bit time_t).
type timespecT struct {
	Sec  int32
	Nsec int32
}

// sndPcmSwParams holds the software parameters (SNDRV_PCM_IOCTL_SW_PARAMS).
// No alignment padding is needed on 32-bit.
type sndPcmSwParams struct {
	TstampMode       uint32
	PeriodStep       uint32
	SleepMin         uint32
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
	_                   [36]byte // reserved
}
