package alsa

import (
	"fmt"
	"math"
	"math/rand"
)

// Sine amplitude in Q14 fixed point, half of full scale int16. Leaves 6 dB
// of headroom so a generated tone never clips.
const q14 = 1 << 14

// GenerateSine fills buf with a sine tone of the given frequency at the given
// sample rate. buf holds interleaved stereo frames: the mono waveform is
// written to both channels, so len(buf)/2 frames are produced. Samples are
// scaled to Q14 and truncated toward zero.
func GenerateSine(buf []int16, freq, rate uint32) error {
	if buf == nil {
		return ErrNilBuffer
	}

	if rate == 0 {
		return fmt.Errorf("sample rate cannot be zero")
	}

	frames := len(buf) / 2

	for n := 0; n < frames; n++ {
		v := int16(math.Sin(2*math.Pi*float64(n)*float64(freq)/float64(rate)) * q14)
		buf[2*n] = v
		buf[2*n+1] = v
	}

	return nil
}

// GenerateNoise fills buf with uniform white noise at Q14 amplitude, each
// sample drawn independently per channel.
func GenerateNoise(buf []int16) error {
	if buf == nil {
		return ErrNilBuffer
	}

	for i := range buf {
		buf[i] = int16(rand.Int31n(2*q14+1) - q14)
	}

	return nil
}
