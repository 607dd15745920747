package alsa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sndkit/alsa"
)

func TestFormatBits(t *testing.T) {
	t.Parallel()

	testCases := map[alsa.Format]uint32{
		alsa.FormatInvalid:   0,
		alsa.FormatS8:        8,
		alsa.FormatU8:        8,
		alsa.FormatS16LE:     16,
		alsa.FormatS16BE:     16,
		alsa.FormatS24LE:     32, // 24-bit stored in a 32-bit container
		alsa.FormatS32LE:     32,
		alsa.FormatFloatLE:   32,
		alsa.FormatFloat64LE: 64,
		alsa.FormatFloat64BE: 64,
	}

	for format, want := range testCases {
		assert.Equal(t, want, alsa.FormatBits(format), "format %v", format)
	}
}

func TestFormatNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "S16_LE", alsa.FormatNames[alsa.FormatS16LE])
	assert.Equal(t, "FLOAT64_BE", alsa.FormatNames[alsa.FormatFloat64BE])
}

func TestOpenByNameInvalid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "plughw:0,0", "hw:0", "hw:a,b", "hw:0,0,0"} {
		_, err := alsa.OpenByName(name, alsa.ModeNonblock)
		assert.Error(t, err, "name %q must be rejected", name)
	}
}
