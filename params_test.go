package alsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHwParamsStringLabels(t *testing.T) {
	t.Parallel()

	p := NewHwParams()
	p.constrain(hwParamRate, 48000)
	p.constrain(hwParamChannels, 2)
	p.constrainMask(hwParamFormat, uint32(FormatS16LE))

	dump := p.String()

	assert.Contains(t, dump, "Rate")
	assert.Contains(t, dump, "Channels")
	assert.Contains(t, dump, "48000")
	assert.Contains(t, dump, "S16_LE")
}

func TestHwParamsFreshContextAllowsEverything(t *testing.T) {
	t.Parallel()

	p := NewHwParams()

	for f := FormatS8; f <= FormatFloat64BE; f++ {
		assert.True(t, p.maskTest(hwParamFormat, uint32(f)), "format %v", f)
	}

	iv := p.interval(hwParamRate)
	assert.Equal(t, uint32(0), iv.MinVal)
	assert.Equal(t, ^uint32(0), iv.MaxVal)
}
