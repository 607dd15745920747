package alsa

import (
	"fmt"
	"sort"
	"strings"
)

// Hardware parameter indices (SNDRV_PCM_HW_PARAM_*). The first three are
// mask-type parameters, the rest are intervals.
const (
	hwParamAccess      = 0
	hwParamFormat      = 1
	hwParamSubformat   = 2
	hwParamSampleBits  = 8
	hwParamFrameBits   = 9
	hwParamChannels    = 10
	hwParamRate        = 11
	hwParamPeriodTime  = 12
	hwParamPeriodSize  = 13
	hwParamPeriodBytes = 14
	hwParamPeriods     = 15
	hwParamBufferTime  = 16
	hwParamBufferSize  = 17
	hwParamBufferBytes = 18
	hwParamTickTime    = 19

	hwParamFirstMask     = hwParamAccess
	hwParamLastMask      = hwParamSubformat
	hwParamFirstInterval = hwParamSampleBits
	hwParamLastInterval  = hwParamTickTime
)

// HwParams is the negotiation context for a PCM device: the set of hardware
// configurations still possible. A freshly created context allows everything;
// each negotiation stage narrows it, and CommitParams finally installs it.
type HwParams struct {
	raw sndPcmHwParams
}

// NewHwParams returns a context allowing the full range of every parameter.
func NewHwParams() *HwParams {
	p := &HwParams{}
	p.reset()

	return p
}

// reset widens every mask and interval back to the full range.
func (p *HwParams) reset() {
	p.raw = sndPcmHwParams{}

	for n := range p.raw.Masks {
		for i := range p.raw.Masks[n].Bits {
			p.raw.Masks[n].Bits[i] = ^uint32(0)
		}
	}

	for n := range p.raw.Mres {
		for i := range p.raw.Mres[n].Bits {
			p.raw.Mres[n].Bits[i] = ^uint32(0)
		}
	}

	for n := range p.raw.Intervals {
		p.raw.Intervals[n].MinVal = 0
		p.raw.Intervals[n].MaxVal = ^uint32(0)
		p.raw.Intervals[n].Flags = 0
	}

	for n := range p.raw.Ires {
		p.raw.Ires[n].MinVal = 0
		p.raw.Ires[n].MaxVal = ^uint32(0)
		p.raw.Ires[n].Flags = 0
	}

	p.raw.Rmask = ^uint32(0)
	p.raw.Info = ^uint32(0)
}

// clone returns an independent copy of the context, used for the trial
// refinements in the near-value negotiation.
func (p *HwParams) clone() *HwParams {
	c := *p

	return &c
}

func (p *HwParams) mask(param int) *sndMask {
	return &p.raw.Masks[param-hwParamFirstMask]
}

func (p *HwParams) interval(param int) *sndInterval {
	return &p.raw.Intervals[param-hwParamFirstInterval]
}

// constrainMask narrows a mask parameter to the single given bit.
func (p *HwParams) constrainMask(param int, bit uint32) {
	if param < hwParamFirstMask || param > hwParamLastMask || bit >= 256 {
		return
	}

	m := p.mask(param)
	for i := range m.Bits {
		m.Bits[i] = 0
	}

	m.Bits[bit>>5] |= 1 << (bit & 31)
}

// maskTest reports whether a bit is still allowed for a mask parameter.
func (p *HwParams) maskTest(param int, bit uint32) bool {
	if param < hwParamFirstMask || param > hwParamLastMask || bit >= 256 {
		return false
	}

	m := p.mask(param)

	return m.Bits[bit>>5]&(1<<(bit&31)) != 0
}

// constrain narrows an interval parameter to a single integer value.
func (p *HwParams) constrain(param int, val uint32) {
	if param < hwParamFirstInterval || param > hwParamLastInterval {
		return
	}

	iv := p.interval(param)
	iv.MinVal = val
	iv.MaxVal = val
	iv.Flags = intervalInteger
}

// constrainMin narrows an interval parameter from below.
func (p *HwParams) constrainMin(param int, val uint32) {
	if param < hwParamFirstInterval || param > hwParamLastInterval {
		return
	}

	p.interval(param).MinVal = val
}

// constrainMax narrows an interval parameter from above.
func (p *HwParams) constrainMax(param int, val uint32) {
	if param < hwParamFirstInterval || param > hwParamLastInterval {
		return
	}

	p.interval(param).MaxVal = val
}

// value reads the refined value of an interval parameter. The driver
// finalizes a configuration by narrowing the interval, so MinVal holds the
// selected value once negotiation is done.
func (p *HwParams) value(param int) uint32 {
	if param < hwParamFirstInterval || param > hwParamLastInterval {
		return 0
	}

	return p.interval(param).MinVal
}

// Rate returns the negotiated sample rate in Hz.
func (p *HwParams) Rate() uint32 { return p.value(hwParamRate) }

// Channels returns the negotiated channel count.
func (p *HwParams) Channels() uint32 { return p.value(hwParamChannels) }

// PeriodSize returns the negotiated period size in frames.
func (p *HwParams) PeriodSize() uint32 { return p.value(hwParamPeriodSize) }

// Periods returns the negotiated number of periods per buffer.
func (p *HwParams) Periods() uint32 { return p.value(hwParamPeriods) }

// BufferSize returns the negotiated ring buffer size in frames.
func (p *HwParams) BufferSize() uint32 { return p.value(hwParamBufferSize) }

// Format returns the lowest-numbered sample format still allowed by the
// context, or FormatInvalid if the format mask is empty. After a successful
// commit exactly one format remains.
func (p *HwParams) Format() Format {
	for f := FormatS8; f <= FormatFloat64BE; f++ {
		if p.maskTest(hwParamFormat, uint32(f)) {
			return f
		}
	}

	return FormatInvalid
}

// AccessMode returns the first access mode still allowed by the context.
func (p *HwParams) AccessMode() Access {
	for a := range AccessNames {
		if p.maskTest(hwParamAccess, uint32(a)) {
			return Access(a)
		}
	}

	return AccessRWInterleaved
}

// String renders the ranges still allowed by the context, one line per
// parameter, for capability reports.
func (p *HwParams) String() string {
	var b strings.Builder

	b.WriteString("PCM device capabilities:\n")

	var access []string
	for a, name := range AccessNames {
		if p.maskTest(hwParamAccess, uint32(a)) {
			access = append(access, name)
		}
	}
	if len(access) > 0 {
		b.WriteString(fmt.Sprintf("%12s: %s\n", "Access", strings.Join(access, ", ")))
	}

	var keys []int
	for f := range FormatNames {
		keys = append(keys, int(f))
	}
	sort.Ints(keys)

	var formats []string
	for _, k := range keys {
		if p.maskTest(hwParamFormat, uint32(k)) {
			formats = append(formats, FormatNames[Format(k)])
		}
	}
	if len(formats) > 0 {
		b.WriteString(fmt.Sprintf("%12s: %s\n", "Format", strings.Join(formats, ", ")))
	}

	ranges := []struct {
		name  string
		param int
		unit  string
	}{
		{"Rate", hwParamRate, "Hz"},
		{"Channels", hwParamChannels, ""},
		{"Sample bits", hwParamSampleBits, ""},
		{"Period size", hwParamPeriodSize, "frames"},
		{"Periods", hwParamPeriods, ""},
		{"Buffer size", hwParamBufferSize, "frames"},
	}

	for _, r := range ranges {
		iv := p.interval(r.param)
		if iv.MaxVal == 0 || iv.MaxVal == ^uint32(0) {
			continue
		}

		b.WriteString(fmt.Sprintf("%12s: min=%-6d max=%-6d %s\n", r.name, iv.MinVal, iv.MaxVal, r.unit))
	}

	return b.String()
}
