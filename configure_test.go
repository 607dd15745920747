package alsa_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndkit/alsa"
)

// mockNegotiator records the negotiation calls Configure makes and lets tests
// fail individual stages or substitute driver-adjusted values.
type mockNegotiator struct {
	calls []string

	probeErr error
	failOn   map[string]error

	// When nonzero, the value the driver substitutes for the request.
	rateResult    uint32
	periodsResult uint32
	bufferResult  uint32

	// Arguments seen, for asserting what Configure requested.
	accessArg  alsa.Access
	formatArg  alsa.Format
	rateArg    uint32
	chanArg    uint32
	periodsArg uint32
	bufferArg  uint32
}

func (m *mockNegotiator) stage(name string) error {
	m.calls = append(m.calls, name)

	return m.failOn[name]
}

func (m *mockNegotiator) ProbeParams() (*alsa.HwParams, error) {
	m.calls = append(m.calls, "probe")
	if m.probeErr != nil {
		return nil, m.probeErr
	}

	return alsa.NewHwParams(), nil
}

func (m *mockNegotiator) SetAccess(p *alsa.HwParams, a alsa.Access) error {
	m.accessArg = a

	return m.stage("access")
}

func (m *mockNegotiator) SetFormat(p *alsa.HwParams, f alsa.Format) error {
	m.formatArg = f

	return m.stage("format")
}

func (m *mockNegotiator) SetRateNear(p *alsa.HwParams, rate *uint32, dir alsa.Direction) error {
	m.rateArg = *rate
	if err := m.stage("rate"); err != nil {
		return err
	}

	if m.rateResult != 0 {
		*rate = m.rateResult
	}

	return nil
}

func (m *mockNegotiator) SetChannels(p *alsa.HwParams, channels uint32) error {
	m.chanArg = channels

	return m.stage("channels")
}

func (m *mockNegotiator) SetPeriodsNear(p *alsa.HwParams, periods *uint32, dir alsa.Direction) error {
	m.periodsArg = *periods
	if err := m.stage("periods"); err != nil {
		return err
	}

	if m.periodsResult != 0 {
		*periods = m.periodsResult
	}

	return nil
}

func (m *mockNegotiator) SetBufferSizeNear(p *alsa.HwParams, frames *uint32) error {
	m.bufferArg = *frames
	if err := m.stage("buffer"); err != nil {
		return err
	}

	if m.bufferResult != 0 {
		*frames = m.bufferResult
	}

	return nil
}

func (m *mockNegotiator) CommitParams(p *alsa.HwParams) error {
	return m.stage("commit")
}

func testConfig() *alsa.HardwareConfig {
	return &alsa.HardwareConfig{
		SampleRate: 48000,
		PeriodSize: 2048,
		Periods:    2,
		Access:     alsa.AccessRWInterleaved,
		Channels:   2,
		Format:     alsa.FormatS16LE,
	}
}

func TestConfigureCallOrder(t *testing.T) {
	t.Parallel()

	mock := &mockNegotiator{}
	cfg := testConfig()

	require.NoError(t, alsa.Configure(mock, cfg))

	want := []string{"probe", "access", "format", "rate", "channels", "periods", "buffer", "commit"}
	assert.Equal(t, want, mock.calls)

	assert.Equal(t, alsa.AccessRWInterleaved, mock.accessArg)
	assert.Equal(t, alsa.FormatS16LE, mock.formatArg)
	assert.Equal(t, uint32(48000), mock.rateArg)
	assert.Equal(t, uint32(2), mock.chanArg)
	assert.Equal(t, uint32(2), mock.periodsArg)
	assert.Equal(t, uint32(2048*2), mock.bufferArg, "buffer request must be period size times periods")

	// Accepted values equal the requested ones, so the write-backs must not
	// change the configuration.
	assert.Equal(t, uint32(48000), cfg.SampleRate)
	assert.Equal(t, uint32(2), cfg.Periods)
}

func TestConfigureRateAdjusted(t *testing.T) {
	var sb strings.Builder

	saved := alsa.Logger
	alsa.Logger = log.New(&sb)
	defer func() { alsa.Logger = saved }()

	mock := &mockNegotiator{rateResult: 44100}
	cfg := testConfig()
	cfg.SampleRate = 45000

	require.NoError(t, alsa.Configure(mock, cfg), "an adjusted rate is not an error")
	assert.Equal(t, uint32(44100), cfg.SampleRate, "accepted rate must be written back")

	logged := sb.String()
	assert.Contains(t, logged, "45000")
	assert.Contains(t, logged, "44100")
}

func TestConfigureExactRateIsQuiet(t *testing.T) {
	var sb strings.Builder

	saved := alsa.Logger
	alsa.Logger = log.New(&sb)
	defer func() { alsa.Logger = saved }()

	mock := &mockNegotiator{rateResult: 48000}
	cfg := testConfig()

	require.NoError(t, alsa.Configure(mock, cfg))
	assert.Empty(t, sb.String())
}

func TestConfigurePeriodsAdjusted(t *testing.T) {
	t.Parallel()

	mock := &mockNegotiator{periodsResult: 4}
	cfg := testConfig()

	require.NoError(t, alsa.Configure(mock, cfg))
	assert.Equal(t, uint32(4), cfg.Periods, "accepted period count must be written back")
}

func TestConfigureBufferResultNotReported(t *testing.T) {
	t.Parallel()

	mock := &mockNegotiator{bufferResult: 8192}
	cfg := testConfig()

	require.NoError(t, alsa.Configure(mock, cfg))

	// The driver's buffer size choice stays internal; only rate and periods
	// are reported back.
	assert.Equal(t, uint32(2048), cfg.PeriodSize)
	assert.Equal(t, uint32(2), cfg.Periods)
}

func TestConfigureProbeFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such device")
	mock := &mockNegotiator{probeErr: cause}

	err := alsa.Configure(mock, testConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"probe"}, mock.calls, "no stage may run after a failed probe")
}

func TestConfigureStageFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("driver rejected value")

	testCases := []struct {
		stage    string
		sentinel error
		calls    []string
	}{
		{"access", alsa.ErrAccessModeUnsupported, []string{"probe", "access"}},
		{"format", alsa.ErrFormatUnsupported, []string{"probe", "access", "format"}},
		{"rate", alsa.ErrRateNegotiation, []string{"probe", "access", "format", "rate"}},
		{"channels", alsa.ErrChannelCountUnsupported, []string{"probe", "access", "format", "rate", "channels"}},
		{"periods", alsa.ErrPeriodNegotiation, []string{"probe", "access", "format", "rate", "channels", "periods"}},
		{"buffer", alsa.ErrBufferSizeNegotiation, []string{"probe", "access", "format", "rate", "channels", "periods", "buffer"}},
		{"commit", alsa.ErrCommitFailed, []string{"probe", "access", "format", "rate", "channels", "periods", "buffer", "commit"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.stage, func(t *testing.T) {
			t.Parallel()

			mock := &mockNegotiator{failOn: map[string]error{tc.stage: cause}}

			err := alsa.Configure(mock, testConfig())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, tc.calls, mock.calls, "pipeline must abort at the failed stage without retries")
		})
	}
}
