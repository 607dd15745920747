package alsa_test

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndkit/alsa"
)

// flakyWriter implements FrameWriter with injectable write failures. failOn
// maps a write call index to the error that call returns; a retry after
// recovery shows up as the next index.
type flakyWriter struct {
	writes     int
	recoveries int
	frames     []uint32

	failOn          map[int]error
	recoverErr      error
	passthrough     bool
	wrapPassthrough bool
}

func (w *flakyWriter) WriteFrames(data any, frames uint32) (int, error) {
	idx := w.writes
	w.writes++
	w.frames = append(w.frames, frames)

	if err := w.failOn[idx]; err != nil {
		return 0, err
	}

	return int(frames), nil
}

func (w *flakyWriter) Recover(err error, silent bool) error {
	w.recoveries++

	switch {
	case w.passthrough:
		return err
	case w.wrapPassthrough:
		return fmt.Errorf("cannot recover: %w", err)
	default:
		return w.recoverErr
	}
}

func TestPlayWritesAllIterations(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{}
	buf := make([]int16, 2*2048)

	require.NoError(t, alsa.Play(w, buf, 2048, 46))
	assert.Equal(t, 46, w.writes)
	assert.Zero(t, w.recoveries)

	for _, frames := range w.frames {
		assert.Equal(t, uint32(2048), frames)
	}
}

func TestPlayZeroIterations(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{}

	require.NoError(t, alsa.Play(w, make([]int16, 64), 32, 0))
	assert.Zero(t, w.writes)
}

func TestPlayNilBuffer(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{}

	assert.ErrorIs(t, alsa.Play(w, nil, 1024, 1), alsa.ErrNilBuffer)
	assert.Zero(t, w.writes)
}

func TestPlayRecoversOnce(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{failOn: map[int]error{3: syscall.EPIPE}}
	buf := make([]int16, 2*1024)

	require.NoError(t, alsa.Play(w, buf, 1024, 10))

	// 10 iterations plus one retry of the failed one.
	assert.Equal(t, 11, w.writes)
	assert.Equal(t, 1, w.recoveries)
}

func TestPlayUnrecoverableError(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{
		failOn:      map[int]error{2: syscall.EBADF},
		passthrough: true,
	}

	err := alsa.Play(w, make([]int16, 2*1024), 1024, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, alsa.ErrWriteFailed)
	assert.ErrorIs(t, err, syscall.EBADF)
	assert.Equal(t, 3, w.writes, "loop must stop at the failed iteration")
}

func TestPlayUnrecoverableErrorWrapped(t *testing.T) {
	t.Parallel()

	// A Recover that wraps the unrecoverable error with context is still a
	// pass-through, not a recovery failure.
	w := &flakyWriter{
		failOn:          map[int]error{1: syscall.EBADF},
		wrapPassthrough: true,
	}

	err := alsa.Play(w, make([]int16, 2*1024), 1024, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, alsa.ErrWriteFailed)
	assert.ErrorIs(t, err, syscall.EBADF)
	assert.NotErrorIs(t, err, alsa.ErrRecoveryFailed)
	assert.Equal(t, 2, w.writes, "loop must stop at the failed iteration")
}

func TestPlayRecoveryFailure(t *testing.T) {
	t.Parallel()

	w := &flakyWriter{
		failOn:     map[int]error{0: syscall.ESTRPIPE},
		recoverErr: errors.New("resume not supported"),
	}

	err := alsa.Play(w, make([]int16, 2*1024), 1024, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, alsa.ErrRecoveryFailed)
	assert.Equal(t, 1, w.writes)
	assert.Equal(t, 1, w.recoveries)
}

func TestPlaySecondFailureAfterRecovery(t *testing.T) {
	t.Parallel()

	// The retry of iteration 4 is write call 5; failing it too must abort
	// the loop instead of recovering again.
	w := &flakyWriter{
		failOn: map[int]error{4: syscall.EPIPE, 5: syscall.EPIPE},
	}

	err := alsa.Play(w, make([]int16, 2*1024), 1024, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, alsa.ErrWriteFailed)
	assert.Equal(t, 6, w.writes)
	assert.Equal(t, 1, w.recoveries, "only one recovery attempt per failed write")
}

// playbackSim stands in for a sound card in the full configure-then-play
// flow, negotiating on the mock side and transferring on the flaky side.
type playbackSim struct {
	mockNegotiator
	flakyWriter
}

func TestConfigureAndPlayWithRecovery(t *testing.T) {
	t.Parallel()

	sim := &playbackSim{
		flakyWriter: flakyWriter{failOn: map[int]error{10: syscall.EPIPE}},
	}

	cfg := &alsa.HardwareConfig{
		SampleRate: 48000,
		PeriodSize: 2048,
		Periods:    2,
		Access:     alsa.AccessRWInterleaved,
		Channels:   2,
		Format:     alsa.FormatS16LE,
	}

	require.NoError(t, alsa.Configure(sim, cfg))

	buf := make([]int16, 2*cfg.PeriodSize*cfg.Periods)
	require.NoError(t, alsa.GenerateSine(buf, 469, cfg.SampleRate))

	require.NoError(t, alsa.Play(sim, buf, cfg.PeriodSize, 46))
	assert.Equal(t, 47, sim.writes, "46 iterations plus one retry")
	assert.Equal(t, 1, sim.recoveries)
}
