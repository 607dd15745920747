package alsa

import (
	"errors"
	"fmt"
)

// FrameWriter is the transfer-side contract the streaming loop drives.
// *Device implements it; tests implement it with mocks.
type FrameWriter interface {
	WriteFrames(data any, frames uint32) (int, error)
	Recover(err error, silent bool) error
}

// Play writes the same buffer to w the given number of iterations, frames per
// write.
//
// A failed write gets exactly one recovery attempt. When recovery succeeds
// the iteration is retried once; a second failure on the same iteration, or a
// failed recovery, aborts the loop.
func Play(w FrameWriter, buf []int16, frames uint32, iterations int) error {
	if buf == nil {
		return ErrNilBuffer
	}

	for i := 0; i < iterations; i++ {
		if _, err := w.WriteFrames(buf, frames); err != nil {
			rerr := w.Recover(err, false)
			if rerr != nil {
				// Recover passes unrecoverable errors through, possibly
				// wrapped with context.
				if errors.Is(rerr, err) {
					return fmt.Errorf("%w: iteration %d: %w", ErrWriteFailed, i, err)
				}

				return fmt.Errorf("%w: iteration %d: %w", ErrRecoveryFailed, i, rerr)
			}

			if _, err := w.WriteFrames(buf, frames); err != nil {
				return fmt.Errorf("%w: iteration %d after recovery: %w", ErrWriteFailed, i, err)
			}
		}
	}

	return nil
}
