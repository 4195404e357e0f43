// Package delay provides a fixed-length circular delay line.
package delay

import (
	"errors"
	"fmt"
)

// ErrInvalidDelay is returned for a non-positive delay length.
var ErrInvalidDelay = errors.New("delay: length must be > 0")

// Line holds the last Len()+1 samples written to it.
type Line struct {
	buffer []float64
	pos    int // next write slot
}

// New returns a zero-filled line able to delay by up to maxDelay samples.
func New(maxDelay int) (*Line, error) {
	if maxDelay <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDelay, maxDelay)
	}
	return &Line{buffer: make([]float64, maxDelay+1)}, nil
}

// Len returns the maximum delay in samples.
func (d *Line) Len() int {
	return len(d.buffer) - 1
}

// Write appends one sample.
func (d *Line) Write(x float64) {
	d.buffer[d.pos] = x
	d.pos++
	if d.pos == len(d.buffer) {
		d.pos = 0
	}
}

// Read returns the sample written delay writes ago; Read(0) is the newest.
// delay is clamped to [0, Len()].
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	delay = min(max(delay, 0), size-1)
	return d.buffer[(d.pos-1-delay+2*size)%size]
}

// Tap writes x and returns the sample from Len() writes earlier.
func (d *Line) Tap(x float64) float64 {
	d.Write(x)
	return d.Read(d.Len())
}

// Reset zeroes the history.
func (d *Line) Reset() {
	clear(d.buffer)
	d.pos = 0
}
