package accrual

import (
	gmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// Window bounds the time reward accrues in
type Window struct {
	Start uint64
	End   uint64
}

// Unbounded is the window of a pool that never ends
var Unbounded = Window{Start: 0, End: gmath.MaxUint64}

// NewWindow returns the window [start, start+duration]
func NewWindow(start uint64, duration uint64) (Window, error) {
	if duration == 0 {
		return Window{}, errors.Wrap(ErrInvalidSchedule, "zero duration")
	}
	end, overflow := gmath.SafeAdd(start, duration)
	if overflow {
		return Window{}, errors.Wrapf(ErrInvalidSchedule, "start %v duration %v", start, duration)
	}
	return Window{Start: start, End: end}, nil
}

// Clamp returns t limited to [Start, End]
func (w Window) Clamp(t uint64) uint64 {
	if t < w.Start {
		return w.Start
	}
	if t > w.End {
		return w.End
	}
	return t
}

// Cap returns t limited to End
func (w Window) Cap(t uint64) uint64 {
	if t > w.End {
		return w.End
	}
	return t
}

// Started reports whether t is at or after Start
func (w Window) Started(t uint64) bool {
	return t >= w.Start
}

// Ended reports whether t is at or after End
func (w Window) Ended(t uint64) bool {
	return t >= w.End
}
