package amount

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// The checked operations bound every intermediate value by the 256-bit unsigned range
// so that results match what the on-chain ledger would accept, and fail instead of wrapping.

func toWord(am *Amount) (*uint256.Int, error) {
	if am.IsZero() {
		return new(uint256.Int), nil
	}
	if am.IsMinus() {
		return nil, errors.WithStack(ErrUnderflow)
	}
	w, overflow := uint256.FromBig(am.Int)
	if overflow {
		return nil, errors.WithStack(ErrOverflow)
	}
	return w, nil
}

func fromWord(w *uint256.Int) *Amount {
	return &Amount{Int: w.ToBig()}
}

// CheckedAdd returns a + b or ErrOverflow
func CheckedAdd(a, b *Amount) (*Amount, error) {
	x, err := toWord(a)
	if err != nil {
		return nil, err
	}
	y, err := toWord(b)
	if err != nil {
		return nil, err
	}
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, errors.WithStack(ErrOverflow)
	}
	return fromWord(z), nil
}

// CheckedSub returns a - b or ErrUnderflow
func CheckedSub(a, b *Amount) (*Amount, error) {
	x, err := toWord(a)
	if err != nil {
		return nil, err
	}
	y, err := toWord(b)
	if err != nil {
		return nil, err
	}
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, errors.WithStack(ErrUnderflow)
	}
	return fromWord(z), nil
}

// CheckedMul returns a * b or ErrOverflow
func CheckedMul(a, b *Amount) (*Amount, error) {
	x, err := toWord(a)
	if err != nil {
		return nil, err
	}
	y, err := toWord(b)
	if err != nil {
		return nil, err
	}
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, errors.WithStack(ErrOverflow)
	}
	return fromWord(z), nil
}

// CheckedMulDiv returns a * b / c rounded down. The product must fit in 256 bits.
func CheckedMulDiv(a, b, c *Amount) (*Amount, error) {
	if c.IsZero() {
		return nil, errors.WithStack(ErrDivideByZero)
	}
	p, err := CheckedMul(a, b)
	if err != nil {
		return nil, err
	}
	y, err := toWord(c)
	if err != nil {
		return nil, err
	}
	x, _ := toWord(p)
	return fromWord(new(uint256.Int).Div(x, y)), nil
}
