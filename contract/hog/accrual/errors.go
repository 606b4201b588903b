package accrual

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// validation errors
var (
	ErrInvalidPoolID     = errors.New("invalid pool id")
	ErrInsufficientStake = errors.New("withdraw amount exceeds stake")
	ErrZeroAddress       = errors.New("zero address")
	ErrInvalidFee        = errors.New("fee basis points above 10000")
	ErrPoolExists        = errors.New("pool already exists for the token")
	ErrInvalidSchedule   = errors.New("invalid schedule")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// authorization errors
var (
	ErrNotOperator    = errors.New("caller is not the operator")
	ErrProtectedToken = errors.New("token is protected from recovery")
	ErrPaused         = errors.New("pool paused")
)

// ErrArithmeticOverflow is returned as is, never wrapped
var ErrArithmeticOverflow = errors.New("arithmetic overflow")

// ErrPoolNotStarted is returned for deposits before the schedule start when they are rejected
var ErrPoolNotStarted = errors.New("pool not started")

// Kind classifies pool errors
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthorization
	KindArithmetic
	KindSchedule
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindArithmetic:
		return "arithmetic"
	case KindSchedule:
		return "schedule"
	default:
		return "unknown"
	}
}

// KindOf returns the class of the root cause of err
func KindOf(err error) Kind {
	switch pkgerrors.Cause(err) {
	case ErrInvalidPoolID, ErrInsufficientStake, ErrZeroAddress, ErrInvalidFee, ErrPoolExists, ErrInvalidSchedule, ErrInvalidAmount:
		return KindValidation
	case ErrNotOperator, ErrProtectedToken, ErrPaused:
		return KindAuthorization
	case ErrArithmeticOverflow:
		return KindArithmetic
	case ErrPoolNotStarted:
		return KindSchedule
	default:
		return KindUnknown
	}
}
