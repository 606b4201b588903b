package token

import "errors"

// token errors
var (
	ErrNotTokenOperator      = errors.New("not token operator")
	ErrNotTokenMinter        = errors.New("not token minter")
	ErrZeroAddress           = errors.New("zero address")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrTokenPaused           = errors.New("token paused")
	ErrAlreadyDistributed    = errors.New("reward already distributed")
	ErrAlreadyMinter         = errors.New("already token minter")
)
