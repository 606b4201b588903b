package amount

import "errors"

// errors
var (
	ErrInvalidAmountFormat = errors.New("invalid amount format")
	ErrOverflow            = errors.New("amount overflows 256 bits")
	ErrUnderflow           = errors.New("amount underflows zero")
	ErrDivideByZero        = errors.New("amount divided by zero")
)
