package types

import "errors"

// context errors
var (
	ErrInvalidClassID      = errors.New("invalid class id")
	ErrExistContractType   = errors.New("exist contract type")
	ErrNotExistContract    = errors.New("not exist contract")
	ErrTimeReversed        = errors.New("timestamp is before the current context")
	ErrDirtySnapshot       = errors.New("context has uncommitted snapshots")
	ErrMethodNotExist      = errors.New("method not exist")
	ErrInvalidInputCount   = errors.New("invalid inputs count")
	ErrInvalidInputType    = errors.New("invalid input type")
	ErrContractPanic       = errors.New("contract panic")
	ErrInvalidContractData = errors.New("invalid contract data")
)
