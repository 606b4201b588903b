package simulator

import "errors"

// errors
var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrUnknownAction   = errors.New("unknown action")
	ErrUnknownUser     = errors.New("unknown user")
	ErrUnknownPool     = errors.New("unknown pool")
	ErrStepOrder       = errors.New("steps are not in time order")
	ErrStoreInUse      = errors.New("store already holds a run")
	ErrExpectedError   = errors.New("step succeeded but an error was expected")
	ErrAlreadyRun      = errors.New("simulator already run")
)
