package types

// Loader defines functions that loads committed state for a new context
type Loader interface {
	TargetHeight() uint32
	LastTimestamp() uint64
	Data(key string) []byte
}

type emptyLoader struct {
}

// newEmptyLoader is used for generating genesis state
func newEmptyLoader() Loader {
	return &emptyLoader{}
}

// TargetHeight returns 0
func (st *emptyLoader) TargetHeight() uint32 {
	return 0
}

// LastTimestamp returns 0
func (st *emptyLoader) LastTimestamp() uint64 {
	return 0
}

// Data returns nil
func (st *emptyLoader) Data(key string) []byte {
	return nil
}
