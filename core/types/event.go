package types

import (
	"encoding/json"

	"github.com/hogfinance/hogpool/common"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Event is a journal entry emitted by a contract during a successful call.
// Result holds the structured record the call returned to its caller.
type Event struct {
	Height    uint32
	Timestamp uint64
	Index     uint32
	Contract  common.Address
	Caller    common.Address
	Type      string
	Result    interface{}
}

// eventRecord is the persisted form of an Event
type eventRecord struct {
	Height    uint32 `msgpack:"h"`
	Timestamp uint64 `msgpack:"t"`
	Index     uint32 `msgpack:"i"`
	Contract  []byte `msgpack:"c"`
	Caller    []byte `msgpack:"f"`
	Type      string `msgpack:"y"`
	Result    []byte `msgpack:"r"`
}

// MarshalBinary encodes the event with msgpack. The result record is kept as JSON
// so amounts keep their decimal form when the journal is read back.
func (e *Event) MarshalBinary() ([]byte, error) {
	res, err := json.Marshal(e.Result)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	bs, err := msgpack.Marshal(&eventRecord{
		Height:    e.Height,
		Timestamp: e.Timestamp,
		Index:     e.Index,
		Contract:  e.Contract[:],
		Caller:    e.Caller[:],
		Type:      e.Type,
		Result:    res,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return bs, nil
}

// UnmarshalBinary decodes an event written by MarshalBinary.
// Result is restored as a generic JSON value.
func (e *Event) UnmarshalBinary(bs []byte) error {
	var rec eventRecord
	if err := msgpack.Unmarshal(bs, &rec); err != nil {
		return errors.WithStack(err)
	}
	e.Height = rec.Height
	e.Timestamp = rec.Timestamp
	e.Index = rec.Index
	e.Contract = common.BytesToAddress(rec.Contract)
	e.Caller = common.BytesToAddress(rec.Caller)
	e.Type = rec.Type
	e.Result = nil
	if len(rec.Result) > 0 {
		var v interface{}
		if err := json.Unmarshal(rec.Result, &v); err != nil {
			return errors.WithStack(err)
		}
		e.Result = v
	}
	return nil
}
