package bin

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
)

// errors
var (
	ErrInvalidLength = errors.New("invalid length")
)

// Uint16Bytes returns a byte array of the uint16 number
func Uint16Bytes(v uint16) []byte {
	BNum := make([]byte, 2)
	binary.BigEndian.PutUint16(BNum, v)
	return BNum
}

// Uint64Bytes returns a byte array of the uint64 number.
// Big endian keeps state keys ordered by pool id.
func Uint64Bytes(v uint64) []byte {
	BNum := make([]byte, 8)
	binary.BigEndian.PutUint64(BNum, v)
	return BNum
}

// Uint16 returns a uint16 number of the byte array
func Uint16(v []byte) uint16 {
	return binary.BigEndian.Uint16(v)
}

// Uint64 returns a uint64 number of the byte array
func Uint64(v []byte) uint64 {
	return binary.BigEndian.Uint64(v)
}

// Amount returns a Amount of the byte array
func Amount(v []byte) *amount.Amount {
	return &amount.Amount{Int: big.NewInt(0).SetBytes(v)}
}

// Address returns a Address of the byte array
func Address(v []byte) common.Address {
	return common.BytesToAddress(v)
}
