package common

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Address is the 20-byte account identifier shared by users, tokens and pools
type Address = common.Address

// ZeroAddr is the empty address
var ZeroAddr = Address{}

// AddressLength is the expected length of the address
const AddressLength = common.AddressLength

// BytesToAddress returns Address with value b.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	return common.BytesToAddress(b)
}

// BigToAddress returns Address with byte values of b.
func BigToAddress(b *big.Int) Address {
	return common.BigToAddress(b)
}

// HexToAddress returns Address with byte values of s.
func HexToAddress(s string) Address {
	return common.HexToAddress(s)
}

// ParseAddress parses a hex address and reports malformed input
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0x")
	addr := Address{}
	if len(s) != AddressLength*2 {
		return addr, errors.WithStack(ErrInvalidAddressFormat)
	}
	h, err := hex.DecodeString(s)
	if err != nil {
		return addr, errors.WithStack(err)
	}
	copy(addr[:], h)
	return addr, nil
}

// SeedAddress derives a stable address from a human readable label.
// Scenario files and tests name accounts ("alice", "devfund") instead of writing hex.
func SeedAddress(label string) Address {
	return common.BytesToAddress(crypto.Keccak256([]byte(label))[12:])
}

// ContractAddress returns the address of the nonce-th contract created by the deployer
func ContractAddress(deployer Address, nonce uint64) Address {
	return crypto.CreateAddress(deployer, nonce)
}
