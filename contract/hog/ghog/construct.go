package ghog

import (
	"io"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
)

const (
	DefaultHogSAllocPoint  = uint64(600)
	DefaultGhogSAllocPoint = uint64(400)
)

// GHogContractConstruction is the deploy argument of a GHogContract.
// The HOG-S and GHOG-S pools are created as pool 0 and 1, a zero alloc point takes the default.
type GHogContractConstruction struct {
	RewardToken     common.Address
	HogS            common.Address
	GhogS           common.Address
	DevFund         common.Address
	StartTime       uint64
	SharePerSecond  *amount.Amount
	HogSAllocPoint  uint64
	GhogSAllocPoint uint64
	DepositFeeBP    uint16
	WithdrawFeeBP   uint16
}

func (s *GHogContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.RewardToken); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.HogS); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.GhogS); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.DevFund); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.StartTime); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.SharePerSecond); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.HogSAllocPoint); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.GhogSAllocPoint); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint16(w, s.DepositFeeBP); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint16(w, s.WithdrawFeeBP); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *GHogContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.RewardToken); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.HogS); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.GhogS); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.DevFund); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.StartTime); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.SharePerSecond); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.HogSAllocPoint); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.GhogSAllocPoint); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint16(r, &s.DepositFeeBP); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint16(r, &s.WithdrawFeeBP); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
