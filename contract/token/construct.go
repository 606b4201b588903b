package token

import (
	"io"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
)

// TokenContractConstruction is the deploy argument of a TokenContract.
// GenesisAllocation and DaoAllocation are minted once by DistributeReward.
type TokenContractConstruction struct {
	Name              string
	Symbol            string
	InitialSupplyMap  map[common.Address]*amount.Amount
	GenesisAllocation *amount.Amount
	DaoAllocation     *amount.Amount
}

func (s *TokenContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.String(w, s.Name); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Symbol); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, uint64(len(s.InitialSupplyMap))); err != nil {
		return sum, err
	}
	for _, k := range sortedHolders(s.InitialSupplyMap) {
		if sum, err := sw.Address(w, k); err != nil {
			return sum, err
		}
		if sum, err := sw.Amount(w, s.InitialSupplyMap[k]); err != nil {
			return sum, err
		}
	}
	if sum, err := sw.Amount(w, orZero(s.GenesisAllocation)); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, orZero(s.DaoAllocation)); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *TokenContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.String(r, &s.Name); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Symbol); err != nil {
		return sum, err
	}
	var Len uint64
	if sum, err := sr.Uint64(r, &Len); err != nil {
		return sum, err
	}
	s.InitialSupplyMap = map[common.Address]*amount.Amount{}
	for i := uint64(0); i < Len; i++ {
		var addr common.Address
		if sum, err := sr.Address(r, &addr); err != nil {
			return sum, err
		}
		var am *amount.Amount
		if sum, err := sr.Amount(r, &am); err != nil {
			return sum, err
		}
		s.InitialSupplyMap[addr] = am
	}
	if sum, err := sr.Amount(r, &s.GenesisAllocation); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.DaoAllocation); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
