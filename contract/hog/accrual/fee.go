package accrual

import (
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common/amount"
)

// MaxFeeBP is the basis point denominator
const MaxFeeBP = 10000

var feeDenominator = amount.NewAmountFromBig(bigUint(MaxFeeBP))

// ValidateFee rejects basis points above MaxFeeBP
func ValidateFee(bps uint16) error {
	if bps > MaxFeeBP {
		return errors.Wrapf(ErrInvalidFee, "%v", bps)
	}
	return nil
}

// Split returns fee = amt*bps/10000 rounded down and net = amt-fee
func Split(amt *amount.Amount, bps uint16) (fee *amount.Amount, net *amount.Amount, err error) {
	if err := ValidateFee(bps); err != nil {
		return nil, nil, err
	}
	if amt.IsMinus() {
		return nil, nil, errors.Wrapf(ErrInvalidAmount, "%v", amt.String())
	}
	if amt.IsZero() || bps == 0 {
		return amount.ZeroCoin(), amt.Clone(), nil
	}
	fee, err = amount.CheckedMulDiv(amt, amount.NewAmountFromBig(bigUint(uint64(bps))), feeDenominator)
	if err != nil {
		return nil, nil, ErrArithmeticOverflow
	}
	return fee, amt.Sub(fee), nil
}
