package accrual

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogfinance/hogpool/common/amount"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		amt string
		bps uint16
		fee string
	}{
		{"100", 0, "0"},
		{"100", 100, "1"},
		{"100", 10000, "100"},
		{"0.000000000000000199", 50, "0"},
		{"0.000000000000000200", 50, "0.000000000000000001"},
		{"123.456", 250, "3.0864"},
	}
	for _, c := range cases {
		amt := amount.MustParseAmount(c.amt)
		fee, net, err := Split(amt, c.bps)
		require.NoError(t, err)
		assert.Equal(t, amount.MustParseAmount(c.fee).String(), fee.String(), c.amt)
		assert.Equal(t, amt.String(), fee.Add(net).String())
	}

	_, _, err := Split(amount.NewAmount(1, 0), 10001)
	assert.Equal(t, ErrInvalidFee, errors.Cause(err))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(errors.Wrap(ErrInvalidPoolID, "7")))
	assert.Equal(t, KindValidation, KindOf(ErrInsufficientStake))
	assert.Equal(t, KindAuthorization, KindOf(errors.WithStack(ErrNotOperator)))
	assert.Equal(t, KindAuthorization, KindOf(ErrProtectedToken))
	assert.Equal(t, KindArithmetic, KindOf(ErrArithmeticOverflow))
	assert.Equal(t, KindSchedule, KindOf(ErrPoolNotStarted))
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))
	assert.Equal(t, "authorization", KindAuthorization.String())
}
