package common

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"oceandao.io/gov/lib/errors"
)

var (
	maximumBalance    = uint64(MaximumBalance)
	maximumBalanceStr = strconv.FormatUint(maximumBalance, 10)
)

func TestAmount_Invariant(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("exceeds max allowable amount value.")
		}
	}()

	amount := Amount(maximumBalance + 1)
	amount.Invariant()
}

func TestAmount_AddOverflow(t *testing.T) {
	_, err := MaximumBalance.Add(Amount(1))
	require.Equal(t, errors.ErrorMaximumBalanceReached, err)

	v, err := Amount(100).Add(Amount(50))
	require.Nil(t, err)
	require.Equal(t, Amount(150), v)
}

func TestAmount_SubUnderflow(t *testing.T) {
	_, err := Amount(10).Sub(Amount(11))
	require.Equal(t, errors.ErrorAmountUnderZero, err)

	v, err := Amount(11).Sub(Amount(10))
	require.Nil(t, err)
	require.Equal(t, Amount(1), v)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Expected `panic` did not happen")
			}
		}()
		_ = Amount(0).MustSub(Amount(1))
		t.Error("Unreachable code")
	}()
}

func TestAmount_MulRatio(t *testing.T) {
	// share-to-balance conversion: 10 shares of a 1000-unit pool with 100
	// shares issued is worth 100 units
	require.Equal(t, Amount(100), Amount(10).MulRatio(Amount(1000), Amount(100)))

	// zero total share converts to nothing
	require.Equal(t, Amount(0), Amount(10).MulRatio(Amount(1000), Amount(0)))

	// intermediate product may exceed uint64
	big := MaximumBalance
	require.Equal(t, big, big.MulRatio(big, big))
}

func TestAmount_Uint64OutOfRange(t *testing.T) {
	amount, err := AmountFromString(maximumBalanceStr)
	require.Nil(t, err)
	require.Equal(t, maximumBalanceStr, amount.String())
}

func TestAmount_JSON(t *testing.T) {
	b, err := Amount(12345).MarshalJSON()
	require.Nil(t, err)
	require.Equal(t, `"12345"`, string(b))

	var a Amount
	require.Nil(t, a.UnmarshalJSON(b))
	require.Equal(t, Amount(12345), a)
}
