//
// Define the `Amount` type, which is the token-weight type used across the
// code base.
//
// One governance token accounts for 1 million base units. In addition to
// the `Amount` type, some member functions are defined:
// - `Add` / `Sub` do an addition / substraction and return an error object
// - `MustAdd` / `MustSub` call `Add` / `Sub` and turn any `error` into a
//   `panic`. Those are provided for testing / quick prototyping and should
//   not be in production code.
// - `Invariant` panics if the instance it's called on violates its invariant
//
package common

import (
	"fmt"
	"math/big"
	"strconv"

	"oceandao.io/gov/lib/errors"
)

const (
	// 1,000,000 base units == 1 governance token
	AmountPerToken Amount = 1000000
	// The maximum possible supply of the governance token
	MaximumBalance Amount = 1000000000000 * AmountPerToken
	// An invalid value, used to make an instance unusable
	invalidValue = Amount(MaximumBalance + 1)
)

// Main token-weight type used across the governance module. Poll vote
// accumulators, deposits and staked balances are all `Amount`s.
type Amount uint64

// Check this type's invariant, that is, its value is <= MaximumBalance
func (a Amount) Invariant() {
	if a > MaximumBalance {
		// `uint64` is necessary to avoid a recursive call to `String`
		// which would lead to an infinite recursion
		panic(fmt.Errorf("Amount '%d' is higher than the total supply of tokens (%d)", uint64(a), uint64(MaximumBalance)))
	}
}

// Stringer interface implementation
func (a Amount) String() string {
	a.Invariant()
	return strconv.FormatUint(uint64(a), 10)
}

func (a Amount) IsZero() bool {
	return a == 0
}

//
// Add an `Amount` to this `Amount`
//
// If the resulting value would overflow MaximumBalance, an error is
// returned, along with the value (which would trigger a `panic` if used).
//
func (a Amount) Add(added Amount) (n Amount, err error) {
	a.Invariant()
	added.Invariant()
	if n = a + added; n > MaximumBalance {
		err = errors.ErrorMaximumBalanceReached
	}
	return
}

// Counterpart of `Add` which panics instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (a Amount) MustAdd(added Amount) Amount {
	if v, err := a.Add(added); err != nil {
		panic(err)
	} else {
		return v
	}
}

//
// Substract an `Amount` from this `Amount`
//
// If the resulting value would underflow, an error is returned,
// along with an invalid value (which would trigger a `panic` if used).
//
func (a Amount) Sub(sub Amount) (Amount, error) {
	a.Invariant()
	sub.Invariant()
	if a < sub {
		return invalidValue, errors.ErrorAmountUnderZero
	}
	return a - sub, nil
}

// Counterpart of `Sub` which panics instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (a Amount) MustSub(sub Amount) Amount {
	if v, err := a.Sub(sub); err != nil {
		panic(err)
	} else {
		return v
	}
}

//
// MulRatio returns `a * num / den`, computed without intermediate
// truncation or overflow. This is the share-to-balance conversion
// primitive; `den == 0` yields zero.
//
func (a Amount) MulRatio(num, den Amount) Amount {
	a.Invariant()
	if den == 0 || a == 0 || num == 0 {
		return Amount(0)
	}

	r := new(big.Int).Mul(new(big.Int).SetUint64(uint64(a)), new(big.Int).SetUint64(uint64(num)))
	r.Quo(r, new(big.Int).SetUint64(uint64(den)))

	n := Amount(r.Uint64())
	n.Invariant()
	return n
}

// Implement JSON's Marshaler interface
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.String())), nil
}

// Implement JSON's Unmarshaler interface
// If Unmarshalling errors, `a` will have an `invalidValue`
func (a *Amount) UnmarshalJSON(b []byte) (err error) {
	*a, err = AmountFromString(string(b[1 : len(b)-1]))
	return
}

// Parse an `Amount` from a string input
//
// Params:
//   str = a string consisting only of numbers, expressing an amount in base units
//
// Returns:
//  A valid `Amount` and a `nil` error, or an invalid amount and an `error`
func AmountFromString(str string) (Amount, error) {
	if value, err := strconv.ParseUint(str, 10, 64); err != nil {
		return invalidValue, err
	} else {
		return Amount(value), nil
	}
}

// Same as AmountFromString, except it `panic`s if an error happens
func MustAmountFromString(str string) Amount {
	if value, err := AmountFromString(str); err != nil {
		panic(err)
	} else {
		return value
	}
}
