//
// Define the `Ratio` type used for the quorum and threshold parameters and
// for tallied vote ratios.
//
// A `Ratio` is an exact rational over uint64; comparisons cross-multiply in
// big integer space so no floating point ever enters a tally decision.
//
package common

import (
	"fmt"
	"math/big"
	"strings"

	"oceandao.io/gov/lib/errors"
)

const ratioFractionDigits = 18

type Ratio struct {
	num uint64
	den uint64
}

var ZeroRatio = Ratio{num: 0, den: 1}

func NewRatio(num, den uint64) Ratio {
	if den == 0 {
		return ZeroRatio
	}
	return Ratio{num: num, den: den}
}

// RatioFromAmounts builds the ratio `a/b`; a zero denominator yields the
// zero ratio, matching the "no possible votes" tally rule.
func RatioFromAmounts(a, b Amount) Ratio {
	return NewRatio(uint64(a), uint64(b))
}

// RatioFromString parses a decimal literal like "0.4" or "1". At most 18
// fractional digits are kept.
func RatioFromString(str string) (Ratio, error) {
	parts := strings.SplitN(strings.TrimSpace(str), ".", 2)
	if len(parts) == 0 || len(parts[0]) == 0 && (len(parts) == 1 || len(parts[1]) == 0) {
		return ZeroRatio, errors.ErrorInvalidRatio.Clone().SetData("literal", str)
	}

	whole := big.NewInt(0)
	if len(parts[0]) > 0 {
		if _, ok := whole.SetString(parts[0], 10); !ok || whole.Sign() < 0 {
			return ZeroRatio, errors.ErrorInvalidRatio.Clone().SetData("literal", str)
		}
	}

	num := new(big.Int).Set(whole)
	den := big.NewInt(1)
	if len(parts) == 2 {
		frac := parts[1]
		if len(frac) > ratioFractionDigits {
			frac = frac[:ratioFractionDigits]
		}
		f := new(big.Int)
		if _, ok := f.SetString(frac, 10); !ok || f.Sign() < 0 {
			return ZeroRatio, errors.ErrorInvalidRatio.Clone().SetData("literal", str)
		}
		den.Exp(big.NewInt(10), big.NewInt(int64(len(frac))), nil)
		num.Mul(num, den)
		num.Add(num, f)
	}

	if !num.IsUint64() || !den.IsUint64() {
		return ZeroRatio, errors.ErrorInvalidRatio.Clone().SetData("literal", str)
	}

	return NewRatio(num.Uint64(), den.Uint64()), nil
}

// Same as RatioFromString, except it `panic`s if an error happens
func MustRatioFromString(str string) Ratio {
	if r, err := RatioFromString(str); err != nil {
		panic(err)
	} else {
		return r
	}
}

func (r Ratio) IsZero() bool {
	return r.num == 0
}

func (r Ratio) cross(o Ratio) (*big.Int, *big.Int) {
	l := new(big.Int).Mul(new(big.Int).SetUint64(r.num), new(big.Int).SetUint64(o.den))
	m := new(big.Int).Mul(new(big.Int).SetUint64(o.num), new(big.Int).SetUint64(r.den))
	return l, m
}

func (r Ratio) Less(o Ratio) bool {
	l, m := r.cross(o)
	return l.Cmp(m) < 0
}

func (r Ratio) Greater(o Ratio) bool {
	l, m := r.cross(o)
	return l.Cmp(m) > 0
}

func (r Ratio) Equal(o Ratio) bool {
	l, m := r.cross(o)
	return l.Cmp(m) == 0
}

// Stringer interface implementation; renders a decimal literal with
// trailing zeros trimmed.
func (r Ratio) String() string {
	if r.num == 0 {
		return "0"
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(ratioFractionDigits), nil)
	scaled := new(big.Int).Mul(new(big.Int).SetUint64(r.num), scale)
	scaled.Quo(scaled, new(big.Int).SetUint64(r.den))

	whole := new(big.Int).Quo(scaled, scale)
	frac := new(big.Int).Mod(scaled, scale)
	if frac.Sign() == 0 {
		return whole.String()
	}

	fracStr := strings.TrimRight(fmt.Sprintf("%018s", frac.String()), "0")
	return fmt.Sprintf("%s.%s", whole.String(), fracStr)
}

// Implement JSON's Marshaler interface
func (r Ratio) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", r.String())), nil
}

// Implement JSON's Unmarshaler interface
func (r *Ratio) UnmarshalJSON(b []byte) (err error) {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	*r, err = RatioFromString(s)
	return
}
