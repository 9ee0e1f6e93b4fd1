package automaton

import (
	"fmt"
	"math"
	"math/big"
)

// ExpandBase returns the base-b digits of x, most significant first, padded
// with leading zeros to at least places digits. Zero expands to
// max(1, places) zeros.
func ExpandBase(x *big.Int, base, places int) ([]int, error) {
	if base < 2 {
		return nil, fmt.Errorf("%w: base must be at least 2, got %d", ErrInvalidArgument, base)
	}
	if x == nil || x.Sign() < 0 {
		return nil, fmt.Errorf("%w: cannot expand negative number %v", ErrInvalidArgument, x)
	}
	if x.Sign() == 0 {
		return make([]int, max(1, places)), nil
	}

	b := big.NewInt(int64(base))
	n, p := digitCount(x, b, base)

	digits := make([]int, max(places, n))
	offset := len(digits) - n

	rem := new(big.Int).Set(x)
	d, r := new(big.Int), new(big.Int)
	for i := 0; i < n; i++ {
		d.QuoRem(rem, p, r)
		rem, r = r, rem
		if !d.IsInt64() || d.Int64() >= int64(base) {
			// digitCount guarantees x < b^n, so every quotient is a single digit.
			panic(fmt.Sprintf("automaton: digit %v overflows base %d", d, base))
		}
		digits[offset+i] = int(d.Int64())
		p.Quo(p, b)
	}
	return digits, nil
}

// ExpandUint64 is ExpandBase for machine-sized numbers.
func ExpandUint64(x uint64, base, places int) ([]int, error) {
	return ExpandBase(new(big.Int).SetUint64(x), base, places)
}

// digitCount returns the number of base-b digits of x > 0 together with
// b^(n-1), the place value of the leading digit. The logarithm only seeds the
// search; the result satisfies b^(n-1) <= x < b^n exactly.
func digitCount(x, b *big.Int, base int) (int, *big.Int) {
	est := int(float64(x.BitLen()-1)/math.Log2(float64(base))) + 1
	if est < 1 {
		est = 1
	}

	p := new(big.Int).Exp(b, big.NewInt(int64(est-1)), nil)
	for p.Cmp(x) > 0 && est > 1 {
		p.Quo(p, b)
		est--
	}
	next := new(big.Int).Mul(p, b)
	for next.Cmp(x) <= 0 {
		p.Set(next)
		next.Mul(next, b)
		est++
	}
	return est, p
}

// FromDigits reassembles a most-significant-first digit sequence into an
// integer.
func FromDigits(digits []int, base int) (*big.Int, error) {
	if base < 2 {
		return nil, fmt.Errorf("%w: base must be at least 2, got %d", ErrInvalidArgument, base)
	}
	b := big.NewInt(int64(base))
	x := new(big.Int)
	for i, d := range digits {
		if d < 0 || d >= base {
			return nil, fmt.Errorf("%w: digit %d at position %d not in base %d", ErrInvalidArgument, d, i, base)
		}
		x.Mul(x, b)
		x.Add(x, big.NewInt(int64(d)))
	}
	return x, nil
}
