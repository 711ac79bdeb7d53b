package factor

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/2x3systems/gorev/rev"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Factorize factors |n| into prime powers by trial division, in ascending prime order.
//
// Factorize(0) is empty and Factorize(1) is the sentinel factor (1,1).
// Cost is O(√n) divisions, which is the scalability ceiling of this package.
func Factorize(n *big.Int) rev.Factorization {
	if n == nil || n.Sign() == 0 {
		return rev.Factorization{}
	}

	num := new(big.Int).Abs(n)
	if num.Cmp(bigOne) == 0 {
		return rev.UnitFactorization()
	}

	if num.IsUint64() {
		return factorizeUint64(num.Uint64())
	}
	return factorizeBig(num)
}

func factorizeUint64(num uint64) rev.Factorization {
	factors := rev.Factorization{}

	count := uint32(0)
	for num%2 == 0 {
		num /= 2
		count++
	}
	if count > 0 {
		factors = append(factors, rev.PrimeFactor{Prime: big.NewInt(2), Exponent: count})
	}

	// i <= num/i avoids overflowing i*i for num near 2^64
	for i := uint64(3); i <= num/i; i += 2 {
		count = 0
		for num%i == 0 {
			num /= i
			count++
		}
		if count > 0 {
			factors = append(factors, rev.PrimeFactor{Prime: new(big.Int).SetUint64(i), Exponent: count})
		}
	}

	if num > 1 {
		factors = append(factors, rev.PrimeFactor{Prime: new(big.Int).SetUint64(num), Exponent: 1})
	}
	return factors
}

func factorizeBig(num *big.Int) rev.Factorization {
	factors := rev.Factorization{}

	var (
		quo = new(big.Int)
		rem = new(big.Int)
		sq  = new(big.Int)
	)

	count := uint32(0)
	for num.Bit(0) == 0 {
		num.Rsh(num, 1)
		count++
	}
	if count > 0 {
		factors = append(factors, rev.PrimeFactor{Prime: big.NewInt(2), Exponent: count})
	}

	for i := big.NewInt(3); sq.Mul(i, i).Cmp(num) <= 0; i.Add(i, bigTwo) {
		count = 0
		for {
			quo.QuoRem(num, i, rem)
			if rem.Sign() != 0 {
				break
			}
			num.Set(quo)
			count++
		}
		if count > 0 {
			factors = append(factors, rev.PrimeFactor{Prime: new(big.Int).Set(i), Exponent: count})
		}
	}

	if num.Cmp(bigOne) > 0 {
		factors = append(factors, rev.PrimeFactor{Prime: new(big.Int).Set(num), Exponent: 1})
	}
	return factors
}

// Reconstruct returns the product of prime^exponent over F.
// Reconstruct of an empty factorization is 0, and of the sentinel factorization is 1.
func Reconstruct(F rev.Factorization) *big.Int {
	if len(F) == 0 {
		return new(big.Int)
	}

	result := big.NewInt(1)
	pow := new(big.Int)
	for _, Fi := range F {
		pow.Exp(Fi.Prime, new(big.Int).SetUint64(uint64(Fi.Exponent)), nil)
		result.Mul(result, pow)
	}
	return result
}

var superscripts = [10]string{"⁰", "¹", "²", "³", "⁴", "⁵", "⁶", "⁷", "⁸", "⁹"}

// Superscript renders a count using unicode superscript digits.
func Superscript(exp uint32) string {
	digits := strconv.FormatUint(uint64(exp), 10)
	var b strings.Builder
	for _, d := range digits {
		b.WriteString(superscripts[d-'0'])
	}
	return b.String()
}

// Format renders F as "p₁^e₁ × p₂^e₂ …" with superscript exponents, skipping the sentinel.
// An empty factorization renders as "0" and an all-sentinel factorization as "1".
func Format(F rev.Factorization) string {
	if len(F) == 0 {
		return "0"
	}

	var b strings.Builder
	for _, Fi := range F {
		if rev.IsSentinelPrime(Fi.Prime) {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" × ")
		}
		b.WriteString(Fi.Prime.String())
		b.WriteString(Superscript(Fi.Exponent))
	}
	if b.Len() == 0 {
		return "1"
	}
	return b.String()
}
