package rev

import (
	"math/big"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Op names one of the four binary operations of the machine.
type Op string

const (
	OpStar   Op = "star"   // multiplication, ★
	OpDagger Op = "dagger" // addition, †
	OpGCD    Op = "gcd"    // ▼
	OpLCM    Op = "lcm"    // ▲
)

// AllOps lists the machine's operations in button order.
var AllOps = []Op{OpStar, OpDagger, OpGCD, OpLCM}

// Symbol returns the glyph shown on the machine for this Op.
func (op Op) Symbol() string {
	switch op {
	case OpStar:
		return "★"
	case OpDagger:
		return "†"
	case OpGCD:
		return "▼"
	case OpLCM:
		return "▲"
	}
	return "?"
}

// IsValid reports if op is one of AllOps.
func (op Op) IsValid() bool {
	switch op {
	case OpStar, OpDagger, OpGCD, OpLCM:
		return true
	}
	return false
}

// ParseOp accepts an op name, its glyph or its arithmetic shorthand ("*", "+").
func ParseOp(str string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "star", "★", "*", "x", "mul":
		return OpStar, nil
	case "dagger", "†", "+", "add":
		return OpDagger, nil
	case "gcd", "▼":
		return OpGCD, nil
	case "lcm", "▲":
		return OpLCM, nil
	}
	return "", errors.Wrapf(ErrUnknownOp, "%q", str)
}

// PrimeFactor is a prime raised to a count.
// A Prime of 1 is the sentinel denoting the multiplicative identity (the colorless node).
type PrimeFactor struct {
	Prime    *big.Int
	Exponent uint32
}

// Factorization is a sequence of PrimeFactors.
//
// Factorizations produced by factoring are in discovery (ascending) order, while
// factorizations produced by encoding a graph are sorted by prime descending.
// The factorization of 0 is empty and the factorization of 1 is the single sentinel factor.
type Factorization []PrimeFactor

// UnitFactorization returns the factorization of 1: the single sentinel factor (1,1).
func UnitFactorization() Factorization {
	return Factorization{{Prime: big.NewInt(1), Exponent: 1}}
}

// IsUnit reports if F consists only of the sentinel factor.
func (F Factorization) IsUnit() bool {
	return len(F) == 1 && IsSentinelPrime(F[0].Prime)
}

// WithoutSentinel returns the factors of F that are true primes.
func (F Factorization) WithoutSentinel() Factorization {
	out := make(Factorization, 0, len(F))
	for _, Fi := range F {
		if !IsSentinelPrime(Fi.Prime) {
			out = append(out, Fi)
		}
	}
	return out
}

// SortDescending sorts F in place by prime, largest first.
func (F Factorization) SortDescending() {
	sort.SliceStable(F, func(i, j int) bool {
		return F[i].Prime.Cmp(F[j].Prime) > 0
	})
}

// Clone returns a deep copy of F.
func (F Factorization) Clone() Factorization {
	if F == nil {
		return nil
	}
	out := make(Factorization, len(F))
	for i, Fi := range F {
		out[i] = PrimeFactor{
			Prime:    new(big.Int).Set(Fi.Prime),
			Exponent: Fi.Exponent,
		}
	}
	return out
}

// IsSentinelPrime reports if p is the sentinel value 1.
func IsSentinelPrime(p *big.Int) bool {
	return p != nil && p.IsInt64() && p.Int64() == 1
}

// GraphNumber is the numeric interpretation of a Graph.
type GraphNumber struct {
	Number        *big.Int
	Factorization Factorization // sorted by prime descending
	Display       string        // e.g. "11² × 2¹"
}

// ColorRegistry is the sole authority translating color labels to primes and back.
//
// Implementations must serialize allocation since ColorForPrime may register a new color.
type ColorRegistry interface {

	// PrimeForColor returns the prime assigned to the given color (case-insensitive).
	PrimeForColor(color string) (*big.Int, bool)

	// ColorForPrime returns the color for the given prime, allocating the next extended color if the prime is not yet registered.
	ColorForPrime(prime *big.Int) string

	// AvailableColors returns all registered colors in registration order, omitting aliases.
	AvailableColors() []string

	// ColorValue returns the display value of a color, or the label itself if unknown.
	ColorValue(color string) string
}

// Factorizer factors non-negative integers into prime powers.
type Factorizer interface {

	// Factorize returns the prime factors of n in ascending order.
	// Factorize(0) is empty and Factorize(1) is the sentinel factor.
	Factorize(n *big.Int) Factorization
}

// LayoutOpts specifies the spacing used when laying out result graphs.
type LayoutOpts struct {
	VerticalSpacing float64 // distance between consecutive rows
	StarOffset      float64 // x offset of the second operand in a star result
	GroupOffset     float64 // x offset between color groups of a decoded graph
}

// DefaultLayoutOpts{}
var DefaultLayoutOpts = LayoutOpts{
	VerticalSpacing: 50,
	StarOffset:      40,
	GroupOffset:     70,
}

// PrintOpts specifies what is printed when printing a graph
type PrintOpts struct {
	Label  string // Prefix label
	Expr   bool   // If set, prints the graph expression
	Number bool   // If set, prints the encoded number and its factorization
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Expr:   true,
	Number: true,
}
