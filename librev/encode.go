package librev

import (
	"math/big"
	"strings"

	"github.com/plan-systems/klog"

	"github.com/2x3systems/gorev/librev/factor"
	"github.com/2x3systems/gorev/rev"
)

func zeroNumber() rev.GraphNumber {
	return rev.GraphNumber{
		Number:        new(big.Int),
		Factorization: rev.Factorization{},
		Display:       "0",
	}
}

func unitNumber() rev.GraphNumber {
	return rev.GraphNumber{
		Number:        big.NewInt(1),
		Factorization: rev.UnitFactorization(),
		Display:       "1",
	}
}

// Encode projects the node multiset of X onto ∏ prime(color)^count(color).  Edges are ignored.
//
// A graph with no nodes is 0.  A graph whose nodes are all white/gray is 1 no matter how many there are.
// Nodes with a color the registry doesn't know are skipped with a warning; if that leaves no nodes,
// the empty product makes X 1.
func (m *Machine) Encode(X *rev.Graph) rev.GraphNumber {
	if X.IsEmpty() {
		return zeroNumber()
	}

	var (
		tally   = factor.NewFactorMap()
		primes  = make(map[string]*big.Int)
		unknown map[string]struct{}
	)

	for _, node := range X.Nodes {
		color := strings.ToLower(node.Color)
		prime, found := primes[color]
		if !found {
			if _, skipped := unknown[color]; skipped {
				continue
			}
			prime, found = m.colors.PrimeForColor(color)
			if !found {
				if unknown == nil {
					unknown = make(map[string]struct{})
				}
				unknown[color] = struct{}{}
				klog.Warningf("encode: unknown color %q skipped", node.Color)
				ObserveUnknownColor()
				continue
			}
			primes[color] = prime
		}
		tally.Add(prime, 1)
	}

	// The sentinel never enters the product, so all-white (or all-unknown) graphs are special-cased here
	if tally.Len() == 0 {
		return unitNumber()
	}

	F := tally.Factorization()
	num := factor.Reconstruct(F)
	F.SortDescending()

	return rev.GraphNumber{
		Number:        num,
		Factorization: F,
		Display:       factor.Format(F),
	}
}
