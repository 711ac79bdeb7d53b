package factor

import (
	"math/big"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/2x3systems/gorev/rev"
)

// FactorMap is an ordered prime -> exponent map.  The sentinel prime is never stored.
type FactorMap struct {
	tree *redblacktree.Tree
}

func primeComparator(A, B interface{}) int {
	return A.(*big.Int).Cmp(B.(*big.Int))
}

func NewFactorMap() *FactorMap {
	return &FactorMap{
		tree: redblacktree.NewWith(primeComparator),
	}
}

// NewFactorMapFrom tallies F into a new FactorMap, summing exponents of repeated primes.
func NewFactorMapFrom(F rev.Factorization) *FactorMap {
	fm := NewFactorMap()
	for _, Fi := range F {
		fm.Add(Fi.Prime, Fi.Exponent)
	}
	return fm
}

// Add raises the exponent of the given prime by count.
func (fm *FactorMap) Add(prime *big.Int, count uint32) {
	if count == 0 || rev.IsSentinelPrime(prime) {
		return
	}
	fm.tree.Put(prime, fm.Exponent(prime)+count)
}

// Exponent returns the exponent of the given prime, or 0 if absent.
func (fm *FactorMap) Exponent(prime *big.Int) uint32 {
	if exp, found := fm.tree.Get(prime); found {
		return exp.(uint32)
	}
	return 0
}

// Len returns the number of distinct primes.
func (fm *FactorMap) Len() int {
	return fm.tree.Size()
}

// Factorization returns the contents of fm in ascending prime order.
func (fm *FactorMap) Factorization() rev.Factorization {
	F := make(rev.Factorization, 0, fm.tree.Size())
	itr := fm.tree.Iterator()
	for itr.Next() {
		F = append(F, rev.PrimeFactor{
			Prime:    new(big.Int).Set(itr.Key().(*big.Int)),
			Exponent: itr.Value().(uint32),
		})
	}
	return F
}

// merge combines the union of primes of A and B, keeping primes with a non-zero pick().
func merge(A, B *FactorMap, pick func(a, b uint32) uint32) rev.Factorization {
	union := NewFactorMap()
	for _, src := range [2]*FactorMap{A, B} {
		itr := src.tree.Iterator()
		for itr.Next() {
			union.tree.Put(itr.Key(), uint32(0))
		}
	}

	F := make(rev.Factorization, 0, union.Len())
	itr := union.tree.Iterator()
	for itr.Next() {
		prime := itr.Key().(*big.Int)
		if exp := pick(A.Exponent(prime), B.Exponent(prime)); exp > 0 {
			F = append(F, rev.PrimeFactor{
				Prime:    new(big.Int).Set(prime),
				Exponent: exp,
			})
		}
	}
	return F
}

// MergeMin takes the minimum exponent of each prime (absence counting as 0); this is the gcd.
func MergeMin(A, B *FactorMap) rev.Factorization {
	return merge(A, B, func(a, b uint32) uint32 {
		return min(a, b)
	})
}

// MergeMax takes the maximum exponent of each prime (absence counting as 0); this is the lcm.
func MergeMax(A, B *FactorMap) rev.Factorization {
	return merge(A, B, func(a, b uint32) uint32 {
		return max(a, b)
	})
}
