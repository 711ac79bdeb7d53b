package factor

import "math/big"

// IsPrime reports if n is prime, by trial division.
func IsPrime(n *big.Int) bool {
	if n == nil || n.Cmp(bigTwo) < 0 {
		return false
	}
	F := Factorize(n)
	return len(F) == 1 && F[0].Exponent == 1 && F[0].Prime.Cmp(n) == 0
}

// GeneratePrimes returns all primes <= limit (sieve of Eratosthenes).
func GeneratePrimes(limit int) []int {
	if limit < 2 {
		return nil
	}

	composite := make([]bool, limit+1)
	for p := 2; p*p <= limit; p++ {
		if composite[p] {
			continue
		}
		for i := p * p; i <= limit; i += p {
			composite[i] = true
		}
	}

	primes := make([]int, 0, limit/4+1)
	for i := 2; i <= limit; i++ {
		if !composite[i] {
			primes = append(primes, i)
		}
	}
	return primes
}
