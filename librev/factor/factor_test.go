package factor

import (
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
)

func TestFactorize(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1000003), 80) // 2^80 × 1000003

	cases := []struct {
		n    *big.Int
		want string
	}{
		{big.NewInt(0), "0"},
		{big.NewInt(1), "1"},
		{big.NewInt(2), "2¹"},
		{big.NewInt(12), "2² × 3¹"},
		{big.NewInt(-12), "2² × 3¹"},
		{big.NewInt(97), "97¹"},
		{big.NewInt(242), "2¹ × 11²"},
		{big.NewInt(1694), "2¹ × 7¹ × 11²"},
		{big.NewInt(1 << 12), "2¹²"},
		{huge, "2⁸⁰ × 1000003¹"},
	}

	for _, c := range cases {
		F := Factorize(c.n)
		if got := Format(F); got != c.want {
			t.Errorf("Factorize(%v): got %q, want %q", c.n, got, c.want)
		}
	}

	if F := Factorize(big.NewInt(1)); !F.IsUnit() {
		t.Fatalf("Factorize(1) should be the sentinel, got %v", F)
	}
	if F := Factorize(big.NewInt(0)); len(F) != 0 {
		t.Fatalf("Factorize(0) should be empty, got %v", F)
	}
}

func TestFactorizeAscending(t *testing.T) {
	F := Factorize(big.NewInt(2 * 3 * 3 * 5 * 7 * 7 * 7 * 13))
	for i := 1; i < len(F); i++ {
		if F[i-1].Prime.Cmp(F[i].Prime) >= 0 {
			t.Fatalf("factors not in discovery order: %v", Format(F))
		}
	}
}

func TestReconstruct(t *testing.T) {
	for i := int64(0); i <= 2000; i++ {
		n := big.NewInt(i)
		if got := Reconstruct(Factorize(n)); got.Cmp(n) != 0 {
			t.Fatalf("Reconstruct(Factorize(%d)) = %v", i, got)
		}
	}

	big1 := new(big.Int).Mul(new(big.Int).Lsh(big.NewInt(3), 90), big.NewInt(125))
	if got := Reconstruct(Factorize(big1)); got.Cmp(big1) != 0 {
		t.Fatalf("Reconstruct(Factorize(%v)) = %v", big1, got)
	}
}

func TestFormat(t *testing.T) {
	if got := Superscript(1024); got != "¹⁰²⁴" {
		t.Errorf("Superscript(1024) = %q", got)
	}
	if got := Format(Factorize(big.NewInt(1))); got != "1" {
		t.Errorf("Format(1) = %q", got)
	}
	F := Factorize(big.NewInt(50))
	F.SortDescending()
	if got := Format(F); got != "5² × 2¹" {
		t.Errorf("descending Format(50) = %q", got)
	}
}

func TestPrimes(t *testing.T) {
	want := []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	got := GeneratePrimes(30)
	if len(got) != len(want) {
		t.Fatalf("GeneratePrimes(30) = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GeneratePrimes(30) = %v", got)
		}
	}
	if GeneratePrimes(1) != nil {
		t.Fatal("GeneratePrimes(1) should be empty")
	}

	isPrime := make(map[int]bool)
	for _, p := range GeneratePrimes(500) {
		isPrime[p] = true
	}
	for i := -3; i <= 500; i++ {
		if IsPrime(big.NewInt(int64(i))) != isPrime[i] {
			t.Fatalf("IsPrime(%d) disagrees with sieve", i)
		}
	}
}

func TestMerge(t *testing.T) {
	A := NewFactorMapFrom(Factorize(big.NewInt(242)))
	B := NewFactorMapFrom(Factorize(big.NewInt(14)))

	if got := Reconstruct(MergeMin(A, B)); got.Int64() != 2 {
		t.Errorf("gcd(242,14) = %v", got)
	}
	if got := Reconstruct(MergeMax(A, B)); got.Int64() != 1694 {
		t.Errorf("lcm(242,14) = %v", got)
	}

	C := NewFactorMapFrom(Factorize(big.NewInt(35)))
	if F := MergeMin(A, C); len(F) != 0 {
		t.Errorf("gcd(242,35) should have no primes, got %v", Format(F))
	}

	unit := NewFactorMapFrom(Factorize(big.NewInt(1)))
	if unit.Len() != 0 {
		t.Error("sentinel must not be stored")
	}
}

func TestEngineCache(t *testing.T) {
	var lookups atomic.Int64
	eng, err := NewEngine(EngineOpts{
		UseCache:     true,
		CacheMinBits: 2,
		OnLookup: func(hit bool) {
			lookups.Add(1)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	n := big.NewInt(360)
	F1 := eng.Factorize(n)
	F2 := eng.Factorize(n)
	if Format(F1) != "2³ × 3² × 5¹" || Format(F2) != Format(F1) {
		t.Fatalf("cached factorization mismatch: %q vs %q", Format(F1), Format(F2))
	}

	hits, misses := eng.CacheStats()
	if hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}
	if lookups.Load() != 2 {
		t.Fatalf("OnLookup called %d times", lookups.Load())
	}

	// below CacheMinBits bypasses the cache
	eng.Factorize(big.NewInt(1))
	if h, m := eng.CacheStats(); h != hits || m != misses {
		t.Fatal("small numbers should not touch the cache")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Reconstruct(eng.Factorize(big.NewInt(9240))); got.Int64() != 9240 {
				t.Errorf("concurrent Factorize(9240) reconstructs to %v", got)
			}
		}()
	}
	wg.Wait()
}
