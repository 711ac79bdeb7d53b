package palette

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseTable(t *testing.T) {
	reg := NewRegistry(RegistryOpts{})

	tests := []struct {
		color string
		prime int64
	}{
		{"white", 1},
		{"gray", 1},
		{"GRAY", 1},
		{"red", 2},
		{"Blue", 3},
		{"green", 5},
		{"yellow", 7},
		{"cyan", 11},
		{"magenta", 13},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			p, found := reg.PrimeForColor(tt.color)
			require.True(t, found)
			assert.Equal(t, tt.prime, p.Int64())
		})
	}

	_, found := reg.PrimeForColor("orange")
	assert.False(t, found, "extended colors are unknown until allocated")

	assert.Equal(t, "white", reg.ColorForPrime(big.NewInt(1)))
	assert.Equal(t, "cyan", reg.ColorForPrime(big.NewInt(11)))
	assert.Equal(t,
		[]string{"white", "red", "blue", "green", "yellow", "cyan", "magenta"},
		reg.AvailableColors())
}

func TestAllocation(t *testing.T) {
	var allocated []string
	reg := NewRegistry(RegistryOpts{
		OnAllocate: func(color string) {
			allocated = append(allocated, color)
		},
	})

	assert.Equal(t, "orange", reg.ColorForPrime(big.NewInt(17)))
	assert.Equal(t, "pink", reg.ColorForPrime(big.NewInt(19)))
	assert.Equal(t, "orange", reg.ColorForPrime(big.NewInt(17)), "allocation is stable")

	p, found := reg.PrimeForColor("orange")
	require.True(t, found)
	assert.Equal(t, int64(17), p.Int64())
	assert.Equal(t, []string{"orange", "pink"}, allocated)
	assert.Equal(t, "#ff8844", reg.ColorValue("orange"))
	assert.Equal(t, "chartreuse", reg.ColorValue("chartreuse"))
}

func TestWraparound(t *testing.T) {
	reg := NewRegistry(RegistryOpts{
		Extended: []Swatch{{"orange", "#ff8844"}, {"pink", "#ff88ff"}},
	})

	colors := []string{}
	for _, p := range []int64{17, 19, 23, 29, 31} {
		colors = append(colors, reg.ColorForPrime(big.NewInt(p)))
	}
	assert.Equal(t, []string{"orange", "pink", "orange2", "pink2", "orange3"}, colors)

	// every allocated color still maps back to its own prime
	for i, p := range []int64{17, 19, 23, 29, 31} {
		got, found := reg.PrimeForColor(colors[i])
		require.True(t, found)
		assert.Equal(t, p, got.Int64())
	}
}

func TestPreassign(t *testing.T) {
	reg := NewRegistry(RegistryOpts{
		Preassign: []*big.Int{big.NewInt(23), big.NewInt(17)},
	})
	assert.Equal(t, "orange", reg.ColorForPrime(big.NewInt(23)))
	assert.Equal(t, "pink", reg.ColorForPrime(big.NewInt(17)))
	assert.Equal(t, 2, reg.NumAllocated())
}

func TestConcurrentAllocation(t *testing.T) {
	reg := NewRegistry(RegistryOpts{})
	primes := []int64{17, 19, 23, 29, 31, 37, 41, 43}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range primes {
				reg.ColorForPrime(big.NewInt(p))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(primes), reg.NumAllocated())
	seen := make(map[string]bool)
	for _, p := range primes {
		color := reg.ColorForPrime(big.NewInt(p))
		assert.False(t, seen[color], "color %q allocated twice", color)
		seen[color] = true
	}
}
