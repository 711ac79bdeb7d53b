package palette

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/plan-systems/klog"
)

// Swatch is a color label with its display value.
type Swatch struct {
	Name  string
	Value string // CSS color
}

// Entry binds a color label to its prime.
type Entry struct {
	Swatch
	Prime int64
}

// SentinelAlias is a permanent synonym for the color of the sentinel prime.
const SentinelAlias = "gray"

// BaseTable is the fixed seed of every Registry.
var BaseTable = []Entry{
	{Swatch{"white", "#e0e0e0"}, 1},
	{Swatch{SentinelAlias, "#e0e0e0"}, 1},
	{Swatch{"red", "#ff4444"}, 2},
	{Swatch{"blue", "#4444ff"}, 3},
	{Swatch{"green", "#44ff44"}, 5},
	{Swatch{"yellow", "#ffff44"}, 7},
	{Swatch{"cyan", "#44ffff"}, 11},
	{Swatch{"magenta", "#ff44ff"}, 13},
}

// ExtendedPalette is the allocation order for primes outside BaseTable.
var ExtendedPalette = []Swatch{
	{"orange", "#ff8844"},
	{"pink", "#ff88ff"},
	{"purple", "#8844ff"},
	{"brown", "#884444"},
	{"lime", "#88ff44"},
	{"teal", "#44ff88"},
	{"indigo", "#4444ff"},
	{"violet", "#ff44ff"},
	{"coral", "#ff8844"},
	{"salmon", "#ff8888"},
}

// RegistryOpts specifies params for a new Registry
type RegistryOpts struct {
	Extended   []Swatch           // omit for ExtendedPalette
	Preassign  []*big.Int         // primes allocated (in order) right after seeding
	OnAllocate func(color string) // optional; called with each newly allocated color
}

// Registry is a bidirectional color <-> prime mapping that grows as unmapped primes are encountered.
//
// Allocation is monotonic: the allocation counter never rewinds and no color is ever reassigned.
// Registry is safe for concurrent use; allocation is serialized by a mutex.
type Registry struct {
	mu        sync.RWMutex
	extended  []Swatch
	byColor   map[string]*big.Int
	byPrime   map[string]string // prime (decimal) => color
	values    map[string]string
	order     []string
	nextIndex int
	onAlloc   func(string)
}

// NewRegistry returns a Registry seeded with BaseTable.
func NewRegistry(opts RegistryOpts) *Registry {
	reg := &Registry{
		extended: opts.Extended,
		byColor:  make(map[string]*big.Int),
		byPrime:  make(map[string]string),
		values:   make(map[string]string),
		onAlloc:  opts.OnAllocate,
	}
	if len(reg.extended) == 0 {
		reg.extended = ExtendedPalette
	}

	for _, e := range BaseTable {
		reg.register(e.Name, e.Value, big.NewInt(e.Prime))
	}
	for _, p := range opts.Preassign {
		reg.ColorForPrime(p)
	}
	return reg
}

// register assumes reg.mu is held (or reg is not yet shared).
func (reg *Registry) register(color, value string, prime *big.Int) {
	color = strings.ToLower(color)
	key := prime.String()
	if _, exists := reg.byPrime[key]; !exists {
		reg.byPrime[key] = color
	}
	if _, exists := reg.byColor[color]; !exists {
		reg.order = append(reg.order, color)
	}
	reg.byColor[color] = new(big.Int).Set(prime)
	reg.values[color] = value
}

// PrimeForColor implements rev.ColorRegistry.
func (reg *Registry) PrimeForColor(color string) (*big.Int, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	prime, found := reg.byColor[strings.ToLower(color)]
	if !found {
		return nil, false
	}
	return new(big.Int).Set(prime), true
}

// ColorForPrime implements rev.ColorRegistry.
//
// An unregistered prime is assigned the next extended color.  Once the extended palette is exhausted,
// colors are reused with a cycle suffix ("orange2") so the mapping stays bijective.
func (reg *Registry) ColorForPrime(prime *big.Int) string {
	key := prime.String()

	reg.mu.RLock()
	color, found := reg.byPrime[key]
	reg.mu.RUnlock()
	if found {
		return color
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	// Another goroutine may have allocated it while we waited
	if color, found = reg.byPrime[key]; found {
		return color
	}

	var swatch Swatch
	for N := len(reg.extended); ; {
		swatch = reg.extended[reg.nextIndex%N]
		cycle := reg.nextIndex / N
		reg.nextIndex++

		color = strings.ToLower(swatch.Name)
		if cycle > 0 {
			color = fmt.Sprintf("%s%d", color, cycle+1)
		}
		if _, taken := reg.byColor[color]; !taken {
			break
		}
	}
	reg.register(color, swatch.Value, prime)

	klog.V(2).Infof("palette: allocated %q for prime %v", color, prime)
	if reg.onAlloc != nil {
		reg.onAlloc(color)
	}
	return color
}

// AvailableColors implements rev.ColorRegistry.
func (reg *Registry) AvailableColors() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	colors := make([]string, 0, len(reg.order))
	for _, color := range reg.order {
		if color != SentinelAlias {
			colors = append(colors, color)
		}
	}
	return colors
}

// ColorValue implements rev.ColorRegistry.
func (reg *Registry) ColorValue(color string) string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if value, found := reg.values[strings.ToLower(color)]; found {
		return value
	}
	return color
}

// NumAllocated returns how many extended colors have been allocated so far.
func (reg *Registry) NumAllocated() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.nextIndex
}
