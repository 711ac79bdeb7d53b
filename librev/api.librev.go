package librev

import (
	"math/big"

	"github.com/2x3systems/gorev/librev/factor"
	"github.com/2x3systems/gorev/librev/palette"
	"github.com/2x3systems/gorev/rev"
)

// MachineOpts specifies params for a new Machine.  Zero values denote defaults.
type MachineOpts struct {
	Colors  rev.ColorRegistry // omit for a new palette.Registry
	Factors rev.Factorizer    // omit for plain trial division
	Layout  rev.LayoutOpts    // omit for rev.DefaultLayoutOpts
	History *History          // if set, every Apply() is recorded here
}

// Machine encodes graphs as numbers, decodes numbers as graphs, and combines graphs with the four operations.
//
// A Machine holds no mutable state of its own beyond its ColorRegistry, so it is safe for concurrent use
// when its registry and factorizer are.
type Machine struct {
	colors  rev.ColorRegistry
	factors rev.Factorizer
	layout  rev.LayoutOpts
	history *History
}

type trialDivision struct{}

func (trialDivision) Factorize(n *big.Int) rev.Factorization {
	return factor.Factorize(n)
}

// NewMachine returns a Machine configured by opts.
func NewMachine(opts MachineOpts) *Machine {
	m := &Machine{
		colors:  opts.Colors,
		factors: opts.Factors,
		layout:  opts.Layout,
		history: opts.History,
	}
	if m.colors == nil {
		m.colors = palette.NewRegistry(palette.RegistryOpts{
			OnAllocate: ObserveColorAllocation,
		})
	}
	if m.factors == nil {
		m.factors = trialDivision{}
	}
	if m.layout == (rev.LayoutOpts{}) {
		m.layout = rev.DefaultLayoutOpts
	}
	return m
}

// Colors returns the registry this Machine translates colors with.
func (m *Machine) Colors() rev.ColorRegistry {
	return m.colors
}

// History returns the history this Machine records into (possibly nil).
func (m *Machine) History() *History {
	return m.history
}

// unitGraph returns a graph holding a single sentinel-colored node.
func (m *Machine) unitGraph() *rev.Graph {
	return rev.SingleNodeGraph(m.colors.ColorForPrime(big.NewInt(1)), 0, 0)
}

func isOne(n *big.Int) bool {
	return n.IsInt64() && n.Int64() == 1
}
