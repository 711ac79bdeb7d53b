package librev

import (
	"math/big"

	"github.com/plan-systems/klog"

	"github.com/2x3systems/gorev/rev"
)

// Decode returns the canonical (edge-free) graph of n: one node per prime factor occurrence,
// colored via the registry, in discovery order of the factorization.
//
// Nodes of a color group share a column; every node gets its own row.
// Decode(0) is the empty graph and Decode(1) is a single white node.
func (m *Machine) Decode(n *big.Int) *rev.Graph {
	if n == nil || n.Sign() == 0 {
		return rev.NewGraph()
	}
	if n.Sign() < 0 {
		klog.Warningf("decode: %v: %v", n, rev.ErrNegativeNumber)
		return rev.NewGraph()
	}
	if isOne(n) {
		return m.unitGraph()
	}

	F := m.factors.Factorize(n).WithoutSentinel()
	if len(F) == 0 {
		return m.unitGraph()
	}

	X := rev.NewGraph()
	x, y := 0.0, 0.0
	for _, Fi := range F {
		color := m.colors.ColorForPrime(Fi.Prime)
		for i := uint32(0); i < Fi.Exponent; i++ {
			X.AddNode(color, x, y)
			y += m.layout.VerticalSpacing
		}
		x += m.layout.GroupOffset
	}
	return X
}

// Connect lays out the nodes of X in a single column, each on its own row, and joins consecutive nodes
// into a simple path.  Graphs with fewer than two nodes are returned as is.
//
// X itself is not modified; the returned graph carries X's node ids and fresh edge ids.
func (m *Machine) Connect(X *rev.Graph) *rev.Graph {
	N := X.NumNodes()
	if N <= 1 {
		return X
	}

	Xout := &rev.Graph{
		Nodes: make([]rev.Node, N),
		Edges: make([]rev.Edge, 0, N-1),
	}
	for i, node := range X.Nodes {
		node.X = 0
		node.Y = float64(i) * m.layout.VerticalSpacing
		Xout.Nodes[i] = node
	}
	for i := 1; i < N; i++ {
		Xout.Edges = append(Xout.Edges, rev.Edge{
			ID:     rev.NewEdgeID(),
			Source: Xout.Nodes[i-1].ID,
			Target: Xout.Nodes[i].ID,
		})
	}
	return Xout
}
