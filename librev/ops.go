package librev

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/gorev/librev/factor"
	"github.com/2x3systems/gorev/rev"
)

// Apply performs op on the two slot graphs.
//
// Neither input is modified.  If the Machine has a History, the operation is recorded.
func (m *Machine) Apply(op rev.Op, X1, X2 *rev.Graph) (*rev.Graph, error) {
	if X1 == nil || X2 == nil {
		return nil, rev.ErrMissingOperand
	}

	var Xout *rev.Graph
	switch op {
	case rev.OpStar:
		Xout = m.Star(X1, X2)
	case rev.OpDagger:
		Xout = m.Dagger(X1, X2)
	case rev.OpGCD:
		Xout = m.GCD(X1, X2)
	case rev.OpLCM:
		Xout = m.LCM(X1, X2)
	default:
		return nil, errors.Wrapf(rev.ErrUnknownOp, "%q", string(op))
	}

	ObserveOp(op)
	klog.V(2).Infof("apply %v: %d + %d nodes => %d nodes, %d edges", op, X1.NumNodes(), X2.NumNodes(), Xout.NumNodes(), Xout.NumEdges())
	if m.history != nil {
		m.history.Record(X1, X2, op, Xout)
	}
	return Xout, nil
}

// Star (★) juxtaposes the two graphs, bridging first node to first node and (when both sides have at
// least two nodes) last node to last node.  Its number is the product of the inputs' numbers.
//
// A 0 on either side annihilates; a 1 on one side is the identity and yields a fresh copy of the other side.
func (m *Machine) Star(X1, X2 *rev.Graph) *rev.Graph {
	n1 := m.Encode(X1).Number
	n2 := m.Encode(X2).Number

	switch {
	case n1.Sign() == 0 || n2.Sign() == 0:
		return rev.NewGraph()
	case isOne(n1) && isOne(n2):
		return m.unitGraph()
	case isOne(n1):
		return m.restack(X2)
	case isOne(n2):
		return m.restack(X1)
	}

	A := X1.Reidentify()
	B := X2.Reidentify()

	row := 0
	for i := range A.Nodes {
		A.Nodes[i].X = 0
		A.Nodes[i].Y = float64(row) * m.layout.VerticalSpacing
		row++
	}
	for i := range B.Nodes {
		B.Nodes[i].X = m.layout.StarOffset
		B.Nodes[i].Y = float64(row) * m.layout.VerticalSpacing
		row++
	}

	Xout := &rev.Graph{
		Nodes: append(A.Nodes, B.Nodes...),
		Edges: append(A.Edges, B.Edges...),
	}

	nA, nB := len(A.Nodes), len(B.Nodes)
	if nA > 0 && nB > 0 {
		Xout.Edges = append(Xout.Edges, rev.Edge{
			ID:     rev.NewEdgeID(),
			Source: A.Nodes[0].ID,
			Target: B.Nodes[0].ID,
		})
	}
	if nA > 1 && nB > 1 {
		Xout.Edges = append(Xout.Edges, rev.Edge{
			ID:     rev.NewEdgeID(),
			Source: A.Nodes[nA-1].ID,
			Target: B.Nodes[nB-1].ID,
		})
	}
	return Xout
}

// restack returns a copy of X with fresh ids, its nodes stacked in a single column.
func (m *Machine) restack(X *rev.Graph) *rev.Graph {
	Xout := X.Reidentify()
	for i := range Xout.Nodes {
		Xout.Nodes[i].X = 0
		Xout.Nodes[i].Y = float64(i) * m.layout.VerticalSpacing
	}
	return Xout
}

// Dagger (†) returns the connected decoding of the sum of the inputs' numbers.
func (m *Machine) Dagger(X1, X2 *rev.Graph) *rev.Graph {
	sum := new(big.Int).Add(m.Encode(X1).Number, m.Encode(X2).Number)
	return m.Connect(m.Decode(sum))
}

// GCD (▼) returns the connected decoding of the gcd of the inputs' numbers, computed as the
// per-prime minimum of exponents.  gcd(0, n) is the (unconnected) decoding of n.
func (m *Machine) GCD(X1, X2 *rev.Graph) *rev.Graph {
	A := m.Encode(X1)
	B := m.Encode(X2)

	if A.Number.Sign() == 0 {
		return m.Decode(B.Number)
	}
	if B.Number.Sign() == 0 {
		return m.Decode(A.Number)
	}

	F := factor.MergeMin(factor.NewFactorMapFrom(A.Factorization), factor.NewFactorMapFrom(B.Factorization))
	return m.fromFactors(F)
}

// LCM (▲) returns the connected decoding of the lcm of the inputs' numbers, computed as the
// per-prime maximum of exponents.  lcm(0, n) is the empty graph.
func (m *Machine) LCM(X1, X2 *rev.Graph) *rev.Graph {
	A := m.Encode(X1)
	B := m.Encode(X2)

	if A.Number.Sign() == 0 || B.Number.Sign() == 0 {
		return rev.NewGraph()
	}

	F := factor.MergeMax(factor.NewFactorMapFrom(A.Factorization), factor.NewFactorMapFrom(B.Factorization))
	return m.fromFactors(F)
}

func (m *Machine) fromFactors(F rev.Factorization) *rev.Graph {
	if len(F) == 0 {
		return m.unitGraph()
	}
	return m.Connect(m.Decode(factor.Reconstruct(F)))
}
