package rev

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphEditing(t *testing.T) {
	X := NewGraph()
	assert.True(t, X.IsEmpty())

	a := X.AddNode("red", 0, 0)
	b := X.AddNode("blue", 0, 50)
	c := X.AddNode("green", 40, 100)
	require.Equal(t, 3, X.NumNodes())
	assert.NotEqual(t, a, b)

	ab, err := X.AddEdge(a, b)
	require.NoError(t, err)
	_, err = X.AddEdge(b, c)
	require.NoError(t, err)

	_, err = X.AddEdge(b, a)
	assert.ErrorIs(t, err, ErrDuplicateEdge)
	_, err = X.AddEdge(a, a)
	assert.ErrorIs(t, err, ErrSelfLoop)
	_, err = X.AddEdge(a, "node-nope")
	assert.ErrorIs(t, err, ErrNodeNotFound)

	require.NoError(t, X.MoveNode(c, 7, 8))
	node, found := X.Node(c)
	require.True(t, found)
	assert.Equal(t, 7.0, node.X)
	assert.Equal(t, 8.0, node.Y)

	require.NoError(t, X.RecolorNode(c, "cyan"))
	node, _ = X.Node(c)
	assert.Equal(t, "cyan", node.Color)
	assert.ErrorIs(t, X.RecolorNode("node-nope", "red"), ErrNodeNotFound)
	assert.ErrorIs(t, X.MoveNode("node-nope", 0, 0), ErrNodeNotFound)

	require.NoError(t, X.DeleteEdge(ab))
	assert.False(t, X.HasEdge(a, b))
	assert.ErrorIs(t, X.DeleteEdge(ab), ErrEdgeNotFound)

	require.NoError(t, X.DeleteNode(b))
	assert.Equal(t, 2, X.NumNodes())
	assert.Zero(t, X.NumEdges(), "incident edges go with the node")
	assert.ErrorIs(t, X.DeleteNode(b), ErrNodeNotFound)

	X.Clear()
	assert.True(t, X.IsEmpty())
	assert.Zero(t, X.NumEdges())
}

func TestReidentify(t *testing.T) {
	X := NewGraph()
	a := X.AddNode("red", 0, 0)
	b := X.AddNode("blue", 0, 50)
	_, err := X.AddEdge(a, b)
	require.NoError(t, err)
	X.Edges = append(X.Edges, Edge{ID: "edge-dangling", Source: a, Target: "node-gone"})

	Y := X.Reidentify()
	require.Equal(t, 2, Y.NumNodes())
	require.Equal(t, 1, Y.NumEdges(), "dangling edges are dropped")
	assert.NotEqual(t, X.Nodes[0].ID, Y.Nodes[0].ID)
	assert.NotEqual(t, X.Edges[0].ID, Y.Edges[0].ID)
	assert.Equal(t, X.Nodes[1].Color, Y.Nodes[1].Color)
	assert.Equal(t, X.Nodes[1].Y, Y.Nodes[1].Y)
	assert.True(t, Y.HasEdge(Y.Nodes[0].ID, Y.Nodes[1].ID))

	Z := X.Clone()
	assert.Equal(t, X, Z)
	Z.Nodes[0].Color = "green"
	assert.Equal(t, "red", X.Nodes[0].Color)
}

func TestGraphWire(t *testing.T) {
	X := NewGraph()
	a := X.AddNode("red", 0, 0)
	b := X.AddNode("orange2", 40, 50.5)
	_, err := X.AddEdge(a, b)
	require.NoError(t, err)

	buf, err := MarshalGraph(X)
	require.NoError(t, err)
	Y, err := UnmarshalGraph(buf)
	require.NoError(t, err)
	assert.Equal(t, X, Y)

	_, err = MarshalGraph(nil)
	assert.ErrorIs(t, err, ErrNilGraph)

	bad := &GraphDef{
		Nodes: []*NodeDef{{ID: "n1", Color: "red"}},
		Edges: []*EdgeDef{{ID: "e1", Source: "n1", Target: "n2"}},
	}
	_, err = bad.Import()
	assert.ErrorIs(t, err, ErrBadGraphDef)

	dupe := &GraphDef{
		Nodes: []*NodeDef{{ID: "n1", Color: "red"}, {ID: "n1", Color: "blue"}},
	}
	_, err = dupe.Import()
	assert.ErrorIs(t, err, ErrBadGraphDef)

	var nilDef *GraphDef
	Z, err := nilDef.Import()
	require.NoError(t, err)
	assert.True(t, Z.IsEmpty())

	_, err = UnmarshalGraph([]byte{0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, ErrBadGraphDef)
}

func TestFactorizationWire(t *testing.T) {
	huge, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	F := Factorization{
		{Prime: huge, Exponent: 1},
		{Prime: big.NewInt(11), Exponent: 2},
		{Prime: big.NewInt(2), Exponent: 1},
	}
	buf, err := MarshalFactorization(F)
	require.NoError(t, err)
	G, err := UnmarshalFactorization(buf)
	require.NoError(t, err)
	require.Len(t, G, 3)
	for i := range F {
		assert.Equal(t, 0, F[i].Prime.Cmp(G[i].Prime))
		assert.Equal(t, F[i].Exponent, G[i].Exponent)
	}
}

func TestFactorizationHelpers(t *testing.T) {
	unit := UnitFactorization()
	assert.True(t, unit.IsUnit())
	assert.Empty(t, unit.WithoutSentinel())
	assert.True(t, IsSentinelPrime(big.NewInt(1)))
	assert.False(t, IsSentinelPrime(big.NewInt(2)))
	assert.False(t, IsSentinelPrime(nil))

	F := Factorization{
		{Prime: big.NewInt(2), Exponent: 3},
		{Prime: big.NewInt(13), Exponent: 1},
		{Prime: big.NewInt(5), Exponent: 2},
	}
	G := F.Clone()
	G.SortDescending()
	assert.Equal(t, int64(13), G[0].Prime.Int64())
	assert.Equal(t, int64(5), G[1].Prime.Int64())
	assert.Equal(t, int64(2), G[2].Prime.Int64())
	assert.Equal(t, int64(2), F[0].Prime.Int64(), "Clone is independent")

	G[2].Prime.SetInt64(3)
	assert.Equal(t, int64(2), F[0].Prime.Int64(), "Clone copies primes")
}

func TestParseOp(t *testing.T) {
	tests := map[string]Op{
		"star":   OpStar,
		"STAR":   OpStar,
		"★":      OpStar,
		"*":      OpStar,
		"dagger": OpDagger,
		"+":      OpDagger,
		"†":      OpDagger,
		" gcd ":  OpGCD,
		"▼":      OpGCD,
		"lcm":    OpLCM,
		"▲":      OpLCM,
	}
	for str, want := range tests {
		op, err := ParseOp(str)
		require.NoError(t, err, str)
		assert.Equal(t, want, op, str)
		assert.True(t, op.IsValid())
	}

	_, err := ParseOp("modulo")
	assert.ErrorIs(t, err, ErrUnknownOp)
	assert.False(t, Op("modulo").IsValid())
	assert.Equal(t, "?", Op("modulo").Symbol())

	for _, op := range AllOps {
		back, err := ParseOp(op.Symbol())
		require.NoError(t, err)
		assert.Equal(t, op, back)
	}
}
