package librev_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/gorev/librev"
	"github.com/2x3systems/gorev/rev"
)

func TestParseGraphExpr(t *testing.T) {
	X, err := librev.ParseGraphExpr("red:a-cyan-cyan-yellow-:a")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "cyan", "cyan", "yellow"}, colorsOf(X))
	assert.Equal(t, 4, X.NumEdges())
	assert.True(t, X.HasEdge(X.Nodes[3].ID, X.Nodes[0].ID), "label closes the cycle")

	X, err = librev.ParseGraphExpr("Red-Blue, white, green")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "blue", "white", "green"}, colorsOf(X))
	assert.Equal(t, 1, X.NumEdges())
	assert.Equal(t, 70.0, X.Nodes[2].X, "each chain gets its own column")
	assert.Equal(t, 50.0, X.Nodes[1].Y)

	X, err = librev.ParseGraphExpr("")
	require.NoError(t, err)
	assert.True(t, X.IsEmpty())

	X, err = librev.ParseGraphExpr("red:hub-blue, :hub-green, red:hub-yellow")
	require.NoError(t, err)
	assert.Equal(t, 4, X.NumNodes())
	assert.Equal(t, 3, X.NumEdges())
}

func TestParseGraphExprErrors(t *testing.T) {
	bad := []string{
		"red-",
		"red,,blue",
		"red blue",
		"1-2",
	}
	for _, expr := range bad {
		_, err := librev.ParseGraphExpr(expr)
		assert.ErrorIs(t, err, rev.ErrBadGraphExpr, "%q", expr)
	}

	_, err := librev.ParseGraphExpr("red-:nowhere")
	assert.ErrorIs(t, err, rev.ErrBadGraphExpr)

	_, err = librev.ParseGraphExpr("red:a, blue:a")
	assert.ErrorIs(t, err, rev.ErrBadGraphExpr)

	_, err = librev.ParseGraphExpr("red:a-:a")
	assert.ErrorIs(t, err, rev.ErrSelfLoop)

	_, err = librev.ParseGraphExpr("red:a-blue:b, :a-:b")
	assert.ErrorIs(t, err, rev.ErrDuplicateEdge)
}

func TestFormatGraphExpr(t *testing.T) {
	m := newMachine()

	exprs := []string{
		"red",
		"red-blue",
		"red, red, red",
		"red:a-cyan-cyan-yellow-:a",
		"red:hub-blue, :hub-green, :hub-yellow, white",
	}
	for _, expr := range exprs {
		X := librev.MustParseGraphExpr(expr)
		str, err := librev.FormatGraphExpr(X)
		require.NoError(t, err, expr)

		Y, err := librev.ParseGraphExpr(str)
		require.NoError(t, err, "%q => %q", expr, str)
		assert.Equal(t, colorsOf(X), colorsOf(Y), "%q => %q", expr, str)
		assert.Equal(t, X.NumEdges(), Y.NumEdges(), "%q => %q", expr, str)
		assert.Equal(t, 0, m.Encode(X).Number.Cmp(m.Encode(Y).Number))
	}

	str, err := librev.FormatGraphExpr(m.Connect(m.Decode(bigInt(12))))
	require.NoError(t, err)
	assert.Equal(t, "red-red-blue", str)

	str, err = librev.FormatGraphExpr(rev.NewGraph())
	require.NoError(t, err)
	assert.Equal(t, "", str)

	_, err = librev.FormatGraphExpr(graphOf("#ff0000"))
	assert.ErrorIs(t, err, rev.ErrBadGraphExpr)
}
