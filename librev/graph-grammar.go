package librev

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/2x3systems/gorev/rev"
)

// GraphExpr is a comma separated list of node chains, e.g. "red:a-cyan-cyan-yellow-:a, white".
//
// Each chain is a run of nodes joined by "-" edges.  A node is either a color, optionally labeled
// ("red:a"), or a reference to a previously labeled node (":a").
type GraphExpr struct {
	Chains []*Chain `(@@ ("," @@)*)?`
}

type Chain struct {
	Head *NodeTerm   `@@`
	Tail []*NodeTerm `("-" @@)*`
}

type NodeTerm struct {
	Ref  string   `  ":" @Ident`
	Node *NewNode `| @@`
}

type NewNode struct {
	Color string `@Ident`
	Label string `(":" @Ident)?`
}

var parseGraphExpr = participle.MustBuild[GraphExpr]()

type exprBuilder struct {
	X      *rev.Graph
	labels map[string]string // label => node ID
	layout rev.LayoutOpts
	col    int
	row    int
}

func (Xb *exprBuilder) resolve(term *NodeTerm) (string, error) {
	if term.Node == nil {
		nodeID, found := Xb.labels[term.Ref]
		if !found {
			return "", errors.Wrapf(rev.ErrBadGraphExpr, "undefined label %q", term.Ref)
		}
		return nodeID, nil
	}

	if label := term.Node.Label; label != "" {
		if nodeID, found := Xb.labels[label]; found {
			node, _ := Xb.X.Node(nodeID)
			if !strings.EqualFold(node.Color, term.Node.Color) {
				return "", errors.Wrapf(rev.ErrBadGraphExpr, "label %q is already %s", label, node.Color)
			}
			return nodeID, nil
		}
	}

	x := float64(Xb.col) * Xb.layout.GroupOffset
	y := float64(Xb.row) * Xb.layout.VerticalSpacing
	Xb.row++

	nodeID := Xb.X.AddNode(strings.ToLower(term.Node.Color), x, y)
	if label := term.Node.Label; label != "" {
		Xb.labels[label] = nodeID
	}
	return nodeID, nil
}

func (Xb *exprBuilder) applyChain(chain *Chain) error {
	onID, err := Xb.resolve(chain.Head)
	if err != nil {
		return err
	}
	for _, term := range chain.Tail {
		nextID, err := Xb.resolve(term)
		if err != nil {
			return err
		}
		if _, err = Xb.X.AddEdge(onID, nextID); err != nil {
			return err
		}
		onID = nextID
	}
	return nil
}

// ParseGraphExpr builds a graph from a graph expression, laying out each chain in its own column.
// The empty expression is the empty graph.
func ParseGraphExpr(graphExpr string) (*rev.Graph, error) {
	Xexpr, err := parseGraphExpr.ParseString("", graphExpr)
	if err != nil {
		return nil, errors.Wrap(rev.ErrBadGraphExpr, err.Error())
	}

	Xb := exprBuilder{
		X:      rev.NewGraph(),
		labels: make(map[string]string),
		layout: rev.DefaultLayoutOpts,
	}
	for ci, chain := range Xexpr.Chains {
		Xb.col, Xb.row = ci, 0
		if err = Xb.applyChain(chain); err != nil {
			return nil, errors.Wrapf(err, "chain #%d", ci+1)
		}
	}
	return Xb.X, nil
}

// MustParseGraphExpr is ParseGraphExpr for expressions known to be valid.
func MustParseGraphExpr(graphExpr string) *rev.Graph {
	X, err := ParseGraphExpr(graphExpr)
	if err != nil {
		panic(err)
	}
	return X
}

func isIdent(str string) bool {
	if str == "" {
		return false
	}
	for i, r := range str {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

// FormatGraphExpr renders X as a graph expression that ParseGraphExpr reads back into an equivalent graph
// (same node colors, same adjacency).  Node positions and ids are not carried.
func FormatGraphExpr(X *rev.Graph) (string, error) {
	if X.IsEmpty() {
		return "", nil
	}

	// Greedily join edges into chains
	var chains [][]string
	for _, e := range X.Edges {
		if N := len(chains); N > 0 {
			if cur := chains[N-1]; cur[len(cur)-1] == e.Source {
				chains[N-1] = append(cur, e.Target)
				continue
			}
		}
		chains = append(chains, []string{e.Source, e.Target})
	}

	appearances := make(map[string]int, len(X.Nodes))
	for _, chain := range chains {
		for _, nodeID := range chain {
			appearances[nodeID]++
		}
	}
	for _, node := range X.Nodes {
		if appearances[node.ID] == 0 {
			chains = append(chains, []string{node.ID})
			appearances[node.ID] = 1
		}
	}

	labels := make(map[string]string)
	var b strings.Builder
	for ci, chain := range chains {
		if ci > 0 {
			b.WriteString(", ")
		}
		for i, nodeID := range chain {
			if i > 0 {
				b.WriteByte('-')
			}
			if label, found := labels[nodeID]; found {
				b.WriteByte(':')
				b.WriteString(label)
				continue
			}
			node, found := X.Node(nodeID)
			if !found {
				return "", errors.Wrapf(rev.ErrNodeNotFound, "edge references %q", nodeID)
			}
			if !isIdent(node.Color) {
				return "", errors.Wrapf(rev.ErrBadGraphExpr, "color %q is not expressible", node.Color)
			}
			b.WriteString(node.Color)
			if appearances[nodeID] > 1 {
				label := "n" + strconv.Itoa(len(labels)+1)
				labels[nodeID] = label
				b.WriteByte(':')
				b.WriteString(label)
			}
		}
	}
	return b.String(), nil
}
