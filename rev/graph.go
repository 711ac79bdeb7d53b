package rev

import (
	"github.com/pkg/errors"
)

// Node is a colored vertex. Its position is presentational only.
type Node struct {
	ID    string
	Color string
	X     float64
	Y     float64
}

// Edge relates two nodes of the same graph. Direction carries no meaning.
type Edge struct {
	ID     string
	Source string
	Target string
}

// Connects reports if this edge joins a and b (in either direction).
func (e Edge) Connects(a, b string) bool {
	return (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a)
}

// Graph is an ordered sequence of Nodes plus an ordered sequence of Edges.
//
// Edges are intensional: they affect presentation and the star operation's bridging only,
// never the number a graph encodes to.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// SingleNodeGraph returns a graph holding one freshly identified node of the given color at (x,y).
func SingleNodeGraph(color string, x, y float64) *Graph {
	X := NewGraph()
	X.AddNode(color, x, y)
	return X
}

func (X *Graph) NumNodes() int {
	return len(X.Nodes)
}

func (X *Graph) NumEdges() int {
	return len(X.Edges)
}

// IsEmpty reports if X has no nodes (the graph of 0).
func (X *Graph) IsEmpty() bool {
	return X == nil || len(X.Nodes) == 0
}

// Clone returns a deep copy of X, keeping node and edge ids.
func (X *Graph) Clone() *Graph {
	if X == nil {
		return NewGraph()
	}
	return &Graph{
		Nodes: append([]Node(nil), X.Nodes...),
		Edges: append([]Edge(nil), X.Edges...),
	}
}

func (X *Graph) nodeIndex(nodeID string) int {
	for i := range X.Nodes {
		if X.Nodes[i].ID == nodeID {
			return i
		}
	}
	return -1
}

// Node returns the node with the given id.
func (X *Graph) Node(nodeID string) (Node, bool) {
	if i := X.nodeIndex(nodeID); i >= 0 {
		return X.Nodes[i], true
	}
	return Node{}, false
}

// HasNode reports if a node with the given id is present.
func (X *Graph) HasNode(nodeID string) bool {
	return X.nodeIndex(nodeID) >= 0
}

// AddNode appends a new node and returns its id.
func (X *Graph) AddNode(color string, x, y float64) string {
	node := Node{
		ID:    NewNodeID(),
		Color: color,
		X:     x,
		Y:     y,
	}
	X.Nodes = append(X.Nodes, node)
	return node.ID
}

// MoveNode sets the position of the given node.
func (X *Graph) MoveNode(nodeID string, x, y float64) error {
	i := X.nodeIndex(nodeID)
	if i < 0 {
		return errors.Wrap(ErrNodeNotFound, nodeID)
	}
	X.Nodes[i].X = x
	X.Nodes[i].Y = y
	return nil
}

// RecolorNode sets the color of the given node.
func (X *Graph) RecolorNode(nodeID, color string) error {
	i := X.nodeIndex(nodeID)
	if i < 0 {
		return errors.Wrap(ErrNodeNotFound, nodeID)
	}
	X.Nodes[i].Color = color
	return nil
}

// DeleteNode removes the given node and every edge incident to it.
func (X *Graph) DeleteNode(nodeID string) error {
	i := X.nodeIndex(nodeID)
	if i < 0 {
		return errors.Wrap(ErrNodeNotFound, nodeID)
	}
	X.Nodes = append(X.Nodes[:i], X.Nodes[i+1:]...)

	edges := X.Edges[:0]
	for _, e := range X.Edges {
		if e.Source != nodeID && e.Target != nodeID {
			edges = append(edges, e)
		}
	}
	X.Edges = edges
	return nil
}

// HasEdge reports if an edge joins a and b in either direction.
func (X *Graph) HasEdge(a, b string) bool {
	for _, e := range X.Edges {
		if e.Connects(a, b) {
			return true
		}
	}
	return false
}

// AddEdge joins two existing nodes and returns the new edge id.
// Self loops and edges already present (in either direction) are rejected.
func (X *Graph) AddEdge(a, b string) (string, error) {
	if a == b {
		return "", errors.Wrap(ErrSelfLoop, a)
	}
	if !X.HasNode(a) {
		return "", errors.Wrap(ErrNodeNotFound, a)
	}
	if !X.HasNode(b) {
		return "", errors.Wrap(ErrNodeNotFound, b)
	}
	if X.HasEdge(a, b) {
		return "", errors.Wrapf(ErrDuplicateEdge, "%s-%s", a, b)
	}
	edge := Edge{
		ID:     NewEdgeID(),
		Source: a,
		Target: b,
	}
	X.Edges = append(X.Edges, edge)
	return edge.ID, nil
}

// DeleteEdge removes the edge with the given id.
func (X *Graph) DeleteEdge(edgeID string) error {
	for i, e := range X.Edges {
		if e.ID == edgeID {
			X.Edges = append(X.Edges[:i], X.Edges[i+1:]...)
			return nil
		}
	}
	return errors.Wrap(ErrEdgeNotFound, edgeID)
}

// Clear removes all nodes and edges.
func (X *Graph) Clear() {
	X.Nodes = X.Nodes[:0]
	X.Edges = X.Edges[:0]
}

// Reidentify returns a copy of X where every node and edge has a fresh id.
// Edges referencing a node not in X are dropped.
func (X *Graph) Reidentify() *Graph {
	idMap := make(map[string]string, len(X.Nodes))
	Xout := &Graph{
		Nodes: make([]Node, len(X.Nodes)),
		Edges: make([]Edge, 0, len(X.Edges)),
	}
	for i, node := range X.Nodes {
		node.ID = NewNodeID()
		idMap[X.Nodes[i].ID] = node.ID
		Xout.Nodes[i] = node
	}
	for _, e := range X.Edges {
		src, srcOK := idMap[e.Source]
		dst, dstOK := idMap[e.Target]
		if !srcOK || !dstOK {
			continue
		}
		Xout.Edges = append(Xout.Edges, Edge{
			ID:     NewEdgeID(),
			Source: src,
			Target: dst,
		})
	}
	return Xout
}
