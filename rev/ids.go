package rev

import "github.com/google/uuid"

// NewNodeID issues a node id that is unique across all graphs of this process.
func NewNodeID() string {
	return "node-" + uuid.NewString()
}

// NewEdgeID issues an edge id that is unique across all graphs of this process.
func NewEdgeID() string {
	return "edge-" + uuid.NewString()
}
