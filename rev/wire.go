package rev

import (
	"math/big"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// NodeDef is the wire form of a Node.
type NodeDef struct {
	ID    string  `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID,omitempty"`
	Color string  `protobuf:"bytes,2,opt,name=Color,proto3" json:"Color,omitempty"`
	X     float64 `protobuf:"fixed64,3,opt,name=X,proto3" json:"X,omitempty"`
	Y     float64 `protobuf:"fixed64,4,opt,name=Y,proto3" json:"Y,omitempty"`
}

func (m *NodeDef) Reset()         { *m = NodeDef{} }
func (m *NodeDef) String() string { return proto.CompactTextString(m) }
func (*NodeDef) ProtoMessage()    {}

// EdgeDef is the wire form of an Edge.
type EdgeDef struct {
	ID     string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID,omitempty"`
	Source string `protobuf:"bytes,2,opt,name=Source,proto3" json:"Source,omitempty"`
	Target string `protobuf:"bytes,3,opt,name=Target,proto3" json:"Target,omitempty"`
}

func (m *EdgeDef) Reset()         { *m = EdgeDef{} }
func (m *EdgeDef) String() string { return proto.CompactTextString(m) }
func (*EdgeDef) ProtoMessage()    {}

// GraphDef is the wire form of a Graph.
type GraphDef struct {
	Nodes []*NodeDef `protobuf:"bytes,1,rep,name=Nodes,proto3" json:"Nodes,omitempty"`
	Edges []*EdgeDef `protobuf:"bytes,2,rep,name=Edges,proto3" json:"Edges,omitempty"`
}

func (m *GraphDef) Reset()         { *m = GraphDef{} }
func (m *GraphDef) String() string { return proto.CompactTextString(m) }
func (*GraphDef) ProtoMessage()    {}

// FactorDef is the wire form of a PrimeFactor; Prime holds big-endian magnitude bytes.
type FactorDef struct {
	Prime    []byte `protobuf:"bytes,1,opt,name=Prime,proto3" json:"Prime,omitempty"`
	Exponent uint32 `protobuf:"varint,2,opt,name=Exponent,proto3" json:"Exponent,omitempty"`
}

func (m *FactorDef) Reset()         { *m = FactorDef{} }
func (m *FactorDef) String() string { return proto.CompactTextString(m) }
func (*FactorDef) ProtoMessage()    {}

// FactorSetDef is the wire form of a Factorization.
type FactorSetDef struct {
	Factors []*FactorDef `protobuf:"bytes,1,rep,name=Factors,proto3" json:"Factors,omitempty"`
}

func (m *FactorSetDef) Reset()         { *m = FactorSetDef{} }
func (m *FactorSetDef) String() string { return proto.CompactTextString(m) }
func (*FactorSetDef) ProtoMessage()    {}

// OpRecordDef is the wire form of one applied operation.
type OpRecordDef struct {
	Op        string    `protobuf:"bytes,1,opt,name=Op,proto3" json:"Op,omitempty"`
	UnixNanos int64     `protobuf:"varint,2,opt,name=UnixNanos,proto3" json:"UnixNanos,omitempty"`
	Slot1     *GraphDef `protobuf:"bytes,3,opt,name=Slot1,proto3" json:"Slot1,omitempty"`
	Slot2     *GraphDef `protobuf:"bytes,4,opt,name=Slot2,proto3" json:"Slot2,omitempty"`
	Result    *GraphDef `protobuf:"bytes,5,opt,name=Result,proto3" json:"Result,omitempty"`
}

func (m *OpRecordDef) Reset()         { *m = OpRecordDef{} }
func (m *OpRecordDef) String() string { return proto.CompactTextString(m) }
func (*OpRecordDef) ProtoMessage()    {}

// ExportDef returns the wire form of X.
func (X *Graph) ExportDef() *GraphDef {
	def := &GraphDef{
		Nodes: make([]*NodeDef, len(X.Nodes)),
		Edges: make([]*EdgeDef, len(X.Edges)),
	}
	for i, n := range X.Nodes {
		def.Nodes[i] = &NodeDef{ID: n.ID, Color: n.Color, X: n.X, Y: n.Y}
	}
	for i, e := range X.Edges {
		def.Edges[i] = &EdgeDef{ID: e.ID, Source: e.Source, Target: e.Target}
	}
	return def
}

// MarshalGraph serializes X into a GraphDef encoding.
func MarshalGraph(X *Graph) ([]byte, error) {
	if X == nil {
		return nil, ErrNilGraph
	}
	return proto.Marshal(X.ExportDef())
}

// UnmarshalGraph reads a GraphDef encoding written by MarshalGraph.
// Node ids must be unique and edges referencing missing nodes are rejected.
func UnmarshalGraph(buf []byte) (*Graph, error) {
	var def GraphDef
	if err := proto.Unmarshal(buf, &def); err != nil {
		return nil, errors.Wrap(ErrBadGraphDef, err.Error())
	}
	return def.Import()
}

// Import validates def and returns the Graph it describes.  A nil def is the empty graph.
func (def *GraphDef) Import() (*Graph, error) {
	if def == nil {
		return NewGraph(), nil
	}
	X := &Graph{
		Nodes: make([]Node, 0, len(def.Nodes)),
		Edges: make([]Edge, 0, len(def.Edges)),
	}
	seen := make(map[string]struct{}, len(def.Nodes))
	for _, n := range def.Nodes {
		if _, dupe := seen[n.ID]; dupe || n.ID == "" {
			return nil, errors.Wrapf(ErrBadGraphDef, "bad node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
		X.Nodes = append(X.Nodes, Node{ID: n.ID, Color: n.Color, X: n.X, Y: n.Y})
	}
	for _, e := range def.Edges {
		_, srcOK := seen[e.Source]
		_, dstOK := seen[e.Target]
		if !srcOK || !dstOK {
			return nil, errors.Wrapf(ErrBadGraphDef, "edge %q references a missing node", e.ID)
		}
		X.Edges = append(X.Edges, Edge{ID: e.ID, Source: e.Source, Target: e.Target})
	}
	return X, nil
}

// MarshalFactorization serializes F into a FactorSetDef encoding.
func MarshalFactorization(F Factorization) ([]byte, error) {
	def := &FactorSetDef{
		Factors: make([]*FactorDef, len(F)),
	}
	for i, Fi := range F {
		def.Factors[i] = &FactorDef{
			Prime:    Fi.Prime.Bytes(),
			Exponent: Fi.Exponent,
		}
	}
	return proto.Marshal(def)
}

// UnmarshalFactorization reads an encoding written by MarshalFactorization.
func UnmarshalFactorization(buf []byte) (Factorization, error) {
	var def FactorSetDef
	if err := proto.Unmarshal(buf, &def); err != nil {
		return nil, errors.Wrap(ErrBadGraphDef, err.Error())
	}
	F := make(Factorization, len(def.Factors))
	for i, Fi := range def.Factors {
		F[i] = PrimeFactor{
			Prime:    new(big.Int).SetBytes(Fi.Prime),
			Exponent: Fi.Exponent,
		}
	}
	return F, nil
}
