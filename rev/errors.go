package rev

import "errors"

// Errors
var (
	ErrMissingOperand = errors.New("operation requires two graphs")
	ErrUnknownOp      = errors.New("unknown operation")
	ErrBadGraphExpr   = errors.New("bad graph expression")
	ErrBadGraphDef    = errors.New("bad graph encoding")
	ErrNodeNotFound   = errors.New("node not found")
	ErrEdgeNotFound   = errors.New("edge not found")
	ErrDuplicateEdge  = errors.New("edge already exists")
	ErrSelfLoop       = errors.New("edge connects a node to itself")
	ErrNegativeNumber = errors.New("negative numbers have no graph")
	ErrNilGraph       = errors.New("nil graph")
)
