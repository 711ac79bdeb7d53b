package librev

import (
	"fmt"
	"io"
	"strings"

	"github.com/plan-systems/klog"

	"github.com/2x3systems/gorev/rev"
)

// GraphStream is a channel pipeline stage; each stage runs in its own goroutine and closes its Outlet
// once its inlet is drained.
type GraphStream struct {
	Outlet chan *rev.Graph
}

func NewGraphStream() *GraphStream {
	stream := &GraphStream{
		Outlet: make(chan *rev.Graph, 1),
	}
	return stream
}

// StreamGraphs returns a stream that emits the given graphs in order and then closes.
func StreamGraphs(Xs ...*rev.Graph) *GraphStream {
	next := NewGraphStream()

	go func() {
		for _, X := range Xs {
			next.Outlet <- X
		}
		next.Close()
	}()

	return next
}

func (stream *GraphStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// PullAll drains the stream and returns how many graphs it emitted.
func (stream *GraphStream) PullAll() int {
	count := 0
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains the stream into a slice.
func (stream *GraphStream) Collect() []*rev.Graph {
	var Xs []*rev.Graph
	for X := range stream.Outlet {
		Xs = append(Xs, X)
	}
	return Xs
}

// Apply emits m.Apply(op, X, with) for each graph X in the stream.
func (stream *GraphStream) Apply(m *Machine, op rev.Op, with *rev.Graph) *GraphStream {
	next := NewGraphStream()

	go func() {
		for X := range stream.Outlet {
			Xout, err := m.Apply(op, X, with)
			if err != nil {
				klog.Warningf("stream %v: %v", op, err)
				continue
			}
			next.Outlet <- Xout
		}
		next.Close()
	}()

	return next
}

// DropDupes passes on only the first graph of each encoded number.
// If the set can't be opened (or fails), graphs pass through unfiltered.
func (stream *GraphStream) DropDupes(m *Machine) *GraphStream {
	next := NewGraphStream()

	go func() {
		seen, err := NewNumberSet()
		if err != nil {
			klog.Warningf("DropDupes: %v", err)
		}
		for X := range stream.Outlet {
			added := true
			if seen != nil {
				if added, err = seen.TryAdd(m.Encode(X).Number); err != nil {
					klog.Warningf("DropDupes: %v", err)
					added = true
				}
			}
			if added {
				next.Outlet <- X
			}
		}
		if seen != nil {
			seen.Close()
		}
		next.Close()
	}()

	return next
}

// Print writes one line per graph to out (closing out when the stream ends) and passes each graph on.
func (stream *GraphStream) Print(
	m *Machine,
	out io.WriteCloser,
	opts rev.PrintOpts) *GraphStream {

	next := NewGraphStream()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for X := range stream.Outlet {
			count++
			m.WriteGraphLine(&buf, X, count, opts)
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- X
		}
		out.Close()
		next.Close()
	}()

	return next
}

// WriteGraphLine appends a comma separated line for X: label, index, and (per opts) its expression,
// number, and factorization.
func (m *Machine) WriteGraphLine(buf *strings.Builder, X *rev.Graph, index int, opts rev.PrintOpts) {
	buf.WriteString(opts.Label)
	buf.WriteByte(',')
	fmt.Fprintf(buf, "%06d", index)

	if opts.Expr {
		buf.WriteByte(',')
		expr, err := FormatGraphExpr(X)
		if err != nil {
			expr = fmt.Sprintf("<%d nodes, %d edges>", X.NumNodes(), X.NumEdges())
		}
		fmt.Fprintf(buf, "%q", expr)
	}
	if opts.Number {
		num := m.Encode(X)
		buf.WriteByte(',')
		buf.WriteString(num.Number.String())
		buf.WriteByte(',')
		buf.WriteString(num.Display)
	}
	buf.WriteByte('\n')
}
