package pyrev

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-python/gpython/py"

	"github.com/2x3systems/gorev/librev"
	"github.com/2x3systems/gorev/librev/factor"
	"github.com/2x3systems/gorev/rev"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyGraphType       = py.NewType("Graph", "a colored graph and its number")
	pyGraphStreamType = py.NewType("GraphStream", "librev.GraphStream")
	pySessionType     = py.NewType("Session", "the machine, factor cache, and history of a script")
)

const kSessionAttr = "_Session"

// SessionOpts specifies how each script's Session is set up.
type SessionOpts struct {
	Factor       factor.EngineOpts
	Layout       rev.LayoutOpts
	HistoryLimit int // 0 means unbounded
}

var (
	gSessionOpts   SessionOpts
	gSessionOptsMu sync.Mutex
)

// Configure sets the options used for sessions created from now on.
func Configure(opts SessionOpts) {
	gSessionOptsMu.Lock()
	gSessionOpts = opts
	gSessionOptsMu.Unlock()
}

// Session is created on first use by a script and closed with the script's context.
type Session struct {
	Machine *librev.Machine
	History *librev.History
	engine  *factor.Engine
}

func (sess *Session) Type() *py.Type {
	return pySessionType
}

func (sess *Session) Close() {
	if sess.engine != nil {
		sess.engine.Close()
		sess.engine = nil
	}
}

func newSession() (*Session, error) {
	gSessionOptsMu.Lock()
	opts := gSessionOpts
	gSessionOptsMu.Unlock()

	if opts.Factor.OnLookup == nil {
		opts.Factor.OnLookup = librev.ObserveCacheLookup
	}
	eng, err := factor.NewEngine(opts.Factor)
	if err != nil {
		return nil, err
	}
	hist := librev.NewHistory(opts.HistoryLimit)
	return &Session{
		Machine: librev.NewMachine(librev.MachineOpts{
			Factors: eng,
			Layout:  opts.Layout,
			History: hist,
		}),
		History: hist,
		engine:  eng,
	}, nil
}

func getSession(module py.Object) (*Session, error) {
	sessObj, _ := py.GetAttrString(module, kSessionAttr)
	if sessObj == nil {
		sess, err := newSession()
		if err != nil {
			return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
		}
		sessObj = sess
		py.SetAttrString(module, kSessionAttr, sessObj)
	}
	return sessObj.(*Session), nil
}

/////////////////////////////////////////////////////////////////////////
// numbers

func toBigInt(obj py.Object) (*big.Int, error) {
	switch n := obj.(type) {
	case py.Int:
		return big.NewInt(int64(n)), nil
	case *py.BigInt:
		return new(big.Int).Set((*big.Int)(n)), nil
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected int (got %v)", obj.Type().Name)
}

func fromBigInt(n *big.Int) py.Object {
	if n.IsInt64() {
		return py.Int(n.Int64())
	}
	return (*py.BigInt)(new(big.Int).Set(n))
}

func argAt(args py.Tuple, i int, fn string) (py.Object, error) {
	if i >= len(args) {
		return nil, py.ExceptionNewf(py.TypeError, "%s() takes at least %d argument(s) (%d given)", fn, i+1, len(args))
	}
	return args[i], nil
}

/////////////////////////////////////////////////////////////////////////
// Graph

type pyGraph struct {
	*rev.Graph
	m *librev.Machine
}

func (X pyGraph) Type() *py.Type {
	return pyGraphType
}

func (X pyGraph) M__str__() (py.Object, error) {
	buf := strings.Builder{}
	X.m.WriteGraphLine(&buf, X.Graph, 1, rev.PrintOpts{Label: "Graph", Expr: true, Number: true})
	return py.String(strings.TrimSpace(buf.String())), nil
}

func (X pyGraph) M__repr__() (py.Object, error) {
	return X.M__str__()
}

// getGraph accepts a Graph object or a graph expression string.
func getGraph(obj py.Object) (*rev.Graph, error) {
	switch arg := obj.(type) {
	case pyGraph:
		return arg.Graph, nil
	case py.String:
		X, err := librev.ParseGraphExpr(string(arg))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return X, nil
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected Graph or str (got %v)", obj.Type().Name)
}

func wrapGraph(X *rev.Graph, m *librev.Machine) py.Object {
	return py.Object(pyGraph{X, m})
}

func py_Graph_NumNodes(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Int(X.NumNodes()), nil
}

func py_Graph_NumEdges(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Int(X.NumEdges()), nil
}

func py_Graph_Number(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return fromBigInt(X.m.Encode(X.Graph).Number), nil
}

func py_Graph_Display(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.String(X.m.Encode(X.Graph).Display), nil
}

func py_Graph_Colors(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	colors := make(py.Tuple, len(X.Nodes))
	for i, node := range X.Nodes {
		colors[i] = py.String(node.Color)
	}
	return colors, nil
}

func py_Graph_Expr(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	expr, err := librev.FormatGraphExpr(X.Graph)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.String(expr), nil
}

func py_Graph_Connect(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return wrapGraph(X.m.Connect(X.Graph), X.m), nil
}

func py_Graph_WriteSVG(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)

	var pathname string
	if err := py.LoadTuple(args, []interface{}{&pathname}); err != nil {
		return nil, err
	}

	file, err := createFile(pathname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err = librev.WriteSVG(file, X.Graph, X.m.Colors()); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.None, nil
}

func py_Graph_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return wrapGraphStream(librev.StreamGraphs(X.Graph), X.m), nil
}

/////////////////////////////////////////////////////////////////////////
// module functions

func py_Parse(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	var expr string
	if err = py.LoadTuple(args, []interface{}{&expr}); err != nil {
		return nil, err
	}
	X, err := librev.ParseGraphExpr(expr)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return wrapGraph(X, sess.Machine), nil
}

func py_Decode(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	arg, err := argAt(args, 0, "Decode")
	if err != nil {
		return nil, err
	}
	n, err := toBigInt(arg)
	if err != nil {
		return nil, err
	}
	if n.Sign() < 0 {
		return nil, py.ExceptionNewf(py.ValueError, "%v: %v", rev.ErrNegativeNumber, n)
	}
	return wrapGraph(sess.Machine.Decode(n), sess.Machine), nil
}

func py_Encode(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	arg, err := argAt(args, 0, "Encode")
	if err != nil {
		return nil, err
	}
	X, err := getGraph(arg)
	if err != nil {
		return nil, err
	}
	return fromBigInt(sess.Machine.Encode(X).Number), nil
}

// Factorize returns a tuple of (prime, exponent) pairs in ascending prime order.
func py_Factorize(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	arg, err := argAt(args, 0, "Factorize")
	if err != nil {
		return nil, err
	}
	n, err := toBigInt(arg)
	if err != nil {
		return nil, err
	}
	F := sess.engine.Factorize(n)
	factors := make(py.Tuple, len(F))
	for i, Fi := range F {
		factors[i] = py.Tuple{fromBigInt(Fi.Prime), py.Int(Fi.Exponent)}
	}
	return factors, nil
}

func py_IsPrime(module py.Object, args py.Tuple) (py.Object, error) {
	arg, err := argAt(args, 0, "IsPrime")
	if err != nil {
		return nil, err
	}
	n, err := toBigInt(arg)
	if err != nil {
		return nil, err
	}
	return py.NewBool(factor.IsPrime(n)), nil
}

func applyOp(module py.Object, op rev.Op, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, py.ExceptionNewf(py.TypeError, "%v() takes exactly 2 arguments (%d given)", op, len(args))
	}
	X1, err := getGraph(args[0])
	if err != nil {
		return nil, err
	}
	X2, err := getGraph(args[1])
	if err != nil {
		return nil, err
	}
	Xout, err := sess.Machine.Apply(op, X1, X2)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return wrapGraph(Xout, sess.Machine), nil
}

// Apply(op, X1, X2) where op is an op name or symbol
func py_Apply(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) != 3 {
		return nil, py.ExceptionNewf(py.TypeError, "Apply() takes exactly 3 arguments (%d given)", len(args))
	}
	opStr, ok := args[0].(py.String)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected op name (got %v)", args[0].Type().Name)
	}
	op, err := rev.ParseOp(string(opStr))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return applyOp(module, op, args[1:])
}

func opFunc(op rev.Op) func(module py.Object, args py.Tuple) (py.Object, error) {
	return func(module py.Object, args py.Tuple) (py.Object, error) {
		return applyOp(module, op, args)
	}
}

func py_Colors(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	colors := sess.Machine.Colors().AvailableColors()
	tuple := make(py.Tuple, len(colors))
	for i, color := range colors {
		tuple[i] = py.String(color)
	}
	return tuple, nil
}

func py_ColorForPrime(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	arg, err := argAt(args, 0, "ColorForPrime")
	if err != nil {
		return nil, err
	}
	p, err := toBigInt(arg)
	if err != nil {
		return nil, err
	}
	if !factor.IsPrime(p) && !rev.IsSentinelPrime(p) {
		return nil, py.ExceptionNewf(py.ValueError, "%v is not a prime", p)
	}
	return py.String(sess.Machine.Colors().ColorForPrime(p)), nil
}

func py_PrimeForColor(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	var color string
	if err = py.LoadTuple(args, []interface{}{&color}); err != nil {
		return nil, err
	}
	p, found := sess.Machine.Colors().PrimeForColor(color)
	if !found {
		return py.None, nil
	}
	return fromBigInt(p), nil
}

func py_Examples(module py.Object, args py.Tuple) (py.Object, error) {
	IDs := make(py.Tuple, len(librev.Examples))
	for i, ex := range librev.Examples {
		IDs[i] = py.String(ex.ID)
	}
	return IDs, nil
}

// RunExample(id) returns (result, matches)
func py_RunExample(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	var exampleID string
	if err = py.LoadTuple(args, []interface{}{&exampleID}); err != nil {
		return nil, err
	}
	ex, found := librev.FindExample(exampleID)
	if !found {
		return nil, py.ExceptionNewf(py.KeyError, "no example %q", exampleID)
	}
	res, err := sess.Machine.RunExample(ex)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Tuple{wrapGraph(res.Result, sess.Machine), py.NewBool(res.Matches())}, nil
}

// Stream(X1, X2, ...) or Stream(sequence) returns a GraphStream emitting the given graphs.
func py_Stream(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		switch seq := args[0].(type) {
		case py.Tuple:
			args = seq
		case *py.List:
			args = seq.Items
		}
	}
	Xs := make([]*rev.Graph, len(args))
	for i, arg := range args {
		if Xs[i], err = getGraph(arg); err != nil {
			return nil, err
		}
	}
	return wrapGraphStream(librev.StreamGraphs(Xs...), sess.Machine), nil
}

func py_HistoryLen(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	return py.Int(sess.History.Len()), nil
}

func py_ExportHistory(module py.Object, args py.Tuple) (py.Object, error) {
	sess, err := getSession(module)
	if err != nil {
		return nil, err
	}
	var pathname string
	if err = py.LoadTuple(args, []interface{}{&pathname}); err != nil {
		return nil, err
	}
	file, err := createFile(pathname)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if err = sess.History.Export(file); err != nil {
		return nil, py.ExceptionNewf(py.OSError, "%v", err)
	}
	return py.Int(sess.History.Len()), nil
}

func createFile(pathname string) (*os.File, error) {
	os.MkdirAll(filepath.Dir(pathname), 0700)
	file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
	}
	return file, nil
}

/////////////////////////////////////////////////////////////////////////
// GraphStream

type graphStream struct {
	*librev.GraphStream
	m *librev.Machine
}

func (stream graphStream) Type() *py.Type {
	return pyGraphStreamType
}

func wrapGraphStream(stream *librev.GraphStream, m *librev.Machine) py.Object {
	return py.Object(graphStream{stream, m})
}

func py_GraphStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

func py_GraphStream_Collect(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	Xs := stream.Collect()
	out := make(py.Tuple, len(Xs))
	for i, X := range Xs {
		out[i] = wrapGraph(X, stream.m)
	}
	return out, nil
}

// Apply(op, X) applies op to each graph in the stream with X in slot 2.
func py_GraphStream_Apply(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	if len(args) != 2 {
		return nil, py.ExceptionNewf(py.TypeError, "Apply() takes exactly 2 arguments (%d given)", len(args))
	}
	opStr, ok := args[0].(py.String)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected op name (got %v)", args[0].Type().Name)
	}
	op, err := rev.ParseOp(string(opStr))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	with, err := getGraph(args[1])
	if err != nil {
		return nil, err
	}
	return wrapGraphStream(stream.Apply(stream.m, op, with), stream.m), nil
}

func py_GraphStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	return wrapGraphStream(stream.DropDupes(stream.m), stream.m), nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// Print(label="", expr=True, number=True, file="")
func py_GraphStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(graphStream)
	var pathname string

	opts := rev.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", atomic.AddInt32(&gOutCount, 1))
	}

	py.LoadAttr(kwargs, "expr", &opts.Expr)
	py.LoadAttr(kwargs, "number", &opts.Number)
	py.LoadAttr(kwargs, "file", &pathname)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		file, err := createFile(pathname)
		if err != nil {
			return nil, err
		}
		writer.to = file
	}

	next := stream.Print(stream.m, writer, opts)
	return wrapGraphStream(next, stream.m), nil
}

func init() {

	/////////////////////////////////
	// Graph
	{
		pyGraphType.Dict["NumNodes"] = py.MustNewMethod("NumNodes", py_Graph_NumNodes, 0, "")
		pyGraphType.Dict["NumEdges"] = py.MustNewMethod("NumEdges", py_Graph_NumEdges, 0, "")
		pyGraphType.Dict["Number"] = py.MustNewMethod("Number", py_Graph_Number, 0, "returns the number this Graph encodes to")
		pyGraphType.Dict["Display"] = py.MustNewMethod("Display", py_Graph_Display, 0, "returns this Graph's factorization, e.g. '11² × 2¹'")
		pyGraphType.Dict["Colors"] = py.MustNewMethod("Colors", py_Graph_Colors, 0, "")
		pyGraphType.Dict["Expr"] = py.MustNewMethod("Expr", py_Graph_Expr, 0, "returns this Graph as a graph expression")
		pyGraphType.Dict["Connect"] = py.MustNewMethod("Connect", py_Graph_Connect, 0, "")
		pyGraphType.Dict["WriteSVG"] = py.MustNewMethod("WriteSVG", py_Graph_WriteSVG, 0, "renders this Graph to the given SVG file")
		pyGraphType.Dict["Stream"] = py.MustNewMethod("Stream", py_Graph_Stream, 0, "")
	}

	/////////////////////////////////
	// GraphStream
	{
		pyGraphStreamType.Dict["Go"] = py.MustNewMethod("Go", py_GraphStream_Go, 0, "counts the number of graphs output from the GraphStream")
		pyGraphStreamType.Dict["Collect"] = py.MustNewMethod("Collect", py_GraphStream_Collect, 0, "")
		pyGraphStreamType.Dict["Apply"] = py.MustNewMethod("Apply", py_GraphStream_Apply, 0, "")
		pyGraphStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_GraphStream_DropDupes, 0, "")
		pyGraphStreamType.Dict["Print"] = py.MustNewMethod("Print", py_GraphStream_Print, 0, "prints each graph from the GraphStream")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Parse", py_Parse, 0, ""),
			py.MustNewMethod("Decode", py_Decode, 0, ""),
			py.MustNewMethod("Encode", py_Encode, 0, ""),
			py.MustNewMethod("Factorize", py_Factorize, 0, ""),
			py.MustNewMethod("IsPrime", py_IsPrime, 0, ""),
			py.MustNewMethod("Apply", py_Apply, 0, ""),
			py.MustNewMethod("Star", opFunc(rev.OpStar), 0, ""),
			py.MustNewMethod("Dagger", opFunc(rev.OpDagger), 0, ""),
			py.MustNewMethod("GCD", opFunc(rev.OpGCD), 0, ""),
			py.MustNewMethod("LCM", opFunc(rev.OpLCM), 0, ""),
			py.MustNewMethod("Colors", py_Colors, 0, ""),
			py.MustNewMethod("ColorForPrime", py_ColorForPrime, 0, ""),
			py.MustNewMethod("PrimeForColor", py_PrimeForColor, 0, ""),
			py.MustNewMethod("Examples", py_Examples, 0, ""),
			py.MustNewMethod("RunExample", py_RunExample, 0, ""),
			py.MustNewMethod("Stream", py_Stream, 0, ""),
			py.MustNewMethod("HistoryLen", py_HistoryLen, 0, ""),
			py.MustNewMethod("ExportHistory", py_ExportHistory, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"STAR":        py.String(rev.OpStar),
			"DAGGER":      py.String(rev.OpDagger),
			"GCD_OP":      py.String(rev.OpGCD),
			"LCM_OP":      py.String(rev.OpLCM),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pyrev",
				Doc:  "graph <-> number machine gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				sessObj, _ := py.GetAttrString(m, kSessionAttr)
				if sessObj != nil {
					sessObj.(*Session).Close()
				}
			},
		})
	}
}
