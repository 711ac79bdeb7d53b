package pyrev_test

import (
	"path/filepath"
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"

	_ "github.com/2x3systems/gorev/pyrev"
	_ "github.com/go-python/gpython/stdlib"
)

// execScript compiles src as a whole module (not a single statement) and runs it.
func execScript(src string) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	code, err := py.Compile(src+"\n", "<test>", py.ExecMode, 0, true)
	if err != nil {
		return err
	}
	_, err = py.RunCode(ctx, code, "<test>", nil)
	return err
}

func runScript(t *testing.T, src string) {
	t.Helper()

	err := execScript(src)
	if err != nil {
		py.TracebackDump(err)
	}
	require.NoError(t, err)
}

func TestScriptRunsEveryStatement(t *testing.T) {
	err := execScript(`
import _pyrev as rev
X = rev.Decode(6)
assert X.Number() == 7
`)
	require.Error(t, err, "statements after the first must run")
}

func TestEncodeDecode(t *testing.T) {
	runScript(t, `
import _pyrev as rev

X = rev.Decode(12)
assert X.NumNodes() == 3
assert X.NumEdges() == 0
assert X.Number() == 12
assert X.Display() == "3¹ × 2²"
assert X.Colors() == ("red", "red", "blue")

assert rev.Encode("red-red-blue") == 12
assert rev.Encode("white, gray") == 1
assert rev.Encode("") == 0
assert rev.Decode(0).NumNodes() == 0

big = 2**70 * 13
assert rev.Decode(big).Number() == big
assert rev.Factorize(360) == ((2, 3), (3, 2), (5, 1))
assert rev.IsPrime(97)
assert not rev.IsPrime(91)
`)
}

func TestOps(t *testing.T) {
	runScript(t, `
import _pyrev as rev

A = rev.Parse("red-cyan-cyan")
B = rev.Parse("red-yellow")

assert rev.Star(A, B).Number() == 242 * 14
assert rev.Dagger(A, B).Number() == 256
assert rev.GCD(A, B).Number() == 2
assert rev.LCM(A, B).Number() == 1694
assert rev.Apply("†", "white", "white").Colors() == ("red",)
assert rev.Apply(rev.STAR, "red", "blue").NumEdges() == 1
assert rev.Decode(12).Connect().Expr() == "red-red-blue"
assert rev.HistoryLen() == 6

try:
    rev.Apply("modulo", A, B)
    raise RuntimeError("expected ValueError")
except ValueError:
    pass

try:
    rev.Parse("red-")
    raise RuntimeError("expected ValueError")
except ValueError:
    pass
`)
}

func TestColorsAndExamples(t *testing.T) {
	runScript(t, `
import _pyrev as rev

assert rev.PrimeForColor("Cyan") == 11
assert rev.PrimeForColor("chartreuse") is None
assert rev.ColorForPrime(17) == "orange"
assert rev.PrimeForColor("orange") == 17
has_orange, has_gray = False, False
for color in rev.Colors():
    if color == "orange":
        has_orange = True
    if color == "gray":
        has_gray = True
assert has_orange
assert not has_gray

IDs = rev.Examples()
assert len(IDs) == 12
for exampleID in IDs:
    X, matches = rev.RunExample(exampleID)
    assert matches, exampleID
`)
}

func TestStreams(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.csv")
	svgPath := filepath.Join(dir, "star.svg")

	runScript(t, `
import _pyrev as rev

count = rev.Stream("red", "blue", "red").Apply("star", "green").DropDupes().Print("dedup", file="`+outPath+`").Go()
assert count == 2

Xs = rev.Stream(rev.Decode(6), rev.Decode(10)).Apply("gcd", rev.Decode(4)).Collect()
assert len(Xs) == 2
assert Xs[0].Number() == 2

rev.Star("red-blue", "cyan").WriteSVG("`+svgPath+`")
`)

	require.FileExists(t, outPath)
	require.FileExists(t, svgPath)
}
