package librev

import (
	"github.com/pkg/errors"

	"github.com/2x3systems/gorev/rev"
)

// Example is a canned demonstration: two slot graphs, an op, and the graph the op is expected to produce.
// Graphs are given as graph expressions (see GraphExpr).
type Example struct {
	ID          string
	Title       string
	Description string
	Slot1       string
	Slot2       string
	Op          rev.Op
	Expected    string
}

// Examples is the built-in demonstration table.
var Examples = []Example{
	{
		ID:          "example-1",
		Title:       "white † white → red",
		Description: "Two white balls produce a red ball when dagger is pressed.",
		Slot1:       "white",
		Slot2:       "white",
		Op:          rev.OpDagger,
		Expected:    "red",
	}, {
		ID:          "example-2",
		Title:       "white † red → blue",
		Description: "A white and a red ball produce a blue ball when dagger is pressed.",
		Slot1:       "white",
		Slot2:       "red",
		Op:          rev.OpDagger,
		Expected:    "blue",
	}, {
		ID:          "example-3",
		Title:       "red ★ blue → red-blue",
		Description: "Star joins a red and a blue ball with a bar.",
		Slot1:       "red",
		Slot2:       "blue",
		Op:          rev.OpStar,
		Expected:    "red-blue",
	}, {
		ID:          "example-4",
		Title:       "red ★ white → red",
		Description: "White is the identity of star.",
		Slot1:       "red",
		Slot2:       "white",
		Op:          rev.OpStar,
		Expected:    "red",
	}, {
		ID:          "example-5",
		Title:       "blue ★ white → blue",
		Description: "White is the identity of star.",
		Slot1:       "blue",
		Slot2:       "white",
		Op:          rev.OpStar,
		Expected:    "blue",
	}, {
		ID:          "example-6",
		Title:       "red ★ red → red-red",
		Description: "Star of two red balls connects them.",
		Slot1:       "red",
		Slot2:       "red",
		Op:          rev.OpStar,
		Expected:    "red-red",
	}, {
		ID:          "example-7",
		Title:       "red-red † red-blue → red-green",
		Description: "4 + 6 = 10 = 2 × 5",
		Slot1:       "red-red",
		Slot2:       "red-blue",
		Op:          rev.OpDagger,
		Expected:    "red-green",
	}, {
		ID:          "example-8",
		Title:       "red-green † white → cyan",
		Description: "10 + 1 = 11",
		Slot1:       "red-green",
		Slot2:       "white",
		Op:          rev.OpDagger,
		Expected:    "cyan",
	}, {
		ID:          "example-9",
		Title:       "green † cyan → four reds",
		Description: "5 + 11 = 16 = 2⁴",
		Slot1:       "green",
		Slot2:       "cyan",
		Op:          rev.OpDagger,
		Expected:    "red, red, red, red",
	}, {
		ID:          "example-10",
		Title:       "red-cyan-cyan † red-yellow → eight reds",
		Description: "242 + 14 = 256 = 2⁸",
		Slot1:       "red-cyan-cyan",
		Slot2:       "red-yellow",
		Op:          rev.OpDagger,
		Expected:    "red, red, red, red, red, red, red, red",
	}, {
		ID:          "example-11",
		Title:       "red-cyan-cyan ▼ red-yellow → red",
		Description: "gcd(242, 14) = 2",
		Slot1:       "red-cyan-cyan",
		Slot2:       "red-yellow",
		Op:          rev.OpGCD,
		Expected:    "red",
	}, {
		ID:          "example-12",
		Title:       "red-cyan-cyan ▲ red-yellow → red-cyan-cyan-yellow",
		Description: "lcm(242, 14) = 1694 = 2 × 7 × 11²",
		Slot1:       "red-cyan-cyan",
		Slot2:       "red-yellow",
		Op:          rev.OpLCM,
		Expected:    "red:a-cyan-cyan-yellow-:a",
	},
}

// FindExample returns the example with the given ID.
func FindExample(exampleID string) (Example, bool) {
	for _, ex := range Examples {
		if ex.ID == exampleID {
			return ex, true
		}
	}
	return Example{}, false
}

// ExampleResult is the outcome of running an Example.
type ExampleResult struct {
	Example Example
	Result  *rev.Graph
	Got     rev.GraphNumber
	Want    rev.GraphNumber
}

// Matches reports whether the result encodes to the same number as the expected graph.
func (res *ExampleResult) Matches() bool {
	return res.Got.Number.Cmp(res.Want.Number) == 0
}

// RunExample loads the slot graphs of ex, applies its op, and encodes both the result and the expected graph.
func (m *Machine) RunExample(ex Example) (*ExampleResult, error) {
	X1, err := ParseGraphExpr(ex.Slot1)
	if err != nil {
		return nil, errors.Wrapf(err, "%s slot 1", ex.ID)
	}
	X2, err := ParseGraphExpr(ex.Slot2)
	if err != nil {
		return nil, errors.Wrapf(err, "%s slot 2", ex.ID)
	}
	Xwant, err := ParseGraphExpr(ex.Expected)
	if err != nil {
		return nil, errors.Wrapf(err, "%s expected", ex.ID)
	}

	Xout, err := m.Apply(ex.Op, X1, X2)
	if err != nil {
		return nil, errors.Wrap(err, ex.ID)
	}
	return &ExampleResult{
		Example: ex,
		Result:  Xout,
		Got:     m.Encode(Xout),
		Want:    m.Encode(Xwant),
	}, nil
}
