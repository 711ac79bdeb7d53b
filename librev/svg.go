package librev

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"

	"github.com/2x3systems/gorev/rev"
)

const (
	svgMargin     = 40
	svgNodeRadius = 16
)

// WriteSVG renders X as an SVG document, filling each node with its registry display color.
func WriteSVG(w io.Writer, X *rev.Graph, colors rev.ColorRegistry) error {
	pos := make(map[string]rev.Node, len(X.Nodes))
	for _, node := range X.Nodes {
		pos[node.ID] = node
	}
	for _, e := range X.Edges {
		_, aOK := pos[e.Source]
		_, bOK := pos[e.Target]
		if !aOK || !bOK {
			return errors.Wrapf(rev.ErrNodeNotFound, "edge %q", e.ID)
		}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, node := range X.Nodes {
		minX, maxX = math.Min(minX, node.X), math.Max(maxX, node.X)
		minY, maxY = math.Min(minY, node.Y), math.Max(maxY, node.Y)
	}
	if X.IsEmpty() {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	px := func(x float64) int { return int(math.Round(x-minX)) + svgMargin }
	py := func(y float64) int { return int(math.Round(y-minY)) + svgMargin }

	width := int(math.Round(maxX-minX)) + 2*svgMargin
	height := int(math.Round(maxY-minY)) + 2*svgMargin

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1e1e1e")

	for _, e := range X.Edges {
		a, b := pos[e.Source], pos[e.Target]
		canvas.Line(px(a.X), py(a.Y), px(b.X), py(b.Y), "stroke:#aaa;stroke-width:4")
	}
	for _, node := range X.Nodes {
		fill := node.Color
		if colors != nil {
			fill = colors.ColorValue(node.Color)
		}
		canvas.Circle(px(node.X), py(node.Y), svgNodeRadius, fmt.Sprintf("fill:%s;stroke:#333;stroke-width:2", fill))
	}

	canvas.End()
	return nil
}
