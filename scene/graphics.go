package scene

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ShapeKind identifies a recorded Graphics shape.
type ShapeKind uint8

const (
	ShapePath    ShapeKind = iota // polyline built with MoveTo/LineTo
	ShapeRect                     // axis-aligned rectangle in local space
	ShapeCircle                   // circle in local space
	ShapeEllipse                  // ellipse inscribed in a local rectangle
)

// ellipseSegments is the number of edges used to approximate circles and
// ellipses once they are transformed into world space.
const ellipseSegments = 32

// GraphicsShape is one recorded vector primitive in the node's local space.
type GraphicsShape struct {
	Kind   ShapeKind
	Points []Vec2 // ShapePath only
	Closed bool   // ShapePath only
	Rect   Rect   // ShapeRect / ShapeEllipse bounds; ShapeCircle center in X,Y
	Radius float64

	StrokeWidth float64 // 0 disables the outline
	StrokeColor Color
	Fill        bool
	FillColor   Color
}

// Graphics records vector shapes for a NodeTypeGraphics node. The API follows
// the usual immediate-style drawing calls, but shapes are retained until Clear.
type Graphics struct {
	lineWidth float64
	lineColor Color
	filling   bool
	fillColor Color

	shapes []GraphicsShape
	open   int // index of the path being extended by LineTo, or -1
}

// Clear drops every recorded shape and resets styles.
func (g *Graphics) Clear() {
	for i := range g.shapes {
		g.shapes[i].Points = nil
	}
	g.shapes = g.shapes[:0]
	g.lineWidth = 0
	g.filling = false
	g.open = -1
}

// LineStyle sets the outline used by subsequent shapes. Width 0 disables it.
func (g *Graphics) LineStyle(width float64, c Color) {
	g.lineWidth = width
	g.lineColor = c
	g.open = -1
}

// BeginFill fills subsequent shapes with c until EndFill.
func (g *Graphics) BeginFill(c Color) {
	g.filling = true
	g.fillColor = c
	g.open = -1
}

// EndFill stops filling subsequent shapes.
func (g *Graphics) EndFill() {
	g.filling = false
	g.open = -1
}

func (g *Graphics) styled(kind ShapeKind) GraphicsShape {
	return GraphicsShape{
		Kind:        kind,
		StrokeWidth: g.lineWidth,
		StrokeColor: g.lineColor,
		Fill:        g.filling,
		FillColor:   g.fillColor,
	}
}

// MoveTo starts a new path at (x, y).
func (g *Graphics) MoveTo(x, y float64) {
	s := g.styled(ShapePath)
	s.Points = []Vec2{{X: x, Y: y}}
	g.shapes = append(g.shapes, s)
	g.open = len(g.shapes) - 1
}

// LineTo extends the current path. Without a current path it behaves like MoveTo.
func (g *Graphics) LineTo(x, y float64) {
	if g.open < 0 || g.open >= len(g.shapes) {
		g.MoveTo(x, y)
		return
	}
	s := &g.shapes[g.open]
	s.Points = append(s.Points, Vec2{X: x, Y: y})
}

// ClosePath closes the current path back to its first point.
func (g *Graphics) ClosePath() {
	if g.open < 0 || g.open >= len(g.shapes) {
		return
	}
	g.shapes[g.open].Closed = true
	g.open = -1
}

// DrawPolygon records a path through points. closed joins the last point to the first.
func (g *Graphics) DrawPolygon(points []Vec2, closed bool) {
	if len(points) == 0 {
		return
	}
	s := g.styled(ShapePath)
	s.Points = append([]Vec2(nil), points...)
	s.Closed = closed
	g.shapes = append(g.shapes, s)
	g.open = -1
}

// DrawRect records a rectangle with its top-left corner at (x, y).
func (g *Graphics) DrawRect(x, y, w, h float64) {
	s := g.styled(ShapeRect)
	s.Rect = Rect{X: x, Y: y, Width: w, Height: h}
	g.shapes = append(g.shapes, s)
	g.open = -1
}

// DrawCircle records a circle centered at (cx, cy).
func (g *Graphics) DrawCircle(cx, cy, r float64) {
	s := g.styled(ShapeCircle)
	s.Rect = Rect{X: cx, Y: cy}
	s.Radius = r
	g.shapes = append(g.shapes, s)
	g.open = -1
}

// DrawEllipse records the ellipse inscribed in the rectangle at (x, y, w, h).
func (g *Graphics) DrawEllipse(x, y, w, h float64) {
	s := g.styled(ShapeEllipse)
	s.Rect = Rect{X: x, Y: y, Width: w, Height: h}
	g.shapes = append(g.shapes, s)
	g.open = -1
}

// Shapes returns the recorded shapes. The returned slice MUST NOT be mutated.
func (g *Graphics) Shapes() []GraphicsShape {
	return g.shapes
}

// Outline returns the shape's outline in local space. Circles and ellipses
// are approximated with a fixed number of segments.
func (s *GraphicsShape) Outline() (points []Vec2, closed bool) {
	switch s.Kind {
	case ShapeRect:
		r := s.Rect
		return []Vec2{
			{X: r.X, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y + r.Height},
			{X: r.X, Y: r.Y + r.Height},
		}, true
	case ShapeCircle:
		return ellipsePoints(s.Rect.X, s.Rect.Y, s.Radius, s.Radius), true
	case ShapeEllipse:
		r := s.Rect
		return ellipsePoints(r.X+r.Width/2, r.Y+r.Height/2, r.Width/2, r.Height/2), true
	default:
		return s.Points, s.Closed
	}
}

func ellipsePoints(cx, cy, rx, ry float64) []Vec2 {
	pts := make([]Vec2, ellipseSegments)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / ellipseSegments
		sin, cos := math.Sincos(t)
		pts[i] = Vec2{X: cx + cos*rx, Y: cy + sin*ry}
	}
	return pts
}

// drawGraphics rasterizes every recorded shape through the world transform.
func drawGraphics(target *ebiten.Image, g *Graphics, world [6]float64, alpha float64, buf *vectorBuffers) {
	for i := range g.shapes {
		s := &g.shapes[i]
		pts, closed := s.Outline()
		if len(pts) == 0 {
			continue
		}

		var path vector.Path
		for j, p := range pts {
			x, y := TransformPoint(world, p.X, p.Y)
			if j == 0 {
				path.MoveTo(float32(x), float32(y))
			} else {
				path.LineTo(float32(x), float32(y))
			}
		}
		if closed {
			path.Close()
		}

		if s.Fill && len(pts) >= 3 {
			buf.vs, buf.is = path.AppendVerticesAndIndicesForFilling(buf.vs[:0], buf.is[:0])
			drawVectorTriangles(target, buf.vs, buf.is, s.FillColor, alpha, true)
		}
		if s.StrokeWidth > 0 && len(pts) >= 2 {
			buf.vs, buf.is = path.AppendVerticesAndIndicesForStroke(buf.vs[:0], buf.is[:0], &vector.StrokeOptions{
				Width:    float32(s.StrokeWidth),
				LineJoin: vector.LineJoinRound,
			})
			drawVectorTriangles(target, buf.vs, buf.is, s.StrokeColor, alpha, false)
		}
	}
}

// vectorBuffers holds reusable vertex/index buffers for Graphics rasterization.
type vectorBuffers struct {
	vs []ebiten.Vertex
	is []uint16
}

func drawVectorTriangles(target *ebiten.Image, vs []ebiten.Vertex, is []uint16, c Color, alpha float64, fill bool) {
	if len(is) == 0 {
		return
	}
	a := float32(c.A * alpha)
	for i := range vs {
		vs[i].SrcX = 0.5
		vs[i].SrcY = 0.5
		vs[i].ColorR = float32(c.R) * a
		vs[i].ColorG = float32(c.G) * a
		vs[i].ColorB = float32(c.B) * a
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	if fill {
		op.FillRule = ebiten.FillRuleNonZero
	}
	target.DrawTriangles(vs, is, whitePixel(), op)
}
