package bones

import (
	"math"

	"github.com/phanxgames/bones/scene"
	"github.com/phanxgames/bones/skeleton"
)

// Segment is a line from Start to End.
type Segment struct {
	Start, End scene.Vec2
}

// BoneSegment projects a bone of the given length through its global matrix.
// The segment starts at the bone origin and runs along the bone's x axis.
func BoneSegment(m [6]float64, length float64) Segment {
	return Segment{
		Start: scene.Vec2{X: m[4], Y: m[5]},
		End:   scene.Vec2{X: m[4] + m[0]*length, Y: m[5] + m[1]*length},
	}
}

// BoneStyle returns the debug color for a bone.
func BoneStyle(isIK bool, style DebugStyle) scene.Color {
	if isIK {
		return style.IKBone
	}
	return style.Bone
}

// SlotDebugMatrix shifts a slot matrix by its pivot so that shapes drawn
// around the origin line up with the slot's display.
func SlotDebugMatrix(m [6]float64, pivotX, pivotY float64) [6]float64 {
	m[4] -= m[0]*pivotX + m[2]*pivotY
	m[5] -= m[1]*pivotX + m[3]*pivotY
	return m
}

// ShapeKind identifies a projected bounding shape.
type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota
	ShapeEllipse
	ShapePolygon
)

// ellipseSegments is the number of edges used when an ellipse is transformed.
const ellipseSegments = 32

// Shape is a bounding shape in some coordinate space. Rectangles and ellipses
// are described by Rect; polygons by Points.
type Shape struct {
	Kind   ShapeKind
	Rect   scene.Rect
	Points []scene.Vec2
	Closed bool
}

// LocalShape returns the slot-space shape for bb. Rectangles and ellipses are
// centered on the origin. Returns a zero Shape for nil.
func LocalShape(bb *skeleton.BoundingBoxData) Shape {
	if bb == nil {
		return Shape{}
	}
	switch bb.Type {
	case skeleton.BoundingBoxEllipse:
		return Shape{Kind: ShapeEllipse, Rect: centeredRect(bb.Width, bb.Height), Closed: true}
	case skeleton.BoundingBoxPolygon:
		pts := make([]scene.Vec2, 0, len(bb.Vertices)/2)
		for i := 0; i+1 < len(bb.Vertices); i += 2 {
			pts = append(pts, scene.Vec2{X: bb.Vertices[i], Y: bb.Vertices[i+1]})
		}
		return Shape{Kind: ShapePolygon, Points: pts, Closed: bb.Closed}
	default:
		return Shape{Kind: ShapeRectangle, Rect: centeredRect(bb.Width, bb.Height), Closed: true}
	}
}

func centeredRect(w, h float64) scene.Rect {
	return scene.Rect{X: -w / 2, Y: -h / 2, Width: w, Height: h}
}

// Outline returns the shape as a point list. Ellipses are approximated.
func (s Shape) Outline() []scene.Vec2 {
	r := s.Rect
	switch s.Kind {
	case ShapeRectangle:
		return []scene.Vec2{
			{X: r.X, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y + r.Height},
			{X: r.X, Y: r.Y + r.Height},
		}
	case ShapeEllipse:
		cx, cy := r.X+r.Width/2, r.Y+r.Height/2
		pts := make([]scene.Vec2, ellipseSegments)
		for i := range pts {
			sin, cos := math.Sincos(2 * math.Pi * float64(i) / ellipseSegments)
			pts[i] = scene.Vec2{X: cx + cos*r.Width/2, Y: cy + sin*r.Height/2}
		}
		return pts
	default:
		return s.Points
	}
}

// Transform maps the shape through m. The result is always a polygon since
// rotated rectangles and ellipses are no longer axis-aligned.
func (s Shape) Transform(m [6]float64) Shape {
	src := s.Outline()
	pts := make([]scene.Vec2, len(src))
	for i, p := range src {
		x, y := scene.TransformPoint(m, p.X, p.Y)
		pts[i] = scene.Vec2{X: x, Y: y}
	}
	return Shape{Kind: ShapePolygon, Points: pts, Closed: s.Closed}
}

// Bounds returns the axis-aligned bounds of the shape.
func (s Shape) Bounds() scene.Rect {
	if s.Kind == ShapePolygon {
		return scene.BoundsOf(s.Points)
	}
	return s.Rect
}

// draw records s on g using the bounding-box debug style.
func (s Shape) draw(g *scene.Graphics, style DebugStyle) {
	g.LineStyle(style.LineWidth, style.BoundingBoxLine)
	g.BeginFill(style.BoundingBoxFill)
	r := s.Rect
	switch s.Kind {
	case ShapeRectangle:
		g.DrawRect(r.X, r.Y, r.Width, r.Height)
	case ShapeEllipse:
		g.DrawEllipse(r.X, r.Y, r.Width, r.Height)
	default:
		g.DrawPolygon(s.Points, s.Closed)
	}
	g.EndFill()
}
