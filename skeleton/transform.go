package skeleton

import "math"

// Transform is a decomposed 2D pose. Rotation and Skew are radians.
// Scale is multiplicative, so the neutral pose is Identity(), not the zero value.
type Transform struct {
	X, Y     float64
	Rotation float64
	Skew     float64
	ScaleX   float64
	ScaleY   float64
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// IsZero reports whether t is the zero value, which data uses to mean
// "no transform" for display entries.
func (t Transform) IsZero() bool {
	return t == Transform{}
}

// ToMatrix returns the affine matrix [a, b, c, d, tx, ty] for t.
// Skew shears the y axis relative to the x axis.
func (t Transform) ToMatrix() [6]float64 {
	sinR, cosR := math.Sincos(t.Rotation)
	sinS, cosS := sinR, cosR
	if t.Skew != 0 {
		sinS, cosS = math.Sincos(t.Rotation + t.Skew)
	}
	return [6]float64{
		cosR * t.ScaleX,
		sinR * t.ScaleX,
		-sinS * t.ScaleY,
		cosS * t.ScaleY,
		t.X,
		t.Y,
	}
}

// Add composes a delta pose onto t: translation, rotation and skew add,
// scale multiplies.
func (t Transform) Add(delta Transform) Transform {
	return Transform{
		X:        t.X + delta.X,
		Y:        t.Y + delta.Y,
		Rotation: t.Rotation + delta.Rotation,
		Skew:     t.Skew + delta.Skew,
		ScaleX:   t.ScaleX * delta.ScaleX,
		ScaleY:   t.ScaleY * delta.ScaleY,
	}
}

// Lerp interpolates every component between t and to by p in [0, 1].
// Rotation takes the shortest arc.
func (t Transform) Lerp(to Transform, p float64) Transform {
	return Transform{
		X:        t.X + (to.X-t.X)*p,
		Y:        t.Y + (to.Y-t.Y)*p,
		Rotation: t.Rotation + normalizeRadian(to.Rotation-t.Rotation)*p,
		Skew:     t.Skew + normalizeRadian(to.Skew-t.Skew)*p,
		ScaleX:   t.ScaleX + (to.ScaleX-t.ScaleX)*p,
		ScaleY:   t.ScaleY + (to.ScaleY-t.ScaleY)*p,
	}
}

// normalizeRadian maps r into (-π, π].
func normalizeRadian(r float64) float64 {
	r = math.Mod(r+math.Pi, 2*math.Pi)
	if r <= 0 {
		r += 2 * math.Pi
	}
	return r - math.Pi
}
