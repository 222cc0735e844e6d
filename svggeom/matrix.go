// Geometry for the renderer: affine transforms, the path mini language,
// and curve flattening into device space polylines.
package svggeom

import "math"

const (
	// below this determinant magnitude a matrix is treated as singular
	singularEps = 1e-10
	identityEps = 1e-6
)

// Matrix2D is an affine map (x,y) -> (A·x+C·y+E, B·x+D·y+F).
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult composes the transforms: the result applies o first, then m
// (right multiply semantics, accumulated ∘ new).
func (m Matrix2D) Mult(o Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Translate appends a translation.
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale appends a scaling.
func (m Matrix2D) Scale(sx, sy float64) Matrix2D {
	return m.Mult(Matrix2D{sx, 0, 0, sy, 0, 0})
}

// Rotate appends a rotation about the origin, in radians.
func (m Matrix2D) Rotate(rad float64) Matrix2D {
	sin, cos := math.Sincos(rad)
	return m.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// RotateAbout appends a rotation about the point (cx, cy), in radians.
func (m Matrix2D) RotateAbout(rad, cx, cy float64) Matrix2D {
	return m.Translate(cx, cy).Rotate(rad).Translate(-cx, -cy)
}

// SkewX appends a horizontal skew, in radians.
func (m Matrix2D) SkewX(rad float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, math.Tan(rad), 1, 0, 0})
}

// SkewY appends a vertical skew, in radians.
func (m Matrix2D) SkewY(rad float64) Matrix2D {
	return m.Mult(Matrix2D{1, math.Tan(rad), 0, 1, 0, 0})
}

// Apply maps a point through the transform.
func (m Matrix2D) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ApplyPt maps a Point through the transform.
func (m Matrix2D) ApplyPt(p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{x, y}
}

// Inverse returns the inverse transform, or Identity when the matrix is
// singular (determinant magnitude below epsilon).
func (m Matrix2D) Inverse() Matrix2D {
	det := m.A*m.D - m.B*m.C
	if math.Abs(det) < singularEps {
		return Identity
	}
	inv := 1 / det
	return Matrix2D{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}
}

// IsIdentity reports whether the transform is the identity, within epsilon.
func (m Matrix2D) IsIdentity() bool {
	return math.Abs(m.A-1) < identityEps && math.Abs(m.B) < identityEps &&
		math.Abs(m.C) < identityEps && math.Abs(m.D-1) < identityEps &&
		math.Abs(m.E) < identityEps && math.Abs(m.F) < identityEps
}

// IsAxisAligned reports whether the transform has no rotation or skew
// component, so axis aligned shapes stay axis aligned.
func (m Matrix2D) IsAxisAligned() bool {
	return math.Abs(m.B) < identityEps && math.Abs(m.C) < identityEps
}

// ScaleFactors returns the lengths of the transformed unit vectors,
// i.e. the effective horizontal and vertical scales.
func (m Matrix2D) ScaleFactors() (sx, sy float64) {
	return math.Hypot(m.A, m.B), math.Hypot(m.C, m.D)
}

// MeanScale is the average of the two scale factors, used for lengths
// that belong to no single axis (stroke widths).
func (m Matrix2D) MeanScale() float64 {
	sx, sy := m.ScaleFactors()
	return (sx + sy) / 2
}
