package svggeom

import "math"

const (
	// maximum device space deviation of a flattened curve from the exact one
	FlattenTolerance = 0.5
	// recursion cap for bezier subdivision
	maxSubdivisions = 10
	// arcs are sampled about every pi/16 radians, with at least 4 segments
	arcStepAngle = math.Pi / 16
)

// flattener accumulates the device space polylines of a path. Curves are
// flattened after transformation, so the tolerance is honored in device
// units whatever the zoom.
type flattener struct {
	m   Matrix2D
	tol float64
	out Outline

	curUser   Point // untransformed current point, needed by arcs
	startUser Point
	curDev    Point
}

// Flatten converts the path to device space polylines, mapping every
// point through m and approximating curves within tol device units.
func (p Path) Flatten(m Matrix2D, tol float64) Outline {
	if tol <= 0 {
		tol = FlattenTolerance
	}
	fl := flattener{m: m, tol: tol}
	for _, op := range p {
		op.flattenTo(&fl)
	}
	return fl.out
}

func (fl *flattener) current() *SubPath {
	if len(fl.out) == 0 {
		return nil
	}
	return &fl.out[len(fl.out)-1]
}

func (fl *flattener) lineDev(dev Point) {
	sp := fl.current()
	if sp == nil || sp.Closed {
		// a drawing command without a moveto opens a subpath at the pen
		fl.out = append(fl.out, SubPath{Pts: []Point{fl.curDev}})
		sp = fl.current()
	}
	sp.Pts = append(sp.Pts, dev)
	fl.curDev = dev
}

func (op MoveTo) flattenTo(fl *flattener) {
	fl.curUser = Point(op)
	fl.startUser = Point(op)
	fl.curDev = fl.m.ApplyPt(Point(op))
	fl.out = append(fl.out, SubPath{Pts: []Point{fl.curDev}})
}

func (op LineTo) flattenTo(fl *flattener) {
	fl.curUser = Point(op)
	fl.lineDev(fl.m.ApplyPt(Point(op)))
}

func (op QuadTo) flattenTo(fl *flattener) {
	p0 := fl.curDev
	c := fl.m.ApplyPt(op.Ctrl)
	p1 := fl.m.ApplyPt(op.End)
	fl.quad(p0, c, p1, 0)
	fl.curUser = op.End
}

func (op CubicTo) flattenTo(fl *flattener) {
	p0 := fl.curDev
	c1 := fl.m.ApplyPt(op.Ctrl1)
	c2 := fl.m.ApplyPt(op.Ctrl2)
	p1 := fl.m.ApplyPt(op.End)
	fl.cubic(p0, c1, c2, p1, 0)
	fl.curUser = op.End
}

func (op Close) flattenTo(fl *flattener) {
	if sp := fl.current(); sp != nil && len(sp.Pts) > 0 {
		sp.Closed = true
		fl.curDev = sp.Pts[0]
		fl.curUser = fl.startUser
	}
}

// quad subdivides until the control point deviates from the chord by at
// most the tolerance.
func (fl *flattener) quad(p0, c, p1 Point, depth int) {
	if depth >= maxSubdivisions || distToSegment(c, p0, p1) <= fl.tol {
		fl.lineDev(p1)
		return
	}
	c0 := midpoint(p0, c)
	c1 := midpoint(c, p1)
	mid := midpoint(c0, c1)
	fl.quad(p0, c0, mid, depth+1)
	fl.quad(mid, c1, p1, depth+1)
}

func (fl *flattener) cubic(p0, c1, c2, p1 Point, depth int) {
	flat := math.Max(distToSegment(c1, p0, p1), distToSegment(c2, p0, p1))
	if depth >= maxSubdivisions || flat <= fl.tol {
		fl.lineDev(p1)
		return
	}
	// de Casteljau split at t = 1/2
	a := midpoint(p0, c1)
	b := midpoint(c1, c2)
	c := midpoint(c2, p1)
	ab := midpoint(a, b)
	bc := midpoint(b, c)
	mid := midpoint(ab, bc)
	fl.cubic(p0, a, ab, mid, depth+1)
	fl.cubic(mid, bc, c, p1, depth+1)
}

func midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// distToSegment is the distance from p to the segment [a, b].
func distToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}

// flattenTo converts the endpoint arc parameterization to the center one
// and samples the arc in user space, transforming each sample.
func (op ArcTo) flattenTo(fl *flattener) {
	p1, p2 := fl.curUser, op.End
	rx, ry := math.Abs(op.Rx), math.Abs(op.Ry)
	if rx == 0 || ry == 0 || p1 == p2 {
		// degenerate arcs collapse to a straight segment
		fl.curUser = p2
		fl.lineDev(fl.m.ApplyPt(p2))
		return
	}
	phi := op.Rotation * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// midpoint form of the endpoints, in the rotated frame
	dx, dy := (p1.X-p2.X)/2, (p1.Y-p2.Y)/2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// radii too small to span the endpoints are scaled up uniformly
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		k := math.Sqrt(lambda)
		rx *= k
		ry *= k
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := math.Sqrt(math.Max(0, num/den))
	if op.LargeArc == op.Sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (p1.X+p2.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p1.Y+p2.Y)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	delta := theta2 - theta1
	if !op.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if op.Sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	segs := int(math.Ceil(math.Abs(delta) / arcStepAngle))
	if segs < 4 {
		segs = 4
	}
	for i := 1; i <= segs; i++ {
		t := theta1 + delta*float64(i)/float64(segs)
		sinT, cosT := math.Sincos(t)
		ux, uy := rx*cosT, ry*sinT
		pt := Point{
			X: cx + cosPhi*ux - sinPhi*uy,
			Y: cy + sinPhi*ux + cosPhi*uy,
		}
		if i == segs {
			pt = p2 // land exactly on the endpoint
		}
		fl.lineDev(fl.m.ApplyPt(pt))
	}
	fl.curUser = p2
}
