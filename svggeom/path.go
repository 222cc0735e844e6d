package svggeom

import (
	"fmt"
	"strconv"
)

// A Path is a compiled sequence of absolute drawing operations.
// Relative commands and shorthand forms are resolved at compile time.
type Path []Operation

// Operation is one drawing step of a path; concrete types are MoveTo,
// LineTo, QuadTo, CubicTo, ArcTo and Close.
type Operation interface {
	flattenTo(fl *flattener)
}

type (
	// MoveTo starts a new subpath at the point.
	MoveTo Point
	// LineTo draws a straight segment to the point.
	LineTo Point
	// QuadTo draws a quadratic bezier.
	QuadTo struct {
		Ctrl, End Point
	}
	// CubicTo draws a cubic bezier.
	CubicTo struct {
		Ctrl1, Ctrl2, End Point
	}
	// ArcTo draws an elliptical arc to End, following the endpoint
	// parameterization: radii, x axis rotation in degrees, and the two
	// flags selecting among the four candidate arcs.
	ArcTo struct {
		Rx, Ry, Rotation float64
		LargeArc, Sweep  bool
		End              Point
	}
	// Close closes the current subpath back to its starting point.
	Close struct{}
)

// numScanner walks a string of numbers separated by spaces, commas, or
// nothing at all when a sign starts the next number ("1.5-2.3" is two
// tokens). Also used for the points attribute and transform arguments.
type numScanner struct {
	data string
	pos  int
}

func isSep(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r'
}

func (s *numScanner) skipSep() {
	for s.pos < len(s.data) && isSep(s.data[s.pos]) {
		s.pos++
	}
}

// number scans the next float literal. A '+' or '-' terminates the
// previous token unless it directly follows an exponent marker.
func (s *numScanner) number() (float64, bool) {
	s.skipSep()
	start := s.pos
	i := s.pos
	if i < len(s.data) && (s.data[i] == '+' || s.data[i] == '-') {
		i++
	}
	digits, seenDot := 0, false
	for i < len(s.data) {
		c := s.data[i]
		if c >= '0' && c <= '9' {
			digits++
			i++
		} else if c == '.' && !seenDot {
			seenDot = true
			i++
		} else if (c == 'e' || c == 'E') && digits > 0 {
			j := i + 1
			if j < len(s.data) && (s.data[j] == '+' || s.data[j] == '-') {
				j++
			}
			expDigits := 0
			for j < len(s.data) && s.data[j] >= '0' && s.data[j] <= '9' {
				j++
				expDigits++
			}
			if expDigits == 0 {
				break
			}
			i = j
			break
		} else {
			break
		}
	}
	if digits == 0 {
		return 0, false
	}
	num, err := strconv.ParseFloat(s.data[start:i], 64)
	if err != nil {
		return 0, false
	}
	s.pos = i
	return num, true
}

// command returns the next command letter, or 0 at end of input.
func (s *numScanner) command() byte {
	s.skipSep()
	if s.pos >= len(s.data) {
		return 0
	}
	c := s.data[s.pos]
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		s.pos++
		return c
	}
	return 0
}

// hasMore reports whether a number could start at the current position.
func (s *numScanner) hasMore() bool {
	s.skipSep()
	if s.pos >= len(s.data) {
		return false
	}
	c := s.data[s.pos]
	return c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

// ParseNumberList scans all the numbers of a separated list, tolerating
// sign characters as implicit separators. Used for the points attribute
// and transform function arguments.
func ParseNumberList(value string) []float64 {
	s := numScanner{data: value}
	var out []float64
	for {
		n, ok := s.number()
		if !ok {
			return out
		}
		out = append(out, n)
	}
}

// ParsePoints reads a points attribute into coordinate pairs, dropping
// a trailing unpaired number.
func ParsePoints(value string) []Point {
	nums := ParseNumberList(value)
	pts := make([]Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, Point{nums[i], nums[i+1]})
	}
	return pts
}

// CompilePath parses SVG path data into absolute operations.
// Unknown command letters or missing arguments are errors: the caller
// skips the element.
func CompilePath(d string) (Path, error) {
	s := numScanner{data: d}
	var (
		p        Path
		cur      Point
		start    Point
		prevCtrl Point
		prevCmd  byte
		began    bool
	)

	// reads n coordinates, relative ones offset by the current point
	args := func(n int) ([]float64, error) {
		out := make([]float64, n)
		for i := range out {
			num, ok := s.number()
			if !ok {
				return nil, fmt.Errorf("expected %d numbers, got %d", n, i)
			}
			out[i] = num
		}
		return out, nil
	}

	for {
		cmd := s.command()
		if cmd == 0 {
			if s.hasMore() {
				return nil, fmt.Errorf("numbers without a command at offset %d", s.pos)
			}
			return p, nil
		}
		rel := cmd >= 'a'
		upper := cmd
		if rel {
			upper -= 'a' - 'A'
		}

		if upper != 'M' && !began {
			return nil, fmt.Errorf("path must start with a moveto, got %q", cmd)
		}

		for arg := 0; arg == 0 || s.hasMore(); arg++ {
			switch upper {
			case 'M':
				a, err := args(2)
				if err != nil {
					return nil, err
				}
				pt := Point{a[0], a[1]}
				if rel {
					pt = cur.Add(pt)
				}
				if arg == 0 {
					p = append(p, MoveTo(pt))
					start = pt
				} else {
					// extra pairs of a moveto are implicit linetos
					p = append(p, LineTo(pt))
				}
				cur = pt
				began = true
				prevCmd = 'M'
			case 'L':
				a, err := args(2)
				if err != nil {
					return nil, err
				}
				pt := Point{a[0], a[1]}
				if rel {
					pt = cur.Add(pt)
				}
				p = append(p, LineTo(pt))
				cur = pt
				prevCmd = 'L'
			case 'H':
				a, err := args(1)
				if err != nil {
					return nil, err
				}
				x := a[0]
				if rel {
					x += cur.X
				}
				pt := Point{x, cur.Y}
				p = append(p, LineTo(pt))
				cur = pt
				prevCmd = 'L'
			case 'V':
				a, err := args(1)
				if err != nil {
					return nil, err
				}
				y := a[0]
				if rel {
					y += cur.Y
				}
				pt := Point{cur.X, y}
				p = append(p, LineTo(pt))
				cur = pt
				prevCmd = 'L'
			case 'C':
				a, err := args(6)
				if err != nil {
					return nil, err
				}
				c1, c2, end := Point{a[0], a[1]}, Point{a[2], a[3]}, Point{a[4], a[5]}
				if rel {
					c1, c2, end = cur.Add(c1), cur.Add(c2), cur.Add(end)
				}
				p = append(p, CubicTo{c1, c2, end})
				cur, prevCtrl = end, c2
				prevCmd = 'C'
			case 'S':
				a, err := args(4)
				if err != nil {
					return nil, err
				}
				c2, end := Point{a[0], a[1]}, Point{a[2], a[3]}
				if rel {
					c2, end = cur.Add(c2), cur.Add(end)
				}
				c1 := cur
				if prevCmd == 'C' {
					c1 = reflect(prevCtrl, cur)
				}
				p = append(p, CubicTo{c1, c2, end})
				cur, prevCtrl = end, c2
				prevCmd = 'C'
			case 'Q':
				a, err := args(4)
				if err != nil {
					return nil, err
				}
				c, end := Point{a[0], a[1]}, Point{a[2], a[3]}
				if rel {
					c, end = cur.Add(c), cur.Add(end)
				}
				p = append(p, QuadTo{c, end})
				cur, prevCtrl = end, c
				prevCmd = 'Q'
			case 'T':
				a, err := args(2)
				if err != nil {
					return nil, err
				}
				end := Point{a[0], a[1]}
				if rel {
					end = cur.Add(end)
				}
				c := cur
				if prevCmd == 'Q' {
					c = reflect(prevCtrl, cur)
				}
				p = append(p, QuadTo{c, end})
				cur, prevCtrl = end, c
				prevCmd = 'Q'
			case 'A':
				a, err := args(7)
				if err != nil {
					return nil, err
				}
				end := Point{a[5], a[6]}
				if rel {
					end = cur.Add(end)
				}
				p = append(p, ArcTo{
					Rx: a[0], Ry: a[1], Rotation: a[2],
					LargeArc: a[3] != 0, Sweep: a[4] != 0,
					End: end,
				})
				cur = end
				prevCmd = 'A'
			case 'Z':
				p = append(p, Close{})
				cur = start
				prevCmd = 'Z'
			default:
				return nil, fmt.Errorf("unknown path command %q", cmd)
			}
			if upper == 'Z' {
				break
			}
		}
	}
}

// reflect mirrors ctrl across pivot, for the smooth curve shorthands.
func reflect(ctrl, pivot Point) Point {
	return Point{2*pivot.X - ctrl.X, 2*pivot.Y - ctrl.Y}
}
