package tessellate

import (
	"fmt"
	"iter"
	"slices"

	"github.com/chazu/loft/pkg/curve"
	"github.com/chazu/loft/pkg/geom"
)

// Deflection sampling bounds: every span starts quartered, and
// bisection beyond deflectMaxDepth counts as non-convergence.
const (
	deflectInitialSpans = 4
	deflectMaxDepth     = 40
)

// ToPolyline approximates a curve with a point sequence whose
// deviation from the curve stays within tolerance. A line yields
// exactly its two endpoint evaluations; other curves are sampled
// adaptively. The first and last points are always the curve evaluated
// at its first and last parameter.
//
// The returned sequence is finite and restartable.
func ToPolyline(c curve.Curve, tolerance float64) (iter.Seq[geom.Pnt], error) {
	if tolerance <= 0 {
		return nil, fmt.Errorf("%w: deflection tolerance must be positive, got %v",
			geom.ErrInvalidGeometry, tolerance)
	}

	if isLine(c) {
		pts := []geom.Pnt{c.Value(c.FirstParameter()), c.Value(c.LastParameter())}
		return slices.Values(pts), nil
	}

	pts, err := deflectionSample(c, tolerance)
	if err != nil {
		return nil, err
	}
	return slices.Values(pts), nil
}

// isLine reports whether the curve is straight, looking through
// trimming at the basis kind.
func isLine(c curve.Curve) bool {
	if t, ok := c.(*curve.Trimmed); ok {
		return isLine(t.Basis)
	}
	return c.Kind() == curve.KindLine
}

// deflectionSample walks the parameter domain quasi-uniformly,
// bisecting every span whose sampled deviation from its chord exceeds
// the tolerance.
func deflectionSample(c curve.Curve, tolerance float64) ([]geom.Pnt, error) {
	first, last := c.FirstParameter(), c.LastParameter()

	var refine func(a, b float64, pa, pb geom.Pnt, depth int, out []geom.Pnt) ([]geom.Pnt, error)
	refine = func(a, b float64, pa, pb geom.Pnt, depth int, out []geom.Pnt) ([]geom.Pnt, error) {
		mid := (a + b) / 2
		pm := c.Value(mid)

		dev := distToChord(pm, pa, pb)
		if d := distToChord(c.Value((a+mid)/2), pa, pb); d > dev {
			dev = d
		}
		if d := distToChord(c.Value((mid+b)/2), pa, pb); d > dev {
			dev = d
		}
		if dev <= tolerance {
			return append(out, pb), nil
		}
		if depth >= deflectMaxDepth {
			return nil, fmt.Errorf("%w: deflection %v not certified within tolerance %v on [%v, %v]",
				geom.ErrTessellation, dev, tolerance, a, b)
		}
		out, err := refine(a, mid, pa, pm, depth+1, out)
		if err != nil {
			return nil, err
		}
		return refine(mid, b, pm, pb, depth+1, out)
	}

	pts := []geom.Pnt{c.Value(first)}
	step := (last - first) / deflectInitialSpans
	for i := 0; i < deflectInitialSpans; i++ {
		a := first + float64(i)*step
		b := a + step
		if i == deflectInitialSpans-1 {
			b = last
		}
		var err error
		pts, err = refine(a, b, c.Value(a), c.Value(b), 0, pts)
		if err != nil {
			return nil, err
		}
	}
	return pts, nil
}

// distToChord returns the distance from p to the segment [a, b].
func distToChord(p, a, b geom.Pnt) float64 {
	ab := b.Sub(a)
	l2 := ab.Length2()
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Sub(a.Add(ab.MulScalar(t))).Length()
}
