// Package tessellate converts parametric curves into bounded-degree
// Bezier segments or tolerance-bounded polylines. One decomposition is
// produced per call; the package holds no state between calls.
package tessellate

import (
	"fmt"
	"iter"
	"math"

	"github.com/chazu/loft/pkg/curve"
	"github.com/chazu/loft/pkg/geom"
)

// Default bounds for Bezier decomposition.
const (
	DefaultMaxDegree   = 3
	DefaultMaxSegments = 100
)

// Options bound a Bezier decomposition request. The zero value of
// MaxDegree or MaxSegments selects the default.
type Options struct {
	// Tolerance is the maximum geometric deviation allowed when a
	// curve cannot be decomposed exactly.
	Tolerance float64

	// MaxDegree caps the degree of every emitted segment.
	MaxDegree int

	// MaxSegments caps the number of pieces an approximation may use.
	MaxSegments int
}

func (o Options) withDefaults() Options {
	if o.MaxDegree == 0 {
		o.MaxDegree = DefaultMaxDegree
	}
	if o.MaxSegments == 0 {
		o.MaxSegments = DefaultMaxSegments
	}
	return o
}

// ToBeziers decomposes a curve into Bezier segments of degree at most
// opts.MaxDegree, none rational. Lines yield a single degree-1
// segment; conforming Beziers pass through unchanged; everything else
// goes through an exact B-spline representation first.
//
// The returned sequence is finite and single-pass: iterating it a
// second time yields nothing.
func ToBeziers(c curve.Curve, opts Options) (iter.Seq[*curve.Bezier], error) {
	opts = opts.withDefaults()

	switch c := c.(type) {
	case *curve.Segment:
		bez, err := curve.NewBezier(c.Value(c.FirstParameter()), c.Value(c.LastParameter()))
		if err != nil {
			return nil, err
		}
		return seqOnce([]*curve.Bezier{bez}), nil

	case *curve.Bezier:
		if c.Degree() > opts.MaxDegree || c.IsRational() {
			bs, err := curve.ToBSpline(c)
			if err != nil {
				return nil, err
			}
			return BSplineToBeziers(bs, opts)
		}
		return seqOnce([]*curve.Bezier{c}), nil

	case *curve.BSpline:
		return BSplineToBeziers(c, opts)

	default:
		bs, err := curve.ToBSpline(c)
		if err != nil {
			return nil, err
		}
		return BSplineToBeziers(bs, opts)
	}
}

// BSplineToBeziers decomposes a B-spline into Bezier segments. A
// non-rational curve of degree at most 3 splits exactly at its
// internal knots, with the arc count fixed by the knot multiplicity
// structure. Higher-degree or rational curves are approximated within
// opts.Tolerance using at most opts.MaxSegments pieces.
//
// The returned sequence is finite and single-pass.
func BSplineToBeziers(b *curve.BSpline, opts Options) (iter.Seq[*curve.Bezier], error) {
	opts = opts.withDefaults()

	if b.Degree() <= 3 && b.Degree() <= opts.MaxDegree && !b.IsRational() {
		return seqOnce(b.BezierArcs()), nil
	}
	segs, err := approximate(b, opts)
	if err != nil {
		return nil, err
	}
	return seqOnce(segs), nil
}

// approxMaxDepth bounds the bisection depth of the approximation
// search; MaxSegments is normally hit first.
const approxMaxDepth = 32

// approximate searches for a piecewise-Bezier replacement of the curve
// with per-piece degree min(3, MaxDegree), sampled deviation within
// Tolerance, and at most MaxSegments pieces.
func approximate(c curve.Curve, opts Options) ([]*curve.Bezier, error) {
	deg := opts.MaxDegree
	if deg > 3 {
		deg = 3
	}
	if deg < 1 {
		return nil, fmt.Errorf("%w: max degree %d leaves no representable segment",
			geom.ErrApproximation, opts.MaxDegree)
	}

	var segs []*curve.Bezier
	var build func(a, b float64, depth int) error
	build = func(a, b float64, depth int) error {
		bez, err := fitSpan(c, a, b, deg)
		if err != nil {
			return err
		}
		if spanDeviation(c, bez, a, b) <= opts.Tolerance {
			if len(segs) >= opts.MaxSegments {
				return fmt.Errorf("%w: more than %d segments needed for tolerance %v",
					geom.ErrApproximation, opts.MaxSegments, opts.Tolerance)
			}
			segs = append(segs, bez)
			return nil
		}
		if depth >= approxMaxDepth {
			return fmt.Errorf("%w: no convergence within tolerance %v on [%v, %v]",
				geom.ErrApproximation, opts.Tolerance, a, b)
		}
		mid := (a + b) / 2
		if err := build(a, mid, depth+1); err != nil {
			return err
		}
		return build(mid, b, depth+1)
	}

	if err := build(c.FirstParameter(), c.LastParameter(), 0); err != nil {
		return nil, err
	}
	return segs, nil
}

// fitSpan builds one Bezier segment of the given degree interpolating
// the curve over [a, b]: a chord for degree 1, a midpoint-fitted
// quadratic for degree 2, a Hermite cubic otherwise.
func fitSpan(c curve.Curve, a, b float64, deg int) (*curve.Bezier, error) {
	p0 := c.Value(a)
	p1 := c.Value(b)
	switch deg {
	case 1:
		return curve.NewBezier(p0, p1)
	case 2:
		m := c.Value((a + b) / 2)
		ctrl := m.MulScalar(2).Sub(p0.Add(p1).MulScalar(0.5))
		return curve.NewBezier(p0, ctrl, p1)
	default:
		h := (b - a) / 3
		d0 := derivative(c, a)
		d1 := derivative(c, b)
		return curve.NewBezier(p0, p0.Add(d0.MulScalar(h)), p1.Sub(d1.MulScalar(h)), p1)
	}
}

// spanDeviation samples the deviation between the segment and the
// curve over [a, b].
func spanDeviation(c curve.Curve, bez *curve.Bezier, a, b float64) float64 {
	const samples = 16
	var worst float64
	for k := 1; k < samples; k++ {
		t := float64(k) / samples
		d := bez.Value(t).Sub(c.Value(a + (b-a)*t)).Length()
		if d > worst {
			worst = d
		}
	}
	return worst
}

// derivative estimates the curve derivative by central differences,
// one-sided at the domain ends.
func derivative(c curve.Curve, u float64) geom.Pnt {
	first, last := c.FirstParameter(), c.LastParameter()
	h := (last - first) * 1e-6
	lo := math.Max(first, u-h)
	hi := math.Min(last, u+h)
	return c.Value(hi).Sub(c.Value(lo)).DivScalar(hi - lo)
}

// seqOnce wraps a computed decomposition as a finite single-pass
// sequence.
func seqOnce[T any](items []T) iter.Seq[T] {
	consumed := false
	return func(yield func(T) bool) {
		if consumed {
			return
		}
		consumed = true
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}
