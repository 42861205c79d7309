package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/chazu/loft/pkg/geom"
)

// BSpline is a clamped, non-periodic B-spline curve. Knots are stored
// as distinct values with multiplicities; end knots carry multiplicity
// degree+1. A rational B-spline carries one weight per pole.
type BSpline struct {
	poles   []geom.Pnt
	weights []float64 // nil when non-rational
	knots   []float64 // distinct, strictly increasing
	mults   []int
	degree  int
}

// NewBSpline returns the clamped B-spline with the given poles, knot
// values, multiplicities, and degree.
func NewBSpline(poles []geom.Pnt, knots []float64, mults []int, degree int) (*BSpline, error) {
	b := &BSpline{
		poles:  append([]geom.Pnt(nil), poles...),
		knots:  append([]float64(nil), knots...),
		mults:  append([]int(nil), mults...),
		degree: degree,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewRationalBSpline returns a weighted B-spline. Weights must be
// positive, one per pole; uniform weights collapse to the non-rational
// form.
func NewRationalBSpline(poles []geom.Pnt, weights []float64, knots []float64, mults []int, degree int) (*BSpline, error) {
	b, err := NewBSpline(poles, knots, mults, degree)
	if err != nil {
		return nil, err
	}
	if len(weights) != len(poles) {
		return nil, fmt.Errorf("%w: %d weights for %d poles", geom.ErrInvalidGeometry, len(weights), len(poles))
	}
	uniform := true
	for _, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: b-spline weights must be positive, got %v", geom.ErrInvalidGeometry, w)
		}
		if w != weights[0] {
			uniform = false
		}
	}
	if !uniform {
		b.weights = append([]float64(nil), weights...)
	}
	return b, nil
}

func (b *BSpline) validate() error {
	if b.degree < 1 || b.degree > MaxDegree {
		return fmt.Errorf("%w: b-spline degree must be between 1 and %d, got %d",
			geom.ErrInvalidGeometry, MaxDegree, b.degree)
	}
	if len(b.knots) < 2 || len(b.knots) != len(b.mults) {
		return fmt.Errorf("%w: b-spline needs matching knots and multiplicities", geom.ErrInvalidGeometry)
	}
	for i := 1; i < len(b.knots); i++ {
		if b.knots[i] <= b.knots[i-1] {
			return fmt.Errorf("%w: b-spline knots must be strictly increasing", geom.ErrInvalidGeometry)
		}
	}
	last := len(b.mults) - 1
	if b.mults[0] != b.degree+1 || b.mults[last] != b.degree+1 {
		return fmt.Errorf("%w: b-spline must be clamped (end multiplicity %d)",
			geom.ErrInvalidGeometry, b.degree+1)
	}
	total := 0
	for i, m := range b.mults {
		if i > 0 && i < last && (m < 1 || m > b.degree) {
			return fmt.Errorf("%w: interior knot multiplicity %d outside [1, %d]",
				geom.ErrInvalidGeometry, m, b.degree)
		}
		total += m
	}
	if total != len(b.poles)+b.degree+1 {
		return fmt.Errorf("%w: b-spline has %d poles for %d knots at degree %d",
			geom.ErrInvalidGeometry, len(b.poles), total, b.degree)
	}
	return nil
}

// Degree returns the polynomial degree of the curve.
func (b *BSpline) Degree() int { return b.degree }

// IsRational reports whether the curve carries per-pole weights.
func (b *BSpline) IsRational() bool { return b.weights != nil }

// Poles returns a copy of the control points.
func (b *BSpline) Poles() []geom.Pnt { return append([]geom.Pnt(nil), b.poles...) }

// Weights returns a copy of the weights, nil for non-rational curves.
func (b *BSpline) Weights() []float64 {
	if b.weights == nil {
		return nil
	}
	return append([]float64(nil), b.weights...)
}

// Knots returns a copy of the distinct knot values.
func (b *BSpline) Knots() []float64 { return append([]float64(nil), b.knots...) }

// Multiplicities returns a copy of the knot multiplicities.
func (b *BSpline) Multiplicities() []int { return append([]int(nil), b.mults...) }

func (b *BSpline) Kind() Kind              { return KindBSpline }
func (b *BSpline) FirstParameter() float64 { return b.knots[0] }
func (b *BSpline) LastParameter() float64  { return b.knots[len(b.knots)-1] }

// flatKnots expands the distinct knots by multiplicity.
func (b *BSpline) flatKnots() []float64 {
	flat := make([]float64, 0, len(b.poles)+b.degree+1)
	for i, k := range b.knots {
		for j := 0; j < b.mults[i]; j++ {
			flat = append(flat, k)
		}
	}
	return flat
}

// findSpan returns the index s in [degree, len(poles)-1] such that
// flat[s] <= u < flat[s+1], with u clamped into the domain.
func (b *BSpline) findSpan(flat []float64, u float64) int {
	lo, hi := b.degree, len(b.poles)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if flat[mid] <= u {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Value evaluates the curve by the de Boor recurrence, in homogeneous
// coordinates when the curve is rational.
func (b *BSpline) Value(u float64) geom.Pnt {
	u = math.Max(b.FirstParameter(), math.Min(b.LastParameter(), u))
	flat := b.flatKnots()
	s := b.findSpan(flat, u)

	d := make([]hPnt, b.degree+1)
	for j := 0; j <= b.degree; j++ {
		i := s - b.degree + j
		d[j] = homogeneous(b.poles[i], b.weight(i))
	}
	for r := 1; r <= b.degree; r++ {
		for j := b.degree; j >= r; j-- {
			i := s - b.degree + j
			den := flat[i+b.degree-r+1] - flat[i]
			var alpha float64
			if den != 0 {
				alpha = (u - flat[i]) / den
			}
			d[j] = d[j-1].lerp(d[j], alpha)
		}
	}
	return d[b.degree].project()
}

func (b *BSpline) weight(i int) float64 {
	if b.weights == nil {
		return 1
	}
	return b.weights[i]
}

// knotEpsilon is the parameter-space equality slack for knot values.
func (b *BSpline) knotEpsilon() float64 {
	return math.Max(1e-12, (b.LastParameter()-b.FirstParameter())*1e-12)
}

// multiplicityOf returns the multiplicity of u in the knot set, 0 when
// u is not a knot.
func (b *BSpline) multiplicityOf(u float64) int {
	eps := b.knotEpsilon()
	for i, k := range b.knots {
		if math.Abs(k-u) <= eps {
			return b.mults[i]
		}
	}
	return 0
}

// insertKnot returns a new curve with u inserted once (Boehm's
// algorithm on homogeneous poles). The curve shape is unchanged.
func (b *BSpline) insertKnot(u float64) *BSpline {
	flat := b.flatKnots()
	s := b.findSpan(flat, u)

	hp := make([]hPnt, len(b.poles))
	for i, p := range b.poles {
		hp[i] = homogeneous(p, b.weight(i))
	}
	out := make([]hPnt, len(b.poles)+1)
	for i := 0; i <= s-b.degree; i++ {
		out[i] = hp[i]
	}
	for i := s - b.degree + 1; i <= s; i++ {
		den := flat[i+b.degree] - flat[i]
		var alpha float64
		if den != 0 {
			alpha = (u - flat[i]) / den
		}
		out[i] = hp[i-1].lerp(hp[i], alpha)
	}
	for i := s + 1; i < len(out); i++ {
		out[i] = hp[i-1]
	}

	next := &BSpline{degree: b.degree}
	next.poles = make([]geom.Pnt, len(out))
	if b.weights != nil {
		next.weights = make([]float64, len(out))
	}
	for i, h := range out {
		next.poles[i] = h.project()
		if next.weights != nil {
			next.weights[i] = h[3]
		}
	}

	// Merge u into the distinct knot set.
	eps := b.knotEpsilon()
	next.knots = append([]float64(nil), b.knots...)
	next.mults = append([]int(nil), b.mults...)
	idx := sort.SearchFloat64s(next.knots, u)
	switch {
	case idx < len(next.knots) && math.Abs(next.knots[idx]-u) <= eps:
		next.mults[idx]++
	case idx > 0 && math.Abs(next.knots[idx-1]-u) <= eps:
		next.mults[idx-1]++
	default:
		next.knots = append(next.knots[:idx], append([]float64{u}, next.knots[idx:]...)...)
		next.mults = append(next.mults[:idx], append([]int{1}, next.mults[idx:]...)...)
	}
	return next
}

// withFullMultiplicity raises every interior knot (and any extra
// in-domain parameters) to multiplicity degree, so that each span is a
// Bezier arc.
func (b *BSpline) withFullMultiplicity(extra ...float64) *BSpline {
	out := b
	eps := b.knotEpsilon()
	for _, u := range extra {
		if u <= b.FirstParameter()+eps || u >= b.LastParameter()-eps {
			continue
		}
		for out.multiplicityOf(u) < out.degree {
			out = out.insertKnot(u)
		}
	}
	for i := 1; i < len(out.knots)-1; i++ {
		for out.mults[i] < out.degree {
			out = out.insertKnot(out.knots[i])
		}
	}
	return out
}

// bezierSpan is one Bezier arc of a fully-inserted B-spline together
// with its parameter range on the original curve.
type bezierSpan struct {
	bez    *Bezier
	u0, u1 float64
}

// bezierSpans slices a fully-inserted curve into its Bezier arcs.
func (b *BSpline) bezierSpans() []bezierSpan {
	spans := make([]bezierSpan, 0, len(b.knots)-1)
	idx := 0
	for k := 0; k+1 < len(b.knots); k++ {
		arc := &Bezier{poles: append([]geom.Pnt(nil), b.poles[idx:idx+b.degree+1]...)}
		if b.weights != nil {
			arc.weights = append([]float64(nil), b.weights[idx:idx+b.degree+1]...)
		}
		spans = append(spans, bezierSpan{bez: arc, u0: b.knots[k], u1: b.knots[k+1]})
		idx += b.degree
	}
	return spans
}

// BezierArcs splits the curve exactly into its constituent Bezier
// arcs at the internal knot boundaries. The arc count is determined by
// the knot multiplicity structure; no approximation is involved.
func (b *BSpline) BezierArcs() []*Bezier {
	spans := b.withFullMultiplicity().bezierSpans()
	arcs := make([]*Bezier, len(spans))
	for i, s := range spans {
		arcs[i] = s.bez
	}
	return arcs
}

// Segment returns the exact sub-curve over [u1, u2], preserving the
// original parameterization.
func (b *BSpline) Segment(u1, u2 float64) (*BSpline, error) {
	eps := b.knotEpsilon()
	if u1 < b.FirstParameter()-eps || u2 > b.LastParameter()+eps || u2-u1 <= eps {
		return nil, fmt.Errorf("%w: segment range [%v, %v] outside curve domain [%v, %v]",
			geom.ErrInvalidGeometry, u1, u2, b.FirstParameter(), b.LastParameter())
	}

	full := b.withFullMultiplicity(u1, u2)
	var kept []bezierSpan
	for _, s := range full.bezierSpans() {
		if s.u0 >= u1-eps && s.u1 <= u2+eps {
			kept = append(kept, s)
		}
	}

	out := &BSpline{degree: b.degree}
	out.knots = []float64{kept[0].u0}
	out.mults = []int{b.degree + 1}
	out.poles = append(out.poles, kept[0].bez.poles...)
	if kept[0].bez.weights != nil {
		out.weights = append(out.weights, kept[0].bez.weights...)
	}
	for _, s := range kept[1:] {
		out.knots = append(out.knots, s.u0)
		out.mults = append(out.mults, b.degree)
		out.poles = append(out.poles, s.bez.poles[1:]...)
		if s.bez.weights != nil {
			out.weights = append(out.weights, s.bez.weights[1:]...)
		}
	}
	out.knots = append(out.knots, kept[len(kept)-1].u1)
	out.mults = append(out.mults, b.degree+1)
	return out, nil
}
