package curve

import (
	"fmt"
	"math"

	"github.com/chazu/loft/pkg/geom"
)

// ToBSpline converts any recognized curve kind to an exact B-spline
// representation. Circles and ellipses become rational quadratic
// B-splines; lines and Beziers convert losslessly; trimmed curves
// convert their basis and keep only the trimmed range.
func ToBSpline(c Curve) (*BSpline, error) {
	switch c := c.(type) {
	case *BSpline:
		return c, nil
	case *Segment:
		return NewBSpline([]geom.Pnt{c.P0, c.P1}, []float64{0, 1}, []int{2, 2}, 1)
	case *Bezier:
		d := c.Degree()
		if c.IsRational() {
			return NewRationalBSpline(c.Poles(), c.Weights(), []float64{0, 1}, []int{d + 1, d + 1}, d)
		}
		return NewBSpline(c.Poles(), []float64{0, 1}, []int{d + 1, d + 1}, d)
	case *Circle:
		return conicToBSpline(c.conic, c.Radius, c.Radius)
	case *Ellipse:
		return conicToBSpline(c.conic, c.MajorRadius, c.MinorRadius)
	case *Trimmed:
		return trimmedToBSpline(c)
	default:
		return nil, fmt.Errorf("%w: cannot convert %s curve to b-spline", geom.ErrInvalidGeometry, c.Kind())
	}
}

func trimmedToBSpline(t *Trimmed) (*BSpline, error) {
	// Conic bases keep their angular parameterization, so the trim
	// range maps directly onto a sub-arc.
	switch basis := t.Basis.(type) {
	case *Circle:
		return conicToBSpline(basis.conic.sub(t.U1, t.U2), basis.Radius, basis.Radius)
	case *Ellipse:
		return conicToBSpline(basis.conic.sub(t.U1, t.U2), basis.MajorRadius, basis.MinorRadius)
	}
	bs, err := ToBSpline(t.Basis)
	if err != nil {
		return nil, err
	}
	return bs.Segment(t.U1, t.U2)
}

// sub restricts the conic to the parameter range [u1, u2].
func (c conic) sub(u1, u2 float64) conic {
	out := c
	out.start = c.angle(u1)
	out.sweep = u2 - u1
	return out
}

// conicToBSpline builds the exact rational quadratic B-spline of a
// circular or elliptical arc: one weighted quadratic arc per quarter
// turn, joined at interior knots of multiplicity two.
func conicToBSpline(c conic, sx, sy float64) (*BSpline, error) {
	n := int(math.Ceil(c.sweep/(math.Pi/2) - 1e-9))
	if n < 1 {
		n = 1
	}
	du := c.sweep / float64(n)

	poles := make([]geom.Pnt, 0, 2*n+1)
	weights := make([]float64, 0, 2*n+1)
	knots := make([]float64, 0, n+1)
	mults := make([]int, 0, n+1)

	for i := 0; i < n; i++ {
		ua, ub := float64(i)*du, float64(i+1)*du
		ta, tb := c.angle(ua), c.angle(ub)
		mid := (ta + tb) / 2
		w := math.Cos((tb - ta) / 2)

		if i == 0 {
			sin, cos := math.Sincos(ta)
			poles = append(poles, c.at(cos, sin, sx, sy))
			weights = append(weights, 1)
			knots = append(knots, 0)
			mults = append(mults, 3)
		}
		sinM, cosM := math.Sincos(mid)
		poles = append(poles, c.at(cosM/w, sinM/w, sx, sy))
		weights = append(weights, w)

		sinB, cosB := math.Sincos(tb)
		poles = append(poles, c.at(cosB, sinB, sx, sy))
		weights = append(weights, 1)
		knots = append(knots, ub)
		if i == n-1 {
			mults = append(mults, 3)
		} else {
			mults = append(mults, 2)
		}
	}
	return NewRationalBSpline(poles, weights, knots, mults, 2)
}
