package curve

import (
	"fmt"

	"github.com/chazu/loft/pkg/geom"
)

// Bezier is a Bezier curve of degree len(poles)-1, parameterized over
// [0, 1]. A rational Bezier carries one weight per pole.
type Bezier struct {
	poles   []geom.Pnt
	weights []float64 // nil when non-rational
}

// NewBezier returns the Bezier curve with the given control points.
// Between 2 and MaxDegree+1 control points are required.
func NewBezier(controls ...geom.Pnt) (*Bezier, error) {
	if n := len(controls); n < 2 || n > MaxDegree+1 {
		return nil, fmt.Errorf("%w: bezier curve must have between 2 and %d control points, got %d",
			geom.ErrInvalidGeometry, MaxDegree+1, n)
	}
	poles := make([]geom.Pnt, len(controls))
	copy(poles, controls)
	return &Bezier{poles: poles}, nil
}

// NewRationalBezier returns a weighted Bezier curve. Weights must be
// positive, one per control point; uniform weights collapse to the
// non-rational form.
func NewRationalBezier(controls []geom.Pnt, weights []float64) (*Bezier, error) {
	b, err := NewBezier(controls...)
	if err != nil {
		return nil, err
	}
	if len(weights) != len(controls) {
		return nil, fmt.Errorf("%w: %d weights for %d control points",
			geom.ErrInvalidGeometry, len(weights), len(controls))
	}
	uniform := true
	for _, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: bezier weights must be positive, got %v", geom.ErrInvalidGeometry, w)
		}
		if w != weights[0] {
			uniform = false
		}
	}
	if uniform {
		return b, nil
	}
	b.weights = make([]float64, len(weights))
	copy(b.weights, weights)
	return b, nil
}

// Degree returns the polynomial degree of the curve.
func (b *Bezier) Degree() int { return len(b.poles) - 1 }

// IsRational reports whether the curve carries per-pole weights.
func (b *Bezier) IsRational() bool { return b.weights != nil }

// Poles returns a copy of the control points.
func (b *Bezier) Poles() []geom.Pnt {
	poles := make([]geom.Pnt, len(b.poles))
	copy(poles, b.poles)
	return poles
}

// Weights returns a copy of the weights, nil for non-rational curves.
func (b *Bezier) Weights() []float64 {
	if b.weights == nil {
		return nil
	}
	weights := make([]float64, len(b.weights))
	copy(weights, b.weights)
	return weights
}

func (b *Bezier) Kind() Kind              { return KindBezier }
func (b *Bezier) FirstParameter() float64 { return 0 }
func (b *Bezier) LastParameter() float64  { return 1 }

// Value evaluates the curve by de Casteljau reduction, in homogeneous
// coordinates when the curve is rational.
func (b *Bezier) Value(u float64) geom.Pnt {
	work := make([]hPnt, len(b.poles))
	for i, p := range b.poles {
		work[i] = homogeneous(p, b.weight(i))
	}
	for r := len(work) - 1; r > 0; r-- {
		for i := 0; i < r; i++ {
			work[i] = work[i].lerp(work[i+1], u)
		}
	}
	return work[0].project()
}

func (b *Bezier) weight(i int) float64 {
	if b.weights == nil {
		return 1
	}
	return b.weights[i]
}

// hPnt is a point in homogeneous coordinates (x*w, y*w, z*w, w).
type hPnt [4]float64

func homogeneous(p geom.Pnt, w float64) hPnt {
	return hPnt{p.X * w, p.Y * w, p.Z * w, w}
}

func (h hPnt) lerp(o hPnt, t float64) hPnt {
	var out hPnt
	for i := range h {
		out[i] = h[i] + (o[i]-h[i])*t
	}
	return out
}

func (h hPnt) project() geom.Pnt {
	return geom.Pnt{X: h[0] / h[3], Y: h[1] / h[3], Z: h[2] / h[3]}
}
