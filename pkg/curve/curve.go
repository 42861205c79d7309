package curve

import "github.com/chazu/loft/pkg/geom"

// MaxDegree is the highest polynomial degree a Bezier or B-spline
// curve may have.
const MaxDegree = 25

// Kind tags the recognized curve types. The set is closed: dispatch on
// it exhaustively, with KindOther as the generic fallback.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindEllipse
	KindBezier
	KindBSpline
	KindOther
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindBezier:
		return "bezier"
	case KindBSpline:
		return "bspline"
	default:
		return "other"
	}
}

// Curve is a bounded parametric curve. Value must be defined over the
// closed interval [FirstParameter, LastParameter].
type Curve interface {
	Kind() Kind
	FirstParameter() float64
	LastParameter() float64
	Value(u float64) geom.Pnt
}
