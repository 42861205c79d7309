package curve

import (
	"fmt"

	"github.com/chazu/loft/pkg/geom"
)

// Trimmed restricts a basis curve to a sub-range of its parameter
// domain, keeping the basis parameterization.
type Trimmed struct {
	Basis  Curve
	U1, U2 float64
}

// NewTrimmed returns the basis curve restricted to [u1, u2].
func NewTrimmed(basis Curve, u1, u2 float64) (*Trimmed, error) {
	if u1 < basis.FirstParameter() || u2 > basis.LastParameter() || u1 >= u2 {
		return nil, fmt.Errorf("%w: trim range [%v, %v] outside curve domain [%v, %v]",
			geom.ErrInvalidGeometry, u1, u2, basis.FirstParameter(), basis.LastParameter())
	}
	return &Trimmed{Basis: basis, U1: u1, U2: u2}, nil
}

func (t *Trimmed) Kind() Kind              { return KindOther }
func (t *Trimmed) FirstParameter() float64 { return t.U1 }
func (t *Trimmed) LastParameter() float64  { return t.U2 }

func (t *Trimmed) Value(u float64) geom.Pnt { return t.Basis.Value(u) }
