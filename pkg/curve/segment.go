package curve

import (
	"fmt"

	"github.com/chazu/loft/pkg/geom"
)

// Segment is a straight line segment parameterized over [0, 1].
type Segment struct {
	P0, P1 geom.Pnt
}

// NewSegment returns the segment from start to end. Coincident
// endpoints (within the default tolerance) are rejected.
func NewSegment(start, end geom.Pnt) (*Segment, error) {
	if geom.Coincident(start, end, geom.Tolerance) {
		return nil, fmt.Errorf("%w: could not make segment from coincident points %v, %v",
			geom.ErrInvalidGeometry, start, end)
	}
	return &Segment{P0: start, P1: end}, nil
}

func (s *Segment) Kind() Kind              { return KindLine }
func (s *Segment) FirstParameter() float64 { return 0 }
func (s *Segment) LastParameter() float64  { return 1 }

// Value linearly interpolates between the endpoints.
func (s *Segment) Value(u float64) geom.Pnt {
	return s.P0.Add(s.P1.Sub(s.P0).MulScalar(u))
}
