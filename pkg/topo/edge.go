package topo

import (
	"fmt"

	"github.com/chazu/loft/pkg/curve"
	"github.com/chazu/loft/pkg/geom"
)

// Edge is a bounded span of a curve with an orientation. A reversed
// edge traverses the same span from last parameter to first.
type Edge struct {
	curve       curve.Curve
	first, last float64
	reversed    bool
}

// NewEdge spans the curve's full parameter domain.
func NewEdge(c curve.Curve) Edge {
	return Edge{curve: c, first: c.FirstParameter(), last: c.LastParameter()}
}

// NewEdgeOn spans the sub-range [u1, u2] of the curve's domain.
func NewEdgeOn(c curve.Curve, u1, u2 float64) (Edge, error) {
	if u1 < c.FirstParameter() || u2 > c.LastParameter() || u1 >= u2 {
		return Edge{}, fmt.Errorf("%w: edge range [%v, %v] outside curve domain [%v, %v]",
			geom.ErrInvalidGeometry, u1, u2, c.FirstParameter(), c.LastParameter())
	}
	return Edge{curve: c, first: u1, last: u2}, nil
}

// Curve returns the underlying untrimmed curve.
func (e Edge) Curve() curve.Curve { return e.curve }

// Reversed returns the edge traversed in the opposite direction.
func (e Edge) Reversed() Edge {
	e.reversed = !e.reversed
	return e
}

// Start returns the edge's first point in traversal order.
func (e Edge) Start() geom.Pnt {
	if e.reversed {
		return e.curve.Value(e.last)
	}
	return e.curve.Value(e.first)
}

// End returns the edge's last point in traversal order.
func (e Edge) End() geom.Pnt {
	if e.reversed {
		return e.curve.Value(e.first)
	}
	return e.curve.Value(e.last)
}

// spanCurve returns the curve restricted to the edge's range,
// ignoring orientation.
func (e Edge) spanCurve() curve.Curve {
	if e.first == e.curve.FirstParameter() && e.last == e.curve.LastParameter() {
		return e.curve
	}
	t, err := curve.NewTrimmed(e.curve, e.first, e.last)
	if err != nil {
		// The range was validated at construction.
		return e.curve
	}
	return t
}

// withStart moves the edge's start point. Only straight segments can
// be rebuilt; other curve kinds are returned unchanged.
func (e Edge) withStart(p geom.Pnt) Edge {
	return e.rebuildLine(p, e.End())
}

// withEnd moves the edge's end point, with the same segment-only
// restriction as withStart.
func (e Edge) withEnd(p geom.Pnt) Edge {
	return e.rebuildLine(e.Start(), p)
}

// rebuildLine replaces a segment edge with a new segment between the
// given traversal-order endpoints.
func (e Edge) rebuildLine(start, end geom.Pnt) Edge {
	if e.curve.Kind() != curve.KindLine {
		return e
	}
	seg, err := curve.NewSegment(start, end)
	if err != nil {
		return e
	}
	return NewEdge(seg)
}
