package topo

import (
	"fmt"

	"github.com/chazu/loft/pkg/curve"
	"github.com/chazu/loft/pkg/geom"
	"github.com/chazu/loft/pkg/tessellate"
)

// Wire is an ordered sequence of edges, each geometrically continuous
// with its successor. Continuity is a construction precondition, not
// verified here.
type Wire struct {
	edges []Edge
}

// NewWire builds a wire from edges in traversal order.
func NewWire(edges ...Edge) Wire {
	return Wire{edges: append([]Edge(nil), edges...)}
}

// WireFromContinuousEdges concatenates edges assumed already
// end-to-end continuous, with no reordering or gap detection. When
// closed is set the result is forced closed via Close.
func WireFromContinuousEdges(edges []Edge, closed bool, tol float64) (Wire, error) {
	w := NewWire(edges...)
	if closed {
		return w.Close(tol)
	}
	return w, nil
}

// Edges returns a copy of the edge sequence.
func (w Wire) Edges() []Edge { return append([]Edge(nil), w.edges...) }

// Len returns the number of edges.
func (w Wire) Len() int { return len(w.edges) }

// Start returns the first edge's start point. The wire must have at
// least one edge.
func (w Wire) Start() geom.Pnt { return w.edges[0].Start() }

// End returns the last edge's end point. The wire must have at least
// one edge.
func (w Wire) End() geom.Pnt { return w.edges[len(w.edges)-1].End() }

// IsClosed reports whether the wire's start and end points coincide
// within tol.
func (w Wire) IsClosed(tol float64) bool {
	if len(w.edges) == 0 {
		return false
	}
	return geom.Coincident(w.Start(), w.End(), tol)
}

// Close guarantees a closed wire. A wire with fewer than 2 edges, or
// one already closed within tol, is returned unchanged. Otherwise a
// straight closing segment from the end point back to the start point
// is appended, and a repair pass merges near-coincident junction
// vertices. Repair is idempotent.
func (w Wire) Close(tol float64) (Wire, error) {
	if len(w.edges) < 2 || w.IsClosed(tol) {
		return w, nil
	}
	seg, err := curve.NewSegment(w.End(), w.Start())
	if err != nil {
		return Wire{}, fmt.Errorf("closing wire: %w", err)
	}
	closed := Wire{edges: append(w.Edges(), NewEdge(seg))}
	return closed.repair(tol), nil
}

// repair snaps junction vertices that are near-coincident but not
// identical to their shared midpoint. Only straight segment edges can
// have an endpoint moved; junctions between two non-segment edges keep
// their sub-tolerance gap.
func (w Wire) repair(tol float64) Wire {
	edges := w.Edges()
	n := len(edges)
	if n == 0 {
		return w
	}
	junctions := n - 1
	if w.IsClosed(tol) {
		junctions = n
	}
	for i := 0; i < junctions; i++ {
		j := (i + 1) % n
		a, b := edges[i].End(), edges[j].Start()
		gap := b.Sub(a).Length()
		if gap == 0 || gap > tol {
			continue
		}
		target := a.Add(b).MulScalar(0.5)
		edges[i] = edges[i].withEnd(target)
		edges[j] = edges[j].withStart(target)
	}
	return Wire{edges: edges}
}

// samplePoints tessellates every edge within deflection and
// concatenates the results in traversal order.
func (w Wire) samplePoints(deflection float64) ([]geom.Pnt, error) {
	var pts []geom.Pnt
	for _, e := range w.edges {
		seq, err := tessellate.ToPolyline(e.spanCurve(), deflection)
		if err != nil {
			return nil, err
		}
		for p := range seq {
			pts = append(pts, p)
		}
	}
	return pts, nil
}

// BoundingBox returns the axis-aligned bounds of the wire sampled
// within deflection.
func (w Wire) BoundingBox(deflection float64) (geom.Box, error) {
	pts, err := w.samplePoints(deflection)
	if err != nil {
		return geom.Box{}, err
	}
	return geom.NewBox(pts...), nil
}
