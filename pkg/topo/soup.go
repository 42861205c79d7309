package topo

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/lvlath/core"
	"go.uber.org/zap"

	"github.com/chazu/loft/pkg/geom"
)

// DefaultDeflection bounds the sampling error of the polylines used
// for coplanarity and containment testing.
const DefaultDeflection = 1e-3

// Warning reports a non-fatal defect found while resolving a wire
// soup. Wires holds indexes into the Resolve input.
type Warning struct {
	Message string
	Wires   []int
}

// Resolver partitions an unordered collection of coplanar,
// non-intersecting closed loops into faces with correctly nested
// holes.
type Resolver struct {
	tol        float64
	deflection float64
	log        *zap.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTolerance sets the coincidence tolerance used for wire closure
// and coplanarity.
func WithTolerance(tol float64) ResolverOption {
	return func(r *Resolver) { r.tol = tol }
}

// WithDeflection sets the sampling deflection for containment tests.
func WithDeflection(d float64) ResolverOption {
	return func(r *Resolver) { r.deflection = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) ResolverOption {
	return func(r *Resolver) { r.log = log }
}

// NewResolver returns a Resolver with the default tolerance,
// deflection, and a no-op logger.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		tol:        geom.Tolerance,
		deflection: DefaultDeflection,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve partitions the wires into faces. Wires at even containment
// depth become outer boundaries; wires at odd depth become holes of
// their nearest ancestor. An empty input yields an empty output.
// Inconsistent nesting degrades to hole-less faces with a Warning
// instead of failing.
func (r *Resolver) Resolve(wires []Wire) ([]Face, []Warning, error) {
	if len(wires) == 0 {
		return nil, nil, nil
	}

	samples := make([][]geom.Pnt, len(wires))
	for i, w := range wires {
		pts, err := w.samplePoints(r.deflection)
		if err != nil {
			return nil, nil, fmt.Errorf("sampling wire %d: %w", i, err)
		}
		samples[i] = pts
	}
	plane, err := r.fitCommonPlane(samples)
	if err != nil {
		return nil, nil, err
	}

	closed := make([]Wire, len(wires))
	for i, w := range wires {
		cw, err := w.Close(r.tol)
		if err != nil {
			return nil, nil, fmt.Errorf("closing wire %d: %w", i, err)
		}
		closed[i] = cw
	}

	if len(closed) < 2 {
		return []Face{NewFace(closed[0])}, nil, nil
	}

	polys := make([][][2]float64, len(closed))
	for i, w := range closed {
		pts, err := w.samplePoints(r.deflection)
		if err != nil {
			return nil, nil, fmt.Errorf("sampling wire %d: %w", i, err)
		}
		poly := make([][2]float64, len(pts))
		for k, p := range pts {
			u, v := plane.Project(p)
			poly[k] = [2]float64{u, v}
		}
		polys[i] = poly
	}

	ancestors, err := r.containmentAncestors(polys)
	if err != nil {
		return nil, nil, err
	}
	return r.assemble(closed, ancestors)
}

// fitCommonPlane fits one plane through every sampled point, with the
// coplanarity slack scaled to the overall extent of the input.
func (r *Resolver) fitCommonPlane(samples [][]geom.Pnt) (geom.Plane, error) {
	var all []geom.Pnt
	for _, pts := range samples {
		all = append(all, pts...)
	}
	eps := math.Max(r.tol, geom.NewBox(all...).Diagonal()*1e-7)
	plane, ok := geom.FitPlane(all, eps)
	if !ok {
		return geom.Plane{}, fmt.Errorf("%w: %d wires do not share a plane within %v",
			geom.ErrNonCoplanar, len(samples), eps)
	}
	return plane, nil
}

// containmentAncestors records, for each wire, the set of wires whose
// interior fully contains it. The wires are non-intersecting, so one
// representative boundary point decides full containment.
func (r *Resolver) containmentAncestors(polys [][][2]float64) ([][]int, error) {
	g := core.NewGraph(core.WithDirected(true))
	for i := range polys {
		if err := g.AddVertex(wireVertexID(i)); err != nil {
			return nil, fmt.Errorf("building containment graph: %w", err)
		}
	}
	for i := range polys {
		for j := range polys {
			if i == j || len(polys[i]) == 0 {
				continue
			}
			if windingNumber(polys[j], polys[i][0]) != 0 {
				if _, err := g.AddEdge(wireVertexID(i), wireVertexID(j), 0); err != nil {
					return nil, fmt.Errorf("building containment graph: %w", err)
				}
			}
		}
	}

	ancestors := make([][]int, len(polys))
	for i := range polys {
		ids, err := g.NeighborIDs(wireVertexID(i))
		if err != nil {
			return nil, fmt.Errorf("building containment graph: %w", err)
		}
		for _, id := range ids {
			j, err := wireVertexIndex(id)
			if err != nil {
				return nil, err
			}
			ancestors[i] = append(ancestors[i], j)
		}
		sort.Ints(ancestors[i])
	}
	return ancestors, nil
}

// assemble applies the depth-parity rule: even depth wires open new
// faces, odd depth wires become holes of their deepest ancestor.
func (r *Resolver) assemble(closed []Wire, ancestors [][]int) ([]Face, []Warning, error) {
	type group struct {
		outers []int
		inners []int
	}
	groups := make(map[int]*group)
	grp := func(i int) *group {
		g, ok := groups[i]
		if !ok {
			g = &group{}
			groups[i] = g
		}
		return g
	}

	for i := range closed {
		if len(ancestors[i])%2 == 1 {
			parent := nearestAncestor(ancestors, i)
			g := grp(parent)
			g.inners = append(g.inners, i)
		} else {
			g := grp(i)
			g.outers = append(g.outers, i)
		}
	}

	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var faces []Face
	var warnings []Warning
	for _, k := range keys {
		g := groups[k]
		if len(g.outers) == 1 {
			holes := make([]Wire, len(g.inners))
			for h, idx := range g.inners {
				holes[h] = closed[idx]
			}
			faces = append(faces, NewFace(closed[g.outers[0]], holes...))
			continue
		}
		members := append(append([]int(nil), g.outers...), g.inners...)
		r.log.Warn("invalid nesting, emitting simple faces",
			zap.Int("outer_wires", len(g.outers)),
			zap.Ints("wires", members))
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("invalid nesting (found %d outer wires)", len(g.outers)),
			Wires:   members,
		})
		for _, idx := range members {
			faces = append(faces, NewFace(closed[idx]))
		}
	}
	return faces, warnings, nil
}

// nearestAncestor returns the deepest container of wire i, the one
// with the most ancestors of its own. On a tie the lowest index wins.
func nearestAncestor(ancestors [][]int, i int) int {
	best := ancestors[i][0]
	for _, a := range ancestors[i][1:] {
		if len(ancestors[a]) > len(ancestors[best]) {
			best = a
		}
	}
	return best
}

func wireVertexID(i int) string { return "w" + strconv.Itoa(i) }

func wireVertexIndex(id string) (int, error) {
	i, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0, fmt.Errorf("containment graph vertex %q: %w", id, err)
	}
	return i, nil
}

// windingNumber counts the signed turns of the polygon around p; a
// non-zero result means p is inside.
func windingNumber(poly [][2]float64, p [2]float64) int {
	wn := 0
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		if a[1] <= p[1] {
			if b[1] > p[1] && sideOf(a, b, p) > 0 {
				wn++
			}
		} else if b[1] <= p[1] && sideOf(a, b, p) < 0 {
			wn--
		}
	}
	return wn
}

// sideOf is positive when p lies left of the directed line a to b.
func sideOf(a, b, p [2]float64) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (p[0]-a[0])*(b[1]-a[1])
}
