package topo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chazu/loft/pkg/curve"
	"github.com/chazu/loft/pkg/geom"
)

func circleWire(t *testing.T, radius float64, opts ...curve.ConicOption) Wire {
	t.Helper()
	c, err := curve.NewCircle(radius, opts...)
	require.NoError(t, err)
	return NewWire(NewEdge(c))
}

func TestResolveEmpty(t *testing.T) {
	faces, warnings, err := NewResolver().Resolve(nil)
	require.NoError(t, err)
	require.Empty(t, faces)
	require.Empty(t, warnings)
}

func TestResolveSingleWire(t *testing.T) {
	faces, warnings, err := NewResolver().Resolve([]Wire{circleWire(t, 2)})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, faces, 1)
	require.Empty(t, faces[0].Holes())
}

func TestResolveConcentricRings(t *testing.T) {
	// Outer boundary, hole, and an island inside the hole.
	wires := []Wire{
		circleWire(t, 10),
		circleWire(t, 7),
		circleWire(t, 3),
	}

	faces, warnings, err := NewResolver().Resolve(wires)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, faces, 2)

	// The radius-10 face carries the radius-7 hole.
	require.Empty(t, cmp.Diff(geom.XYZ(10, 0, 0), faces[0].Outer().Start(), approx))
	require.Len(t, faces[0].Holes(), 1)
	require.Empty(t, cmp.Diff(geom.XYZ(7, 0, 0), faces[0].Holes()[0].Start(), approx))

	// The island is its own hole-less face.
	require.Empty(t, cmp.Diff(geom.XYZ(3, 0, 0), faces[1].Outer().Start(), approx))
	require.Empty(t, faces[1].Holes())
}

func TestResolveDisjointSquares(t *testing.T) {
	wires := []Wire{
		closedSquare(t, 0, 0, 1),
		closedSquare(t, 3, 0, 1),
	}

	faces, warnings, err := NewResolver().Resolve(wires)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, faces, 2)
	for _, f := range faces {
		require.Empty(t, f.Holes())
	}
}

func TestResolveNestedSquares(t *testing.T) {
	wires := []Wire{
		closedSquare(t, 0, 0, 10),
		closedSquare(t, 2, 2, 6),
	}

	faces, warnings, err := NewResolver().Resolve(wires)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, faces, 1)
	require.Len(t, faces[0].Holes(), 1)
	require.Empty(t, cmp.Diff(geom.XYZ(0, 0, 0), faces[0].Outer().Start(), approx))
	require.Empty(t, cmp.Diff(geom.XYZ(2, 2, 0), faces[0].Holes()[0].Start(), approx))
}

func TestResolveClosesOpenWires(t *testing.T) {
	faces, warnings, err := NewResolver().Resolve([]Wire{
		openSquare(t, 0, 0),
		openSquare(t, 5, 0),
	})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, faces, 2)
	for _, f := range faces {
		require.True(t, f.Outer().IsClosed(geom.Tolerance))
	}
}

func TestResolveNonCoplanar(t *testing.T) {
	offset := circleWire(t, 2, curve.WithCenter(geom.XYZ(0, 0, 5)))
	_, _, err := NewResolver().Resolve([]Wire{circleWire(t, 2), offset})
	require.ErrorIs(t, err, geom.ErrNonCoplanar)
}

func TestResolveTiltedPlane(t *testing.T) {
	// Coplanarity is about a shared plane, not the XY plane.
	normal, err := geom.AsDir([]float64{1, 1, 1})
	require.NoError(t, err)

	wires := []Wire{
		circleWire(t, 10, curve.WithNormal(normal)),
		circleWire(t, 4, curve.WithNormal(normal)),
	}
	faces, warnings, err := NewResolver().Resolve(wires)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, faces, 1)
	require.Len(t, faces[0].Holes(), 1)
}

func TestAssembleInvalidNestingFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewResolver(WithLogger(zap.New(core)))

	closed := []Wire{closedSquare(t, 0, 0, 1), closedSquare(t, 3, 0, 1)}

	// A mutual-containment cycle cannot happen for valid input; feed
	// the assembler one directly to exercise the fallback.
	faces, warnings, err := r.assemble(closed, [][]int{{1}, {0}})
	require.NoError(t, err)
	require.Len(t, faces, 2)
	for _, f := range faces {
		require.Empty(t, f.Holes())
	}
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		require.Contains(t, w.Message, "invalid nesting")
	}
	require.Equal(t, 2, logs.FilterMessage("invalid nesting, emitting simple faces").Len())
}

func TestNearestAncestorPrefersDeepest(t *testing.T) {
	// Wire 3 sits inside 0, 1 and 2; wire 2 is the deepest container.
	ancestors := [][]int{
		nil,
		{0},
		{0, 1},
		{0, 1, 2},
	}
	require.Equal(t, 2, nearestAncestor(ancestors, 3))
}
