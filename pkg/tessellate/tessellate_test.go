package tessellate

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/chazu/loft/pkg/curve"
	"github.com/chazu/loft/pkg/geom"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func collect(t *testing.T, seq func(yield func(*curve.Bezier) bool)) []*curve.Bezier {
	t.Helper()
	var out []*curve.Bezier
	for b := range seq {
		out = append(out, b)
	}
	return out
}

// requireBounded checks the output contract shared by every
// decomposition: bounded degree, never rational.
func requireBounded(t *testing.T, segs []*curve.Bezier, maxDegree int) {
	t.Helper()
	require.NotEmpty(t, segs)
	for _, s := range segs {
		require.LessOrEqual(t, s.Degree(), maxDegree)
		require.False(t, s.IsRational())
	}
}

func TestToBeziersLine(t *testing.T) {
	s, err := curve.NewSegment(geom.XYZ(0, 0, 0), geom.XYZ(10, 0, 0))
	require.NoError(t, err)

	seq, err := ToBeziers(s, Options{Tolerance: 1e-6})
	require.NoError(t, err)
	segs := collect(t, seq)

	require.Len(t, segs, 1)
	require.Equal(t, 1, segs[0].Degree())
	require.Empty(t, cmp.Diff(geom.XYZ(0, 0, 0), segs[0].Value(0), approx))
	require.Empty(t, cmp.Diff(geom.XYZ(10, 0, 0), segs[0].Value(1), approx))
}

func TestToBeziersConformingBezierPassesThrough(t *testing.T) {
	b, err := curve.NewBezier(geom.XYZ(0, 0, 0), geom.XYZ(1, 2, 0), geom.XYZ(2, 0, 0))
	require.NoError(t, err)

	seq, err := ToBeziers(b, Options{Tolerance: 1e-6})
	require.NoError(t, err)
	segs := collect(t, seq)

	require.Len(t, segs, 1)
	require.Same(t, b, segs[0])
}

func TestToBeziersHighDegreeBezier(t *testing.T) {
	controls := make([]geom.Pnt, 6)
	for i := range controls {
		controls[i] = geom.XYZ(float64(i), math.Sin(float64(i)), 0)
	}
	b, err := curve.NewBezier(controls...)
	require.NoError(t, err)
	require.Equal(t, 5, b.Degree())

	seq, err := ToBeziers(b, Options{Tolerance: 1e-4})
	require.NoError(t, err)
	segs := collect(t, seq)

	requireBounded(t, segs, DefaultMaxDegree)
	require.Empty(t, cmp.Diff(b.Value(0), segs[0].Value(0), approx))
	require.Empty(t, cmp.Diff(b.Value(1), segs[len(segs)-1].Value(1), approx))
}

func TestToBeziersRationalBezier(t *testing.T) {
	w := math.Sqrt(2) / 2
	b, err := curve.NewRationalBezier(
		[]geom.Pnt{geom.XYZ(1, 0, 0), geom.XYZ(1, 1, 0), geom.XYZ(0, 1, 0)},
		[]float64{1, w, 1},
	)
	require.NoError(t, err)
	require.True(t, b.IsRational())

	seq, err := ToBeziers(b, Options{Tolerance: 1e-4})
	require.NoError(t, err)
	requireBounded(t, collect(t, seq), DefaultMaxDegree)
}

func TestToBeziersCircle(t *testing.T) {
	c, err := curve.NewCircle(5)
	require.NoError(t, err)

	seq, err := ToBeziers(c, Options{Tolerance: 1e-4})
	require.NoError(t, err)
	segs := collect(t, seq)

	requireBounded(t, segs, DefaultMaxDegree)
	require.LessOrEqual(t, len(segs), DefaultMaxSegments)
	require.Empty(t, cmp.Diff(c.Value(c.FirstParameter()), segs[0].Value(0), approx))
	require.Empty(t, cmp.Diff(c.Value(c.LastParameter()), segs[len(segs)-1].Value(1), approx))

	// Adjacent segments join end to start.
	for i := 1; i < len(segs); i++ {
		require.Empty(t, cmp.Diff(segs[i-1].Value(1), segs[i].Value(0), approx))
	}
}

func TestToBeziersDegreeCap(t *testing.T) {
	c, err := curve.NewCircle(1)
	require.NoError(t, err)

	seq, err := ToBeziers(c, Options{Tolerance: 1e-3, MaxDegree: 2})
	require.NoError(t, err)
	requireBounded(t, collect(t, seq), 2)
}

func TestBSplineToBeziersExactSplit(t *testing.T) {
	b, err := curve.NewBSpline(
		[]geom.Pnt{geom.XYZ(0, 0, 0), geom.XYZ(1, 2, 0), geom.XYZ(3, 2, 0), geom.XYZ(4, 0, 0)},
		[]float64{0, 1, 2},
		[]int{3, 1, 3},
		2,
	)
	require.NoError(t, err)

	// Degree 2, non-rational: the arc count follows the knot structure,
	// not the tolerance.
	seq, err := BSplineToBeziers(b, Options{Tolerance: 1e-30})
	require.NoError(t, err)
	segs := collect(t, seq)
	require.Len(t, segs, 2)

	// Zero approximation error at the shared boundary.
	require.Empty(t, cmp.Diff(b.Value(1), segs[0].Value(1), approx))
	require.Empty(t, cmp.Diff(b.Value(1), segs[1].Value(0), approx))
	require.Empty(t, cmp.Diff(b.Value(0), segs[0].Value(0), approx))
	require.Empty(t, cmp.Diff(b.Value(2), segs[1].Value(1), approx))
}

func TestToBeziersSegmentBudget(t *testing.T) {
	c, err := curve.NewCircle(1000)
	require.NoError(t, err)

	// An absurdly tight tolerance with a tiny budget cannot be met.
	_, err = ToBeziers(c, Options{Tolerance: 1e-14, MaxSegments: 2})
	require.ErrorIs(t, err, geom.ErrApproximation)
}

func TestToBeziersSinglePass(t *testing.T) {
	c, err := curve.NewCircle(1)
	require.NoError(t, err)

	seq, err := ToBeziers(c, Options{Tolerance: 1e-3})
	require.NoError(t, err)

	first := 0
	for range seq {
		first++
	}
	require.Positive(t, first)

	second := 0
	for range seq {
		second++
	}
	require.Zero(t, second)
}
