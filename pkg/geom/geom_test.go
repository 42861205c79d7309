package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsPnt(t *testing.T) {
	p, err := AsPnt([]float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, XYZ(1, 2, 3), p)

	p, err = AsPnt([]float64{4, 5})
	require.NoError(t, err)
	require.Equal(t, XYZ(4, 5, 0), p)

	_, err = AsPnt([]float64{1})
	require.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = AsPnt(nil)
	require.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestAsDir(t *testing.T) {
	d, err := AsDir([]float64{0, 0, 10})
	require.NoError(t, err)
	require.InDelta(t, 1.0, d.Length(), 1e-12)
	require.InDelta(t, 1.0, d.Z, 1e-12)

	_, err = AsDir([]float64{0, 0, 0})
	require.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestCoincident(t *testing.T) {
	a := XYZ(1, 1, 1)
	require.True(t, Coincident(a, XYZ(1, 1, 1+1e-9), Tolerance))
	require.False(t, Coincident(a, XYZ(1, 1, 1.1), Tolerance))
}

func TestBox(t *testing.T) {
	var b Box
	require.True(t, b.IsEmpty())
	require.Equal(t, 0.0, b.Diagonal())
	require.False(t, b.Contains(XYZ(0, 0, 0), 0))

	b = NewBox(XYZ(0, 0, 0), XYZ(3, 4, 0))
	require.False(t, b.IsEmpty())
	require.InDelta(t, 5.0, b.Diagonal(), 1e-12)
	require.True(t, b.Contains(XYZ(1, 1, 0), 0))
	require.False(t, b.Contains(XYZ(1, 1, 1), 0))
	require.Equal(t, XYZ(1.5, 2, 0), b.Center())

	u := b.Union(NewBox(XYZ(-1, 0, 0)))
	require.Equal(t, XYZ(-1, 0, 0), u.Min)
	require.Equal(t, XYZ(3, 4, 0), u.Max)
}

func TestFitPlaneCoplanar(t *testing.T) {
	pts := []Pnt{XYZ(0, 0, 2), XYZ(1, 0, 2), XYZ(0, 1, 2), XYZ(5, -3, 2)}
	pl, ok := FitPlane(pts, 1e-9)
	require.True(t, ok)
	for _, p := range pts {
		require.InDelta(t, 0, pl.Distance(p), 1e-9)
	}
}

func TestFitPlaneNonCoplanar(t *testing.T) {
	pts := []Pnt{XYZ(0, 0, 0), XYZ(1, 0, 0), XYZ(0, 1, 0), XYZ(0, 0, 1)}
	_, ok := FitPlane(pts, 1e-9)
	require.False(t, ok)
}

func TestFitPlaneDegenerate(t *testing.T) {
	// Collinear points fit trivially.
	pts := []Pnt{XYZ(0, 0, 0), XYZ(1, 0, 0), XYZ(2, 0, 0)}
	pl, ok := FitPlane(pts, 1e-9)
	require.True(t, ok)
	for _, p := range pts {
		require.InDelta(t, 0, pl.Distance(p), 1e-9)
	}

	_, ok = FitPlane(nil, 1e-9)
	require.True(t, ok)
}

func TestPlaneProject(t *testing.T) {
	pl := NewPlane(XYZ(0, 0, 5), Dir{Z: 1})
	u, v := pl.Project(XYZ(2, 3, 5))
	// The in-plane frame is orthonormal, so projected distances are
	// preserved whatever the axis orientation.
	require.InDelta(t, 13, u*u+v*v, 1e-9)
	require.InDelta(t, 0, pl.Distance(XYZ(2, 3, 5)), 1e-12)
}
