package geom

import "math"

// Plane is an oriented plane with an in-plane coordinate frame.
type Plane struct {
	Origin Pnt
	Normal Dir
	XDir   Dir
	YDir   Dir
}

// FitPlane fits a plane through the given points. It reports false
// when the points do not all lie within tol of a common plane.
//
// Degenerate inputs (fewer than three points, or all points collinear)
// fit trivially: some plane through them is returned.
func FitPlane(points []Pnt, tol float64) (Plane, bool) {
	if len(points) == 0 {
		return planeFromNormal(Pnt{}, Dir{Z: 1}), true
	}

	centroid := Pnt{}
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.DivScalar(float64(len(points)))

	// Longest span from the centroid anchors the first in-plane axis.
	var u Pnt
	for _, p := range points {
		if d := p.Sub(centroid); d.Length2() > u.Length2() {
			u = d
		}
	}
	if u.Length() < Tolerance {
		// All points coincide.
		return planeFromNormal(centroid, Dir{Z: 1}), true
	}

	// Second axis: the span with the largest cross product against u.
	var normal Pnt
	for _, p := range points {
		if c := u.Cross(p.Sub(centroid)); c.Length2() > normal.Length2() {
			normal = c
		}
	}
	if normal.Length() < Tolerance {
		// Collinear points: any plane containing the line fits.
		normal = arbitraryPerpendicular(u.Normalize())
	}

	pl := planeFromNormal(centroid, normal.Normalize())
	for _, p := range points {
		if math.Abs(pl.Distance(p)) > tol {
			return pl, false
		}
	}
	return pl, true
}

// NewPlane builds a plane frame from an origin and normal. The normal
// is normalized; the in-plane axes are chosen deterministically.
func NewPlane(origin Pnt, normal Dir) Plane {
	return planeFromNormal(origin, normal.Normalize())
}

// planeFromNormal builds a plane frame from an origin and unit normal.
func planeFromNormal(origin Pnt, normal Dir) Plane {
	xdir := arbitraryPerpendicular(normal).Normalize()
	return Plane{
		Origin: origin,
		Normal: normal,
		XDir:   xdir,
		YDir:   normal.Cross(xdir),
	}
}

// arbitraryPerpendicular returns a vector perpendicular to the unit
// vector n, projecting n out of the reference axis least aligned with
// it. A +Z normal keeps the conventional X axis.
func arbitraryPerpendicular(n Dir) Pnt {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	var ref Pnt
	switch {
	case ax <= ay && ax <= az:
		ref = Pnt{X: 1}
	case ay <= az:
		ref = Pnt{Y: 1}
	default:
		ref = Pnt{Z: 1}
	}
	return ref.Sub(n.MulScalar(n.Dot(ref)))
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p Pnt) float64 {
	return p.Sub(pl.Origin).Dot(pl.Normal)
}

// Project returns the in-plane (u, v) coordinates of p.
func (pl Plane) Project(p Pnt) (u, v float64) {
	d := p.Sub(pl.Origin)
	return d.Dot(pl.XDir), d.Dot(pl.YDir)
}
