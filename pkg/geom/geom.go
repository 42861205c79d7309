package geom

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Tolerance is the default coincidence tolerance: two points closer
// than this are treated as the same point. It is unit-agnostic and
// interpreted in the caller's modeling units.
const Tolerance = 1e-8

// Pnt is a point in 3D space.
type Pnt = v3.Vec

// Dir is a direction in 3D space. Directions are expected to be
// unit-length; the constructors here normalize, downstream code does
// not re-check.
type Dir = v3.Vec

// XYZ builds a point from three components.
func XYZ(x, y, z float64) Pnt {
	return Pnt{X: x, Y: y, Z: z}
}

// XY builds a point in the Z=0 plane from two components.
func XY(x, y float64) Pnt {
	return Pnt{X: x, Y: y}
}

// AsPnt coerces a 2- or 3-component coordinate slice to a point.
// A 2-component slice gets Z=0.
func AsPnt(coords []float64) (Pnt, error) {
	switch len(coords) {
	case 3:
		return Pnt{X: coords[0], Y: coords[1], Z: coords[2]}, nil
	case 2:
		return Pnt{X: coords[0], Y: coords[1]}, nil
	default:
		return Pnt{}, fmt.Errorf("%w: cannot make point from %d components", ErrInvalidGeometry, len(coords))
	}
}

// AsDir coerces a 2- or 3-component coordinate slice to a unit-length
// direction. A zero vector is rejected.
func AsDir(coords []float64) (Dir, error) {
	p, err := AsPnt(coords)
	if err != nil {
		return Dir{}, err
	}
	if p.Length() < Tolerance {
		return Dir{}, fmt.Errorf("%w: zero-length direction", ErrInvalidGeometry)
	}
	return p.Normalize(), nil
}

// Coincident reports whether two points are the same within tol.
func Coincident(a, b Pnt, tol float64) bool {
	return a.Equals(b, tol)
}
