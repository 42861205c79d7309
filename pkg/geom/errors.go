package geom

import "errors"

// Sentinel error kinds for geometric operations. Callers match them
// with errors.Is; sites wrap them with operand context via fmt.Errorf.
var (
	// ErrInvalidGeometry indicates a degenerate construction request,
	// such as a segment between coincident points or a Bezier curve
	// with too few control points.
	ErrInvalidGeometry = errors.New("geom: invalid geometry")

	// ErrNonCoplanar indicates wires that were required to share a
	// plane but do not.
	ErrNonCoplanar = errors.New("geom: wires are not coplanar")

	// ErrApproximation indicates the bounded curve-approximation
	// search could not produce a result within the requested
	// tolerance, degree, and segment limits.
	ErrApproximation = errors.New("geom: curve approximation failed")

	// ErrTessellation indicates adaptive polyline sampling could not
	// certify the requested deflection tolerance.
	ErrTessellation = errors.New("geom: tessellation failed")
)
