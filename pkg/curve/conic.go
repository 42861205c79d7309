package curve

import (
	"fmt"
	"math"

	"github.com/chazu/loft/pkg/geom"
)

// conicConfig collects the optional placement of circles and ellipses.
type conicConfig struct {
	center   geom.Pnt
	normal   geom.Dir
	rotation float64 // degrees, about the normal
}

// ConicOption places a circle or ellipse in space.
type ConicOption func(*conicConfig)

// WithCenter sets the conic center. Default is the origin.
func WithCenter(center geom.Pnt) ConicOption {
	return func(c *conicConfig) { c.center = center }
}

// WithNormal sets the conic plane normal. Default is +Z.
func WithNormal(normal geom.Dir) ConicOption {
	return func(c *conicConfig) { c.normal = normal }
}

// WithRotation rotates the conic frame about its normal by the given
// angle in degrees.
func WithRotation(degrees float64) ConicOption {
	return func(c *conicConfig) { c.rotation = degrees }
}

// conic is the shared frame and angular range of circles and ellipses.
// The parameter u runs over [0, sweep]; the traced angle in the frame
// is start + sign*u, with sign -1 for clockwise arcs.
type conic struct {
	center     geom.Pnt
	xdir, ydir geom.Dir
	start      float64
	sweep      float64
	sign       float64
}

func newConic(startDeg, endDeg float64, clockwise bool, opts []ConicOption) conic {
	cfg := conicConfig{normal: geom.Dir{Z: 1}}
	for _, opt := range opts {
		opt(&cfg)
	}

	pl := geom.NewPlane(cfg.center, cfg.normal)
	xdir, ydir := pl.XDir, pl.YDir
	if cfg.rotation != 0 {
		phi := cfg.rotation * math.Pi / 180
		sin, cos := math.Sincos(phi)
		xdir, ydir = xdir.MulScalar(cos).Add(ydir.MulScalar(sin)),
			ydir.MulScalar(cos).Sub(xdir.MulScalar(sin))
	}

	start := startDeg * math.Pi / 180
	var delta float64
	if clockwise {
		delta = startDeg - endDeg
	} else {
		delta = endDeg - startDeg
	}
	sweep := math.Mod(delta*math.Pi/180, 2*math.Pi)
	if sweep <= 0 {
		sweep += 2 * math.Pi
	}

	sign := 1.0
	if clockwise {
		sign = -1.0
	}
	return conic{center: cfg.center, xdir: xdir, ydir: ydir, start: start, sweep: sweep, sign: sign}
}

// angle maps a parameter to the traced angle in the conic frame.
func (c *conic) angle(u float64) float64 {
	return c.start + c.sign*u
}

// at maps frame coordinates scaled by (sx, sy) to a world point.
func (c *conic) at(x, y, sx, sy float64) geom.Pnt {
	return c.center.Add(c.xdir.MulScalar(x * sx)).Add(c.ydir.MulScalar(y * sy))
}

func (c *conic) FirstParameter() float64 { return 0 }
func (c *conic) LastParameter() float64  { return c.sweep }

// Circle is a circle or circular arc.
type Circle struct {
	conic
	Radius float64
}

// NewCircle returns a full circle of the given radius.
func NewCircle(radius float64, opts ...ConicOption) (*Circle, error) {
	return NewArcOfCircle(radius, 0, 360, false, opts...)
}

// NewArcOfCircle returns a circular arc between two angles in degrees.
// Equal angles produce a full circle.
func NewArcOfCircle(radius, startDeg, endDeg float64, clockwise bool, opts ...ConicOption) (*Circle, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: circle radius must be positive, got %v", geom.ErrInvalidGeometry, radius)
	}
	return &Circle{conic: newConic(startDeg, endDeg, clockwise, opts), Radius: radius}, nil
}

func (c *Circle) Kind() Kind { return KindCircle }

// Value returns the point at parameter u in [0, sweep].
func (c *Circle) Value(u float64) geom.Pnt {
	sin, cos := math.Sincos(c.angle(u))
	return c.at(cos, sin, c.Radius, c.Radius)
}

// Ellipse is an ellipse or elliptical arc.
type Ellipse struct {
	conic
	MajorRadius float64
	MinorRadius float64
}

// NewEllipse returns a full ellipse with the given radii. Radii given
// in the wrong order are swapped and the frame rotated 90 degrees, so
// the major axis always matches the larger value.
func NewEllipse(major, minor float64, opts ...ConicOption) (*Ellipse, error) {
	return NewArcOfEllipse(major, minor, 0, 360, false, opts...)
}

// NewArcOfEllipse returns an elliptical arc between two angles in
// degrees. Equal angles produce a full ellipse.
func NewArcOfEllipse(major, minor, startDeg, endDeg float64, clockwise bool, opts ...ConicOption) (*Ellipse, error) {
	if minor > major {
		major, minor = minor, major
		// Keep the major axis on the larger radius: swap and turn the
		// frame a quarter turn on top of any caller rotation.
		opts = append(append([]ConicOption{}, opts...),
			func(c *conicConfig) { c.rotation += 90 })
	}
	if minor <= 0 {
		return nil, fmt.Errorf("%w: ellipse radii must be positive, got %v, %v", geom.ErrInvalidGeometry, major, minor)
	}
	return &Ellipse{
		conic:       newConic(startDeg, endDeg, clockwise, opts),
		MajorRadius: major,
		MinorRadius: minor,
	}, nil
}

func (e *Ellipse) Kind() Kind { return KindEllipse }

// Value returns the point at parameter u in [0, sweep].
func (e *Ellipse) Value(u float64) geom.Pnt {
	sin, cos := math.Sincos(e.angle(u))
	return e.at(cos, sin, e.MajorRadius, e.MinorRadius)
}
