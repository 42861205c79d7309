package geom

// Box is an axis-aligned bounding box. The zero value is empty.
type Box struct {
	Min, Max Pnt
	set      bool
}

// NewBox returns a box enclosing the given points.
func NewBox(points ...Pnt) Box {
	var b Box
	for _, p := range points {
		b = b.AddPoint(p)
	}
	return b
}

// IsEmpty reports whether the box encloses nothing.
func (b Box) IsEmpty() bool {
	return !b.set
}

// AddPoint returns the box grown to enclose p.
func (b Box) AddPoint(p Pnt) Box {
	if !b.set {
		return Box{Min: p, Max: p, set: true}
	}
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p), set: true}
}

// Union returns the box enclosing both boxes.
func (b Box) Union(o Box) Box {
	if !o.set {
		return b
	}
	if !b.set {
		return o
	}
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max), set: true}
}

// Diagonal returns the length of the box diagonal, 0 for an empty box.
func (b Box) Diagonal() float64 {
	if !b.set {
		return 0
	}
	return b.Max.Sub(b.Min).Length()
}

// Contains reports whether p lies inside the box, expanded by tol on
// every side.
func (b Box) Contains(p Pnt, tol float64) bool {
	if !b.set {
		return false
	}
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol &&
		p.Z >= b.Min.Z-tol && p.Z <= b.Max.Z+tol
}

// Center returns the box center, the origin for an empty box.
func (b Box) Center() Pnt {
	if !b.set {
		return Pnt{}
	}
	return b.Min.Add(b.Max).MulScalar(0.5)
}
