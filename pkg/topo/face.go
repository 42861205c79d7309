package topo

// Face is one outer wire plus zero or more hole wires, all coplanar.
// Holes lie strictly inside the outer boundary and do not overlap each
// other.
type Face struct {
	outer Wire
	holes []Wire
}

// NewFace builds a face from an outer boundary and optional holes.
func NewFace(outer Wire, holes ...Wire) Face {
	return Face{outer: outer, holes: append([]Wire(nil), holes...)}
}

// Outer returns the outer boundary wire.
func (f Face) Outer() Wire { return f.outer }

// Holes returns a copy of the hole wires.
func (f Face) Holes() []Wire { return append([]Wire(nil), f.holes...) }
