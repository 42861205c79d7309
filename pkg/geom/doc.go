// Package geom provides the primitive geometric layer shared by the
// rest of the module: points and directions, the default coincidence
// tolerance, bounding boxes, plane fitting, and the error kinds every
// construction operation reports.
package geom
