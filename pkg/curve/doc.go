// Package curve models parametric curves as a small closed set of
// kinds (line segment, circle, ellipse, Bezier, B-spline, plus a
// trimmed/generic fallback), with evaluation, the constructors needed
// to build them from plain values, and exact conversion of every kind
// to B-spline form.
package curve
