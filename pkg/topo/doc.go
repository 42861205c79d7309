// Package topo builds boundary-representation topology from curves:
// edges, wires with closure and repair, and planar faces resolved from
// unordered coplanar loop collections with correctly nested holes.
package topo
