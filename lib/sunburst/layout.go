// Package sunburst lays out a hierarchy as concentric rings and renders it
// as an SVG sunburst chart.
package sunburst

import (
	"math"

	"github.com/icco/sunburst/lib/hierarchy"
)

// Segment is a laid-out tree node. X0/X1 are angles in radians measured
// clockwise from twelve o'clock, Y0/Y1 are inner and outer radii.
type Segment struct {
	Node     *hierarchy.Node
	Parent   *Segment
	Children []*Segment
	Depth    int
	Value    int64
	X0, X1   float64
	Y0, Y1   float64
}

// Layout partitions root into a full circle of the given canvas size. Each
// node spans an angle proportional to its value within its parent's span
// and occupies the radial band matching its depth.
func Layout(root *hierarchy.Node, width, height float64) *Segment {
	radius := math.Min(width, height) / 2
	band := radius / float64(root.Height()+1)

	top := &Segment{Node: root, Value: root.Sum(), X0: 0, X1: 2 * math.Pi, Y0: 0, Y1: band}
	partition(top, band)
	return top
}

func partition(s *Segment, band float64) {
	x := s.X0
	k := 0.0
	if s.Value > 0 {
		k = (s.X1 - s.X0) / float64(s.Value)
	}
	for _, child := range s.Node.Children {
		c := &Segment{
			Node:   child,
			Parent: s,
			Depth:  s.Depth + 1,
			Value:  child.Sum(),
		}
		c.X0 = x
		x += float64(c.Value) * k
		c.X1 = x
		c.Y0 = float64(c.Depth) * band
		c.Y1 = float64(c.Depth+1) * band
		s.Children = append(s.Children, c)
	}
	// Absorb float drift so the last child closes the parent's span. This
	// has to happen before recursing so grandchildren see the final span.
	if n := len(s.Children); n > 0 && s.Value > 0 {
		s.Children[n-1].X1 = s.X1
	}
	for _, c := range s.Children {
		partition(c, band)
	}
}

// Descendants returns s and every segment beneath it in breadth-first order.
func (s *Segment) Descendants() []*Segment {
	out := []*Segment{s}
	for i := 0; i < len(out); i++ {
		out = append(out, out[i].Children...)
	}
	return out
}

// MidAngle is the bisector of the segment's span in radians.
func (s *Segment) MidAngle() float64 {
	return (s.X0 + s.X1) / 2
}

// MidRadius is the radius halfway through the segment's band.
func (s *Segment) MidRadius() float64 {
	return (s.Y0 + s.Y1) / 2
}
