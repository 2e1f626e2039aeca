// Package hierarchy turns flat play-count records into the two-level
// season → genre tree the sunburst is drawn from.
package hierarchy

import (
	"encoding/json"

	"github.com/icco/sunburst/lib/dataset"
)

// Node is a tree node. Leaves carry a Value and no Children; every other
// node carries Children and no Value.
type Node struct {
	Name     string
	Children []*Node
	Value    *int64
}

// IsLeaf reports whether n is a genre leaf.
func (n *Node) IsLeaf() bool {
	return n.Value != nil
}

// Sum returns the cumulative value of n: its own value for a leaf, the sum
// of its descendants otherwise.
func (n *Node) Sum() int64 {
	if n.Value != nil {
		return *n.Value
	}
	var total int64
	for _, c := range n.Children {
		total += c.Sum()
	}
	return total
}

// Height is the number of edges on the longest path from n to a leaf.
func (n *Node) Height() int {
	h := 0
	for _, c := range n.Children {
		if ch := c.Height() + 1; ch > h {
			h = ch
		}
	}
	return h
}

// Child returns the first direct child with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type jsonNode struct {
	Name     string  `json:"name"`
	Children []*Node `json:"children,omitempty"`
	Value    *int64  `json:"value,omitempty"`
}

// MarshalJSON emits {name, children} for groups and {name, value} for leaves.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNode{Name: n.Name, Children: n.Children, Value: n.Value})
}

// Build groups records under a root named name. Seasons appear in the order
// they are first seen and leaves keep input order within each season.
// Records are not deduplicated or validated.
func Build(name string, records []dataset.Record) *Node {
	root := &Node{Name: name, Children: []*Node{}}
	index := make(map[dataset.Season]*Node)
	for _, r := range records {
		season, ok := index[r.Season]
		if !ok {
			season = &Node{Name: string(r.Season), Children: []*Node{}}
			index[r.Season] = season
			root.Children = append(root.Children, season)
		}
		v := r.Count
		season.Children = append(season.Children, &Node{Name: r.Genre, Value: &v})
	}
	return root
}

// Total is a named cumulative play count.
type Total struct {
	Name  string `json:"name"`
	Plays int64  `json:"plays"`
}

// SeasonTotals sums counts per season in first-seen order.
func SeasonTotals(records []dataset.Record) []Total {
	var out []Total
	pos := make(map[dataset.Season]int)
	for _, r := range records {
		i, ok := pos[r.Season]
		if !ok {
			i = len(out)
			pos[r.Season] = i
			out = append(out, Total{Name: string(r.Season)})
		}
		out[i].Plays += r.Count
	}
	return out
}

// GenreTotals sums counts per genre across seasons in first-seen order.
func GenreTotals(records []dataset.Record) []Total {
	var out []Total
	pos := make(map[string]int)
	for _, r := range records {
		i, ok := pos[r.Genre]
		if !ok {
			i = len(out)
			pos[r.Genre] = i
			out = append(out, Total{Name: r.Genre})
		}
		out[i].Plays += r.Count
	}
	return out
}

// Duplicates returns every record whose (season, genre) pair already
// appeared earlier in records.
func Duplicates(records []dataset.Record) []dataset.Record {
	type key struct {
		season dataset.Season
		genre  string
	}
	seen := make(map[key]bool, len(records))
	var dups []dataset.Record
	for _, r := range records {
		k := key{r.Season, r.Genre}
		if seen[k] {
			dups = append(dups, r)
			continue
		}
		seen[k] = true
	}
	return dups
}
