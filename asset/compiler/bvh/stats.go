package bvh

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Tree build statistics.
type Stats struct {
	Items     int
	Nodes     int
	Leafs     int
	MaxDepth  int
	Strategy  string
	BuildTime time.Duration
}

// Get the build statistics for this tree.
func (t *Tree) Stats() Stats {
	return t.stats
}

// Build a tabular representation of the tree statistics.
func (t *Tree) StatsTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"BVH", "Value"})
	table.Append([]string{"Split strategy", t.stats.Strategy})
	table.Append([]string{"Shapes", fmt.Sprint(t.stats.Items)})
	table.Append([]string{"Nodes", fmt.Sprint(t.stats.Nodes)})
	table.Append([]string{"Leafs", fmt.Sprint(t.stats.Leafs)})
	table.Append([]string{"Max depth", fmt.Sprint(t.stats.MaxDepth)})
	table.Append([]string{"Build time", t.stats.BuildTime.String()})
	table.Render()
	return buf.String()
}

// Build a table listing every indexed shape in traversal order.
func (t *Tree) ShapeTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"#", "Object ID", "Kind", "BBox min", "BBox max"})

	order := 0
	t.Walk(func(item Item) bool {
		table.Append([]string{
			fmt.Sprint(order),
			fmt.Sprint(item.Shape.ObjectID()),
			item.Shape.Kind().String(),
			fmtVec(item.Box.Min),
			fmtVec(item.Box.Max),
		})
		order++
		return true
	})

	table.Render()
	return buf.String()
}

func fmtVec(v [3]float64) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

// Look up a split strategy by name ("median" or "sah").
func ParseSplitStrategy(name string) (SplitStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MedianSplit.String():
		return MedianSplit, nil
	case SurfaceAreaHeuristic.String():
		return SurfaceAreaHeuristic, nil
	}
	return nil, fmt.Errorf("bvh: unknown split strategy %q", name)
}
