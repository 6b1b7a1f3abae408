package classify

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/achilleasa/pointlabel/asset/compiler/input"
	"github.com/olekukonko/tablewriter"
)

type IDCount struct {
	ObjectID uint16
	Points   int
}

// Per object id point counts for a label buffer.
type Summary struct {
	// Total number of labels.
	Points int

	// Number of points with no object.
	Unassigned int

	// Point counts for assigned ids, sorted by object id.
	Objects []IDCount
}

// Count the points assigned to each object id.
func Summarize(labels []uint16) Summary {
	counts := make(map[uint16]int)
	summary := Summary{Points: len(labels)}
	for _, label := range labels {
		if label == input.UnassignedID {
			summary.Unassigned++
			continue
		}
		counts[label]++
	}

	summary.Objects = make([]IDCount, 0, len(counts))
	for id, count := range counts {
		summary.Objects = append(summary.Objects, IDCount{ObjectID: id, Points: count})
	}
	sort.Slice(summary.Objects, func(i, j int) bool {
		return summary.Objects[i].ObjectID < summary.Objects[j].ObjectID
	})
	return summary
}

// Build a tabular representation of the summary.
func (s Summary) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Object ID", "Points", "% of total"})

	for _, obj := range s.Objects {
		table.Append([]string{fmt.Sprint(obj.ObjectID), fmt.Sprint(obj.Points), s.percent(obj.Points)})
	}
	table.SetFooter([]string{"unassigned", fmt.Sprint(s.Unassigned), s.percent(s.Unassigned)})

	table.Render()
	return buf.String()
}

func (s Summary) percent(count int) string {
	if s.Points == 0 {
		return "-"
	}
	return fmt.Sprintf("%02.1f %%", 100.0*float64(count)/float64(s.Points))
}
