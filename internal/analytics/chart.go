package analytics

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"

	chart "github.com/wcharczuk/go-chart/v2"
)

// RenderPriorityChart renders the export's priority distribution as a PNG pie
// chart with proportional percentage labels. An empty export renders a single
// "no data" slice instead of failing.
func RenderPriorityChart(e *Export) ([]byte, error) {
	counts := e.PriorityCounts()

	values := []chart.Value{{Label: "no data", Value: 1}}
	if len(counts) > 0 {
		var total int64
		for _, n := range counts {
			total += n
		}

		priorities := make([]string, 0, len(counts))
		for p := range counts {
			priorities = append(priorities, p)
		}
		// highest priority first, unknown values last by name
		sort.Slice(priorities, func(i, j int) bool {
			ri, rj := domain.PriorityRank(priorities[i]), domain.PriorityRank(priorities[j])
			if ri != rj {
				return ri > rj
			}
			return priorities[i] < priorities[j]
		})

		values = values[:0]
		for _, p := range priorities {
			pct := float64(counts[p]) / float64(total) * 100
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s %.1f%%", p, pct),
				Value: float64(counts[p]),
			})
		}
	}

	pie := chart.PieChart{
		Title:  "Task Priority Distribution",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render priority chart: %w", err)
	}
	return buf.Bytes(), nil
}
