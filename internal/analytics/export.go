package analytics

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/domain"
)

// ExportColumns is the fixed column order of a task export.
var ExportColumns = []string{
	"task_id", "name", "description", "status", "due_date",
	"completed_date", "assigned_to", "priority", "owner_id",
}

// Export is the tabular form of one owner's task set.
type Export struct {
	Tasks []domain.Task
}

func exportRow(t domain.Task) []string {
	completed := ""
	if t.CompletedDate != nil {
		completed = t.CompletedDate.Format(time.RFC3339)
	}
	return []string{
		strconv.FormatInt(t.TaskID, 10),
		t.Name,
		t.Description,
		t.Status,
		t.DueDate.Format(time.RFC3339),
		completed,
		t.AssignedTo,
		t.Priority,
		strconv.FormatInt(t.OwnerID, 10),
	}
}

// WriteCSV renders the export with a header row.
func (e *Export) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for _, t := range e.Tasks {
		if err := cw.Write(exportRow(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PriorityCounts groups the export rows by priority value.
func (e *Export) PriorityCounts() map[string]int64 {
	counts := make(map[string]int64)
	for _, t := range e.Tasks {
		counts[t.Priority]++
	}
	return counts
}
