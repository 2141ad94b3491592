package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"digital-presence/platform-backend/internal/dashboard"
)

var csvHeader = []string{"record", "id", "title", "status", "priority", "link"}

// writeCSV emits one summary row, then a row per step, then a row per action.
func writeCSV(w io.Writer, view dashboard.View) error {
	writer := csv.NewWriter(w)

	records := [][]string{
		csvHeader,
		{"summary", "percent", "Overall progress", strconv.Itoa(view.Progress.Percent), "", ""},
	}
	for _, s := range view.Progress.Steps {
		records = append(records, []string{
			"step", string(s.Step.ID), s.Step.Name, string(s.Status), "", s.Step.Route,
		})
	}
	for _, a := range view.Actions {
		records = append(records, []string{
			"action", string(a.ID), a.Title, actionState(a.Completed), string(a.Priority), a.Link,
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
