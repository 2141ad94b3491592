package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"digital-presence/platform-backend/internal/dashboard"
)

const (
	progressSheet = "Progress"
	actionsSheet  = "Actions"
)

type sheetWriter struct {
	file        *excelize.File
	headerStyle int
}

func writeExcel(w io.Writer, view dashboard.View, opts Options) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", progressSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := file.NewSheet(actionsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := file.SetDocProps(&excelize.DocProperties{Title: opts.Title}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	sw := &sheetWriter{file: file, headerStyle: headerStyle}

	steps := make([][]interface{}, 0, len(view.Progress.Steps)+1)
	for _, s := range view.Progress.Steps {
		steps = append(steps, []interface{}{string(s.Step.ID), s.Step.Name, string(s.Status), s.Step.Route})
	}
	steps = append(steps, []interface{}{"", "Overall progress", fmt.Sprintf("%d%%", view.Progress.Percent), ""})
	if err := sw.writeTable(progressSheet, []string{"Step", "Name", "Status", "Route"}, steps); err != nil {
		return err
	}

	actions := make([][]interface{}, 0, len(view.Actions))
	for _, a := range view.Actions {
		actions = append(actions, []interface{}{string(a.ID), a.Title, string(a.Priority), actionState(a.Completed), a.Link})
	}
	if err := sw.writeTable(actionsSheet, []string{"Action", "Title", "Priority", "Status", "Link"}, actions); err != nil {
		return err
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeTable writes a styled, frozen header row followed by rows.
func (s *sheetWriter) writeTable(sheet string, columns []string, rows [][]interface{}) error {
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := s.file.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to set header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := s.file.SetCellStyle(sheet, "A1", last, s.headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for r, row := range rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := s.file.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to set cell value: %w", err)
			}
			if n := len(fmt.Sprint(val)); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		// Min width 10, max width 60
		w := float64(width) + 2
		if w < 10 {
			w = 10
		}
		if w > 60 {
			w = 60
		}
		if err := s.file.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return s.file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
