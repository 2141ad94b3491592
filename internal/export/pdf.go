package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"digital-presence/platform-backend/internal/dashboard"
)

const (
	pdfFont     = "Arial"
	pdfRowH     = 7.0
	pdfMarginMM = 15.0
)

type pdfColumn struct {
	label string
	width float64 // fraction of the printable width
}

func writePDF(w io.Writer, view dashboard.View, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginMM, 20, pdfMarginMM)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(opts.Title, true)
	if !opts.GeneratedAt.IsZero() {
		pdf.SetCreationDate(opts.GeneratedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	printable := pageW - 2*pdfMarginMM

	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(opts.Title), "", 1, "C", false, 0, "")
	if !opts.GeneratedAt.IsZero() {
		pdf.SetFont(pdfFont, "", 9)
		pdf.CellFormat(0, 6, "Generated "+opts.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Wizard progress: %d%%", view.Progress.Percent), "", 1, "L", false, 0, "")
	if view.NextStep != nil {
		pdf.SetFont(pdfFont, "", 10)
		pdf.CellFormat(0, 6, tr("Next step: "+view.NextStep.Name), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	steps := make([][]string, 0, len(view.Progress.Steps))
	for _, s := range view.Progress.Steps {
		steps = append(steps, []string{s.Step.Name, string(s.Status)})
	}
	pdfTable(pdf, tr, printable, []pdfColumn{{"Step", 0.7}, {"Status", 0.3}}, steps)
	pdf.Ln(6)

	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, "Recommended actions", "", 1, "L", false, 0, "")
	if len(view.Actions) == 0 {
		pdf.SetFont(pdfFont, "I", 10)
		pdf.CellFormat(0, 6, "No actions right now.", "", 1, "L", false, 0, "")
	} else {
		actions := make([][]string, 0, len(view.Actions))
		for _, a := range view.Actions {
			actions = append(actions, []string{a.Title, string(a.Priority), actionState(a.Completed)})
		}
		pdfTable(pdf, tr, printable, []pdfColumn{{"Action", 0.6}, {"Priority", 0.2}, {"Status", 0.2}}, actions)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func pdfTable(pdf *gofpdf.Fpdf, tr func(string) string, printable float64, columns []pdfColumn, rows [][]string) {
	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range columns {
		pdf.CellFormat(printable*col.width, pdfRowH, col.label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(242, 242, 242)
	for i, row := range rows {
		fill := i%2 == 1
		for c, col := range columns {
			pdf.CellFormat(printable*col.width, pdfRowH, tr(row[c]), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
}
