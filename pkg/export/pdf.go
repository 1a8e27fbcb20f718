package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders tables into a basic tabular PDF.
type PDFRenderer struct{}

// NewPDFRenderer constructs a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render creates a PDF document with an optional title and table body.
func (r *PDFRenderer) Render(table Table, title string) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one column")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(table.Columns))
	for _, column := range table.Columns {
		pdf.CellFormat(colWidth, 8, column, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range table.Rows {
		for i := range table.Columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
