package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

var pdfColWidths = []float64{25, 35, 65, 30, 25}

// WritePDF renders a titled table of rows followed by a totals summary.
// An empty row set still produces a valid document stating that nothing
// matched, it is not an error.
func WritePDF(w io.Writer, title string, rows []Row) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(14)

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 8, "No transactions match the selected filters.")
		return pdf.Output(w)
	}

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range Header {
		pdf.CellFormat(pdfColWidths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rows {
		for i, v := range r.cells() {
			pdf.CellFormat(pdfColWidths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	income, expense := totals(rows)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Income total: "+income.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Expense total: "+expense.StringFixed(2))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Balance: "+income.Sub(expense).StringFixed(2))
	return pdf.Output(w)
}
