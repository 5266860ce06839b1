package infra

// pdf.go — A4 inventory report generation using go-pdf/fpdf:
//   - Owner name header with generation timestamp
//   - Ingredient table (name, quantity, unit, minimum)
//   - Product table (name, quantity, unit)

import (
	"bytes"
	"time"

	"github.com/unstopDD/sklad-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInventoryPDF renders the owner's current inventory as a PDF and
// returns the document bytes.
func GenerateInventoryPDF(ownerName string, ingredients []model.Ingredient, products []model.Product) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Inventory Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, ownerName, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, time.Now().Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Ingredients ──────────────────────────────────────────────────────────
	col1 := contentW * 0.45
	col2 := contentW * 0.20
	col3 := contentW * 0.15
	col4 := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Ingredients", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Name", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Quantity", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 6, "Unit", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Minimum", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i := range ingredients {
		ing := &ingredients[i]
		pdf.CellFormat(col1, 6, ing.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, ing.Quantity.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, ing.Unit, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, ing.MinStock.String(), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// ── Products ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Products", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Name", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Quantity", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3+col4, 6, "Unit", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i := range products {
		p := &products[i]
		pdf.CellFormat(col1, 6, p.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, p.Quantity.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3+col4, 6, p.Unit, "", 1, "L", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
