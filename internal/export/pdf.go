package export

import (
	"bytes"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"github.com/zubbicodes/adsonsLab/internal/entity"
	"github.com/zubbicodes/adsonsLab/internal/loadingpaper"
)

// Company identity printed on every document.
const (
	companyName    = "ADSONS GLOBAL"
	companyTagline = "Pre-Shrink Elastic Experts"
	companyAddress = "193-VIP Block Canal Park, Faisalabad, Pakistan - info@adsonent.com"
)

// PDFService renders printable documents. The loading paper is a single A4
// landscape page, the test report a single A4 portrait page, both with zero
// page margin; an inner padding is drawn instead.
type PDFService struct {
	logger *slog.Logger
}

func NewPDFService(logger *slog.Logger) *PDFService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFService{logger: logger}
}

// Relative column widths for the manifest table, keyed by column title.
var manifestColumnWeights = map[string]float64{
	"Sr":           1.0,
	"PO No":        1.7,
	"Job No":       1.7,
	"DC No":        1.7,
	"Item":         3.6,
	"Pack":         1.2,
	"Qty":          1.4,
	"Unit":         1.1,
	"Net. Weight":  1.9,
	"Net Wt/Ctn":   1.9,
	"Gross Wt/Ctn": 1.9,
	"Remarks":      2.6,
}

// LoadingPaper renders the manifest projection onto one landscape page.
func (s *PDFService) LoadingPaper(doc *entity.Document, vis loadingpaper.ColumnVisibility) ([]byte, error) {
	view := loadingpaper.Render(doc, vis)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	const (
		pageW = 297.0
		pageH = 210.0
		pad   = 10.0
	)
	innerW := pageW - 2*pad

	// Top rule and letterhead.
	pdf.SetFillColor(30, 41, 59)
	pdf.Rect(0, 0, pageW, 2, "F")

	pdf.SetXY(pad, pad)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(innerW/2, 8, companyName, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(innerW/2, 8, "Date: "+view.Date, "", 1, "R", false, 0, "")
	pdf.SetX(pad)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(innerW, 5, "Loading Paper", "", 1, "L", false, 0, "")

	// Customer and remarks blocks.
	y := pdf.GetY() + 4
	blockW := (innerW - 4) / 2
	pdf.SetFillColor(248, 250, 252)
	pdf.Rect(pad, y, blockW, 22, "F")
	pdf.Rect(pad+blockW+4, y, blockW, 22, "F")

	pdf.SetXY(pad+3, y+2)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(blockW-6, 4, "CUSTOMER", "", 2, "L", false, 0, "")
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(blockW-6, 6, view.AccName, "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(blockW-6, 5, view.AccAddress, "", 0, "L", false, 0, "")

	pdf.SetXY(pad+blockW+7, y+2)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(blockW-6, 4, "REMARKS / VEHICLE", "", 2, "L", false, 0, "")
	pdf.SetTextColor(51, 65, 85)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(blockW-6, 5, view.Remarks, "", 2, "L", false, 0, "")
	if view.HeaderNote != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(blockW-6, 5, view.HeaderNote, "", 0, "L", false, 0, "")
	}

	// Items table.
	widths := columnWidths(view.Columns, innerW)
	rowH := 6.5

	pdf.SetXY(pad, y+26)
	pdf.SetFillColor(243, 244, 246)
	pdf.SetTextColor(71, 85, 105)
	pdf.SetDrawColor(203, 213, 225)
	pdf.SetFont("Helvetica", "B", 8)
	for i, title := range view.Columns {
		pdf.CellFormat(widths[i], rowH, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(rowH)

	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "", 8)
	for rowIdx, row := range view.Rows {
		pdf.SetX(pad)
		fill := rowIdx%2 == 1
		pdf.SetFillColor(248, 250, 252)
		for i, cell := range row {
			pdf.CellFormat(widths[i], rowH, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(rowH)
	}

	// Totals row: the label spans the leading non-numeric columns.
	pdf.SetX(pad)
	pdf.SetFillColor(241, 245, 249)
	pdf.SetFont("Helvetica", "B", 8)
	var labelW float64
	for i := 0; i < view.TotalsSpan && i < len(widths); i++ {
		labelW += widths[i]
	}
	// A zero-width cell would stretch to the right margin; with every label
	// column masked off there is nowhere to put the label, so drop it.
	if labelW > 0 {
		pdf.CellFormat(labelW, rowH, view.TotalsRow[0], "1", 0, "L", true, 0, "")
	}
	for i, cell := range view.TotalsRow[1:] {
		pdf.CellFormat(widths[view.TotalsSpan+i], rowH, cell, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(rowH)

	// Footer.
	pdf.SetXY(pad, pageH-pad-6)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(innerW/2, 4, "Prepared by: "+companyName+" - Logistics Department", "", 0, "L", false, 0, "")
	pdf.CellFormat(innerW/2, 4, companyAddress, "", 1, "R", false, 0, "")

	pdf.SetFillColor(30, 41, 59)
	pdf.Rect(0, pageH-2, pageW, 2, "F")

	return output(pdf, s.logger, "loading paper")
}

// ShrinkageReport renders the lab certificate onto one portrait page.
func (s *PDFService) ShrinkageReport(rep *entity.ShrinkageReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	const (
		pageW = 210.0
		pageH = 297.0
		pad   = 14.0
	)
	innerW := pageW - 2*pad

	pdf.SetFillColor(30, 41, 59)
	pdf.Rect(0, 0, pageW, 2, "F")

	pdf.SetXY(pad, pad)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(innerW, 10, companyName, "", 1, "L", false, 0, "")
	pdf.SetX(pad)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(innerW, 5, companyTagline, "", 1, "L", false, 0, "")

	pdf.Ln(6)
	pdf.SetFillColor(209, 213, 219)
	pdf.Rect(0, pdf.GetY(), pageW, 12, "F")
	pdf.SetX(pad)
	pdf.SetTextColor(17, 24, 39)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(innerW, 12, "LABORATORY TEST REPORT", "", 1, "L", false, 0, "")

	pdf.Ln(6)
	s.labelValue(pdf, pad, innerW, "Test Date", rep.Date)
	s.labelValue(pdf, pad, innerW, "Item Number", rep.ItemNumber)
	s.labelValue(pdf, pad, innerW, "Color", rep.Color)
	s.labelValue(pdf, pad, innerW, "Product Description", rep.ProductDescription)
	s.labelValue(pdf, pad, innerW, "Purchase Order", rep.PONumber)
	s.labelValue(pdf, pad, innerW, "Shrinkage Requirement", rep.ShrinkageRequirement)
	s.labelValue(pdf, pad, innerW, "Temperature", rep.Temp)
	s.labelValue(pdf, pad, innerW, "Dimensional Change", rep.DimensionalChange)
	s.labelValue(pdf, pad, innerW, "PH Level", rep.PH)

	pdf.Ln(4)
	pdf.SetX(pad)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(innerW/2, 10, "TEST RESULT", "1", 0, "L", false, 0, "")
	if rep.Result == "Pass" {
		pdf.SetFillColor(16, 185, 129)
	} else {
		pdf.SetFillColor(239, 68, 68)
	}
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(innerW/2, 10, rep.Result, "1", 1, "C", true, 0, "")

	pdf.SetXY(pad, pageH-pad-18)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(innerW, 5, "Authorized By: "+companyName+", Quality Control Department", "", 1, "L", false, 0, "")
	pdf.SetX(pad)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(innerW, 5, companyAddress, "", 1, "L", false, 0, "")
	pdf.SetX(pad)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(innerW, 5, "This is a system-generated report, does not need any sign or stamp.", "", 1, "L", false, 0, "")

	pdf.SetFillColor(30, 41, 59)
	pdf.Rect(0, pageH-2, pageW, 2, "F")

	return output(pdf, s.logger, "shrinkage report")
}

func (s *PDFService) labelValue(pdf *fpdf.Fpdf, pad, innerW float64, label, value string) {
	pdf.SetX(pad)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(innerW/2, 9, label, "1", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(innerW/2, 9, value, "1", 1, "L", false, 0, "")
}

func columnWidths(titles []string, total float64) []float64 {
	var sum float64
	weights := make([]float64, len(titles))
	for i, t := range titles {
		w, ok := manifestColumnWeights[t]
		if !ok {
			w = 1.5
		}
		weights[i] = w
		sum += w
	}
	widths := make([]float64, len(titles))
	for i, w := range weights {
		widths[i] = total * w / sum
	}
	return widths
}

func output(pdf *fpdf.Fpdf, logger *slog.Logger, kind string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		logger.Error("pdf render failed", "document", kind, "error", err)
		return nil, err
	}
	return buf.Bytes(), nil
}
