package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zubbicodes/adsonsLab/internal/entity"
	"github.com/zubbicodes/adsonsLab/internal/loadingpaper"
)

// XLSXService is a tiny façade that produces XLSX bytes for exports.
type XLSXService struct {
	logger *slog.Logger
}

func NewXLSXService(logger *slog.Logger) *XLSXService {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXService{logger: logger}
}

// LoadingPaper returns an XLSX workbook for the manifest projection.
func (s *XLSXService) LoadingPaper(doc *entity.Document, vis loadingpaper.ColumnVisibility) ([]byte, error) {
	start := time.Now()
	view := loadingpaper.Render(doc, vis)

	f := excelize.NewFile()
	const sheet = "Loading Paper"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	_ = f.SetCellValue(sheet, "A1", companyName+" - Loading Paper")
	_ = f.SetCellValue(sheet, "A2", "Date: "+view.Date)
	_ = f.SetCellValue(sheet, "A3", "Customer: "+view.AccName)
	_ = f.SetCellValue(sheet, "A4", "Address: "+view.AccAddress)
	_ = f.SetCellValue(sheet, "A5", "Remarks: "+view.Remarks)
	if view.HeaderNote != "" {
		_ = f.SetCellValue(sheet, "A6", "Note: "+view.HeaderNote)
	}

	const headerRow = 8
	for i, title := range view.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheet, cell, title)
	}
	row := headerRow + 1
	for _, r := range view.Rows {
		for i, v := range r {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	for i, v := range view.TotalsRow {
		col := i
		if i > 0 {
			// Cells after the label line up with the numeric columns.
			col = view.TotalsSpan + i - 1
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("xlsx render failed", "error", err)
		return nil, err
	}
	s.logger.Debug("loading paper workbook built",
		"rows", len(view.Rows), "duration", time.Since(start))
	return buf.Bytes(), nil
}

// Reports returns an XLSX workbook listing the given shrinkage reports.
func (s *XLSXService) Reports(reports []*entity.ShrinkageReport) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Reports"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Date",
		"Product Code",
		"PO Number",
		"Item Number",
		"Description",
		"Color",
		"Requirement",
		"Temp",
		"Dimensional Change",
		"PH",
		"Result",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range reports {
		values := []any{
			r.Date, r.ProductCode, r.PONumber, r.ItemNumber, r.ProductDescription,
			r.Color, r.ShrinkageRequirement, r.Temp, r.DimensionalChange, r.PH, r.Result,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("xlsx render failed", "error", err)
		return nil, fmt.Errorf("write reports workbook: %w", err)
	}
	return buf.Bytes(), nil
}
