package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

// WriteResultsXLSX renders the side-by-side results table as an XLSX
// workbook and returns the bytes; the caller decides where they go.
func WriteResultsXLSX(rows []Row, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Results"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Filename",
		"Extracted Vendor",
		"Reference Vendor",
		"Vendor Exact",
		"Vendor Fuzzy",
		"Vendor Similarity",
		"Extracted Amount",
		"Reference Amount",
		"Amount Exact",
		"Extracted Date",
		"Reference Date",
		"Date Exact",
		"Confidence",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, r := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.Filename)
		write(2, r.ExtractedVendor)
		write(3, r.ReferenceVendor)
		write(4, r.VendorExact)
		write(5, r.VendorFuzzy)
		write(6, fmt.Sprintf("%.2f", r.VendorSimilarity))
		write(7, r.ExtractedAmount)
		write(8, r.ReferenceAmount)
		write(9, r.AmountExact)
		write(10, r.ExtractedDate)
		write(11, r.ReferenceDate)
		write(12, r.DateExact)
		write(13, fmt.Sprintf("%.2f", r.Confidence))
	}

	// Drop the default sheet so Results is the only one.
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	logger.Info("report.xlsx.ok", "rows", len(rows), "bytes", buf.Len(), "took", time.Since(start))
	return buf.Bytes(), nil
}
