package report

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/taanjit/Invoice-extraction-html/internal/normalize"
)

// BuildXLSX returns an XLSX workbook (as bytes) listing every extracted line
// item across a batch. One row per item, document and page columns included
// so a reviewer can trace each value back to its source.
func BuildXLSX(items []normalize.LineItem, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Line Items"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Description",
		"Quantity",
		"Unit",
		"Unit Price",
		"Total Price",
		"Page",
		"Document",
		"Confidence",
		"Flags",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, item := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, item.Description)
		if item.Quantity != nil {
			write(2, *item.Quantity)
		}
		write(3, item.Unit)
		if item.UnitPrice != nil {
			write(4, *item.UnitPrice)
		}
		write(5, item.TotalAmount)
		write(6, item.SourcePage)
		write(7, item.SourceDocument)
		write(8, item.Confidence)
		if len(item.Flags) > 0 {
			write(9, fmt.Sprintf("%v", item.Flags))
		}
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 48) // description
	_ = f.SetColWidth(sheet, "B", "E", 12) // numbers
	_ = f.SetColWidth(sheet, "G", "G", 28) // document
	_ = f.SetColWidth(sheet, "I", "I", 24) // flags

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("report.xlsx.ok",
		"rows", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
