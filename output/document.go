// Package output renders the cleaned records and the aggregate summaries
// into the flat files the dashboard layer consumes.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Document is one tabular output: a header row, data rows, and an optional
// note line written above the header (the BLIP spreadsheet shape).
type Document struct {
	NoteLine string
	Headers  []string
	Rows     [][]string
}

// WriteDocument renders the document at path in the requested format.
func WriteDocument(path, format string, doc Document) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeDocumentCSV(path, doc)
	case "excel", "xlsx":
		return writeDocumentExcel(path, doc)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

func writeDocumentCSV(path string, doc Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if doc.NoteLine != "" {
		if err := writer.Write([]string{doc.NoteLine}); err != nil {
			return fmt.Errorf("write csv note line: %w", err)
		}
	}
	if err := writer.Write(doc.Headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range doc.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

func writeDocumentExcel(path string, doc Document) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	headerRow := 1
	if doc.NoteLine != "" {
		if err := file.SetCellValue(sheet, "A1", doc.NoteLine); err != nil {
			return fmt.Errorf("set excel note line: %w", err)
		}
		headerRow = 2
	}

	for col, header := range doc.Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, row := range doc.Rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, headerRow+1+i)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
