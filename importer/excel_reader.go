package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads the first sheet of one spreadsheet export.
// SkipLeadingRows drops note/banner lines before the header.
type ExcelReader struct {
	SkipLeadingRows int
}

func (r *ExcelReader) Read(path string) (Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return Table{}, fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return Table{}, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) <= r.SkipLeadingRows {
		return Table{}, fmt.Errorf("sheet %s of %s has no header row", sheetName, path)
	}
	rows = rows[r.SkipLeadingRows:]

	headers := rows[0]
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeHeader(header)
	}

	table := Table{Path: path, Headers: normalizedHeaders, Rows: make([]Record, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		values := make(map[string]string, len(normalizedHeaders))
		for col, header := range normalizedHeaders {
			if col < len(row) {
				values[header] = row[col]
			} else {
				values[header] = ""
			}
		}

		table.Rows = append(table.Rows, Record{RowNumber: r.SkipLeadingRows + i + 2, Values: values})
	}

	return table, nil
}
