package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVReader reads one CSV export. SkipLeadingRows drops note/banner lines
// before the header (the BLIP export carries one).
type CSVReader struct {
	SkipLeadingRows int
}

func (r *CSVReader) Read(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	for skip := 0; skip < r.SkipLeadingRows; skip++ {
		if _, err := reader.Read(); err != nil {
			return Table{}, fmt.Errorf("skip leading row in %s: %w", path, err)
		}
	}

	headers, err := reader.Read()
	if err != nil {
		return Table{}, fmt.Errorf("read csv header of %s: %w", path, err)
	}

	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeHeader(header)
	}

	table := Table{Path: path, Headers: normalizedHeaders, Rows: make([]Record, 0, 128)}
	rowNumber := r.SkipLeadingRows + 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read csv row %d of %s: %w", rowNumber+1, path, err)
		}

		values := make(map[string]string, len(normalizedHeaders))
		for i, header := range normalizedHeaders {
			if i < len(row) {
				values[header] = row[i]
			} else {
				values[header] = ""
			}
		}

		rowNumber++
		table.Rows = append(table.Rows, Record{RowNumber: rowNumber, Values: values})
	}

	return table, nil
}
