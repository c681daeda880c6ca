package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Reader interface {
	Read(path string) (Table, error)
}

// ReaderForPath picks a reader by file extension. skipLeadingRows is
// passed through so time-clock exports can drop the note line above
// the header.
func ReaderForPath(path string, skipLeadingRows int) (Reader, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "csv":
		return &CSVReader{SkipLeadingRows: skipLeadingRows}, nil
	case "xlsx", "xlsm", "xls":
		return &ExcelReader{SkipLeadingRows: skipLeadingRows}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", path)
	}
}
