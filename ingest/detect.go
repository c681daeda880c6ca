package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var inputExtensions = map[string]struct{}{
	".csv": {}, ".xlsx": {}, ".xlsm": {}, ".xls": {},
}

// DetectAbsence resolves the absence export inside folder by file name: it
// contains "absence" (or the recurring upstream typo "absense"). An explicit
// name overrides detection. Zero or multiple candidates is fatal, with the
// candidates named so the caller can disambiguate with --absence-name.
func DetectAbsence(folder, explicitName string) (string, error) {
	return detectInput(folder, "absence", explicitName, "absence", "absense")
}

// DetectBlip resolves the BLIP timesheet export inside folder; its name
// contains "blip" or "timesheet". An explicit name overrides detection.
func DetectBlip(folder, explicitName string) (string, error) {
	return detectInput(folder, "BLIP", explicitName, "blip", "timesheet")
}

func detectInput(folder, label, explicitName string, markers ...string) (string, error) {
	if explicitName != "" {
		path := filepath.Join(folder, explicitName)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s export %s: %w", label, path, err)
		}
		return path, nil
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return "", fmt.Errorf("read input folder %s: %w", folder, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := inputExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		lower := strings.ToLower(name)
		for _, marker := range markers {
			if strings.Contains(lower, marker) {
				candidates = append(candidates, name)
				break
			}
		}
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("no %s export found in %s", label, folder)
	case 1:
		return filepath.Join(folder, candidates[0]), nil
	default:
		return "", fmt.Errorf("multiple %s export candidates in %s: %s",
			label, folder, strings.Join(candidates, ", "))
	}
}
