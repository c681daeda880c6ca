// Package ingest drives the two cleanup pipelines end to end: input
// resolution, parsing, correction/classification, and output writing.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hmelementsgreen/HRM-Dashboard/absence"
	"github.com/hmelementsgreen/HRM-Dashboard/importer"
	"github.com/hmelementsgreen/HRM-Dashboard/output"
	"github.com/hmelementsgreen/HRM-Dashboard/reconcile"
	"github.com/hmelementsgreen/HRM-Dashboard/timesheet"
)

// blipSkipRows: the BLIP export carries one note line above the header.
const blipSkipRows = 1

type Service struct {
	log    *logrus.Logger
	cache  *TableCache
	policy reconcile.Policy
}

func NewService(log *logrus.Logger, policy reconcile.Policy) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{log: log, cache: NewTableCache(), policy: policy}
}

// Cache exposes the orchestrator's table cache for explicit invalidation.
func (s *Service) Cache() *TableCache {
	return s.cache
}

// AbsenceResult is the audit summary of one absence cleanup run.
type AbsenceResult struct {
	Input             string
	Output            string
	RawRows           int
	DuplicatesRemoved int
	OthersAfterPass1  int
	OthersAfterPass2  int
	Records           []absence.Record
}

// RunAbsence cleans one absence export: dedupe, two-pass classification,
// organisation mapping, full-replace output.
func (s *Service) RunAbsence(inputPath, outputPath string) (*AbsenceResult, error) {
	table, err := s.cache.Read(inputPath, 0)
	if err != nil {
		return nil, err
	}
	records, err := importer.MapAbsenceRecords(table)
	if err != nil {
		return nil, err
	}

	rawRows := len(records)
	records, removed := absence.DropDuplicates(records)
	if removed > 0 {
		s.log.Warnf("absence: dropped %d duplicate rows from %s", removed, inputPath)
	}

	pass1, pass2 := absence.ClassifyRecords(records)
	if pass2 > 0 {
		s.log.Warnf("absence: %d rows remain unclassified after the double-layer pass", pass2)
	}
	for i := range records {
		absence.MapOrganisation(&records[i])
	}

	if err := output.WriteDocument(outputPath, formatForPath(outputPath), output.AbsenceDocument(records)); err != nil {
		return nil, err
	}
	s.log.Infof("absence: %d rows cleaned, written to %s", len(records), outputPath)

	return &AbsenceResult{
		Input:             inputPath,
		Output:            outputPath,
		RawRows:           rawRows,
		DuplicatesRemoved: removed,
		OthersAfterPass1:  pass1,
		OthersAfterPass2:  pass2,
		Records:           records,
	}, nil
}

// BlipResult is the audit summary of one BLIP cleanup run.
type BlipResult struct {
	Input          string
	Output         string
	Correction     reconcile.Result
	Appended       bool
	CumulativeRows int
	Deduped        int
	Events         []timesheet.Event
}

// RunBlip corrects one BLIP export. In append mode the corrected rows merge
// into the cumulative CSV at outputPath; otherwise a standalone file is
// written (the spreadsheet shape keeps the export's leading note row).
func (s *Service) RunBlip(inputPath, outputPath string, appendMode bool) (*BlipResult, error) {
	if appendMode && !strings.EqualFold(filepath.Ext(outputPath), ".csv") {
		return nil, fmt.Errorf("append mode requires a .csv output, got %s", outputPath)
	}

	table, err := s.cache.Read(inputPath, blipSkipRows)
	if err != nil {
		return nil, err
	}
	events, err := importer.MapBlipEvents(table)
	if err != nil {
		return nil, err
	}

	events, correction := reconcile.CorrectEvents(events, s.policy, true)
	if correction.Corrected > 0 {
		s.log.Warnf("blip: repaired %d of %d events (%d overnight, %d negative duration, %d negative worked, %d inconsistent)",
			correction.Corrected, correction.Events, correction.Overnight,
			correction.NegDuration, correction.NegWorked, correction.Inconsistent)
	}
	if correction.Incomplete > 0 {
		s.log.Warnf("blip: %d events missing a timestamp, excluded from numeric aggregates", correction.Incomplete)
	}

	result := &BlipResult{
		Input:      inputPath,
		Output:     outputPath,
		Correction: correction,
		Appended:   appendMode,
		Events:     events,
	}

	if appendMode {
		total, dropped, err := output.AppendCumulative(outputPath, events)
		if err != nil {
			return nil, err
		}
		result.CumulativeRows, result.Deduped = total, dropped
		s.log.Infof("blip: cumulative %s now holds %d rows (%d replaced)", outputPath, total, dropped)
		return result, nil
	}

	format := formatForPath(outputPath)
	if err := output.WriteDocument(outputPath, format, output.BlipDocument(events, format == "excel")); err != nil {
		return nil, err
	}
	s.log.Infof("blip: %d corrected events written to %s", len(events), outputPath)
	return result, nil
}

// FolderOptions tune one folder-mode run.
type FolderOptions struct {
	AbsenceName string
	BlipName    string
	AbsenceOnly bool
	BlipOnly    bool
	// Append merges the corrected BLIP rows into the cumulative CSV
	// instead of writing a standalone spreadsheet.
	Append bool
	// CumulativePath overrides the default cumulative CSV location
	// (blip_cumulative.csv inside the output folder).
	CumulativePath string
}

// FolderResult pairs the per-pipeline summaries of one folder run.
type FolderResult struct {
	OutputDir string
	Absence   *AbsenceResult
	Blip      *BlipResult
}

// RunFolder resolves the exports inside folder and runs the requested
// pipelines. Outputs land in a sibling <folder>_output directory.
func (s *Service) RunFolder(folder string, opts FolderOptions) (*FolderResult, error) {
	if opts.AbsenceOnly && opts.BlipOnly {
		return nil, fmt.Errorf("--absence-only and --blip-only are mutually exclusive")
	}

	outputDir := filepath.Clean(folder) + "_output"
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder %s: %w", outputDir, err)
	}

	result := &FolderResult{OutputDir: outputDir}

	if !opts.BlipOnly {
		inputPath, err := DetectAbsence(folder, opts.AbsenceName)
		if err != nil {
			return nil, err
		}
		outputPath := filepath.Join(outputDir, stem(inputPath)+"_output.csv")
		result.Absence, err = s.RunAbsence(inputPath, outputPath)
		if err != nil {
			return nil, err
		}
	}

	if !opts.AbsenceOnly {
		inputPath, err := DetectBlip(folder, opts.BlipName)
		if err != nil {
			return nil, err
		}
		var outputPath string
		if opts.Append {
			outputPath = opts.CumulativePath
			if outputPath == "" {
				outputPath = filepath.Join(outputDir, "blip_cumulative.csv")
			}
		} else {
			outputPath = filepath.Join(outputDir, stem(inputPath)+"_output.xlsx")
		}
		result.Blip, err = s.RunBlip(inputPath, outputPath, opts.Append)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return "excel"
	default:
		return "csv"
	}
}
