package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// FileName is the fixed report name inside the output directory.
const FileName = "wav_extraction_report.csv"

// Status is the closed set of per-record outcomes.
type Status string

const (
	StatusOK              Status = "OK"
	StatusFailed          Status = "Failed"
	StatusSkippedExists   Status = "SkippedExists"
	StatusSkippedNoAudio  Status = "SkippedNoAudio"
	StatusSkippedNotMedia Status = "SkippedNotMedia"
)

// NoStream marks a file-level outcome that has no stream index.
const NoStream = -1

// Outcome is one row of the run report. StreamIndex and OutPath are empty
// for file-level skips. Outcomes are never mutated after creation.
type Outcome struct {
	FileName    string
	FullPath    string
	StreamIndex int
	OutPath     string
	Status      Status
	Error       string
}

// FileOutcome builds a file-level record (probe failure or no audio).
func FileOutcome(path string, status Status, errMsg string) Outcome {
	return Outcome{
		FileName:    filepath.Base(path),
		FullPath:    path,
		StreamIndex: NoStream,
		Status:      status,
		Error:       errMsg,
	}
}

// StreamOutcome builds a per-stream record.
func StreamOutcome(path string, streamIndex int, outPath string, status Status, errMsg string) Outcome {
	return Outcome{
		FileName:    filepath.Base(path),
		FullPath:    path,
		StreamIndex: streamIndex,
		OutPath:     outPath,
		Status:      status,
		Error:       errMsg,
	}
}

var header = []string{"FileName", "FullPath", "StreamIndex", "OutPath", "Status", "Error"}

// Write serializes the ordered outcome sequence to a CSV file at path,
// one row per record, after all processing completes.
func Write(path string, outcomes []Outcome) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, outcome := range outcomes {
		index := ""
		if outcome.StreamIndex != NoStream {
			index = strconv.Itoa(outcome.StreamIndex)
		}
		row := []string{
			outcome.FileName,
			outcome.FullPath,
			index,
			outcome.OutPath,
			string(outcome.Status),
			outcome.Error,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return file.Close()
}

// Summary aggregates outcome counts for a run.
type Summary struct {
	OK              int
	Failed          int
	SkippedExists   int
	SkippedNoAudio  int
	SkippedNotMedia int
}

// Total returns the number of records summarized.
func (s Summary) Total() int {
	return s.OK + s.Failed + s.SkippedExists + s.SkippedNoAudio + s.SkippedNotMedia
}

// Summarize tallies outcomes by status.
func Summarize(outcomes []Outcome) Summary {
	var summary Summary
	for _, outcome := range outcomes {
		switch outcome.Status {
		case StatusOK:
			summary.OK++
		case StatusFailed:
			summary.Failed++
		case StatusSkippedExists:
			summary.SkippedExists++
		case StatusSkippedNoAudio:
			summary.SkippedNoAudio++
		case StatusSkippedNotMedia:
			summary.SkippedNotMedia++
		}
	}
	return summary
}
