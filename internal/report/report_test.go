package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteProducesOrderedRows(t *testing.T) {
	outcomes := []Outcome{
		StreamOutcome("/media/movie.mkv", 1, "/out/movie__idx1__eng.wav", StatusOK, ""),
		StreamOutcome("/media/movie.mkv", 2, "/out/movie__idx2.wav", StatusFailed, "exit status 1"),
		FileOutcome("/media/readme.txt", StatusSkippedNotMedia, "probe: invalid data"),
		FileOutcome("/media/silent.mkv", StatusSkippedNoAudio, ""),
	}

	path := filepath.Join(t.TempDir(), FileName)
	if err := Write(path, outcomes); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header + 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "FileName" || rows[0][5] != "Error" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "1" || rows[1][4] != "OK" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][4] != "Failed" || rows[2][5] != "exit status 1" {
		t.Fatalf("unexpected failed row: %v", rows[2])
	}
	// File-level skips carry no stream index and no output path.
	if rows[3][2] != "" || rows[3][3] != "" {
		t.Fatalf("expected empty index and outpath for file skip: %v", rows[3])
	}
	if rows[4][4] != "SkippedNoAudio" {
		t.Fatalf("unexpected no-audio row: %v", rows[4])
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{
		{Status: StatusOK},
		{Status: StatusOK},
		{Status: StatusFailed},
		{Status: StatusSkippedExists},
		{Status: StatusSkippedNoAudio},
		{Status: StatusSkippedNotMedia},
	}
	summary := Summarize(outcomes)
	if summary.OK != 2 || summary.Failed != 1 || summary.SkippedExists != 1 ||
		summary.SkippedNoAudio != 1 || summary.SkippedNotMedia != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Total() != 6 {
		t.Fatalf("expected total 6, got %d", summary.Total())
	}
}

func TestWriteEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Write(path, nil); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected header row even for empty run")
	}
}
