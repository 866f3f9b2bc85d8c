package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wavextract/internal/config"
	"wavextract/internal/media/pcmx"
	"wavextract/internal/report"
)

func summaryFixture() report.Summary {
	return report.Summary{OK: 3, Failed: 1, SkippedExists: 2}
}

func TestSelectInputRequiresExactlyOne(t *testing.T) {
	if _, _, err := selectInput("", ""); err == nil {
		t.Fatal("expected error when neither input is given")
	}
	if _, _, err := selectInput("/a", "/b.mkv"); err == nil {
		t.Fatal("expected error when both inputs are given")
	}
	path, isDir, err := selectInput("/media/discs", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isDir || path == "" {
		t.Fatalf("expected directory selection, got %q isDir=%v", path, isDir)
	}
	path, isDir, err = selectInput("", "movie.mkv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isDir || !filepath.IsAbs(path) {
		t.Fatalf("expected absolute file selection, got %q isDir=%v", path, isDir)
	}
}

func TestDefaultOutputDir(t *testing.T) {
	if got := defaultOutputDir("/media/discs", true, "wav_extracted"); got != "/media/discs/wav_extracted" {
		t.Fatalf("directory input: got %q", got)
	}
	if got := defaultOutputDir("/media/discs/movie.mkv", false, "wav_extracted"); got != "/media/discs/wav_extracted" {
		t.Fatalf("file input: got %q", got)
	}
}

func TestBuildSettingsDefaults(t *testing.T) {
	cfg := config.Default()
	flags := &rootFlags{}
	settings, err := buildSettings(&cfg, flags, func(string) bool { return false })
	if err != nil {
		t.Fatalf("buildSettings returned error: %v", err)
	}
	if settings.Codec != pcmx.CodecPCM24 {
		t.Fatalf("expected pcm_s24le default, got %q", settings.Codec)
	}
	if settings.Container != pcmx.ContainerWAV {
		t.Fatalf("expected wav default, got %q", settings.Container)
	}
	if settings.SampleRate != 0 || settings.Channels != 0 || settings.Overwrite {
		t.Fatalf("expected passthrough defaults, got %+v", settings)
	}
}

func TestBuildSettingsFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Encoding.Codec = "pcm_s16le"
	cfg.Encoding.SampleRate = 96000
	flags := &rootFlags{codec: "pcm_s32le", sampleRate: 44100, overwrite: true, wave64: true}
	changed := map[string]bool{"codec": true, "sample-rate": true}

	settings, err := buildSettings(&cfg, flags, func(name string) bool { return changed[name] })
	if err != nil {
		t.Fatalf("buildSettings returned error: %v", err)
	}
	if settings.Codec != pcmx.CodecPCM32 {
		t.Fatalf("expected flag codec to win, got %q", settings.Codec)
	}
	if settings.SampleRate != 44100 {
		t.Fatalf("expected flag sample rate to win, got %d", settings.SampleRate)
	}
	if settings.Container != pcmx.ContainerW64 {
		t.Fatalf("expected w64 container, got %q", settings.Container)
	}
	if !settings.Overwrite {
		t.Fatal("expected overwrite enabled")
	}
}

func TestBuildSettingsRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	flags := &rootFlags{codec: "mp3"}
	if _, err := buildSettings(&cfg, flags, func(name string) bool { return name == "codec" }); err == nil {
		t.Fatal("expected error for unsupported codec")
	}
	flags = &rootFlags{sampleRate: -5}
	if _, err := buildSettings(&cfg, flags, func(name string) bool { return name == "sample-rate" }); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
}

func TestRootCommandRejectsConflictingInputs(t *testing.T) {
	cmd := newRootCommand()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--input-dir", t.TempDir(), "--input-file", "movie.mkv"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected both-inputs error")
	}
}

func TestRootCommandRejectsMissingInputs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected neither-input error")
	}
}

// installFakeTools puts stub ffprobe/ffmpeg scripts on PATH. The ffprobe stub
// reports one video and two audio streams (global indices 1 and 2, the first
// tagged language=eng); the ffmpeg stub creates its destination file.
func installFakeTools(t *testing.T) {
	t.Helper()
	binDir := t.TempDir()

	ffprobe := `#!/bin/sh
cat <<'EOF'
{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "dts", "codec_type": "audio", "sample_rate": "48000", "channels": 6, "channel_layout": "5.1", "tags": {"language": "eng"}},
    {"index": 2, "codec_name": "aac", "codec_type": "audio", "sample_rate": "48000", "channels": 2, "channel_layout": "stereo"}
  ],
  "format": {"filename": "movie.mkv", "nb_streams": 3, "format_name": "matroska"}
}
EOF
`
	ffmpeg := `#!/bin/sh
for last; do :; done
printf 'RIFF' > "$last"
`
	if err := os.WriteFile(filepath.Join(binDir, "ffprobe"), []byte(ffprobe), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(binDir, "ffmpeg"), []byte(ffmpeg), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+"/bin"+string(os.PathListSeparator)+"/usr/bin")
	t.Setenv("HOME", t.TempDir())
}

func TestRootCommandEndToEnd(t *testing.T) {
	installFakeTools(t)

	inputDir := t.TempDir()
	source := filepath.Join(inputDir, "movie.mkv")
	if err := os.WriteFile(source, []byte("mkv"), 0o644); err != nil {
		t.Fatal(err)
	}
	outputDir := filepath.Join(t.TempDir(), "out")

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--input-file", source, "--output", outputDir, "--no-history"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v\nstderr: %s", err, stderr.String())
	}

	for _, name := range []string{"movie__idx1__eng.wav", "movie__idx2.wav"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Fatalf("expected output %s: %v", name, err)
		}
	}

	reportFile, err := os.Open(filepath.Join(outputDir, "wav_extraction_report.csv"))
	if err != nil {
		t.Fatalf("expected report: %v", err)
	}
	defer reportFile.Close()
	rows, err := csv.NewReader(reportFile).ReadAll()
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %v", rows)
	}
	if rows[1][2] != "1" || rows[1][4] != "OK" || rows[2][2] != "2" || rows[2][4] != "OK" {
		t.Fatalf("expected two OK rows in index order, got %v", rows[1:])
	}

	if !strings.Contains(stdout.String(), "OK") {
		t.Fatalf("expected summary on stdout, got %q", stdout.String())
	}
}

func TestRenderSummaryPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	out := renderSummary(&buf, summaryFixture())
	if !strings.Contains(out, "SkippedExists") || !strings.Contains(out, "Total") {
		t.Fatalf("unexpected summary table: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI sequences for non-tty writer: %q", out)
	}
}
