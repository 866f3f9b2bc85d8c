package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"wavextract/internal/media/ffprobe"
	"wavextract/internal/media/pcmx"
	"wavextract/internal/naming"
	"wavextract/internal/report"
)

// Prober inspects a media file for stream metadata.
type Prober interface {
	Inspect(ctx context.Context, path string) (ffprobe.Result, error)
}

// Transcoder extracts one stream, selected by absolute container index,
// into dest.
type Transcoder interface {
	Extract(ctx context.Context, source string, streamIndex int, dest string, settings pcmx.Settings) error
}

// Orchestrator owns the extraction loop and the outcome sequence.
type Orchestrator struct {
	logger     *slog.Logger
	prober     Prober
	transcoder Transcoder
	settings   pcmx.Settings
	outputDir  string
}

// New constructs an Orchestrator.
func New(logger *slog.Logger, prober Prober, transcoder Transcoder, settings pcmx.Settings, outputDir string) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		logger:     logger,
		prober:     prober,
		transcoder: transcoder,
		settings:   settings,
		outputDir:  outputDir,
	}
}

// Result is the completed run: outcomes in enumeration order plus their
// summary.
type Result struct {
	Outcomes []report.Outcome
	Summary  report.Summary
}

// Run processes every input file sequentially and returns the accumulated
// outcomes. Only the enclosing context can interrupt it; per-item failures
// are recorded and skipped over.
func (o *Orchestrator) Run(ctx context.Context, files []string) (Result, error) {
	var outcomes []report.Outcome
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return Result{Outcomes: outcomes, Summary: report.Summarize(outcomes)}, err
		}
		if len(files) > 1 {
			// Advisory progress only; no effect on control flow.
			o.logger.Info("processing file", "file", filepath.Base(file), "position", fmt.Sprintf("%d/%d", i+1, len(files)))
		}
		outcomes = append(outcomes, o.processFile(ctx, file)...)
	}
	return Result{Outcomes: outcomes, Summary: report.Summarize(outcomes)}, nil
}

// processFile yields either one file-level skip record or one record per
// audio stream, never both.
func (o *Orchestrator) processFile(ctx context.Context, file string) []report.Outcome {
	probe, err := o.prober.Inspect(ctx, file)
	if err != nil {
		o.logger.Warn("not usable media", "file", filepath.Base(file), "error", err)
		return []report.Outcome{report.FileOutcome(file, report.StatusSkippedNotMedia, err.Error())}
	}

	streams := probe.AudioStreams()
	if len(streams) == 0 {
		o.logger.Info("no audio streams", "file", filepath.Base(file))
		return []report.Outcome{report.FileOutcome(file, report.StatusSkippedNoAudio, "")}
	}

	outcomes := make([]report.Outcome, 0, len(streams))
	for _, stream := range streams {
		outcomes = append(outcomes, o.processStream(ctx, file, stream))
	}
	return outcomes
}

func (o *Orchestrator) processStream(ctx context.Context, file string, stream ffprobe.Stream) report.Outcome {
	outPath := naming.BuildOutputPath(filepath.Base(file), stream.Index, stream.Tags, o.outputDir, o.settings.Container.Extension())

	if !o.settings.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			o.logger.Info("output exists, skipping", "stream", stream.Index, "output", filepath.Base(outPath))
			return report.StreamOutcome(file, stream.Index, outPath, report.StatusSkippedExists, "")
		}
	}

	o.logger.Info("extracting stream",
		"stream", stream.Index,
		"track", DescribeStream(stream),
		"output", filepath.Base(outPath))

	if err := o.transcoder.Extract(ctx, file, stream.Index, outPath, o.settings); err != nil {
		o.logger.Error("extraction failed", "stream", stream.Index, "error", err)
		return report.StreamOutcome(file, stream.Index, outPath, report.StatusFailed, err.Error())
	}

	// The tool is trusted but verified: a zero exit with no output file is
	// still a failure.
	if _, err := os.Stat(outPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = errors.New("output missing after successful transcode")
		}
		o.logger.Error("extraction failed", "stream", stream.Index, "error", err)
		return report.StreamOutcome(file, stream.Index, outPath, report.StatusFailed, err.Error())
	}

	return report.StreamOutcome(file, stream.Index, outPath, report.StatusOK, "")
}
