package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"wavextract/internal/config"
	"wavextract/internal/extract"
	"wavextract/internal/history"
	"wavextract/internal/logging"
	"wavextract/internal/media/pcmx"
	"wavextract/internal/preflight"
	"wavextract/internal/report"
	"wavextract/internal/runlock"
	"wavextract/internal/scan"
)

type rootFlags struct {
	inputDir   string
	inputFile  string
	outputDir  string
	codec      string
	sampleRate int
	channels   int
	overwrite  bool
	wave64     bool
	verbose    bool
	noHistory  bool
	configPath string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "wavextract",
		Short: "Extract audio streams from media files as uncompressed PCM",
		Long: `wavextract probes media files with ffprobe, transcodes every audio
stream to PCM with ffmpeg, and records per-stream outcomes to a CSV report
in the output directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtraction(cmd, flags)
		},
	}

	rootCmd.Flags().StringVarP(&flags.inputDir, "input-dir", "d", "", "Directory to scan recursively for media files")
	rootCmd.Flags().StringVarP(&flags.inputFile, "input-file", "f", "", "Single media file to process")
	rootCmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "Output directory (default: wav_extracted next to the input)")
	rootCmd.Flags().StringVar(&flags.codec, "codec", "", "PCM codec: pcm_s16le, pcm_s24le, or pcm_s32le (default pcm_s24le)")
	rootCmd.Flags().IntVar(&flags.sampleRate, "sample-rate", 0, "Force output sample rate in Hz (0 keeps the source rate)")
	rootCmd.Flags().IntVar(&flags.channels, "channels", 0, "Force output channel count (0 keeps the source layout)")
	rootCmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Overwrite existing output files")
	rootCmd.Flags().BoolVar(&flags.wave64, "w64", false, "Write Wave64 (.w64) instead of .wav")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Echo external tool command lines")
	rootCmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Skip recording the run in the history database")
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")

	return rootCmd
}

// selectInput enforces the exactly-one-input rule and returns the chosen
// absolute path plus whether it is a directory scan.
func selectInput(inputDir, inputFile string) (string, bool, error) {
	switch {
	case inputDir == "" && inputFile == "":
		return "", false, errors.New("exactly one of --input-dir or --input-file is required")
	case inputDir != "" && inputFile != "":
		return "", false, errors.New("--input-dir and --input-file are mutually exclusive")
	case inputDir != "":
		abs, err := filepath.Abs(inputDir)
		if err != nil {
			return "", false, fmt.Errorf("resolve input directory: %w", err)
		}
		return abs, true, nil
	default:
		abs, err := filepath.Abs(inputFile)
		if err != nil {
			return "", false, fmt.Errorf("resolve input file: %w", err)
		}
		return abs, false, nil
	}
}

// defaultOutputDir places outputs in a fixed-name subdirectory next to the
// input: inside a scanned directory, beside a single file.
func defaultOutputDir(input string, isDir bool, dirName string) string {
	if isDir {
		return filepath.Join(input, dirName)
	}
	return filepath.Join(filepath.Dir(input), dirName)
}

// buildSettings merges config defaults with explicit flag overrides.
func buildSettings(cfg *config.Config, flags *rootFlags, changed func(string) bool) (pcmx.Settings, error) {
	codecName := cfg.Encoding.Codec
	if changed("codec") {
		codecName = flags.codec
	}
	codec, err := pcmx.ParseCodec(codecName)
	if err != nil {
		return pcmx.Settings{}, err
	}

	settings := pcmx.Settings{
		Codec:      codec,
		SampleRate: cfg.Encoding.SampleRate,
		Channels:   cfg.Encoding.Channels,
		Container:  pcmx.ContainerWAV,
		Overwrite:  cfg.Encoding.Overwrite,
	}
	if changed("sample-rate") {
		settings.SampleRate = flags.sampleRate
	}
	if changed("channels") {
		settings.Channels = flags.channels
	}
	if settings.SampleRate < 0 {
		return pcmx.Settings{}, fmt.Errorf("sample rate must be >= 0, got %d", settings.SampleRate)
	}
	if settings.Channels < 0 {
		return pcmx.Settings{}, fmt.Errorf("channel count must be >= 0, got %d", settings.Channels)
	}
	if cfg.Encoding.Wave64 || flags.wave64 {
		settings.Container = pcmx.ContainerW64
	}
	if flags.overwrite {
		settings.Overwrite = true
	}
	return settings, nil
}

func runExtraction(cmd *cobra.Command, flags *rootFlags) error {
	input, isDir, err := selectInput(flags.inputDir, flags.inputFile)
	if err != nil {
		return err
	}

	cfg, _, _, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if flags.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	settings, err := buildSettings(cfg, flags, cmd.Flags().Changed)
	if err != nil {
		return err
	}

	outputDir := flags.outputDir
	if outputDir == "" {
		outputDir = defaultOutputDir(input, isDir, cfg.Output.DirName)
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}

	if err := preflight.Run(cfg, outputDir); err != nil {
		return err
	}

	lock, err := runlock.Acquire(filepath.Join(outputDir, history.DirName, "run.lock"))
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	var files []string
	if isDir {
		files, err = scan.Dir(input, scan.Options{
			Extensions:  cfg.Scan.Extensions,
			SkipDirName: cfg.Output.DirName,
		})
	} else {
		files, err = scan.File(input)
	}
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("no media files found", "input", input)
	}

	logger.Info("starting extraction",
		"files", len(files),
		"codec", string(settings.Codec),
		"container", string(settings.Container),
		"output", outputDir)

	orchestrator := extract.New(
		logger,
		extract.FFprobeProber{Binary: cfg.Tools.FFprobe, Logger: logger},
		pcmx.NewCLI(pcmx.WithBinary(cfg.Tools.FFmpeg), pcmx.WithLogger(logger)),
		settings,
		outputDir,
	)

	startedAt := time.Now().UTC()
	result, err := orchestrator.Run(cmd.Context(), files)
	if err != nil {
		return err
	}
	finishedAt := time.Now().UTC()

	reportPath := filepath.Join(outputDir, report.FileName)
	if err := report.Write(reportPath, result.Outcomes); err != nil {
		return err
	}
	logger.Info("report written", "path", reportPath)

	if cfg.History.Enabled && !flags.noHistory {
		if err := saveHistory(cmd, input, outputDir, settings, startedAt, finishedAt, result); err != nil {
			// History is a convenience record; its failure must not fail a
			// run whose report was already written.
			logger.Warn("history not recorded", "error", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(cmd.OutOrStdout(), result.Summary))
	return nil
}

func saveHistory(cmd *cobra.Command, input, outputDir string, settings pcmx.Settings, startedAt, finishedAt time.Time, result extract.Result) error {
	store, err := history.Open(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	run := history.Run{
		ID:         uuid.NewString(),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		InputPath:  input,
		OutputDir:  outputDir,
		Codec:      string(settings.Codec),
		Container:  string(settings.Container),
		Summary:    result.Summary,
	}
	return store.SaveRun(cmd.Context(), run, result.Outcomes)
}
