package pcmx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Codec identifies the target PCM sample encoding.
type Codec string

// Supported PCM codecs, by ffmpeg encoder name.
const (
	CodecPCM16 Codec = "pcm_s16le"
	CodecPCM24 Codec = "pcm_s24le"
	CodecPCM32 Codec = "pcm_s32le"
)

// ParseCodec validates a codec selector.
func ParseCodec(value string) (Codec, error) {
	switch Codec(strings.ToLower(strings.TrimSpace(value))) {
	case CodecPCM16:
		return CodecPCM16, nil
	case CodecPCM24:
		return CodecPCM24, nil
	case CodecPCM32:
		return CodecPCM32, nil
	default:
		return "", fmt.Errorf("unsupported pcm codec %q (expected pcm_s16le, pcm_s24le, or pcm_s32le)", value)
	}
}

// Container identifies the output container kind.
type Container string

// Supported containers. Wave64 lifts the ~4GB WAV size ceiling.
const (
	ContainerWAV Container = "wav"
	ContainerW64 Container = "w64"
)

// Extension returns the file extension for the container, dot included.
func (c Container) Extension() string {
	if c == ContainerW64 {
		return ".w64"
	}
	return ".wav"
}

// Settings is the process-wide encoding configuration, immutable for a run.
// Zero SampleRate or Channels means passthrough.
type Settings struct {
	Codec      Codec
	SampleRate int
	Channels   int
	Container  Container
	Overwrite  bool
}

// Option configures the CLI extractor.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLogger attaches a logger used to echo constructed command lines.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		c.logger = logger
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary string
	logger *slog.Logger
}

// NewCLI constructs a CLI extractor using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// BuildArgs assembles the ffmpeg argument list for extracting the stream at
// the given absolute container index into dest. Exposed for tests.
func BuildArgs(source string, streamIndex int, dest string, settings Settings) []string {
	overwrite := "-n"
	if settings.Overwrite {
		overwrite = "-y"
	}
	args := []string{
		overwrite,
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-vn",
		"-sn",
		"-dn",
	}
	if settings.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(settings.SampleRate))
	}
	if settings.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(settings.Channels))
	}
	codec := settings.Codec
	if codec == "" {
		codec = CodecPCM24
	}
	container := settings.Container
	if container == "" {
		container = ContainerWAV
	}
	args = append(args, "-c:a", string(codec), "-f", string(container), dest)
	return args
}

// Extract transcodes one stream of source into dest. The stream index is the
// absolute container index; a file may interleave video and subtitle streams,
// so audio-relative indexing cannot address the correct track.
func (c *CLI) Extract(ctx context.Context, source string, streamIndex int, dest string, settings Settings) error {
	if strings.TrimSpace(source) == "" {
		return errors.New("extract: source path required")
	}
	if strings.TrimSpace(dest) == "" {
		return errors.New("extract: destination path required")
	}
	if streamIndex < 0 {
		return fmt.Errorf("extract: invalid stream index %d", streamIndex)
	}

	args := BuildArgs(source, streamIndex, dest, settings)
	if c.logger != nil {
		c.logger.Debug("running ffmpeg", "command", c.binary+" "+strings.Join(args, " "))
	}

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		diagnostic := strings.TrimSpace(string(output))
		if diagnostic == "" {
			return fmt.Errorf("ffmpeg extract: %w", err)
		}
		return fmt.Errorf("ffmpeg extract: %w: %s", err, diagnostic)
	}
	return nil
}
