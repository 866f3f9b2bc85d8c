package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Tags holds stream-level metadata tags keyed by lowercase tag name.
// Only language, title, and handler_name are interpreted; unknown keys are
// carried but ignored.
type Tags map[string]string

// Language returns the stream language tag, or "".
func (t Tags) Language() string {
	return strings.TrimSpace(t["language"])
}

// Title returns the stream title tag, falling back to handler_name when no
// explicit title is present.
func (t Tags) Title() string {
	if title := strings.TrimSpace(t["title"]); title != "" {
		return title
	}
	return strings.TrimSpace(t["handler_name"])
}

// Stream describes a single stream in the media container. Index is the
// absolute container-wide index, not the audio-relative one.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	ChannelLayout string `json:"channel_layout"`
	Tags          Tags   `json:"tags"`
}

// SampleRateHz returns the stream sample rate in Hz, or 0 when unavailable.
func (s Stream) SampleRateHz() int {
	rate, err := strconv.Atoi(strings.TrimSpace(s.SampleRate))
	if err != nil || rate < 0 {
		return 0
	}
	return rate
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// AudioStreams returns the audio streams in container order.
func (r Result) AudioStreams() []Stream {
	var audio []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			audio = append(audio, stream)
		}
	}
	return audio
}

// ProbeError marks a file the probe tool could not interpret as media.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response. Tool failures and undecodable output are returned as *ProbeError.
func Inspect(ctx context.Context, logger *slog.Logger, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	args := []string{"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path}
	if logger != nil {
		logger.Debug("running ffprobe", "command", binary+" "+strings.Join(args, " "))
	}

	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		detail := err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			detail = fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, &ProbeError{Path: path, Err: detail}
	}
	if len(strings.TrimSpace(string(output))) == 0 {
		return Result{}, &ProbeError{Path: path, Err: errors.New("empty ffprobe output")}
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, &ProbeError{Path: path, Err: fmt.Errorf("decode output: %w", err)}
	}
	return result, nil
}
