// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no wavextract-specific dependencies and could be
// extracted as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Tags: stream tag lookup with the recognized-key accessors
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// A failed execution or undecodable payload is reported as *ProbeError so
// callers can distinguish "not usable media" from everything else.
package ffprobe
