// Package pcmx wraps the ffmpeg command line for single-stream PCM
// extraction. It selects streams by absolute container index and never
// inspects media itself; ffmpeg owns all demuxing and codec work.
package pcmx
