package extract

import (
	"context"
	"log/slog"

	"wavextract/internal/media/ffprobe"
)

// FFprobeProber adapts the ffprobe wrapper to the Prober interface with a
// fixed binary and logger.
type FFprobeProber struct {
	Binary string
	Logger *slog.Logger
}

// Inspect implements Prober.
func (p FFprobeProber) Inspect(ctx context.Context, path string) (ffprobe.Result, error) {
	return ffprobe.Inspect(ctx, p.Logger, p.Binary, path)
}
