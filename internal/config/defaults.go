package config

const (
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultCodec         = "pcm_s24le"
	defaultOutputDirName = "wav_extracted"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

func defaultExtensions() []string {
	return []string{
		".mkv", ".mp4", ".m4v", ".mov", ".avi", ".webm",
		".mts", ".m2ts", ".ts", ".wmv", ".flv", ".mxf",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Encoding: Encoding{
			Codec: defaultCodec,
		},
		Scan: Scan{
			Extensions: defaultExtensions(),
		},
		Output: Output{
			DirName: defaultOutputDirName,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
