package config

import (
	"fmt"
	"strings"
)

var validCodecs = map[string]struct{}{
	"pcm_s16le": {},
	"pcm_s24le": {},
	"pcm_s32le": {},
}

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	var problems []string

	if _, ok := validCodecs[c.Encoding.Codec]; !ok {
		problems = append(problems, fmt.Sprintf("encoding.codec: unsupported value %q (expected pcm_s16le, pcm_s24le, or pcm_s32le)", c.Encoding.Codec))
	}
	if c.Encoding.SampleRate < 0 {
		problems = append(problems, fmt.Sprintf("encoding.sample_rate: must be >= 0, got %d", c.Encoding.SampleRate))
	}
	if c.Encoding.Channels < 0 {
		problems = append(problems, fmt.Sprintf("encoding.channels: must be >= 0, got %d", c.Encoding.Channels))
	}
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
