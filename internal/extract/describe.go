package extract

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wavextract/internal/media/ffprobe"
)

var titleCaser = cases.Title(language.Und)

// DescribeStream renders a short human-readable track description for
// progress output, e.g. "aac 48000 Hz 2ch stereo (Eng)".
func DescribeStream(stream ffprobe.Stream) string {
	parts := make([]string, 0, 4)
	if codec := strings.TrimSpace(stream.CodecName); codec != "" {
		parts = append(parts, codec)
	}
	if rate := stream.SampleRateHz(); rate > 0 {
		parts = append(parts, fmt.Sprintf("%d Hz", rate))
	}
	if stream.Channels > 0 {
		parts = append(parts, fmt.Sprintf("%dch", stream.Channels))
	}
	if layout := strings.TrimSpace(stream.ChannelLayout); layout != "" {
		parts = append(parts, layout)
	}
	description := strings.Join(parts, " ")
	if description == "" {
		description = "unknown"
	}
	if lang := stream.Tags.Language(); lang != "" {
		description += fmt.Sprintf(" (%s)", titleCaser.String(lang))
	}
	return description
}
