package subtitles

import (
	"fmt"
	"strings"

	"caplearn/internal/domain"
)

// ExportFormat names a downloadable subtitle rendering.
type ExportFormat string

const (
	ExportSRT ExportFormat = "srt"
	ExportVTT ExportFormat = "vtt"
)

// Export renders subtitles in the requested format.
func Export(subs domain.FormattedSubtitles, format ExportFormat) (string, error) {
	switch format {
	case ExportSRT:
		return ToSRT(subs), nil
	case ExportVTT:
		return ToVTT(subs), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// ToSRT renders numbered cues with comma-millisecond timestamps.
func ToSRT(subs domain.FormattedSubtitles) string {
	var b strings.Builder
	for i, segment := range subs.Segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", srtTimestamp(segment.Start), srtTimestamp(segment.End))
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(segment.Text))
	}
	return b.String()
}

// ToVTT renders a WEBVTT document with dot-millisecond timestamps.
func ToVTT(subs domain.FormattedSubtitles) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for i, segment := range subs.Segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", vttTimestamp(segment.Start), vttTimestamp(segment.End))
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(segment.Text))
	}
	return b.String()
}

// srtTimestamp formats seconds as hh:mm:ss,mmm.
func srtTimestamp(seconds float64) string {
	h, m, s, ms := splitTimestamp(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// vttTimestamp formats seconds as hh:mm:ss.mmm.
func vttTimestamp(seconds float64) string {
	h, m, s, ms := splitTimestamp(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// splitTimestamp breaks a second count into clock components.
func splitTimestamp(seconds float64) (h, m, s, ms int) {
	if seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	h = total / 3600
	m = (total % 3600) / 60
	s = total % 60
	ms = int((seconds - float64(total)) * 1000)
	return h, m, s, ms
}
