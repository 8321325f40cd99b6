// Package subtitles projects raw transcripts into the client-facing
// schema and renders downloadable subtitle formats.
package subtitles

import "caplearn/internal/domain"

// Format reshapes a transcript into the stable client schema. Pure
// projection: same segment order, same float values, words always a
// non-nil slice. sourceInfo is attached only when the video came from a
// remote URL.
func Format(t domain.Transcript, sourceInfo *domain.SourceInfo) domain.FormattedSubtitles {
	segments := make([]domain.Segment, 0, len(t.Segments))
	for _, s := range t.Segments {
		words := s.Words
		if words == nil {
			words = []domain.Word{}
		}

		segments = append(segments, domain.Segment{
			ID:    s.ID,
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
			Words: words,
		})
	}

	return domain.FormattedSubtitles{
		Text:       t.Text,
		Segments:   segments,
		SourceInfo: sourceInfo,
	}
}
