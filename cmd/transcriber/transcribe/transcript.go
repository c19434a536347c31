package transcribe

import (
	"time"
)

// Transcript is the delivery-ready form of a transcription: the final
// ordered segment list plus document metadata.
type Transcript struct {
	Segments    []Segment
	FullText    string
	Duration    float64
	Model       string
	Language    string
	GeneratedAt time.Time
}

// NewTranscript runs the segmentation pipeline over a recognition result:
// token building, punctuation split and, unless the raw strategy is
// selected, duration-bounded merging. IDs are reassigned over the final
// list and the document duration is the end of its last segment.
func NewTranscript(rec Recognition, model, language string, opts SegmentOptions) Transcript {
	tokens := BuildTokens(rec.Text, rec.Timestamps)
	segments := SplitByPunctuation(tokens)

	if opts.MergeStrategy != MergeStrategyRaw {
		segments = MergeByDuration(segments, opts.MaxSegmentDuration)
	}

	for i := range segments {
		segments[i].ID = i
	}

	var duration float64
	if len(segments) > 0 {
		duration = segments[len(segments)-1].End
	}

	return Transcript{
		Segments:    segments,
		FullText:    rec.Text,
		Duration:    roundToMs(duration),
		Model:       model,
		Language:    language,
		GeneratedAt: time.Now().UTC(),
	}
}
