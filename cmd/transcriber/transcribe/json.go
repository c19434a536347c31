package transcribe

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

type jsonWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type jsonSegment struct {
	ID    int        `json:"id"`
	Start float64    `json:"start"`
	End   float64    `json:"end"`
	Text  string     `json:"text"`
	Words []jsonWord `json:"words"`
}

type jsonMetadata struct {
	Duration      float64 `json:"duration"`
	Model         string  `json:"model"`
	Language      string  `json:"language"`
	GeneratedAt   string  `json:"generated_at"`
	SegmentsCount int     `json:"segments_count"`
}

type jsonDocument struct {
	Metadata jsonMetadata  `json:"metadata"`
	Segments []jsonSegment `json:"segments"`
	FullText string        `json:"full_text"`
}

// JSON writes the transcript as an indented UTF-8 JSON document. Field
// names and nesting are a compatibility surface for downstream consumers.
func (t Transcript) JSON(w io.Writer) error {
	doc := jsonDocument{
		Metadata: jsonMetadata{
			Duration:      t.Duration,
			Model:         t.Model,
			Language:      t.Language,
			GeneratedAt:   t.GeneratedAt.Format(time.RFC3339),
			SegmentsCount: len(t.Segments),
		},
		Segments: make([]jsonSegment, 0, len(t.Segments)),
		FullText: t.FullText,
	}

	for _, seg := range t.Segments {
		words := make([]jsonWord, 0, len(seg.Tokens))
		for _, tok := range seg.Tokens {
			words = append(words, jsonWord{
				Word:  tok.Text,
				Start: tok.Start,
				End:   tok.End,
			})
		}
		doc.Segments = append(doc.Segments, jsonSegment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
			Words: words,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}

	return nil
}
