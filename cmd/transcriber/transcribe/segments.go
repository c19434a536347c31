package transcribe

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// sentenceEnders is the closed set of terminal punctuation: full-width and
// half-width sentence enders plus ellipsis.
var sentenceEnders = map[rune]bool{
	'。': true,
	'？': true,
	'！': true,
	'.': true,
	'?': true,
	'!': true,
	'…': true,
}

// isTerminalToken reports whether text is exactly one terminal punctuation
// character.
func isTerminalToken(text string) bool {
	r, size := utf8.DecodeRuneInString(text)
	return size == len(text) && sentenceEnders[r]
}

// isSentenceEnd reports whether text, ignoring surrounding whitespace, ends
// with terminal punctuation.
func isSentenceEnd(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	return sentenceEnders[r]
}

// SplitByPunctuation partitions tokens into segments at terminal
// punctuation. The punctuation token closes the segment and remains part
// of its text; trailing tokens with no terminal punctuation form a final
// segment. Segment IDs are provisional until merging has completed.
func SplitByPunctuation(tokens []TimedToken) []Segment {
	var segments []Segment
	var buf []TimedToken

	flush := func() {
		if len(buf) == 0 {
			return
		}
		var sb strings.Builder
		for _, tok := range buf {
			sb.WriteString(tok.Text)
		}
		segments = append(segments, Segment{
			ID:     len(segments),
			Start:  buf[0].Start,
			End:    buf[len(buf)-1].End,
			Text:   sb.String(),
			Tokens: buf,
		})
		buf = nil
	}

	for _, tok := range tokens {
		buf = append(buf, tok)
		if isTerminalToken(tok.Text) {
			flush()
		}
	}
	flush()

	return segments
}

// MergeByDuration joins adjacent segments as long as the span measured
// from the first joined segment's start stays strictly below maxDuration
// and the accumulated text does not already end a sentence. A single
// segment longer than maxDuration passes through whole.
func MergeByDuration(segments []Segment, maxDuration float64) []Segment {
	if len(segments) == 0 {
		return nil
	}

	var merged []Segment
	current := cloneSegment(segments[0])

	for _, seg := range segments[1:] {
		span := seg.End - current.Start

		if span < maxDuration && !isSentenceEnd(current.Text) {
			slog.Debug("joining segments", slog.Int("id", seg.ID), slog.Float64("span", span))
			current.End = seg.End
			current.Text += seg.Text
			current.Tokens = append(current.Tokens, seg.Tokens...)
		} else {
			merged = append(merged, current)
			current = cloneSegment(seg)
		}
	}
	merged = append(merged, current)

	slog.Debug("merge done", slog.Int("inLen", len(segments)), slog.Int("outLen", len(merged)))

	return merged
}

// cloneSegment copies seg with its own tokens backing array so the merger
// never aliases its input.
func cloneSegment(seg Segment) Segment {
	seg.Tokens = append([]TimedToken(nil), seg.Tokens...)
	return seg
}
