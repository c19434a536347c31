package transcribe

import (
	"fmt"
	"io"
	"math"
)

// srtTS converts secs in the HH:MM:SS,mmm SRT timestamp format. The comma
// separator is part of the format. Hours are not bounded: spans beyond 99
// hours overflow the two-digit field.
func srtTS(secs float64) string {
	sMs := int64(1000)
	mMs := 60 * sMs
	hMs := 60 * mMs

	ts := int64(math.Round(secs * 1000))

	h := ts / hMs
	m := (ts - (h * hMs)) / mMs
	s := ((ts - (h * hMs)) - m*mMs) / sMs
	ms := ((ts - (h * hMs)) - m*mMs) - s*sMs

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// SRT writes the transcript as an SRT subtitle track: one block per
// segment with its 1-based sequence number, the time range line and the
// text, blocks separated by a blank line.
func (t Transcript) SRT(w io.Writer) error {
	for _, seg := range t.Segments {
		_, err := fmt.Fprintf(w, "%d\n", seg.ID+1)
		if err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s --> %s\n", srtTS(seg.Start), srtTS(seg.End))
		if err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n\n", seg.Text)
		if err != nil {
			return fmt.Errorf("failed to write: %w", err)
		}
	}

	return nil
}
