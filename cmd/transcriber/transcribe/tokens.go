package transcribe

import "math"

// BuildTokens pairs the recognized text units with their millisecond
// intervals, converting times to seconds at millisecond precision.
// Recognition and alignment models can disagree in length, so pairing
// stops at the shorter of the two sequences. Intervals with fewer than two
// values are dropped.
func BuildTokens(text string, timestamps [][]int64) []TimedToken {
	units := []rune(text)

	n := len(units)
	if len(timestamps) < n {
		n = len(timestamps)
	}

	tokens := make([]TimedToken, 0, n)
	for i := 0; i < n; i++ {
		ts := timestamps[i]
		if len(ts) < 2 {
			continue
		}
		tokens = append(tokens, TimedToken{
			Text:  string(units[i]),
			Start: roundToMs(float64(ts[0]) / 1000),
			End:   roundToMs(float64(ts[1]) / 1000),
		})
	}

	return tokens
}

// roundToMs rounds secs to millisecond precision.
func roundToMs(secs float64) float64 {
	return math.Round(secs*1000) / 1000
}
