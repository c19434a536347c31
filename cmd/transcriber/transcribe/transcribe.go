package transcribe

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

const (
	// defaults
	MergeStrategyDefault      = MergeStrategySentenceWithLimit
	MaxSegmentDurationDefault = 15.0
	MinSegmentDurationDefault = 3.0
)

type MergeStrategy string

const (
	// MergeStrategySentenceWithLimit joins sentence segments until the
	// running span would reach the configured maximum duration.
	MergeStrategySentenceWithLimit MergeStrategy = "sentence_with_limit"
	// MergeStrategyRaw keeps the punctuation split as is.
	MergeStrategyRaw MergeStrategy = "raw"
)

func (s MergeStrategy) IsValid() bool {
	switch s {
	case MergeStrategySentenceWithLimit, MergeStrategyRaw:
		return true
	default:
		return false
	}
}

// TimedToken is a recognized text unit (typically a single character)
// paired with its start and end time in seconds.
type TimedToken struct {
	Text  string
	Start float64
	End   float64
}

type Segment struct {
	ID     int
	Start  float64
	End    float64
	Text   string
	Tokens []TimedToken
}

func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Recognition is the raw model output: the recognized text plus one
// millisecond interval per text unit, in text order. The interval list can
// be shorter than the text when recognition and alignment disagree.
type Recognition struct {
	Text       string
	Timestamps [][]int64
}

type Recognizer interface {
	Recognize(ctx context.Context, audioPath string) (Recognition, error)
	Destroy() error
}

type SegmentOptions struct {
	MergeStrategy MergeStrategy
	// MaxSegmentDuration is the maximum span, in seconds, a merged segment
	// may accumulate. A single raw segment already longer than this is kept
	// whole: merging never splits.
	MaxSegmentDuration float64
	// MinSegmentDuration is accepted for compatibility with existing
	// callers but is not enforced by the merger.
	MinSegmentDuration float64
}

func (o *SegmentOptions) SetDefaults() {
	if o.MergeStrategy == "" {
		o.MergeStrategy = MergeStrategyDefault
	}
	if o.MaxSegmentDuration == 0 {
		o.MaxSegmentDuration = MaxSegmentDurationDefault
	}
	if o.MinSegmentDuration == 0 {
		o.MinSegmentDuration = MinSegmentDurationDefault
	}
}

func (o *SegmentOptions) IsValid() error {
	if !o.MergeStrategy.IsValid() {
		return fmt.Errorf("MergeStrategy value is not valid")
	}

	if o.MaxSegmentDuration <= 0 {
		return fmt.Errorf("MaxSegmentDuration should be a positive number")
	}

	if o.MinSegmentDuration < 0 {
		return fmt.Errorf("MinSegmentDuration should not be a negative number")
	}

	if o.MinSegmentDuration > o.MaxSegmentDuration {
		return fmt.Errorf("MinSegmentDuration should not exceed MaxSegmentDuration")
	}

	return nil
}

func (o *SegmentOptions) FromEnv() {
	if val := os.Getenv("SEGMENT_MERGE_STRATEGY"); val != "" {
		o.MergeStrategy = MergeStrategy(val)
	}
	if val, err := strconv.ParseFloat(os.Getenv("MAX_SEGMENT_DURATION"), 64); err == nil {
		o.MaxSegmentDuration = val
	}
	if val, err := strconv.ParseFloat(os.Getenv("MIN_SEGMENT_DURATION"), 64); err == nil {
		o.MinSegmentDuration = val
	}
}
