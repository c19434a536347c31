package transcribe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentOptionsIsValid(t *testing.T) {
	tcs := []struct {
		name          string
		opts          SegmentOptions
		expectedError string
	}{
		{
			name:          "empty options",
			opts:          SegmentOptions{},
			expectedError: "MergeStrategy value is not valid",
		},
		{
			name: "unknown strategy",
			opts: SegmentOptions{
				MergeStrategy: "aggressive",
			},
			expectedError: "MergeStrategy value is not valid",
		},
		{
			name: "missing max duration",
			opts: SegmentOptions{
				MergeStrategy: MergeStrategySentenceWithLimit,
			},
			expectedError: "MaxSegmentDuration should be a positive number",
		},
		{
			name: "negative min duration",
			opts: SegmentOptions{
				MergeStrategy:      MergeStrategySentenceWithLimit,
				MaxSegmentDuration: 15.0,
				MinSegmentDuration: -1,
			},
			expectedError: "MinSegmentDuration should not be a negative number",
		},
		{
			name: "min exceeds max",
			opts: SegmentOptions{
				MergeStrategy:      MergeStrategySentenceWithLimit,
				MaxSegmentDuration: 3.0,
				MinSegmentDuration: 5.0,
			},
			expectedError: "MinSegmentDuration should not exceed MaxSegmentDuration",
		},
		{
			name: "valid raw strategy",
			opts: SegmentOptions{
				MergeStrategy:      MergeStrategyRaw,
				MaxSegmentDuration: 15.0,
				MinSegmentDuration: 3.0,
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.IsValid()
			if tc.expectedError == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.expectedError)
			}
		})
	}
}

func TestSegmentOptionsSetDefaults(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		var opts SegmentOptions
		opts.SetDefaults()
		require.Equal(t, SegmentOptions{
			MergeStrategy:      MergeStrategySentenceWithLimit,
			MaxSegmentDuration: 15.0,
			MinSegmentDuration: 3.0,
		}, opts)
	})

	t.Run("no overrides", func(t *testing.T) {
		opts := SegmentOptions{
			MergeStrategy:      MergeStrategyRaw,
			MaxSegmentDuration: 10.0,
		}
		opts.SetDefaults()
		require.Equal(t, SegmentOptions{
			MergeStrategy:      MergeStrategyRaw,
			MaxSegmentDuration: 10.0,
			MinSegmentDuration: 3.0,
		}, opts)
	})
}

func TestSegmentOptionsFromEnv(t *testing.T) {
	t.Setenv("SEGMENT_MERGE_STRATEGY", "raw")
	t.Setenv("MAX_SEGMENT_DURATION", "10.5")
	t.Setenv("MIN_SEGMENT_DURATION", "2")

	var opts SegmentOptions
	opts.FromEnv()

	require.Equal(t, SegmentOptions{
		MergeStrategy:      MergeStrategyRaw,
		MaxSegmentDuration: 10.5,
		MinSegmentDuration: 2,
	}, opts)
}
