package transcribe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTokens(t *testing.T) {
	tcs := []struct {
		name       string
		text       string
		timestamps [][]int64
		expected   []TimedToken
	}{
		{
			name:     "empty input",
			expected: []TimedToken{},
		},
		{
			name:       "matching lengths",
			text:       "你好",
			timestamps: [][]int64{{0, 200}, {200, 400}},
			expected: []TimedToken{
				{Text: "你", Start: 0, End: 0.2},
				{Text: "好", Start: 0.2, End: 0.4},
			},
		},
		{
			name:       "more text than timestamps",
			text:       "你好吗",
			timestamps: [][]int64{{0, 200}, {200, 400}},
			expected: []TimedToken{
				{Text: "你", Start: 0, End: 0.2},
				{Text: "好", Start: 0.2, End: 0.4},
			},
		},
		{
			name:       "more timestamps than text",
			text:       "你",
			timestamps: [][]int64{{0, 200}, {200, 400}, {400, 600}},
			expected: []TimedToken{
				{Text: "你", Start: 0, End: 0.2},
			},
		},
		{
			name:       "malformed interval dropped",
			text:       "你好",
			timestamps: [][]int64{{0}, {200, 400}},
			expected: []TimedToken{
				{Text: "好", Start: 0.2, End: 0.4},
			},
		},
		{
			name:       "millisecond precision",
			text:       "ab",
			timestamps: [][]int64{{1, 999}, {1000, 61250}},
			expected: []TimedToken{
				{Text: "a", Start: 0.001, End: 0.999},
				{Text: "b", Start: 1, End: 61.25},
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, BuildTokens(tc.text, tc.timestamps))
		})
	}
}
