package transcribe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTranscript(t *testing.T) {
	rec := Recognition{
		Text: "你好。再见！",
		Timestamps: [][]int64{
			{0, 200}, {200, 400}, {400, 500},
			{1000, 1200}, {1200, 1400}, {1400, 1500},
		},
	}

	var opts SegmentOptions
	opts.SetDefaults()

	t.Run("sentence with limit", func(t *testing.T) {
		tr := NewTranscript(rec, "paraformer-zh", "zh", opts)

		require.Len(t, tr.Segments, 2)
		require.Equal(t, 0, tr.Segments[0].ID)
		require.Equal(t, 0.0, tr.Segments[0].Start)
		require.Equal(t, 0.5, tr.Segments[0].End)
		require.Equal(t, "你好。", tr.Segments[0].Text)
		require.Equal(t, 1, tr.Segments[1].ID)
		require.Equal(t, 1.0, tr.Segments[1].Start)
		require.Equal(t, 1.5, tr.Segments[1].End)
		require.Equal(t, "再见！", tr.Segments[1].Text)

		require.Equal(t, "你好。再见！", tr.FullText)
		require.Equal(t, 1.5, tr.Duration)
		require.Equal(t, "paraformer-zh", tr.Model)
		require.Equal(t, "zh", tr.Language)
		require.False(t, tr.GeneratedAt.IsZero())
	})

	t.Run("raw strategy reconstructs text", func(t *testing.T) {
		rawOpts := opts
		rawOpts.MergeStrategy = MergeStrategyRaw

		tr := NewTranscript(rec, "paraformer-zh", "zh", rawOpts)

		var sb strings.Builder
		for _, seg := range tr.Segments {
			sb.WriteString(seg.Text)
		}
		require.Equal(t, rec.Text, sb.String())
	})

	t.Run("empty recognition", func(t *testing.T) {
		tr := NewTranscript(Recognition{}, "paraformer-zh", "zh", opts)
		require.Empty(t, tr.Segments)
		require.Equal(t, 0.0, tr.Duration)
	})

	t.Run("index contiguity after merging", func(t *testing.T) {
		long := Recognition{
			Text: "一二三。四五六。七八九",
			Timestamps: [][]int64{
				{0, 1000}, {1000, 2000}, {2000, 3000}, {3000, 4000},
				{20000, 21000}, {21000, 22000}, {22000, 23000}, {23000, 24000},
				{40000, 41000}, {41000, 42000}, {42000, 43000},
			},
		}

		tr := NewTranscript(long, "paraformer-zh", "zh", opts)
		for i, seg := range tr.Segments {
			require.Equal(t, i, seg.ID)
			require.LessOrEqual(t, seg.Start, seg.End)
		}
		require.Equal(t, tr.Segments[len(tr.Segments)-1].End, tr.Duration)
	})
}
