package transcribe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSRTTS(t *testing.T) {
	require.Equal(t, "00:00:00,000", srtTS(0))

	require.Equal(t, "00:00:00,999", srtTS(0.999))

	require.Equal(t, "00:00:01,000", srtTS(1))

	require.Equal(t, "00:00:01,100", srtTS(1.1))

	require.Equal(t, "00:01:10,000", srtTS(70))

	require.Equal(t, "01:00:00,000", srtTS(3600))

	require.Equal(t, "01:02:05,125", srtTS(3725.125))

	require.Equal(t, "01:02:05,876", srtTS(3725.876))

	// no upper bound on the hours field
	require.Equal(t, "100:00:00,000", srtTS(360000))
}

func TestSRT(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Transcript{}.SRT(&buf))
		require.Empty(t, buf.String())
	})

	t.Run("two segments", func(t *testing.T) {
		tr := Transcript{
			Segments: []Segment{
				{ID: 0, Start: 0.0, End: 0.5, Text: "你好。"},
				{ID: 1, Start: 1.0, End: 1.5, Text: "再见！"},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, tr.SRT(&buf))

		expected := `1
00:00:00,000 --> 00:00:00,500
你好。

2
00:00:01,000 --> 00:00:01,500
再见！

`
		require.Equal(t, expected, buf.String())
	})

	t.Run("hour range", func(t *testing.T) {
		tr := Transcript{
			Segments: []Segment{
				{ID: 0, Start: 3725.125, End: 3725.876, Text: "ok"},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, tr.SRT(&buf))

		expected := `1
01:02:05,125 --> 01:02:05,876
ok

`
		require.Equal(t, expected, buf.String())
	})
}
