package highlight

import (
	"context"
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/transcribe"
)

func testRanker() *Ranker {
	logger := zerolog.New(os.Stderr)
	// No scenes in these tests, so the visual scorer is never invoked.
	return NewRanker(logger, nil)
}

func TestRankSpeechKeyword(t *testing.T) {
	transcription := transcribe.Transcription{
		Segments: []transcribe.Segment{
			{Start: 12.5, End: 15.0, Text: "This is AMAZING, look at it"},
		},
		Language: "en",
	}

	highlights := testRanker().Rank(context.Background(), "in.mp4", nil, transcription, 0)

	if len(highlights) != 1 {
		t.Fatalf("expected exactly 1 highlight, got %d", len(highlights))
	}

	h := highlights[0]
	if h.Kind != KindSpeechHighlight {
		t.Errorf("expected speech_highlight, got %s", h.Kind)
	}
	if h.Score != 50 {
		t.Errorf("expected score 50, got %f", h.Score)
	}
	if want := int(math.Floor(12.5 * 30)); h.FrameIndex != want {
		t.Errorf("expected frame %d, got %d", want, h.FrameIndex)
	}
	if h.Timestamp != 12.5 {
		t.Errorf("expected timestamp 12.5, got %f", h.Timestamp)
	}
	if h.Text != "This is AMAZING, look at it" {
		t.Errorf("unexpected text %q", h.Text)
	}
}

func TestRankNoKeyword(t *testing.T) {
	transcription := transcribe.Transcription{
		Segments: []transcribe.Segment{
			{Start: 1, End: 2, Text: "nothing interesting happens"},
		},
	}

	highlights := testRanker().Rank(context.Background(), "in.mp4", nil, transcription, 0)
	if len(highlights) != 0 {
		t.Errorf("expected no highlights, got %d", len(highlights))
	}
}

func TestRankTruncationAndStableOrder(t *testing.T) {
	// All speech hits score 50, so discovery order must be preserved and
	// only the first ten kept.
	var segments []transcribe.Segment
	for i := 0; i < 12; i++ {
		segments = append(segments, transcribe.Segment{
			Start: float64(i),
			End:   float64(i) + 1,
			Text:  fmt.Sprintf("wow number %d", i),
		})
	}

	highlights := testRanker().Rank(context.Background(), "in.mp4", nil, transcribe.Transcription{Segments: segments}, 0)

	if len(highlights) != MaxHighlights {
		t.Fatalf("expected %d highlights, got %d", MaxHighlights, len(highlights))
	}
	for i, h := range highlights {
		if h.Timestamp != float64(i) {
			t.Errorf("position %d: expected timestamp %d (stable tie order), got %f", i, i, h.Timestamp)
		}
	}
}

func TestRankScoresDescending(t *testing.T) {
	segments := []transcribe.Segment{
		{Start: 0, End: 1, Text: "wow"},
		{Start: 5, End: 6, Text: "watch this now"},
	}

	highlights := testRanker().Rank(context.Background(), "in.mp4", nil, transcribe.Transcription{Segments: segments}, 0)

	for i := 1; i < len(highlights); i++ {
		if highlights[i].Score > highlights[i-1].Score {
			t.Errorf("scores not descending at %d: %f > %f", i, highlights[i].Score, highlights[i-1].Score)
		}
	}
}

func TestRankFrameIndexClamped(t *testing.T) {
	transcription := transcribe.Transcription{
		Segments: []transcribe.Segment{
			// Nominal 30fps mapping would land at frame 3000.
			{Start: 100, End: 101, Text: "incredible"},
		},
	}

	highlights := testRanker().Rank(context.Background(), "in.mp4", nil, transcription, 500)

	if len(highlights) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(highlights))
	}
	if highlights[0].FrameIndex != 499 {
		t.Errorf("expected frame clamped to 499, got %d", highlights[0].FrameIndex)
	}
}

func TestContainsEngagementKeyword(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"totally ordinary sentence", false},
		{"WOW that was great", true},
		{"Look here", true},
		{"an incredible result", true},
		{"", false},
	}

	for _, tc := range cases {
		if got := containsEngagementKeyword(tc.text); got != tc.want {
			t.Errorf("containsEngagementKeyword(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
