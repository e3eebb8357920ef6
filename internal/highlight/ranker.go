package highlight

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/logging"
	"github.com/keagan/clipforge/internal/scene"
	"github.com/keagan/clipforge/internal/transcribe"
)

// MaxHighlights caps the ranked list length
const MaxHighlights = 10

// speechScore is the fixed score for any keyword-triggered speech highlight,
// independent of how many keywords matched.
const speechScore = 50.0

// speechFrameRate is the nominal fps used to map a transcript timestamp to
// a frame index. This deliberately ignores the real source fps to keep the
// established frame numbering stable.
const speechFrameRate = 30

// engagementKeywords trigger a speech highlight when present in a segment
var engagementKeywords = []string{"wow", "amazing", "incredible", "watch", "look", "here", "now"}

// Ranker merges visual scene scores and keyword-triggered speech scores
// into one ranked highlight list.
type Ranker struct {
	logger zerolog.Logger
	scorer *VisualScorer
}

// NewRanker creates a highlight ranker
func NewRanker(logger zerolog.Logger, scorer *VisualScorer) *Ranker {
	return &Ranker{
		logger: logging.Component(logger, "highlight-ranker"),
		scorer: scorer,
	}
}

// Rank pools visual and speech candidates, sorts them by score descending
// (stable, so discovery order breaks ties), and truncates to MaxHighlights.
// frameCount bounds every emitted frame index to a decodable position; pass
// 0 if unknown.
func (r *Ranker) Rank(ctx context.Context, videoPath string, scenes []scene.Scene, t transcribe.Transcription, frameCount int64) []Highlight {
	var highlights []Highlight

	for _, sc := range scenes {
		variance, err := r.scorer.Score(ctx, videoPath, sc)
		if err != nil {
			// Undecodable frame: the scene contributes no highlight.
			r.logger.Warn().Err(err).Int("frame", sc.FrameIndex).Msg("skipping unscorable scene")
			continue
		}
		highlights = append(highlights, Highlight{
			FrameIndex: sc.FrameIndex,
			Timestamp:  sc.Timestamp,
			Score:      variance + sc.ChangeScore,
			Kind:       KindVisualInterest,
		})
	}

	highlights = append(highlights, r.speechHighlights(t, frameCount)...)

	sort.SliceStable(highlights, func(i, j int) bool {
		return highlights[i].Score > highlights[j].Score
	})

	if len(highlights) > MaxHighlights {
		highlights = highlights[:MaxHighlights]
	}

	r.logger.Info().
		Int("scenes", len(scenes)).
		Int("highlights", len(highlights)).
		Msg("highlight ranking complete")

	return highlights
}

func (r *Ranker) speechHighlights(t transcribe.Transcription, frameCount int64) []Highlight {
	var highlights []Highlight

	for _, seg := range t.Segments {
		if !containsEngagementKeyword(seg.Text) {
			continue
		}

		frame := int(math.Floor(seg.Start * speechFrameRate))
		if frameCount > 0 && frame >= int(frameCount) {
			frame = int(frameCount) - 1
		}
		if frame < 0 {
			frame = 0
		}

		highlights = append(highlights, Highlight{
			FrameIndex: frame,
			Timestamp:  seg.Start,
			Score:      speechScore,
			Kind:       KindSpeechHighlight,
			Text:       seg.Text,
		})
	}

	return highlights
}

func containsEngagementKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range engagementKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
