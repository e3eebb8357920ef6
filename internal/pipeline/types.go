package pipeline

import (
	"time"

	"github.com/keagan/clipforge/internal/highlight"
	"github.com/keagan/clipforge/internal/scene"
	"github.com/keagan/clipforge/internal/transcribe"
)

// DefaultPlatforms is used when the caller requests no specific platforms
var DefaultPlatforms = []string{"tiktok", "youtube_shorts", "instagram_reels"}

// Stage names recorded in ProcessingResult.Stages
const (
	StageScenes     = "scenes"
	StageTranscribe = "transcription"
	StageHighlights = "highlights"
	StageThumbnail  = "thumbnail"
	StageEdits      = "edits"
)

// StageStatus distinguishes "genuinely nothing found" from "errored and
// degraded" for each pipeline stage.
type StageStatus string

const (
	StatusOK      StageStatus = "ok"
	StatusPartial StageStatus = "partial"
	StatusFailed  StageStatus = "failed"
)

// EditResult records one platform's edit attempt
type EditResult struct {
	Platform   string `json:"platform"`
	OutputPath string `json:"output_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Failed reports whether this platform's edit did not produce output
func (r EditResult) Failed() bool {
	return r.Error != ""
}

// ProcessOptions configures one Process run
type ProcessOptions struct {
	// Platforms defaults to DefaultPlatforms when empty
	Platforms []string
	// EditDuration is the target clip length in seconds (default 60)
	EditDuration float64
}

// ProcessingResult is the single externally visible artifact of one run.
// It is write-once: assembled at the end of Process and never mutated.
type ProcessingResult struct {
	OriginalVideo string                   `json:"original_video"`
	Scenes        []scene.Scene            `json:"scenes"`
	Transcription transcribe.Transcription `json:"transcription"`
	Highlights    []highlight.Highlight    `json:"highlights"`
	Thumbnail     string                   `json:"thumbnail"`
	Edits         map[string]EditResult    `json:"edits"`
	Stages        map[string]StageStatus   `json:"stages"`
	ProcessedAt   time.Time                `json:"processed_at"`
}
