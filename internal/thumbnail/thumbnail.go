package thumbnail

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/ffmpeg"
	"github.com/keagan/clipforge/internal/highlight"
	"github.com/keagan/clipforge/internal/logging"
	"github.com/keagan/clipforge/pkg/util"
)

// Selector extracts a single representative frame as a thumbnail image
type Selector struct {
	logger    zerolog.Logger
	ffmpeg    *ffmpeg.Executor
	outputDir string
}

// NewSelector creates a thumbnail selector writing into outputDir
func NewSelector(logger zerolog.Logger, exec *ffmpeg.Executor, outputDir string) *Selector {
	if outputDir == "" {
		outputDir = "./output"
	}
	return &Selector{
		logger:    logging.Component(logger, "thumbnail"),
		ffmpeg:    exec,
		outputDir: outputDir,
	}
}

// Select saves the top highlight's frame, or the source midpoint frame when
// no highlights exist, as a JPEG. An empty path means "thumbnail
// unavailable" and is not an error to propagate.
func (s *Selector) Select(ctx context.Context, info *ffmpeg.VideoInfo, highlights []highlight.Highlight) string {
	fps := info.FPS
	if fps <= 0 {
		fps = 30
	}

	var frameIndex int64
	if len(highlights) > 0 {
		frameIndex = int64(highlights[0].FrameIndex)
	} else {
		frameIndex = info.FrameCount / 2
	}

	timestamp := time.Duration(float64(frameIndex) / fps * float64(time.Second))

	output, err := util.UniquePath(s.outputDir, "thumbnail", ".jpg")
	if err != nil {
		s.logger.Warn().Err(err).Msg("thumbnail path creation failed")
		return ""
	}

	if err := s.ffmpeg.ExtractFrame(ctx, info.FilePath, timestamp, output); err != nil {
		s.logger.Warn().Err(err).
			Int64("frame", frameIndex).
			Msg("thumbnail extraction failed")
		util.CleanupFiles(output)
		return ""
	}

	s.logger.Info().
		Int64("frame", frameIndex).
		Str("path", output).
		Msg("thumbnail saved")

	return output
}
