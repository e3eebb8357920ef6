package reframe

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/ffmpeg"
	"github.com/keagan/clipforge/internal/highlight"
	"github.com/keagan/clipforge/internal/logging"
	"github.com/keagan/clipforge/internal/subtitle"
	"github.com/keagan/clipforge/internal/transcribe"
	"github.com/keagan/clipforge/pkg/util"
)

// DefaultEditDuration is the edit window length in seconds
const DefaultEditDuration = 60.0

// Builder produces platform-specific edits: cut the selected window,
// reframe to the platform aspect ratio, burn in subtitles, encode.
type Builder struct {
	logger    zerolog.Logger
	ffmpeg    *ffmpeg.Executor
	subtitles *subtitle.Compositor
	outputDir string
	preset    string
}

// NewBuilder creates an edit builder writing into outputDir
func NewBuilder(logger zerolog.Logger, exec *ffmpeg.Executor, subs *subtitle.Compositor, outputDir, preset string) *Builder {
	if outputDir == "" {
		outputDir = "./output"
	}
	return &Builder{
		logger:    logging.Component(logger, "edit-builder"),
		ffmpeg:    exec,
		subtitles: subs,
		outputDir: outputDir,
		preset:    preset,
	}
}

// BuildEdit renders one platform's edit and returns the output path.
// Failure here is fatal for this platform only; the orchestrator keeps
// sibling platforms running.
func (b *Builder) BuildEdit(ctx context.Context, info *ffmpeg.VideoInfo, platform string, highlights []highlight.Highlight, t transcribe.Transcription, editDuration float64) (string, error) {
	if editDuration <= 0 {
		editDuration = DefaultEditDuration
	}

	sourceDuration := info.Duration.Seconds()
	win := SelectWindow(highlights, sourceDuration, editDuration)
	if win.Duration() <= 0 {
		return "", fmt.Errorf("empty edit window for source of %.2fs", sourceDuration)
	}

	ratio := RatioFor(platform)
	geo := ComputeGeometry(info.Width, info.Height, ratio)

	b.logger.Info().
		Str("platform", platform).
		Str("start", util.FormatSeconds(win.Start)).
		Str("end", util.FormatSeconds(win.End)).
		Int("crop_w", geo.CropW).
		Int("crop_h", geo.CropH).
		Msg("building platform edit")

	subsPath, err := b.subtitles.RenderFile(t.Segments, win.Start, win.Duration(), geo.CropW, geo.CropH)
	if err != nil {
		b.logger.Warn().Err(err).Str("platform", platform).Msg("subtitle rendering failed, continuing without captions")
		subsPath = ""
	}
	if subsPath != "" {
		defer util.CleanupFiles(subsPath)
	}

	output, err := util.UniquePath(b.outputDir, "edited_"+platform, ".mp4")
	if err != nil {
		return "", fmt.Errorf("output path: %w", err)
	}

	filters := ffmpeg.NewFilterBuilder().
		Scale(geo.ScaleW, geo.ScaleH).
		Crop(geo.CropW, geo.CropH, geo.CropX, geo.CropY).
		BuildAll()

	opts := ffmpeg.EditOptions{
		Input:     info.FilePath,
		Output:    output,
		Start:     time.Duration(win.Start * float64(time.Second)),
		End:       time.Duration(win.End * float64(time.Second)),
		Filters:   filters,
		Subtitles: subsPath,
		Preset:    b.preset,
		ProgressFunc: func(p *ffmpeg.Progress) {
			b.logger.Debug().
				Str("platform", platform).
				Int("frame", p.Frame).
				Str("speed", p.Speed).
				Msg("encoding")
		},
	}

	if err := b.ffmpeg.RenderEdit(ctx, opts); err != nil {
		util.CleanupFiles(output)
		return "", fmt.Errorf("edit for %s: %w", platform, err)
	}

	return output, nil
}
