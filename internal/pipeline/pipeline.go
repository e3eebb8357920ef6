package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/keagan/clipforge/internal/config"
	"github.com/keagan/clipforge/internal/ffmpeg"
	"github.com/keagan/clipforge/internal/highlight"
	"github.com/keagan/clipforge/internal/logging"
	"github.com/keagan/clipforge/internal/reframe"
	"github.com/keagan/clipforge/internal/scene"
	"github.com/keagan/clipforge/internal/subtitle"
	"github.com/keagan/clipforge/internal/thumbnail"
	"github.com/keagan/clipforge/internal/transcribe"
)

// EditBuilder renders one platform's edit. Satisfied by reframe.Builder.
type EditBuilder interface {
	BuildEdit(ctx context.Context, info *ffmpeg.VideoInfo, platform string, highlights []highlight.Highlight, t transcribe.Transcription, editDuration float64) (string, error)
}

// Thumbnailer extracts the representative frame. Satisfied by
// thumbnail.Selector.
type Thumbnailer interface {
	Select(ctx context.Context, info *ffmpeg.VideoInfo, highlights []highlight.Highlight) string
}

// Pipeline sequences scene detection, transcription, highlight ranking,
// thumbnail selection and per-platform edit generation for one video.
// All collaborators are injected at construction; there is no lazy global
// state.
type Pipeline struct {
	logger      zerolog.Logger
	ffmpeg      *ffmpeg.Executor
	detector    *scene.Detector
	transcriber transcribe.Transcriber
	ranker      *highlight.Ranker
	editor      EditBuilder
	thumbnails  Thumbnailer
	concurrency int
}

// New wires up a pipeline from configuration
func New(logger zerolog.Logger, cfg *config.Config) (*Pipeline, error) {
	ffmpegExec, err := ffmpeg.New(logger, cfg.FFmpeg.Threads)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ffmpeg: %w", err)
	}

	detector := scene.NewDetector(logger, ffmpegExec, cfg.Scenes.ChangeThreshold)
	transcriber := transcribe.NewWhisperCLI(logger, ffmpegExec, cfg.Whisper.BinaryPath, cfg.Whisper.Model, cfg.TempDir)
	scorer := highlight.NewVisualScorer(logger, ffmpegExec, cfg.TempDir)
	ranker := highlight.NewRanker(logger, scorer)

	style := subtitle.Style{
		FontName:     cfg.Subtitles.FontName,
		FontSize:     cfg.Subtitles.FontSize,
		OutlineWidth: cfg.Subtitles.OutlineWidth,
	}
	compositor := subtitle.NewCompositor(logger, style, cfg.TempDir)
	editor := reframe.NewBuilder(logger, ffmpegExec, compositor, filepath.Join(cfg.OutputDir, "edited"), cfg.FFmpeg.Preset)
	thumbnails := thumbnail.NewSelector(logger, ffmpegExec, filepath.Join(cfg.OutputDir, "thumbnails"))

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = len(DefaultPlatforms)
	}

	return &Pipeline{
		logger:      logging.Component(logger, "pipeline"),
		ffmpeg:      ffmpegExec,
		detector:    detector,
		transcriber: transcriber,
		ranker:      ranker,
		editor:      editor,
		thumbnails:  thumbnails,
		concurrency: concurrency,
	}, nil
}

// Process runs the full highlight-detection and platform-edit workflow.
// Every stage degrades rather than aborts: the only fatal conditions are a
// video that cannot be opened at all, or cancellation.
func (p *Pipeline) Process(ctx context.Context, input string, opts ProcessOptions) (*ProcessingResult, error) {
	platforms := opts.Platforms
	if len(platforms) == 0 {
		platforms = DefaultPlatforms
	}
	editDuration := opts.EditDuration
	if editDuration <= 0 {
		editDuration = reframe.DefaultEditDuration
	}

	p.logger.Info().
		Str("input", input).
		Strs("platforms", platforms).
		Msg("starting video processing")

	stages := make(map[string]StageStatus)

	info, err := p.ffmpeg.ProbeVideo(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to open video: %w", err)
	}

	// Stage 1: scene detection (best-effort)
	sceneResult, err := p.detector.Detect(ctx, input, info)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		p.logger.Error().Err(err).Msg("scene detection failed, continuing without scenes")
		sceneResult = scene.Result{}
		stages[StageScenes] = StatusFailed
	} else if sceneResult.Partial {
		stages[StageScenes] = StatusPartial
	} else {
		stages[StageScenes] = StatusOK
	}

	// Stage 2: transcription (degrades to empty on failure)
	transcription, err := p.transcriber.Transcribe(ctx, input)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.logger.Warn().Err(err).Msg("transcription failed, continuing without speech signal")
		transcription = transcribe.Empty()
		stages[StageTranscribe] = StatusFailed
	} else {
		stages[StageTranscribe] = StatusOK
	}

	// Stage 3: highlight ranking
	highlights := p.ranker.Rank(ctx, input, sceneResult.Scenes, transcription, info.FrameCount)
	stages[StageHighlights] = StatusOK

	// Stage 4: thumbnail
	thumbnailPath := p.thumbnails.Select(ctx, info, highlights)
	if thumbnailPath == "" {
		stages[StageThumbnail] = StatusFailed
	} else {
		stages[StageThumbnail] = StatusOK
	}

	// Stage 5: per-platform edits, fanned out independently
	edits := p.buildEdits(ctx, info, platforms, highlights, transcription, editDuration)
	stages[StageEdits] = editsStatus(edits)

	result := &ProcessingResult{
		OriginalVideo: input,
		Scenes:        sceneResult.Scenes,
		Transcription: transcription,
		Highlights:    highlights,
		Thumbnail:     thumbnailPath,
		Edits:         edits,
		Stages:        stages,
		ProcessedAt:   time.Now().UTC(),
	}

	p.logger.Info().
		Int("scenes", len(result.Scenes)).
		Int("highlights", len(result.Highlights)).
		Int("platforms", len(result.Edits)).
		Msg("video processing complete")

	return result, nil
}

// buildEdits runs each platform's edit concurrently. A failure in one
// platform is recorded and never aborts siblings; cancellation of the whole
// run stops in-flight edits.
func (p *Pipeline) buildEdits(ctx context.Context, info *ffmpeg.VideoInfo, platforms []string, highlights []highlight.Highlight, t transcribe.Transcription, editDuration float64) map[string]EditResult {
	results := make([]EditResult, len(platforms))

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, platform := range platforms {
		i, platform := i, platform
		g.Go(func() error {
			path, err := p.editor.BuildEdit(ctx, info, platform, highlights, t, editDuration)
			if err != nil {
				p.logger.Error().Err(err).Str("platform", platform).Msg("platform edit failed")
				results[i] = EditResult{Platform: platform, Error: err.Error()}
				return nil
			}
			results[i] = EditResult{Platform: platform, OutputPath: path}
			return nil
		})
	}

	g.Wait()

	edits := make(map[string]EditResult, len(results))
	for _, r := range results {
		edits[r.Platform] = r
	}
	return edits
}

func editsStatus(edits map[string]EditResult) StageStatus {
	failed := 0
	for _, r := range edits {
		if r.Failed() {
			failed++
		}
	}
	switch {
	case failed == 0:
		return StatusOK
	case failed == len(edits):
		return StatusFailed
	default:
		return StatusPartial
	}
}
