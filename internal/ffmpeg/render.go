package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/keagan/clipforge/pkg/util"
)

// RenderEdit cuts the window [Start, End) out of the input, applies the
// geometry filter chain and optional subtitle burn-in, and encodes the
// result in one pass.
func (e *Executor) RenderEdit(ctx context.Context, opts EditOptions) error {
	if err := validateEditOptions(opts); err != nil {
		return fmt.Errorf("invalid edit options: %w", err)
	}

	e.logger.Info().
		Str("input", opts.Input).
		Str("output", opts.Output).
		Dur("start", opts.Start).
		Dur("end", opts.End).
		Msg("rendering edit")

	args := []string{
		"-ss", util.FormatDuration(opts.Start),
		"-i", opts.Input,
		"-t", util.FormatDuration(opts.End - opts.Start),
	}

	filters := append([]string{}, opts.Filters...)
	if opts.Subtitles != "" {
		filters = append(filters, fmt.Sprintf("subtitles=%s", escapeSubtitlePath(opts.Subtitles)))
	}
	if len(filters) > 0 {
		args = append(args, "-vf", strings.Join(filters, ","))
	}

	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}

	args = append(args,
		"-c:v", DefaultVideoCodec,
		"-crf", fmt.Sprintf("%d", crf),
		"-preset", preset,
		"-c:a", DefaultAudioCodec,
		"-movflags", "+faststart",
		opts.Output,
	)

	progressFn := opts.ProgressFunc
	if progressFn == nil {
		progressFn = func(p *Progress) {
			e.logger.Debug().
				Int("frame", p.Frame).
				Str("time", p.Time).
				Str("speed", p.Speed).
				Msg("encode progress")
		}
	}

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: progressFn,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("edit render")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("edit render failed: %w", err)
	}

	e.logger.Info().Str("output", opts.Output).Msg("edit render completed")
	return nil
}

func validateEditOptions(opts EditOptions) error {
	if opts.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if opts.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.End <= opts.Start {
		return fmt.Errorf("end must be after start")
	}
	if opts.CRF < 0 || opts.CRF > 51 {
		return fmt.Errorf("CRF must be between 0 and 51")
	}
	return nil
}

// escapeSubtitlePath escapes the subtitle file path for ffmpeg filters
func escapeSubtitlePath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	// Windows: Convert backslashes to forward slashes
	if runtime.GOOS == "windows" {
		absPath = strings.ReplaceAll(absPath, "\\", "/")
	}

	escaped := strings.ReplaceAll(absPath, ":", "\\:")
	escaped = strings.ReplaceAll(escaped, "'", "\\'")

	return escaped
}
