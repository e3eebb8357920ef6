package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/keagan/clipforge/pkg/util"
)

// FrameFunc receives each decoded frame in sequence. Returning false stops
// the stream early.
type FrameFunc func(index int, pixels []byte) bool

// StreamGrayFrames decodes the video into single-channel frames and feeds
// them to fn one at a time. Each frame is width*height bytes, one intensity
// byte per pixel. The pixel buffer is reused between calls; fn must copy it
// if it needs the data after returning.
func (e *Executor) StreamGrayFrames(ctx context.Context, input string, width, height int, fn FrameFunc) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}

	args := []string{
		"-v", "error",
		"-i", input,
		"-f", "rawvideo",
		"-pix_fmt", "gray",
		"pipe:1",
	}

	e.logger.Debug().
		Str("input", input).
		Int("width", width).
		Int("height", height).
		Msg("streaming gray frames")

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	defer cmd.Wait()

	frameSize := width * height
	buf := make([]byte, frameSize)

	for index := 0; ; index++ {
		if _, err := io.ReadFull(stdout, buf); err != nil {
			if err == io.EOF {
				return nil
			}
			if err == io.ErrUnexpectedEOF {
				// Truncated trailing frame; everything before it was valid.
				return nil
			}
			return fmt.Errorf("frame read failed at index %d: %w", index, err)
		}

		if !fn(index, buf) {
			cmd.Process.Kill()
			return nil
		}

		if ctx.Err() != nil {
			cmd.Process.Kill()
			return ctx.Err()
		}
	}
}

// ExtractFrame saves the frame nearest to timestamp as a JPEG
func (e *Executor) ExtractFrame(ctx context.Context, input string, timestamp time.Duration, output string) error {
	if input == "" {
		return fmt.Errorf("input path is required")
	}
	if output == "" {
		return fmt.Errorf("output path is required")
	}

	args := []string{
		"-ss", util.FormatDuration(timestamp),
		"-i", input,
		"-vframes", "1",
		"-q:v", "2", // high quality JPEG
		output,
	}

	opts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("frame extraction")
		},
	}

	return e.Run(ctx, opts)
}

// ExtractAudio extracts the audio stream to a separate file
func (e *Executor) ExtractAudio(ctx context.Context, input, output string, format AudioFormat) error {
	e.logger.Info().
		Str("input", input).
		Str("output", output).
		Str("codec", format.Codec).
		Int("sample_rate", format.SampleRate).
		Msg("extracting audio")

	args := []string{
		"-i", input,
		"-vn", // no video
		"-acodec", format.Codec,
		"-ar", fmt.Sprintf("%d", format.SampleRate),
		"-ac", fmt.Sprintf("%d", format.Channels),
		output,
	}

	opts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("audio extraction")
		},
	}

	if err := e.Run(ctx, opts); err != nil {
		return fmt.Errorf("audio extraction failed: %w", err)
	}

	return nil
}
