package scene

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/ffmpeg"
	"github.com/keagan/clipforge/internal/logging"
)

// DefaultChangeThreshold is the mean absolute pixel difference above which
// consecutive frames mark a scene boundary.
const DefaultChangeThreshold = 30.0

// nominalFPS is assumed when the container carries no usable frame rate.
const nominalFPS = 30.0

// Scene marks a boundary where visual content changes sharply between
// consecutive frames. Scenes are emitted in frame order, so timestamps are
// non-decreasing.
type Scene struct {
	FrameIndex  int     `json:"frame"`
	Timestamp   float64 `json:"timestamp"`
	ChangeScore float64 `json:"change_score"`
}

// Result carries the detected scenes plus whether the decode ran to the end
// of the stream. Partial distinguishes "static video, nothing found" from
// "decode died halfway through".
type Result struct {
	Scenes  []Scene `json:"scenes"`
	Partial bool    `json:"partial,omitempty"`
}

// Detector finds scene boundaries by frame differencing
type Detector struct {
	logger    zerolog.Logger
	ffmpeg    *ffmpeg.Executor
	threshold float64
}

// NewDetector creates a scene detector
func NewDetector(logger zerolog.Logger, exec *ffmpeg.Executor, threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultChangeThreshold
	}
	return &Detector{
		logger:    logging.Component(logger, "scene-detector"),
		ffmpeg:    exec,
		threshold: threshold,
	}
}

// Detect scans the video frame by frame and records a Scene wherever the
// mean absolute difference against the previous frame exceeds the threshold.
// A decode failure partway through yields the scenes found so far (logged,
// Partial set) rather than an error. An entirely static video legitimately
// yields an empty result.
func (d *Detector) Detect(ctx context.Context, input string, info *ffmpeg.VideoInfo) (Result, error) {
	fps := info.FPS
	if fps <= 0 {
		fps = nominalFPS
	}

	d.logger.Info().
		Str("input", input).
		Float64("threshold", d.threshold).
		Float64("fps", fps).
		Msg("detecting scene boundaries")

	var (
		scenes []Scene
		prev   []byte
	)

	err := d.ffmpeg.StreamGrayFrames(ctx, input, info.Width, info.Height, func(index int, pixels []byte) bool {
		if prev != nil {
			diff := meanAbsDiff(prev, pixels)
			if diff > d.threshold {
				scenes = append(scenes, Scene{
					FrameIndex:  index,
					Timestamp:   float64(index) / fps,
					ChangeScore: diff,
				})
			}
		} else {
			prev = make([]byte, len(pixels))
		}
		copy(prev, pixels)
		return true
	})

	result := Result{Scenes: scenes}
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		d.logger.Warn().Err(err).
			Int("scenes_so_far", len(scenes)).
			Msg("frame decode failed partway, keeping partial scene list")
		result.Partial = true
	}

	d.logger.Info().Int("scenes", len(scenes)).Msg("scene detection complete")
	return result, nil
}

// meanAbsDiff computes the mean absolute per-pixel difference between two
// equally sized intensity buffers.
func meanAbsDiff(a, b []byte) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var sum uint64
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		sum += uint64(d)
	}

	return float64(sum) / float64(len(a))
}
