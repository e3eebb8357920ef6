package highlight

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"math"
	"os"
	"time"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/ffmpeg"
	"github.com/keagan/clipforge/internal/logging"
	"github.com/keagan/clipforge/internal/scene"
	"github.com/keagan/clipforge/pkg/util"
)

// maxAnalysisWidth bounds the frame size fed into the blur/Laplacian pass.
// The variance is a relative richness proxy, so analyzing a downscaled frame
// keeps scores comparable while avoiding 4K-sized pixel loops.
const maxAnalysisWidth = 640

// Gaussian smoothing parameters matching a 21x21 kernel
const (
	blurKernelSize = 21
	blurSigma      = 3.5
)

// VisualScorer rates how visually rich a scene's representative frame is.
// The metric is the variance of a Laplacian edge response over the smoothed
// grayscale frame: in-focus, detailed frames score high, blank or blurred
// ones score near zero.
type VisualScorer struct {
	logger  zerolog.Logger
	ffmpeg  *ffmpeg.Executor
	tempDir string
}

// NewVisualScorer creates a frame sharpness scorer
func NewVisualScorer(logger zerolog.Logger, exec *ffmpeg.Executor, tempDir string) *VisualScorer {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &VisualScorer{
		logger:  logging.Component(logger, "visual-scorer"),
		ffmpeg:  exec,
		tempDir: tempDir,
	}
}

// Score samples the frame at the scene boundary and returns its Laplacian
// variance. An undecodable frame returns an error; callers skip the scene.
func (s *VisualScorer) Score(ctx context.Context, videoPath string, sc scene.Scene) (float64, error) {
	framePath, err := util.UniquePath(s.tempDir, "clipforge_frame", ".jpg")
	if err != nil {
		return 0, err
	}
	defer util.CleanupFiles(framePath)

	timestamp := time.Duration(sc.Timestamp * float64(time.Second))
	if err := s.ffmpeg.ExtractFrame(ctx, videoPath, timestamp, framePath); err != nil {
		return 0, fmt.Errorf("frame extraction: %w", err)
	}

	file, err := os.Open(framePath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return 0, fmt.Errorf("failed to decode frame: %w", err)
	}

	if img.Bounds().Dx() > maxAnalysisWidth {
		img = resize.Resize(maxAnalysisWidth, 0, img, resize.Bilinear)
	}

	variance := LaplacianVariance(img)

	s.logger.Debug().
		Int("frame", sc.FrameIndex).
		Float64("variance", variance).
		Msg("scored frame")

	return variance, nil
}

// LaplacianVariance converts the image to grayscale, smooths it with a
// Gaussian, and returns the variance of a 4-neighbour Laplacian response.
func LaplacianVariance(img image.Image) float64 {
	gray, w, h := grayPlane(img)
	if w < 3 || h < 3 {
		return 0
	}

	smoothed := gaussianBlur(gray, w, h)

	// 4-neighbour Laplacian over interior pixels
	var sum, sumSq float64
	n := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			lap := smoothed[i-w] + smoothed[i+w] + smoothed[i-1] + smoothed[i+1] - 4*smoothed[i]
			sum += lap
			sumSq += lap * lap
			n++
		}
	}

	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}

// grayPlane flattens the image into a row-major luminance plane
func grayPlane(img image.Image) ([]float64, int, int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	plane := make([]float64, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			plane[y*w+x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
		}
	}

	return plane, w, h
}

// gaussianBlur applies a separable Gaussian with replicated edges
func gaussianBlur(plane []float64, w, h int) []float64 {
	kernel := gaussianKernel(blurKernelSize, blurSigma)
	radius := blurKernelSize / 2

	clampIdx := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v >= max {
			return max - 1
		}
		return v
	}

	// Horizontal pass
	tmp := make([]float64, len(plane))
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var acc float64
			for k := -radius; k <= radius; k++ {
				acc += plane[row+clampIdx(x+k, w)] * kernel[k+radius]
			}
			tmp[row+x] = acc
		}
	}

	// Vertical pass
	out := make([]float64, len(plane))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k := -radius; k <= radius; k++ {
				acc += tmp[clampIdx(y+k, h)*w+x] * kernel[k+radius]
			}
			out[y*w+x] = acc
		}
	}

	return out
}

func gaussianKernel(size int, sigma float64) []float64 {
	kernel := make([]float64, size)
	radius := size / 2

	var sum float64
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel
}
