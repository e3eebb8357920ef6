package scene

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/ffmpeg"
)

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH")
	}
}

// generateVideo writes a short lavfi-sourced test clip
func generateVideo(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mp4")
	cmd := exec.Command("ffmpeg", "-f", "lavfi", "-i", source,
		"-pix_fmt", "yuv420p", "-y", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Skipf("could not generate test video: %v\n%s", err, stderr.String())
	}
	return path
}

func TestMeanAbsDiff(t *testing.T) {
	a := []byte{10, 20, 30, 40}
	b := []byte{10, 20, 30, 40}
	if got := meanAbsDiff(a, b); got != 0 {
		t.Errorf("identical frames: expected 0, got %f", got)
	}

	c := []byte{20, 10, 40, 30}
	if got := meanAbsDiff(a, c); got != 10 {
		t.Errorf("expected mean diff 10, got %f", got)
	}

	if got := meanAbsDiff(nil, nil); got != 0 {
		t.Errorf("empty frames: expected 0, got %f", got)
	}

	if got := meanAbsDiff(a, []byte{1, 2}); got != 0 {
		t.Errorf("mismatched lengths: expected 0, got %f", got)
	}
}

func TestDetectStaticVideo(t *testing.T) {
	skipIfNoFFmpeg(t)

	// A solid color never crosses the change threshold.
	path := generateVideo(t, "color=c=gray:duration=2:size=320x240:rate=30")

	logger := zerolog.New(os.Stderr)
	ffmpegExec, err := ffmpeg.New(logger, 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	ctx := context.Background()
	info, err := ffmpegExec.ProbeVideo(ctx, path)
	if err != nil {
		t.Fatalf("ProbeVideo failed: %v", err)
	}

	detector := NewDetector(logger, ffmpegExec, 0)
	result, err := detector.Detect(ctx, path, info)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if len(result.Scenes) != 0 {
		t.Errorf("expected no scenes for static video, got %d", len(result.Scenes))
	}
	if result.Partial {
		t.Error("static video should not be partial")
	}
}

func TestDetectTimestamps(t *testing.T) {
	skipIfNoFFmpeg(t)

	// testsrc produces hard cuts between pattern regions.
	path := generateVideo(t, "testsrc=duration=2:size=320x240:rate=30")

	logger := zerolog.New(os.Stderr)
	ffmpegExec, err := ffmpeg.New(logger, 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	ctx := context.Background()
	info, err := ffmpegExec.ProbeVideo(ctx, path)
	if err != nil {
		t.Fatalf("ProbeVideo failed: %v", err)
	}

	detector := NewDetector(logger, ffmpegExec, 1.0)
	result, err := detector.Detect(ctx, path, info)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	prev := -1.0
	for _, sc := range result.Scenes {
		if sc.Timestamp < prev {
			t.Errorf("timestamps not monotonic: %f after %f", sc.Timestamp, prev)
		}
		prev = sc.Timestamp

		want := float64(sc.FrameIndex) / info.FPS
		if sc.Timestamp != want {
			t.Errorf("frame %d: timestamp %f, want %f", sc.FrameIndex, sc.Timestamp, want)
		}
		if sc.ChangeScore <= 0 {
			t.Errorf("frame %d: non-positive change score %f", sc.FrameIndex, sc.ChangeScore)
		}
	}
	t.Logf("found %d scenes", len(result.Scenes))
}
