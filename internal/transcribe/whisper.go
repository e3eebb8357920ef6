package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/ffmpeg"
	"github.com/keagan/clipforge/internal/logging"
	"github.com/keagan/clipforge/pkg/util"
)

// WhisperCLI shells out to a whisper-compatible binary. The audio track is
// first extracted to a 16kHz mono WAV in a uniquely named temp file, which
// is always removed before returning.
type WhisperCLI struct {
	logger     zerolog.Logger
	ffmpeg     *ffmpeg.Executor
	binaryPath string
	model      string
	tempDir    string
}

// NewWhisperCLI creates the CLI-backed transcriber
func NewWhisperCLI(logger zerolog.Logger, ffmpegExec *ffmpeg.Executor, binaryPath, model, tempDir string) *WhisperCLI {
	if binaryPath == "" {
		binaryPath = "whisper"
	}
	if model == "" {
		model = "base"
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &WhisperCLI{
		logger:     logging.Component(logger, "whisper"),
		ffmpeg:     ffmpegExec,
		binaryPath: binaryPath,
		model:      model,
		tempDir:    tempDir,
	}
}

// whisperResult matches the whisper CLI JSON output
type whisperResult struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
	Language string `json:"language"`
}

// Transcribe extracts audio and runs the whisper binary on it
func (w *WhisperCLI) Transcribe(ctx context.Context, videoPath string) (Transcription, error) {
	audioPath, err := util.UniquePath(w.tempDir, "clipforge_audio", ".wav")
	if err != nil {
		return Empty(), fmt.Errorf("temp audio path: %w", err)
	}
	defer util.CleanupFiles(audioPath)

	if err := w.ffmpeg.ExtractAudio(ctx, videoPath, audioPath, ffmpeg.DefaultWhisperFormat()); err != nil {
		return Empty(), fmt.Errorf("audio extraction: %w", err)
	}

	outDir, err := os.MkdirTemp(w.tempDir, "clipforge_whisper")
	if err != nil {
		return Empty(), fmt.Errorf("temp output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := []string{
		audioPath,
		"--model", w.model,
		"--output_format", "json",
		"--output_dir", outDir,
		"--verbose", "False",
	}

	w.logger.Info().
		Str("video", videoPath).
		Str("model", w.model).
		Msg("transcribing audio")

	cmd := exec.CommandContext(ctx, w.binaryPath, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return Empty(), fmt.Errorf("whisper failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	data, err := os.ReadFile(filepath.Join(outDir, base+".json"))
	if err != nil {
		return Empty(), fmt.Errorf("whisper output missing: %w", err)
	}

	var result whisperResult
	if err := json.Unmarshal(data, &result); err != nil {
		return Empty(), fmt.Errorf("whisper output parse: %w", err)
	}

	t := Transcription{
		Text:     result.Text,
		Segments: make([]Segment, 0, len(result.Segments)),
		Language: result.Language,
	}
	for _, s := range result.Segments {
		t.Segments = append(t.Segments, Segment{Start: s.Start, End: s.End, Text: s.Text})
	}
	if t.Language == "" {
		t.Language = "en"
	}

	w.logger.Info().
		Int("segments", len(t.Segments)).
		Str("language", t.Language).
		Msg("transcription complete")

	return t, nil
}
