package ffmpeg

import "time"

// VideoInfo contains metadata about a video file
type VideoInfo struct {
	FilePath   string
	Duration   time.Duration
	Width      int
	Height     int
	FPS        float64
	FrameCount int64
	VideoCodec string
	HasAudio   bool
	AudioCodec string
}

// Progress represents ffmpeg progress data
type Progress struct {
	Frame int
	FPS   float64
	Time  string
	Speed string
}

// ProgressFunc receives one parsed record per -progress block
type ProgressFunc func(*Progress)

// RunOptions configures ffmpeg execution
type RunOptions struct {
	Args            []string
	ProgressHandler ProgressFunc
	LogHandler      func(line string)
}

// Default encoding settings
const (
	DefaultCRF        = 23
	DefaultPreset     = "medium"
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
)

// EditOptions configures a cut-and-reframe render pass
type EditOptions struct {
	Input  string
	Output string
	Start  time.Duration
	End    time.Duration
	// Filters are applied in order as a -vf chain (scale, crop, ...)
	Filters []string
	// Subtitles, when set, is an .ass/.srt file burned in after the
	// geometry filters.
	Subtitles    string
	CRF          int
	Preset       string
	ProgressFunc ProgressFunc
}

// AudioFormat defines audio extraction format options
type AudioFormat struct {
	Codec      string
	SampleRate int
	Channels   int
}

// DefaultWhisperFormat returns the format speech-to-text backends expect
func DefaultWhisperFormat() AudioFormat {
	return AudioFormat{
		Codec:      "pcm_s16le",
		SampleRate: 16000,
		Channels:   1, // mono
	}
}
