package transcribe

import "context"

// Segment is one timestamped span of recognized speech. The pipeline never
// mutates segments, only filters and reads them.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcription is the full speech-to-text result for one video
type Transcription struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Empty returns the well-formed zero transcription used whenever the
// backend fails. Downstream stages treat it as "no speech signal".
func Empty() Transcription {
	return Transcription{
		Text:     "",
		Segments: []Segment{},
		Language: "en",
	}
}

// Transcriber converts a video's audio track into timestamped text. A
// failing backend returns an error; the caller substitutes Empty() so the
// pipeline stays usable without working speech recognition (visual-only
// highlight ranking, no subtitles).
type Transcriber interface {
	Transcribe(ctx context.Context, videoPath string) (Transcription, error)
}
