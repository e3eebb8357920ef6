package highlight

// Kind identifies which signal produced a highlight
type Kind string

const (
	KindVisualInterest  Kind = "visual_interest"
	KindSpeechHighlight Kind = "speech_highlight"
)

// Highlight is a ranked candidate moment of viewer interest. It only lives
// within one pipeline run.
type Highlight struct {
	FrameIndex int     `json:"frame"`
	Timestamp  float64 `json:"timestamp"`
	Score      float64 `json:"score"`
	Kind       Kind    `json:"type"`
	// Text is set for speech highlights only
	Text string `json:"text,omitempty"`
}
