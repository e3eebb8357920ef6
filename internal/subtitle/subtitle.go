package subtitle

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keagan/clipforge/internal/logging"
	"github.com/keagan/clipforge/internal/transcribe"
	"github.com/keagan/clipforge/pkg/util"
)

// Style controls how burned-in captions are rendered
type Style struct {
	FontName     string
	FontSize     int
	OutlineWidth int
}

// DefaultStyle is bottom-centered white text with a black outline
func DefaultStyle() Style {
	return Style{
		FontName:     "Arial",
		FontSize:     40,
		OutlineWidth: 2,
	}
}

// ClipSegments shifts transcript segments into the edited clip's local time
// frame and drops any segment not fully contained in [0, clipDuration).
func ClipSegments(segments []transcribe.Segment, windowStart, clipDuration float64) []transcribe.Segment {
	var clipped []transcribe.Segment

	for _, seg := range segments {
		start := seg.Start - windowStart
		end := seg.End - windowStart

		if start < 0 || end > clipDuration {
			continue
		}

		clipped = append(clipped, transcribe.Segment{
			Start: start,
			End:   end,
			Text:  seg.Text,
		})
	}

	return clipped
}

// Compositor produces subtitle files for burned-in caption rendering
type Compositor struct {
	logger  zerolog.Logger
	style   Style
	tempDir string
}

// NewCompositor creates a subtitle compositor
func NewCompositor(logger zerolog.Logger, style Style, tempDir string) *Compositor {
	if style.FontName == "" {
		style = DefaultStyle()
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Compositor{
		logger:  logging.Component(logger, "subtitles"),
		style:   style,
		tempDir: tempDir,
	}
}

// RenderFile writes an .ass file holding the segments visible inside the
// selected window, shifted to clip-local time. It returns "" when no
// segment survives clipping; the caller owns the file otherwise. playResX
// and playResY should match the target frame so font sizing is stable.
func (c *Compositor) RenderFile(segments []transcribe.Segment, windowStart, clipDuration float64, playResX, playResY int) (string, error) {
	clipped := ClipSegments(segments, windowStart, clipDuration)
	if len(clipped) == 0 {
		c.logger.Debug().Msg("no subtitle segments inside window")
		return "", nil
	}

	path, err := util.UniquePath(c.tempDir, "clipforge_subs", ".ass")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", playResX)
	fmt.Fprintf(&b, "PlayResY: %d\n", playResY)
	b.WriteString("WrapStyle: 0\n\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, OutlineColour, BackColour, Bold, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV\n")
	// Alignment 2 = bottom center; white text over a black outline.
	fmt.Fprintf(&b, "Style: Default,%s,%d,&H00FFFFFF,&H00000000,&H00000000,-1,1,%d,0,2,10,10,20\n\n",
		c.style.FontName, c.style.FontSize, c.style.OutlineWidth)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Text\n")
	for _, seg := range clipped {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,%s\n",
			assTimestamp(seg.Start), assTimestamp(seg.End), escapeText(seg.Text))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write subtitle file: %w", err)
	}

	c.logger.Debug().
		Int("segments", len(clipped)).
		Str("path", path).
		Msg("subtitle file written")

	return path, nil
}

// assTimestamp formats seconds as H:MM:SS.cc
func assTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds / 3600)
	minutes := int(seconds/60) % 60
	secs := int(seconds) % 60
	centis := int(math.Round((seconds - math.Floor(seconds)) * 100))
	if centis >= 100 {
		centis = 99
	}
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

// escapeText strips ASS markup characters and folds newlines
func escapeText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "{", "(")
	text = strings.ReplaceAll(text, "}", ")")
	text = strings.ReplaceAll(text, "\n", "\\N")
	return text
}
