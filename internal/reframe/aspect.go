package reframe

import "sort"

// AspectRatio is a target width:height ratio
type AspectRatio struct {
	W int
	H int
}

// DefaultRatio is used for platforms missing from the table
var DefaultRatio = AspectRatio{W: 9, H: 16}

// platformRatios is the static platform → aspect ratio table. It is fixed
// configuration, not runtime state.
var platformRatios = map[string]AspectRatio{
	"tiktok":          {W: 9, H: 16},
	"youtube_shorts":  {W: 9, H: 16},
	"instagram_reels": {W: 9, H: 16},
	"instagram_post":  {W: 1, H: 1},
	"youtube":         {W: 16, H: 9},
}

// RatioFor looks up the aspect ratio for a platform, falling back to
// vertical 9:16 for unknown platforms.
func RatioFor(platform string) AspectRatio {
	if ratio, ok := platformRatios[platform]; ok {
		return ratio
	}
	return DefaultRatio
}

// Platforms returns the known platform identifiers, sorted
func Platforms() []string {
	names := make([]string, 0, len(platformRatios))
	for name := range platformRatios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Geometry is the deterministic resize/crop plan for one target ratio
type Geometry struct {
	ScaleW int
	ScaleH int
	CropW  int
	CropH  int
	CropX  int
	CropY  int
}

// targetHeight picks the canonical output height: 1920 for vertical ratios,
// 1080 for square and landscape.
func targetHeight(ratio AspectRatio) int {
	if ratio.H > ratio.W {
		return 1920
	}
	return 1080
}

// ComputeGeometry plans a scale-then-center-crop for the source dimensions.
// The source is scaled up just enough to cover the target box, then cropped
// centered on both axes. Dimensions are kept even for the encoder.
func ComputeGeometry(srcW, srcH int, ratio AspectRatio) Geometry {
	cropH := targetHeight(ratio)
	cropW := even(cropH * ratio.W / ratio.H)

	// Cover scale factor: the scaled frame must enclose the crop box.
	sx := float64(cropW) / float64(srcW)
	sy := float64(cropH) / float64(srcH)
	s := sx
	if sy > s {
		s = sy
	}

	scaleW := even(int(float64(srcW)*s + 0.5))
	scaleH := even(int(float64(srcH)*s + 0.5))
	if scaleW < cropW {
		scaleW = cropW
	}
	if scaleH < cropH {
		scaleH = cropH
	}

	return Geometry{
		ScaleW: scaleW,
		ScaleH: scaleH,
		CropW:  cropW,
		CropH:  cropH,
		CropX:  (scaleW - cropW) / 2,
		CropY:  (scaleH - cropH) / 2,
	}
}

func even(v int) int {
	return v &^ 1
}
