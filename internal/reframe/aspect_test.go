package reframe

import "testing"

func TestRatioForKnownPlatforms(t *testing.T) {
	cases := []struct {
		platform string
		want     AspectRatio
	}{
		{"tiktok", AspectRatio{9, 16}},
		{"youtube_shorts", AspectRatio{9, 16}},
		{"instagram_reels", AspectRatio{9, 16}},
		{"instagram_post", AspectRatio{1, 1}},
		{"youtube", AspectRatio{16, 9}},
	}

	for _, tc := range cases {
		if got := RatioFor(tc.platform); got != tc.want {
			t.Errorf("RatioFor(%q) = %v, want %v", tc.platform, got, tc.want)
		}
	}
}

func TestRatioForUnknownFallsBackToVertical(t *testing.T) {
	if got := RatioFor("vine"); got != DefaultRatio {
		t.Errorf("unknown platform: got %v, want %v", got, DefaultRatio)
	}
}

func TestComputeGeometryVertical(t *testing.T) {
	// 1920x1080 landscape source to 9:16: scale so height = 1920, then
	// center-crop horizontally to 1080.
	geo := ComputeGeometry(1920, 1080, AspectRatio{9, 16})

	if geo.CropW != 1080 || geo.CropH != 1920 {
		t.Errorf("crop = %dx%d, want 1080x1920", geo.CropW, geo.CropH)
	}
	if geo.ScaleH != 1920 {
		t.Errorf("scale height = %d, want 1920", geo.ScaleH)
	}
	if geo.CropY != 0 {
		t.Errorf("crop y = %d, want 0", geo.CropY)
	}
	if geo.CropX != (geo.ScaleW-geo.CropW)/2 {
		t.Errorf("crop not horizontally centered: x=%d scaleW=%d", geo.CropX, geo.ScaleW)
	}
}

func TestComputeGeometrySquare(t *testing.T) {
	// 1920x1080 source to 1:1: scale so height = 1080, center-crop the
	// largest fitting square.
	geo := ComputeGeometry(1920, 1080, AspectRatio{1, 1})

	if geo.CropW != 1080 || geo.CropH != 1080 {
		t.Errorf("crop = %dx%d, want 1080x1080", geo.CropW, geo.CropH)
	}
	if geo.ScaleW != 1920 || geo.ScaleH != 1080 {
		t.Errorf("scale = %dx%d, want 1920x1080", geo.ScaleW, geo.ScaleH)
	}
	if geo.CropX != 420 || geo.CropY != 0 {
		t.Errorf("crop offset = (%d,%d), want (420,0)", geo.CropX, geo.CropY)
	}
}

func TestComputeGeometryLandscape(t *testing.T) {
	geo := ComputeGeometry(1920, 1080, AspectRatio{16, 9})

	if geo.CropW != 1920 || geo.CropH != 1080 {
		t.Errorf("crop = %dx%d, want 1920x1080", geo.CropW, geo.CropH)
	}
	if geo.CropX != 0 || geo.CropY != 0 {
		t.Errorf("matched ratio should not shift: offset (%d,%d)", geo.CropX, geo.CropY)
	}
}

func TestComputeGeometryCoversNarrowSource(t *testing.T) {
	// Vertical source to landscape target: the scaled frame must still
	// enclose the crop box.
	geo := ComputeGeometry(1080, 1920, AspectRatio{16, 9})

	if geo.ScaleW < geo.CropW || geo.ScaleH < geo.CropH {
		t.Errorf("scaled %dx%d does not cover crop %dx%d", geo.ScaleW, geo.ScaleH, geo.CropW, geo.CropH)
	}
	if geo.CropW%2 != 0 || geo.CropH%2 != 0 || geo.ScaleW%2 != 0 || geo.ScaleH%2 != 0 {
		t.Errorf("dimensions must be even: scale %dx%d crop %dx%d", geo.ScaleW, geo.ScaleH, geo.CropW, geo.CropH)
	}
}

func TestPlatformsSorted(t *testing.T) {
	names := Platforms()
	if len(names) != 5 {
		t.Fatalf("expected 5 platforms, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Errorf("platforms not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
