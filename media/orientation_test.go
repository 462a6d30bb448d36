package media

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// writeTestJPEG encodes a solid-color landscape image (wider than tall) so
// dimension swaps after rotation are observable.
func writeTestJPEG(t *testing.T, width, height int) string {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	path := filepath.Join(t.TempDir(), "test.jpg")
	if err := imaging.Save(img, path, imaging.JPEGQuality(90)); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}

func readDims(t *testing.T, path string) (int, int) {
	t.Helper()
	w, h, err := ReadDimensions(path)
	if err != nil {
		t.Fatalf("failed to read dimensions of %s: %v", path, err)
	}
	return w, h
}

func TestNormalizeOrientationNoOp(t *testing.T) {
	path := writeTestJPEG(t, 40, 20)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, code := range []int{0, 1, 9, -3} {
		if !NormalizeOrientation(path, code) {
			t.Errorf("code %d should be a successful no-op", code)
		}
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("no-op codes must not rewrite the file")
	}
}

func TestNormalizeOrientationRotations(t *testing.T) {
	tests := []struct {
		code     int
		swapDims bool
	}{
		{2, false}, // horizontal flip
		{3, false}, // 180 rotation
		{4, false}, // vertical flip
		{5, true},  // transpose
		{6, true},  // 90 CW
		{7, true},  // transverse
		{8, true},  // 90 CCW
	}

	for _, tt := range tests {
		path := writeTestJPEG(t, 40, 20)
		if !NormalizeOrientation(path, tt.code) {
			t.Errorf("code %d: normalization failed", tt.code)
			continue
		}
		w, h := readDims(t, path)
		if tt.swapDims {
			if w != 20 || h != 40 {
				t.Errorf("code %d: got %dx%d, want 20x40", tt.code, w, h)
			}
		} else {
			if w != 40 || h != 20 {
				t.Errorf("code %d: got %dx%d, want 40x20", tt.code, w, h)
			}
		}
	}
}

func TestApplyOrientationTransforms(t *testing.T) {
	// 2x1 image with distinct pixels so flips are distinguishable from
	// rotations
	src := imaging.New(2, 1, color.NRGBA{A: 255})
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{B: 255, A: 255})

	flipped := applyOrientation(src, 2)
	if got := flipped.At(flipped.Bounds().Min.X, flipped.Bounds().Min.Y); !isBlue(got) {
		t.Error("code 2 should mirror horizontally, left pixel should be blue")
	}

	rotated := applyOrientation(src, 6)
	b := rotated.Bounds()
	if b.Dx() != 1 || b.Dy() != 2 {
		t.Errorf("code 6 should swap dimensions, got %dx%d", b.Dx(), b.Dy())
	}
	// a 90 CW correction puts the left (red) pixel at the top
	if got := rotated.At(b.Min.X, b.Min.Y); !isRed(got) {
		t.Error("code 6 should place the left pixel at the top")
	}
}

func isRed(c color.Color) bool {
	r, _, b, _ := c.RGBA()
	return r > 0x8000 && b < 0x8000
}

func isBlue(c color.Color) bool {
	r, _, b, _ := c.RGBA()
	return b > 0x8000 && r < 0x8000
}

func TestExtensionForMime(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"image/webp", ".webp"},
		{"image/tiff", ".tiff"},
		{"image/gif", ".gif"},
		{"application/pdf", ""},
		{"text/html; charset=utf-8", ""},
		{"image/svg+xml", ""},
	}
	for _, tt := range tests {
		if got := ExtensionForMime(tt.mime); got != tt.want {
			t.Errorf("ExtensionForMime(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}
