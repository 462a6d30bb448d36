package media

import (
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
)

// NormalizeOrientation corrects the pixel data of an image in place
// according to its EXIF orientation code and reports success. Codes ≤ 1
// (or out of range) are a successful no-op. After a successful call the
// stored pixels are upright and callers must treat the orientation as 1.
func NormalizeOrientation(path string, orientation int) bool {
	if orientation <= 1 || orientation > 8 {
		return true
	}

	if RicherCodecAvailable() {
		if normalizeWithVips(path) {
			return true
		}
		log.Printf("media.orientation: vips normalization failed for %s, falling back to baseline codec", path)
	}

	return normalizeWithImaging(path, orientation)
}

// normalizeWithVips lets libvips apply the embedded orientation and
// re-encode in place; AutoRotate also strips the orientation tag.
func normalizeWithVips(path string) bool {
	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		log.Printf("media.orientation: vips failed to load %s: %v", path, err)
		return false
	}
	defer ref.Close()

	if err := ref.AutoRotate(); err != nil {
		log.Printf("media.orientation: vips auto-rotate failed for %s: %v", path, err)
		return false
	}

	var encoded []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encoded, _, err = ref.ExportPng(vips.NewPngExportParams())
	default:
		params := vips.NewJpegExportParams()
		params.Quality = 95
		encoded, _, err = ref.ExportJpeg(params)
	}
	if err != nil {
		log.Printf("media.orientation: vips re-encode failed for %s: %v", path, err)
		return false
	}

	if err := os.WriteFile(path, encoded, 0644); err != nil {
		log.Printf("media.orientation: failed to rewrite %s: %v", path, err)
		return false
	}
	return true
}

// normalizeWithImaging applies the canonical EXIF transform table with the
// baseline codec. Saving through imaging drops the EXIF block, so the
// orientation cannot be applied twice.
func normalizeWithImaging(path string, orientation int) bool {
	img, err := imaging.Open(path)
	if err != nil {
		log.Printf("media.orientation: failed to decode %s: %v", path, err)
		return false
	}

	img = applyOrientation(img, orientation)

	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		log.Printf("media.orientation: failed to re-encode %s: %v", path, err)
		return false
	}
	return true
}

// applyOrientation maps each EXIF orientation code to its correcting
// transform.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
