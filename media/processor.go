package media

import (
	"fmt"
	"log"
	"os"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
)

const (
	blurTargetWidth = 64
	blurSigma       = 12.0
	blurJpegQuality = 40
)

// Processor renders derivative files. It prefers the libvips codec and
// degrades to the baseline pure-Go codec for JPEG/PNG output; WebP and
// AVIF have no baseline path and fail when libvips is unavailable.
// It relies on a Store implementation for path resolution.
type Processor struct {
	store Store
}

func NewProcessor(store Store) *Processor {
	return &Processor{store: store}
}

// RenderDerivative decodes the source, resizes to targetWidth preserving
// aspect ratio (never upscaling), encodes with the format's quality and
// writes to the deterministic relative path. A failed render never leaves
// a partial file behind.
func (p *Processor) RenderDerivative(srcPath, relPath, format string, targetWidth, quality int) (*RenderResult, error) {
	dstPath, err := p.store.FullPath(AssetTypeDerivative, relPath)
	if err != nil {
		return nil, err
	}

	var width, height int
	switch format {
	case "jpg", "jpeg", "png":
		if RicherCodecAvailable() {
			width, height, err = renderWithVips(srcPath, dstPath, format, targetWidth, quality, 0)
			if err == nil {
				break
			}
			log.Printf("media.processor: vips render failed for %s (%s), using baseline codec: %v", relPath, format, err)
		}
		width, height, err = renderWithImaging(srcPath, dstPath, format, targetWidth, quality, 0)
	case "webp", "avif":
		if !RicherCodecAvailable() {
			return nil, fmt.Errorf("format %s requires the libvips codec, which is unavailable", format)
		}
		width, height, err = renderWithVips(srcPath, dstPath, format, targetWidth, quality, 0)
	default:
		return nil, fmt.Errorf("unsupported derivative format %q", format)
	}
	if err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	return measured(dstPath, relPath, width, height)
}

// RenderBlur produces the single obfuscated preview derivative used for
// sensitive-content flows: heavily downscaled, gaussian-blurred, low
// quality JPEG.
func (p *Processor) RenderBlur(srcPath, relPath string) (*RenderResult, error) {
	dstPath, err := p.store.FullPath(AssetTypeDerivative, relPath)
	if err != nil {
		return nil, err
	}

	var width, height int
	if RicherCodecAvailable() {
		width, height, err = renderWithVips(srcPath, dstPath, "jpg", blurTargetWidth, blurJpegQuality, blurSigma)
	} else {
		width, height, err = renderWithImaging(srcPath, dstPath, "jpg", blurTargetWidth, blurJpegQuality, blurSigma)
	}
	if err != nil {
		os.Remove(dstPath)
		return nil, err
	}

	return measured(dstPath, relPath, width, height)
}

func measured(dstPath, relPath string, width, height int) (*RenderResult, error) {
	info, err := os.Stat(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat rendered derivative %s: %w", dstPath, err)
	}
	return &RenderResult{
		RelativePath: relPath,
		Width:        width,
		Height:       height,
		SizeBytes:    info.Size(),
	}, nil
}

// renderWithVips runs the full decode/resize/encode pipeline inside
// libvips. blurSigma > 0 adds a gaussian blur before encoding.
func renderWithVips(srcPath, dstPath, format string, targetWidth, quality int, blur float64) (int, int, error) {
	ref, err := vips.LoadImageFromFile(srcPath, vips.NewImportParams())
	if err != nil {
		return 0, 0, fmt.Errorf("vips failed to load %s: %w", srcPath, err)
	}
	defer ref.Close()

	if ref.Width() > targetWidth {
		scale := float64(targetWidth) / float64(ref.Width())
		if err := ref.Resize(scale, vips.KernelLanczos3); err != nil {
			return 0, 0, fmt.Errorf("vips resize failed: %w", err)
		}
	}

	if blur > 0 {
		if err := ref.GaussianBlur(blur); err != nil {
			return 0, 0, fmt.Errorf("vips blur failed: %w", err)
		}
	}

	var encoded []byte
	switch format {
	case "jpg", "jpeg":
		params := vips.NewJpegExportParams()
		params.Quality = quality
		encoded, _, err = ref.ExportJpeg(params)
	case "png":
		encoded, _, err = ref.ExportPng(vips.NewPngExportParams())
	case "webp":
		params := vips.NewWebpExportParams()
		params.Quality = quality
		encoded, _, err = ref.ExportWebp(params)
	case "avif":
		params := vips.NewAvifExportParams()
		params.Quality = quality
		encoded, _, err = ref.ExportAvif(params)
	default:
		return 0, 0, fmt.Errorf("unsupported vips format %q", format)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("vips export (%s) failed: %w", format, err)
	}

	if err := os.WriteFile(dstPath, encoded, 0644); err != nil {
		return 0, 0, fmt.Errorf("failed to write derivative %s: %w", dstPath, err)
	}
	return ref.Width(), ref.Height(), nil
}

// renderWithImaging is the baseline codec path; it only speaks JPEG and
// PNG.
func renderWithImaging(srcPath, dstPath, format string, targetWidth, quality int, blur float64) (int, int, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode %s: %w", srcPath, err)
	}

	if img.Bounds().Dx() > targetWidth {
		img = imaging.Resize(img, targetWidth, 0, imaging.Lanczos)
	}
	if blur > 0 {
		img = imaging.Blur(img, blur/2)
	}

	switch format {
	case "jpg", "jpeg":
		err = imaging.Save(img, dstPath, imaging.JPEGQuality(quality))
	case "png":
		err = imaging.Save(img, dstPath)
	default:
		return 0, 0, fmt.Errorf("baseline codec cannot encode %q", format)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to encode %s: %w", dstPath, err)
	}

	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
