package metadata

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// BasicBackend is the secondary, gap-filling backend. It only knows what
// the Go image registry can tell it (pixel dimensions), so it contributes
// nothing the structured parser already found.
type BasicBackend struct{}

func (BasicBackend) Name() string { return "basic" }

func (BasicBackend) Extract(path string) (*Fields, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("basic: failed to open %s: %w", path, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("basic: failed to decode config of %s: %w", path, err)
	}

	w, h := cfg.Width, cfg.Height
	return &Fields{Width: &w, Height: &h}, nil
}
