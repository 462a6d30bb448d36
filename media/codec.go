package media

import (
	"fmt"
	"image"
	"log"
	"os"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/davidbyttow/govips/v2/vips"
)

var (
	vipsInitMutex sync.Mutex
	vipsStarted   bool
	vipsAvailable bool
)

// InitCodecs starts libvips, the richer codec used for WebP/AVIF encoding
// and preferred for JPEG work. Callers that never invoke it (or run where
// libvips is unusable) fall back to the baseline pure-Go codec.
func InitCodecs() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsStarted {
		return
	}

	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		if level <= vips.LogLevelError {
			log.Printf("media.codec: vips [%s] %s", domain, msg)
		}
	}, vips.LogLevelError)

	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
	})

	vipsStarted = true
	vipsAvailable = true
	log.Printf("media.codec: libvips initialized (version: %s)", vips.Version)
}

// ShutdownCodecs releases libvips resources.
func ShutdownCodecs() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsStarted {
		vips.Shutdown()
		vipsStarted = false
		vipsAvailable = false
	}
}

// RicherCodecAvailable reports whether the libvips path can be used.
func RicherCodecAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}

// ReadDimensions measures pixel dimensions without decoding the full image.
func ReadDimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode dimensions of %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
