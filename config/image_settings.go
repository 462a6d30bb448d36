package config

import (
	"encoding/json"
	"log"
	"strconv"
)

// settings store keys consumed by the media pipeline
const (
	SettingImageFormats     = "image.formats"
	SettingImageQuality     = "image.quality"
	SettingImageBreakpoints = "image.breakpoints"
	SettingImagePreview     = "image.preview"
)

// SettingsReader is the narrow read surface this package consumes from the
// settings store. Missing keys are reported as an error by implementations.
type SettingsReader interface {
	GetSetting(key string) (string, error)
}

// ImageSettings holds the derivative pipeline configuration. Values are read
// once from the settings store and injected at construction time into the
// components that need them; components never reach back into the store.
type ImageSettings struct {
	Formats      map[string]bool `json:"formats"`      // format name -> enabled
	Quality      map[string]int  `json:"quality"`      // format name -> quality level
	Breakpoints  map[string]int  `json:"breakpoints"`  // breakpoint label -> target width px
	PreviewWidth int             `json:"preview_width"`
}

// DefaultImageSettings returns the built-in pipeline configuration used when
// the settings store has no (or invalid) values for a key.
func DefaultImageSettings() ImageSettings {
	return ImageSettings{
		Formats: map[string]bool{
			"jpg":  true,
			"webp": true,
			"avif": false,
		},
		Quality: map[string]int{
			"jpg":  82,
			"webp": 80,
			"avif": 50,
		},
		Breakpoints: map[string]int{
			"sm": 640,
			"md": 1024,
			"lg": 1600,
			"xl": 2400,
		},
		PreviewWidth: 480,
	}
}

// EnabledFormats returns the names of all enabled output formats.
func (s ImageSettings) EnabledFormats() []string {
	var names []string
	for name, enabled := range s.Formats {
		if enabled {
			names = append(names, name)
		}
	}
	return names
}

// QualityFor returns the configured quality for a format, falling back to
// the built-in default when unset.
func (s ImageSettings) QualityFor(format string) int {
	if q, ok := s.Quality[format]; ok && q > 0 {
		return q
	}
	if q, ok := DefaultImageSettings().Quality[format]; ok {
		return q
	}
	return 80
}

// LoadImageSettings reads the image pipeline settings from the store,
// overlaying stored values on the built-in defaults. Missing or unparsable
// keys keep their defaults and log a warning.
func LoadImageSettings(store SettingsReader) ImageSettings {
	s := DefaultImageSettings()

	if raw, err := store.GetSetting(SettingImageFormats); err == nil {
		var formats map[string]bool
		if jsonErr := json.Unmarshal([]byte(raw), &formats); jsonErr != nil || len(formats) == 0 {
			log.Printf("config: invalid %s value %q, keeping defaults: %v", SettingImageFormats, raw, jsonErr)
		} else {
			s.Formats = formats
		}
	}

	if raw, err := store.GetSetting(SettingImageQuality); err == nil {
		var quality map[string]int
		if jsonErr := json.Unmarshal([]byte(raw), &quality); jsonErr != nil || len(quality) == 0 {
			log.Printf("config: invalid %s value %q, keeping defaults: %v", SettingImageQuality, raw, jsonErr)
		} else {
			s.Quality = quality
		}
	}

	if raw, err := store.GetSetting(SettingImageBreakpoints); err == nil {
		var breakpoints map[string]int
		if jsonErr := json.Unmarshal([]byte(raw), &breakpoints); jsonErr != nil || len(breakpoints) == 0 {
			log.Printf("config: invalid %s value %q, keeping defaults: %v", SettingImageBreakpoints, raw, jsonErr)
		} else {
			s.Breakpoints = breakpoints
		}
	}

	if raw, err := store.GetSetting(SettingImagePreview); err == nil {
		if width, convErr := strconv.Atoi(raw); convErr != nil || width <= 0 {
			log.Printf("config: invalid %s value %q, keeping default %d", SettingImagePreview, raw, s.PreviewWidth)
		} else {
			s.PreviewWidth = width
		}
	}

	return s
}
