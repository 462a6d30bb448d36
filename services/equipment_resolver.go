package services

import (
	"log"
	"strings"
	"unicode"

	"github.com/fabiodalez-dev/photoCMS-sub001/repository"
	"gorm.io/gorm"
)

// brandRemap maps known vendor legal names (as written into EXIF Make) to
// canonical short brand names. The table is data-driven and not assumed to
// be exhaustive; unlisted vendors fall back to generic title-casing.
var brandRemap = map[string]string{
	"NIKON":                       "Nikon",
	"NIKON CORPORATION":           "Nikon",
	"CANON":                       "Canon",
	"CANON INC.":                  "Canon",
	"SONY":                        "Sony",
	"SONY CORPORATION":            "Sony",
	"FUJIFILM":                    "Fujifilm",
	"FUJI PHOTO FILM CO., LTD.":   "Fujifilm",
	"OLYMPUS IMAGING CORP.":       "Olympus",
	"OLYMPUS CORPORATION":         "Olympus",
	"OM DIGITAL SOLUTIONS":        "OM System",
	"PANASONIC":                   "Panasonic",
	"PENTAX":                      "Pentax",
	"PENTAX CORPORATION":          "Pentax",
	"RICOH IMAGING COMPANY, LTD.": "Ricoh",
	"EASTMAN KODAK COMPANY":       "Kodak",
	"LEICA CAMERA AG":             "Leica",
	"SAMSUNG TECHWIN":             "Samsung",
}

// lensBrandPrefixes are the known-brand-prefix patterns tried first when
// parsing free-text lens identifiers, in order.
var lensBrandPrefixes = []string{
	"Canon", "Nikon", "Nikkor", "Sony", "Sigma", "Tamron", "Tokina",
	"Zeiss", "Fujifilm", "Fujinon", "Olympus", "Panasonic", "Leica",
	"Samyang", "Voigtlander",
}

// UnknownBrand is assigned when no lens parsing pattern matches.
const UnknownBrand = "Unknown"

// EquipmentResolver maps free-text camera/lens identifiers from EXIF to
// deduplicated catalog rows, creating new ones as needed. All failures are
// soft: a resolution problem logs and yields a nil id, never an error.
type EquipmentResolver struct {
	repo repository.EquipmentRepositoryInterface
}

func NewEquipmentResolver(repo repository.EquipmentRepositoryInterface) *EquipmentResolver {
	return &EquipmentResolver{repo: repo}
}

// ResolveCamera normalizes make/model, then tries exact lookup, same-brand
// substring match, and finally insert-or-get-existing.
func (r *EquipmentResolver) ResolveCamera(make, model string) *uint {
	brand := NormalizeBrand(make)
	model = collapseWhitespace(model)
	if brand == "" || model == "" {
		return nil
	}

	if camera, err := r.repo.FindCamera(brand, model); err == nil {
		return &camera.ID
	} else if err != gorm.ErrRecordNotFound {
		log.Printf("equipment: camera lookup failed for %s %s: %v", brand, model, err)
		return nil
	}

	// same-brand fuzzy pass: some vendors append or omit qualifiers on the
	// model string from body to body
	if candidates, err := r.repo.ListCamerasByBrand(brand); err == nil {
		lower := strings.ToLower(model)
		for i := range candidates {
			existing := strings.ToLower(candidates[i].Model)
			if strings.Contains(lower, existing) || strings.Contains(existing, lower) {
				return &candidates[i].ID
			}
		}
	} else {
		log.Printf("equipment: brand scan failed for %s: %v", brand, err)
	}

	camera, err := r.repo.GetOrCreateCamera(brand, model)
	if err != nil {
		log.Printf("equipment: failed to create camera %s %s: %v", brand, model, err)
		return nil
	}
	return &camera.ID
}

// ResolveLens parses a free-text lens identifier and resolves it with
// insert-or-get-existing semantics.
func (r *EquipmentResolver) ResolveLens(raw string) *uint {
	brand, model := ParseLensIdentifier(raw)
	if model == "" {
		return nil
	}

	lens, err := r.repo.GetOrCreateLens(brand, model)
	if err != nil {
		log.Printf("equipment: failed to resolve lens %q: %v", raw, err)
		return nil
	}
	return &lens.ID
}

// ParseLensIdentifier applies the ordered pattern list to a free-text lens
// string: known brand prefix, then first-token heuristic, then an Unknown
// fallback carrying the full string as model.
func ParseLensIdentifier(raw string) (brand, model string) {
	raw = collapseWhitespace(raw)
	if raw == "" {
		return "", ""
	}

	for _, prefix := range lensBrandPrefixes {
		if len(raw) > len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix) && raw[len(prefix)] == ' ' {
			return prefix, strings.TrimSpace(raw[len(prefix):])
		}
	}

	fields := strings.Fields(raw)
	if len(fields) >= 2 {
		return titleCase(fields[0]), strings.Join(fields[1:], " ")
	}

	return UnknownBrand, raw
}

// NormalizeBrand maps a raw EXIF Make through the remap table, falling back
// to title-casing for unlisted vendors.
func NormalizeBrand(make string) string {
	key := strings.ToUpper(collapseWhitespace(make))
	if key == "" {
		return ""
	}
	if canonical, ok := brandRemap[key]; ok {
		return canonical
	}
	return titleCase(collapseWhitespace(make))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
