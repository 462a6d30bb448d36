package services

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/fabiodalez-dev/photoCMS-sub001/models"
)

// fakeEquipmentRepo is an in-memory catalog with the same insert-or-get
// semantics as the real one.
type fakeEquipmentRepo struct {
	cameras []models.Camera
	lenses  []models.Lens
	nextID  uint
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{nextID: 1}
}

func (f *fakeEquipmentRepo) FindCamera(brand, model string) (*models.Camera, error) {
	for i := range f.cameras {
		if f.cameras[i].Brand == brand && f.cameras[i].Model == model {
			return &f.cameras[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEquipmentRepo) ListCamerasByBrand(brand string) ([]models.Camera, error) {
	var out []models.Camera
	for _, c := range f.cameras {
		if c.Brand == brand {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) GetOrCreateCamera(brand, model string) (*models.Camera, error) {
	if existing, err := f.FindCamera(brand, model); err == nil {
		return existing, nil
	}
	f.cameras = append(f.cameras, models.Camera{ID: f.nextID, Brand: brand, Model: model})
	f.nextID++
	return &f.cameras[len(f.cameras)-1], nil
}

func (f *fakeEquipmentRepo) FindLens(brand, model string) (*models.Lens, error) {
	for i := range f.lenses {
		if f.lenses[i].Brand == brand && f.lenses[i].Model == model {
			return &f.lenses[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEquipmentRepo) GetOrCreateLens(brand, model string) (*models.Lens, error) {
	if existing, err := f.FindLens(brand, model); err == nil {
		return existing, nil
	}
	f.lenses = append(f.lenses, models.Lens{ID: f.nextID, Brand: brand, Model: model})
	f.nextID++
	return &f.lenses[len(f.lenses)-1], nil
}

func TestNormalizeBrand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NIKON CORPORATION", "Nikon"},
		{"NIKON", "Nikon"},
		{"nikon corporation", "Nikon"},
		{"CANON INC.", "Canon"},
		{"FUJIFILM", "Fujifilm"},
		{"OM DIGITAL SOLUTIONS", "OM System"},
		{"  SONY   CORPORATION ", "Sony"},
		{"Hasselblad", "Hasselblad"},
		{"DJI", "Dji"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeBrand(tt.in); got != tt.want {
			t.Errorf("NormalizeBrand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveCameraDeduplicatesVendorSpellings(t *testing.T) {
	resolver := NewEquipmentResolver(newFakeEquipmentRepo())

	first := resolver.ResolveCamera("NIKON CORPORATION", "NIKON D750")
	second := resolver.ResolveCamera("Nikon", "NIKON D750")

	if first == nil || second == nil {
		t.Fatalf("expected both resolutions to succeed, got %v and %v", first, second)
	}
	if *first != *second {
		t.Errorf("vendor spellings resolved to different cameras: %d vs %d", *first, *second)
	}
}

func TestResolveCameraFuzzyModelMatch(t *testing.T) {
	repo := newFakeEquipmentRepo()
	resolver := NewEquipmentResolver(repo)

	first := resolver.ResolveCamera("CANON INC.", "Canon EOS R5")
	// same body reported without the vendor prefix on the model
	second := resolver.ResolveCamera("Canon", "EOS R5")

	if first == nil || second == nil {
		t.Fatal("expected both resolutions to succeed")
	}
	if *first != *second {
		t.Errorf("substring model variants resolved to different cameras: %d vs %d", *first, *second)
	}
	if len(repo.cameras) != 1 {
		t.Errorf("expected a single catalog row, got %d", len(repo.cameras))
	}
}

func TestResolveCameraDistinctModels(t *testing.T) {
	repo := newFakeEquipmentRepo()
	resolver := NewEquipmentResolver(repo)

	a := resolver.ResolveCamera("SONY", "ILCE-7M3")
	b := resolver.ResolveCamera("SONY", "ILCE-7M4")

	if a == nil || b == nil {
		t.Fatal("expected both resolutions to succeed")
	}
	if *a == *b {
		t.Error("distinct models must not be merged")
	}
}

func TestResolveCameraEmptyInputs(t *testing.T) {
	resolver := NewEquipmentResolver(newFakeEquipmentRepo())
	if got := resolver.ResolveCamera("", "D750"); got != nil {
		t.Errorf("empty make should resolve to nil, got %d", *got)
	}
	if got := resolver.ResolveCamera("Nikon", "   "); got != nil {
		t.Errorf("blank model should resolve to nil, got %d", *got)
	}
}

func TestParseLensIdentifier(t *testing.T) {
	tests := []struct {
		raw       string
		wantBrand string
		wantModel string
	}{
		{"Canon EF 24-70mm f/2.8L II USM", "Canon", "EF 24-70mm f/2.8L II USM"},
		{"NIKKOR Z 50mm f/1.8 S", "Nikkor", "Z 50mm f/1.8 S"},
		{"Sigma 35mm F1.4 DG HSM Art", "Sigma", "35mm F1.4 DG HSM Art"},
		{"FE 85mm F1.4 GM", "Fe", "85mm F1.4 GM"},
		{"50mm", "Unknown", "50mm"},
		{"", "", ""},
	}
	for _, tt := range tests {
		brand, model := ParseLensIdentifier(tt.raw)
		if brand != tt.wantBrand || model != tt.wantModel {
			t.Errorf("ParseLensIdentifier(%q) = (%q, %q), want (%q, %q)",
				tt.raw, brand, model, tt.wantBrand, tt.wantModel)
		}
	}
}

func TestResolveLensDeduplicates(t *testing.T) {
	repo := newFakeEquipmentRepo()
	resolver := NewEquipmentResolver(repo)

	first := resolver.ResolveLens("Canon EF 50mm f/1.8 STM")
	second := resolver.ResolveLens("Canon  EF 50mm f/1.8 STM")

	if first == nil || second == nil {
		t.Fatal("expected both resolutions to succeed")
	}
	if *first != *second {
		t.Errorf("identical lenses resolved to different rows: %d vs %d", *first, *second)
	}
	if len(repo.lenses) != 1 {
		t.Errorf("expected a single lens row, got %d", len(repo.lenses))
	}
	if repo.lenses[0].Brand != "Canon" {
		t.Errorf("lens brand = %q, want Canon", repo.lenses[0].Brand)
	}
}

func TestResolveLensEmpty(t *testing.T) {
	resolver := NewEquipmentResolver(newFakeEquipmentRepo())
	if got := resolver.ResolveLens("  "); got != nil {
		t.Errorf("blank lens should resolve to nil, got %d", *got)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := collapseWhitespace("  a \t b\n c "); got != "a b c" {
		t.Errorf("collapseWhitespace = %q", got)
	}
	if got := titleCase("EOS r5"); !strings.HasPrefix(got, "Eos") {
		t.Errorf("titleCase = %q", got)
	}
}
