package workers

import (
	"database/sql"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"gorm.io/gorm"

	"github.com/fabiodalez-dev/photoCMS-sub001/config"
	"github.com/fabiodalez-dev/photoCMS-sub001/database"
	"github.com/fabiodalez-dev/photoCMS-sub001/media"
	"github.com/fabiodalez-dev/photoCMS-sub001/models"
	"github.com/fabiodalez-dev/photoCMS-sub001/repository"
)

// baselineSettings restricts the matrix to formats the pure-Go codec can
// encode, so tests do not depend on libvips being present.
func baselineSettings() config.ImageSettings {
	return config.ImageSettings{
		Formats:      map[string]bool{"jpg": true, "png": true},
		Quality:      map[string]int{"jpg": 82},
		Breakpoints:  map[string]int{"sm": 40, "md": 80},
		PreviewWidth: 48,
	}
}

type testEnv struct {
	gormDB    *gorm.DB
	sqlDB     *sql.DB
	store     *media.LocalStorage
	generator *DerivativeGenerator
	assets    repository.AssetRepositoryInterface
	variants  repository.VariantRepositoryInterface
	settings  config.ImageSettings
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrateModels(gormDB); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("failed to unwrap sql.DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	store, err := media.NewLocalStorage(t.TempDir(), map[media.AssetType]string{
		media.AssetTypeOriginal:   "originals",
		media.AssetTypeDerivative: "derivatives",
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	settings := baselineSettings()
	assets := repository.NewAssetRepository(gormDB)
	variants := repository.NewVariantRepository(gormDB)
	generator := NewDerivativeGenerator(store, media.NewProcessor(store), assets, variants, settings)

	return &testEnv{
		gormDB:    gormDB,
		sqlDB:     sqlDB,
		store:     store,
		generator: generator,
		assets:    assets,
		variants:  variants,
		settings:  settings,
	}
}

// storeOriginal writes a real JPEG into the originals directory and creates
// the matching asset row.
func (e *testEnv) storeOriginal(t *testing.T, assetID string, albumID uint, width, height int) {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 120, G: 180, B: 60, A: 255})
	full, err := e.store.FullPath(media.AssetTypeOriginal, assetID+".jpg")
	if err != nil {
		t.Fatalf("failed to resolve original path: %v", err)
	}
	if err := imaging.Save(img, full, imaging.JPEGQuality(90)); err != nil {
		t.Fatalf("failed to write original: %v", err)
	}

	asset := &models.Asset{
		ID:         assetID,
		AlbumID:    albumID,
		Hash:       "hash-" + assetID,
		StoredPath: assetID + ".jpg",
		MimeType:   "image/jpeg",
		Width:      width,
		Height:     height,
	}
	if err := e.assets.Create(asset); err != nil {
		t.Fatalf("failed to create asset row: %v", err)
	}
}

func TestGenerateForAssetFullMatrix(t *testing.T) {
	env := newTestEnv(t)
	env.storeOriginal(t, "photo1", 1, 200, 100)

	stats, err := env.generator.GenerateForAsset("photo1", false)
	if err != nil {
		t.Fatalf("GenerateForAsset failed: %v", err)
	}

	wantCells := env.generator.MatrixSize()
	if stats.Generated != wantCells || stats.Skipped != 0 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want %d generated", stats, wantCells)
	}

	rows, err := env.variants.ListByAsset("photo1")
	if err != nil {
		t.Fatalf("ListByAsset failed: %v", err)
	}
	if len(rows) != wantCells {
		t.Fatalf("got %d variant rows, want %d", len(rows), wantCells)
	}
	for _, row := range rows {
		if !env.store.Exists(media.AssetTypeDerivative, row.RelativePath) {
			t.Errorf("variant file %s missing on disk", row.RelativePath)
		}
		if row.Width != env.settings.Breakpoints[row.Breakpoint] {
			t.Errorf("variant %s/%s width = %d, want %d",
				row.Breakpoint, row.Format, row.Width, env.settings.Breakpoints[row.Breakpoint])
		}
	}
}

func TestGenerateForAssetMissingOnlyIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.storeOriginal(t, "photo1", 1, 200, 100)

	if _, err := env.generator.GenerateForAsset("photo1", false); err != nil {
		t.Fatalf("initial generation failed: %v", err)
	}

	stats, err := env.generator.GenerateForAsset("photo1", true)
	if err != nil {
		t.Fatalf("repeat generation failed: %v", err)
	}
	if stats.Generated != 0 || stats.Skipped != env.generator.MatrixSize() {
		t.Errorf("repeat run stats = %+v, want all skipped", stats)
	}
}

func TestGenerateForAssetRepairsDeletedFile(t *testing.T) {
	env := newTestEnv(t)
	env.storeOriginal(t, "photo1", 1, 200, 100)

	if _, err := env.generator.GenerateForAsset("photo1", false); err != nil {
		t.Fatalf("initial generation failed: %v", err)
	}
	if err := env.store.Delete(media.AssetTypeDerivative, "photo1_sm.jpg"); err != nil {
		t.Fatalf("failed to delete variant file: %v", err)
	}

	stats, err := env.generator.GenerateForAsset("photo1", true)
	if err != nil {
		t.Fatalf("repair run failed: %v", err)
	}
	if stats.Generated != 1 || stats.Skipped != env.generator.MatrixSize()-1 {
		t.Errorf("repair stats = %+v, want exactly one regenerated cell", stats)
	}
	if !env.store.Exists(media.AssetTypeDerivative, "photo1_sm.jpg") {
		t.Error("deleted variant file should be regenerated")
	}
}

func TestGenerateForAssetUnknownAsset(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.generator.GenerateForAsset("missing", false); err == nil {
		t.Error("expected unknown asset to fail")
	}
}

func TestGenerateBlurVariant(t *testing.T) {
	env := newTestEnv(t)
	env.storeOriginal(t, "photo1", 1, 200, 100)

	if err := env.generator.GenerateBlurVariant("photo1"); err != nil {
		t.Fatalf("GenerateBlurVariant failed: %v", err)
	}

	exists, err := env.variants.Exists("photo1", models.BlurBreakpoint, "jpg")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("blur variant row should exist")
	}
	if !env.store.Exists(media.AssetTypeDerivative, "photo1_blur.jpg") {
		t.Error("blur derivative file should exist")
	}

	// repeated generation rewrites the same row
	if err := env.generator.GenerateBlurVariant("photo1"); err != nil {
		t.Fatalf("repeat GenerateBlurVariant failed: %v", err)
	}
	rows, err := env.variants.ListByAsset("photo1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1 after repeated blur generation", len(rows))
	}
}
