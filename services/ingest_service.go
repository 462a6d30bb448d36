package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/fabiodalez-dev/photoCMS-sub001/config"
	"github.com/fabiodalez-dev/photoCMS-sub001/media"
	"github.com/fabiodalez-dev/photoCMS-sub001/metadata"
	"github.com/fabiodalez-dev/photoCMS-sub001/models"
	"github.com/fabiodalez-dev/photoCMS-sub001/repository"
)

// PreviewBreakpoint is the breakpoint label of the single synchronous
// ingestion preview; it is not part of the enabled breakpoint matrix.
const PreviewBreakpoint = "preview"

// IngestionOrchestrator drives a single validated upload through storage,
// extraction, normalization, equipment resolution and an immediate small
// preview. Bulk derivative generation is deliberately left to the out-of-
// band batch path so request latency stays decoupled from transcoding.
type IngestionOrchestrator struct {
	store     media.Store
	processor *media.Processor
	extractor *metadata.Extractor
	equipment *EquipmentResolver
	assets    repository.AssetRepositoryInterface
	variants  repository.VariantRepositoryInterface
	settings  config.ImageSettings
}

func NewIngestionOrchestrator(
	store media.Store,
	processor *media.Processor,
	extractor *metadata.Extractor,
	equipment *EquipmentResolver,
	assets repository.AssetRepositoryInterface,
	variants repository.VariantRepositoryInterface,
	settings config.ImageSettings,
) *IngestionOrchestrator {
	return &IngestionOrchestrator{
		store:     store,
		processor: processor,
		extractor: extractor,
		equipment: equipment,
		assets:    assets,
		variants:  variants,
		settings:  settings,
	}
}

// Ingest validates, stores and persists one uploaded file, returning the
// created asset. MIME validation uses sniffed content, never the filename.
// Metadata, equipment and preview problems degrade softly; a disallowed
// type, an unmeasurable file or an originals write failure is fatal.
func (o *IngestionOrchestrator) Ingest(albumID uint, uploadPath string) (*models.Asset, error) {
	content, err := os.ReadFile(uploadPath)
	if err != nil {
		return nil, fmt.Errorf("ingest: failed to read upload %s: %w", uploadPath, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("ingest: upload %s is empty", uploadPath)
	}

	mimeType := http.DetectContentType(content)
	ext := media.ExtensionForMime(mimeType)
	if ext == "" {
		return nil, fmt.Errorf("ingest: disallowed content type %q for %s", mimeType, uploadPath)
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	storedRel, err := o.store.Save(media.AssetTypeOriginal, hash+ext, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("ingest: failed to store original: %w", err)
	}

	storedAbs, err := o.store.FullPath(media.AssetTypeOriginal, storedRel)
	if err != nil {
		return nil, fmt.Errorf("ingest: failed to resolve stored original: %w", err)
	}

	width, height, err := media.ReadDimensions(storedAbs)
	if err != nil {
		return nil, fmt.Errorf("ingest: cannot measure dimensions of %s: %w", uploadPath, err)
	}

	fields := o.extractor.Extract(storedAbs)

	var cameraID, lensID *uint
	if fields.CameraMake != nil || fields.CameraModel != nil {
		cameraID = o.equipment.ResolveCamera(deref(fields.CameraMake), deref(fields.CameraModel))
	}
	if fields.LensModel != nil {
		lensID = o.equipment.ResolveLens(deref(fields.LensModel))
	}

	if code := fields.OrientationCode(); code > 1 {
		if media.NormalizeOrientation(storedAbs, code) {
			// post-normalization dimensions are authoritative
			if w, h, dimErr := media.ReadDimensions(storedAbs); dimErr == nil {
				width, height = w, h
			} else {
				log.Printf("ingest: failed to re-measure %s after normalization: %v", storedAbs, dimErr)
			}
		} else {
			log.Printf("ingest: orientation normalization failed for %s (code %d), keeping stored pixels", storedAbs, code)
		}
	}

	asset := &models.Asset{
		ID:           uuid.NewString(),
		AlbumID:      albumID,
		Hash:         hash,
		StoredPath:   storedRel,
		MimeType:     mimeType,
		Width:        width,
		Height:       height,
		ISO:          fields.ISO,
		ShutterSpeed: fields.ShutterSpeed,
		Aperture:     fields.Aperture,
		FocalLength:  fields.FocalLength,
		TakenAt:      fields.TakenAt,
		Latitude:     fields.Latitude,
		Longitude:    fields.Longitude,
		CameraID:     cameraID,
		LensID:       lensID,
		CreatedAt:    time.Now().Unix(),
	}

	if err := o.assets.Create(asset); err != nil {
		return nil, fmt.Errorf("ingest: failed to persist asset: %w", err)
	}

	o.generatePreview(asset, storedAbs)

	return asset, nil
}

// generatePreview renders the single compact JPEG that makes the asset
// immediately usable before the full matrix exists. Failure is soft: the
// asset is simply returned without a preview.
func (o *IngestionOrchestrator) generatePreview(asset *models.Asset, storedAbs string) {
	relPath := fmt.Sprintf("%s_%s.jpg", asset.ID, PreviewBreakpoint)
	result, err := o.processor.RenderDerivative(storedAbs, relPath, "jpg", o.settings.PreviewWidth, o.settings.QualityFor("jpg"))
	if err != nil {
		log.Printf("ingest: preview generation failed for asset %s: %v", asset.ID, err)
		return
	}

	variant := &models.Variant{
		AssetID:      asset.ID,
		Breakpoint:   PreviewBreakpoint,
		Format:       "jpg",
		RelativePath: result.RelativePath,
		Width:        result.Width,
		Height:       result.Height,
		SizeBytes:    result.SizeBytes,
	}
	if err := o.variants.Upsert(variant); err != nil {
		log.Printf("ingest: failed to record preview variant for asset %s: %v", asset.ID, err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
