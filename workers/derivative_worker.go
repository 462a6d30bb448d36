package workers

import (
	"fmt"
	"log"

	"github.com/facette/natsort"

	"github.com/fabiodalez-dev/photoCMS-sub001/config"
	"github.com/fabiodalez-dev/photoCMS-sub001/media"
	"github.com/fabiodalez-dev/photoCMS-sub001/models"
	"github.com/fabiodalez-dev/photoCMS-sub001/repository"
)

// GenerationStats summarizes one pass over an asset's derivative matrix.
type GenerationStats struct {
	Generated int
	Skipped   int
	Failed    int
}

func (s GenerationStats) String() string {
	return fmt.Sprintf("generated=%d skipped=%d failed=%d", s.Generated, s.Skipped, s.Failed)
}

// DerivativeGenerator renders the enabled format x breakpoint matrix for
// stored originals. Each cell fails independently; one broken encode never
// aborts the rest of the matrix.
type DerivativeGenerator struct {
	store     media.Store
	processor *media.Processor
	assets    repository.AssetRepositoryInterface
	variants  repository.VariantRepositoryInterface
	settings  config.ImageSettings
}

func NewDerivativeGenerator(
	store media.Store,
	processor *media.Processor,
	assets repository.AssetRepositoryInterface,
	variants repository.VariantRepositoryInterface,
	settings config.ImageSettings,
) *DerivativeGenerator {
	return &DerivativeGenerator{
		store:     store,
		processor: processor,
		assets:    assets,
		variants:  variants,
		settings:  settings,
	}
}

// MatrixSize reports the number of variants a fully processed asset carries,
// excluding the ingestion preview and the sensitive blur.
func (g *DerivativeGenerator) MatrixSize() int {
	return len(g.settings.EnabledFormats()) * len(g.settings.Breakpoints)
}

// GenerateForAsset renders every enabled format at every breakpoint for one
// asset. With missingOnly set, cells that already have both a recorded row
// and a file on disk are skipped, which makes repeated runs idempotent.
func (g *DerivativeGenerator) GenerateForAsset(assetID string, missingOnly bool) (GenerationStats, error) {
	var stats GenerationStats

	asset, err := g.assets.GetByID(assetID)
	if err != nil {
		return stats, fmt.Errorf("derivatives: failed to load asset %s: %w", assetID, err)
	}

	srcPath, err := g.store.FullPath(media.AssetTypeOriginal, asset.StoredPath)
	if err != nil {
		return stats, fmt.Errorf("derivatives: failed to resolve original for asset %s: %w", assetID, err)
	}

	formats := g.settings.EnabledFormats()
	natsort.Sort(formats)

	breakpoints := make([]string, 0, len(g.settings.Breakpoints))
	for name := range g.settings.Breakpoints {
		breakpoints = append(breakpoints, name)
	}
	natsort.Sort(breakpoints)

	for _, format := range formats {
		quality := g.settings.QualityFor(format)
		for _, breakpoint := range breakpoints {
			if missingOnly {
				done, skipErr := g.cellComplete(assetID, breakpoint, format)
				if skipErr != nil {
					log.Printf("derivatives: failed to check %s/%s for asset %s: %v", breakpoint, format, assetID, skipErr)
				} else if done {
					stats.Skipped++
					continue
				}
			}

			relPath := fmt.Sprintf("%s_%s.%s", assetID, breakpoint, format)
			result, renderErr := g.processor.RenderDerivative(srcPath, relPath, format, g.settings.Breakpoints[breakpoint], quality)
			if renderErr != nil {
				log.Printf("derivatives: failed to render %s/%s for asset %s: %v", breakpoint, format, assetID, renderErr)
				stats.Failed++
				continue
			}

			if upsertErr := g.recordVariant(assetID, breakpoint, format, result); upsertErr != nil {
				log.Printf("derivatives: failed to record %s/%s for asset %s: %v", breakpoint, format, assetID, upsertErr)
				stats.Failed++
				continue
			}
			stats.Generated++
		}
	}

	return stats, nil
}

// GenerateBlurVariant renders the heavily blurred placeholder used for
// assets in sensitive albums. It is idempotent via the variant upsert.
func (g *DerivativeGenerator) GenerateBlurVariant(assetID string) error {
	asset, err := g.assets.GetByID(assetID)
	if err != nil {
		return fmt.Errorf("derivatives: failed to load asset %s: %w", assetID, err)
	}

	srcPath, err := g.store.FullPath(media.AssetTypeOriginal, asset.StoredPath)
	if err != nil {
		return fmt.Errorf("derivatives: failed to resolve original for asset %s: %w", assetID, err)
	}

	relPath := fmt.Sprintf("%s_%s.jpg", assetID, models.BlurBreakpoint)
	result, err := g.processor.RenderBlur(srcPath, relPath)
	if err != nil {
		return fmt.Errorf("derivatives: failed to render blur for asset %s: %w", assetID, err)
	}

	return g.recordVariant(assetID, models.BlurBreakpoint, "jpg", result)
}

// cellComplete reports whether a matrix cell has both its database row and
// its file on disk. A row without a file is treated as missing so the next
// run can repair it.
func (g *DerivativeGenerator) cellComplete(assetID, breakpoint, format string) (bool, error) {
	exists, err := g.variants.Exists(assetID, breakpoint, format)
	if err != nil || !exists {
		return false, err
	}
	relPath := fmt.Sprintf("%s_%s.%s", assetID, breakpoint, format)
	return g.store.Exists(media.AssetTypeDerivative, relPath), nil
}

func (g *DerivativeGenerator) recordVariant(assetID, breakpoint, format string, result *media.RenderResult) error {
	return g.variants.Upsert(&models.Variant{
		AssetID:      assetID,
		Breakpoint:   breakpoint,
		Format:       format,
		RelativePath: result.RelativePath,
		Width:        result.Width,
		Height:       result.Height,
		SizeBytes:    result.SizeBytes,
	})
}
