package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fabiodalez-dev/photoCMS-sub001/models"
)

// VariantRepository handles database operations for derivative variant rows
type VariantRepository struct {
	DB *gorm.DB
}

// NewVariantRepository creates a new instance of VariantRepository
func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{DB: db}
}

// Upsert writes a variant row keyed by (asset_id, breakpoint, format).
// Regeneration rewrites the same key; rows are never mutated otherwise.
func (r *VariantRepository) Upsert(variant *models.Variant) error {
	if variant.CreatedAt == 0 {
		variant.CreatedAt = time.Now().Unix()
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "asset_id"}, {Name: "breakpoint"}, {Name: "format"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"relative_path", "width", "height", "size_bytes", "created_at",
		}),
	}).Create(variant).Error
	if err != nil {
		return fmt.Errorf("failed to upsert variant %s/%s/%s: %w",
			variant.AssetID, variant.Breakpoint, variant.Format, err)
	}
	return nil
}

// ListByAsset retrieves all variant rows for one asset
func (r *VariantRepository) ListByAsset(assetID string) ([]models.Variant, error) {
	var variants []models.Variant
	if err := r.DB.Where("asset_id = ?", assetID).Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to list variants for asset %s: %w", assetID, err)
	}
	return variants, nil
}

// Exists reports whether a row exists for one derivative identity
func (r *VariantRepository) Exists(assetID, breakpoint, format string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Variant{}).
		Where("asset_id = ? AND breakpoint = ? AND format = ?", assetID, breakpoint, format).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check variant %s/%s/%s: %w", assetID, breakpoint, format, err)
	}
	return count > 0, nil
}
