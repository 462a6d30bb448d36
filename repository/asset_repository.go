package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fabiodalez-dev/photoCMS-sub001/models"
)

// AssetRepository handles database operations for Asset entities
type AssetRepository struct {
	DB *gorm.DB
}

// NewAssetRepository creates a new instance of AssetRepository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{DB: db}
}

// Create persists a new asset row
func (r *AssetRepository) Create(asset *models.Asset) error {
	now := time.Now().Unix()
	if asset.CreatedAt == 0 {
		asset.CreatedAt = now
	}
	asset.UpdatedAt = now

	if err := r.DB.Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create asset %s: %w", asset.ID, err)
	}
	return nil
}

// GetByID retrieves full asset info by id
func (r *AssetRepository) GetByID(id string) (*models.Asset, error) {
	var asset models.Asset
	err := r.DB.Where("id = ?", id).First(&asset).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get asset %s: %w", id, err)
	}
	return &asset, nil
}

// ListIDs returns all asset ids
func (r *AssetRepository) ListIDs() ([]string, error) {
	var ids []string
	if err := r.DB.Model(&models.Asset{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset ids: %w", err)
	}
	return ids, nil
}
