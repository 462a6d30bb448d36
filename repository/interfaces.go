package repository

import (
	"github.com/fabiodalez-dev/photoCMS-sub001/models"
)

// AssetRepositoryInterface defines the methods for asset data operations
type AssetRepositoryInterface interface {
	Create(asset *models.Asset) error
	GetByID(id string) (*models.Asset, error)
	ListIDs() ([]string, error)
}

// EquipmentRepositoryInterface defines the insert-or-get-existing catalog
// operations. Both methods rely on the unique (brand, model) index rather
// than check-then-insert, so concurrent ingestion cannot create duplicates.
type EquipmentRepositoryInterface interface {
	FindCamera(brand, model string) (*models.Camera, error)
	ListCamerasByBrand(brand string) ([]models.Camera, error)
	GetOrCreateCamera(brand, model string) (*models.Camera, error)
	FindLens(brand, model string) (*models.Lens, error)
	GetOrCreateLens(brand, model string) (*models.Lens, error)
}

// VariantRepositoryInterface defines the methods for derivative variant rows
type VariantRepositoryInterface interface {
	Upsert(variant *models.Variant) error
	ListByAsset(assetID string) ([]models.Variant, error)
	Exists(assetID, breakpoint, format string) (bool, error)
}
