package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fabiodalez-dev/photoCMS-sub001/models"
)

// EquipmentRepository handles database operations for the camera/lens
// catalog
type EquipmentRepository struct {
	DB *gorm.DB
}

// NewEquipmentRepository creates a new instance of EquipmentRepository
func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{DB: db}
}

// FindCamera looks up an exact normalized (brand, model) pair
func (r *EquipmentRepository) FindCamera(brand, model string) (*models.Camera, error) {
	var camera models.Camera
	err := r.DB.Where("brand = ? AND model = ?", brand, model).First(&camera).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find camera %s %s: %w", brand, model, err)
	}
	return &camera, nil
}

// ListCamerasByBrand returns all catalog cameras of one brand, used for the
// same-brand fuzzy model match
func (r *EquipmentRepository) ListCamerasByBrand(brand string) ([]models.Camera, error) {
	var cameras []models.Camera
	if err := r.DB.Where("brand = ?", brand).Find(&cameras).Error; err != nil {
		return nil, fmt.Errorf("failed to list cameras for brand %s: %w", brand, err)
	}
	return cameras, nil
}

// GetOrCreateCamera performs an insert-or-get-existing against the unique
// (brand, model) index. The insert silently does nothing when another
// writer got there first; the follow-up select returns whichever row won.
func (r *EquipmentRepository) GetOrCreateCamera(brand, model string) (*models.Camera, error) {
	camera := models.Camera{Brand: brand, Model: model, CreatedAt: time.Now().Unix()}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "brand"}, {Name: "model"}},
		DoNothing: true,
	}).Create(&camera).Error
	if err != nil {
		return nil, fmt.Errorf("failed to insert camera %s %s: %w", brand, model, err)
	}
	return r.FindCamera(brand, model)
}

// FindLens looks up an exact normalized (brand, model) pair
func (r *EquipmentRepository) FindLens(brand, model string) (*models.Lens, error) {
	var lens models.Lens
	err := r.DB.Where("brand = ? AND model = ?", brand, model).First(&lens).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find lens %s %s: %w", brand, model, err)
	}
	return &lens, nil
}

// GetOrCreateLens performs an insert-or-get-existing against the unique
// (brand, model) index
func (r *EquipmentRepository) GetOrCreateLens(brand, model string) (*models.Lens, error) {
	lens := models.Lens{Brand: brand, Model: model, CreatedAt: time.Now().Unix()}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "brand"}, {Name: "model"}},
		DoNothing: true,
	}).Create(&lens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to insert lens %s %s: %w", brand, model, err)
	}
	return r.FindLens(brand, model)
}
