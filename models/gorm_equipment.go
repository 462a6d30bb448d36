package models

// Camera represents a deduplicated camera body in the equipment catalog.
// The composite unique index on (brand, model) backs the insert-or-get
// resolution in services.EquipmentResolver.
type Camera struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Brand     string `gorm:"not null;uniqueIndex:idx_cameras_brand_model" json:"brand"`
	Model     string `gorm:"not null;uniqueIndex:idx_cameras_brand_model" json:"model"`
	CreatedAt int64  `gorm:"not null" json:"created_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Camera) TableName() string {
	return "cameras"
}

// Lens represents a deduplicated lens in the equipment catalog.
type Lens struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Brand     string `gorm:"not null;uniqueIndex:idx_lenses_brand_model" json:"brand"`
	Model     string `gorm:"not null;uniqueIndex:idx_lenses_brand_model" json:"model"`
	CreatedAt int64  `gorm:"not null" json:"created_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Lens) TableName() string {
	return "lenses"
}
