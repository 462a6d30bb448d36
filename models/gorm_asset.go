package models

// Asset represents an uploaded source image in the database using GORM.
// It corresponds to the 'assets' table. Width/Height are rewritten after
// orientation normalization; rows are never deleted by the media core.
type Asset struct {
	ID         string `gorm:"primaryKey" json:"id"` // UUID assigned at ingestion
	AlbumID    uint   `gorm:"not null;index" json:"album_id"`
	Hash       string `gorm:"not null;index" json:"hash"` // sha256 of the original bytes
	StoredPath string `gorm:"not null" json:"stored_path"`
	MimeType   string `gorm:"not null" json:"mime_type"`
	Width      int    `gorm:"not null" json:"width"`
	Height     int    `gorm:"not null" json:"height"`

	// denormalized exposure fields for display without re-reading EXIF
	ISO          *int     `gorm:"" json:"iso,omitempty"`           // Nullable
	ShutterSpeed *string  `gorm:"" json:"shutter_speed,omitempty"` // Nullable, e.g., "1/125"
	Aperture     *float64 `gorm:"" json:"aperture,omitempty"`      // Nullable, F-number
	FocalLength  *float64 `gorm:"" json:"focal_length,omitempty"`  // Nullable, mm
	TakenAt      *int64   `gorm:"index" json:"taken_at,omitempty"` // Nullable, Unix timestamp
	Latitude     *float64 `gorm:"" json:"latitude,omitempty"`      // Nullable, decimal degrees
	Longitude    *float64 `gorm:"" json:"longitude,omitempty"`     // Nullable, decimal degrees

	CameraID *uint `gorm:"index" json:"camera_id,omitempty"` // Nullable catalog reference
	LensID   *uint `gorm:"index" json:"lens_id,omitempty"`   // Nullable catalog reference

	CreatedAt int64 `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt int64 `gorm:"not null" json:"updated_at"` // Unix timestamp

	// Relationships
	Variants []Variant `gorm:"foreignKey:AssetID;references:ID" json:"variants,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Asset) TableName() string {
	return "assets"
}
