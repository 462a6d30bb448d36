package models

// Album represents an album of assets in the database using GORM.
// The media core only consumes the sensitivity flag; listing, sorting and
// presentation concerns live outside this module.
type Album struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null;unique" json:"name"`
	Slug        string  `gorm:"not null;unique" json:"slug"`
	Description *string `gorm:"" json:"description,omitempty"` // Nullable
	IsSensitive bool    `gorm:"not null;default:false" json:"is_sensitive"`
	CreatedAt   int64   `gorm:"not null" json:"created_at"` // Unix timestamp
	UpdatedAt   int64   `gorm:"not null" json:"updated_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Album) TableName() string {
	return "albums"
}
