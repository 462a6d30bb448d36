package models

// Setting is a row in the key/value settings store. Image pipeline settings
// are JSON-encoded maps; the maintenance marker is a plain YYYY-MM-DD string.
type Setting struct {
	Key       string `gorm:"primaryKey" json:"key"`
	Value     string `gorm:"not null" json:"value"`
	UpdatedAt int64  `gorm:"not null" json:"updated_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Setting) TableName() string {
	return "settings"
}
