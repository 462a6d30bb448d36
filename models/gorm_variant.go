package models

// BlurBreakpoint is the reserved breakpoint label for the single obfuscated
// preview derivative of sensitive-content assets.
const BlurBreakpoint = "blur"

// Variant represents one resized, re-encoded derivative of an asset in a
// specific (breakpoint, format) combination. Rows are uniquely keyed by
// (asset_id, breakpoint, format); regeneration rewrites the same key.
type Variant struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	AssetID      string `gorm:"not null;uniqueIndex:idx_variants_identity" json:"asset_id"`
	Breakpoint   string `gorm:"not null;uniqueIndex:idx_variants_identity" json:"breakpoint"`
	Format       string `gorm:"not null;uniqueIndex:idx_variants_identity" json:"format"`
	RelativePath string `gorm:"not null" json:"relative_path"`
	Width        int    `gorm:"not null" json:"width"`
	Height       int    `gorm:"not null" json:"height"`
	SizeBytes    int64  `gorm:"not null" json:"size_bytes"`
	CreatedAt    int64  `gorm:"not null" json:"created_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Variant) TableName() string {
	return "variants"
}
