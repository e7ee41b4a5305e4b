package db_models

import "gorm.io/datatypes"

type Plan struct {
	BaseModel
	Code       string `gorm:"uniqueIndex"` // e.g., "premium_anual", "enterprise_36"
	Name       string // display name, also stored on payments as "plano"
	PriceMinor int64  // 1990 = R$19,90
	Currency   string `gorm:"size:3"` // ISO 4217, "BRL"
	IsActive   bool   `gorm:"default:true"`

	// Feature flags, limits, etc.
	Features datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
