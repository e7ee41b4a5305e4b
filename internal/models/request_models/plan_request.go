package request_models

import "encoding/json"

type UpsertPlanRequest struct {
	Code       string          `json:"code" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	PriceMinor int64           `json:"price_minor" binding:"required"`
	Currency   string          `json:"currency"`
	IsActive   *bool           `json:"is_active"`
	Features   json.RawMessage `json:"features"`
}
