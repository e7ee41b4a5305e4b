package response_models

type EntitlementResponse struct {
	Email          string `json:"email"`
	Plano          string `json:"plano"`
	Status         string `json:"status"`
	PaymentID      string `json:"payment_id"`
	DataAssinatura int64  `json:"data_assinatura"`
	DataExpiracao  int64  `json:"data_expiracao"`
}

type PlanResponse struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Currency   string `json:"currency"`
	IsActive   bool   `json:"is_active"`
}
