package response_models

type CreateCheckoutResponse struct {
	PreferenceID string `json:"preference_id"`
	PaymentURL   string `json:"payment_url"`
	ProviderName string `json:"provider_name"`
}
