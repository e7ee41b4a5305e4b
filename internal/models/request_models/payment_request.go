package request_models

type CreatePaymentRequest struct {
	PlanCode string `json:"plan_code" binding:"required"`
}

// PaymentNotification is the untrusted inbound webhook payload. The provider
// delivers several shapes; only the payment id is ever read from it, with the
// nested data.id preferred over the flat id.
type PaymentNotification struct {
	Action string `json:"action"`
	ID     string `json:"id"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// PaymentID returns the payment identifier carried by the notification, or ""
// when the payload has none.
func (n PaymentNotification) PaymentID() string {
	if n.Data.ID != "" {
		return n.Data.ID
	}
	return n.ID
}
