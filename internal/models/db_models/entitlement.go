package db_models

type EntitlementStatus string

const (
	EntitlementFree    EntitlementStatus = "free"
	EntitlementPremium EntitlementStatus = "premium"
)

// UserEntitlement records which plan a user has paid for and until when.
// Keyed by email, not a generated id: the payment provider only knows the
// buyer's email, and webhook deliveries must land on the same row every time.
type UserEntitlement struct {
	Email  string            `gorm:"primaryKey"`
	Plano  string            // plan display name as carried in payment metadata
	Status EntitlementStatus `gorm:"default:free"`

	// Last payment id applied to this row. Doubles as the idempotency token:
	// a webhook redelivery for the same payment must not mutate the row again.
	PaymentID string `gorm:"column:payment_id;index"`

	DataAssinatura int64 // activation, unix seconds
	DataExpiracao  int64 // expiry, unix seconds
	UpdatedAt      int64 `gorm:"autoUpdateTime"`
}

// Valid reports whether the entitlement grants premium access at time now.
func (e *UserEntitlement) Valid(now int64) bool {
	return e != nil && e.Status == EntitlementPremium && e.DataExpiracao > now
}
