package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskly/internal/models/db_models"
)

type EntitlementRepository interface {
	GetByEmail(ctx context.Context, email string) (*db_models.UserEntitlement, error)
	// ApplyPayment merge-writes the entitlement fields for ent.Email in a
	// single conditional upsert. It returns false when the stored row already
	// carries ent.PaymentID, i.e. the payment was applied before.
	ApplyPayment(ctx context.Context, ent db_models.UserEntitlement) (bool, error)
	ListAll(ctx context.Context, page, pageSize int) ([]db_models.UserEntitlement, error)
}

type entitlementRepository struct {
	db *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepository{
		db: db,
	}
}

func (r *entitlementRepository) GetByEmail(ctx context.Context, email string) (*db_models.UserEntitlement, error) {
	var ent db_models.UserEntitlement
	err := r.db.WithContext(ctx).First(&ent, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ent, nil
}

// ApplyPayment is a single INSERT ... ON CONFLICT (email) DO UPDATE limited to
// the entitlement columns, guarded so a row already holding the same
// payment_id is left untouched. The guard closes the window between two
// concurrent webhook deliveries for the same payment: whichever lands second
// affects zero rows instead of re-applying the upgrade.
func (r *entitlementRepository) ApplyPayment(ctx context.Context, ent db_models.UserEntitlement) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"plano":           ent.Plano,
			"status":          ent.Status,
			"payment_id":      ent.PaymentID,
			"data_assinatura": ent.DataAssinatura,
			"data_expiracao":  ent.DataExpiracao,
			"updated_at":      ent.UpdatedAt,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "user_entitlements.payment_id IS DISTINCT FROM excluded.payment_id"},
		}},
	}).Create(&ent)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *entitlementRepository) ListAll(ctx context.Context, page, pageSize int) ([]db_models.UserEntitlement, error) {
	var ents []db_models.UserEntitlement
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&ents).Error
	return ents, err
}
