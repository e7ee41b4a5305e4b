package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskly/internal/models/db_models"
)

type IPlanRepository interface {
	FindActiveByCode(ctx context.Context, code string) (*db_models.Plan, error)
	ListActive(ctx context.Context) ([]db_models.Plan, error)
	ListAll(ctx context.Context) ([]db_models.Plan, error)
	Upsert(ctx context.Context, plan *db_models.Plan) error
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &planRepository{
		db: db,
	}
}

func (p *planRepository) FindActiveByCode(ctx context.Context, code string) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := p.db.WithContext(ctx).
		Where("code = ? AND is_active = TRUE", code).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (p *planRepository) ListActive(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := p.db.WithContext(ctx).
		Where("is_active = TRUE").
		Order("price_minor ASC").
		Find(&plans).Error
	return plans, err
}

func (p *planRepository) ListAll(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := p.db.WithContext(ctx).Order("price_minor ASC").Find(&plans).Error
	return plans, err
}

// Upsert keyed by plan code so the admin console can re-submit pricing config
// without tracking row ids.
func (p *planRepository) Upsert(ctx context.Context, plan *db_models.Plan) error {
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":        plan.Name,
			"price_minor": plan.PriceMinor,
			"currency":    plan.Currency,
			"is_active":   plan.IsActive,
			"features":    plan.Features,
		}),
	}).Create(plan).Error
}
