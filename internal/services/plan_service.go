package services

import (
	"context"

	"gorm.io/datatypes"

	"taskly/internal/models/db_models"
	"taskly/internal/models/request_models"
	"taskly/internal/models/response_models"
	"taskly/internal/repositories"
	"taskly/pkg/utils"
)

type PlanServiceInterface interface {
	ListActivePlans(ctx context.Context) ([]response_models.PlanResponse, error)
	ListAllPlans(ctx context.Context) ([]response_models.PlanResponse, error)
	UpsertPlan(ctx context.Context, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error)
}

type PlanService struct {
	planRepo repositories.IPlanRepository
}

func NewPlanService(planRepo repositories.IPlanRepository) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
	}
}

func (p *PlanService) ListActivePlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.ListActive(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toPlanResponses(plans), nil
}

func (p *PlanService) ListAllPlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toPlanResponses(plans), nil
}

func (p *PlanService) UpsertPlan(ctx context.Context, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error) {
	plan := &db_models.Plan{
		Code:       req.Code,
		Name:       req.Name,
		PriceMinor: req.PriceMinor,
		Currency:   req.Currency,
		IsActive:   true,
	}
	if plan.Currency == "" {
		plan.Currency = "BRL"
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if len(req.Features) > 0 {
		plan.Features = datatypes.JSON(req.Features)
	}

	if err := p.planRepo.Upsert(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toPlanResponse(*plan)
	return &resp, nil
}

func toPlanResponse(plan db_models.Plan) response_models.PlanResponse {
	return response_models.PlanResponse{
		ID:         plan.ID.String(),
		Code:       plan.Code,
		Name:       plan.Name,
		PriceMinor: plan.PriceMinor,
		Currency:   plan.Currency,
		IsActive:   plan.IsActive,
	}
}

func toPlanResponses(plans []db_models.Plan) []response_models.PlanResponse {
	result := make([]response_models.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		result = append(result, toPlanResponse(plan))
	}
	return result
}
