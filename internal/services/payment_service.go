package services

import (
	"context"
	"fmt"
	"log"

	"taskly/internal/models/response_models"
	"taskly/internal/repositories"
	"taskly/pkg/utils"
)

type PaymentService interface {
	CreateCheckoutForPlan(ctx context.Context, email, planCode string) (*response_models.CreateCheckoutResponse, error)
}

type paymentService struct {
	planRepo     repositories.IPlanRepository
	provider     ProviderClient
	providerName string
}

func NewPaymentService(planRepo repositories.IPlanRepository, provider ProviderClient) PaymentService {
	return &paymentService{
		planRepo:     planRepo,
		provider:     provider,
		providerName: "mercadopago",
	}
}

func (p *paymentService) CreateCheckoutForPlan(ctx context.Context, email, planCode string) (*response_models.CreateCheckoutResponse, error) {
	plan, err := p.planRepo.FindActiveByCode(ctx, planCode)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	if plan.PriceMinor <= 0 {
		return nil, fmt.Errorf("plan %s is not billable (amount=%d)", planCode, plan.PriceMinor)
	}

	session, err := p.provider.CreateCheckout(ctx, CheckoutSpec{
		PlanCode:   plan.Code,
		PlanName:   plan.Name,
		PriceMinor: plan.PriceMinor,
		Currency:   plan.Currency,
		Email:      email,
	})
	if err != nil {
		log.Printf("checkout: create preference for %s (%s): %v", email, planCode, err)
		return nil, err
	}

	return &response_models.CreateCheckoutResponse{
		PreferenceID: session.PreferenceID,
		PaymentURL:   session.PaymentURL,
		ProviderName: p.providerName,
	}, nil
}
