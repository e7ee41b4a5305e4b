package services

import (
	"context"
	"log"
	"time"

	"taskly/internal/models/db_models"
	"taskly/internal/models/request_models"
	"taskly/internal/models/response_models"
	"taskly/internal/repositories"
	"taskly/pkg/utils"
)

// Plan tier that grants a 3-year entitlement; every other plan grants 1 year.
const longTermPlanName = "Enterprise 36 Meses"

type ReconcileOutcome int

const (
	ReconcileIgnored   ReconcileOutcome = iota // no-op event: wrong shape, non-approved, bad metadata
	ReconcileDuplicate                         // payment id already applied to the entitlement
	ReconcileApplied                           // entitlement upgraded and persisted
	ReconcileFailed                            // provider or storage failure, silenced at the boundary
)

func (o ReconcileOutcome) String() string {
	switch o {
	case ReconcileDuplicate:
		return "duplicate"
	case ReconcileApplied:
		return "applied"
	case ReconcileFailed:
		return "failed"
	default:
		return "ignored"
	}
}

type EntitlementServiceInterface interface {
	// Reconcile converts an inbound payment notification into an idempotent
	// entitlement upgrade. It never returns an error: every branch is an
	// acknowledged outcome, because the provider retries anything that is not
	// answered with a success status.
	Reconcile(ctx context.Context, notification request_models.PaymentNotification, fallbackID string) ReconcileOutcome
	IsPremium(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*response_models.EntitlementResponse, error)
	ListAll(ctx context.Context, page, pageSize int) ([]response_models.EntitlementResponse, error)
}

type EntitlementService struct {
	entitlementRepo repositories.EntitlementRepository
	provider        ProviderClient
	mail            IMailService
	now             func() time.Time
}

func NewEntitlementService(
	entitlementRepo repositories.EntitlementRepository,
	provider ProviderClient,
	mail IMailService,
) EntitlementServiceInterface {
	return &EntitlementService{
		entitlementRepo: entitlementRepo,
		provider:        provider,
		mail:            mail,
		now:             time.Now,
	}
}

func (s *EntitlementService) Reconcile(ctx context.Context, notification request_models.PaymentNotification, fallbackID string) ReconcileOutcome {
	paymentID := notification.PaymentID()
	if paymentID == "" {
		paymentID = fallbackID
	}
	if paymentID == "" {
		// Providers probe the endpoint with empty payloads; not an error.
		return ReconcileIgnored
	}

	// The notification body is untrusted; only the provider's own record of
	// the payment decides anything.
	record, err := s.provider.GetPayment(ctx, paymentID)
	if err != nil {
		// The provider redelivers on its own schedule. Answering with an
		// error here would only trigger a retry storm, so log and move on.
		log.Printf("webhook: fetch payment %s: %v", paymentID, err)
		return ReconcileFailed
	}

	if record.Status != PaymentStatusApproved {
		return ReconcileIgnored
	}

	email := record.Metadata.Email
	plano := record.Metadata.Plano
	if email == "" || plano == "" {
		// A retry cannot fix a record missing its metadata.
		log.Printf("webhook: payment %s approved but metadata incomplete (email=%q plano=%q)", record.ID, email, plano)
		return ReconcileIgnored
	}

	existing, err := s.entitlementRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("webhook: load entitlement for %s: %v", email, err)
		return ReconcileFailed
	}
	if existing != nil && existing.PaymentID == record.ID {
		return ReconcileDuplicate
	}

	now := s.now()
	ent := db_models.UserEntitlement{
		Email:          email,
		Plano:          plano,
		Status:         db_models.EntitlementPremium,
		PaymentID:      record.ID,
		DataAssinatura: now.Unix(),
		DataExpiracao:  expirationFor(plano, now).Unix(),
		UpdatedAt:      now.Unix(),
	}
	applied, err := s.entitlementRepo.ApplyPayment(ctx, ent)
	if err != nil {
		log.Printf("webhook: persist entitlement for %s: %v", email, err)
		return ReconcileFailed
	}
	if !applied {
		// A concurrent delivery of the same payment won the write.
		return ReconcileDuplicate
	}

	if s.mail != nil {
		go s.sendConfirmation(email, plano, ent.DataExpiracao)
	}

	return ReconcileApplied
}

// expirationFor is a pure function of the plan name and the activation time.
func expirationFor(plano string, from time.Time) time.Time {
	if plano == longTermPlanName {
		return from.AddDate(3, 0, 0)
	}
	return from.AddDate(1, 0, 0)
}

func (s *EntitlementService) sendConfirmation(email, plano string, expiresAt int64) {
	if err := s.mail.SendSubscriptionConfirmation(email, plano, utils.FromUnixSecondsBR(expiresAt)); err != nil {
		// The entitlement is already persisted; the email is advisory.
		log.Printf("webhook: confirmation email to %s: %v", email, err)
	}
}

func (s *EntitlementService) IsPremium(ctx context.Context, email string) (bool, error) {
	ent, err := s.entitlementRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, utils.ErrDatabaseError
	}
	return ent.Valid(s.now().Unix()), nil
}

func (s *EntitlementService) GetByEmail(ctx context.Context, email string) (*response_models.EntitlementResponse, error) {
	ent, err := s.entitlementRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if ent == nil {
		return &response_models.EntitlementResponse{
			Email:  email,
			Status: string(db_models.EntitlementFree),
		}, nil
	}
	resp := toEntitlementResponse(*ent)
	return &resp, nil
}

func (s *EntitlementService) ListAll(ctx context.Context, page, pageSize int) ([]response_models.EntitlementResponse, error) {
	ents, err := s.entitlementRepo.ListAll(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	result := make([]response_models.EntitlementResponse, 0, len(ents))
	for _, ent := range ents {
		result = append(result, toEntitlementResponse(ent))
	}
	return result, nil
}

func toEntitlementResponse(ent db_models.UserEntitlement) response_models.EntitlementResponse {
	return response_models.EntitlementResponse{
		Email:          ent.Email,
		Plano:          ent.Plano,
		Status:         string(ent.Status),
		PaymentID:      ent.PaymentID,
		DataAssinatura: ent.DataAssinatura,
		DataExpiracao:  ent.DataExpiracao,
	}
}
