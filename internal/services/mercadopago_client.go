package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const PaymentStatusApproved = "approved"

// PaymentMetadata is the slice of provider metadata this service relies on.
// Both fields are attached to the checkout preference at creation time and
// echoed back on the payment record.
type PaymentMetadata struct {
	Email string
	Plano string
}

// PaymentRecord is the authoritative payment state fetched from the provider.
type PaymentRecord struct {
	ID       string
	Status   string
	Metadata PaymentMetadata
}

type CheckoutSpec struct {
	PlanCode   string
	PlanName   string
	PriceMinor int64
	Currency   string
	Email      string
}

type CheckoutSession struct {
	PreferenceID string
	PaymentURL   string
}

// ProviderClient abstracts the payment provider so the reconciler and the
// checkout flow can be exercised in tests without network access.
type ProviderClient interface {
	GetPayment(ctx context.Context, id string) (*PaymentRecord, error)
	CreateCheckout(ctx context.Context, spec CheckoutSpec) (*CheckoutSession, error)
}

type MercadoPagoConfig struct {
	AccessToken string
	AppBaseURL  string // back URLs after checkout
}

type mercadoPagoClient struct {
	payments    payment.Client
	preferences preference.Client
	cfg         MercadoPagoConfig
}

func NewMercadoPagoClient(cfg MercadoPagoConfig) (ProviderClient, error) {
	if cfg.AccessToken == "" {
		return nil, errors.New("missing MercadoPago access token")
	}
	sdkCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &mercadoPagoClient{
		payments:    payment.NewClient(sdkCfg),
		preferences: preference.NewClient(sdkCfg),
		cfg:         cfg,
	}, nil
}

func (m *mercadoPagoClient) GetPayment(ctx context.Context, id string) (*PaymentRecord, error) {
	numericID, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id %q: %w", id, err)
	}

	p, err := m.payments.Get(ctx, numericID)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment %d: %w", numericID, err)
	}

	return &PaymentRecord{
		ID:       strconv.Itoa(p.ID),
		Status:   p.Status,
		Metadata: metadataFrom(p.Metadata),
	}, nil
}

func (m *mercadoPagoClient) CreateCheckout(ctx context.Context, spec CheckoutSpec) (*CheckoutSession, error) {
	base := strings.TrimRight(m.cfg.AppBaseURL, "/")

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      spec.PlanName,
				Quantity:   1,
				UnitPrice:  float64(spec.PriceMinor) / 100,
				CurrencyID: spec.Currency,
			},
		},
		Payer: &preference.PayerRequest{Email: spec.Email},
		// Echoed back on the payment record; the webhook reconciler reads
		// these two keys and nothing else.
		Metadata: map[string]any{
			"email": spec.Email,
			"plano": spec.PlanName,
		},
		ExternalReference: spec.PlanCode,
		BackURLs: &preference.BackURLsRequest{
			Success: base + "/dashboard?checkout=success",
			Pending: base + "/dashboard?checkout=pending",
			Failure: base + "/pricing?checkout=failure",
		},
		AutoReturn: "approved",
	}

	resp, err := m.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago create preference: %w", err)
	}

	return &CheckoutSession{
		PreferenceID: resp.ID,
		PaymentURL:   resp.InitPoint,
	}, nil
}

func metadataFrom(raw map[string]any) PaymentMetadata {
	md := PaymentMetadata{}
	if v, ok := raw["email"].(string); ok {
		md.Email = v
	}
	if v, ok := raw["plano"].(string); ok {
		md.Plano = v
	}
	return md
}
