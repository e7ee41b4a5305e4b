package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskly/internal/models/request_models"
	"taskly/internal/models/response_models"
	"taskly/internal/services"
)

type recordingEntitlementService struct {
	calls       []reconcileCall
	outcome     services.ReconcileOutcome
	entitlement *response_models.EntitlementResponse
	err         error
}

type reconcileCall struct {
	notification request_models.PaymentNotification
	fallbackID   string
}

func (r *recordingEntitlementService) Reconcile(ctx context.Context, notification request_models.PaymentNotification, fallbackID string) services.ReconcileOutcome {
	r.calls = append(r.calls, reconcileCall{notification: notification, fallbackID: fallbackID})
	return r.outcome
}

func (r *recordingEntitlementService) IsPremium(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *recordingEntitlementService) GetByEmail(ctx context.Context, email string) (*response_models.EntitlementResponse, error) {
	return r.entitlement, r.err
}

func (r *recordingEntitlementService) ListAll(ctx context.Context, page, pageSize int) ([]response_models.EntitlementResponse, error) {
	return nil, nil
}

type stubPaymentService struct {
	checkout *response_models.CreateCheckoutResponse
	err      error
}

func (s *stubPaymentService) CreateCheckoutForPlan(ctx context.Context, email, planCode string) (*response_models.CreateCheckoutResponse, error) {
	return s.checkout, s.err
}

func webhookRouter(entitlementSvc services.EntitlementServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewPaymentController(&stubPaymentService{}, entitlementSvc)
	r.Any("/payments/webhook", controller.HandleWebhook)
	return r
}

func TestWebhookPostDelivery(t *testing.T) {
	svc := &recordingEntitlementService{outcome: services.ReconcileApplied}
	router := webhookRouter(svc)

	body := `{"action":"payment.updated","data":{"id":"12345"}}`
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "12345", svc.calls[0].notification.PaymentID())
}

func TestWebhookWrongVerbIsAcknowledged(t *testing.T) {
	svc := &recordingEntitlementService{}
	router := webhookRouter(svc)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodHead} {
		req := httptest.NewRequest(method, "/payments/webhook", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "verb %s must still be acknowledged", method)
	}
	assert.Empty(t, svc.calls, "probes must not reach the reconciler")
}

func TestWebhookMalformedBodyFallsBackToQueryParam(t *testing.T) {
	svc := &recordingEntitlementService{outcome: services.ReconcileApplied}
	router := webhookRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook?id=999", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.calls, 1)
	assert.Empty(t, svc.calls[0].notification.PaymentID())
	assert.Equal(t, "999", svc.calls[0].fallbackID)
}

func TestWebhookInternalFailureStillAnswers200(t *testing.T) {
	svc := &recordingEntitlementService{outcome: services.ReconcileFailed}
	router := webhookRouter(svc)

	body := `{"action":"payment.updated","data":{"id":"12345"}}`
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestWebhookEmptyBody(t *testing.T) {
	svc := &recordingEntitlementService{outcome: services.ReconcileIgnored}
	router := webhookRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.calls, 1)
	assert.Empty(t, svc.calls[0].notification.PaymentID())
}

func TestCreateCheckoutRequiresEmailClaim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewPaymentController(&stubPaymentService{}, &recordingEntitlementService{})
	r.POST("/payments/create-checkout", controller.CreateCheckout)

	req := httptest.NewRequest(http.MethodPost, "/payments/create-checkout", strings.NewReader(`{"plan_code":"premium_anual"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCheckoutReturnsSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewPaymentController(&stubPaymentService{
		checkout: &response_models.CreateCheckoutResponse{
			PreferenceID: "pref-1",
			PaymentURL:   "https://mp.example/init",
			ProviderName: "mercadopago",
		},
	}, &recordingEntitlementService{})
	r.POST("/payments/create-checkout", func(c *gin.Context) {
		c.Set("email", "buyer@x.com")
		controller.CreateCheckout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/payments/create-checkout", strings.NewReader(`{"plan_code":"premium_anual"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pref-1")
}

func TestCreateCheckoutServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewPaymentController(&stubPaymentService{err: errors.New("provider down")}, &recordingEntitlementService{})
	r.POST("/payments/create-checkout", func(c *gin.Context) {
		c.Set("email", "buyer@x.com")
		controller.CreateCheckout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/payments/create-checkout", strings.NewReader(`{"plan_code":"premium_anual"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
