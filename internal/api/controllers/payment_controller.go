package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskly/internal/models/request_models"
	"taskly/internal/services"
	"taskly/pkg/utils"
)

type PaymentController struct {
	paymentService     services.PaymentService
	entitlementService services.EntitlementServiceInterface
}

func NewPaymentController(paymentService services.PaymentService, entitlementService services.EntitlementServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService:     paymentService,
		entitlementService: entitlementService,
	}
}

// CreateCheckout godoc
// @Summary Create a checkout for a subscription plan
// @Description Create a MercadoPago checkout preference and return the redirect URL
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentRequest true "Create Payment Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/create-checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	var request request_models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	email := c.GetString("email")
	if email == "" {
		utils.RespondError(c, http.StatusUnauthorized, "email claim missing from token")
		return
	}

	checkout, err := p.paymentService.CreateCheckoutForPlan(c.Request.Context(), email, request.PlanCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout created successfully")
}

// HandleWebhook godoc
// @Summary Payment provider webhook
// @Description Receives asynchronous payment notifications and applies entitlement upgrades
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /payments/webhook [post]
//
// Every reachable exit path answers 200: the provider cannot distinguish
// "processed", "ignored" and "errored", and anything but a success status
// makes it redeliver the notification.
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("webhook: recovered from panic: %v", r)
			c.JSON(http.StatusOK, gin.H{"received": true})
		}
	}()

	// Provider validation pings and probes arrive with other verbs; they are
	// acknowledged without touching the provider API.
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var notification request_models.PaymentNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		// Body shapes vary across notification topics; an unparsable body
		// still leaves the query-param id fallback.
		notification = request_models.PaymentNotification{}
	}

	outcome := p.entitlementService.Reconcile(c.Request.Context(), notification, c.Query("id"))
	log.Printf("webhook: action=%q outcome=%s", notification.Action, outcome)

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// GetMyEntitlement godoc
// @Summary Get the current user's entitlement
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/entitlement [get]
func (p *PaymentController) GetMyEntitlement(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		utils.RespondError(c, http.StatusUnauthorized, "email claim missing from token")
		return
	}

	ent, err := p.entitlementService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, ent, "Entitlement fetched successfully")
}
