package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskly/internal/models/request_models"
	"taskly/internal/services"
	"taskly/pkg/utils"
)

type AdminController struct {
	accountService     services.AccountServiceInterface
	entitlementService services.EntitlementServiceInterface
	planService        services.PlanServiceInterface
}

func NewAdminController(
	accountService services.AccountServiceInterface,
	entitlementService services.EntitlementServiceInterface,
	planService services.PlanServiceInterface,
) *AdminController {
	return &AdminController{
		accountService:     accountService,
		entitlementService: entitlementService,
		planService:        planService,
	}
}

// ListAccounts godoc
// @Summary List all accounts
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/accounts [get]
func (a *AdminController) ListAccounts(c *gin.Context) {
	page, pageSize, ok := adminPagination(c)
	if !ok {
		return
	}

	accounts, err := a.accountService.GetAllAccounts(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accounts, "Accounts fetched successfully")
}

// ListEntitlements godoc
// @Summary List all user entitlements
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/entitlements [get]
func (a *AdminController) ListEntitlements(c *gin.Context) {
	page, pageSize, ok := adminPagination(c)
	if !ok {
		return
	}

	entitlements, err := a.entitlementService.ListAll(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entitlements, "Entitlements fetched successfully")
}

// ListAllPlans godoc
// @Summary List all plans including inactive ones
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans [get]
func (a *AdminController) ListAllPlans(c *gin.Context) {
	plans, err := a.planService.ListAllPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// UpsertPlan godoc
// @Summary Create or update a plan
// @Description Upsert pricing config keyed by plan code
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.UpsertPlanRequest true "Plan payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans [post]
func (a *AdminController) UpsertPlan(c *gin.Context) {
	var req request_models.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := a.planService.UpsertPlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan saved successfully")
}

func adminPagination(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}

	return page, pageSize, true
}
