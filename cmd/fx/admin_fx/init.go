package admin_fx

import (
	"go.uber.org/fx"

	"taskly/internal/api/controllers"
	"taskly/internal/services"
)

var Module = fx.Provide(provideAdminController)

func provideAdminController(
	accountService services.AccountServiceInterface,
	entitlementService services.EntitlementServiceInterface,
	planService services.PlanServiceInterface,
) *controllers.AdminController {
	return controllers.NewAdminController(accountService, entitlementService, planService)
}
