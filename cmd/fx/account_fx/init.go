package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"taskly/internal/api/controllers"
	"taskly/internal/repositories"
	"taskly/internal/services"
)

var Module = fx.Provide(
	provideAccountRepository,
	provideAccountService,
	provideAccountController,
)

func provideAccountRepository(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	entitlementSvc services.EntitlementServiceInterface,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, entitlementSvc)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
