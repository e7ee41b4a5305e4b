package payment_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"taskly/internal/api/controllers"
	"taskly/internal/repositories"
	"taskly/internal/services"
)

var Module = fx.Provide(
	provideProviderClient,
	provideEntitlementRepository,
	provideEntitlementService,
	providePaymentService,
	providePaymentController,
)

func provideProviderClient() services.ProviderClient {
	appBaseURL := os.Getenv("APP_BASE_URL")
	if appBaseURL == "" {
		appBaseURL = "https://app.taskly.com.br"
	}

	client, err := services.NewMercadoPagoClient(services.MercadoPagoConfig{
		AccessToken: os.Getenv("MP_ACCESS_TOKEN"),
		AppBaseURL:  appBaseURL,
	})
	if err != nil {
		log.Printf("Error initializing MercadoPago client: %v", err)
	}

	return client
}

func provideEntitlementRepository(db *gorm.DB) repositories.EntitlementRepository {
	return repositories.NewEntitlementRepository(db)
}

func provideEntitlementService(
	repo repositories.EntitlementRepository,
	provider services.ProviderClient,
	mail services.IMailService,
) services.EntitlementServiceInterface {
	return services.NewEntitlementService(repo, provider, mail)
}

func providePaymentService(planRepo repositories.IPlanRepository, provider services.ProviderClient) services.PaymentService {
	return services.NewPaymentService(planRepo, provider)
}

func providePaymentController(
	paymentService services.PaymentService,
	entitlementService services.EntitlementServiceInterface,
) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService, entitlementService)
}
