package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"taskly/cmd/fx/account_fx"
	"taskly/cmd/fx/admin_fx"
	"taskly/cmd/fx/db_fx"
	"taskly/cmd/fx/mail_fx"
	"taskly/cmd/fx/payment_fx"
	"taskly/cmd/fx/plan_fx"
	"taskly/cmd/fx/task_fx"
	"taskly/internal/api/controllers"
	"taskly/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading config from environment")
	}

	app := fx.New(
		db_fx.Module,
		mail_fx.Module,
		plan_fx.Module,
		payment_fx.Module,
		account_fx.Module,
		task_fx.Module,
		admin_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	taskController *controllers.TaskController,
	paymentController *controllers.PaymentController,
	planController *controllers.PlanController,
	adminController *controllers.AdminController,
) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, taskController, paymentController, planController, adminController)

	return r
}

func RegisterRoutes(
	r *gin.Engine,
	accountController *controllers.AccountController,
	taskController *controllers.TaskController,
	paymentController *controllers.PaymentController,
	planController *controllers.PlanController,
	adminController *controllers.AdminController,
) {
	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)

	r.GET("/plans", planController.ListPlans)

	// The webhook must answer every verb itself: the provider probes with GET
	// and delivers with POST, and both expect a 200.
	r.Any("/payments/webhook", paymentController.HandleWebhook)

	payments := r.Group("/payments", middleware.JWTAuthMiddleware())
	payments.POST("/create-checkout", paymentController.CreateCheckout)
	payments.GET("/entitlement", paymentController.GetMyEntitlement)

	tasks := r.Group("/tasks", middleware.JWTAuthMiddleware())
	tasks.POST("", taskController.CreateTask)
	tasks.GET("", taskController.ListMyTasks)
	tasks.GET("/shared-with-me", taskController.ListSharedWithMe)
	tasks.GET("/:taskId", taskController.GetTask)
	tasks.PATCH("/:taskId", taskController.UpdateTask)
	tasks.DELETE("/:taskId", taskController.DeleteTask)
	tasks.POST("/:taskId/share", taskController.ShareTask)

	admin := r.Group("/admin", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	admin.GET("/accounts", adminController.ListAccounts)
	admin.GET("/entitlements", adminController.ListEntitlements)
	admin.GET("/plans", adminController.ListAllPlans)
	admin.POST("/plans", adminController.UpsertPlan)
}
