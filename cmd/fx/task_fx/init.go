package task_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"taskly/internal/api/controllers"
	"taskly/internal/repositories"
	"taskly/internal/services"
)

var Module = fx.Provide(
	provideTaskRepository,
	provideTaskService,
	provideTaskController,
)

func provideTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return repositories.NewTaskRepository(db)
}

func provideTaskService(
	taskRepo repositories.TaskRepository,
	entitlementSvc services.EntitlementServiceInterface,
) services.TaskServiceInterface {
	return services.NewTaskService(taskRepo, entitlementSvc)
}

func provideTaskController(taskService services.TaskServiceInterface) *controllers.TaskController {
	return controllers.NewTaskController(taskService)
}
