package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskly/internal/models/request_models"
	"taskly/internal/services"
	"taskly/pkg/utils"
)

type TaskController struct {
	taskService services.TaskServiceInterface
}

func NewTaskController(taskService services.TaskServiceInterface) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// CreateTask godoc
// @Summary Create a task
// @Description Create a task for the authenticated user; free accounts are limited to 10 pending tasks
// @Tags Tasks
// @Accept json
// @Produce json
// @Param request body request_models.CreateTaskRequest true "Task payload"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tasks [post]
func (t *TaskController) CreateTask(c *gin.Context) {
	var req request_models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Title is required")
		return
	}

	task, err := t.taskService.CreateTask(c.Request.Context(), c.GetString("user_id"), c.GetString("email"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, task, "Task created successfully")
}

// ListMyTasks godoc
// @Summary List my tasks
// @Description Fetch a paginated list of tasks owned by the authenticated user
// @Tags Tasks
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tasks [get]
func (t *TaskController) ListMyTasks(c *gin.Context) {
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	tasks, err := t.taskService.ListMyTasks(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tasks, "Tasks fetched successfully")
}

// ListSharedWithMe godoc
// @Summary List tasks shared with me
// @Tags Tasks
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tasks/shared-with-me [get]
func (t *TaskController) ListSharedWithMe(c *gin.Context) {
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	tasks, err := t.taskService.ListSharedWithMe(c.Request.Context(), c.GetString("email"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tasks, "Tasks fetched successfully")
}

// GetTask godoc
// @Summary Get a task by ID
// @Tags Tasks
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tasks/{taskId} [get]
func (t *TaskController) GetTask(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Task ID is required")
		return
	}

	task, err := t.taskService.GetTask(c.Request.Context(), c.GetString("user_id"), c.GetString("email"), taskID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, task, "Task fetched successfully")
}

// UpdateTask godoc
// @Summary Update a task
// @Description Update task fields; allowed for the owner and share recipients
// @Tags Tasks
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID"
// @Param request body request_models.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tasks/{taskId} [patch]
func (t *TaskController) UpdateTask(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Task ID is required")
		return
	}

	var req request_models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := t.taskService.UpdateTask(c.Request.Context(), c.GetString("user_id"), c.GetString("email"), taskID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, task, "Task updated successfully")
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Delete a task; owner only
// @Tags Tasks
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tasks/{taskId} [delete]
func (t *TaskController) DeleteTask(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Task ID is required")
		return
	}

	if err := t.taskService.DeleteTask(c.Request.Context(), c.GetString("user_id"), taskID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Task deleted successfully")
}

// ShareTask godoc
// @Summary Share a task with another user
// @Tags Tasks
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID"
// @Param request body request_models.ShareTaskRequest true "Recipient email"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tasks/{taskId}/share [post]
func (t *TaskController) ShareTask(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Task ID is required")
		return
	}

	var req request_models.ShareTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "A valid email is required")
		return
	}

	if err := t.taskService.ShareTask(c.Request.Context(), c.GetString("user_id"), taskID, req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Task shared successfully")
}

func paginationParams(c *gin.Context) (int, int, bool) {
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
