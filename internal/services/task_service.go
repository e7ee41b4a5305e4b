package services

import (
	"context"

	"github.com/google/uuid"

	"taskly/internal/models/db_models"
	"taskly/internal/models/request_models"
	"taskly/internal/models/response_models"
	"taskly/internal/repositories"
	"taskly/pkg/utils"
)

// Free accounts are capped at this many pending tasks; a valid premium
// entitlement removes the cap.
const freeTaskLimit = 10

type TaskServiceInterface interface {
	CreateTask(ctx context.Context, ownerID, ownerEmail string, req request_models.CreateTaskRequest) (*response_models.TaskResponse, error)
	GetTask(ctx context.Context, requesterID, requesterEmail, taskID string) (*response_models.TaskResponse, error)
	ListMyTasks(ctx context.Context, ownerID string, page, pageSize int) ([]response_models.TaskResponse, error)
	ListSharedWithMe(ctx context.Context, email string, page, pageSize int) ([]response_models.TaskResponse, error)
	UpdateTask(ctx context.Context, requesterID, requesterEmail, taskID string, req request_models.UpdateTaskRequest) (*response_models.TaskResponse, error)
	DeleteTask(ctx context.Context, requesterID, taskID string) error
	ShareTask(ctx context.Context, requesterID, taskID, email string) error
}

type TaskService struct {
	taskRepo       repositories.TaskRepository
	entitlementSvc EntitlementServiceInterface
}

func NewTaskService(taskRepo repositories.TaskRepository, entitlementSvc EntitlementServiceInterface) TaskServiceInterface {
	return &TaskService{
		taskRepo:       taskRepo,
		entitlementSvc: entitlementSvc,
	}
}

func (t *TaskService) CreateTask(ctx context.Context, ownerID, ownerEmail string, req request_models.CreateTaskRequest) (*response_models.TaskResponse, error) {
	isPremium, err := t.entitlementSvc.IsPremium(ctx, ownerEmail)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !isPremium {
		count, err := t.taskRepo.CountActiveByOwner(ctx, ownerID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if count >= freeTaskLimit {
			return nil, utils.ErrTaskLimitReached
		}
	}

	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, utils.ErrForbidden
	}

	task := &db_models.Task{
		OwnerID:     owner,
		Title:       req.Title,
		Description: req.Description,
		Status:      db_models.TaskStatusPending,
		DueDate:     req.DueDate,
	}
	if err := t.taskRepo.Insert(ctx, task); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toTaskResponse(*task)
	return &resp, nil
}

func (t *TaskService) GetTask(ctx context.Context, requesterID, requesterEmail, taskID string) (*response_models.TaskResponse, error) {
	task, err := t.loadAccessible(ctx, requesterID, requesterEmail, taskID)
	if err != nil {
		return nil, err
	}
	resp := toTaskResponse(*task)
	return &resp, nil
}

func (t *TaskService) ListMyTasks(ctx context.Context, ownerID string, page, pageSize int) ([]response_models.TaskResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	tasks, err := t.taskRepo.ListByOwner(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toTaskResponses(tasks), nil
}

func (t *TaskService) ListSharedWithMe(ctx context.Context, email string, page, pageSize int) ([]response_models.TaskResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	tasks, err := t.taskRepo.ListSharedWith(ctx, email, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toTaskResponses(tasks), nil
}

func (t *TaskService) UpdateTask(ctx context.Context, requesterID, requesterEmail, taskID string, req request_models.UpdateTaskRequest) (*response_models.TaskResponse, error) {
	task, err := t.loadAccessible(ctx, requesterID, requesterEmail, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = db_models.TaskStatus(*req.Status)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := t.taskRepo.Update(ctx, task); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toTaskResponse(*task)
	return &resp, nil
}

func (t *TaskService) DeleteTask(ctx context.Context, requesterID, taskID string) error {
	task, err := t.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if task == nil {
		return utils.ErrTaskNotFound
	}
	// Deletion is owner-only; share recipients can edit but not delete.
	if task.OwnerID.String() != requesterID {
		return utils.ErrForbidden
	}

	if err := t.taskRepo.Delete(ctx, taskID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TaskService) ShareTask(ctx context.Context, requesterID, taskID, email string) error {
	task, err := t.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if task == nil {
		return utils.ErrTaskNotFound
	}
	if task.OwnerID.String() != requesterID {
		return utils.ErrForbidden
	}

	for _, share := range task.Shares {
		if share.Email == email {
			return nil // already shared
		}
	}

	share := &db_models.TaskShare{
		TaskID: task.ID,
		Email:  email,
	}
	if err := t.taskRepo.AddShare(ctx, share); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TaskService) loadAccessible(ctx context.Context, requesterID, requesterEmail, taskID string) (*db_models.Task, error) {
	task, err := t.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if task == nil {
		return nil, utils.ErrTaskNotFound
	}
	if task.OwnerID.String() == requesterID {
		return task, nil
	}
	for _, share := range task.Shares {
		if share.Email == requesterEmail {
			return task, nil
		}
	}
	return nil, utils.ErrForbidden
}

func toTaskResponse(task db_models.Task) response_models.TaskResponse {
	sharedWith := make([]string, 0, len(task.Shares))
	for _, share := range task.Shares {
		sharedWith = append(sharedWith, share.Email)
	}
	return response_models.TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		OwnerID:     task.OwnerID.String(),
		SharedWith:  sharedWith,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func toTaskResponses(tasks []db_models.Task) []response_models.TaskResponse {
	result := make([]response_models.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, toTaskResponse(task))
	}
	return result
}
