package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskly/internal/models/db_models"
)

type TaskRepository interface {
	Insert(ctx context.Context, task *db_models.Task) error
	FindByID(ctx context.Context, id string) (*db_models.Task, error)
	ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]db_models.Task, error)
	ListSharedWith(ctx context.Context, email string, page, pageSize int) ([]db_models.Task, error)
	CountActiveByOwner(ctx context.Context, ownerID string) (int64, error)
	Update(ctx context.Context, task *db_models.Task) error
	Delete(ctx context.Context, id string) error
	AddShare(ctx context.Context, share *db_models.TaskShare) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{
		db: db,
	}
}

func (t *taskRepository) Insert(ctx context.Context, task *db_models.Task) error {
	return t.db.WithContext(ctx).Create(task).Error
}

func (t *taskRepository) FindByID(ctx context.Context, id string) (*db_models.Task, error) {
	var task db_models.Task
	err := t.db.WithContext(ctx).
		Preload("Shares").
		First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (t *taskRepository) ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]db_models.Task, error) {
	var tasks []db_models.Task
	err := t.db.WithContext(ctx).
		Preload("Shares").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tasks).Error
	return tasks, err
}

func (t *taskRepository) ListSharedWith(ctx context.Context, email string, page, pageSize int) ([]db_models.Task, error) {
	var tasks []db_models.Task
	err := t.db.WithContext(ctx).
		Joins("JOIN task_shares ON task_shares.task_id = tasks.id").
		Where("task_shares.email = ? AND task_shares.deleted_at IS NULL", email).
		Order("tasks.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tasks).Error
	return tasks, err
}

func (t *taskRepository) CountActiveByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := t.db.WithContext(ctx).
		Model(&db_models.Task{}).
		Where("owner_id = ? AND status = ?", ownerID, db_models.TaskStatusPending).
		Count(&count).Error
	return count, err
}

func (t *taskRepository) Update(ctx context.Context, task *db_models.Task) error {
	return t.db.WithContext(ctx).Save(task).Error
}

func (t *taskRepository) Delete(ctx context.Context, id string) error {
	return t.db.WithContext(ctx).Delete(&db_models.Task{}, "id = ?", id).Error
}

func (t *taskRepository) AddShare(ctx context.Context, share *db_models.TaskShare) error {
	return t.db.WithContext(ctx).Create(share).Error
}
