package store

import (
	"context"
	"time"

	"github.com/acolombo/taskdeck/pkg/identity"
	"github.com/acolombo/taskdeck/pkg/models"
)

// ============================================
// TASK OPERATIONS
// ============================================

func (s *GORMStore) GetTask(ctx context.Context, owner identity.ID, taskID string) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", taskID, owner.String()).
		First(&task).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrTaskNotFound)
	}
	return &task, nil
}

func (s *GORMStore) ListTasks(ctx context.Context, owner identity.ID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", owner.String()).
		Order("created_at").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *GORMStore) CreateTask(ctx context.Context, task *models.Task) (string, error) {
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	task.CreatedAt = time.Now()
	return createWithID(s.db, ctx, task, func(t *models.Task, id string) { t.ID = id }, task.ID, models.ErrDuplicateTask)
}

func (s *GORMStore) UpdateTask(ctx context.Context, task *models.Task) error {
	var existing models.Task
	if err := s.db.WithContext(ctx).Where("id = ?", task.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrTaskNotFound)
	}

	// Update specific fields using Select to handle pointers properly
	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Title", "Description", "Status", "CompletedAt").
		Updates(task).Error
}

func (s *GORMStore) DeleteTask(ctx context.Context, owner identity.ID, taskID string) error {
	return deleteByFields[models.Task](s.db, ctx, map[string]any{
		"id":       taskID,
		"owner_id": owner.String(),
	}, models.ErrTaskNotFound)
}

