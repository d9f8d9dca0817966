package taskrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"crm-server/internal/domain/query"
	"crm-server/internal/domain/task"
	"crm-server/internal/infrastructure/database/dbschema"
	"crm-server/internal/utils/platformerrors"
)

type TaskGormRepository struct {
	db *gorm.DB
}

var _ task.Repository = (*TaskGormRepository)(nil)

func NewTaskGormRepository(db *gorm.DB) task.Repository {
	return &TaskGormRepository{db: db}
}

func (repo *TaskGormRepository) Create(ctx context.Context, t *task.Task) error {
	entity := dbschema.NewSchemaTask(t)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create task",
			err,
			"3c8e1a7d-9f2b-4b6e-a5c3-8d1f7e4a2b90",
		)
	}
	*t = *entity.EtoD()
	return nil
}

func (repo *TaskGormRepository) FindByPublicID(ctx context.Context, publicID string) (*task.Task, error) {
	var entity dbschema.Task
	err := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find task by public ID")
	}
	return entity.EtoD(), nil
}

func (repo *TaskGormRepository) List(ctx context.Context, filter task.Filter, pagination *query.Pagination) ([]*task.Task, int64, error) {
	baseQuery := repo.db.WithContext(ctx).Model(&dbschema.Task{})

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		baseQuery = baseQuery.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Status != nil {
		baseQuery = baseQuery.Where("status = ?", string(*filter.Status))
	}
	if filter.AssigneeID != nil {
		baseQuery = baseQuery.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.CustomerID != nil {
		baseQuery = baseQuery.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.LeadID != nil {
		baseQuery = baseQuery.Where("lead_id = ?", *filter.LeadID)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count tasks")
	}

	listQuery := applyPagination(baseQuery, pagination)

	var rows []dbschema.Task
	if err := listQuery.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list tasks")
	}

	result := make([]*task.Task, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, total, nil
}

func (repo *TaskGormRepository) Update(ctx context.Context, t *task.Task) error {
	entity := dbschema.NewSchemaTask(t)
	if err := repo.db.WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update task")
	}
	*t = *entity.EtoD()
	return nil
}

func (repo *TaskGormRepository) Delete(ctx context.Context, publicID string) error {
	result := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&dbschema.Task{})
	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete task")
	}
	return nil
}

func (repo *TaskGormRepository) DueBefore(ctx context.Context, deadline time.Time, statuses []task.Status) ([]*task.Task, error) {
	statusValues := make([]string, len(statuses))
	for i, st := range statuses {
		statusValues[i] = string(st)
	}

	var rows []dbschema.Task
	err := repo.db.WithContext(ctx).
		Where("due_at IS NOT NULL AND due_at <= ?", deadline).
		Where("status IN ?", statusValues).
		Order("due_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to query due tasks")
	}

	result := make([]*task.Task, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, nil
}

func (repo *TaskGormRepository) CountByStatus(ctx context.Context) (map[task.Status]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Task{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count tasks by status")
	}

	counts := make(map[task.Status]int64, len(rows))
	for _, row := range rows {
		counts[task.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func applyPagination(db *gorm.DB, pagination *query.Pagination) *gorm.DB {
	if pagination == nil {
		return db.Order("id DESC")
	}
	if pagination.After != nil {
		if pagination.Order == "desc" {
			db = db.Where("id < ?", *pagination.After)
		} else {
			db = db.Where("id > ?", *pagination.After)
		}
	}
	if pagination.Order == "desc" {
		db = db.Order("id DESC")
	} else {
		db = db.Order("id ASC")
	}
	if pagination.Limit != nil && *pagination.Limit > 0 {
		db = db.Limit(*pagination.Limit)
	}
	return db
}
