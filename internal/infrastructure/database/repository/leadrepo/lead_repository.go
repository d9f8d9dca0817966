package leadrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crm-server/internal/domain/lead"
	"crm-server/internal/domain/query"
	"crm-server/internal/infrastructure/database/dbschema"
	"crm-server/internal/utils/platformerrors"
)

type LeadGormRepository struct {
	db *gorm.DB
}

var _ lead.Repository = (*LeadGormRepository)(nil)

func NewLeadGormRepository(db *gorm.DB) lead.Repository {
	return &LeadGormRepository{db: db}
}

func (repo *LeadGormRepository) Create(ctx context.Context, ld *lead.Lead) error {
	entity := dbschema.NewSchemaLead(ld)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create lead",
			err,
			"5a9c2e7d-8b1f-4e6a-b3d9-7c2f8e5a1b40",
		)
	}
	*ld = *entity.EtoD()
	return nil
}

func (repo *LeadGormRepository) FindByPublicID(ctx context.Context, publicID string) (*lead.Lead, error) {
	var entity dbschema.Lead
	err := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find lead by public ID")
	}
	return entity.EtoD(), nil
}

func (repo *LeadGormRepository) List(ctx context.Context, filter lead.Filter, pagination *query.Pagination) ([]*lead.Lead, int64, error) {
	baseQuery := repo.db.WithContext(ctx).Model(&dbschema.Lead{})

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		baseQuery = baseQuery.Where("title ILIKE ? OR contact_name ILIKE ? OR contact_email ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Status != nil {
		baseQuery = baseQuery.Where("status = ?", string(*filter.Status))
	}
	if filter.OwnerID != nil {
		baseQuery = baseQuery.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.CustomerID != nil {
		baseQuery = baseQuery.Where("customer_id = ?", *filter.CustomerID)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count leads")
	}

	listQuery := applyPagination(baseQuery, pagination)

	var rows []dbschema.Lead
	if err := listQuery.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list leads")
	}

	result := make([]*lead.Lead, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, total, nil
}

func (repo *LeadGormRepository) Update(ctx context.Context, ld *lead.Lead) error {
	entity := dbschema.NewSchemaLead(ld)
	if err := repo.db.WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update lead")
	}
	*ld = *entity.EtoD()
	return nil
}

func (repo *LeadGormRepository) Delete(ctx context.Context, publicID string) error {
	result := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&dbschema.Lead{})
	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete lead")
	}
	return nil
}

func (repo *LeadGormRepository) CountByStatus(ctx context.Context) (map[lead.Status]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Lead{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count leads by status")
	}

	counts := make(map[lead.Status]int64, len(rows))
	for _, row := range rows {
		counts[lead.Status(row.Status)] = row.Count
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
