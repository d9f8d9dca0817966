package contactrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crm-server/internal/domain/contact"
	"crm-server/internal/domain/query"
	"crm-server/internal/infrastructure/database/dbschema"
	"crm-server/internal/utils/platformerrors"
)

type ContactGormRepository struct {
	db *gorm.DB
}

var _ contact.Repository = (*ContactGormRepository)(nil)

func NewContactGormRepository(db *gorm.DB) contact.Repository {
	return &ContactGormRepository{db: db}
}

func (repo *ContactGormRepository) Create(ctx context.Context, c *contact.Contact) error {
	entity := dbschema.NewSchemaContact(c)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create contact",
			err,
			"9b4e2a7c-6d1f-4c8e-b3a5-7f9d2e8c1a60",
		)
	}
	*c = *entity.EtoD()
	return nil
}

func (repo *ContactGormRepository) FindByPublicID(ctx context.Context, publicID string) (*contact.Contact, error) {
	var entity dbschema.Contact
	err := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find contact by public ID")
	}
	return entity.EtoD(), nil
}

func (repo *ContactGormRepository) List(ctx context.Context, filter contact.Filter, pagination *query.Pagination) ([]*contact.Contact, int64, error) {
	baseQuery := repo.db.WithContext(ctx).Model(&dbschema.Contact{})

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		baseQuery = baseQuery.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	if filter.CustomerID != nil {
		baseQuery = baseQuery.Where("customer_id = ?", *filter.CustomerID)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count contacts")
	}

	listQuery := applyPagination(baseQuery, pagination)

	var rows []dbschema.Contact
	if err := listQuery.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list contacts")
	}

	result := make([]*contact.Contact, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, total, nil
}

func (repo *ContactGormRepository) Update(ctx context.Context, c *contact.Contact) error {
	entity := dbschema.NewSchemaContact(c)
	if err := repo.db.WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update contact")
	}
	*c = *entity.EtoD()
	return nil
}

func (repo *ContactGormRepository) Delete(ctx context.Context, publicID string) error {
	result := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&dbschema.Contact{})
	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete contact")
	}
	return nil
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
