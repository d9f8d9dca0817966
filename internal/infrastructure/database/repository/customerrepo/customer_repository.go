package customerrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/query"
	"crm-server/internal/infrastructure/database/dbschema"
	"crm-server/internal/utils/platformerrors"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

var _ customer.Repository = (*CustomerGormRepository)(nil)

func NewCustomerGormRepository(db *gorm.DB) customer.Repository {
	return &CustomerGormRepository{db: db}
}

func (repo *CustomerGormRepository) Create(ctx context.Context, cust *customer.Customer) error {
	entity := dbschema.NewSchemaCustomer(cust)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create customer",
			err,
			"7d2a9e4c-1b8f-4c6e-9a3b-5e7d2f8a1c90",
		)
	}
	*cust = *entity.EtoD()
	return nil
}

func (repo *CustomerGormRepository) FindByPublicID(ctx context.Context, publicID string) (*customer.Customer, error) {
	var entity dbschema.Customer
	err := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find customer by public ID")
	}
	return entity.EtoD(), nil
}

func (repo *CustomerGormRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var entity dbschema.Customer
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find customer by ID")
	}
	return entity.EtoD(), nil
}

func (repo *CustomerGormRepository) List(ctx context.Context, filter customer.Filter, pagination *query.Pagination) ([]*customer.Customer, int64, error) {
	baseQuery := repo.db.WithContext(ctx).Model(&dbschema.Customer{})

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		baseQuery = baseQuery.Where("name ILIKE ? OR company ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	if filter.OwnerID != nil {
		baseQuery = baseQuery.Where("owner_id = ?", *filter.OwnerID)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count customers")
	}

	listQuery := applyPagination(baseQuery, pagination)

	var rows []dbschema.Customer
	if err := listQuery.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list customers")
	}

	result := make([]*customer.Customer, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, total, nil
}

func (repo *CustomerGormRepository) Update(ctx context.Context, cust *customer.Customer) error {
	entity := dbschema.NewSchemaCustomer(cust)
	if err := repo.db.WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update customer")
	}
	*cust = *entity.EtoD()
	return nil
}

func (repo *CustomerGormRepository) Delete(ctx context.Context, publicID string) error {
	result := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&dbschema.Customer{})
	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete customer")
	}
	return nil
}

func (repo *CustomerGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Customer{}).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count customers")
	}
	return count, nil
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
