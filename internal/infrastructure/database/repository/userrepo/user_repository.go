package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"crm-server/internal/domain/query"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/database/dbschema"
	"crm-server/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) Create(ctx context.Context, usr *user.User) error {
	entity := dbschema.NewSchemaUser(usr)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"username or email already registered",
				err,
				"d8e2a4b7-1f9c-4c6e-8a3d-5b7e9f2c1a40",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create user",
			err,
			"2a7c4e9b-8d1f-4b6a-9e3c-7f5d2a8b4c60",
		)
	}
	*usr = *entity.EtoD()
	return nil
}

func (repo *UserGormRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by ID",
			err,
			"6b3f9e1a-4c8d-4a2e-b7f5-9d1c6e8a3b20",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by public ID",
			err,
			"4e8a2c7b-9f1d-4d6e-a3b8-5c9e7f2d1a80",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by username",
			err,
			"8c1e4a9b-2d7f-4e6a-9b3c-6f8d5a2e7b10",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("username = ?", username).
		Count(&count).
		Error
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to check username existence")
	}
	return count > 0, nil
}

func (repo *UserGormRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("email = ?", email).
		Count(&count).
		Error
	if err != nil {
		return false, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to check email existence")
	}
	return count > 0, nil
}

func (repo *UserGormRepository) List(ctx context.Context, filter user.Filter, pagination *query.Pagination) ([]*user.User, int64, error) {
	baseQuery := repo.db.WithContext(ctx).Model(&dbschema.User{})

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		baseQuery = baseQuery.Where("username ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern, pattern, pattern)
	}
	if filter.Role != nil {
		baseQuery = baseQuery.Where("role = ?", string(*filter.Role))
	}
	if filter.Active != nil {
		baseQuery = baseQuery.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count users")
	}

	listQuery := applyPagination(baseQuery, pagination)

	var rows []dbschema.User
	if err := listQuery.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list users")
	}

	result := make([]*user.User, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, total, nil
}

func (repo *UserGormRepository) Update(ctx context.Context, usr *user.User) error {
	entity := dbschema.NewSchemaUser(usr)
	if err := repo.db.WithContext(ctx).Save(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"email already registered",
				err,
				"1f6c9a3e-7b2d-4e8a-b5c9-8d4f1e7a2b30",
			)
		}
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update user")
	}
	*usr = *entity.EtoD()
	return nil
}

func (repo *UserGormRepository) Delete(ctx context.Context, publicID string) error {
	result := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		Delete(&dbschema.User{})
	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete user")
	}
	return nil
}

func (repo *UserGormRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("active = ?", true).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count active users")
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
