package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tripmind/internal/domain/user"
	"tripmind/internal/infrastructure/database/dbschema"
	"tripmind/internal/infrastructure/database/transaction"
	"tripmind/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) user.Repository {
	return &UserGormRepository{db}
}

// FindByExternalID implements user.Repository.
func (repo *UserGormRepository) FindByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	var model dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find user by external ID")
	}
	return model.EtoD(), nil
}

// FindByID implements user.Repository.
func (repo *UserGormRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find user by ID")
	}
	return model.EtoD(), nil
}

// Create implements user.Repository.
func (repo *UserGormRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	model := dbschema.NewSchemaUser(u)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create user")
	}
	return model.EtoD(), nil
}

// Update implements user.Repository.
func (repo *UserGormRepository) Update(ctx context.Context, u *user.User) (*user.User, error) {
	model := dbschema.NewSchemaUser(u)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Save(model).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update user")
	}
	return model.EtoD(), nil
}
