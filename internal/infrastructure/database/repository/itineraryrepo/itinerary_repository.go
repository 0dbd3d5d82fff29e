package itineraryrepo

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"tripmind/internal/domain/itinerary"
	"tripmind/internal/infrastructure/database/dbschema"
	"tripmind/internal/infrastructure/database/transaction"
	"tripmind/internal/utils/platformerrors"
)

// Postgres unique_violation
const uniqueViolationCode = "23505"

type ItineraryGormRepository struct {
	db *transaction.Database
}

var _ itinerary.Repository = (*ItineraryGormRepository)(nil)

func NewItineraryGormRepository(db *transaction.Database) itinerary.Repository {
	return &ItineraryGormRepository{db}
}

// Create implements itinerary.Repository. A unique violation on
// (user_id, fingerprint) surfaces as a conflict so the caller can report
// the plan as already saved.
func (repo *ItineraryGormRepository) Create(ctx context.Context, it *itinerary.Itinerary) error {
	model, err := dbschema.NewSchemaItinerary(it)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to encode itinerary")
	}
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(model).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
				"itinerary with identical content already exists", err, "")
		}
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create itinerary")
	}
	it.ID = model.ID
	it.CreatedAt = model.CreatedAt
	it.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByPublicIDAndUserID implements itinerary.Repository.
func (repo *ItineraryGormRepository) FindByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*itinerary.Itinerary, error) {
	var model dbschema.Itinerary
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ? AND user_id = ?", publicID, userID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to find itinerary")
	}
	result, err := model.EtoD()
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to decode itinerary")
	}
	return result, nil
}

// FindByUserID implements itinerary.Repository.
func (repo *ItineraryGormRepository) FindByUserID(ctx context.Context, userID uint) ([]*itinerary.Itinerary, error) {
	var models []dbschema.Itinerary
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list itineraries")
	}

	result := make([]*itinerary.Itinerary, 0, len(models))
	for i := range models {
		it, err := models[i].EtoD()
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to decode itinerary")
		}
		result = append(result, it)
	}
	return result, nil
}

// DeleteByPublicIDAndUserID implements itinerary.Repository.
func (repo *ItineraryGormRepository) DeleteByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) error {
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ? AND user_id = ?", publicID, userID).
		Delete(&dbschema.Itinerary{})
	if result.Error != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "failed to delete itinerary")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"itinerary not found", nil, "")
	}
	return nil
}
