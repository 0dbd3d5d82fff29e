package preferencerepo

import (
	"context"

	"tripmind/internal/domain/preference"
	"tripmind/internal/infrastructure/database/dbschema"
	"tripmind/internal/infrastructure/database/transaction"
	"tripmind/internal/utils/platformerrors"
)

type PreferenceGormRepository struct {
	db *transaction.Database
}

var _ preference.SignalRepository = (*PreferenceGormRepository)(nil)

func NewPreferenceGormRepository(db *transaction.Database) preference.SignalRepository {
	return &PreferenceGormRepository{db}
}

// Append implements preference.SignalRepository.
func (repo *PreferenceGormRepository) Append(ctx context.Context, signal *preference.Signal) error {
	model := dbschema.NewSchemaPreferenceSignal(signal)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to append preference signal")
	}
	signal.ID = model.ID
	return nil
}

// FindByUserID implements preference.SignalRepository.
func (repo *PreferenceGormRepository) FindByUserID(ctx context.Context, userID uint) ([]preference.Signal, error) {
	var models []dbschema.PreferenceSignal
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to load preference signals")
	}

	result := make([]preference.Signal, 0, len(models))
	for i := range models {
		result = append(result, models[i].EtoD())
	}
	return result, nil
}
