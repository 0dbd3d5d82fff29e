package itinerary_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmind/internal/domain/itinerary"
	"tripmind/internal/utils/platformerrors"
)

// mockItineraryRepository stores itineraries in memory and enforces the
// (user, fingerprint) uniqueness the real table carries.
type mockItineraryRepository struct {
	items []*itinerary.Itinerary
}

func (m *mockItineraryRepository) Create(ctx context.Context, it *itinerary.Itinerary) error {
	for _, existing := range m.items {
		if existing.UserID == it.UserID && existing.Fingerprint == it.Fingerprint {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
				"duplicate itinerary", nil, "")
		}
	}
	copied := *it
	m.items = append(m.items, &copied)
	return nil
}

func (m *mockItineraryRepository) FindByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*itinerary.Itinerary, error) {
	for _, it := range m.items {
		if it.PublicID == publicID && it.UserID == userID {
			return it, nil
		}
	}
	return nil, nil
}

func (m *mockItineraryRepository) FindByUserID(ctx context.Context, userID uint) ([]*itinerary.Itinerary, error) {
	var out []*itinerary.Itinerary
	for _, it := range m.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockItineraryRepository) DeleteByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) error {
	for i, it := range m.items {
		if it.PublicID == publicID && it.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"itinerary not found", nil, "")
}

func sampleItinerary() *itinerary.Itinerary {
	return &itinerary.Itinerary{
		Destination:    "Đà Lạt",
		DurationDays:   2,
		StartDate:      "2026-09-05",
		EndDate:        "2026-09-06",
		TotalBudgetVND: 5000000,
		SpendingStyle:  itinerary.SpendingStyleBalanced,
		Days: []itinerary.Day{
			{DayNumber: 1, Date: "2026-09-05", Activities: []itinerary.Activity{
				{Name: "Hồ Xuân Hương", Category: "nature", StartTime: "09:00", EndTime: "10:30", DurationMinutes: 90},
			}},
			{DayNumber: 2, Date: "2026-09-06", Activities: []itinerary.Activity{}},
		},
	}
}

func TestSave_AssignsIDAndFingerprint(t *testing.T) {
	repo := &mockItineraryRepository{}
	svc := itinerary.NewService(repo)

	saved, err := svc.Save(context.Background(), 7, sampleItinerary())
	require.NoError(t, err)
	assert.True(t, len(saved.PublicID) > 5 && saved.PublicID[:5] == "itin_")
	assert.NotEmpty(t, saved.Fingerprint)
	assert.Equal(t, uint(7), saved.UserID)
}

func TestSave_DuplicateContentConflicts(t *testing.T) {
	repo := &mockItineraryRepository{}
	svc := itinerary.NewService(repo)
	ctx := context.Background()

	_, err := svc.Save(ctx, 7, sampleItinerary())
	require.NoError(t, err)

	_, err = svc.Save(ctx, 7, sampleItinerary())
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
	assert.Len(t, repo.items, 1)
}

func TestSave_SameContentDifferentUsersBothSaved(t *testing.T) {
	repo := &mockItineraryRepository{}
	svc := itinerary.NewService(repo)
	ctx := context.Background()

	_, err := svc.Save(ctx, 7, sampleItinerary())
	require.NoError(t, err)
	_, err = svc.Save(ctx, 8, sampleItinerary())
	require.NoError(t, err)
	assert.Len(t, repo.items, 2)
}

func TestSave_RejectsEmptyItinerary(t *testing.T) {
	repo := &mockItineraryRepository{}
	svc := itinerary.NewService(repo)

	_, err := svc.Save(context.Background(), 7, &itinerary.Itinerary{})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockItineraryRepository{}
	svc := itinerary.NewService(repo)

	_, err := svc.Get(context.Background(), 7, "itin_missing000000000")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestDelete_RemovesOnlyOwnItinerary(t *testing.T) {
	repo := &mockItineraryRepository{}
	svc := itinerary.NewService(repo)
	ctx := context.Background()

	saved, err := svc.Save(ctx, 7, sampleItinerary())
	require.NoError(t, err)

	err = svc.Delete(ctx, 9, saved.PublicID)
	assert.Error(t, err)

	err = svc.Delete(ctx, 7, saved.PublicID)
	require.NoError(t, err)

	items, err := svc.List(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, items)
}
