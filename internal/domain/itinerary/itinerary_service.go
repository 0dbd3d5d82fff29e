package itinerary

import (
	"context"
	"time"

	"tripmind/internal/utils/idgen"
	"tripmind/internal/utils/platformerrors"
)

// Service owns itinerary persistence. Saving is idempotent on content: a
// plan whose fingerprint already exists for the user is a conflict, not a
// second row.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save stores an itinerary for the user. Returns a CONFLICT-typed error
// when the same content was saved before; any other failure keeps its own
// type so callers can tell "already saved" apart from "save failed".
func (s *Service) Save(ctx context.Context, userID uint, it *Itinerary) (*Itinerary, error) {
	if it == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"itinerary must not be nil", nil, "")
	}
	if it.Destination == "" || len(it.Days) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"itinerary must have a destination and at least one day", nil, "")
	}

	publicID, err := idgen.GenerateSecureID("itin", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate itinerary ID")
	}

	now := time.Now()
	it.PublicID = publicID
	it.UserID = userID
	it.Fingerprint = ComputeFingerprint(it)
	it.CreatedAt = now
	it.UpdatedAt = now

	if err := s.repo.Create(ctx, it); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
				"itinerary already saved", err, "")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to save itinerary")
	}
	return it, nil
}

// Get returns one itinerary owned by the user.
func (s *Service) Get(ctx context.Context, userID uint, publicID string) (*Itinerary, error) {
	it, err := s.repo.FindByPublicIDAndUserID(ctx, publicID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get itinerary")
	}
	if it == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"itinerary not found", nil, "")
	}
	return it, nil
}

// List returns the user's saved itineraries, newest first.
func (s *Service) List(ctx context.Context, userID uint) ([]*Itinerary, error) {
	items, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list itineraries")
	}
	return items, nil
}

// Delete removes one itinerary owned by the user.
func (s *Service) Delete(ctx context.Context, userID uint, publicID string) error {
	if err := s.repo.DeleteByPublicIDAndUserID(ctx, publicID, userID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete itinerary")
	}
	return nil
}
