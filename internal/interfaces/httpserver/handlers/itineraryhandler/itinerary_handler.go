package itineraryhandler

import (
	"context"

	"tripmind/internal/domain/candidate"
	"tripmind/internal/domain/itinerary"
	"tripmind/internal/domain/preference"
	"tripmind/internal/infrastructure/logger"
	"tripmind/internal/infrastructure/metrics"
	itineraryrequests "tripmind/internal/interfaces/httpserver/requests/itineraryreq"
	itineraryresponses "tripmind/internal/interfaces/httpserver/responses/itineraryres"
	planresponses "tripmind/internal/interfaces/httpserver/responses/plan"
	"tripmind/internal/utils/platformerrors"
)

// ItineraryHandler handles saved-itinerary HTTP requests
type ItineraryHandler struct {
	itineraries *itinerary.Service
	preferences *preference.Service
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(itineraries *itinerary.Service, preferences *preference.Service) *ItineraryHandler {
	return &ItineraryHandler{
		itineraries: itineraries,
		preferences: preferences,
	}
}

// SaveItinerary stores a delivered plan. Saving the same content twice
// surfaces as a conflict, which the route maps to 409.
func (h *ItineraryHandler) SaveItinerary(ctx context.Context, userID uint, req itineraryrequests.SaveItineraryRequest) (*itineraryresponses.ItineraryResponse, error) {
	it := planresponses.ShapeToItinerary(req.Payload)
	it.Title = req.Title

	saved, err := h.itineraries.Save(ctx, userID, it)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			metrics.RecordItinerarySave("duplicate")
		} else {
			metrics.RecordItinerarySave("error")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to save itinerary")
	}
	metrics.RecordItinerarySave("saved")

	// a save is the strongest engagement signal the plan's categories get
	h.recordSaveSignals(ctx, userID, saved)

	return itineraryresponses.NewItineraryResponse(saved), nil
}

// recordSaveSignals appends one itinerary_click signal per distinct
// activity category in the saved plan. Signal failures never fail the save.
func (h *ItineraryHandler) recordSaveSignals(ctx context.Context, userID uint, it *itinerary.Itinerary) {
	log := logger.GetLogger()
	seen := make(map[string]bool)
	for _, day := range it.Days {
		for _, activity := range day.Activities {
			if activity.Category == "" || seen[activity.Category] {
				continue
			}
			if !candidate.IsActivityCategory(candidate.Category(activity.Category)) {
				continue
			}
			seen[activity.Category] = true
			if err := h.preferences.Record(ctx, userID, activity.Category, preference.SignalItineraryClick); err != nil {
				log.Warn().Err(err).Str("tag", activity.Category).Msg("failed to record save signal")
			}
		}
	}
}

// ListItineraries lists the caller's saved itineraries, newest first.
func (h *ItineraryHandler) ListItineraries(ctx context.Context, userID uint) (*itineraryresponses.ItineraryListResponse, error) {
	items, err := h.itineraries.List(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list itineraries")
	}
	return itineraryresponses.NewItineraryListResponse(items), nil
}

// GetItinerary returns one saved itinerary owned by the caller.
func (h *ItineraryHandler) GetItinerary(ctx context.Context, userID uint, itineraryID string) (*itineraryresponses.ItineraryResponse, error) {
	it, err := h.itineraries.Get(ctx, userID, itineraryID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get itinerary")
	}
	return itineraryresponses.NewItineraryResponse(it), nil
}

// DeleteItinerary removes one saved itinerary owned by the caller.
func (h *ItineraryHandler) DeleteItinerary(ctx context.Context, userID uint, itineraryID string) (*itineraryresponses.ItineraryDeletedResponse, error) {
	if err := h.itineraries.Delete(ctx, userID, itineraryID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete itinerary")
	}
	return itineraryresponses.NewItineraryDeletedResponse(itineraryID), nil
}
