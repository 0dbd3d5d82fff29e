package profilehandler

import (
	"context"

	"tripmind/internal/domain/preference"
	"tripmind/internal/domain/user"
	"tripmind/internal/infrastructure/logger"
	profilerequests "tripmind/internal/interfaces/httpserver/requests/profilereq"
	profileresponses "tripmind/internal/interfaces/httpserver/responses/profileres"
	"tripmind/internal/utils/platformerrors"
)

// ProfileHandler handles travel-profile HTTP requests
type ProfileHandler struct {
	users       *user.Service
	preferences *preference.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(users *user.Service, preferences *preference.Service) *ProfileHandler {
	return &ProfileHandler{users: users, preferences: preferences}
}

// GetProfile returns the caller's travel profile.
func (h *ProfileHandler) GetProfile(ctx context.Context, userID uint) (*profileresponses.ProfileResponse, error) {
	profile, err := h.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get profile")
	}
	return profileresponses.NewProfileResponse(profile), nil
}

// UpdateProfile applies the non-nil fields of the request. Preference tags
// the user adds here count as explicit statements and feed the signal log.
func (h *ProfileHandler) UpdateProfile(ctx context.Context, userID uint, req profilerequests.UpdateProfileRequest) (*profileresponses.ProfileResponse, error) {
	var existingTags map[string]bool
	if req.PreferenceTags != nil {
		current, err := h.users.GetProfile(ctx, userID)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get profile")
		}
		existingTags = make(map[string]bool, len(current.PreferenceTags))
		for _, tag := range current.PreferenceTags {
			existingTags[tag] = true
		}
	}

	updated, err := h.users.UpdateProfile(ctx, userID, user.ProfileUpdate{
		Email:          req.Email,
		FullName:       req.FullName,
		Age:            req.Age,
		Gender:         req.Gender,
		EnergyLevel:    req.EnergyLevel,
		SpendingStyle:  req.SpendingStyle,
		BudgetMinVND:   req.BudgetMinVND,
		BudgetMaxVND:   req.BudgetMaxVND,
		PreferenceTags: req.PreferenceTags,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update profile")
	}

	// newly added tags are explicit preference statements
	log := logger.GetLogger()
	for _, tag := range req.PreferenceTags {
		if existingTags[tag] {
			continue
		}
		if err := h.preferences.Record(ctx, userID, tag, preference.SignalExplicitAsk); err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("failed to record profile signal")
		}
	}

	return profileresponses.NewProfileResponse(updated), nil
}
