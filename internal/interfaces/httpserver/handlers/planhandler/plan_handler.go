package planhandler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripmind/internal/config"
	"tripmind/internal/domain/candidate"
	"tripmind/internal/domain/planner"
	"tripmind/internal/infrastructure/metrics"
	planrequests "tripmind/internal/interfaces/httpserver/requests/plan"
	planresponses "tripmind/internal/interfaces/httpserver/responses/plan"
	"tripmind/internal/utils/platformerrors"
)

const (
	walkingSpeedKmh   = 5.0
	bicyclingSpeedKmh = 15.0
)

// PlanHandler handles planning dialogue turns and travel-time estimates.
type PlanHandler struct {
	planner *planner.Service
	cfg     *config.Config
	now     func() time.Time
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(plannerService *planner.Service, cfg *config.Config) *PlanHandler {
	return &PlanHandler{
		planner: plannerService,
		cfg:     cfg,
		now:     time.Now,
	}
}

// HandleTurn runs one dialogue turn and maps the outcome onto the
// response union.
func (h *PlanHandler) HandleTurn(ctx context.Context, userID uint, req planrequests.PlanRequest) (*planresponses.PlanResponse, error) {
	start := h.now()
	result, err := h.planner.HandleTurn(ctx, userID, req.ConversationID, req.Message)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			metrics.RecordTurn("superseded")
		} else {
			metrics.RecordTurn("error")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "turn failed")
	}

	metrics.RecordTurn(turnOutcome(result))
	if req.ConversationID == "" {
		metrics.ConversationsCreatedTotal.Inc()
	}
	if result.Itinerary != nil {
		metrics.RecordGeneration(result.Itinerary.Destination, h.now().Sub(start).Seconds())
	}
	return planresponses.NewPlanResponse(result), nil
}

// TravelTime estimates point-to-point travel time for a transport mode.
// Straight-line distance at a per-mode speed, not a routing-engine output.
func (h *PlanHandler) TravelTime(ctx context.Context, origin, destination, mode string) (*planresponses.TravelTimeResponse, error) {
	fromLat, fromLng, err := parseLatLng(ctx, origin, "origin")
	if err != nil {
		return nil, err
	}
	toLat, toLng, err := parseLatLng(ctx, destination, "destination")
	if err != nil {
		return nil, err
	}

	speed, mode, err := h.modeSpeed(ctx, mode)
	if err != nil {
		return nil, err
	}

	distanceKm := candidate.HaversineKm(fromLat, fromLng, toLat, toLng)
	minutes := candidate.TravelMinutes(fromLat, fromLng, toLat, toLng, speed)
	return planresponses.NewTravelTimeResponse(mode, distanceKm, minutes), nil
}

func (h *PlanHandler) modeSpeed(ctx context.Context, mode string) (float64, string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "driving":
		return h.cfg.TravelSpeedKmh, "driving", nil
	case "walking":
		return walkingSpeedKmh, "walking", nil
	case "bicycling":
		return bicyclingSpeedKmh, "bicycling", nil
	default:
		return 0, "", platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unsupported mode %q", mode), nil, "")
	}
}

func parseLatLng(ctx context.Context, value, field string) (float64, float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("%s must be \"lat,lng\"", field), nil, "")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("invalid %s latitude", field), err, "")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("invalid %s longitude", field), err, "")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("%s out of range", field), nil, "")
	}
	return lat, lng, nil
}

func turnOutcome(result *planner.TurnResult) string {
	switch {
	case result.IsList:
		return "list"
	case result.RequiresClarification:
		return "clarification"
	case result.RequiresConfirmation:
		return "confirmation"
	case result.Itinerary != nil:
		return "itinerary"
	default:
		return "unrelated"
	}
}
