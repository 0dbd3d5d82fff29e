package itineraryrequests

import (
	planresponses "tripmind/internal/interfaces/httpserver/responses/plan"
)

// SaveItineraryRequest stores a delivered plan. The payload is the same
// shape the plan endpoint returned.
type SaveItineraryRequest struct {
	Title   string                        `json:"title"`
	Payload *planresponses.ItineraryShape `json:"payload" binding:"required"`
}
