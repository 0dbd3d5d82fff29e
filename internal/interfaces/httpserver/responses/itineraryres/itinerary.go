package itineraryresponses

import (
	"tripmind/internal/domain/itinerary"
	planresponses "tripmind/internal/interfaces/httpserver/responses/plan"
)

// ItineraryResponse is one saved itinerary record.
type ItineraryResponse struct {
	ID        string                        `json:"id"`
	Object    string                        `json:"object"`
	Title     string                        `json:"title,omitempty"`
	Payload   *planresponses.ItineraryShape `json:"payload"`
	CreatedAt int64                         `json:"created_at"`
}

// ItineraryListResponse wraps the user's saved itineraries.
type ItineraryListResponse struct {
	Object string              `json:"object"`
	Data   []ItineraryResponse `json:"data"`
}

// ItineraryDeletedResponse confirms a delete.
type ItineraryDeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// NewItineraryResponse creates a response from a domain itinerary
func NewItineraryResponse(it *itinerary.Itinerary) *ItineraryResponse {
	return &ItineraryResponse{
		ID:        it.PublicID,
		Object:    "itinerary",
		Title:     it.Title,
		Payload:   planresponses.NewItineraryShape(it),
		CreatedAt: it.CreatedAt.Unix(),
	}
}

// NewItineraryListResponse creates an itinerary list response
func NewItineraryListResponse(items []*itinerary.Itinerary) *ItineraryListResponse {
	data := make([]ItineraryResponse, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		data = append(data, *NewItineraryResponse(it))
	}
	return &ItineraryListResponse{Object: "list", Data: data}
}

// NewItineraryDeletedResponse creates a delete response
func NewItineraryDeletedResponse(publicID string) *ItineraryDeletedResponse {
	return &ItineraryDeletedResponse{
		ID:      publicID,
		Object:  "itinerary.deleted",
		Deleted: true,
	}
}
