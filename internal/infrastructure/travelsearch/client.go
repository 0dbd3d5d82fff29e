package travelsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"resty.dev/v3"

	"tripmind/internal/config"
	"tripmind/internal/domain/candidate"
	"tripmind/internal/utils/platformerrors"
)

// usdToVND is a coarse conversion for providers that quote in USD.
var usdToVND = decimal.NewFromInt(25_000)

// Client queries a SerpApi-compatible endpoint for hotel and flight
// inventory and normalizes results into candidates.
type Client struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewClient(client *resty.Client, cfg *config.Config) *Client {
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.TravelSearchBaseURL), "/"),
		apiKey:  cfg.TravelSearchAPIKey,
	}
}

type hotelSearchResponse struct {
	Properties []struct {
		Name           string  `json:"name"`
		OverallRating  float64 `json:"overall_rating"`
		Reviews        int     `json:"reviews"`
		GPSCoordinates struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"gps_coordinates"`
		RatePerNight struct {
			ExtractedLowest float64 `json:"extracted_lowest"`
		} `json:"rate_per_night"`
	} `json:"properties"`
	Error string `json:"error"`
}

type flightSearchResponse struct {
	BestFlights []struct {
		Price   float64 `json:"price"`
		Flights []struct {
			Airline      string `json:"airline"`
			FlightNumber string `json:"flight_number"`
		} `json:"flights"`
		TotalDuration int `json:"total_duration"`
	} `json:"best_flights"`
	Error string `json:"error"`
}

// SearchHotels returns hotel candidates for a stay window.
func (c *Client) SearchHotels(ctx context.Context, destination string, checkIn, checkOut time.Time) ([]candidate.Candidate, error) {
	var body hotelSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":         "google_hotels",
			"q":              destination,
			"check_in_date":  checkIn.Format("2006-01-02"),
			"check_out_date": checkOut.Format("2006-01-02"),
			"currency":       "VND",
			"api_key":        c.apiKey,
		}).
		SetResult(&body).
		Get(c.baseURL + "/search.json")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"hotel search request failed", err, "")
	}
	if resp.IsError() || body.Error != "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("hotel search failed: %s", body.Error), nil, "")
	}

	result := make([]candidate.Candidate, 0, len(body.Properties))
	for _, property := range body.Properties {
		result = append(result, candidate.Candidate{
			Name:             property.Name,
			Category:         candidate.CategoryHotel,
			Latitude:         property.GPSCoordinates.Latitude,
			Longitude:        property.GPSCoordinates.Longitude,
			Rating:           property.OverallRating,
			Votes:            property.Reviews,
			EstimatedCostVND: int64(property.RatePerNight.ExtractedLowest),
		})
	}
	return result, nil
}

// SearchFlights returns flight candidates for a route and departure day.
// Prices come back in USD from this engine and are converted.
func (c *Client) SearchFlights(ctx context.Context, origin, destination string, departure time.Time) ([]candidate.Candidate, error) {
	var body flightSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":        "google_flights",
			"departure_id":  origin,
			"arrival_id":    destination,
			"outbound_date": departure.Format("2006-01-02"),
			"type":          "2",
			"api_key":       c.apiKey,
		}).
		SetResult(&body).
		Get(c.baseURL + "/search.json")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"flight search request failed", err, "")
	}
	if resp.IsError() || body.Error != "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("flight search failed: %s", body.Error), nil, "")
	}

	result := make([]candidate.Candidate, 0, len(body.BestFlights))
	for _, option := range body.BestFlights {
		name := "Flight"
		if len(option.Flights) > 0 {
			name = strings.TrimSpace(option.Flights[0].Airline + " " + option.Flights[0].FlightNumber)
		}
		priceVND := decimal.NewFromFloat(option.Price).Mul(usdToVND).IntPart()
		result = append(result, candidate.Candidate{
			Name:             name,
			Category:         candidate.CategoryFlight,
			EstimatedCostVND: priceVND,
			DurationMinutes:  option.TotalDuration,
		})
	}
	return result, nil
}
