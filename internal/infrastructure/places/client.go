package places

import (
	"context"
	"fmt"
	"strings"

	"resty.dev/v3"

	"tripmind/internal/config"
	"tripmind/internal/domain/candidate"
	"tripmind/internal/utils/platformerrors"
)

// Client queries the Google Places text search API and normalizes the
// results into candidates.
type Client struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewClient(client *resty.Client, cfg *config.Config) *Client {
	return &Client{
		client:  client,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.PlacesBaseURL), "/"),
		apiKey:  cfg.PlacesAPIKey,
	}
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		BusinessStatus   string  `json:"business_status"`
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		PriceLevel       int     `json:"price_level"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

const (
	// minRating is the quality floor for listed places. Low-rated and
	// unrated places are dropped during normalization.
	minRating = 4.0

	businessStatusClosed = "CLOSED_PERMANENTLY"
)

// categoryQueries maps a candidate category to the search phrase that
// surfaces the right kind of place.
var categoryQueries = map[candidate.Category]string{
	candidate.CategoryFood:          "best restaurants",
	candidate.CategoryDrink:         "best cafes",
	candidate.CategoryNature:        "nature attractions",
	candidate.CategoryCulture:       "museums and temples",
	candidate.CategoryEntertainment: "entertainment and amusement",
	candidate.CategoryShopping:      "shopping and markets",
	candidate.CategoryRelaxation:    "spa and wellness",
}

// Search runs a text search for one category in a destination.
func (c *Client) Search(ctx context.Context, destination string, category candidate.Category) ([]candidate.Candidate, error) {
	query, ok := categoryQueries[category]
	if !ok {
		query = string(category)
	}

	var body textSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("query", fmt.Sprintf("%s in %s", query, destination)).
		SetQueryParam("key", c.apiKey).
		SetResult(&body).
		Get(c.baseURL + "/textsearch/json")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"place search request failed", err, "")
	}
	if resp.IsError() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("place search returned status %d", resp.StatusCode()), nil, "")
	}
	if body.Status != "OK" && body.Status != "ZERO_RESULTS" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("place search failed: %s %s", body.Status, body.ErrorMessage), nil, "")
	}

	result := make([]candidate.Candidate, 0, len(body.Results))
	for _, place := range body.Results {
		if place.BusinessStatus == businessStatusClosed {
			continue
		}
		if place.Rating < minRating {
			continue
		}
		result = append(result, candidate.Candidate{
			Name:             place.Name,
			Category:         category,
			Address:          place.FormattedAddress,
			Latitude:         place.Geometry.Location.Lat,
			Longitude:        place.Geometry.Location.Lng,
			Rating:           place.Rating,
			Votes:            place.UserRatingsTotal,
			PriceLevel:       place.PriceLevel,
			EstimatedCostVND: estimateCostVND(category, place.PriceLevel),
			DurationMinutes:  candidate.DefaultDurationMinutes(category),
		})
	}
	return result, nil
}

// estimateCostVND maps a provider price level (0-4) to a per-person VND
// estimate. Nature and culture sights often charge a flat entry fee, so
// their base is lower than food.
func estimateCostVND(category candidate.Category, priceLevel int) int64 {
	if priceLevel < 0 {
		priceLevel = 0
	}
	if priceLevel > 4 {
		priceLevel = 4
	}

	var base int64
	switch category {
	case candidate.CategoryFood:
		base = 80_000
	case candidate.CategoryDrink:
		base = 40_000
	case candidate.CategoryNature, candidate.CategoryCulture:
		base = 50_000
	case candidate.CategoryRelaxation:
		base = 150_000
	default:
		base = 60_000
	}
	return base * int64(priceLevel+1)
}
