package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 16.0544, lng1: 108.2022,
			lat2: 16.0544, lng2: 108.2022,
			wantKm: 0, tolerance: 0.001,
		},
		{
			name: "Da Nang to Hoi An",
			lat1: 16.0544, lng1: 108.2022,
			lat2: 15.8801, lng2: 108.3380,
			wantKm: 24.3, tolerance: 1.5,
		},
		{
			name: "Hanoi to Ho Chi Minh City",
			lat1: 21.0285, lng1: 105.8542,
			lat2: 10.8231, lng2: 106.6297,
			wantKm: 1137, tolerance: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.wantKm, got, tt.tolerance)
		})
	}
}

func TestTravelMinutes(t *testing.T) {
	// ~24km at 30km/h should be around 48 minutes
	minutes := TravelMinutes(16.0544, 108.2022, 15.8801, 108.3380, 30)
	assert.InDelta(t, 48, minutes, 5)
}

func TestTravelMinutes_MissingCoordinates(t *testing.T) {
	assert.Equal(t, 0, TravelMinutes(0, 0, 16.05, 108.20, 30))
	assert.Equal(t, 0, TravelMinutes(16.05, 108.20, 0, 0, 30))
}

func TestTravelMinutes_InvalidSpeed(t *testing.T) {
	assert.Equal(t, 0, TravelMinutes(16.05, 108.20, 15.88, 108.33, 0))
}

func TestDefaultDurationMinutes(t *testing.T) {
	assert.Equal(t, 90, DefaultDurationMinutes(CategoryFood))
	assert.Equal(t, 180, DefaultDurationMinutes(CategoryNature))
	assert.Equal(t, 120, DefaultDurationMinutes(Category("unknown")))
}

func TestIsActivityCategory(t *testing.T) {
	assert.True(t, IsActivityCategory(CategoryFood))
	assert.True(t, IsActivityCategory(CategoryCulture))
	assert.False(t, IsActivityCategory(CategoryHotel))
	assert.False(t, IsActivityCategory(CategoryFlight))
}
