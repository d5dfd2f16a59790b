package utils

import (
	"errors"
	"testing"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/stretchr/testify/assert"
)

type fakeGeocoder struct {
	location *geo.Location
	err      error
}

func (f fakeGeocoder) Geocode(address string) (*geo.Location, error) {
	return f.location, f.err
}

func (f fakeGeocoder) ReverseGeocode(lat, lng float64) (*geo.Address, error) {
	return nil, errors.New("not implemented")
}

func TestFeeForDistanceTiers(t *testing.T) {
	cases := []struct {
		distance float64
		fee      float64
	}{
		{0, 5.0},
		{2.9, 5.0},
		{3.0, 5.0},
		{3.1, 8.0},
		{6.0, 8.0},
		{6.1, 12.0},
		{10.0, 12.0},
	}
	for _, tc := range cases {
		fee, err := FeeForDistance(tc.distance)
		assert.NoError(t, err)
		assert.Equal(t, tc.fee, fee, "distance %.1f", tc.distance)
	}
}

func TestFeeForDistanceOutOfRange(t *testing.T) {
	_, err := FeeForDistance(10.01)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = FeeForDistance(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEstimateDeliveryFeeNearby(t *testing.T) {
	original := Geocoder
	defer func() { Geocoder = original }()

	// Roughly 1.2km north of the origin.
	Geocoder = fakeGeocoder{location: &geo.Location{Lat: -23.54, Lng: -46.633308}}

	estimate, err := EstimateDeliveryFee(-23.55052, -46.633308, "Rua Augusta", "101", "Sao Paulo", "SP")
	assert.NoError(t, err)
	assert.Equal(t, 5.0, estimate.Fee)
	assert.InDelta(t, 1.2, estimate.DistanceKm, 0.2)
}

func TestEstimateDeliveryFeeOutOfRange(t *testing.T) {
	original := Geocoder
	defer func() { Geocoder = original }()

	// Roughly 55km away.
	Geocoder = fakeGeocoder{location: &geo.Location{Lat: -23.05, Lng: -46.633308}}

	_, err := EstimateDeliveryFee(-23.55052, -46.633308, "Estrada Velha", "1", "Campinas", "SP")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEstimateDeliveryFeeGeocodeFailure(t *testing.T) {
	original := Geocoder
	defer func() { Geocoder = original }()

	Geocoder = fakeGeocoder{err: errors.New("service unavailable")}

	_, err := EstimateDeliveryFee(-23.55052, -46.633308, "Rua Inexistente", "999", "Nowhere", "XX")
	assert.ErrorIs(t, err, ErrGeocodeFailed)
}

func TestEstimateDeliveryFeeEmptyAddress(t *testing.T) {
	_, err := EstimateDeliveryFee(-23.55052, -46.633308, "", "", "", "")
	assert.ErrorIs(t, err, ErrGeocodeFailed)
}

func TestComposeAddress(t *testing.T) {
	assert.Equal(t, "Rua Augusta 101, Sao Paulo, SP", composeAddress("Rua Augusta", "101", "Sao Paulo", "SP"))
	assert.Equal(t, "Rua Augusta, Sao Paulo", composeAddress("Rua Augusta", "", "Sao Paulo", ""))
	assert.Equal(t, "", composeAddress("", "", "", ""))
}
