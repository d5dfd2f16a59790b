package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
	"github.com/umahmood/haversine"
)

// Delivery estimation errors.
var (
	// ErrOutOfRange blocks checkout for delivery orders; pickup is unaffected.
	ErrOutOfRange = errors.New("address is outside the delivery area")
	// ErrGeocodeFailed is non-blocking; callers fall back to the default fee.
	ErrGeocodeFailed = errors.New("could not resolve the address")
)

const (
	// MaxDeliveryRadiusKm is the fixed delivery radius around the restaurant.
	MaxDeliveryRadiusKm = 10.0
	// DefaultDeliveryFee is the flat fallback fee used when geocoding fails.
	DefaultDeliveryFee = 8.0

	geocodeCacheTTL = 10 * time.Minute
)

// Geocoder resolves street addresses to coordinates. Overridable in tests.
var Geocoder geo.Geocoder = openstreetmap.Geocoder()

// DeliveryEstimate is a successful fee computation.
type DeliveryEstimate struct {
	Fee        float64 `json:"fee"`
	DistanceKm float64 `json:"distance_km"`
}

type geocodeEntry struct {
	lat, lng  float64
	fetchedAt time.Time
}

var (
	geocodeCacheMu sync.Mutex
	geocodeCache   = map[string]geocodeEntry{}
)

// FeeForDistance maps a distance from the restaurant to a delivery fee.
// Distances beyond the maximum radius are out of range.
func FeeForDistance(distanceKm float64) (float64, error) {
	switch {
	case distanceKm < 0:
		return 0, ErrOutOfRange
	case distanceKm <= 3:
		return 5.0, nil
	case distanceKm <= 6:
		return 8.0, nil
	case distanceKm <= MaxDeliveryRadiusKm:
		return 12.0, nil
	default:
		return 0, ErrOutOfRange
	}
}

// EstimateDeliveryFee geocodes the composed address and computes the fee from
// the great-circle distance to the restaurant. Resolved coordinates are held
// in a short-lived cache so repeated estimates for the same settled address
// do not hit the geocoding API again; rapid-edit debouncing stays with the
// UI caller.
func EstimateDeliveryFee(originLat, originLng float64, street, number, city, state string) (*DeliveryEstimate, error) {
	address := composeAddress(street, number, city, state)

	lat, lng, err := geocodeCached(address)
	if err != nil {
		return nil, err
	}

	_, distanceKm := haversine.Distance(
		haversine.Coord{Lat: originLat, Lon: originLng},
		haversine.Coord{Lat: lat, Lon: lng},
	)

	fee, err := FeeForDistance(distanceKm)
	if err != nil {
		return nil, err
	}

	return &DeliveryEstimate{Fee: fee, DistanceKm: distanceKm}, nil
}

func composeAddress(street, number, city, state string) string {
	parts := []string{}
	if street != "" {
		if number != "" {
			parts = append(parts, fmt.Sprintf("%s %s", street, number))
		} else {
			parts = append(parts, street)
		}
	}
	if city != "" {
		parts = append(parts, city)
	}
	if state != "" {
		parts = append(parts, state)
	}
	return strings.Join(parts, ", ")
}

func geocodeCached(address string) (float64, float64, error) {
	key := strings.ToLower(strings.TrimSpace(address))
	if key == "" {
		return 0, 0, ErrGeocodeFailed
	}

	geocodeCacheMu.Lock()
	entry, ok := geocodeCache[key]
	geocodeCacheMu.Unlock()
	if ok && time.Since(entry.fetchedAt) < geocodeCacheTTL {
		return entry.lat, entry.lng, nil
	}

	location, err := Geocoder.Geocode(address)
	if err != nil || location == nil {
		LogError("Geocoding failed for address %q: %v", address, err)
		return 0, 0, ErrGeocodeFailed
	}

	geocodeCacheMu.Lock()
	geocodeCache[key] = geocodeEntry{lat: location.Lat, lng: location.Lng, fetchedAt: time.Now()}
	geocodeCacheMu.Unlock()

	return location.Lat, location.Lng, nil
}
