package domain

import "time"

// Venue categories
var VenueCategories = []string{
	"restaurant", "cafe", "bar", "club", "gym",
	"park", "library", "mall", "coworking", "event", "other",
}

const (
	DefaultVenueRadiusMeters = 100
	MinVenueRadiusMeters     = 10
	MaxVenueRadiusMeters     = 5000

	// Fallback containment radius for venues with no configured radius.
	DetectFallbackRadiusMeters = 500
)

type Venue struct {
	ID           int      `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Category     string   `json:"category" db:"category"`
	Address      string   `json:"address" db:"address"`
	City         string   `json:"city" db:"city"`
	State        string   `json:"state" db:"state"`
	Lat          *float64 `json:"lat" db:"lat"`
	Lng          *float64 `json:"lng" db:"lng"`
	RadiusMeters int      `json:"radius_meters" db:"radius_meters"`
	Capacity     int      `json:"capacity" db:"capacity"`

	// Derived cache only: always recomputed from live presence, never
	// incremented in place.
	CurrentOccupancy int `json:"current_occupancy" db:"current_occupancy"`

	OpeningHours string    `json:"opening_hours" db:"opening_hours"`
	Tags         []string  `json:"tags" db:"tags"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsDeleted    bool      `json:"-" db:"is_deleted"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HasLocation reports whether the venue carries usable coordinates. A zero
// longitude marks unmigrated seed rows and is treated as missing.
func (v *Venue) HasLocation() bool {
	return v.Lat != nil && v.Lng != nil && *v.Lng != 0
}

// ContainmentRadius returns the geofence radius used for auto-detection.
func (v *Venue) ContainmentRadius() float64 {
	if v.RadiusMeters > 0 {
		return float64(v.RadiusMeters)
	}
	return DetectFallbackRadiusMeters
}

// VenueSummary is the compact projection embedded in check-in, match and chat
// responses.
type VenueSummary struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	City             string `json:"city"`
	CurrentOccupancy int    `json:"current_occupancy"`
}

func (v *Venue) Summary() VenueSummary {
	return VenueSummary{
		ID:               v.ID,
		Name:             v.Name,
		Category:         v.Category,
		City:             v.City,
		CurrentOccupancy: v.CurrentOccupancy,
	}
}

func ValidVenueCategory(c string) bool {
	for _, v := range VenueCategories {
		if v == c {
			return true
		}
	}
	return false
}

// VenueStats backs the admin dashboard cards.
type VenueStats struct {
	TotalVenues    int `json:"total_venues"`
	ActiveVenues   int `json:"active_venues"`
	InactiveVenues int `json:"inactive_venues"`
}
