// README: Trip request and itinerary data model for plan generation.
package planner

import (
	"errors"
	"fmt"
	"time"
)

// MaxTravelDays caps the requested trip length so a runaway request cannot
// produce a pathological prompt or response.
const MaxTravelDays = 30

// Travel modes accepted in a TripRequest.
const (
	ModeWalking = "walking"
	ModeDriving = "driving"
	ModeTransit = "transit"
)

// ErrInvalidRequest is returned when a TripRequest violates an invariant the
// caller should have enforced (zero days, unknown travel mode, ...).
var ErrInvalidRequest = errors.New("invalid trip request")

// UnparsableResponseError is returned when every recovery strategy has been
// exhausted. Raw keeps the original model output for diagnostics.
type UnparsableResponseError struct {
	Raw string
}

func (e *UnparsableResponseError) Error() string {
	return "unparsable model response"
}

// TripRequest describes one itinerary generation request. The duration is
// given either as Days (plans carry 1-based day indices) or as a
// StartDate/EndDate pair (plans carry absolute dates); exactly one of the two
// variants must be set.
type TripRequest struct {
	City          string
	CenterName    string
	CenterAddress string
	CenterLat     float64
	CenterLng     float64

	Days      int
	StartDate time.Time
	EndDate   time.Time

	ScenicSpots []PointOfInterest
	Preferences []string
	TravelMode  string
}

// PointOfInterest is a named, geolocated place. RecommendedDuration is opaque
// display text (e.g. "2小时"), never machine-parsed.
type PointOfInterest struct {
	Name                string  `json:"name"`
	Address             string  `json:"address"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	Description         string  `json:"description"`
	RecommendedDuration string  `json:"recommended_duration,omitempty"`
}

// DailyPlan is one day's ordered POI sequence. POI order is itinerary order
// as produced by the model, not geographic order.
type DailyPlan struct {
	Day         int               `json:"day"`
	Date        string            `json:"date,omitempty"`
	PoiList     []PointOfInterest `json:"poi_list"`
	Description string            `json:"description"`
}

// Itinerary is the recovered generation result.
type Itinerary struct {
	Overview   string      `json:"overview"`
	DailyPlans []DailyPlan `json:"daily_plans"`
}

// PlanResult wraps an Itinerary with a freshly minted identifier and an echo
// of the request fields the client sent. PlanID is a client-side reference
// only; it is never looked up server-side.
type PlanResult struct {
	PlanID     string      `json:"plan_id"`
	City       string      `json:"city,omitempty"`
	CenterName string      `json:"center_name"`
	CenterLat  float64     `json:"center_latitude,omitempty"`
	CenterLng  float64     `json:"center_longitude,omitempty"`
	TravelDays int         `json:"travel_days"`
	StartDate  string      `json:"start_date,omitempty"`
	EndDate    string      `json:"end_date,omitempty"`
	TravelMode string      `json:"travel_mode"`
	Overview   string      `json:"overview"`
	DailyPlans []DailyPlan `json:"daily_plans"`
}

// usesDates reports whether the request is the date-range variant.
func (r *TripRequest) usesDates() bool {
	return !r.StartDate.IsZero() || !r.EndDate.IsZero()
}

// travelDays returns the effective day count for either duration variant.
// The request must already be validated.
func (r *TripRequest) travelDays() int {
	if r.usesDates() {
		return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
	}
	return r.Days
}

// Validate checks the request invariants shared by both duration variants.
func (r *TripRequest) Validate() error {
	switch r.TravelMode {
	case ModeWalking, ModeDriving, ModeTransit:
	default:
		return fmt.Errorf("%w: unknown travel mode %q", ErrInvalidRequest, r.TravelMode)
	}

	if r.usesDates() {
		if r.Days != 0 {
			return fmt.Errorf("%w: both day count and date range set", ErrInvalidRequest)
		}
		if r.StartDate.IsZero() || r.EndDate.IsZero() {
			return fmt.Errorf("%w: incomplete date range", ErrInvalidRequest)
		}
		if r.EndDate.Before(r.StartDate) {
			return fmt.Errorf("%w: end date before start date", ErrInvalidRequest)
		}
	} else if r.Days < 1 {
		return fmt.Errorf("%w: day count must be >= 1", ErrInvalidRequest)
	}

	if days := r.travelDays(); days > MaxTravelDays {
		return fmt.Errorf("%w: %d days exceeds the %d day limit", ErrInvalidRequest, days, MaxTravelDays)
	}
	return nil
}
