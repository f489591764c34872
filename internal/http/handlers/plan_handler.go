// README: Travel-plan generation handler.
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripgen/internal/modules/geocode"
	"tripgen/internal/modules/planner"
	"tripgen/internal/modules/usage"
)

// generateTimeout bounds the whole generation, dominated by the LLM call.
const generateTimeout = 120 * time.Second

// PlanHandler serves plan generation. The usage and geocode collaborators are
// optional; nil disables the quota check and center resolution respectively.
type PlanHandler struct {
	planner *planner.Service
	usage   *usage.Service
	geo     *geocode.Service
}

func NewPlanHandler(plannerSvc *planner.Service, usageSvc *usage.Service, geoSvc *geocode.Service) *PlanHandler {
	return &PlanHandler{planner: plannerSvc, usage: usageSvc, geo: geoSvc}
}

type scenicSpotReq struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// generatePlanReq accepts both duration shapes: travel_days, or a
// start_date/end_date pair (YYYY-MM-DD).
type generatePlanReq struct {
	City          string          `json:"city"`
	CenterName    string          `json:"center_name" binding:"required"`
	CenterAddress string          `json:"center_address"`
	CenterLat     float64         `json:"center_latitude"`
	CenterLng     float64         `json:"center_longitude"`
	TravelDays    int             `json:"travel_days"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	TravelMode    string          `json:"travel_mode"`
	Preferences   []string        `json:"preferences"`
	ScenicSpots   []scenicSpotReq `json:"scenic_spots"`
	UserID        string          `json:"user_id"`
}

// Generate handles POST /api/generate-plan.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req generatePlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	trip, err := req.toTripRequest()
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	if h.usage != nil {
		if err := h.usage.Consume(ctx, h.callerID(c, &req)); err != nil {
			writePlanError(c, err)
			return
		}
	}

	if h.geo != nil && trip.CenterLat == 0 && trip.CenterLng == 0 {
		lat, lng, err := h.geo.Resolve(ctx, trip.CenterName, trip.CenterAddress)
		if err != nil {
			// The prompt still carries the center name; generation proceeds.
			log.Printf("geocode %q failed: %v", trip.CenterName, err)
		} else {
			trip.CenterLat, trip.CenterLng = lat, lng
		}
	}

	result, err := h.planner.GeneratePlan(ctx, trip)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, result)
}

func (h *PlanHandler) callerID(c *gin.Context, req *generatePlanReq) string {
	if req.UserID != "" {
		return req.UserID
	}
	if uid := c.GetHeader("X-User-ID"); uid != "" {
		return uid
	}
	return c.ClientIP()
}

func (r *generatePlanReq) toTripRequest() (*planner.TripRequest, error) {
	trip := &planner.TripRequest{
		City:          r.City,
		CenterName:    r.CenterName,
		CenterAddress: r.CenterAddress,
		CenterLat:     r.CenterLat,
		CenterLng:     r.CenterLng,
		Days:          r.TravelDays,
		Preferences:   r.Preferences,
		TravelMode:    r.TravelMode,
	}
	if trip.TravelMode == "" {
		trip.TravelMode = planner.ModeWalking
	}
	for _, s := range r.ScenicSpots {
		trip.ScenicSpots = append(trip.ScenicSpots, planner.PointOfInterest{
			Name:      s.Name,
			Address:   s.Address,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		})
	}

	var err error
	if r.StartDate != "" || r.EndDate != "" {
		trip.StartDate, err = time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return nil, planner.ErrInvalidRequest
		}
		trip.EndDate, err = time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return nil, planner.ErrInvalidRequest
		}
	}
	return trip, nil
}
