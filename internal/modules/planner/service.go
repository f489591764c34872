// README: Plan generation service; prompt -> model call -> recovery -> result.
package planner

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Completer is the external text-completion collaborator. It gives no
// guarantee about the formatting of the returned text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service orchestrates itinerary generation. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	llm Completer
}

// NewService creates a Service backed by the given completion provider.
func NewService(llm Completer) *Service {
	return &Service{llm: llm}
}

// GeneratePlan produces an itinerary for req. A single completion attempt is
// made; upstream failures propagate wrapped and are never retried here.
func (s *Service) GeneratePlan(ctx context.Context, req *TripRequest) (*PlanResult, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Complete(ctx, SystemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm completion: %w", err)
	}

	itinerary, err := RecoverItinerary(raw)
	if err != nil {
		return nil, err
	}

	days := req.travelDays()
	if len(itinerary.DailyPlans) != days {
		// Tolerated: models routinely under-deliver a day. The caller gets
		// whatever was recovered.
		log.Printf("planner: requested %d days, model returned %d", days, len(itinerary.DailyPlans))
	}
	checkCoordinates(itinerary)

	if req.usesDates() {
		for i := range itinerary.DailyPlans {
			p := &itinerary.DailyPlans[i]
			if p.Day >= 1 {
				p.Date = req.StartDate.AddDate(0, 0, p.Day-1).Format("2006-01-02")
			}
		}
	}

	result := &PlanResult{
		PlanID:     uuid.NewString(),
		City:       req.City,
		CenterName: req.CenterName,
		CenterLat:  req.CenterLat,
		CenterLng:  req.CenterLng,
		TravelDays: days,
		TravelMode: req.TravelMode,
		Overview:   itinerary.Overview,
		DailyPlans: itinerary.DailyPlans,
	}
	if req.usesDates() {
		result.StartDate = req.StartDate.Format("2006-01-02")
		result.EndDate = req.EndDate.Format("2006-01-02")
	}
	return result, nil
}

// checkCoordinates logs POIs with out-of-range coordinates. Values are kept
// as-is; downstream consumers only display them.
func checkCoordinates(it *Itinerary) {
	for _, plan := range it.DailyPlans {
		for _, poi := range plan.PoiList {
			if poi.Latitude < -90 || poi.Latitude > 90 || poi.Longitude < -180 || poi.Longitude > 180 {
				log.Printf("planner: POI %q has out-of-range coordinates (%v, %v)", poi.Name, poi.Latitude, poi.Longitude)
			}
		}
	}
}
