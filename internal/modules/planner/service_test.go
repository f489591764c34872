// README: Plan generation service tests with a stub completion provider.
package planner

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubCompleter is a test double for the external completion collaborator.
type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, system, user string) (string, error) {
	s.calls++
	return s.reply, s.err
}

// TestGeneratePlanSuccess verifies the happy path: recovered itinerary,
// minted plan ID, echoed request fields.
func TestGeneratePlanSuccess(t *testing.T) {
	stub := &stubCompleter{reply: validPlanJSON}
	svc := NewService(stub)

	result, err := svc.GeneratePlan(context.Background(), walkingRequest())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if result.PlanID == "" {
		t.Error("expected a minted plan ID")
	}
	if result.City != "Beijing" || result.CenterName != "Tiananmen" ||
		result.TravelDays != 3 || result.TravelMode != ModeWalking {
		t.Errorf("request fields not echoed: %+v", result)
	}
	if result.Overview == "" || len(result.DailyPlans) == 0 {
		t.Errorf("itinerary content missing: %+v", result)
	}
	if stub.calls != 1 {
		t.Errorf("expected exactly one completion call, got %d", stub.calls)
	}
}

// TestGeneratePlanUniqueIDs verifies each generation mints a fresh identifier.
func TestGeneratePlanUniqueIDs(t *testing.T) {
	svc := NewService(&stubCompleter{reply: validPlanJSON})
	a, err := svc.GeneratePlan(context.Background(), walkingRequest())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	b, err := svc.GeneratePlan(context.Background(), walkingRequest())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if a.PlanID == b.PlanID {
		t.Error("expected distinct plan IDs across requests")
	}
}

// TestGeneratePlanDateMapping verifies the date-range variant maps recovered
// day indices to absolute dates.
func TestGeneratePlanDateMapping(t *testing.T) {
	reply := `{"overview": "两日游", "daily_plans": [
		{"day": 1, "description": "第一天", "poi_list": [{"name": "a", "address": "b", "latitude": 1, "longitude": 2, "description": "c"}]},
		{"day": 2, "description": "第二天", "poi_list": [{"name": "d", "address": "e", "latitude": 3, "longitude": 4, "description": "f"}]}
	]}`
	svc := NewService(&stubCompleter{reply: reply})

	req := &TripRequest{
		CenterName: "外滩",
		StartDate:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		TravelMode: ModeDriving,
	}
	result, err := svc.GeneratePlan(context.Background(), req)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if result.StartDate != "2026-05-01" || result.EndDate != "2026-05-02" {
		t.Errorf("dates not echoed: %+v", result)
	}
	if result.DailyPlans[0].Date != "2026-05-01" || result.DailyPlans[1].Date != "2026-05-02" {
		t.Errorf("day indices not mapped to dates: %+v", result.DailyPlans)
	}
}

// TestGeneratePlanShortResponse verifies a model returning fewer days than
// requested is tolerated, not rejected.
func TestGeneratePlanShortResponse(t *testing.T) {
	svc := NewService(&stubCompleter{reply: validPlanJSON}) // one day
	result, err := svc.GeneratePlan(context.Background(), walkingRequest())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(result.DailyPlans) != 1 {
		t.Errorf("expected the short itinerary passed through, got %d days", len(result.DailyPlans))
	}
}

// TestGeneratePlanInvalidRequest verifies validation fails fast, before any
// completion call.
func TestGeneratePlanInvalidRequest(t *testing.T) {
	stub := &stubCompleter{reply: validPlanJSON}
	svc := NewService(stub)

	req := walkingRequest()
	req.Days = 0
	if _, err := svc.GeneratePlan(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("completion called for invalid request")
	}
}

// TestGeneratePlanUpstreamError verifies transport failures propagate wrapped
// with no retry.
func TestGeneratePlanUpstreamError(t *testing.T) {
	upstream := errors.New("connection refused")
	stub := &stubCompleter{err: upstream}
	svc := NewService(stub)

	_, err := svc.GeneratePlan(context.Background(), walkingRequest())
	if !errors.Is(err, upstream) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("expected a single attempt, got %d", stub.calls)
	}
}

// TestGeneratePlanUnparsableResponse verifies cascade exhaustion surfaces as
// a typed error, never a silent default itinerary.
func TestGeneratePlanUnparsableResponse(t *testing.T) {
	svc := NewService(&stubCompleter{reply: "今天天气不错，适合出门散步。"})
	_, err := svc.GeneratePlan(context.Background(), walkingRequest())
	var unparsable *UnparsableResponseError
	if !errors.As(err, &unparsable) {
		t.Fatalf("expected UnparsableResponseError, got %v", err)
	}
}
