// README: Plan handler tests with a stub completion provider.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tripgen/internal/http/handlers"
	"tripgen/internal/modules/planner"
)

const stubPlanJSON = `{
  "overview": "北京三日游",
  "daily_plans": [
    {"day": 1, "description": "第一天", "poi_list": [
      {"name": "故宫", "address": "景山前街4号", "latitude": 39.9, "longitude": 116.4, "description": "皇宫", "recommended_duration": "3小时"}
    ]}
  ]
}`

// stubCompleter is a test double for the completion collaborator.
type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return s.reply, s.err
}

func buildTestRouter(stub *stubCompleter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewPlanHandler(planner.NewService(stub), nil, nil)
	r := gin.New()
	r.POST("/api/generate-plan", h.Generate)
	return r
}

func doRequest(r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/api/generate-plan", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestGenerate_Success verifies the happy path returns an itinerary with a
// plan ID and echoed request fields.
func TestGenerate_Success(t *testing.T) {
	r := buildTestRouter(&stubCompleter{reply: stubPlanJSON})
	w := doRequest(r, map[string]any{
		"city":        "北京",
		"center_name": "天安门",
		"travel_days": 3,
		"travel_mode": "walking",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		PlanID     string `json:"plan_id"`
		City       string `json:"city"`
		TravelDays int    `json:"travel_days"`
		Overview   string `json:"overview"`
		DailyPlans []struct {
			Day int `json:"day"`
		} `json:"daily_plans"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PlanID == "" {
		t.Error("missing plan_id")
	}
	if resp.City != "北京" || resp.TravelDays != 3 {
		t.Errorf("request fields not echoed: %+v", resp)
	}
	if resp.Overview == "" || len(resp.DailyPlans) == 0 {
		t.Errorf("itinerary content missing: %s", w.Body.String())
	}
}

// TestGenerate_DateRange verifies the date-range variant assigns dates to
// recovered daily plans.
func TestGenerate_DateRange(t *testing.T) {
	r := buildTestRouter(&stubCompleter{reply: stubPlanJSON})
	w := doRequest(r, map[string]any{
		"center_name": "外滩",
		"start_date":  "2026-05-01",
		"end_date":    "2026-05-03",
		"travel_mode": "transit",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		StartDate  string `json:"start_date"`
		DailyPlans []struct {
			Date string `json:"date"`
		} `json:"daily_plans"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.StartDate != "2026-05-01" {
		t.Errorf("start date not echoed: %+v", resp)
	}
	if len(resp.DailyPlans) == 0 || resp.DailyPlans[0].Date != "2026-05-01" {
		t.Errorf("daily plan dates not assigned: %+v", resp.DailyPlans)
	}
}

// TestGenerate_BadRequests verifies transport-level validation failures.
func TestGenerate_BadRequests(t *testing.T) {
	r := buildTestRouter(&stubCompleter{reply: stubPlanJSON})

	cases := map[string]map[string]any{
		"missing center":  {"travel_days": 3},
		"zero days":       {"center_name": "x"},
		"bad travel mode": {"center_name": "x", "travel_days": 2, "travel_mode": "teleport"},
		"bad start date":  {"center_name": "x", "start_date": "05/01/2026", "end_date": "2026-05-03"},
	}
	for name, body := range cases {
		if w := doRequest(r, body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w.Code)
		}
	}
}

// TestGenerate_UnparsableResponse verifies cascade exhaustion maps to the
// generic generation-failure response.
func TestGenerate_UnparsableResponse(t *testing.T) {
	r := buildTestRouter(&stubCompleter{reply: "抱歉，我无法生成计划。"})
	w := doRequest(r, map[string]any{
		"center_name": "天安门",
		"travel_days": 2,
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("itinerary generation failed")) {
		t.Errorf("expected generic failure message, got %s", w.Body.String())
	}
}
