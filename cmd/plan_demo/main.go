// README: One-shot demo; generates a real travel plan against the configured provider.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"tripgen/internal/llm"
	"tripgen/internal/modules/planner"
)

func main() {
	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		log.Fatal("LLM_API_KEY environment variable not set")
	}

	ctx := context.Background()

	var completer planner.Completer
	if os.Getenv("TRIPGEN_LLM_PROVIDER") == "gemini" {
		client, err := llm.NewGeminiClient(ctx, llm.Options{APIKey: apiKey})
		if err != nil {
			log.Fatalf("Failed to initialize Gemini: %v", err)
		}
		defer client.Close()
		completer = client
	} else {
		completer = llm.NewKimiClient(llm.Options{APIKey: apiKey, Temperature: 0.7})
	}

	svc := planner.NewService(completer)

	req := &planner.TripRequest{
		City:       "北京",
		CenterName: "天安门",
		Days:       2,
		TravelMode: planner.ModeWalking,
		ScenicSpots: []planner.PointOfInterest{
			{Name: "故宫博物院", Address: "北京市东城区景山前街4号", Latitude: 39.916345, Longitude: 116.397155},
		},
	}

	result, err := svc.GeneratePlan(ctx, req)
	if err != nil {
		log.Fatalf("Error generating plan: %v", err)
	}

	fmt.Printf("Plan ID: %s\n", result.PlanID)
	fmt.Printf("Overview: %s\n", result.Overview)
	out, _ := json.MarshalIndent(result.DailyPlans, "", "  ")
	fmt.Println(string(out))
}
