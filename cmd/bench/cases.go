// README: Completion-text samples covering each recovery strategy and total failure.
package main

import (
	"fmt"
	"time"

	"tripgen/internal/modules/planner"
)

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Text string
	// WantDays is the expected daily-plan count; 0 means recovery must fail.
	WantDays int
}

const cleanPlan = `{"overview":"北京两日游","daily_plans":[
  {"day":1,"description":"第一天","poi_list":[{"name":"故宫","address":"景山前街4号","latitude":39.916,"longitude":116.397,"description":"皇宫","recommended_duration":"3小时"}]},
  {"day":2,"description":"第二天","poi_list":[{"name":"颐和园","address":"新建宫门路19号","latitude":39.999,"longitude":116.275,"description":"皇家园林","recommended_duration":"4小时"}]}
]}`

var cases = []TestCase{
	{Name: "clean-json", Text: cleanPlan, WantDays: 2},
	{Name: "fenced-json", Text: "```json\n" + cleanPlan + "\n```", WantDays: 2},
	{Name: "fenced-untagged", Text: "```\n" + cleanPlan + "\n```", WantDays: 2},
	{Name: "leading-prose", Text: "好的，计划如下：\n" + cleanPlan, WantDays: 2},
	{Name: "trailing-prose", Text: cleanPlan + "\n祝您旅途愉快！", WantDays: 2},
	{Name: "single-quotes", Text: `{'overview': '一日游', 'daily_plans': [{'day': 1, 'description': '第一天', 'poi_list': [{'name': '外滩', 'address': '中山东一路', 'latitude': 31.24, 'longitude': 121.49, 'description': '江景', 'recommended_duration': '2小时'}]}]}`, WantDays: 1},
	{Name: "trailing-commas", Text: `{"overview": "一日游", "daily_plans": [{"day": 1, "description": "第一天", "poi_list": [],},]}`, WantDays: 1},
	{Name: "stray-semicolons", Text: `{"overview": "一日游"; "daily_plans": [{"day": 1; "description": "第一天"; "poi_list": []}]}`, WantDays: 1},
	{Name: "broken-braces", Text: `"overview": "残缺计划" "day": 1, "description": "修复日", "poi_list": [ {"name": "博物馆"} ] {{{`, WantDays: 1},
	{Name: "plain-prose", Text: "很抱歉，我无法生成旅游计划。", WantDays: 0},
	{Name: "empty-plans", Text: `{"overview": "空", "daily_plans": []}`, WantDays: 0},
}

func RunAll(cfg Config) []Result {
	results := make([]Result, 0, len(cases))
	for _, tc := range cases {
		results = append(results, runCase(cfg, tc))
	}
	return results
}

func runCase(cfg Config, tc TestCase) Result {
	start := time.Now()
	var it *planner.Itinerary
	var err error
	for i := 0; i < cfg.Iterations; i++ {
		it, err = planner.RecoverItinerary(tc.Text)
	}
	elapsed := time.Since(start) / time.Duration(cfg.Iterations)

	res := Result{Name: tc.Name, Latency: elapsed}
	switch {
	case tc.WantDays == 0 && err != nil:
		res.Status = "PASS"
		res.Note = "failed as expected"
	case tc.WantDays == 0:
		res.Status = "FAIL"
		res.Note = fmt.Sprintf("expected failure, recovered %d days", len(it.DailyPlans))
	case err != nil:
		res.Status = "FAIL"
		res.Note = fmt.Sprintf("unexpected error: %v", err)
	case len(it.DailyPlans) != tc.WantDays:
		res.Status = "FAIL"
		res.Note = fmt.Sprintf("expected %d days, got %d", tc.WantDays, len(it.DailyPlans))
	default:
		res.Status = "PASS"
	}
	return res
}
