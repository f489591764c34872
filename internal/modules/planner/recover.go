// README: Response recovery engine; parses unreliable model output into an Itinerary.
package planner

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
)

// Fallback literals substituted by the last-resort extractor when a field
// pattern finds nothing.
const (
	fallbackOverview = "未能提取旅游计划概述"
	fallbackName     = "景点"
	fallbackAddress  = "地址未提供"
	fallbackPOIDesc  = "没有描述"
	fallbackDuration = "1小时"
)

var (
	fencedBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

	doubledCommaRe  = regexp.MustCompile(`,\s*,`)
	trailingBraceRe = regexp.MustCompile(`,\s*}`)
	trailingBrackRe = regexp.MustCompile(`,\s*]`)
	missingCommaYRe = regexp.MustCompile(`"\s*{`)
	missingCommaZRe = regexp.MustCompile(`}\s*"`)

	// quotedValue matches a JSON string value allowing escaped characters.
	quotedValue = `"([^"\\]*(?:\\.[^"\\]*)*)"`

	overviewRe = regexp.MustCompile(`"overview"\s*:\s*` + quotedValue)
	dayRe      = regexp.MustCompile(`"day"\s*:\s*(\d+)`)
	poiObjRe   = regexp.MustCompile(`(?s)\{(.*?)\}`)

	poiNameRe     = regexp.MustCompile(`"name"\s*:\s*` + quotedValue)
	poiAddressRe  = regexp.MustCompile(`"address"\s*:\s*` + quotedValue)
	poiLatRe      = regexp.MustCompile(`"latitude"\s*:\s*(-?[\d.]+)`)
	poiLngRe      = regexp.MustCompile(`"longitude"\s*:\s*(-?[\d.]+)`)
	poiDescRe     = regexp.MustCompile(`"description"\s*:\s*` + quotedValue)
	poiDurationRe = regexp.MustCompile(`"recommended_duration"\s*:\s*` + quotedValue)
)

// RecoverItinerary turns raw model output into a structured Itinerary by
// trying a fixed cascade of increasingly permissive strategies. The first
// strategy that yields an itinerary with at least one daily plan wins.
// Parse failures inside a strategy never escape; only total exhaustion
// returns an error, an *UnparsableResponseError carrying the raw text.
func RecoverItinerary(raw string) (*Itinerary, error) {
	// 1. Direct parse: the model obeyed instructions exactly.
	if it, ok := tryParse(raw); ok {
		return it, nil
	}
	log.Printf("planner: direct parse failed, extracting JSON")

	// 2. Fenced code block, with or without a json tag.
	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		if it, ok := tryParse(strings.TrimSpace(m[1])); ok {
			return it, nil
		}
		log.Printf("planner: fenced block parse failed")
	}

	// 3. Brace span: first '{' through last '}'.
	span, hasSpan := braceSpan(raw)
	if hasSpan {
		if it, ok := tryParse(span); ok {
			return it, nil
		}
		log.Printf("planner: brace span parse failed")
	}

	// 4. Textual repair of the brace span, then reparse.
	if hasSpan {
		if it, ok := tryParse(repairJSON(span)); ok {
			return it, nil
		}
		log.Printf("planner: repaired JSON still unparsable")
	}

	// 5. Last resort: field-level extraction straight off the raw text.
	if it, ok := extractByFields(raw); ok {
		log.Printf("planner: itinerary recovered via field extraction; result may be incomplete")
		return it, nil
	}

	return nil, &UnparsableResponseError{Raw: raw}
}

// tryParse unmarshals candidate and applies the minimal structural check:
// a usable itinerary has at least one daily plan.
func tryParse(candidate string) (*Itinerary, bool) {
	var it Itinerary
	if err := json.Unmarshal([]byte(candidate), &it); err != nil {
		return nil, false
	}
	if len(it.DailyPlans) == 0 {
		return nil, false
	}
	return &it, true
}

// braceSpan returns the inclusive substring between the first '{' and the
// last '}' in raw.
func braceSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// repairJSON applies a fixed, one-pass sequence of textual fixes for the
// syntax errors models most often make.
func repairJSON(s string) string {
	s = normalizeQuotes(s)

	// Undo broken escape sequences introduced by the model (or by the quote
	// normalization above).
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\'`, "'")

	s = doubledCommaRe.ReplaceAllString(s, ",")
	s = trailingBraceRe.ReplaceAllString(s, "}")
	s = trailingBrackRe.ReplaceAllString(s, "]")

	s = missingCommaYRe.ReplaceAllString(s, `",{`)
	s = missingCommaZRe.ReplaceAllString(s, `},"`)

	s = strings.ReplaceAll(s, ";", ",")
	return s
}

// normalizeQuotes replaces unescaped single quotes with double quotes.
// A byte scan stands in for the lookbehind `(?<!\\)'`, which RE2 lacks.
func normalizeQuotes(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == '\'' && (i == 0 || b[i-1] != '\\') {
			b[i] = '"'
		}
	}
	return string(b)
}

// extractByFields scans raw with independent per-field patterns instead of
// parsing JSON. Missing fields get documented fallback values. It fails only
// when no "day" key is found anywhere in the text.
func extractByFields(raw string) (*Itinerary, bool) {
	dayMatches := dayRe.FindAllStringSubmatch(raw, -1)
	if len(dayMatches) == 0 {
		return nil, false
	}

	overview := fallbackOverview
	if m := overviewRe.FindStringSubmatch(raw); m != nil {
		overview = m[1]
	}

	var plans []DailyPlan
	for _, dm := range dayMatches {
		day, err := strconv.Atoi(dm[1])
		if err != nil {
			continue
		}

		description := fmt.Sprintf("第%d天行程", day)
		descRe := regexp.MustCompile(fmt.Sprintf(`"day"\s*:\s*%d[^{]*"description"\s*:\s*%s`, day, quotedValue))
		if m := descRe.FindStringSubmatch(raw); m != nil {
			description = m[1]
		}

		var pois []PointOfInterest
		poiListRe := regexp.MustCompile(fmt.Sprintf(`(?s)"day"\s*:\s*%d[^{]*"poi_list"\s*:\s*\[(.*?)\]`, day))
		for _, lm := range poiListRe.FindAllStringSubmatch(raw, -1) {
			for _, om := range poiObjRe.FindAllStringSubmatch(lm[1], -1) {
				pois = append(pois, extractPOI(om[1]))
			}
		}

		plans = append(plans, DailyPlan{
			Day:         day,
			Description: description,
			PoiList:     pois,
		})
	}

	return &Itinerary{Overview: overview, DailyPlans: plans}, true
}

// extractPOI pulls individual POI fields out of one brace-delimited block,
// substituting fallbacks for anything the patterns cannot find.
func extractPOI(block string) PointOfInterest {
	poi := PointOfInterest{
		Name:                fallbackName,
		Address:             fallbackAddress,
		Description:         fallbackPOIDesc,
		RecommendedDuration: fallbackDuration,
	}
	if m := poiNameRe.FindStringSubmatch(block); m != nil {
		poi.Name = m[1]
	}
	if m := poiAddressRe.FindStringSubmatch(block); m != nil {
		poi.Address = m[1]
	}
	if m := poiLatRe.FindStringSubmatch(block); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			poi.Latitude = v
		}
	}
	if m := poiLngRe.FindStringSubmatch(block); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			poi.Longitude = v
		}
	}
	if m := poiDescRe.FindStringSubmatch(block); m != nil {
		poi.Description = m[1]
	}
	if m := poiDurationRe.FindStringSubmatch(block); m != nil {
		poi.RecommendedDuration = m[1]
	}
	return poi
}
