package utils

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"voyage/internal/models/response_models"
)

// SuggestionRequest is what the AI provider is asked to plan for.
type SuggestionRequest struct {
	Destination  string
	Budget       float64
	DurationDays int
	Adults       int
	Children     int
}

func (r SuggestionRequest) Travelers() int {
	adults := r.Adults
	if adults < 1 {
		adults = 1
	}
	return adults + r.Children
}

// CacheKey identifies equivalent requests.
func (r SuggestionRequest) CacheKey() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%.2f|%d|%d|%d", strings.ToLower(strings.TrimSpace(r.Destination)), r.Budget, r.DurationDays, r.Adults, r.Children)
	return fmt.Sprintf("suggestions:%x", h.Sum(nil))[:28]
}

const suggestionSchema = `{
  "summary": "Brief summary of the trip vibe",
  "estimated_accommodation_cost": 0,
  "estimated_transport_cost": 0,
  "suggested_activities": [
    {"day": 1, "time": "14:30", "location": "Name of specific place", "cost": 0, "notes": "Description"}
  ]
}`

func BuildSuggestionPrompt(r SuggestionRequest) string {
	var prompt strings.Builder

	fmt.Fprintf(&prompt, "Plan a %d-day trip to %s.\n", r.DurationDays, r.Destination)
	fmt.Fprintf(&prompt, "Budget: %.2f (total for the whole group).\n", r.Budget)
	fmt.Fprintf(&prompt, "Travelers: %d adults, %d children.\n\n", max(r.Adults, 1), r.Children)
	fmt.Fprintf(&prompt, "Give realistic estimated costs based on typical tourist prices for a group of %d people.\n", r.Travelers())
	prompt.WriteString("- \"cost\" of each activity is the total for the entire group.\n")
	fmt.Fprintf(&prompt, "- \"estimated_accommodation_cost\" is the total for %d days.\n", r.DurationDays)
	prompt.WriteString("- \"estimated_transport_cost\" is the total for local travel.\n")
	fmt.Fprintf(&prompt, "- \"day\" is between 1 and %d; \"time\" is HH:MM in 24-hour format.\n\n", r.DurationDays)
	prompt.WriteString("Return JSON only, matching this schema exactly:\n")
	prompt.WriteString(suggestionSchema)

	return prompt.String()
}

// ParseSuggestionSet decodes provider output. Entries with a day below 1 or a
// negative cost are dropped.
func ParseSuggestionSet(content string) (*response_models.SuggestionSet, error) {
	cleaned := CleanJSONResponse(content)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrUnexpectedBehaviorOfAI)
	}

	var set response_models.SuggestionSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedBehaviorOfAI, err)
	}

	kept := make([]response_models.SuggestedActivity, 0, len(set.SuggestedActivities))
	for _, a := range set.SuggestedActivities {
		if a.Day < 1 || a.Cost < 0 {
			continue
		}
		kept = append(kept, a)
	}
	set.SuggestedActivities = kept
	if set.EstimatedAccommodationCost < 0 {
		set.EstimatedAccommodationCost = 0
	}
	if set.EstimatedTransportCost < 0 {
		set.EstimatedTransportCost = 0
	}
	if set.Summary == "" {
		set.Summary = "Trip summary"
	}
	set.Degraded = false

	return &set, nil
}

// CleanJSONResponse strips markdown fences and any prose around the first JSON object.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	objStart := strings.Index(response, "{")
	if objStart == -1 {
		return response
	}
	if objEnd := findMatchingBrace(response, objStart); objEnd != -1 {
		return response[objStart : objEnd+1]
	}
	return response[objStart:]
}

// findMatchingBrace returns the index of the brace closing the one at start,
// ignoring braces inside string literals.
func findMatchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
