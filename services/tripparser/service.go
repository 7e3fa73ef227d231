package tripparser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	flightTypes "flight-booking/types/flight"

	"google.golang.org/genai"
)

// Service turns a free-text trip request ("cheap flight from Boston to Paris
// next Friday for two") into a structured flight search query using the
// Gemini API.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Parse extracts a structured search query from the given text.
func (s *Service) Parse(ctx context.Context, query string) (*flightTypes.SearchRequest, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := fmt.Sprintf(`Extract a flight search query from the traveller's request below. Return ONLY valid JSON.

Today's date is %s. Resolve relative dates ("tomorrow", "next Friday") against it.
Use IATA 3-letter airport codes for origin and destination (pick the city's main
airport when only a city is named). If a field is missing or unclear, use an
empty string ("") for strings and 0 for numbers.

Required JSON format:
{
"origin": string,          // 3-letter IATA code
"destination": string,     // 3-letter IATA code
"departure_date": string,  // YYYY-MM-DD
"return_date": string,     // YYYY-MM-DD, empty for one-way
"passengers": number,      // traveller count, 0 if not stated
"cabin_class": string      // economy, business or first; empty if not stated
}

Traveller's request: %q`, time.Now().Format("2006-01-02"), query)

	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	jsonText := extractJSONFromMarkdown(responseText)

	var parsed flightTypes.SearchRequest
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}

	if err := parsed.Validate(); err != nil {
		return nil, fmt.Errorf("model produced an incomplete query: %w", err)
	}

	return &parsed, nil
}

// extractJSONFromMarkdown extracts JSON content from markdown code blocks
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			return strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	return text
}
