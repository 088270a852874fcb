// Package vision estimates meal nutrition from photos via an
// LLM messages API with image input.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	defaultModel   = "claude-3-5-sonnet-20241022"
	apiVersion     = "2023-06-01"
)

var ErrNotConfigured = errors.New("vision client not configured")

// MealAnalysis is the model's nutrition estimate for one photo. Nil
// fields could not be parsed out of the response.
type MealAnalysis struct {
	DetectedName *string
	Calories     *float64
	Protein      *float64
	Fat          *float64
	Carbs        *float64
	Fiber        *float64
	Sugar        *float64
	Sodium       *float64
	HealthScore  *float64
}

type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

func (c *Client) Configured() bool {
	return c != nil && strings.TrimSpace(c.APIKey) != ""
}

const systemPrompt = "You are an expert nutrition assistant. Analyze food photos and estimate " +
	"nutritional values accurately. Always respond with valid JSON only, no additional text or markdown."

const userPrompt = `Analyze this food photo and estimate the complete nutritional content. Respond ONLY with a JSON object in this exact format:
{"name": "dish name", "calories": number, "protein": number, "fat": number, "carbs": number, "fiber": number, "sugar": number, "sodium": number, "health_score": number}
Rules:
- Values should be per portion shown in the photo
- calories in kcal, protein/fat/carbs/fiber/sugar in grams, sodium in mg
- health_score: 0-3 unhealthy, 4-6 moderate, 7-10 healthy
- If uncertain, use 0`

// AnalyzeMealPhoto sends the image to the model and parses its JSON
// estimate. The hint, when present, is the user's own name for the dish.
func (c *Client) AnalyzeMealPhoto(ctx context.Context, image []byte, mimeType string, hint *string) (MealAnalysis, error) {
	if !c.Configured() {
		return MealAnalysis{}, ErrNotConfigured
	}

	prompt := userPrompt
	if hint != nil && strings.TrimSpace(*hint) != "" {
		prompt += fmt.Sprintf("\n\nHint: the dish might be %q", strings.TrimSpace(*hint))
	}

	request := messagesRequest{
		Model:     c.model(),
		MaxTokens: 512,
		System:    systemPrompt,
		Messages: []message{{
			Role: "user",
			Content: []contentBlock{
				{Type: "text", Text: prompt},
				{Type: "image", Source: &imageSource{
					Type:      "base64",
					MediaType: normalizeMimeType(mimeType),
					Data:      base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	text, err := c.complete(ctx, request)
	if err != nil {
		return MealAnalysis{}, err
	}

	raw, ok := extractJSON(text)
	if !ok {
		return MealAnalysis{}, fmt.Errorf("no JSON object in model response")
	}

	analysis := MealAnalysis{
		DetectedName: stringField(raw, "name"),
		Calories:     numberField(raw, "calories"),
		Protein:      numberField(raw, "protein"),
		Fat:          numberField(raw, "fat"),
		Carbs:        numberField(raw, "carbs"),
		Fiber:        numberField(raw, "fiber"),
		Sugar:        numberField(raw, "sugar"),
		Sodium:       numberField(raw, "sodium"),
		HealthScore:  numberField(raw, "health_score"),
	}
	if analysis.DetectedName == nil {
		analysis.DetectedName = hint
	}
	return analysis, nil
}

func (c *Client) complete(ctx context.Context, request messagesRequest) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("encode vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute vision request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read vision response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("vision request failed with status %d", resp.StatusCode)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode vision response: %w", err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty vision response")
}

func (c *Client) model() string {
	if strings.TrimSpace(c.Model) != "" {
		return c.Model
	}
	return defaultModel
}

func normalizeMimeType(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/png":
		return "image/png"
	case "image/webp":
		return "image/webp"
	case "image/heic", "image/heif":
		return "image/heic"
	default:
		return "image/jpeg"
	}
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON pulls the first decodable JSON object out of free text;
// models sometimes wrap the object in prose or code fences.
func extractJSON(text string) (map[string]json.RawMessage, bool) {
	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return nil, false
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, false
	}
	return raw, true
}

func stringField(raw map[string]json.RawMessage, key string) *string {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &text
}

// numberField tolerates both JSON numbers and numbers quoted as strings.
func numberField(raw map[string]json.RawMessage, key string) *float64 {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	var number float64
	if err := json.Unmarshal(value, &number); err == nil {
		return &number
	}
	var text string
	if err := json.Unmarshal(value, &text); err != nil {
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil
	}
	return &parsed
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}
