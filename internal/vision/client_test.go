package vision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func modelReply(text string) string {
	reply := map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	}
	encoded, _ := json.Marshal(reply)
	return string(encoded)
}

func TestAnalyzeMealPhoto(t *testing.T) {
	t.Parallel()

	var captured struct {
		apiKey  string
		version string
		request messagesRequest
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.apiKey = r.Header.Get("x-api-key")
		captured.version = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&captured.request); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(modelReply(`Here is the estimate:
{"name": "Greek salad", "calories": 320, "protein": 9.5, "fat": 24, "carbs": 18, "fiber": 5, "sugar": 7, "sodium": "850", "health_score": 8}`)))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, APIKey: "test-key"}
	hint := "salad"
	analysis, err := client.AnalyzeMealPhoto(context.Background(), []byte("fake image"), "image/png", &hint)
	if err != nil {
		t.Fatalf("AnalyzeMealPhoto returned error: %v", err)
	}

	if captured.apiKey != "test-key" {
		t.Errorf("x-api-key = %q, want test-key", captured.apiKey)
	}
	if captured.version == "" {
		t.Error("anthropic-version header missing")
	}
	if captured.request.Model != defaultModel {
		t.Errorf("model = %q, want %q", captured.request.Model, defaultModel)
	}
	if len(captured.request.Messages) != 1 || len(captured.request.Messages[0].Content) != 2 {
		t.Fatalf("unexpected message shape: %+v", captured.request.Messages)
	}
	image := captured.request.Messages[0].Content[1]
	if image.Source == nil || image.Source.MediaType != "image/png" {
		t.Errorf("image source = %+v, want base64 image/png", image.Source)
	}

	if analysis.DetectedName == nil || *analysis.DetectedName != "Greek salad" {
		t.Errorf("DetectedName = %v, want Greek salad", analysis.DetectedName)
	}
	if analysis.Calories == nil || *analysis.Calories != 320 {
		t.Errorf("Calories = %v, want 320", analysis.Calories)
	}
	if analysis.Sodium == nil || *analysis.Sodium != 850 {
		t.Errorf("Sodium = %v, want 850 despite being quoted", analysis.Sodium)
	}
	if analysis.HealthScore == nil || *analysis.HealthScore != 8 {
		t.Errorf("HealthScore = %v, want 8", analysis.HealthScore)
	}
}

func TestAnalyzeMealPhotoFallsBackToHint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(modelReply(`{"calories": 500}`)))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, APIKey: "test-key"}
	hint := "pasta"
	analysis, err := client.AnalyzeMealPhoto(context.Background(), []byte("img"), "image/jpeg", &hint)
	if err != nil {
		t.Fatalf("AnalyzeMealPhoto returned error: %v", err)
	}
	if analysis.DetectedName == nil || *analysis.DetectedName != "pasta" {
		t.Errorf("DetectedName = %v, want the hint", analysis.DetectedName)
	}
}

func TestAnalyzeMealPhotoErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "no json in reply", status: http.StatusOK, body: modelReply("I cannot identify this dish.")},
		{name: "empty content", status: http.StatusOK, body: `{"content": []}`},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				w.Write([]byte(test.body))
			}))
			defer server.Close()

			client := &Client{BaseURL: server.URL, APIKey: "test-key"}
			if _, err := client.AnalyzeMealPhoto(context.Background(), []byte("img"), "image/jpeg", nil); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestAnalyzeMealPhotoUnconfigured(t *testing.T) {
	t.Parallel()

	var client *Client
	if client.Configured() {
		t.Error("nil client reported as configured")
	}

	client = &Client{}
	if _, err := client.AnalyzeMealPhoto(context.Background(), nil, "", nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"image/png", "image/png"},
		{"IMAGE/PNG", "image/png"},
		{"image/webp", "image/webp"},
		{"image/heif", "image/heic"},
		{"image/jpeg", "image/jpeg"},
		{"application/octet-stream", "image/jpeg"},
		{"", "image/jpeg"},
	}

	for _, test := range tests {
		if got := normalizeMimeType(test.in); got != test.want {
			t.Errorf("normalizeMimeType(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	raw, ok := extractJSON("```json\n{\"calories\": 100}\n```")
	if !ok {
		t.Fatal("failed to find object in code fence")
	}
	if value := numberField(raw, "calories"); value == nil || *value != 100 {
		t.Errorf("calories = %v, want 100", value)
	}

	if _, ok := extractJSON("no braces here"); ok {
		t.Error("found an object in plain prose")
	}
}
