package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
)

func postJSON(t *testing.T, target string, payload any, bearer string) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return authedRequest(t, http.MethodPost, target, bytes.NewReader(body), bearer)
}

func TestOnboardingFlow(t *testing.T) {
	t.Parallel()

	app, handler, repos := newTestApp(t, testConfig())
	user := createAPIUser(t, repos, "onboarding@example.com")
	bearer := userBearer(t, handler, user.ID)

	// No profile yet.
	response, err := app.Test(authedRequest(t, http.MethodGet, "/api/v1/onboarding", nil, bearer), -1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("empty profile status = %d, want 404", response.StatusCode)
	}

	payload := map[string]any{
		"gender":            "male",
		"workout_frequency": "3-5",
		"height_cm":         180,
		"weight_kg":         80,
		"birth_date":        "1995-03-10",
		"goal":              "lose",
	}
	body, _ := json.Marshal(payload)
	response, err = app.Test(authedRequest(t, http.MethodPut, "/api/v1/onboarding", bytes.NewReader(body), bearer), -1)
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d, want 200", response.StatusCode)
	}

	var saved onboardingResponse
	if err := json.NewDecoder(response.Body).Decode(&saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.BMR == nil || saved.TDEE == nil || saved.TargetCalories == nil {
		t.Fatalf("derived targets missing: %+v", saved)
	}
	if *saved.TargetCalories >= *saved.TDEE {
		t.Errorf("lose goal target %v not below tdee %v", *saved.TargetCalories, *saved.TDEE)
	}

	// Unknown enum values are rejected.
	bad, _ := json.Marshal(map[string]any{"goal": "bulk"})
	response, err = app.Test(authedRequest(t, http.MethodPut, "/api/v1/onboarding", bytes.NewReader(bad), bearer), -1)
	if err != nil {
		t.Fatalf("bad put failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid goal status = %d, want 400", response.StatusCode)
	}
}

func TestWaterLogging(t *testing.T) {
	t.Parallel()

	app, handler, repos := newTestApp(t, testConfig())
	user := createAPIUser(t, repos, "water@example.com")
	bearer := userBearer(t, handler, user.ID)

	response, err := app.Test(postJSON(t, "/api/v1/water", map[string]any{"amount_ml": 250}, bearer), -1)
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", response.StatusCode)
	}

	var entry entryResponse
	if err := json.NewDecoder(response.Body).Decode(&entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.Kind != "water" || entry.AmountML == nil || *entry.AmountML != 250 {
		t.Errorf("entry = %+v, want water 250ml", entry)
	}

	response, err = app.Test(postJSON(t, "/api/v1/water", map[string]any{"amount_ml": 0}, bearer), -1)
	if err != nil {
		t.Fatalf("zero post failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero amount status = %d, want 400", response.StatusCode)
	}
}

func TestWeightAndProgressFlow(t *testing.T) {
	t.Parallel()

	app, handler, repos := newTestApp(t, testConfig())
	user := createAPIUser(t, repos, "progress@example.com")
	bearer := userBearer(t, handler, user.ID)

	response, err := app.Test(postJSON(t, "/api/v1/progress/weight", map[string]any{"weight_kg": 80.5}, bearer), -1)
	if err != nil {
		t.Fatalf("post weight failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("weight status = %d, want 201", response.StatusCode)
	}

	response, err = app.Test(authedRequest(t, http.MethodGet, "/api/v1/progress/weight/history", nil, bearer), -1)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	defer response.Body.Close()
	var history []weightLogResponse
	if err := json.NewDecoder(response.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 1 || history[0].WeightKG != 80.5 {
		t.Fatalf("history = %+v, want one 80.5 entry", history)
	}

	dataResponse, err := app.Test(authedRequest(t, http.MethodGet, "/api/v1/progress/data", nil, bearer), -1)
	if err != nil {
		t.Fatalf("progress data failed: %v", err)
	}
	defer dataResponse.Body.Close()
	if dataResponse.StatusCode != http.StatusOK {
		t.Fatalf("progress data status = %d, want 200", dataResponse.StatusCode)
	}

	var data struct {
		StreakCount  int              `json:"streak_count"`
		BadgesCount  int64            `json:"badges_count"`
		CalorieStats []map[string]any `json:"calorie_stats"`
	}
	if err := json.NewDecoder(dataResponse.Body).Decode(&data); err != nil {
		t.Fatalf("decode progress data: %v", err)
	}
	if len(data.CalorieStats) != 4 {
		t.Errorf("calorie_stats length = %d, want 4 weekly periods", len(data.CalorieStats))
	}
	// A first weigh-in unlocks the scale badge via the evaluation hook.
	if data.BadgesCount < 1 {
		t.Errorf("badges_count = %d, want at least the first weigh-in badge", data.BadgesCount)
	}
}

func TestBadgesEndpoint(t *testing.T) {
	t.Parallel()

	app, handler, repos := newTestApp(t, testConfig())
	user := createAPIUser(t, repos, "badges@example.com")
	bearer := userBearer(t, handler, user.ID)

	response, err := app.Test(authedRequest(t, http.MethodGet, "/api/v1/badges", nil, bearer), -1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", response.StatusCode)
	}

	var listing struct {
		Badges      []map[string]any `json:"badges"`
		TotalEarned int              `json:"total_earned"`
		NewBadgeIDs []string         `json:"new_badge_ids"`
	}
	if err := json.NewDecoder(response.Body).Decode(&listing); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listing.Badges) == 0 {
		t.Fatal("catalogue came back empty")
	}
	if listing.TotalEarned != 0 {
		t.Errorf("total_earned = %d, want 0 for a fresh account", listing.TotalEarned)
	}

	seenResponse, err := app.Test(postJSON(t, "/api/v1/badges/seen", map[string]any{}, bearer), -1)
	if err != nil {
		t.Fatalf("seen failed: %v", err)
	}
	seenResponse.Body.Close()
	if seenResponse.StatusCode != http.StatusNoContent {
		t.Fatalf("seen status = %d, want 204", seenResponse.StatusCode)
	}
}

func TestMealEndpointsWithoutStorage(t *testing.T) {
	t.Parallel()

	app, handler, repos := newTestApp(t, testConfig())
	user := createAPIUser(t, repos, "nostorage@example.com")
	bearer := userBearer(t, handler, user.ID)

	// Uploads are unavailable until object storage is configured.
	response, err := app.Test(postJSON(t, "/api/v1/meals", map[string]any{}, bearer), -1)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("upload status = %d, want 503", response.StatusCode)
	}

	// Corrections against a missing entry 404.
	body, _ := json.Marshal(map[string]any{"calories": 500})
	request := authedRequest(t, http.MethodPatch, "/api/v1/meals/999", bytes.NewReader(body), bearer)
	patchResponse, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	patchResponse.Body.Close()
	if patchResponse.StatusCode != http.StatusNotFound {
		t.Fatalf("patch status = %d, want 404", patchResponse.StatusCode)
	}
}

func TestMeAndDeleteAccount(t *testing.T) {
	t.Parallel()

	app, handler, repos := newTestApp(t, testConfig())
	user := createAPIUser(t, repos, "me@example.com")
	bearer := userBearer(t, handler, user.ID)

	response, err := app.Test(authedRequest(t, http.MethodGet, "/api/v1/auth/me", nil, bearer), -1)
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d, want 200", response.StatusCode)
	}
	var me struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(response.Body).Decode(&me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Email != "me@example.com" {
		t.Errorf("email = %q, want me@example.com", me.Email)
	}

	deleteResponse, err := app.Test(authedRequest(t, http.MethodDelete, "/api/v1/auth/account", nil, bearer), -1)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	deleteResponse.Body.Close()
	if deleteResponse.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", deleteResponse.StatusCode)
	}

	// The token dies with the account.
	afterResponse, err := app.Test(authedRequest(t, http.MethodGet, "/api/v1/auth/me", nil, bearer), -1)
	if err != nil {
		t.Fatalf("me after delete failed: %v", err)
	}
	afterResponse.Body.Close()
	if afterResponse.StatusCode != http.StatusUnauthorized {
		t.Fatalf("me after delete status = %d, want 401", afterResponse.StatusCode)
	}
}
