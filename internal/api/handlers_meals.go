package api

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/caloriesapp/backend/internal/models"
	"github.com/caloriesapp/backend/internal/services"
	"github.com/caloriesapp/backend/internal/storage"
)

const maxUploadBytes = 15 << 20

type entryResponse struct {
	ID             uint     `json:"id"`
	Kind           string   `json:"kind"`
	Name           string   `json:"name"`
	OccurredAt     string   `json:"occurred_at"`
	Barcode        *string  `json:"barcode,omitempty"`
	Calories       *float64 `json:"calories"`
	Protein        *float64 `json:"protein"`
	Fat            *float64 `json:"fat"`
	Carbs          *float64 `json:"carbs"`
	Fiber          *float64 `json:"fiber"`
	Sugar          *float64 `json:"sugar"`
	Sodium         *float64 `json:"sodium"`
	HealthScore    *float64 `json:"health_score"`
	AmountML       *int     `json:"amount_ml,omitempty"`
	AnalysisStatus string   `json:"analysis_status,omitempty"`
}

// UploadMeal accepts a multipart photo, stores it, and runs vision
// analysis inline. The entry is persisted even when analysis fails so
// the user can correct values by hand.
func (handler *Handler) UploadMeal(c *fiber.Ctx) error {
	if handler.objects == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "photo storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "missing file")
	}
	if fileHeader.Size > maxUploadBytes {
		return apiError(c, fiber.StatusRequestEntityTooLarge, "file too large")
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return apiError(c, fiber.StatusUnsupportedMediaType, "expected an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "unreadable file")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "unreadable file")
	}

	userID := currentUser(c).ID
	occurredAt := parseTimeForm(c.FormValue("occurred_at"))
	barcode := optionalFormValue(c.FormValue("barcode"))
	mealName := optionalFormValue(c.FormValue("meal_name"))

	key := storage.NewObjectKey(userID, fileHeader.Filename)
	if err := handler.objects.Upload(c.Context(), key, mimeType, data); err != nil {
		return apiError(c, fiber.StatusBadGateway, "photo upload failed")
	}

	entry, err := handler.entries.LogMeal(userID, services.PhotoMeta{
		ObjectKey: key,
		FileName:  fileHeader.Filename,
		FileSize:  fileHeader.Size,
		MimeType:  mimeType,
	}, occurredAt, barcode, mealName)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save entry")
	}

	status := "skipped"
	if handler.analyzer.Configured() {
		analysis, analysisErr := handler.analyzer.AnalyzeMealPhoto(c.Context(), data, mimeType, mealName)
		if analysisErr != nil {
			status = "failed"
		} else {
			entry, err = handler.entries.ApplyEstimate(userID, entry.ID, services.NutrientEstimate{
				DetectedName: analysis.DetectedName,
				Calories:     analysis.Calories,
				Protein:      analysis.Protein,
				Fat:          analysis.Fat,
				Carbs:        analysis.Carbs,
				Fiber:        analysis.Fiber,
				Sugar:        analysis.Sugar,
				Sodium:       analysis.Sodium,
				HealthScore:  analysis.HealthScore,
			})
			if err != nil {
				return apiError(c, fiber.StatusInternalServerError, "failed to save analysis")
			}
			status = "ok"
		}

		if status == "ok" {
			// Fresh meals can unlock activity badges right away; a grant
			// failure must not fail the upload.
			_, _ = handler.badges.EvaluateAndGrant(userID)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry, status))
}

func (handler *Handler) ListMeals(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	entries, err := handler.entries.RecentMeals(currentUser(c).ID, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load meals")
	}

	response := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, toEntryResponse(entry, ""))
	}
	return c.JSON(response)
}

func (handler *Handler) GetMeal(c *fiber.Ctx) error {
	entry, err := handler.findEntry(c)
	if err != nil {
		return err
	}
	return c.JSON(toEntryResponse(entry, ""))
}

// MealPhotoURL returns a short-lived direct download link.
func (handler *Handler) MealPhotoURL(c *fiber.Ctx) error {
	if handler.objects == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "photo storage is not configured")
	}
	entry, err := handler.findEntry(c)
	if err != nil {
		return err
	}
	if entry.ObjectKey == "" {
		return apiError(c, fiber.StatusNotFound, "entry has no photo")
	}

	link, err := handler.objects.PresignedURL(c.Context(), entry.ObjectKey, 15*time.Minute)
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "failed to sign photo link")
	}
	return c.JSON(fiber.Map{"url": link})
}

type correctionPayload struct {
	MealName   *string  `json:"meal_name"`
	OccurredAt *string  `json:"occurred_at"`
	Calories   *float64 `json:"calories"`
	Protein    *float64 `json:"protein"`
	Fat        *float64 `json:"fat"`
	Carbs      *float64 `json:"carbs"`
	Fiber      *float64 `json:"fiber"`
	Sugar      *float64 `json:"sugar"`
	Sodium     *float64 `json:"sodium"`
}

// CorrectMeal overwrites entry values with the user's own numbers.
func (handler *Handler) CorrectMeal(c *fiber.Ctx) error {
	entryID, err := entryIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	var payload correctionPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	correction := services.EntryCorrection{
		MealName: payload.MealName,
		Calories: payload.Calories,
		Protein:  payload.Protein,
		Fat:      payload.Fat,
		Carbs:    payload.Carbs,
		Fiber:    payload.Fiber,
		Sugar:    payload.Sugar,
		Sodium:   payload.Sodium,
	}
	if payload.OccurredAt != nil {
		occurredAt, parseErr := time.Parse(time.RFC3339, *payload.OccurredAt)
		if parseErr != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid occurred_at")
		}
		correction.OccurredAt = &occurredAt
	}

	entry, err := handler.entries.Correct(currentUser(c).ID, entryID, correction)
	if errors.Is(err, services.ErrEntryNotFound) {
		return apiError(c, fiber.StatusNotFound, "entry not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update entry")
	}
	return c.JSON(toEntryResponse(entry, ""))
}

func (handler *Handler) DeleteMeal(c *fiber.Ctx) error {
	entryID, err := entryIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	entry, err := handler.entries.Delete(currentUser(c).ID, entryID)
	if errors.Is(err, services.ErrEntryNotFound) {
		return apiError(c, fiber.StatusNotFound, "entry not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete entry")
	}

	if handler.objects != nil && entry.ObjectKey != "" {
		// Entry removal wins; an orphaned photo is acceptable.
		_ = handler.objects.Delete(c.Context(), entry.ObjectKey)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type waterPayload struct {
	AmountML   int     `json:"amount_ml"`
	OccurredAt *string `json:"occurred_at"`
}

func (handler *Handler) LogWater(c *fiber.Ctx) error {
	var payload waterPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if payload.AmountML <= 0 {
		return apiError(c, fiber.StatusBadRequest, "amount_ml must be positive")
	}

	var occurredAt *time.Time
	if payload.OccurredAt != nil {
		parsed, err := time.Parse(time.RFC3339, *payload.OccurredAt)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid occurred_at")
		}
		occurredAt = &parsed
	}

	entry, err := handler.entries.LogWater(currentUser(c).ID, payload.AmountML, occurredAt)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save entry")
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry, ""))
}

func (handler *Handler) findEntry(c *fiber.Ctx) (models.LoggedEntry, error) {
	entryID, err := entryIDParam(c)
	if err != nil {
		return models.LoggedEntry{}, apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}
	entry, err := handler.entries.Get(currentUser(c).ID, entryID)
	if errors.Is(err, services.ErrEntryNotFound) {
		return models.LoggedEntry{}, apiError(c, fiber.StatusNotFound, "entry not found")
	}
	if err != nil {
		return models.LoggedEntry{}, apiError(c, fiber.StatusInternalServerError, "failed to load entry")
	}
	return entry, nil
}

func entryIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

func toEntryResponse(entry models.LoggedEntry, analysisStatus string) entryResponse {
	return entryResponse{
		ID:             entry.ID,
		Kind:           entry.Kind,
		Name:           entry.DisplayName(),
		OccurredAt:     entry.OccurredAt.UTC().Format(time.RFC3339),
		Barcode:        entry.Barcode,
		Calories:       entry.Calories,
		Protein:        entry.Protein,
		Fat:            entry.Fat,
		Carbs:          entry.Carbs,
		Fiber:          entry.Fiber,
		Sugar:          entry.Sugar,
		Sodium:         entry.Sodium,
		HealthScore:    services.NormalizeHealthScore(entry.RawHealthScore),
		AmountML:       entry.AmountML,
		AnalysisStatus: analysisStatus,
	}
}

func parseTimeForm(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &parsed
}

func optionalFormValue(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
