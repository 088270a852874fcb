package services

import (
	"math"
	"time"

	"github.com/caloriesapp/backend/internal/db"
	"github.com/caloriesapp/backend/internal/models"
)

const (
	WeightStatusGain             = "gain"
	WeightStatusLoss             = "loss"
	WeightStatusNoChange         = "no_change"
	WeightStatusInsufficientData = "insufficient_data"
)

// WeightChange is the delta over one lookback period. ChangeKG is nil
// when fewer than two measurements fall inside the period.
type WeightChange struct {
	Period   string
	ChangeKG *float64
	Status   string
}

type WeightStats struct {
	CurrentWeightKG *float64
	TargetWeightKG  *float64
	StartWeightKG   *float64
	TotalChangeKG   *float64
	Changes         []WeightChange
	History         []models.WeightLog
}

var weightChangePeriods = []struct {
	Name string
	Days int
}{
	{"3_days", 3},
	{"7_days", 7},
	{"14_days", 14},
	{"30_days", 30},
	{"90_days", 90},
}

type WeightService struct {
	weights  *db.WeightLogRepository
	profiles *db.OnboardingRepository
	now      func() time.Time
}

func NewWeightService(weights *db.WeightLogRepository, profiles *db.OnboardingRepository) *WeightService {
	return &WeightService{weights: weights, profiles: profiles, now: time.Now}
}

// AddWeight records a measurement and keeps the onboarding profile's
// current weight in sync with it.
func (service *WeightService) AddWeight(userID uint, weightKG float64, createdAt *time.Time) (models.WeightLog, error) {
	occurred := service.now().UTC()
	if createdAt != nil {
		occurred = createdAt.UTC()
	}

	entry := models.WeightLog{
		UserID:    userID,
		WeightKG:  weightKG,
		CreatedAt: occurred,
	}
	if err := service.weights.Create(&entry); err != nil {
		return models.WeightLog{}, err
	}
	if err := service.profiles.UpdateCurrentWeight(userID, weightKG); err != nil {
		return models.WeightLog{}, err
	}
	return entry, nil
}

func (service *WeightService) History(userID uint, limit int) ([]models.WeightLog, error) {
	return service.weights.ListRecent(userID, limit)
}

// Stats summarizes the weight trajectory: per-period changes with a
// 0.1 kg deadband, the all-time change, and the last 90 days of history
// for charting.
func (service *WeightService) Stats(userID uint) (WeightStats, error) {
	profile, hasProfile, err := service.profiles.FindByUser(userID)
	if err != nil {
		return WeightStats{}, err
	}

	allWeights, err := service.weights.ListByUserAsc(userID)
	if err != nil {
		return WeightStats{}, err
	}

	stats := WeightStats{}
	if hasProfile {
		stats.CurrentWeightKG = profile.WeightKG
		stats.TargetWeightKG = profile.TargetWeightKG
	}
	if len(allWeights) > 0 {
		stats.StartWeightKG = &allWeights[0].WeightKG
	} else {
		stats.StartWeightKG = stats.CurrentWeightKG
	}
	if stats.StartWeightKG != nil && stats.CurrentWeightKG != nil {
		total := *stats.CurrentWeightKG - *stats.StartWeightKG
		stats.TotalChangeKG = &total
	}

	now := service.now().UTC()
	for _, period := range weightChangePeriods {
		cutoff := now.AddDate(0, 0, -period.Days)
		stats.Changes = append(stats.Changes, changeOverWindow(period.Name, windowOf(allWeights, cutoff)))
	}
	stats.Changes = append(stats.Changes, changeOverWindow("all_time", allWeights))

	ninetyDaysAgo := now.AddDate(0, 0, -90)
	stats.History = windowOf(allWeights, ninetyDaysAgo)
	return stats, nil
}

func windowOf(logs []models.WeightLog, cutoff time.Time) []models.WeightLog {
	filtered := make([]models.WeightLog, 0, len(logs))
	for _, entry := range logs {
		if !entry.CreatedAt.Before(cutoff) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func changeOverWindow(periodName string, logs []models.WeightLog) WeightChange {
	if len(logs) < 2 {
		return WeightChange{Period: periodName, Status: WeightStatusInsufficientData}
	}

	change := logs[len(logs)-1].WeightKG - logs[0].WeightKG
	change = math.Round(change*10) / 10

	status := WeightStatusNoChange
	switch {
	case math.Abs(change) < 0.1:
		status = WeightStatusNoChange
	case change > 0:
		status = WeightStatusGain
	default:
		status = WeightStatusLoss
	}
	return WeightChange{Period: periodName, ChangeKG: &change, Status: status}
}
