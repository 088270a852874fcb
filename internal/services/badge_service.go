package services

import (
	"time"

	"github.com/caloriesapp/backend/internal/db"
	"github.com/caloriesapp/backend/internal/models"
)

// BadgeStatus is a catalogue entry combined with the user's progress.
type BadgeStatus struct {
	BadgeDefinition
	Earned   bool
	EarnedAt *time.Time
	Seen     bool
}

type BadgeService struct {
	users   *db.UserRepository
	entries *db.EntryRepository
	weights *db.WeightLogRepository
	badges  *db.BadgeRepository
}

func NewBadgeService(repos *db.Repositories) *BadgeService {
	return &BadgeService{
		users:   repos.Users,
		entries: repos.Entries,
		weights: repos.WeightLogs,
		badges:  repos.Badges,
	}
}

// Stats gathers the counters badge eligibility runs against.
func (service *BadgeService) Stats(userID uint) (UserStats, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return UserStats{}, err
	}

	meals, err := service.entries.CountMeals(userID)
	if err != nil {
		return UserStats{}, err
	}
	uniqueMeals, err := service.entries.CountDistinctMealNames(userID)
	if err != nil {
		return UserStats{}, err
	}
	healthyMeals, err := service.entries.CountHealthyMeals(userID, 8)
	if err != nil {
		return UserStats{}, err
	}
	weightLogs, err := service.weights.Count(userID)
	if err != nil {
		return UserStats{}, err
	}
	earned, err := service.badges.Count(userID)
	if err != nil {
		return UserStats{}, err
	}

	return UserStats{
		StreakCount:       user.StreakCount,
		MealsCount:        meals,
		UniqueMealsCount:  uniqueMeals,
		HealthyMealsCount: healthyMeals,
		WeightLogsCount:   weightLogs,
		EarnedBadgesCount: earned,
	}, nil
}

// EvaluateAndGrant awards every catalogue badge whose condition the
// user's current stats satisfy, and returns the freshly granted ones.
// The collector badges chain off the earned count, so the count is
// refreshed after each grant.
func (service *BadgeService) EvaluateAndGrant(userID uint) ([]models.UserBadge, error) {
	stats, err := service.Stats(userID)
	if err != nil {
		return nil, err
	}

	owned, err := service.badges.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	ownedIDs := make(map[string]struct{}, len(owned))
	for _, badge := range owned {
		ownedIDs[badge.BadgeID] = struct{}{}
	}

	var granted []models.UserBadge
	for _, definition := range BadgeCatalog {
		if definition.Eligible == nil {
			continue
		}
		if _, ok := ownedIDs[definition.ID]; ok {
			continue
		}
		if !definition.Eligible(stats) {
			continue
		}
		badge := models.UserBadge{
			UserID:   userID,
			BadgeID:  definition.ID,
			Category: definition.Category,
			EarnedAt: time.Now().UTC(),
		}
		if err := service.badges.Grant(&badge); err != nil {
			return nil, err
		}
		granted = append(granted, badge)
		ownedIDs[definition.ID] = struct{}{}
		stats.EarnedBadgesCount++
	}
	return granted, nil
}

// Overview returns the full catalogue annotated with the user's earned
// state, plus the ids of earned badges not yet shown to the user.
func (service *BadgeService) Overview(userID uint) ([]BadgeStatus, int, []string, error) {
	owned, err := service.badges.ListByUser(userID)
	if err != nil {
		return nil, 0, nil, err
	}
	byID := make(map[string]models.UserBadge, len(owned))
	for _, badge := range owned {
		byID[badge.BadgeID] = badge
	}

	statuses := make([]BadgeStatus, 0, len(BadgeCatalog))
	earnedTotal := 0
	var unseen []string
	for _, definition := range BadgeCatalog {
		status := BadgeStatus{BadgeDefinition: definition}
		if badge, ok := byID[definition.ID]; ok {
			status.Earned = true
			earnedAt := badge.EarnedAt
			status.EarnedAt = &earnedAt
			status.Seen = badge.Seen
			earnedTotal++
			if !badge.Seen {
				unseen = append(unseen, badge.BadgeID)
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, earnedTotal, unseen, nil
}

// MarkSeen flags all of the user's earned badges as shown.
func (service *BadgeService) MarkSeen(userID uint) error {
	return service.badges.MarkAllSeen(userID)
}
