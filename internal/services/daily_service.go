package services

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/caloriesapp/backend/internal/db"
	"github.com/caloriesapp/backend/internal/models"
)

// DailySummary is a day's ledger plus the streak count the client should
// display after this request.
type DailySummary struct {
	DailyTotals
	StreakCount int
}

// DailyService answers the single-day and batch ledger queries. The
// single-day path also runs the streak engine for the requested date;
// entry fetch, streak read and streak write share one transaction so
// totals and streak commit together or not at all.
type DailyService struct {
	database *gorm.DB
	repos    *db.Repositories

	// Streak evaluation is serialized per user; concurrent requests for
	// the same user would otherwise race the read-modify-write.
	streakLocks sync.Map

	// now is swappable in tests.
	now func() time.Time
}

func NewDailyService(database *gorm.DB, repos *db.Repositories) *DailyService {
	return &DailyService{
		database: database,
		repos:    repos,
		now:      time.Now,
	}
}

// Day computes one local day's totals and folds the result into the
// user's streak.
func (service *DailyService) Day(userID uint, dateString string, tzOffsetMinutes int) (DailySummary, error) {
	window, location, err := ResolveWindow(dateString, tzOffsetMinutes)
	if err != nil {
		return DailySummary{}, err
	}

	lock := service.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var summary DailySummary
	err = service.database.Transaction(func(tx *gorm.DB) error {
		repos := service.repos.WithTx(tx)

		entries, err := repos.Entries.ListByUserWindow(userID, window.StartUTC, window.EndUTC)
		if err != nil {
			return err
		}
		summary.DailyTotals = AggregateDay(entries, window, location)

		user, err := repos.Users.FindByID(userID)
		if err != nil {
			return err
		}

		target, err := service.targetCalories(repos, userID)
		if err != nil {
			return err
		}

		current := StreakState{Count: user.StreakCount, LastAchievedDate: user.LastStreakDate}
		next := NextStreakState(current, StreakInput{
			EvaluatedDate:  window.StartUTC.In(location),
			Today:          LocalToday(service.now(), location),
			TotalCalories:  summary.Calories,
			TargetCalories: target,
		})

		if !next.Equal(current) {
			if err := repos.Users.UpdateStreak(userID, next.Count, next.LastAchievedDate); err != nil {
				return err
			}
		}
		summary.StreakCount = next.Count
		return nil
	})
	if err != nil {
		return DailySummary{}, err
	}
	return summary, nil
}

// Batch answers a multi-day query with a single entry fetch. It never
// mutates the streak: the persisted count is reported on every day so
// the response shape matches the single-day path.
func (service *DailyService) Batch(userID uint, dates []string, tzOffsetMinutes int) ([]DailySummary, error) {
	fetch := func(startUTC time.Time, endUTC time.Time) ([]models.LoggedEntry, error) {
		return service.repos.Entries.ListByUserWindow(userID, startUTC, endUTC)
	}

	totals, err := BucketizeAndAggregate(dates, tzOffsetMinutes, fetch)
	if err != nil {
		return nil, err
	}

	user, err := service.repos.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]DailySummary, 0, len(totals))
	for _, dayTotals := range totals {
		summaries = append(summaries, DailySummary{
			DailyTotals: dayTotals,
			StreakCount: user.StreakCount,
		})
	}
	return summaries, nil
}

func (service *DailyService) targetCalories(repos *db.Repositories, userID uint) (*float64, error) {
	profile, found, err := repos.Onboarding.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return profile.TargetCalories, nil
}

func (service *DailyService) userLock(userID uint) *sync.Mutex {
	lock, _ := service.streakLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
