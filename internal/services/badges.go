package services

// UserStats are the counters badge eligibility is judged against.
type UserStats struct {
	StreakCount       int
	MealsCount        int64
	UniqueMealsCount  int64
	HealthyMealsCount int64
	WeightLogsCount   int64
	EarnedBadgesCount int64
}

// BadgeDefinition describes one badge in the catalogue. Eligible is nil
// for badges that are not awarded automatically yet.
type BadgeDefinition struct {
	ID          string
	Emoji       string
	Title       string
	Description string
	Requirement string
	Color       string
	Category    string
	Eligible    func(UserStats) bool
}

func streakAtLeast(n int) func(UserStats) bool {
	return func(stats UserStats) bool { return stats.StreakCount >= n }
}

func mealsAtLeast(n int64) func(UserStats) bool {
	return func(stats UserStats) bool { return stats.MealsCount >= n }
}

func uniqueMealsAtLeast(n int64) func(UserStats) bool {
	return func(stats UserStats) bool { return stats.UniqueMealsCount >= n }
}

func weightLogsAtLeast(n int64) func(UserStats) bool {
	return func(stats UserStats) bool { return stats.WeightLogsCount >= n }
}

func badgesAtLeast(n int64) func(UserStats) bool {
	return func(stats UserStats) bool { return stats.EarnedBadgesCount >= n }
}

// BadgeCatalog is ordered; clients render it as-is.
var BadgeCatalog = []BadgeDefinition{
	{ID: "streak_3", Emoji: "🔥", Title: "First Steps", Description: "3 days in a row", Requirement: "Track your meals 3 days in a row", Color: "#FF453A", Category: "streak", Eligible: streakAtLeast(3)},
	{ID: "streak_7", Emoji: "🔥", Title: "Week of Strength", Description: "7 days in a row", Requirement: "Track your meals a full week", Color: "#FF9F0A", Category: "streak", Eligible: streakAtLeast(7)},
	{ID: "streak_14", Emoji: "⚡", Title: "Two Weeks", Description: "14 days in a row", Requirement: "Track your meals 2 weeks in a row", Color: "#FFD60A", Category: "streak", Eligible: streakAtLeast(14)},
	{ID: "streak_30", Emoji: "🏆", Title: "Champion Month", Description: "30 days in a row", Requirement: "Track your meals a full month", Color: "#32D74B", Category: "streak", Eligible: streakAtLeast(30)},
	{ID: "streak_50", Emoji: "💪", Title: "Willpower", Description: "50 days in a row", Requirement: "Track your meals 50 days in a row", Color: "#30D158", Category: "streak", Eligible: streakAtLeast(50)},
	{ID: "streak_100", Emoji: "💎", Title: "Diamond", Description: "100 days in a row", Requirement: "Track your meals 100 days in a row", Color: "#64D2FF", Category: "streak", Eligible: streakAtLeast(100)},
	{ID: "streak_365", Emoji: "👑", Title: "Anniversary", Description: "365 days in a row", Requirement: "Track your meals a whole year", Color: "#BF5AF2", Category: "streak", Eligible: streakAtLeast(365)},
	{ID: "streak_1000", Emoji: "🌟", Title: "Legend", Description: "1000 days in a row", Requirement: "Track your meals 1000 days", Color: "#FF2D55", Category: "streak", Eligible: streakAtLeast(1000)},

	{ID: "first_meal", Emoji: "🍽️", Title: "First Dish", Description: "The journey begins", Requirement: "Log your first meal", Color: "#D1D1D6", Category: "activity", Eligible: mealsAtLeast(1)},
	{ID: "meals_5", Emoji: "🥄", Title: "Getting Started", Description: "5 meals logged", Requirement: "Log 5 meals", Color: "#AEAEB2", Category: "activity", Eligible: mealsAtLeast(5)},
	{ID: "meals_10", Emoji: "🥗", Title: "Gourmet", Description: "10 meals logged", Requirement: "Log 10 meals", Color: "#8E8E93", Category: "activity", Eligible: mealsAtLeast(10)},
	{ID: "meals_25", Emoji: "🍱", Title: "Food Blogger", Description: "25 meals logged", Requirement: "Log 25 meals", Color: "#636366", Category: "activity", Eligible: mealsAtLeast(25)},
	{ID: "meals_50", Emoji: "👨‍🍳", Title: "Chef", Description: "50 meals logged", Requirement: "Log 50 meals", Color: "#48484A", Category: "activity", Eligible: mealsAtLeast(50)},
	{ID: "meals_100", Emoji: "🌟", Title: "Kitchen Master", Description: "100 meals logged", Requirement: "Log 100 meals", Color: "#3A3A3C", Category: "activity", Eligible: mealsAtLeast(100)},
	{ID: "meals_250", Emoji: "🎖️", Title: "Culinary Expert", Description: "250 meals logged", Requirement: "Log 250 meals", Color: "#FF9500", Category: "activity", Eligible: mealsAtLeast(250)},
	{ID: "meals_500", Emoji: "🏅", Title: "The Log Father", Description: "500 meals logged", Requirement: "Log 500 meals", Color: "#FF8500", Category: "activity", Eligible: mealsAtLeast(500)},
	{ID: "meals_1000", Emoji: "🏆", Title: "Immortal Log", Description: "1000 meals logged", Requirement: "Log 1000 meals", Color: "#FFD60A", Category: "activity", Eligible: mealsAtLeast(1000)},
	{ID: "meals_5000", Emoji: "💫", Title: "Master of the Universe", Description: "5000 meals logged", Requirement: "Log 5000 meals", Color: "#BF5AF2", Category: "activity", Eligible: mealsAtLeast(5000)},

	{ID: "water_first", Emoji: "💧", Title: "First Drop", Description: "Daily water goal met", Requirement: "Meet your water goal for a day", Color: "#007AFF", Category: "nutrition"},
	{ID: "water_3days", Emoji: "💦", Title: "Waterfall", Description: "3 days of water goals", Requirement: "Meet your water goal 3 days in a row", Color: "#0A84FF", Category: "nutrition"},
	{ID: "water_week", Emoji: "🌊", Title: "Water Week", Description: "7 days of water goals", Requirement: "Meet your water goal a full week", Color: "#5AC8FA", Category: "nutrition"},
	{ID: "water_month", Emoji: "🏖️", Title: "Ocean of Health", Description: "30 days of water goals", Requirement: "Meet your water goal a full month", Color: "#32D3E6", Category: "nutrition"},

	{ID: "goal_first", Emoji: "✅", Title: "First Goal", Description: "Daily target reached", Requirement: "Reach your daily calorie target", Color: "#34C759", Category: "nutrition"},
	{ID: "goal_3days", Emoji: "🎯", Title: "Three in a Row", Description: "3 days on target", Requirement: "Reach your calorie target 3 days in a row", Color: "#30D158", Category: "nutrition"},
	{ID: "goal_week", Emoji: "🏹", Title: "Sharpshooter", Description: "7 days on target", Requirement: "Reach your calorie target a full week", Color: "#32D74B", Category: "nutrition"},
	{ID: "goal_month", Emoji: "🎪", Title: "Precision", Description: "30 days on target", Requirement: "Reach your calorie target a full month", Color: "#30DB5B", Category: "nutrition"},

	{ID: "healthy_first", Emoji: "💚", Title: "Healthy Choice", Description: "A meal rated 8+", Requirement: "Log a healthy meal rated 8 or higher", Color: "#34C759", Category: "nutrition", Eligible: func(stats UserStats) bool { return stats.HealthyMealsCount >= 1 }},
	{ID: "healthy_week", Emoji: "🥬", Title: "Healthy Week", Description: "7 days of health", Requirement: "Keep a 7+ health score a full week", Color: "#32D74B", Category: "nutrition"},

	{ID: "weight_first", Emoji: "⚖️", Title: "On the Scale", Description: "First weigh-in", Requirement: "Record your weight for the first time", Color: "#8E8E93", Category: "special", Eligible: weightLogsAtLeast(1)},
	{ID: "weight_week", Emoji: "📈", Title: "Weight Control", Description: "A week of weigh-ins", Requirement: "Weigh in 7 days in a row", Color: "#636366", Category: "special", Eligible: weightLogsAtLeast(7)},
	{ID: "weight_month", Emoji: "📊", Title: "A Month on the Scale", Description: "A month of weigh-ins", Requirement: "Weigh in 30 days in a row", Color: "#48484A", Category: "special", Eligible: weightLogsAtLeast(30)},

	{ID: "variety_10", Emoji: "🗺️", Title: "Explorer", Description: "10 different dishes", Requirement: "Try 10 different dishes", Color: "#FF5722", Category: "special", Eligible: uniqueMealsAtLeast(10)},
	{ID: "variety_25", Emoji: "🌍", Title: "Traveler", Description: "25 different dishes", Requirement: "Try 25 different dishes", Color: "#FF6B3B", Category: "special", Eligible: uniqueMealsAtLeast(25)},
	{ID: "variety_50", Emoji: "🌎", Title: "Globe of Flavors", Description: "50 different dishes", Requirement: "Try 50 different dishes", Color: "#FF7F54", Category: "special", Eligible: uniqueMealsAtLeast(50)},

	{ID: "collector_5", Emoji: "🏅", Title: "Collector", Description: "5 badges", Requirement: "Earn 5 badges", Color: "#FFC107", Category: "special", Eligible: badgesAtLeast(5)},
	{ID: "collector_10", Emoji: "🎖️", Title: "Achiever", Description: "10 badges", Requirement: "Earn 10 badges", Color: "#FF9800", Category: "special", Eligible: badgesAtLeast(10)},
	{ID: "collector_25", Emoji: "🏆", Title: "Trophy Hunter", Description: "25 badges", Requirement: "Earn 25 badges", Color: "#FF8700", Category: "special", Eligible: badgesAtLeast(25)},
}

// BadgeByID returns the catalogue entry for an id.
func BadgeByID(id string) (BadgeDefinition, bool) {
	for _, badge := range BadgeCatalog {
		if badge.ID == id {
			return badge, true
		}
	}
	return BadgeDefinition{}, false
}
