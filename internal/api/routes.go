package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Get("/google", handler.GoogleRedirect)
	auth.Get("/google/callback", handler.GoogleCallback)
	auth.Post("/apple", handler.AppleSignIn)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	daily := api.Group("/daily", handler.AuthRequired)
	daily.Get("", handler.GetDay)
	daily.Post("/batch", handler.GetDaysBatch)

	meals := api.Group("/meals", handler.AuthRequired)
	meals.Post("", handler.UploadMeal)
	meals.Get("", handler.ListMeals)
	meals.Get("/:id", handler.GetMeal)
	meals.Get("/:id/photo", handler.MealPhotoURL)
	meals.Patch("/:id", handler.CorrectMeal)
	meals.Delete("/:id", handler.DeleteMeal)

	water := api.Group("/water", handler.AuthRequired)
	water.Post("", handler.LogWater)

	onboarding := api.Group("/onboarding", handler.AuthRequired)
	onboarding.Get("", handler.GetOnboarding)
	onboarding.Put("", handler.SaveOnboarding)

	progress := api.Group("/progress", handler.AuthRequired)
	progress.Post("/weight", handler.AddWeight)
	progress.Get("/weight/history", handler.WeightHistory)
	progress.Get("/weight/stats", handler.WeightStats)
	progress.Get("/data", handler.ProgressData)

	badges := api.Group("/badges", handler.AuthRequired)
	badges.Get("", handler.ListBadges)
	badges.Post("/seen", handler.MarkBadgesSeen)

	admin := api.Group("/admin")
	admin.Post("/login", handler.AdminLogin)
	admin.Get("/users", handler.AdminRequired, handler.AdminListUsers)
	admin.Get("/users/:id/entries", handler.AdminRequired, handler.AdminUserEntries)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
