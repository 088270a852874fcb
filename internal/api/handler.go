package api

import (
	"context"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/caloriesapp/backend/internal/config"
	"github.com/caloriesapp/backend/internal/db"
	"github.com/caloriesapp/backend/internal/services"
	"github.com/caloriesapp/backend/internal/storage"
	"github.com/caloriesapp/backend/internal/vision"
)

const googleIssuer = "https://accounts.google.com"
const appleIssuer = "https://appleid.apple.com"

// Handler wires every request path to the service layer. Optional
// collaborators (objects, analyzer, OAuth verifiers) are nil when their
// configuration is absent and the matching endpoints report the feature
// as unavailable.
type Handler struct {
	cfg      config.Config
	database *gorm.DB
	repos    *db.Repositories

	daily      *services.DailyService
	entries    *services.EntryService
	onboarding *services.OnboardingService
	weight     *services.WeightService
	progress   *services.ProgressService
	badges     *services.BadgeService

	objects  *storage.ObjectStore
	analyzer *vision.Client

	googleOAuth    *oauth2.Config
	googleVerifier *oidc.IDTokenVerifier
	appleVerifier  *oidc.IDTokenVerifier

	adminLimiter *attemptLimiter
}

func NewHandler(ctx context.Context, cfg config.Config, database *gorm.DB, objects *storage.ObjectStore) (*Handler, error) {
	repos := db.NewRepositories(database)
	weightService := services.NewWeightService(repos.WeightLogs, repos.Onboarding)

	handler := &Handler{
		cfg:          cfg,
		database:     database,
		repos:        repos,
		daily:        services.NewDailyService(database, repos),
		entries:      services.NewEntryService(repos.Entries),
		onboarding:   services.NewOnboardingService(repos.Onboarding),
		weight:       weightService,
		progress:     services.NewProgressService(repos, weightService),
		badges:       services.NewBadgeService(repos),
		objects:      objects,
		adminLimiter: newAttemptLimiter(),
	}

	if cfg.VisionAPIKey != "" {
		handler.analyzer = &vision.Client{
			BaseURL: cfg.VisionBaseURL,
			APIKey:  cfg.VisionAPIKey,
			Model:   cfg.VisionModel,
		}
	}

	if cfg.GoogleClientID != "" {
		provider, err := oidc.NewProvider(ctx, googleIssuer)
		if err != nil {
			return nil, err
		}
		handler.googleOAuth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		}
		handler.googleVerifier = provider.Verifier(&oidc.Config{ClientID: cfg.GoogleClientID})
	}

	if cfg.AppleClientID != "" {
		provider, err := oidc.NewProvider(ctx, appleIssuer)
		if err != nil {
			return nil, err
		}
		handler.appleVerifier = provider.Verifier(&oidc.Config{ClientID: cfg.AppleClientID})
	}

	return handler, nil
}

const (
	adminAttemptLimit  = 5
	adminAttemptWindow = 15 * time.Minute
)
