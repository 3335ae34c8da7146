package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/scholarhub/scholarhub-backend/internal/config"
	"github.com/scholarhub/scholarhub-backend/internal/handlers"
	"github.com/scholarhub/scholarhub-backend/internal/middleware"
	"github.com/scholarhub/scholarhub-backend/internal/models"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Scholarships *handlers.ScholarshipHandler
	Applications *handlers.ApplicationHandler
	Reviews      *handlers.ReviewHandler
	Users        *handlers.UserHandler
	Payments     *handlers.PaymentHandler
	Webhooks     *handlers.WebhookHandler
	Uploads      *handlers.UploadHandler
	Analytics    *handlers.AnalyticsHandler
	Health       *handlers.HealthHandler
	Config       *handlers.ConfigHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h *Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/config", h.Config.Client)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/google", h.Auth.GoogleSignIn)
	auth.Post("/refresh", h.Auth.Refresh)

	// JWT applied per route so public routes stay unaffected
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	api.Put("/auth/profile", middleware.JWTProtected(cfg), h.Auth.UpdateProfile)
	api.Get("/users/me", middleware.JWTProtected(cfg), h.Auth.Me)

	// Scholarships — browsing is public, management is staff-only
	api.Get("/scholarships", h.Scholarships.List)
	api.Get("/top-scholarships", h.Scholarships.Top)
	api.Get("/scholarships/:id", h.Scholarships.Get)

	staff := []string{models.RoleModerator, models.RoleAdmin}
	api.Post("/scholarships", middleware.JWTProtected(cfg), middleware.RoleRequired(db, staff...), h.Scholarships.Create)
	api.Patch("/scholarships/:id", middleware.JWTProtected(cfg), middleware.RoleRequired(db, staff...), h.Scholarships.Update)
	api.Delete("/scholarships/:id", middleware.JWTProtected(cfg), middleware.RoleRequired(db, staff...), h.Scholarships.Delete)

	// Applications
	applications := api.Group("/applications", middleware.JWTProtected(cfg))
	applications.Post("/", h.Applications.Submit)
	applications.Get("/", middleware.RoleRequired(db, staff...), h.Applications.ListAll)
	applications.Get("/user/:uid", h.Applications.ListByUser)
	applications.Patch("/feedback/:id", middleware.RoleRequired(db, staff...), h.Applications.Feedback)
	applications.Patch("/:id/cancel", h.Applications.Cancel)
	applications.Patch("/:id/status", middleware.RoleRequired(db, staff...), h.Applications.ChangeStatus)
	applications.Patch("/:id", h.Applications.Update)

	// Reviews — per-scholarship listing is public, the full list is a
	// moderation surface
	api.Get("/reviews", middleware.JWTProtected(cfg), middleware.RoleRequired(db, staff...), h.Reviews.ListAll)
	api.Get("/reviews/scholarship/:id", h.Reviews.ListByScholarship)
	api.Get("/reviews/user/:uid", middleware.JWTProtected(cfg), h.Reviews.ListByUser)
	api.Post("/reviews", middleware.JWTProtected(cfg), h.Reviews.Create)
	api.Patch("/reviews/:id", middleware.JWTProtected(cfg), h.Reviews.Update)
	api.Delete("/reviews/:id", middleware.JWTProtected(cfg), h.Reviews.Delete)

	// User administration
	users := api.Group("/users", middleware.JWTProtected(cfg), middleware.RoleRequired(db, models.RoleAdmin))
	users.Get("/", h.Users.List)
	users.Put("/:email", h.Users.Upsert)
	users.Patch("/:id/role", h.Users.ChangeRole)
	users.Delete("/:id", h.Users.Delete)

	// Payments and media
	api.Post("/payments/create-payment-intent", middleware.JWTProtected(cfg), h.Payments.CreateIntent)
	api.Post("/uploads/image", middleware.JWTProtected(cfg), h.Uploads.Image)

	// Analytics — admin dashboard
	analytics := api.Group("/analytics", middleware.JWTProtected(cfg), middleware.RoleRequired(db, models.RoleAdmin))
	analytics.Get("/summary", h.Analytics.Summary)
	analytics.Get("/scholarships/applications", h.Analytics.PerScholarship)
	analytics.Get("/users/roles", h.Analytics.Roles)

	// Webhooks — signature auth, no JWT
	api.Post("/webhooks/stripe", h.Webhooks.HandleStripe)
}
