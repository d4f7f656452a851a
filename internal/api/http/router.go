package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/league-service/internal/api/http/handlers"
	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Attendance     *handlers.AttendanceHandler
	Missions       *handlers.MissionsHandler
	Payments       *handlers.PaymentsHandler
	Feedback       *handlers.FeedbackHandler
	Announcements  *handlers.AnnouncementsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The authentication middleware runs on
// every /api route; the role requirements for each route live here, in one
// place, rather than scattered across handlers.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	// Public auth endpoints.
	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	admin := domain.RoleAdmin
	avenger := domain.RoleAvenger

	// Shared endpoints, any authenticated member.
	api.Get("/user/details", auth.RequireRole(admin, avenger), cfg.Users.Details)
	api.Get("/announcements", auth.RequireRole(admin, avenger), cfg.Announcements.List)
	api.Get("/attendance/stats", auth.RequireRole(admin, avenger), cfg.Attendance.Stats)
	api.Post("/transactions/send", auth.RequireRole(admin, avenger), cfg.Payments.Send)
	api.Get("/transactions/history", auth.RequireRole(admin, avenger), cfg.Payments.HistoryMine)

	// Admin endpoints.
	adminGroup := api.Group("/admin", auth.RequireRole(admin))
	adminGroup.Get("/avengers", cfg.Users.ListAvengers)
	adminGroup.Get("/dashboard-stats", cfg.Users.DashboardStats)
	adminGroup.Post("/payments/send", cfg.Payments.Send)
	adminGroup.Get("/payments/history", cfg.Payments.History)
	adminGroup.Post("/missions", cfg.Missions.Create)
	adminGroup.Get("/missions", cfg.Missions.List)
	adminGroup.Put("/missions/:id/status", cfg.Missions.UpdateStatus)
	adminGroup.Post("/attendance/start", cfg.Attendance.Start)
	adminGroup.Get("/attendance/records", cfg.Attendance.Records)
	adminGroup.Get("/feedback", cfg.Feedback.List)
	adminGroup.Put("/feedback/:id/read", cfg.Feedback.MarkRead)
	adminGroup.Post("/announcements", cfg.Announcements.Create)

	api.Put("/users/:id/status", auth.RequireRole(admin), cfg.Users.UpdateStatus)

	// Avenger endpoints.
	api.Post("/feedback", auth.RequireRole(avenger), cfg.Feedback.Submit)
	api.Get("/missions/my", auth.RequireRole(avenger), cfg.Missions.ListMine)
	api.Post("/avenger/attendance/mark", auth.RequireRole(avenger), cfg.Attendance.Mark)
}
