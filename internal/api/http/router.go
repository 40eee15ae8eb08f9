package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ada-support/helpdesk/internal/api/http/handlers"
	"github.com/ada-support/helpdesk/internal/auth"
)

// RouteConfig carries every handler the router wires up.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Users   *handlers.UsersHandler
	Tickets *handlers.TicketsHandler
	Auth    *auth.AuthMiddleware
}

// RegisterRoutes mounts the public, user and ticket route groups.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	health := app.Group("/health")
	health.Get("/live", cfg.Health.Live)
	health.Get("/ready", cfg.Health.Ready)

	users := app.Group("/api/user")
	users.Post("/create-user", cfg.Users.CreateUser)
	users.Post("/send-otp", cfg.Users.SendOTP)
	users.Post("/user-login", cfg.Users.Login)

	usersAuthed := users.Group("", cfg.Auth.Handle)
	usersAuthed.Get("/getMyTickets", cfg.Tickets.GetMyTickets)
	usersAuthed.Get("/getUsers", auth.RequireAdmin(), RequireJSONContent(), cfg.Users.GetUsers)
	usersAuthed.Delete("/deleteUser/:id", auth.RequireAdmin(), cfg.Users.DeleteUser)
	usersAuthed.Put("/updateUser/:id", auth.RequireAdmin(), cfg.Users.UpdateUser)
	usersAuthed.Put("/update-profile", cfg.Users.UpdateProfile)
	usersAuthed.Get("/get-profile-details", cfg.Users.GetProfile)

	tickets := app.Group("/api/ticket", cfg.Auth.Handle)
	tickets.Post("/create-ticket", cfg.Tickets.CreateTicket)
	tickets.Get("/get-all-tickets", auth.RequireAdmin(), RequireJSONContent(), cfg.Tickets.GetAllTickets)
	tickets.Get("/get-ticket-by-id/:id", cfg.Tickets.GetTicketByID)
	tickets.Patch("/update-ticket/:id", auth.RequireAdmin(), cfg.Tickets.UpdateTicket)
	tickets.Delete("/delete-ticket/:id", auth.RequireAdmin(), cfg.Tickets.DeleteTicket)
	tickets.Get("/download-report", auth.RequireAdmin(), cfg.Tickets.DownloadReport)
}
