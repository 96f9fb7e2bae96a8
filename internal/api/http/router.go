package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/api/http/handlers"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/auth"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Rma            *handlers.RmaHandler
	Catalog        *handlers.CatalogHandler
	Trash          *handlers.TrashHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", auth.RequireAgent(), cfg.Tickets.UpdateTicket)
	tickets.Patch("/:id/status", auth.RequireAgent(), cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/assignee", auth.RequireAgent(), cfg.Tickets.AssignTicket)
	tickets.Post("/:id/close", cfg.Tickets.CloseTicket)
	tickets.Get("/:id/activity", cfg.Tickets.Activity)
	tickets.Post("/:id/messages", cfg.Tickets.SendMessage)
	tickets.Post("/:id/internal-notes", auth.RequireAgent(), cfg.Tickets.AddInternalNote)
	tickets.Post("/:id/rma", auth.RequireAgent(), cfg.Rma.RequestRma)

	rma := app.Group("/rma", cfg.AuthMiddleware.Handle, auth.RequireAgent())
	rma.Get("/:id", cfg.Rma.GetRma)
	rma.Delete("/:id", cfg.Rma.DeleteRma)
	rma.Patch("/:id/steps/:order", cfg.Rma.SetStepCompletion)
	rma.Put("/:id/notes", cfg.Rma.SaveFunctionalityNotes)

	companies := app.Group("/companies", cfg.AuthMiddleware.Handle)
	companies.Post("", auth.RequireAgent(), cfg.Catalog.CreateCompany)
	companies.Get("", auth.RequireAgent(), cfg.Catalog.ListCompanies)
	companies.Get("/:id", cfg.Catalog.GetCompany)
	companies.Patch("/:id", auth.RequireAgent(), cfg.Catalog.UpdateCompany)
	companies.Get("/:id/contacts", cfg.Catalog.ListContacts)

	contacts := app.Group("/contacts", cfg.AuthMiddleware.Handle, auth.RequireAgent())
	contacts.Post("", cfg.Catalog.CreateContact)
	contacts.Patch("/:id", cfg.Catalog.UpdateContact)

	equipment := app.Group("/equipment-models", cfg.AuthMiddleware.Handle)
	equipment.Get("", cfg.Catalog.ListEquipmentModels)
	equipment.Post("", auth.RequireAgent(), cfg.Catalog.CreateEquipmentModel)
	equipment.Patch("/:id", auth.RequireAgent(), cfg.Catalog.UpdateEquipmentModel)

	trash := app.Group("/trash", cfg.AuthMiddleware.Handle, auth.RequireAgent())
	trash.Post("/purge", auth.RequireRole(domain.RoleAdmin), cfg.Trash.Purge)
	trash.Get("/:scope", cfg.Trash.List)
	trash.Delete("/:scope/:id", cfg.Trash.SoftDelete)
	trash.Post("/:scope/:id/restore", cfg.Trash.Restore)
}
