package router

import (
	"github.com/pagebound/BookCrate/app/controllers"
	"github.com/pagebound/BookCrate/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAuth)
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// Staff accounts (admin role only)
	adminGroup.Post("/users", middleware.RequireAdmin, controllers.HandleAdminCreateUser)
	adminGroup.Post("/users/status/:id", middleware.RequireAdmin, controllers.HandleAdminUpdateUserStatus)

	// Catalog lookups
	adminGroup.Get("/genres", controllers.HandleAdminListGenres)
	adminGroup.Post("/genres", controllers.HandleAdminCreateGenre)
	adminGroup.Post("/genres/update/:id", controllers.HandleAdminUpdateGenre)
	adminGroup.Post("/genres/delete/:id", controllers.HandleAdminDeleteGenre)

	adminGroup.Get("/themes", controllers.HandleAdminListThemes)
	adminGroup.Post("/themes", controllers.HandleAdminCreateTheme)
	adminGroup.Post("/themes/update/:id", controllers.HandleAdminUpdateTheme)
	adminGroup.Post("/themes/delete/:id", controllers.HandleAdminDeleteTheme)

	adminGroup.Get("/tiers", controllers.HandleAdminListTiers)
	adminGroup.Post("/tiers", controllers.HandleAdminCreateTier)
	adminGroup.Post("/tiers/update/:id", controllers.HandleAdminUpdateTier)
	adminGroup.Post("/tiers/delete/:id", controllers.HandleAdminDeleteTier)

	// Packages
	adminGroup.Get("/packages", controllers.HandleAdminListPackages)
	adminGroup.Post("/packages", controllers.HandleAdminCreatePackage)
	adminGroup.Post("/packages/reorder", controllers.HandleAdminReorderPackages)
	adminGroup.Get("/packages/:id", controllers.HandleAdminGetPackage)
	adminGroup.Post("/packages/update/:id", controllers.HandleAdminUpdatePackage)
	adminGroup.Post("/packages/delete/:id", controllers.HandleAdminDeletePackage)
	adminGroup.Get("/packages/:id/description", controllers.HandleAdminGetPackageDescription)
	adminGroup.Post("/packages/:id/description", controllers.HandleAdminSavePackageDescription)

	// Package media
	adminGroup.Get("/packages/:id/media", controllers.HandleAdminListPackageMedia)
	adminGroup.Post("/packages/:id/media", controllers.HandleAdminUploadPackageMedia)
	adminGroup.Post("/media/delete/:media_id", controllers.HandleAdminDeletePackageMedia)

	// Billing provider sync
	adminGroup.Post("/packages/:id/sync", controllers.HandleAdminSyncPackage)
	adminGroup.Post("/packages/:id/resync", controllers.HandleAdminResyncPackage)
	adminGroup.Get("/packages/:id/drift", controllers.HandleAdminPackageDrift)
	adminGroup.Post("/sync/bulk", controllers.HandleAdminBulkSync)

	// Orders + transactions
	adminGroup.Get("/orders", controllers.HandleAdminListOrders)
	adminGroup.Post("/orders", controllers.HandleAdminCreateOrder)
	adminGroup.Get("/orders/:id", controllers.HandleAdminGetOrder)
	adminGroup.Post("/orders/status/:id", controllers.HandleAdminUpdateOrderStatus)
	adminGroup.Post("/orders/:id/transactions", controllers.HandleAdminRecordTransaction)
	adminGroup.Get("/transactions", controllers.HandleAdminListTransactions)
}
