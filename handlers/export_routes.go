// handlers/export_routes.go
package handlers

import (
	"darkzone-stats-server/services"

	"github.com/gofiber/fiber/v2"
)

func SetupExportRoutes(app *fiber.App, export *services.ExportService) {
	app.Get("/api/export/:format", export.Export)
}
