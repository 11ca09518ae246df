package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"filedrop/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; the lifecycle rules live in the service.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.FileService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/api/upload", UploadFile(svc))
	app.Get("/api/meta/:token", FileMetadata(svc))
	app.Get("/download/:token", DownloadFile(svc))
}
