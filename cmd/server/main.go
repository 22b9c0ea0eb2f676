// main.go
//
// Learning-content backend for the studyhub application
// Copyright (c) 2026 Edukita <dev@edukita.io> (https://edukita.io)
//
// This file is part of studyhub.
// studyhub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// studyhub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with studyhub.
// If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/edukita/studyhub/internal/config"
	"github.com/edukita/studyhub/internal/database"
	"github.com/edukita/studyhub/internal/generation"
	"github.com/edukita/studyhub/internal/handlers"
	"github.com/edukita/studyhub/internal/logger"
	"github.com/edukita/studyhub/internal/middleware"
	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/storage"
	"github.com/edukita/studyhub/internal/utils"

	_ "github.com/edukita/studyhub/docs/api" // Swagger docs
)

// @title StudyHub API
// @version 1.0.0
// @description Learning-content backend: notes, files, generated exercises and summaries
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://edukita.io
// @contact.email dev@edukita.io

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Connect to database and run auto-migrations
	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		zlog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Object storage
	store, err := storage.NewGCS(ctx, zlog, cfg.GCSBucket)
	if err != nil {
		zlog.Error("failed to create storage client", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Generation client
	gen, err := generation.NewGemini(ctx, zlog, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		zlog.Error("failed to create generation client", "error", err)
		os.Exit(1)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    50 * 1024 * 1024, // uploads
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("studyhub")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Services shared by handlers
	fileService := &services.FileService{DB: db, Store: store, Log: zlog}
	genService := &services.GenerationService{DB: db, Gen: gen, Files: fileService, Log: zlog}

	// Handlers
	notesHandler := &handlers.NotesHandler{DB: db}
	filesHandler := &handlers.FilesHandler{Files: fileService}
	exercisesHandler := &handlers.ExercisesHandler{DB: db, Gen: genService, ChunkDelay: cfg.StreamChunkDelay}
	outputsHandler := &handlers.OutputsHandler{DB: db, Gen: genService, ChunkDelay: cfg.StreamChunkDelay}
	answersHandler := &handlers.AnswersHandler{DB: db}
	usersHandler := &handlers.UsersHandler{DB: db}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db, Store: store, Log: zlog}

	// API routes under /api
	api := app.Group("/api")
	auth := middleware.AuthUser(cfg)

	api.Get("/health", healthHandler.Get)

	api.Post("/users/sync", auth, usersHandler.Sync)
	api.Get("/users/me", auth, usersHandler.Me)

	api.Post("/notes", auth, notesHandler.Create)
	api.Get("/notes", auth, notesHandler.List)
	api.Get("/notes/:id", auth, notesHandler.Get)
	api.Put("/notes/:id", auth, notesHandler.Update)
	api.Delete("/notes/:id", auth, notesHandler.Delete)

	api.Post("/files", auth, filesHandler.Upload)
	api.Get("/files", auth, filesHandler.List)
	api.Get("/files/:id", auth, filesHandler.Get)
	api.Get("/files/:id/url", auth, filesHandler.SignedURL)
	api.Delete("/files/:id", auth, filesHandler.Delete)

	api.Post("/exercises/generate", auth, exercisesHandler.Generate)
	api.Post("/exercises/generate/stream", auth, exercisesHandler.GenerateStream)
	api.Get("/exercises", auth, exercisesHandler.List)
	api.Get("/exercises/:id", auth, exercisesHandler.Get)
	api.Delete("/exercises/:id", auth, exercisesHandler.Delete)
	api.Post("/exercises/:id/answers", auth, exercisesHandler.SaveAnswer)
	api.Get("/exercises/:id/answers", auth, exercisesHandler.ListAnswers)

	api.Post("/outputs/generate", auth, outputsHandler.Generate)
	api.Post("/outputs/generate/stream", auth, outputsHandler.GenerateStream)
	api.Get("/outputs", auth, outputsHandler.List)
	api.Get("/outputs/:id", auth, outputsHandler.Get)
	api.Delete("/outputs/:id", auth, outputsHandler.Delete)

	api.Post("/answers/save_answers", auth, answersHandler.Save)
	api.Get("/answers/list", auth, answersHandler.List)
	api.Delete("/answers/delete/:id", auth, answersHandler.Delete)
	api.Delete("/answers/bulk_delete", auth, answersHandler.BulkDelete)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		zlog.Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	zlog.Info("starting server", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("server exited", "error", err)
		os.Exit(1)
	}

	zlog.Info("server stopped")
}
