package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"darkzone-stats-server/database"
	"darkzone-stats-server/handlers"
	"darkzone-stats-server/middleware"
	"darkzone-stats-server/realtime"
	"darkzone-stats-server/services"
	"darkzone-stats-server/utils"
	"darkzone-stats-server/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// load .env before InitLogger so LOG_* vars take effect, but log the
	// outcome only once the logger is configured
	envErr := godotenv.Load()
	utils.InitLogger()
	log := utils.Logger
	if envErr != nil {
		log.Info("no .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "darkzone-stats-server",
	})

	app.Use(middleware.RequestLogger())

	allowedOrigins := utils.Getenv("ALLOWED_ORIGINS", "*")
	origins := strings.Split(allowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,OPTIONS,HEAD",
	}))

	db, err := database.Open()
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	if err := database.Init(db); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	statsService := services.NewStatsService(db)
	searchService := services.NewSearchService(db)
	exportService := services.NewExportService(db)
	hub := realtime.NewHub()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	statsService.StartGoldBroadcast(hub, services.GoldBroadcastInterval)

	if utils.R2Configured() {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client: ", err)
		}
		snapshotClient := workers.NewSnapshotClient(db)
		go workers.PollSnapshots(ctx, snapshotClient, 24*time.Hour)
		log.Info("✅ Snapshot archival running (every 24h)")
	}

	handlers.SetupStatsRoutes(app, statsService, searchService)
	handlers.SetupExportRoutes(app, exportService)
	handlers.SetupRealtimeRoutes(app, hub)

	app.Static("/", "./public")

	port := utils.Getenv("PORT", "3000")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Error("server error: ", err)
		}
	}()

	log.Infof("✅ Server running on http://localhost:%s", port)
	log.Infof("✅ Gold update broadcast running (every %s)", services.GoldBroadcastInterval)
	log.Infof("✅ CORS configured for origins: %s", allowedOrigins)

	<-ctx.Done()
	log.Info("shutting down server...")
	_ = app.Shutdown()
}
