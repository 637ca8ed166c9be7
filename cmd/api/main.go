package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-warehouse-ws/internal/config"
	"go-warehouse-ws/internal/handler"
	"go-warehouse-ws/internal/layout"
	"go-warehouse-ws/internal/messaging"
	"go-warehouse-ws/internal/repository"
	"go-warehouse-ws/internal/service"
	"go-warehouse-ws/internal/ws"
	"go-warehouse-ws/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.LoadEnv()

	// 2. Logger
	appLog := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Development: cfg.Server.AppEnv == "development",
	})
	defer appLog.Sync()

	// 3. WebSocket Hub
	wsHub := ws.NewHub(appLog)
	go wsHub.Run()

	// 4. Event producer (no-op unless brokers are configured)
	var producer messaging.EventProducer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		appLog.Info("kafka producer enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		producer = messaging.NewNoopProducer()
	}
	defer producer.Close()

	// 5. Dependency Injection (Wiring Layers)
	catalogRepo := repository.NewCatalogRepo()
	sessionRepo := repository.NewSessionRepo()

	layoutCfg := layout.Config{Seed: cfg.Stock.GeneratorSeed}
	catalogService := service.NewCatalogService(catalogRepo, layout.CatalogConfig(), layoutCfg, wsHub, producer, appLog)
	analyticsService := service.NewAnalyticsService(catalogService, cfg.Stock)
	stocktakeService := service.NewStocktakeService(sessionRepo, catalogRepo, wsHub, producer, appLog)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	stocktakeHandler := handler.NewStocktakeHandler(stocktakeService)

	// 6. Boot catalog so the API is usable immediately; an external generator
	// can still POST its own catalog later.
	if _, err := catalogService.Regenerate(); err != nil {
		appLog.Fatal("failed to generate initial catalog", zap.Error(err))
	}

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Warehouse Layout & Stocktaking v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// Catalog Routes
	api.Get("/catalog", catalogHandler.GetCatalog)
	api.Post("/catalog", catalogHandler.IngestCatalog)
	api.Post("/catalog/regenerate", catalogHandler.Regenerate)
	api.Get("/catalog/export", catalogHandler.ExportCSV)

	// Analytics Routes
	api.Get("/analytics/summary", analyticsHandler.GetSummary)
	api.Get("/analytics/groups/:dimension", analyticsHandler.GetGroups)
	api.Get("/analytics/issues", analyticsHandler.GetIssues)
	api.Get("/analytics/balance/:dimension", analyticsHandler.GetBalance)

	// Stocktake Routes
	api.Post("/stocktakes", stocktakeHandler.CreateSession)
	api.Get("/stocktakes", stocktakeHandler.ListSessions)
	api.Get("/stocktakes/:id", stocktakeHandler.GetSession)
	api.Post("/stocktakes/:id/verify", stocktakeHandler.Verify)
	api.Get("/stocktakes/:id/progress", stocktakeHandler.GetProgress)
	api.Get("/stocktakes/:id/discrepancies", stocktakeHandler.GetDiscrepancies)
	api.Get("/stocktakes/:id/export", stocktakeHandler.ExportCSV)
	api.Post("/stocktakes/:id/reset", stocktakeHandler.Reset)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			appLog.Panic("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		appLog.Fatal("server forced to shutdown", zap.Error(err))
	}

	appLog.Info("server exited")
}
