package main

import (
	"context"
	"os/signal"
	"syscall"

	"garment-billing-backend/billing"
	"garment-billing-backend/config"
	"garment-billing-backend/controllers"
	"garment-billing-backend/database"
	"garment-billing-backend/middlewares"
	"garment-billing-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	cfg := config.Load()
	logger := config.GetLogger()

	// ---- Database (public schema)
	database.Connect(cfg)
	database.AutoMigrate()

	controllers.Init(cfg)

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: false, // Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))

	routes.Register(app)

	// ---- Background sweep: overdue marking + month-end auto-generation
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := &billing.Sweeper{Cfg: cfg, Logger: logger}
	go sweeper.Run(ctx)

	logger.WithField("port", cfg.Port).Info("api server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
