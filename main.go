package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"planora/app"
	"planora/config"
	"planora/data"
	"planora/handlers"
	"planora/middleware"
	"planora/store"
)

func main() {
	config.Load()

	logger := setupLogger()
	slog.SetDefault(logger)

	// The server process is a persistent-capable context; the mock backend
	// only takes over via PLANORA_STORE_DRIVER=mock (e.g. pre-render runs).
	runtime := store.NewRuntime(store.Options{
		Persistent: true,
		Path:       config.AppConfig.DBPath,
		Driver:     store.Driver(config.AppConfig.StoreDriver),
	})
	defer runtime.Close()

	adapter := data.NewFactory().For(runtime)
	a := app.New(adapter, logger, config.AppConfig.DemoUserID)

	// Open the backend eagerly so a broken database path fails at startup
	// instead of on the first request.
	if _, err := runtime.Backend(); err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	logger.Info("store initialized", "path", config.AppConfig.DBPath)

	srv := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		DisableStartupMessage: config.AppConfig.Env == "production",
		ErrorHandler:          customErrorHandler(logger),
		ReadBufferSize:        8192,
	})

	srv.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:     config.GetEnv("CORS_ORIGINS", "*"),
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: false,
			MaxAge:           86400,
		}),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)

	srv.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := srv.Group("/api")

	api.Get("/tasks", handlers.GetTasks(a))
	api.Post("/tasks", handlers.CreateTask(a))
	api.Get("/tasks/:id", handlers.GetTask(a))
	api.Put("/tasks/:id", handlers.UpdateTask(a))
	api.Delete("/tasks/:id", handlers.DeleteTask(a))

	api.Get("/events", handlers.GetEvents(a))
	api.Post("/events", handlers.CreateEvent(a))
	api.Get("/events/:id", handlers.GetEvent(a))
	api.Put("/events/:id", handlers.UpdateEvent(a))
	api.Delete("/events/:id", handlers.DeleteEvent(a))

	api.Get("/bills", handlers.GetBills(a))
	api.Post("/bills", handlers.CreateBill(a))
	api.Put("/bills/:id", handlers.UpdateBill(a))
	api.Delete("/bills/:id", handlers.DeleteBill(a))

	api.Get("/expenses", handlers.GetExpenses(a))
	api.Post("/expenses", handlers.CreateExpense(a))
	api.Put("/expenses/:id", handlers.UpdateExpense(a))
	api.Delete("/expenses/:id", handlers.DeleteExpense(a))

	api.Get("/notes", handlers.GetNotes(a))
	api.Post("/notes", handlers.CreateNote(a))
	api.Get("/notes/:id", handlers.GetNote(a))
	api.Put("/notes/:id", handlers.UpdateNote(a))
	api.Delete("/notes/:id", handlers.DeleteNote(a))

	api.Get("/pomodoro", handlers.GetPomodoroSessions(a))
	api.Post("/pomodoro", handlers.CreatePomodoroSession(a))
	api.Put("/pomodoro/:id", handlers.UpdatePomodoroSession(a))
	api.Delete("/pomodoro/:id", handlers.DeletePomodoroSession(a))

	api.Get("/notifications", handlers.GetNotifications(a))
	api.Put("/notifications/:id", handlers.UpdateNotification(a))
	api.Delete("/notifications/:id", handlers.DeleteNotification(a))

	api.Get("/settings", handlers.GetSettings(a))
	api.Put("/settings", handlers.UpdateSettings(a))

	logger.Info("starting server", "port", config.AppConfig.Port, "env", config.AppConfig.Env)

	go func() {
		if err := srv.Listen(":" + config.AppConfig.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func setupLogger() *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: config.AppConfig.Env == "development",
	}

	if config.AppConfig.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel() slog.Level {
	level := config.GetEnv("LOG_LEVEL", "info")
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func customErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		requestID := ""
		if id, ok := c.Locals("requestID").(string); ok {
			requestID = id
		}

		logger.Error("request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
