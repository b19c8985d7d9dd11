package app

import (
	"log/slog"

	"planora/data"
	"planora/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Data      *data.Adapter
	Validator *validator.Validator
	Logger    *slog.Logger
	UserID    string
}

// New creates a new App instance with all dependencies. UserID is the fixed
// owner used by the single-user deployment.
func New(adapter *data.Adapter, logger *slog.Logger, userID string) *App {
	return &App{
		Data:      adapter,
		Validator: validator.New(),
		Logger:    logger,
		UserID:    userID,
	}
}
