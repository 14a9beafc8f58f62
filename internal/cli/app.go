package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"freelancebook/internal/config"
	"freelancebook/internal/repository/sqlite"
	"freelancebook/internal/services"
)

// App wires the service container and configuration for the command
// handlers.
type App struct {
	services *services.ServiceContainer
	config   *config.Config
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(container *services.ServiceContainer, cfg *config.Config) *App {
	return &App{
		services: container,
		config:   cfg,
	}
}

// NewAppWithDefaultRepository opens the configured SQLite database, runs
// migrations, installs the built-in categories and builds the full
// service container. Used for production.
func NewAppWithDefaultRepository(ctx context.Context, cfg *config.Config) (*App, func() error, error) {
	if err := os.MkdirAll(cfg.Database.Dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Database.Dir, cfg.Database.Filename)
	repo, err := sqlite.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container := &services.ServiceContainer{
		Timer:      services.NewTimerService(repo, cfg),
		Entries:    services.NewEntryService(repo, cfg),
		Invoices:   services.NewInvoiceService(repo, cfg),
		Clients:    services.NewClientService(repo),
		Categories: services.NewCategoryService(repo),
	}

	if err := container.Categories.EnsureSeeded(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	return NewApp(container, cfg), repo.Close, nil
}
