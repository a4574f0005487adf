// Package app wires configuration, storage, clients and services into the
// shared core used by cmd/gmc-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Gabaldaar/gestionomiscuentas/internal/clients/gemini"
	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/asset"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/category"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/liability"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/property"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/summary"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/transfer"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/wallet"
	"github.com/Gabaldaar/gestionomiscuentas/internal/storage/surrealdb"
)

// App holds all initialized services and clients.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	SummaryClient    interfaces.SummaryClient
	WalletService    interfaces.WalletService
	TransferService  interfaces.TransferService
	AssetService     interfaces.AssetService
	LiabilityService interfaces.LiabilityService
	PropertyService  interfaces.PropertyService
	CategoryService  interfaces.CategoryService
	SummaryService   interfaces.SummaryService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()
	if configPath == "" {
		configPath = os.Getenv("GMC_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "gmc.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/gmc.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}
	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var summaryClient interfaces.SummaryClient
	if config.Clients.Gemini.APIKey != "" {
		summaryClient, err = gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
			gemini.WithTimeout(config.Clients.Gemini.GetTimeout()),
			gemini.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - AI summaries will be unavailable")
	}

	categoryService := category.NewService(storageManager, logger)

	app := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		SummaryClient:    summaryClient,
		WalletService:    wallet.NewService(storageManager, logger),
		TransferService:  transfer.NewService(storageManager, logger),
		AssetService:     asset.NewService(storageManager, categoryService, logger),
		LiabilityService: liability.NewService(storageManager, categoryService, logger),
		PropertyService:  property.NewService(storageManager, logger),
		CategoryService:  categoryService,
		SummaryService:   summary.NewService(storageManager, summaryClient, logger),
		StartupTime:      startupStart,
	}

	logger.Info().
		Str("version", common.Version).
		Str("environment", config.Environment).
		Dur("startup", time.Since(startupStart)).
		Msg("Application initialized")
	return app, nil
}

// Close releases storage and client resources.
func (a *App) Close() error {
	if a.SummaryClient != nil {
		if err := a.SummaryClient.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close summary client")
		}
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}
