package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bei612/meraki-workflows/internal/adapters/archive"
	"github.com/bei612/meraki-workflows/internal/adapters/dashboard"
	"github.com/bei612/meraki-workflows/internal/adapters/export"
	"github.com/bei612/meraki-workflows/internal/adapters/web"
	"github.com/bei612/meraki-workflows/internal/config"
	"github.com/bei612/meraki-workflows/internal/core/ports"
	"github.com/bei612/meraki-workflows/internal/core/services/reporting"
	"github.com/bei612/meraki-workflows/internal/mock"
	"github.com/bei612/meraki-workflows/internal/telemetry"
)

// mockAPIKey is the token the embedded mock dashboard accepts.
const mockAPIKey = "mock-api-key"

// Application is the composition root: it owns the dashboard client, the
// report pipeline, the archive and the web server.
type Application struct {
	Config    *config.Config
	Dashboard ports.Dashboard
	Archive   *archive.SQLiteArchive
	Runner    *reporting.Runner
	WebServer *web.Server

	mockServer *mock.Server
}

// New creates an Application and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}
	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	if app.Config.MockMode {
		if err := app.startMock(); err != nil {
			return err
		}
	}

	app.Dashboard = dashboard.NewClient(dashboard.Options{
		BaseURL:     app.Config.BaseURL,
		APIKey:      app.Config.APIKey,
		MetaTimeout: app.Config.MetaTimeout,
		ListTimeout: app.Config.ListTimeout,
		MaxRetries:  app.Config.MaxRetries,
	})

	store, err := app.initArchive()
	if err != nil {
		return err
	}
	app.Archive = store

	gen := reporting.NewGenerator(app.Dashboard, app.Config.OrgID, app.Config.FanoutLimit)
	hub := web.NewHub()
	app.Runner = reporting.NewRunner(gen, store, hub)

	reports := web.NewReportHandler(app.Runner, store, export.NewPDFExporter())
	app.WebServer = web.NewServer(app.Config.Addr, app.Config.APITokenHash, reports, hub)

	return nil
}

// startMock boots the embedded fake dashboard and points the client config
// at it.
func (app *Application) startMock() error {
	app.mockServer = mock.NewServer(nil)
	app.mockServer.APIKey = mockAPIKey

	baseURL, err := app.mockServer.Start()
	if err != nil {
		return fmt.Errorf("failed to start mock dashboard: %w", err)
	}

	app.Config.BaseURL = baseURL
	app.Config.APIKey = mockAPIKey
	if app.Config.OrgID == "" {
		app.Config.OrgID = app.mockServer.Dataset.Organization.ID
	}
	log.Printf("Mock Mode Active: fake dashboard at %s", baseURL)
	return nil
}

func (app *Application) initArchive() (*archive.SQLiteArchive, error) {
	if err := os.MkdirAll(filepath.Dir(app.Config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}
	store, err := archive.NewSQLiteArchive(app.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init report archive: %w", err)
	}
	return store, nil
}

// Run starts the web server and blocks until ctx is canceled.
func (app *Application) Run(ctx context.Context) error {
	return app.WebServer.Run(ctx)
}

// Close releases held resources.
func (app *Application) Close() error {
	if app.mockServer != nil {
		if err := app.mockServer.Shutdown(context.Background()); err != nil {
			log.Printf("mock shutdown error: %v", err)
		}
	}
	if app.Archive != nil {
		return app.Archive.Close()
	}
	return nil
}
