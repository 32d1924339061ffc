package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bei612/meraki-workflows/internal/adapters/dashboard"
	"github.com/bei612/meraki-workflows/internal/config"
	"github.com/bei612/meraki-workflows/internal/core/domain"
	"github.com/bei612/meraki-workflows/internal/core/services/reporting"
	"github.com/bei612/meraki-workflows/internal/mock"
	"github.com/bei612/meraki-workflows/internal/telemetry"
)

const mockAPIKey = "mock-api-key"

// reportctl generates a single report and prints it as JSON, without the
// server, archive or WebSocket machinery. Useful for cron jobs and piping
// into jq.
func main() {
	// Extra flags must be registered before config.Load parses the command
	// line.
	reportType := flag.String("type", string(domain.ReportDeviceStatus), "Report type to generate")
	keyword := flag.String("keyword", "", "Device name keyword (search/location reports)")
	floorName := flag.String("floor", "", "Floor plan name filter (floorplan_aps)")
	clientMAC := flag.String("client-mac", "", "Client MAC (lost_device_trace)")
	clientDesc := flag.String("client-desc", "", "Client description (lost_device_trace)")
	networkID := flag.String("network", "", "Network id (security_posture)")
	forecastDays := flag.Int("forecast-days", 0, "Trend window in days (capacity_planning)")
	outPath := flag.String("o", "", "Write JSON to file instead of stdout")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	telemetry.InitMetrics()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.MockMode {
		srv := mock.NewServer(nil)
		srv.APIKey = mockAPIKey
		baseURL, err := srv.Start()
		if err != nil {
			log.Fatalf("failed to start mock dashboard: %v", err)
		}
		defer srv.Shutdown(context.Background())
		cfg.BaseURL = baseURL
		cfg.APIKey = mockAPIKey
		if cfg.OrgID == "" {
			cfg.OrgID = srv.Dataset.Organization.ID
		}
	}

	dash := dashboard.NewClient(dashboard.Options{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		MetaTimeout: cfg.MetaTimeout,
		ListTimeout: cfg.ListTimeout,
		MaxRetries:  cfg.MaxRetries,
	})
	gen := reporting.NewGenerator(dash, cfg.OrgID, cfg.FanoutLimit)

	result, err := gen.Generate(ctx, domain.ReportType(*reportType), reporting.Params{
		Keyword:           *keyword,
		FloorName:         *floorName,
		ClientMAC:         *clientMAC,
		ClientDescription: *clientDesc,
		NetworkID:         *networkID,
		ForecastDays:      *forecastDays,
	})
	if err != nil {
		log.Fatalf("report generation failed: %v", err)
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encoding report: %v", err)
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, payload, 0644); err != nil {
			log.Fatalf("writing %s: %v", *outPath, err)
		}
		return
	}
	fmt.Println(string(payload))
}
