// Command server runs the groundwater balance HTTP service.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/area"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/boundary"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/httpapi"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/ingres"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/lithology"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/adapter/terrain"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/config"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/domain"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/observability"
	"github.com/Niraj2036/JalNiti-Backend-Farmer/internal/pipeline"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	boundaries, err := boundary.Load(
		cfg.TalukaGeoJSONPath,
		cfg.DistrictGeoJSONPath,
		cfg.TalukaNameProperty,
		cfg.DistrictNameProperty,
		logger,
	)
	if err != nil {
		logger.Error("failed to load boundary layers", "error", err)
		os.Exit(1)
	}
	metrics.ReferenceRecords.WithLabelValues("taluka_layer").Set(float64(boundaries.TalukaCount()))
	metrics.ReferenceRecords.WithLabelValues("district_layer").Set(float64(boundaries.DistrictCount()))

	areas, err := area.Load(cfg.AreaTablePath, cfg.FuzzyCutoff, logger, metrics)
	if err != nil {
		logger.Error("failed to load taluka area table", "error", err)
		os.Exit(1)
	}

	sampler, err := lithology.Load(cfg.LithologyRasterPath, cfg.LithologyWorldFilePath, cfg.LithologyEPSG, logger)
	if err != nil {
		logger.Error("failed to load lithology raster", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(
		boundaries,
		areas,
		sampler,
		terrain.NewClient(cfg.TerrainBaseURL, cfg.TerrainTimeout, logger, metrics),
		ingres.NewResolver(cfg.RegistryPath, cfg.FuzzyCutoff, logger, metrics),
		ingres.NewClient(cfg.IngresBaseURL, cfg.IngresYear, cfg.IngresTimeout, logger, metrics),
		domain.NewCalculator(nil),
		logger,
		metrics,
	)

	server := httpapi.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown did not complete cleanly", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
