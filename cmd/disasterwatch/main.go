package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/disasterwatch/italia/internal/api"
	"github.com/disasterwatch/italia/internal/config"
	"github.com/disasterwatch/italia/internal/logging"
	"github.com/disasterwatch/italia/internal/observability"
	"github.com/disasterwatch/italia/internal/prediction"
	"github.com/disasterwatch/italia/internal/repository"
	"github.com/disasterwatch/italia/internal/seed"
	"github.com/disasterwatch/italia/internal/snapshot"
	"github.com/disasterwatch/italia/internal/sources"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := seedHospitals(ctx, db); err != nil {
		logging.Fatalf("Failed to seed hospitals: %v", err)
	}

	metrics := observability.NewMetrics()
	metrics.Register(prometheus.DefaultRegisterer)

	snap := snapshot.NewStore()

	monitor := sources.NewMonitor(cfg, db, snap, metrics, clockwork.NewRealClock())
	monitor.Start(ctx)

	predictor := prediction.NewPredictor(cfg.OpenAI.APIKey, cfg.OpenAI.Model, snap, db, metrics)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5)) // 5 req/s global limit

	handler := api.NewHandler(db, db, db, snap, predictor)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	monitor.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

// seedHospitals loads the starter hospital set on first boot so the nearby
// and stats endpoints have data before any operator input.
func seedHospitals(ctx context.Context, db *repository.SQLiteDB) error {
	existing, err := db.ListHospitals(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, h := range seed.Hospitals(time.Now()) {
		if err := db.CreateHospital(ctx, &h); err != nil {
			return err
		}
	}
	slog.Info("seeded hospital registry")
	return nil
}
