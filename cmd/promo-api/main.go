// README: Entry point; loads config, opens the catalog backend, wires services and serves HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentalpromo/internal/config"
	httptransport "rentalpromo/internal/http"
	"rentalpromo/internal/infra"
	"rentalpromo/internal/logging"
	"rentalpromo/internal/modules/catalog"
	"rentalpromo/internal/modules/location"
	"rentalpromo/internal/modules/offering"
	"rentalpromo/internal/modules/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is configured from cfg, so report with a bootstrap one.
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	flush, err := logging.Init(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer flush()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app *firebase.App
	if cfg.Firebase.ProjectID != "" {
		app, err = infra.NewFirebaseApp(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			zap.L().Fatal("firebase init", zap.Error(err))
		}
	}

	store, closeStore, err := openCatalog(ctx, cfg, app)
	if err != nil {
		zap.L().Fatal("open catalog", zap.String("driver", cfg.Catalog.Driver), zap.Error(err))
	}
	defer closeStore()

	var verifier infra.TokenVerifier
	if app != nil {
		verifier, err = infra.NewFirebaseVerifier(ctx, app)
		if err != nil {
			zap.L().Fatal("firebase auth init", zap.Error(err))
		}
	} else {
		zap.L().Warn("firebase.project_id not set; every caller is anonymous")
	}

	var live location.LiveStore
	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		zap.L().Warn("redis unavailable; live positions disabled", zap.Error(err))
	} else if redisClient != nil {
		defer redisClient.Close()
		live = location.NewRedisLiveStore(redisClient, cfg.Redis.LivePositionTTL)
	}

	var geocoder location.Geocoder
	if cfg.Maps.APIKey != "" {
		g, err := location.NewMapsGeocoder(cfg.Maps.APIKey)
		if err != nil {
			zap.L().Warn("maps geocoder unavailable", zap.Error(err))
		} else {
			geocoder = g
		}
	}

	offeringSvc := offering.NewService(store, cfg.Catalog)
	locationSvc := location.NewService(live, store, geocoder, cfg.Location)
	pricingSvc := pricing.NewService(store)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Offering: offeringSvc,
		Location: locationSvc,
		Pricing:  pricingSvc,
		Verifier: verifier,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("http shutdown", zap.Error(err))
		}
	}()

	zap.L().Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("catalog", cfg.Catalog.Driver))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Fatal("http server", zap.Error(err))
	}
}

// openCatalog builds the configured catalog backend and its cleanup.
func openCatalog(ctx context.Context, cfg config.Config, app *firebase.App) (catalog.Store, func(), error) {
	switch cfg.Catalog.Driver {
	case config.DriverFirestore:
		client, err := infra.NewFirestore(ctx, app)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewFirestoreStore(client), func() { _ = client.Close() }, nil
	case config.DriverPostgres:
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewPostgresStore(pool), pool.Close, nil
	default:
		if cfg.Catalog.SeedFile == "" {
			return catalog.NewMemoryStore(), func() {}, nil
		}
		store, err := catalog.LoadSeed(cfg.Catalog.SeedFile)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
