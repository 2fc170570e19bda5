package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"
	"github.com/rs/cors"

	"github.com/iliyamo/booth-market/internal/config"
	"github.com/iliyamo/booth-market/internal/database"
	"github.com/iliyamo/booth-market/internal/handler"
	"github.com/iliyamo/booth-market/internal/middleware"
	"github.com/iliyamo/booth-market/internal/queue"
	"github.com/iliyamo/booth-market/internal/repository"
	"github.com/iliyamo/booth-market/internal/router"
	"github.com/iliyamo/booth-market/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if cfg.DBMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	// nil when Redis is unreachable; cache and rate limiter then pass through
	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	// closed after the server has drained, so in-flight events are delivered
	events := queue.NewBackground(queue.NewPublisher(cfg.Events), 5*time.Second)

	vendorRepo := repository.NewVendorRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	boothRepo := repository.NewBoothRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	dashboardRepo := repository.NewDashboardRepo(db)

	identity := service.NewIdentityService(vendorRepo, events, service.IdentityOptions{
		BcryptCost:   cfg.BcryptCost,
		JWTSecret:    cfg.JWTSecret,
		TokenTTLMin:  cfg.AccessTTLMin,
		DeletePolicy: cfg.Policy.VendorDelete,
	})
	catalog := service.NewCatalogService(productRepo, cfg.Policy.ProductDelete)
	sales := service.NewSalesService(saleRepo)
	booths := service.NewBoothService(boothRepo, reservationRepo, events, cfg.Policy.ReservationConflict)
	dashboard := service.NewDashboardService(dashboardRepo)

	e := echo.New()
	e.HideBanner = true
	if cfg.Env == "dev" {
		e.Logger.SetLevel(glog.DEBUG)
	} else {
		e.Logger.SetLevel(glog.INFO)
	}
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			c.Logger().Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.IdentifyVendor(cfg.JWTSecret))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.Register(e, router.Handlers{
		Vendor:    handler.NewVendorHandler(identity),
		Product:   handler.NewProductHandler(catalog),
		Sale:      handler.NewSaleHandler(sales),
		Booth:     handler.NewBoothHandler(booths),
		Dashboard: handler.NewDashboardHandler(dashboard),
	}, router.Options{
		Prefix:       cfg.APIPrefix,
		AuthRequired: cfg.AuthRequired,
		JWTSecret:    cfg.JWTSecret,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Events.Consume {
		go queue.StartReservationConsumer(ctx, cfg.Events)
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler(e),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (env=%s)", srv.Addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := events.Close(); err != nil {
		log.Printf("events: close: %v", err)
	}
}
