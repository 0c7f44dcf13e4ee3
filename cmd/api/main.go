package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "curtainledger/api/swagger" // swagger docs
	"curtainledger/internal/catalog"
	"curtainledger/internal/config"
	"curtainledger/internal/database"
	"curtainledger/internal/handler"
	"curtainledger/internal/metrics"
	"curtainledger/internal/normalize"
	"curtainledger/internal/report"
	"curtainledger/internal/repository"
	"curtainledger/internal/service"
	"curtainledger/internal/store"
	"curtainledger/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Curtain Ledger API
// @version         1.0
// @description     Order ledger and profit reports for a curtain and flooring shop.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	setupLogger(cfg.GinMode)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	reg := metrics.NewRegistry()
	adapter, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store init failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("ledger store ready", "driver", cfg.StoreDriver)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	cat := catalog.Default(cfg.LaborCategory)
	ledgerService := service.NewLedgerService(store.Instrument(adapter, reg), service.Options{
		Normalize: normalize.Options{PhoneDigitsOnly: cfg.PhoneDigitsOnly},
		Catalog:   cat,
		Report:    report.New(cat, report.ParsePayoutBasis(cfg.PayoutBasis)),
		Metrics:   reg,
		Notifier:  wsHub,
	})
	secret := []byte(cfg.JWTSecret)
	authService, err := service.NewAuthService(cfg.AdminPassword, secret, nil)
	if err != nil {
		slog.Error("auth init failed", "error", err)
		os.Exit(1)
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "store": cfg.StoreDriver, "ws_clients": wsHub.ClientCount()})
	})
	router.GET("/metrics", gin.WrapH(reg.Handler()))
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	api := router.Group("")
	handler.NewAuthHandler(authService).RegisterRoutes(api)
	handler.NewCatalogHandler(ledgerService).RegisterRoutes(api)
	handler.NewOrderHandler(ledgerService, handler.ParseOrdering(cfg.OrderSort, repository.OrderInsertion)).RegisterRoutes(api)
	handler.NewPurchaseHandler(ledgerService).RegisterRoutes(api)
	handler.NewReportHandler(ledgerService, secret).RegisterRoutes(api)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func setupLogger(mode string) {
	var h slog.Handler = slog.NewTextHandler(os.Stdout, nil)
	if mode == gin.ReleaseMode {
		h = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}

// openStore builds the adapter selected by STORE_DRIVER and its cleanup func.
func openStore(cfg *config.Config) (store.Adapter, func(), error) {
	noop := func() {}
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryAdapter(), noop, nil
	case config.DriverExcel:
		return store.NewExcelAdapter(cfg.ExcelPath), noop, nil
	case config.DriverPebble:
		p, err := store.NewPebbleAdapter(cfg.PebbleDir)
		if err != nil {
			return nil, noop, err
		}
		return p, func() {
			if err := p.Close(); err != nil {
				slog.Error("pebble close failed", "error", err)
			}
		}, nil
	case config.DriverPostgres:
		db, err := database.NewConnection(cfg.DSN())
		if err != nil {
			return nil, noop, err
		}
		return store.NewPostgresAdapter(repository.NewSheetRepository(db), repository.NewTransactionManager(db)), func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil
	}
	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
