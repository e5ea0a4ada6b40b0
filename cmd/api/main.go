package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/finboard/service-api-go/internal/auth"
	"github.com/finboard/service-api-go/internal/faq"
	"github.com/finboard/service-api-go/internal/finance"
	"github.com/finboard/service-api-go/internal/menu"
	"github.com/finboard/service-api-go/internal/notice"
	"github.com/finboard/service-api-go/internal/router"
	"github.com/finboard/service-api-go/internal/stock"
	"github.com/finboard/service-api-go/pkg/database"
	"github.com/finboard/service-api-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-api")

	// token configuration is mandatory; refuse to start without it
	authCfg, err := auth.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("auth config: %v", err)
	}
	codec, err := auth.NewTokenCodec(authCfg)
	if err != nil {
		sugar.Fatalf("token codec: %v", err)
	}

	// init db
	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	authSvc := auth.NewService(sqlxDB, codec, nil, sugar)

	// create tables on first run; users first, everything else references it
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelInit()
	for _, ensure := range []func(context.Context) error{
		authSvc.EnsureSchema,
		notice.NewService(sqlxDB).EnsureSchema,
		stock.NewService(sqlxDB).EnsureSchema,
		faq.NewService(sqlxDB).EnsureSchema,
		menu.NewService(sqlxDB).EnsureSchema,
		finance.NewService(sqlxDB).EnsureSchema,
	} {
		if err := ensure(initCtx); err != nil {
			sugar.Fatalf("schema init: %v", err)
		}
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Info("service is running; press Ctrl+C to stop")

	// mount http server
	handler := router.RegisterRoutes(sugar, sqlxDB, authSvc)
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8000"
	}
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
