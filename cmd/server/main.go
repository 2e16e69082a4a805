package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Junio-R-org/J-Bank/internal/api"
	"github.com/Junio-R-org/J-Bank/internal/auth"
	"github.com/Junio-R-org/J-Bank/internal/config"
	"github.com/Junio-R-org/J-Bank/internal/currency"
	"github.com/Junio-R-org/J-Bank/internal/seed"
	"github.com/Junio-R-org/J-Bank/internal/service"
	"github.com/Junio-R-org/J-Bank/internal/storage/sqlite"
	"github.com/Junio-R-org/J-Bank/pkg/logging"
)

func main() {
	seedFlag := flag.Bool("seed", false, "load demo session and roster into an empty database")
	flag.Parse()

	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	logging.Setup()

	cfg := config.Load()

	cat, err := currency.NewCatalog(cfg.Currency)
	if err != nil {
		slog.Error("Invalid currency configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if *seedFlag {
		if err := seed.Run(context.Background(), store); err != nil {
			slog.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	ledgerSvc := service.NewLedgerService(store, cat)
	authSvc := service.NewAuthService(authenticator, jwtManager)

	router := api.NewRouter(ledgerSvc, authSvc, jwtManager)

	// h2c allows HTTP/2 clients without TLS termination in front.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Ledger server starting",
		"address", addr,
		"base_currency", cat.BaseCode(),
		"currencies", cat.Codes(),
	)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
