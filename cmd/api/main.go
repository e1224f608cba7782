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

	"github.com/flexibill/internal/config"
	"github.com/flexibill/internal/domain"
	"github.com/flexibill/internal/infrastructure/dynamo"
	jwtinfra "github.com/flexibill/internal/infrastructure/jwt"
	"github.com/flexibill/internal/infrastructure/memory"
	"github.com/flexibill/internal/infrastructure/postgres"
	redisinfra "github.com/flexibill/internal/infrastructure/redis"
	"github.com/flexibill/internal/infrastructure/sns"
	transporthttp "github.com/flexibill/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	setupLogger(cfg.Debug)

	ctx := context.Background()

	db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		slog.Error("database connection failed", "err", err)
		os.Exit(1)
	}

	otpStore, closeStore, err := newOTPStore(ctx, cfg)
	if err != nil {
		slog.Error("otp store unavailable", "store", cfg.OTPStore, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		slog.Error("token issuer unavailable", "err", err)
		os.Exit(1)
	}

	deps := &transporthttp.Deps{
		OTPStore:    otpStore,
		UserRepo:    postgres.NewUserRepo(db),
		LicenseRepo: postgres.NewLicenseRepo(db),
		JWTProvider: jwtProvider,
	}
	if cfg.SMSEnable {
		sender, err := sns.NewSender(ctx, cfg)
		if err != nil {
			slog.Error("sms sender unavailable", "err", err)
			os.Exit(1)
		}
		deps.SMSSender = sender
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "project", cfg.ProjectName, "slug", cfg.ProjectSlug, "port", cfg.AppPort, "prefix", cfg.APIPrefix, "otp_store", cfg.OTPStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "err", err)
		return
	}
	slog.Info("server stopped")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

// newOTPStore builds the backend named by OTP_STORE. The returned func
// releases any connection it holds.
func newOTPStore(ctx context.Context, cfg *config.Config) (transporthttp.OTPStore, func(), error) {
	gen := domain.FixedOTPCode
	switch cfg.OTPStore {
	case config.OTPStoreRedis:
		client, err := redisinfra.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return redisinfra.NewOTPStore(client, cfg.OTPTTL, gen), func() { _ = client.Close() }, nil
	case config.OTPStoreDynamo:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		dynamo.Bootstrap(ctx, client, cfg.OTPTable)
		return dynamo.NewOTPStore(client, cfg.OTPTable, cfg.OTPTTL, gen), func() {}, nil
	default:
		return memory.NewOTPStore(gen), func() {}, nil
	}
}
