package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"plants/config"
	"plants/handlers"
	"plants/jwt"
	"plants/logger"
	"plants/routers"
	"plants/store"
	"syscall"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", envOr("PLANTS_CONFIG", "config/config.yaml"), "path to the YAML config file")
	issueToken := flag.String("issue-token", "", "print an admin token for the given subject and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "無法讀取設定: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
	})

	if *issueToken != "" {
		if err := printToken(cfg.Auth, *issueToken); err != nil {
			logger.Fatal().Err(err).Msg("無法產生Token")
		}
		return
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.SetupDatabaseConnection(cfg.Database, log)
	if err != nil {
		logger.Fatal().Err(err).Msg("無法連接到資料庫")
	}
	plantStore := store.NewPlantStore(db)
	defer func() {
		if err := plantStore.Close(); err != nil {
			logger.Error().Err(err).Msg("關閉資料庫失敗")
		}
	}()

	var verifier *jwt.Verifier
	if cfg.Auth.Enabled {
		publicKey, err := jwt.LoadPublicKey(cfg.Auth.PublicKeyPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("無法讀取公鑰")
		}
		verifier = jwt.NewVerifier(publicKey, cfg.Auth.Issuer)
	}

	router := routers.SetupRouters(handlers.NewPlantHandler(plantStore), verifier, log)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Str("driver", cfg.Database.Driver).Msg("plants service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error().Err(err).Msg("伺服器異常停止")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("伺服器關閉逾時")
		}
	}
}

func printToken(auth config.AuthConfig, subject string) error {
	privateKey, err := jwt.LoadPrivateKey(auth.PrivateKeyPath)
	if err != nil {
		return err
	}
	token, err := jwt.NewIssuer(privateKey, auth.Issuer, auth.TokenTTL).GenerateToken(subject, jwt.AdminRole)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
