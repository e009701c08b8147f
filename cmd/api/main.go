package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barkbuddy/internal/adapters/auth/oidc"
	"barkbuddy/internal/adapters/imagestore/cloudinarystore"
	"barkbuddy/internal/adapters/imagestore/inline"
	"barkbuddy/internal/adapters/imagestore/s3store"
	"barkbuddy/internal/adapters/storage/postgres"
	"barkbuddy/internal/config"
	"barkbuddy/internal/platform/httpclient"
	"barkbuddy/internal/platform/logger"
	"barkbuddy/internal/ports/auth"
	"barkbuddy/internal/ports/images"
	"barkbuddy/internal/router"
)

// @title BarkBuddy API
// @version 1.0
// @description Catálogo de perros avistados: perros, avistamientos y razas.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "barkbuddy api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		BreedsCSVPath:  cfg.BreedsCSVPath,
		MaxUploadBytes: cfg.MaxUploadBytes,
		CORSOrigins:    cfg.CORSAllowedOrigins,
		Logger:         log,
	}

	// Storage: Postgres si hay DSN, si no in-memory (dev)
	if dsn := cfg.DSN(); dsn != "" {
		db, err := postgres.Open(ctx, dsn, postgres.DefaultPoolOptions())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		opts.DB = db
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (DB_DSN not set), data is lost on restart", nil)
	}

	imgs, err := newImageStore(ctx, cfg)
	if err != nil {
		return err
	}
	opts.Images = imgs
	log.Info("image store ready", map[string]any{"store": cfg.ImageStore})

	verifier, err := newVerifier(ctx, cfg, log)
	if err != nil {
		return err
	}
	if verifier == nil {
		log.Warn("auth: dev mode, X-Debug-User-ID accepted without verification", nil)
	} else {
		opts.AuthVerifier = verifier
		log.Info("auth: oidc", map[string]any{"issuer": cfg.Issuer(), "jwks": cfg.JWKSURL()})
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newImageStore(ctx context.Context, cfg *config.Config) (images.Store, error) {
	switch cfg.ImageStore {
	case config.ImageStoreS3:
		return s3store.New(ctx, s3store.Options{
			Region:        cfg.AWSRegion,
			Bucket:        cfg.S3Bucket,
			KeyPrefix:     cfg.S3KeyPrefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	case config.ImageStoreCloudinary:
		return cloudinarystore.New(cloudinarystore.Options{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		})
	default:
		return inline.New(), nil
	}
}

// newVerifier devuelve nil en modo dev (sin issuer configurado).
// El refresh del JWKS vive mientras ctx no se cancele.
func newVerifier(ctx context.Context, cfg *config.Config, log logger.Logger) (auth.AuthVerifier, error) {
	if cfg.Issuer() == "" {
		return nil, nil
	}
	keys, err := oidc.NewKeys(ctx, oidc.KeysOptions{
		URL:     cfg.JWKSURL(),
		HTTP:    httpclient.New(10 * time.Second),
		Refresh: cfg.AuthJWKSTTL,
		Log:     log,
	})
	if err != nil {
		return nil, err
	}
	return oidc.NewVerifier(oidc.Config{
		Issuer:   cfg.Issuer(),
		Audience: cfg.AuthAudience,
	}, keys), nil
}
