package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/upasthiti/admin-console/internal/api"
	"github.com/upasthiti/admin-console/internal/auth"
	"github.com/upasthiti/admin-console/internal/cdn"
	"github.com/upasthiti/admin-console/internal/config"
	"github.com/upasthiti/admin-console/internal/cron"
	"github.com/upasthiti/admin-console/internal/db"
	"github.com/upasthiti/admin-console/internal/gateway"
	"github.com/upasthiti/admin-console/internal/identity"
	"github.com/upasthiti/admin-console/internal/logging"
	"github.com/upasthiti/admin-console/internal/session"
)

const (
	revalidateTimeout = 5 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.Development())
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, health, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	backend := gateway.New(cfg.BackendBaseURL, cfg.BackendTimeout,
		gateway.WithLogger(logger),
		gateway.WithMetrics(gateway.NewMetrics(registry)),
		gateway.WithSigningURL(cfg.SigningBaseURL),
	)
	uploader := cdn.NewUploader(cfg.CDNBaseURL, cfg.CDNCloudName, &http.Client{Timeout: cfg.BackendTimeout})

	policy, err := session.ParseRefreshPolicy(cfg.ProfileRefreshPolicy)
	if err != nil {
		return err
	}
	profiles := session.NewCache(backend, uploader, store,
		session.WithPolicy(policy),
		session.WithLogger(logger),
		session.WithFolder(cfg.CDNFolder),
	)
	defer profiles.Wait()
	settings := session.NewSettings(store, logger)

	idOpts := []identity.FirebaseOption{identity.WithBaseURL(cfg.IdentityBaseURL), identity.WithLogger(logger)}
	if cfg.FirebaseCredentialsFile != "" {
		admin, err := identity.NewAdminClient(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			return err
		}
		idOpts = append(idOpts, identity.WithAdmin(admin))
	}
	provider := identity.NewFirebase(cfg.FirebaseAPIKey, idOpts...)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authHandler := auth.NewHandler(tokens, provider, profiles.Forget, logger).
		WithAdminCheck(func(ctx context.Context, uid string) error {
			_, err := backend.Admin(ctx, uid)
			if errors.Is(err, gateway.ErrNotFound) {
				return auth.ErrNotAdmin
			}
			return err
		})
	if cfg.GoogleClientID != "" {
		authHandler.WithGoogle(auth.GoogleConfig(cfg))
	}

	var signer *cdn.Signer
	if cfg.CDNAPISecret != "" {
		signer = cdn.NewSigner(cfg.CDNAPIKey, cfg.CDNAPISecret)
	}

	scheduler, err := cron.StartJobs(cfg.ProfileRevalidateSchedule, revalidateTimeout, profiles, logger)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { <-scheduler.Stop().Done() }()
	}

	router := api.SetupRouter(api.Server{
		API: api.NewHandler(backend, profiles, settings, provider, api.DefaultPasswords{
			Faculty: cfg.DefaultFacultyPassword,
			Student: cfg.DefaultStudentPassword,
		}, logger),
		Auth:    authHandler,
		Tokens:  tokens,
		Signer:  signer,
		Folder:  cfg.CDNFolder,
		Health:  health,
		Metrics: registry,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore picks redis when REDIS_ADDR is set and the SQL database otherwise.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, func() error, func(), error) {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, nil, err
		}
		logger.Info("session state in redis", zap.String("addr", cfg.RedisAddr))
		health := func() error { return rdb.Ping(context.Background()).Err() }
		return db.NewRedisStore(rdb), health, func() { rdb.Close() }, nil
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("session state in sql database")
	health := func() error { return db.Ping(conn) }
	closeFn := func() {
		if err := db.Close(conn); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}
	return db.NewStore(conn), health, closeFn, nil
}
