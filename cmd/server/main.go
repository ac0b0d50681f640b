package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/blog-system/blog-api/internal/api"
	"github.com/blog-system/blog-api/internal/core/service"
	"github.com/blog-system/blog-api/internal/pkg/config"
	"github.com/blog-system/blog-api/pkg/logger"
)

// @title        Blog API
// @version      1.0
// @description  Posts CRUD and user registration over HTTP/JSON.
// @host         localhost:8080
// @BasePath     /
func main() {
	if err := run(); err != nil {
		l := logger.Get()
		l.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "blog-api"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blog-api",
	})

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	idempotency, redisCheck, closeRedis, err := openIdempotency(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRedis()

	checks := store.checks
	postOpts := []service.PostServiceOption{}
	if idempotency != nil {
		checks = append(checks, *redisCheck)
		postOpts = append(postOpts, service.WithIdempotencyStore(idempotency))
	}

	encoder, err := service.NewPasswordEncoder(cfg.PasswordEncoder)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		PostService:   service.NewPostService(store.posts, logger.For("posts"), postOpts...),
		UserService:   service.NewUserService(store.users, encoder, logger.For("users")),
		Checks:        checks,
		Logger:        logger.For("http"),
		EnableMetrics: cfg.MetricsEnabled,
		EnableSwagger: cfg.SwaggerEnabled,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Str("password_encoder", cfg.PasswordEncoder).
			Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
