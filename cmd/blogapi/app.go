package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ErlanBelekov/blog-api/config"
	"github.com/ErlanBelekov/blog-api/internal/auth"
	"github.com/ErlanBelekov/blog-api/internal/email"
	"github.com/ErlanBelekov/blog-api/internal/health"
	"github.com/ErlanBelekov/blog-api/internal/infrastructure/memory"
	"github.com/ErlanBelekov/blog-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/blog-api/internal/log"
	"github.com/ErlanBelekov/blog-api/internal/repository"
	"github.com/ErlanBelekov/blog-api/internal/usecase"
	"github.com/lmittmann/tint"
)

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

// stores bundles the repositories of the selected backend.
type stores struct {
	name   string
	users  repository.UserRepository
	posts  repository.PostRepository
	pinger health.Pinger
	close  func()
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on exit")
		s := memory.NewStore()
		return &stores{name: config.StoreMemory, users: s.Users(), posts: s.Posts(), pinger: s, close: func() {}}, nil
	}

	if cfg.MigrateOnStart {
		if err := migrate(ctx, cfg.DatabaseURL, (*postgres.Migrator).Up); err != nil {
			return nil, err
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	return &stores{
		name:   config.StorePostgres,
		users:  postgres.NewUserRepository(pool),
		posts:  postgres.NewPostRepository(pool),
		pinger: pool,
		close:  pool.Close,
	}, nil
}

func newUsecases(cfg *config.Config, st *stores, logger *slog.Logger) (*usecase.AuthUsecase, *usecase.PostUsecase) {
	authUsecase := usecase.NewAuthUsecase(
		st.users,
		auth.NewTokenIssuer([]byte(cfg.JWTSecret)),
		auth.NewPasswordHasher(cfg.BcryptCost),
		email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.MailFrom, logger),
		logger,
	)
	postUsecase := usecase.NewPostUsecase(st.posts, st.users, logger)
	return authUsecase, postUsecase
}
