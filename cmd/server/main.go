package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/stackmesh/go-auth"
	"github.com/stackmesh/go-auth/httpauth"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.SigningKey) == "" {
		logger.Fatalf("auth signing key is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	authLogger := logrusAdapter{log: logger}

	users := auth.NewUsersRepository(db,
		auth.WithBcryptCost(cfg.Auth.BcryptCost),
		auth.WithUsersLogger(authLogger),
	)

	if err := users.EnsureSchema(ctx); err != nil {
		logger.Fatalf("init users repository: %v", err)
	}

	if cfg.Auth.SeedUsers {
		if err := seedUsers(ctx, users, cfg.Auth.BcryptCost); err != nil {
			logger.Fatalf("seed users: %v", err)
		}
		logger.Info("seeded demo users")
	}

	authCfg := auth.Config{
		SigningKey: []byte(cfg.Auth.SigningKey),
		TokenTTL:   cfg.TokenTTL(),
		Issuer:     cfg.Auth.Issuer,
		BcryptCost: cfg.Auth.BcryptCost,
	}
	if err := authCfg.Validate(); err != nil {
		logger.Fatalf("auth config: %v", err)
	}

	tokens := auth.NewTokenService(authCfg, auth.WithTokenLogger(authLogger))

	app := fiber.New(fiber.Config{
		AppName:               "go-auth server",
		DisableStartupMessage: true,
	})

	controller := httpauth.NewController(users, tokens, httpauth.WithLogger(authLogger))
	controller.RegisterRoutes(app)

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logger.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

func openDatabase(path string) (*bun.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, err
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// seedUsers mirrors the canonical demo fixture: one active account, one
// disabled one, both with the password "secret".
func seedUsers(ctx context.Context, users auth.Users, bcryptCost int) error {
	hash, err := auth.HashPasswordCost("secret", bcryptCost)
	if err != nil {
		return err
	}

	return users.Seed(ctx, []*auth.User{
		{
			Username:     "johndoe",
			Email:        "johndoe@example.com",
			FullName:     "John Doe",
			PasswordHash: hash,
			Disabled:     false,
		},
		{
			Username:     "alice",
			Email:        "alice@example.com",
			FullName:     "Alice",
			PasswordHash: hash,
			Disabled:     true,
		},
	})
}
