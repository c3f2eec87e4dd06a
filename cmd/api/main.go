package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/agencyops/crm-system/internal/api"
	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
	"github.com/agencyops/crm-system/internal/infrastructure/db/memory"
	"github.com/agencyops/crm-system/internal/infrastructure/db/mongo"
	"github.com/agencyops/crm-system/internal/infrastructure/db/redis"
	"github.com/agencyops/crm-system/internal/pkg/config"
	"github.com/agencyops/crm-system/pkg/logger"

	_ "github.com/agencyops/crm-system/docs"
)

// @title           CRM API
// @version         1.0
// @description     Clients, orders, invoices, users, and role-based access.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	deps := api.Deps{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		UploadDir: cfg.UploadDir,
		Log:       logger.Component("api"),
	}

	// --- Store driver ---
	var mongoClient *gomongo.Client
	switch cfg.StoreDriver {
	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect failed")
		}
		mongoClient = client

		store := mongo.NewStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}
		deps.Users = store.Users()
		deps.Clients = store.Clients()
		deps.Orders = store.Orders()
		deps.Invoices = store.Invoices()
		deps.Stats = store
		deps.Mongo = db
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
	case "memory":
		store := memory.NewStore()
		deps.Users = store.Users()
		deps.Clients = store.Clients()
		deps.Orders = store.Orders()
		deps.Invoices = store.Invoices()
		deps.Stats = store
		log.Info().Msg("using in-memory store")
	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown STORE_DRIVER")
	}

	// --- Token revoker ---
	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		redisClient = client
		deps.Revoker = redis.NewTokenRevoker(client)
		deps.Redis = client
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis token revoker")
	} else {
		deps.Revoker = memory.NewTokenRevoker()
		log.Info().Msg("using in-memory token revoker")
	}

	if cfg.BootstrapAdmin {
		if err := bootstrapAdmin(ctx, deps.Users, log); err != nil {
			log.Fatal().Err(err).Msg("admin bootstrap failed")
		}
	}

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info().Msg("shutdown complete")
}

// bootstrapAdmin seeds the default admin/admin account when no user with
// that username exists, so a fresh deployment is reachable. The credential
// is meant to be rotated immediately.
func bootstrapAdmin(ctx context.Context, users ports.UserRepository, log zerolog.Logger) error {
	_, err := users.GetByUsername(ctx, "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = users.Create(ctx, &domain.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Name:         "Administrator",
		Email:        "admin@example.com",
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Warn().Msg("seeded default admin account; change its password")
	return nil
}
