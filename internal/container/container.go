package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/realestate-ads/app/db"
	"github.com/FACorreiaa/realestate-ads/config"
	"github.com/FACorreiaa/realestate-ads/internal/api/announcement"
	"github.com/FACorreiaa/realestate-ads/internal/api/auth"
	"github.com/FACorreiaa/realestate-ads/internal/api/company"
	"github.com/FACorreiaa/realestate-ads/internal/api/user"
	"github.com/FACorreiaa/realestate-ads/internal/notify"
	"github.com/FACorreiaa/realestate-ads/internal/router"
	"github.com/FACorreiaa/realestate-ads/internal/storage"
)

// Container holds all application dependencies
type Container struct {
	Config              *config.Config
	Logger              *slog.Logger
	Pool                *pgxpool.Pool
	Gate                *auth.Gate
	AuthHandler         *auth.AuthHandler
	AnnouncementHandler *announcement.AnnouncementHandler
	CompanyHandler      *company.CompanyHandler
	UserHandler         *user.HandlerImpl
}

// NewContainer runs migrations, opens the pool and wires repositories,
// services and handlers.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: logger, Pool: pool}

	if !database.WaitForDB(ctx, pool, logger) {
		c.Close()
		return nil, errors.New("database not ready")
	}

	images, err := storage.NewMinioStore(ctx, cfg.Storage.Minio, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize image storage: %w", err)
	}
	mailer := notify.NewMailer(cfg.Mail, logger)

	tokens, err := auth.NewTokenService(cfg.JWT)
	if err != nil {
		c.Close()
		return nil, err
	}

	// auth
	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	identities := auth.NewIdentityCache(authRepo, cfg.Security.IdentityCacheTTL)
	c.Gate = auth.NewGate(*cfg, tokens, identities, logger)
	authService := auth.NewAuthService(authRepo, tokens, cfg.JWT.RefreshWindow, logger)
	c.AuthHandler = auth.NewAuthHandler(authService, c.Gate.Header(), logger)

	// announcements
	announcementRepo := announcement.NewPostgresAnnouncementRepo(pool, logger)
	announcementService := announcement.NewAnnouncementService(announcementRepo, images, mailer, logger)
	c.AnnouncementHandler = announcement.NewAnnouncementHandler(announcementService, logger)

	// companies
	companyRepo := company.NewPostgresCompanyRepo(pool, logger)
	c.CompanyHandler = company.NewCompanyHandler(company.NewCompanyService(companyRepo, logger), logger)

	// users
	userRepo := user.NewPostgresUserRepo(pool, logger)
	c.UserHandler = user.NewHandlerImpl(user.NewUserService(userRepo, logger), logger)

	return c, nil
}

// RouterConfig hands the wired handlers to the router.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		AuthHandler:         c.AuthHandler,
		AnnouncementHandler: c.AnnouncementHandler,
		CompanyHandler:      c.CompanyHandler,
		UserHandler:         c.UserHandler,
		Gate:                c.Gate,
		AllowedOrigins:      c.Config.Security.AllowedOrigins,
		Logger:              c.Logger,
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
