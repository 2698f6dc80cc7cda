package app

import (
	"context"
	"fmt"

	"github.com/barberops/backend/auth"
	"github.com/barberops/backend/config"
	"github.com/barberops/backend/middleware"
	"github.com/barberops/backend/repositories"
	"github.com/barberops/backend/repositories/postgres"
	"github.com/barberops/backend/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Repos     *repositories.Repositories
	TxManager repositories.TransactionManager

	// Auth
	TokenService   *auth.TokenService
	Registry       *auth.Registry
	Hasher         auth.SecretHasher
	Authenticator  *auth.Authenticator
	AuthMiddleware *middleware.AuthMiddleware

	// Services
	Shops       *services.ShopService
	Clients     *services.ClientService
	Users       *services.UserService
	Roles       *services.RoleService
	Permissions *services.PermissionService
	Email       services.EmailSender
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Initialize PostgreSQL
	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	deps.initRepositories()

	// Initialize auth
	if err := deps.initAuth(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	// Initialize services
	deps.initServices(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	// Verify the pool is usable before wiring anything on top of it
	if err := d.DB.HealthCheck(ctx); err != nil {
		return err
	}

	if cfg.Database.InitSchema {
		if err := d.DB.InitSchema(ctx); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	d.Repos = d.RepoFactory.NewRepositories()
	d.TxManager = d.RepoFactory.GetTransactionManager()
	d.Logger.Info("repositories initialized")
}

// initAuth wires the token service, role registry and login flow
func (d *Dependencies) initAuth(cfg *config.Config) error {
	tokens, err := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	d.TokenService = tokens
	d.Registry = auth.DefaultRegistry()
	d.Hasher = auth.NewBcryptHasher(0)

	store := services.NewRepositoryCredentialStore(d.Repos.Users)
	d.Authenticator = auth.NewAuthenticator(store, d.Hasher, tokens, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(tokens, d.Registry, d.Logger)

	d.Logger.Info("authentication initialized",
		zap.Duration("token_ttl", cfg.Auth.TokenTTL))
	return nil
}

// initServices wires the domain services
func (d *Dependencies) initServices(cfg *config.Config) {
	if cfg.SMTP.Enabled() {
		d.Email = services.NewSMTPEmailService(cfg.SMTP, d.Logger)
	} else {
		d.Email = services.NewNoopEmailService(d.Logger)
	}

	d.Shops = services.NewShopService(d.Repos, d.TxManager, d.Hasher, d.Email, d.Logger)
	d.Clients = services.NewClientService(d.Repos, d.Logger)
	d.Users = services.NewUserService(d.Repos, d.TxManager, d.Hasher, d.Registry, d.Logger)
	d.Roles = services.NewRoleService(d.Repos, d.TxManager, d.Logger)
	d.Permissions = services.NewPermissionService(d.Repos, d.Logger)

	d.Logger.Info("services initialized")
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
