package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	httpapi "github.com/summitlog/summitlog/internal/http"
	"github.com/summitlog/summitlog/internal/mailer"
	"github.com/summitlog/summitlog/internal/service"
	"github.com/summitlog/summitlog/internal/store"
	"github.com/summitlog/summitlog/internal/store/drivers/sqlite"
	"github.com/summitlog/summitlog/pkg/jwtx"
	"github.com/summitlog/summitlog/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires configuration, storage, services and the HTTP
// server together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	authService         *service.AuthService
	userService         *service.UserService
	googleAuthService   *service.GoogleAuthService
	achievementService  *service.AchievementService
	skillService        *service.SkillService
	goalService         *service.GoalService
	categoryService     *service.CategoryService
	adminService        *service.AdminService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "summitlog",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("summitlog starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops background work and closes
// the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down summitlog...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "err", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "err", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "err", err)
		return err
	}

	app.logger.Info("summitlog stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) buildMailer() mailer.Mailer {
	if app.cfg.SendGridAPIKey == "" {
		app.logger.Info("no mail provider configured, mail goes to the log")
		return &mailer.LogMailer{Logger: app.logger}
	}
	return &mailer.SendGridMailer{
		APIKey:    app.cfg.SendGridAPIKey,
		FromEmail: app.cfg.MailFromEmail,
		FromName:  app.cfg.MailFromName,
	}
}

func (app *Application) initServices() {
	signer := jwtx.NewSigner([]byte(app.cfg.JWTSecret), app.cfg.Issuer)

	otpService := &service.OTPService{
		Store:  app.db,
		Mailer: app.buildMailer(),
		TTL:    app.cfg.OTPTTL,
	}

	app.authService = &service.AuthService{
		Store:     app.db,
		OTP:       otpService,
		Signer:    signer,
		AccessTTL: app.cfg.AccessTokenTTL,
	}

	app.userService = &service.UserService{Store: app.db}
	app.achievementService = &service.AchievementService{Store: app.db}
	app.skillService = &service.SkillService{Store: app.db}
	app.goalService = &service.GoalService{Store: app.db}
	app.categoryService = &service.CategoryService{Store: app.db}
	app.adminService = &service.AdminService{Store: app.db}

	if app.cfg.GoogleClientID != "" {
		app.googleAuthService = &service.GoogleAuthService{
			Store: app.db,
			Auth:  app.authService,
			Config: &oauth2.Config{
				ClientID:     app.cfg.GoogleClientID,
				ClientSecret: app.cfg.GoogleClientSecret,
				RedirectURL:  app.cfg.GoogleRedirectURL,
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
		}
		app.logger.Info("google sign-in enabled")
	} else {
		app.logger.Info("google sign-in disabled, no client id configured")
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	signer := jwtx.NewSigner([]byte(app.cfg.JWTSecret), app.cfg.Issuer)

	router := httpapi.NewRouter(
		signer,
		BuildVersion,
		app.cfg.AccessTokenTTL,
		app.db,
		app.logger,
	)
	router.AuthService = app.authService
	router.UserService = app.userService
	router.GoogleAuthService = app.googleAuthService
	router.AchievementService = app.achievementService
	router.SkillService = app.skillService
	router.GoalService = app.goalService
	router.CategoryService = app.categoryService
	router.AdminService = app.adminService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
