package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	models "github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/api"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/auth"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/ports"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/repository"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/service"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/utils"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/pkg/config"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/pkg/health"
)

type App struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
	db     *pgxpool.Pool
	tokens *auth.TokenManager
}

func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	return &App{
		config: cfg,
		logger: logger,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	if err := a.setupServer(); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	config, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupServer() error {
	a.tokens = auth.NewTokenManager(a.config.Auth.JWTSecret, a.config.Auth.TokenTTL)
	services := a.setupServices()
	router := a.setupRouter(services)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      router,
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

type Services struct {
	BookingService ports.BookingService
	CarService     ports.CarService
	AuthService    ports.AuthService
}

func (a *App) setupServices() Services {
	bookingRepo := repository.NewBookingRepository(a.db)
	carRepo := repository.NewCarRepository(a.db)
	userRepo := repository.NewUserRepository(a.db)

	fees := models.FeeSchedule{ServiceFeeCents: a.config.Pricing.ServiceFeeCents}

	return Services{
		BookingService: service.NewBookingService(bookingRepo, carRepo, fees, a.logger),
		CarService:     service.NewCarService(carRepo, a.logger),
		AuthService:    service.NewAuthService(userRepo, a.tokens, a.logger),
	}
}

func (a *App) setupRouter(services Services) http.Handler {
	router := http.NewServeMux()
	const versionPrefix = "/v1"

	router.HandleFunc(versionPrefix+"/health", health.HealthGet(a.db))

	router.HandleFunc(versionPrefix+"/auth/register", a.route(
		utils.AllowedContentTypes(api.RegisterHandler(services.AuthService), "application/json"),
		"POST",
	))
	router.HandleFunc(versionPrefix+"/auth/login", a.route(
		utils.AllowedContentTypes(api.LoginHandler(services.AuthService), "application/json"),
		"POST",
	))

	router.HandleFunc(versionPrefix+"/cars", a.route(
		utils.AuthenticatedMethods(
			utils.AllowedContentTypes(api.CarsHandler(services.CarService), "application/json"),
			a.tokens,
			"POST",
		),
		"GET", "POST",
	))

	router.HandleFunc(versionPrefix+"/bookings", a.route(
		utils.Authenticated(
			utils.AllowedContentTypes(api.BookingHandler(services.BookingService), "application/json"),
			a.tokens,
		),
		"POST", "GET",
	))
	router.HandleFunc(versionPrefix+"/bookings/", a.route(
		utils.Authenticated(
			utils.AllowedContentTypes(api.BookingItemHandler(services.BookingService), "application/json"),
			a.tokens,
		),
		"DELETE", "PATCH",
	))

	return router
}

func (a *App) route(h http.HandlerFunc, methods ...string) http.HandlerFunc {
	return utils.RequestLogged(utils.AllowedMethods(h, methods...), a.logger)
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.logger.Info("starting server", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		a.logger.Info("starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	app := NewApp(cfg, logger)
	if err := app.Initialize(ctx); err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Run(ctx); err != nil {
		logger.Fatal("application error", zap.Error(err))
	}
}
