// @title           EFG Events Portal API
// @version         1.0
// @description     Attendee registration, review and check-in for EFG conference events.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"efgportal/config"
	_ "efgportal/docs"
	"efgportal/internal/adapters/auth"
	"efgportal/internal/adapters/email"
	"efgportal/internal/adapters/queue"
	deliveryhttp "efgportal/internal/delivery/http"
	"efgportal/internal/delivery/http/controllers"
	"efgportal/internal/delivery/http/middleware"
	"efgportal/internal/domain"
	"efgportal/internal/metrics"
	"efgportal/internal/repository/cache"
	"efgportal/internal/repository/memory"
	"efgportal/internal/repository/postgres"
	"efgportal/internal/services"
	"efgportal/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type repositories struct {
	users         domain.UserRepository
	profiles      domain.ProfileRepository
	lookups       domain.LookupRepository
	events        domain.EventRepository
	registrations domain.EventRegistrationRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		repos.events = cache.NewEventRepository(repos.events, cache.NewRedisKV(client), cfg.EventCacheTTL, logger)
		logger.Info("event catalog cache enabled", "ttl", cfg.EventCacheTTL)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	emailNotifier := services.NewEmailNotifier(repos.profiles, repos.events, emailService)

	var notifier domain.RegistrationNotifier
	switch cfg.NotifyTransport {
	case config.NotifyDirect:
		notifier = emailNotifier
	case config.NotifyAMQP:
		client, err := queue.Dial(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		deliveries, err := client.Consume("efgportal-notifier", 10)
		if err != nil {
			return err
		}
		w := worker.NewNotificationWorker(emailNotifier, logger)
		go func() {
			if err := w.Run(ctx, deliveries); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("notification worker stopped", "err", err)
			}
		}()
		notifier = client
	}
	logger.Info("registration notifications", "transport", cfg.NotifyTransport)

	timeout := cfg.RequestTimeout
	workflow := services.NewRegistrationWorkflow(repos.events, repos.registrations, notifier, m, logger)
	authService := services.NewAuthService(
		repos.users,
		auth.NewBcryptHasher(0),
		auth.NewJWTIssuer(cfg.JWTSecret),
		cfg.JWTExpiry,
		emailService,
		logger,
		timeout,
	)
	profileService := services.NewProfileService(repos.profiles, repos.lookups, timeout)
	catalogService := services.NewCatalogService(repos.events, timeout)
	attendeeService := services.NewAttendeeService(repos.profiles, repos.events, repos.registrations, workflow, timeout)
	adminService := services.NewAdminService(repos.profiles, repos.events, repos.registrations, workflow, timeout)

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:     controllers.NewAuthController(logger, authService),
		Profile:  controllers.NewProfileController(logger, profileService),
		Events:   controllers.NewEventController(logger, catalogService),
		Attendee: controllers.NewAttendeeController(logger, attendeeService),
		Admin:    controllers.NewAdminController(logger, adminService),
	}, auth.NewJWTVerifier(cfg.JWTSecret), promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), logger)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.LoggingMiddleware(logger, m.Middleware(mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "storage", cfg.Storage)
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, func(), error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.NewStore()
		store.SeedDefaults()
		logger.Warn("using in-memory storage; data is lost on restart")
		return &repositories{
			users:         memory.NewUserRepository(store),
			profiles:      memory.NewProfileRepository(store),
			lookups:       memory.NewLookupRepository(store),
			events:        memory.NewEventRepository(store),
			registrations: memory.NewEventRegistrationRepository(store),
		}, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.Migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return &repositories{
		users:         postgres.NewUserRepository(db),
		profiles:      postgres.NewProfileRepository(db),
		lookups:       postgres.NewLookupRepository(db),
		events:        postgres.NewEventRepository(db),
		registrations: postgres.NewEventRegistrationRepository(db),
	}, func() { _ = db.Close() }, nil
}
