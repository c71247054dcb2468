package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"asf-backend/internal/auth"
	"asf-backend/internal/cache"
	"asf-backend/internal/config"
	"asf-backend/internal/database"
	"asf-backend/internal/db"
	"asf-backend/internal/handlers"
	"asf-backend/internal/health"
	h "asf-backend/internal/http"
	"asf-backend/internal/middleware"
	"asf-backend/internal/numbering"
	"asf-backend/internal/repositories"
	"asf-backend/internal/services"
	"asf-backend/internal/storage"
	"asf-backend/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run pending migrations and start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.NewMigrator(pool, migrations.FS).RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	// Redis is optional; stats are recomputed on every request without it
	redisCache, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, caching disabled")
	} else {
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}
	defer redisCache.Close()

	archive, err := storage.NewArchive(ctx, cfg)
	if err != nil {
		return fmt.Errorf("object storage: %w", err)
	}
	if archive.Enabled() {
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("invoice pdf archiving enabled")
	}

	handler := buildHandler(cfg, pool, redisCache, archive)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Environment).Msg("server running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildHandler(cfg *config.Config, pool *pgxpool.Pool, redisCache *cache.Cache, archive *storage.Archive) http.Handler {
	jwtManager := auth.NewJWTManager(cfg)

	userRepo := repositories.NewUserRepository(pool)
	clientRepo := repositories.NewClientRepository(pool)
	companyRepo := repositories.NewCompanyRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	manpowerRepo := repositories.NewManpowerRepository(pool)

	userService := services.NewUserService(userRepo, jwtManager)
	clientService := services.NewClientService(clientRepo)
	companyService := services.NewCompanyService(companyRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, clientRepo, redisCache, services.InvoiceSettings{
		Pattern: numbering.InvoicePattern(
			cfg.Invoice.NumberPrefix,
			cfg.Invoice.StartNumber,
			cfg.Invoice.NumberWidth,
			cfg.Invoice.Lookback,
		),
		AllocationAttempts: cfg.Invoice.AllocationAttempts,
		DefaultDueDays:     cfg.Invoice.DefaultDueDays,
	})
	manpowerService := services.NewManpowerService(
		manpowerRepo,
		clientRepo,
		numbering.EmployeePattern(cfg.Employee.IDPrefix, cfg.Employee.StartNumber, cfg.Invoice.Lookback),
		cfg.Invoice.AllocationAttempts,
	)

	router := h.NewRouter(h.Handlers{
		Auth:     handlers.NewAuthHandler(userService, cfg.IsProduction()),
		Client:   handlers.NewClientHandler(clientService),
		Manpower: handlers.NewManpowerHandler(manpowerService),
		Invoice:  handlers.NewInvoiceHandler(invoiceService, companyService, archive),
		Company:  handlers.NewCompanyHandler(companyService),
		Health:   handlers.NewHealthHandler(health.NewHealthChecker(pool, redisCache, redisCache.Enabled())),
	}, middleware.NewAuthMiddleware(jwtManager, userRepo))

	return h.Wrap(router, middleware.NewCORS(cfg))
}
