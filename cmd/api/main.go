package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/booking-payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/repository/mongodb"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/booking-payroll-backend-go/internal/service/auth"
	bookingService "github.com/cmlabs-hris/booking-payroll-backend-go/internal/service/booking"
	dashboardService "github.com/cmlabs-hris/booking-payroll-backend-go/internal/service/dashboard"
	payrollService "github.com/cmlabs-hris/booking-payroll-backend-go/internal/service/payroll"
	workerService "github.com/cmlabs-hris/booking-payroll-backend-go/internal/service/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bookingRepo, workerRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	metricsManager := metrics.NewManager()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fetcher := payrollService.NewFetcher(bookingRepo, workerRepo, metricsManager)

	scheduler := cron.NewScheduler()
	scheduler.AddJob(cron.Job{
		Name:     "record-refresh",
		Interval: cfg.Store.RefreshInterval,
		Timeout:  30 * time.Second,
		Fn: func(ctx context.Context) error {
			_, err := fetcher.Refresh(ctx)
			return err
		},
	})
	if err := scheduler.Start(ctx); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	authService := serviceAuth.NewAuthService(JWTService, serviceAuth.AdminAccount{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
	})
	bookingSvc := bookingService.NewBookingService(bookingRepo, metricsManager)
	workerSvc := workerService.NewWorkerService(workerRepo, metricsManager)
	payrollSvc := payrollService.NewPayrollService(bookingRepo, workerRepo, fetcher, metricsManager)
	dashboardSvc := dashboardService.NewDashboardService(fetcher, metricsManager)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         log,
			AllowedOrigins: cfg.App.CORSOrigins,
			Metrics:        metricsManager.Handler(),
		},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewBookingHandler(bookingSvc),
		appHTTP.NewWorkerHandler(workerSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", srv.Addr, "store", cfg.Store.Driver, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// openStore builds the booking and worker repositories for the configured
// driver. The returned func releases the connection.
func openStore(ctx context.Context, cfg *config.Config) (booking.BookingRepository, worker.WorkerRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		db, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := db.Close(closeCtx); err != nil {
				slog.Error("failed to disconnect from MongoDB", "error", err)
			}
		}
		return mongodb.NewBookingRepository(db), mongodb.NewWorkerRepository(db), closeFn, nil

	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, nil, err
		}
		return postgresql.NewBookingRepository(db), postgresql.NewWorkerRepository(db), db.Close, nil

	case config.StoreMemory:
		now := time.Now().UTC()
		slog.Warn("using in-memory store with demo data; changes are lost on restart")
		return memory.NewBookingRepository(fixtures.DemoBookings(now)...),
			memory.NewWorkerRepository(fixtures.DemoWorkers(now)...),
			func() {}, nil
	}
	return nil, nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}
