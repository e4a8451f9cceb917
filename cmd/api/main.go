package main

import (
	"bufio"
	"context"
	crypto_rand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/doctor-api/internal/config"
	"github.com/jwalitptl/doctor-api/internal/handler/appointment"
	"github.com/jwalitptl/doctor-api/internal/handler/auth"
	"github.com/jwalitptl/doctor-api/internal/handler/dashboard"
	"github.com/jwalitptl/doctor-api/internal/handler/emergency"
	"github.com/jwalitptl/doctor-api/internal/handler/health"
	"github.com/jwalitptl/doctor-api/internal/handler/patient"
	"github.com/jwalitptl/doctor-api/internal/handler/prometheus"
	"github.com/jwalitptl/doctor-api/internal/middleware"
	"github.com/jwalitptl/doctor-api/internal/repository/postgres"
	"github.com/jwalitptl/doctor-api/internal/router"
	activityService "github.com/jwalitptl/doctor-api/internal/service/activity"
	appointmentService "github.com/jwalitptl/doctor-api/internal/service/appointment"
	authService "github.com/jwalitptl/doctor-api/internal/service/auth"
	dashboardService "github.com/jwalitptl/doctor-api/internal/service/dashboard"
	emergencyService "github.com/jwalitptl/doctor-api/internal/service/emergency"
	patientService "github.com/jwalitptl/doctor-api/internal/service/patient"
	"github.com/jwalitptl/doctor-api/internal/worker"
	jwtauth "github.com/jwalitptl/doctor-api/pkg/auth"
	"github.com/jwalitptl/doctor-api/pkg/circuitbreaker"
	"github.com/jwalitptl/doctor-api/pkg/logger"
	"github.com/jwalitptl/doctor-api/pkg/messaging"
	"github.com/jwalitptl/doctor-api/pkg/messaging/redis"
	"github.com/jwalitptl/doctor-api/pkg/metrics"
	"github.com/jwalitptl/doctor-api/pkg/security"
	"github.com/jwalitptl/doctor-api/pkg/validator"
)

const shutdownTimeout = 5 * time.Second

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "doctor-api",
		Short:        "Clinical practice management API",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (optional)")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return runServer(cfg)
		},
	}
}

// hashPasswordCmd prints a bcrypt hash for seeding the users table.
func hashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Read a password from stdin and print its bcrypt hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password := strings.TrimRight(line, "\r\n")
			if password == "" {
				return errors.New("empty password")
			}

			hash, err := security.NewBcryptChecker(cost).Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 12, "bcrypt cost")
	return cmd
}

func runServer(cfg *config.Config) error {
	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	validator.Register()
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize database
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	m := metrics.New("doctor")
	if err := m.RegisterDB(db.DB, cfg.Database.Name); err != nil {
		log.Warn().Err(err).Msg("failed to register database metrics")
	}

	// Activity feed broker
	var broker messaging.Broker = messaging.NopBroker{}
	if cfg.Redis.URL != "" {
		broker, err = redis.NewRedisBroker(ctx, redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
		}, log.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		broker = messaging.NewGuardedBroker(broker, circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis",
			MaxFailures: cfg.Redis.BreakerFailures,
			Timeout:     cfg.Redis.BreakerTimeout,
		}))
	} else {
		log.Info().Msg("REDIS_URL not set, activity events will not be published")
	}
	defer broker.Close()

	secret := cfg.JWT.Secret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		log.Warn().Msg("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	jwtSvc := jwtauth.NewJWTService(secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	// Initialize repositories
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	emergencyRepo := postgres.NewEmergencyRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Initialize services
	activitySvc := activityService.NewService(activityRepo, broker, cfg.Redis.Channel, m)
	authSvc := authService.NewService(userRepo, security.NewBcryptChecker(0), jwtSvc, m)
	dashboardSvc := dashboardService.NewService(dashboardRepo, activityRepo)
	patientSvc := patientService.NewService(patientRepo, activitySvc)
	appointmentSvc := appointmentService.NewService(appointmentRepo, activitySvc)
	emergencySvc := emergencyService.NewService(emergencyRepo, activitySvc)

	if cfg.Activity.RetentionDays > 0 {
		cleanup := worker.NewActivityCleanupWorker(activityRepo, cfg.Activity.RetentionDays, cfg.Activity.CleanupInterval)
		go cleanup.Start(ctx)
	}

	// Setup router
	r := router.NewRouter(middleware.NewAuthMiddleware(jwtSvc), router.Handlers{
		Health:      health.NewHandler(db),
		Metrics:     prometheus.New(m),
		Auth:        auth.NewHandler(authSvc),
		Dashboard:   dashboard.NewHandler(dashboardSvc),
		Patient:     patient.NewHandler(patientSvc),
		Appointment: appointment.NewHandler(appointmentSvc),
		Emergency:   emergency.NewHandler(emergencySvc),
	}, router.RouterConfig{
		RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:      cfg.RateLimit.Burst,
		CORSConfig:     middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins),
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodySize:    middleware.DefaultMaxBodySize,
		AuthRequired:   cfg.JWT.AuthRequired,
		StaticDir:      cfg.Server.StaticDir,
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server...")
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := crypto_rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
