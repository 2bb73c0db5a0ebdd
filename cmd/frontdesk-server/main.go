package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sanvicente/frontdesk/internal/config"
	"github.com/sanvicente/frontdesk/internal/domain/doctor"
	"github.com/sanvicente/frontdesk/internal/domain/identity"
	"github.com/sanvicente/frontdesk/internal/domain/patient"
	"github.com/sanvicente/frontdesk/internal/domain/scheduling"
	"github.com/sanvicente/frontdesk/internal/platform/middleware"
	"github.com/sanvicente/frontdesk/internal/platform/notification"
	"github.com/sanvicente/frontdesk/internal/seed"
)

// PatientDirectoryAdapter adapts the patient service to the
// scheduling.PatientDirectory interface, avoiding circular imports
// between the scheduling and patient packages.
type PatientDirectoryAdapter struct {
	svc *patient.Service
}

// Lookup implements scheduling.PatientDirectory.
func (a *PatientDirectoryAdapter) Lookup(ctx context.Context, id uuid.UUID) (scheduling.Party, error) {
	p, err := a.svc.Get(ctx, id)
	if err != nil {
		return scheduling.Party{}, err
	}
	return scheduling.Party{ID: p.ID, Name: p.Name, Email: p.Email}, nil
}

// DoctorDirectoryAdapter adapts the doctor service to the
// scheduling.DoctorDirectory interface.
type DoctorDirectoryAdapter struct {
	svc *doctor.Service
}

// Lookup implements scheduling.DoctorDirectory.
func (a *DoctorDirectoryAdapter) Lookup(ctx context.Context, id uuid.UUID) (scheduling.Party, error) {
	d, err := a.svc.Get(ctx, id)
	if err != nil {
		return scheduling.Party{}, err
	}
	return scheduling.Party{ID: d.ID, Name: d.Name, Email: d.Email}, nil
}

// RecorderNotifier adapts the notification recorder to the
// scheduling.Notifier interface. Delivery failures are recorded in the
// email log and never propagate to the booking.
type RecorderNotifier struct {
	recorder *notification.Recorder
}

// AppointmentBooked implements scheduling.Notifier.
func (n *RecorderNotifier) AppointmentBooked(ctx context.Context, notice scheduling.BookingNotice) {
	n.recorder.SendAppointmentConfirmation(ctx, notification.ConfirmationData{
		RecipientEmail: notice.Patient.Email,
		PatientName:    notice.Patient.Name,
		DoctorName:     notice.Doctor.Name,
		Start:          notice.Appointment.StartTime,
		End:            notice.Appointment.EndTime,
		Reason:         notice.Appointment.Reason,
	})
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "frontdesk-server",
		Short: "San Vicente Hospital front desk API server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the front desk API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Repositories
	patientRepo := patient.NewMemRepository()
	doctorRepo := doctor.NewMemRepository()
	appointmentRepo := scheduling.NewMemRepository()

	// Identification uniqueness spans patients and doctors.
	identitySvc := identity.NewService(
		identity.PoolFunc(func(ctx context.Context) ([]identity.Entry, error) {
			patients, err := patientRepo.All(ctx)
			if err != nil {
				return nil, err
			}
			entries := make([]identity.Entry, 0, len(patients))
			for _, p := range patients {
				entries = append(entries, identity.Entry{OwnerID: p.ID, Code: p.Identification})
			}
			return entries, nil
		}),
		identity.PoolFunc(func(ctx context.Context) ([]identity.Entry, error) {
			doctors, err := doctorRepo.All(ctx)
			if err != nil {
				return nil, err
			}
			entries := make([]identity.Entry, 0, len(doctors))
			for _, d := range doctors {
				entries = append(entries, identity.Entry{OwnerID: d.ID, Code: d.Identification})
			}
			return entries, nil
		}),
	)

	// Email delivery. Without credentials the recorder still logs every
	// confirmation attempt; nothing leaves the process.
	var sender notification.EmailSender
	if cfg.EmailEnabled {
		sender = notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.Sender(), cfg.EmailUser, cfg.EmailPass)
		logger.Info().Str("host", cfg.SMTPHost).Int("port", cfg.SMTPPort).Msg("outgoing email enabled")
	} else {
		sender = notification.NopSender{}
		logger.Warn().Msg("EMAIL_ENABLED is false; confirmations are recorded but not delivered")
	}
	recorder := notification.NewRecorder(sender, notification.NewTemplateEngine())

	// Services
	patientSvc := patient.NewService(patientRepo, identitySvc)
	doctorSvc := doctor.NewService(doctorRepo, identitySvc)
	schedulingSvc := scheduling.NewService(
		&PatientDirectoryAdapter{svc: patientSvc},
		&DoctorDirectoryAdapter{svc: doctorSvc},
		appointmentRepo,
		&RecorderNotifier{recorder: recorder},
	)

	// Demo data
	if cfg.SeedDemo {
		if err := seed.New(patientSvc, doctorSvc, schedulingSvc).Run(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Domain handlers
	apiV1 := e.Group("/api/v1")
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)
	doctor.NewHandler(doctorSvc).RegisterRoutes(apiV1)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(apiV1)
	notification.NewHandler(recorder).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
