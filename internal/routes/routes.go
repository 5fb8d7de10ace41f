package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/amirx1991/patient-auth/internal/config"
	"github.com/amirx1991/patient-auth/internal/identity"
	"github.com/amirx1991/patient-auth/internal/middleware"
	"github.com/amirx1991/patient-auth/internal/notification"
	"github.com/amirx1991/patient-auth/internal/otp"
	"github.com/amirx1991/patient-auth/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Collaborators: fall back to in-memory stand-ins in dev mode.
	var store otp.Store
	if d.Cache != nil {
		store = otp.NewRedisStore(d.Cache)
	} else {
		store = otp.NewMemoryStore()
	}

	var directory identity.Repository
	if d.DB != nil {
		directory = identity.NewPostgresRepository(d.DB)
	} else {
		seeded := identity.NewMemoryRepository()
		demo := seeded.Add(identity.User{
			Username:  "demo-patient",
			FirstName: "Demo",
			LastName:  "Patient",
			Phone:     "+989120000000",
			Role:      identity.RolePatient,
		})
		d.Logger.Warn("using in-memory directory with seeded demo patient", "patient_id", demo.ID, "phone", demo.Phone)
		directory = seeded
	}

	var generator otp.Generator
	if d.Cfg.IsDev() {
		// Mirrors the fixed code used by local clients before an SMS
		// channel is configured.
		generator = otp.FixedGenerator("12345")
		d.Logger.Warn("using fixed OTP generator, do not run this outside development")
	} else {
		generator = otp.NewRandomGenerator(d.Cfg.OTPLength)
	}

	dispatcher := notification.NewDispatcher(notification.NewLoggerNotifier(d.Logger), d.Logger, 64)
	app.Hooks().OnShutdown(func() error {
		dispatcher.Close()
		return nil
	})

	minter := token.NewMinter(d.Cfg.JWTSecret, d.Cfg.RefreshSecret, d.Cfg.AccessTokenTTL, d.Cfg.RefreshTokenTTL)
	authenticator := token.NewAuthenticator(d.Cfg.JWTSecret, token.PrincipalPatient)

	otpSvc := otp.NewService(directory, store, generator, dispatcher, minter, d.Cfg.OTPTTL, d.Logger)
	otpHandler := otp.NewHandler(otpSvc)

	rateLimiter := middleware.OTPRateLimit(d.Cache, 5)
	RegisterOTPRoutes(app, otpHandler, rateLimiter)

	patientAuth := middleware.PatientAuth(authenticator, directory)
	RegisterProfileRoutes(app, patientAuth)

	return nil
}
