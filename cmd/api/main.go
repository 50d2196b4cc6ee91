package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/gestion-centros/internal/application/auth"
	"github.com/jhoicas/gestion-centros/internal/application/ports"
	"github.com/jhoicas/gestion-centros/internal/application/usecase"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/domain/repository"
	infraMail "github.com/jhoicas/gestion-centros/internal/infrastructure/mail"
	"github.com/jhoicas/gestion-centros/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/gestion-centros/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-centros/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gestion-centros/internal/interfaces/http"
	"github.com/jhoicas/gestion-centros/pkg/config"
	"github.com/jhoicas/gestion-centros/pkg/logger"
)

// Centros de demostración para APP_STORAGE=memory (mismos que la migración 002).
var centrosDemo = []entity.Centro{
	{ID: 9101, Nombre: "Centro Agroindustrial del Meta"},
	{ID: 9203, Nombre: "Centro de Diseño e Innovación Tecnológica Industrial"},
	{ID: 9227, Nombre: "Centro de Gestión Industrial"},
	{ID: 9549, Nombre: "Centro de Servicios Financieros"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()

	var (
		userRepo      repository.UserRepository
		centroRepo    repository.CentroRepository
		solicitudRepo repository.SolicitudRepository
		txRunner      ports.SolicitudTxRunner
	)
	if cfg.App.UseMemory() {
		userRepo = memory.NewUserRepository()
		centroRepo = memory.NewCentroRepository(centrosDemo...)
		memSolicitudes := memory.NewSolicitudRepository()
		solicitudRepo = memSolicitudes
		txRunner = memory.NewTxRunner(memSolicitudes)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		for _, name := range applied {
			log.Info().Str("migracion", name).Msg("migración aplicada")
		}

		userRepo = postgres.NewUserRepository(pool)
		centroRepo = postgres.NewCentroRepository(pool)
		solicitudRepo = postgres.NewSolicitudRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	// Correo: SMTP si está configurado; si no, el enlace solo queda en el log.
	var mailer ports.Mailer
	if cfg.SMTP.Enabled() {
		mailer = infraMail.NewSMTPMailer(cfg.SMTP)
	} else {
		mailer = infraMail.NewLogMailer(log.Zerolog())
	}

	authUC := auth.NewAuthUseCase(userRepo, mailer, auth.JWTConfig{
		Secret:       cfg.JWT.Secret,
		ExpMinutes:   cfg.JWT.Expiration,
		Issuer:       cfg.JWT.Issuer,
		ResetMinutes: cfg.JWT.ResetMinutes,
	}, cfg.SMTP.ResetURL)

	if cfg.Admin.Cedula > 0 {
		created, err := authUC.EnsureAdmin(ctx, auth.AdminSeed{
			Cedula:   cfg.Admin.Cedula,
			Correo:   cfg.Admin.Correo,
			Password: cfg.Admin.Password,
			CentroID: cfg.Admin.CentroID,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("administrador inicial")
		}
		if created {
			log.Info().Int64("cedula", cfg.Admin.Cedula).Msg("administrador inicial creado")
		}
	}

	userUC := usecase.NewUserUseCase(userRepo, centroRepo, infrapdf.NewMarotoUserReport())
	centroUC := usecase.NewCentroUseCase(centroRepo)
	solicitudUC := usecase.NewSolicitudUseCase(solicitudRepo, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión de Centros API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		CentroUC:    centroUC,
		SolicitudUC: solicitudUC,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
