package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-centros/internal/application/auth"
	"github.com/jhoicas/gestion-centros/internal/application/usecase"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	CentroUC    *usecase.CentroUseCase
	SolicitudUC *usecase.SolicitudUseCase
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	admin := entity.TipoAdministrador.String()
	instructor := entity.TipoInstructor.String()
	almacen := entity.TipoAlmacen.String()

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Centros (cualquier usuario autenticado)
	centroHandler := NewCentroHandler(deps.CentroUC)
	protected.Get("/centros", centroHandler.List)

	// Usuarios (solo administrador); /reporte antes de /:cedula
	usuarios := protected.Group("/usuarios", RequireRole(admin))
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	usuarios.Get("/", userHandler.List)
	usuarios.Get("/reporte", userHandler.Report)
	usuarios.Get("/:cedula", userHandler.GetByCedula)
	usuarios.Put("/:cedula", userHandler.Update)
	usuarios.Delete("/:cedula", userHandler.Delete)

	// Solicitudes de almacén
	solicitudes := protected.Group("/solicitudes")
	solicitudHandler := NewSolicitudHandler(deps.SolicitudUC)
	solicitudes.Post("/", RequireRole(instructor, admin), solicitudHandler.Create)
	solicitudes.Get("/", RequireRole(instructor, almacen, admin), solicitudHandler.List)
	solicitudes.Patch("/:id/estado", RequireRole(almacen, admin), solicitudHandler.CambiarEstado)
}
