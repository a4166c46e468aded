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

	"github.com/jhoicas/Auth-api/internal/application/auth"
	"github.com/jhoicas/Auth-api/internal/application/usecase"
	"github.com/jhoicas/Auth-api/internal/infrastructure/identity"
	"github.com/jhoicas/Auth-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Auth-api/internal/interfaces/http"
	"github.com/jhoicas/Auth-api/pkg/config"
	"github.com/jhoicas/Auth-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	rolRepo := postgres.NewRolRepository(pool)
	permisoRepo := postgres.NewPermisoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	idp := identity.NewSupabaseClient(cfg.IdP)

	authUC := auth.NewAuthUseCase(idp, usuarioRepo, empresaRepo, permisoRepo, txRunner)
	empresaUC := usecase.NewEmpresaUseCase(empresaRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, rolRepo, idp, txRunner)
	rolUC := usecase.NewRolUseCase(rolRepo, permisoRepo, txRunner)
	permisoUC := usecase.NewPermisoUseCase(permisoRepo)

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
		Title:    "Auth API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		EmpresaUC: empresaUC,
		UsuarioUC: usuarioUC,
		RolUC:     rolUC,
		PermisoUC: permisoUC,
		AuthCfg:   cfg.Auth,
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
