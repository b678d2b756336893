package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/Encuestas-api/internal/application/analytics"
	"github.com/jhoicas/Encuestas-api/internal/application/auth"
	"github.com/jhoicas/Encuestas-api/internal/application/results"
	"github.com/jhoicas/Encuestas-api/internal/application/usecase"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Encuestas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/Encuestas-api/internal/interfaces/http"
	"github.com/jhoicas/Encuestas-api/pkg/config"
	"github.com/jhoicas/Encuestas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("conexión al almacén")
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()
	repos := st.Repos

	authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	resultsUC := results.NewUseCase(
		repos.Surveys, repos.Responses, repos.Companies,
		infrapdf.NewMarotoReportGenerator(), export.NewCSVExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Encuestas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": st.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		DashboardUC:    analytics.NewDashboardUseCase(repos.Surveys, repos.Responses, repos.Companies),
		CompanyUC:      usecase.NewCompanyUseCase(repos.Companies, repos.Users),
		UserUC:         usecase.NewUserUseCase(repos.Users, repos.Companies, cfg.Auth.DefaultPassword),
		SurveyUC:       usecase.NewSurveyUseCase(repos.Surveys, repos.Responses, repos.Companies),
		QuestionTypeUC: usecase.NewQuestionTypeUseCase(repos.QuestionTypes),
		ResponseUC:     usecase.NewResponseUseCase(repos.Surveys, repos.Responses, repos.Companies),
		ResultsUC:      resultsUC,
		JWTSecret:      cfg.JWT.Secret,
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
