package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Encuestas-api/internal/application/analytics"
	"github.com/jhoicas/Encuestas-api/internal/application/auth"
	"github.com/jhoicas/Encuestas-api/internal/application/results"
	"github.com/jhoicas/Encuestas-api/internal/application/usecase"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	DashboardUC    *analytics.DashboardUseCase
	CompanyUC      *usecase.CompanyUseCase
	UserUC         *usecase.UserUseCase
	SurveyUC       *usecase.SurveyUseCase
	QuestionTypeUC *usecase.QuestionTypeUseCase
	ResponseUC     *usecase.ResponseUseCase
	ResultsUC      *results.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Vista pública de encuestas (público)
	publicHandler := NewPublicHandler(deps.ResponseUC)
	public := api.Group("/public/encuestas")
	public.Get("/:enlace", publicHandler.Get)
	public.Post("/:enlace/respuestas", publicHandler.Submit)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", requireAuth, dashboardHandler.GetSummary)

	// Encuestas, constructor y resultados
	surveyHandler := NewSurveyHandler(deps.SurveyUC, deps.QuestionTypeUC)
	resultsHandler := NewResultsHandler(deps.ResultsUC)
	api.Get("/tipos-pregunta", requireAuth, surveyHandler.QuestionTypes)

	surveys := api.Group("/encuestas", requireAuth)
	surveys.Get("/", surveyHandler.List)
	surveys.Post("/", surveyHandler.Save)
	surveys.Post("/publicar", surveyHandler.Publish)
	surveys.Get("/:id", surveyHandler.Get)
	surveys.Put("/:id", surveyHandler.Update)
	surveys.Put("/:id/publicar", surveyHandler.UpdateAndPublish)
	surveys.Get("/:id/resultados", resultsHandler.Summary)
	surveys.Get("/:id/resultados/export", resultsHandler.Export)

	// Empresas (solo Admin)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := api.Group("/empresas", requireAuth, RequireRole(entity.RoleAdmin))
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/usuarios", requireAuth)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
}
