package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Encuestas-api/internal/application/analytics"
	"github.com/jhoicas/Encuestas-api/internal/application/auth"
	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/application/results"
	"github.com/jhoicas/Encuestas-api/internal/application/usecase"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/export"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Encuestas-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/Encuestas-api/internal/interfaces/http"
	"github.com/jhoicas/Encuestas-api/pkg/logger"
	"github.com/jhoicas/Encuestas-api/pkg/password"
)

// newAPI levanta el router completo sobre SQLite en memoria con una empresa,
// un Admin y un Creador (contraseña demo123).
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	repos := sqlite.NewRepositories(db, survey.LinkBuilder{BaseURL: "https://encuestas.test"})

	company := &entity.Company{Name: "TechCorp Solutions", TaxID: "900123456-7", RegisteredAt: time.Now().UTC()}
	require.NoError(t, repos.Companies.Create(ctx, company))
	hash, err := password.Hash("demo123")
	require.NoError(t, err)
	for _, u := range []*entity.User{
		{CompanyID: company.ID, Email: "admin@empresa.com", FirstName: "Carlos", Role: entity.RoleAdmin},
		{CompanyID: company.ID, Email: "creador@empresa.com", FirstName: "María", Role: entity.RoleCreator},
	} {
		u.PasswordHash = hash
		u.Status = entity.UserActive
		u.CreatedAt = time.Now().UTC()
		require.NoError(t, repos.Users.Create(ctx, u))
	}

	log := logger.Nop()
	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(repos.Users, repos.Companies, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, log),
		DashboardUC:    analytics.NewDashboardUseCase(repos.Surveys, repos.Responses, repos.Companies),
		CompanyUC:      usecase.NewCompanyUseCase(repos.Companies, repos.Users),
		UserUC:         usecase.NewUserUseCase(repos.Users, repos.Companies, "demo123"),
		SurveyUC:       usecase.NewSurveyUseCase(repos.Surveys, repos.Responses, repos.Companies),
		QuestionTypeUC: usecase.NewQuestionTypeUseCase(repos.QuestionTypes),
		ResponseUC:     usecase.NewResponseUseCase(repos.Surveys, repos.Responses, repos.Companies),
		ResultsUC:      results.NewUseCase(repos.Surveys, repos.Responses, repos.Companies, pdf.NewMarotoReportGenerator(), export.NewCSVExporter()),
		JWTSecret:      testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "demo123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

func TestLogin_Errores(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "no-es-email", Password: ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Details, "email")
	assert.Contains(t, errBody.Details, "password")

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@empresa.com", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "contraseña incorrecta", decode[dto.ErrorResponse](t, resp).Message)
}

func TestEmpresas_SoloAdmin(t *testing.T) {
	app := newAPI(t)
	creador := login(t, app, "creador@empresa.com")
	admin := login(t, app, "admin@empresa.com")

	resp := call(t, app, http.MethodGet, "/api/empresas", creador, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/empresas", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.CompanyListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Items[0].TotalUsuarios)

	resp = call(t, app, http.MethodPost, "/api/empresas", admin, dto.CompanyRequest{Nombre: "Otra", NIT: "900123456-7"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, fmt.Sprintf("/api/empresas/%d", list.Items[0].EmpresaID), admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "empresa con usuarios")
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "CONSTRAINT", errBody.Code)
	assert.Equal(t, "no se puede eliminar una empresa con usuarios asociados", errBody.Message)

	resp = call(t, app, http.MethodPost, "/api/empresas", admin, dto.CompanyRequest{Nombre: "Vacía", NIT: "900999999-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	empty := decode[dto.CompanyResponse](t, resp)
	resp = call(t, app, http.MethodDelete, fmt.Sprintf("/api/empresas/%d", empty.EmpresaID), admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "empresa sin dependientes")

	resp = call(t, app, http.MethodDelete, "/api/empresas/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEncuestas_RequierenToken(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/encuestas", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/public/encuestas/enc-999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "la vista pública no exige token")
}

func TestFlujoPublicarResponderYExportar(t *testing.T) {
	app := newAPI(t)
	creador := login(t, app, "creador@empresa.com")

	resp := call(t, app, http.MethodPost, "/api/encuestas/publicar", creador, dto.SurveyRequest{
		Titulo: "Satisfacción",
		Preguntas: []dto.QuestionRequest{
			{TipoPreguntaID: entity.TypeMultiple, TextoPregunta: "¿Color?", EsObligatoria: true,
				Opciones: []dto.OptionRequest{{TextoOpcion: "Rojo"}, {TextoOpcion: "Azul"}}},
			{TipoPreguntaID: entity.TypeShortText, TextoPregunta: "Comentario"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.SurveyResponse](t, resp)
	assert.Equal(t, entity.SurveyPublished, created.Estado)
	require.NotEmpty(t, created.EnlaceCorto)

	resp = call(t, app, http.MethodGet, "/api/public/encuestas/"+created.EnlaceCorto, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	public := decode[dto.SurveyResponse](t, resp)
	require.Len(t, public.Preguntas, 2)
	color := public.Preguntas[0]

	resp = call(t, app, http.MethodPost, "/api/public/encuestas/"+created.EnlaceCorto+"/respuestas", "",
		dto.SubmitResponseRequest{Respuestas: []dto.AnswerRequest{{PreguntaID: public.Preguntas[1].PreguntaID, Texto: "hola"}}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "falta la obligatoria")

	resp = call(t, app, http.MethodPost, "/api/public/encuestas/"+created.EnlaceCorto+"/respuestas", "",
		dto.SubmitResponseRequest{Respuestas: []dto.AnswerRequest{{PreguntaID: color.PreguntaID, OpcionIDs: []int64{color.Opciones[1].OpcionID}}}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/encuestas/%d/resultados", created.EncuestaID), creador, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[dto.SurveyResultsResponse](t, resp)
	assert.Equal(t, 1, res.TotalRespuestas)
	assert.Equal(t, 1, res.Preguntas[0].Opciones[1].Cantidad)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/encuestas/%d/resultados/export?formato=csv", created.EncuestaID), creador, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "resultados-"+created.EnlaceCorto+".csv")

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/encuestas/%d/resultados/export?formato=xml", created.EncuestaID), creador, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/dashboard", creador, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTiposPregunta(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/tipos-pregunta", login(t, app, "admin@empresa.com"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.QuestionTypeResponse](t, resp), 6)
}
