package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/application/lookup"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/policy"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"github.com/jhoicas/Encuestas-api/internal/domain/survey"
	"github.com/jhoicas/Encuestas-api/pkg/textsearch"
	"golang.org/x/sync/errgroup"
)

// Filtro de estado que incluye todas las encuestas.
const allStatuses = "Todas"

// SurveyUseCase constructor y listado de encuestas.
type SurveyUseCase struct {
	surveys   repository.SurveyRepository
	responses repository.ResponseRepository
	companies repository.CompanyRepository
}

// NewSurveyUseCase construye el caso de uso.
func NewSurveyUseCase(surveys repository.SurveyRepository, responses repository.ResponseRepository, companies repository.CompanyRepository) *SurveyUseCase {
	return &SurveyUseCase{surveys: surveys, responses: responses, companies: companies}
}

// List encuestas visibles para p filtradas por texto (título o descripción) y estado.
func (uc *SurveyUseCase) List(ctx context.Context, p policy.Principal, f dto.SurveyFilter) (*dto.SurveyListResponse, error) {
	var (
		list  []*entity.Survey
		names *lookup.CompanyNames
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = uc.surveys.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = lookup.LoadCompanyNames(gctx, uc.companies)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dto.SurveyListResponse{Items: []dto.SurveyResponse{}}
	for _, s := range policy.FilterSurveys(p, list) {
		if f.Estado != "" && f.Estado != allStatuses && s.Status != f.Estado {
			continue
		}
		if !textsearch.Contains(f.Q, s.Title, s.Description) {
			continue
		}
		s.CompanyName = names.Name(s.CompanyID)
		out := entityToSurveyResponse(s)
		out.Preguntas = nil
		resp.Items = append(resp.Items, *out)
	}
	resp.Total = len(resp.Items)
	return resp, nil
}

// Get detalle de una encuesta con preguntas y opciones.
func (uc *SurveyUseCase) Get(ctx context.Context, p policy.Principal, id int64) (*dto.SurveyResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanSeeSurvey(p, s) {
		return nil, domain.ErrForbidden
	}
	return uc.detail(ctx, s)
}

// Create guarda una encuesta nueva. publish=false la deja en Borrador; true la publica.
func (uc *SurveyUseCase) Create(ctx context.Context, p policy.Principal, in dto.SurveyRequest, publish bool) (*dto.SurveyResponse, error) {
	if !policy.CanBuildSurveys(p) {
		return nil, domain.ErrForbidden
	}
	b, err := builderFromRequest(in, entity.SurveyDraft, nil)
	if err != nil {
		return nil, err
	}
	s, err := finish(b, publish)
	if err != nil {
		return nil, err
	}
	s.CompanyID = policy.ResolveCompanyForUser(p, in.EmpresaID)
	s.CreatorID = p.UserID
	s.CreatedAt = time.Now().UTC()

	if err := uc.surveys.Create(ctx, s); err != nil {
		return nil, err
	}
	return uc.detail(ctx, s)
}

// Update reemplaza el contenido de una encuesta existente. Guardar conserva su estado.
func (uc *SurveyUseCase) Update(ctx context.Context, p policy.Principal, id int64, in dto.SurveyRequest, publish bool) (*dto.SurveyResponse, error) {
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditSurvey(p, current) {
		return nil, domain.ErrForbidden
	}
	b, err := builderFromRequest(in, current.Status, current)
	if err != nil {
		return nil, err
	}
	s, err := finish(b, publish)
	if err != nil {
		return nil, err
	}
	if removesContent(current, s) {
		counts, err := uc.responses.CountBySurvey(ctx)
		if err != nil {
			return nil, err
		}
		if counts[current.ID] > 0 {
			return nil, domain.ErrSurveyHasResponses
		}
	}
	s.ID = current.ID
	s.CompanyID = current.CompanyID
	s.CreatorID = current.CreatorID
	s.CreatedAt = current.CreatedAt
	s.LongLink, s.ShortLink = current.LongLink, current.ShortLink

	if err := uc.surveys.Update(ctx, s); err != nil {
		return nil, err
	}
	return uc.detail(ctx, s)
}

func (uc *SurveyUseCase) load(ctx context.Context, id int64) (*entity.Survey, error) {
	s, err := uc.surveys.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *SurveyUseCase) detail(ctx context.Context, s *entity.Survey) (*dto.SurveyResponse, error) {
	c, err := uc.companies.GetByID(ctx, s.CompanyID)
	if err != nil {
		return nil, err
	}
	s.CompanyName = entity.UnknownCompanyName
	if c != nil {
		s.CompanyName = c.Name
	}
	return entityToSurveyResponse(s), nil
}

func finish(b *survey.Builder, publish bool) (*entity.Survey, error) {
	if publish {
		return b.Publish()
	}
	return b.Save()
}

// builderFromRequest reproduce el documento recibido con las operaciones del constructor,
// de modo que orden y opciones quedan normalizados igual que en la edición interactiva.
// Los IDs que no pertenecen a current se descartan y se tratan como nuevos.
func builderFromRequest(in dto.SurveyRequest, status string, current *entity.Survey) (*survey.Builder, error) {
	questionIDs, optionIDs := ownedIDs(current)

	b := survey.NewBuilder()
	b.Status = status
	b.Title = in.Titulo
	b.Description = in.Descripcion

	var err error
	if b.ValidFrom, err = parseDate(in.FechaInicioVigencia); err != nil {
		return nil, err
	}
	if b.ValidTo, err = parseDate(in.FechaFinVigencia); err != nil {
		return nil, err
	}

	for _, q := range in.Preguntas {
		qi := b.AddQuestion()
		if questionIDs[q.PreguntaID] {
			b.Questions[qi].ID = q.PreguntaID
			delete(questionIDs, q.PreguntaID)
		}
		text, typeID, required := q.TextoPregunta, q.TipoPreguntaID, q.EsObligatoria
		if err := b.UpdateQuestion(qi, survey.QuestionPatch{Text: &text, TypeID: &typeID, Required: &required}); err != nil {
			return nil, err
		}
		for _, o := range q.Opciones {
			oi, err := b.AddOption(qi)
			if err != nil {
				return nil, err
			}
			if b.Questions[qi].ID != 0 && optionIDs[o.OpcionID] == b.Questions[qi].ID {
				b.Questions[qi].Options[oi].ID = o.OpcionID
				delete(optionIDs, o.OpcionID)
			}
			optText := o.TextoOpcion
			if err := b.UpdateOption(qi, oi, survey.OptionPatch{Text: &optText, Value: o.Valor}); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// ownedIDs preguntas de s y, por opción, la pregunta a la que pertenece.
func ownedIDs(s *entity.Survey) (map[int64]bool, map[int64]int64) {
	questions := map[int64]bool{}
	options := map[int64]int64{}
	if s == nil {
		return questions, options
	}
	for _, q := range s.Questions {
		questions[q.ID] = true
		for _, o := range q.Options {
			options[o.ID] = q.ID
		}
	}
	return questions, options
}

// removesContent informa si next elimina preguntas u opciones existentes en current.
func removesContent(current, next *entity.Survey) bool {
	nextQ, nextO := ownedIDs(next)
	for _, q := range current.Questions {
		if !nextQ[q.ID] {
			return true
		}
		for _, o := range q.Options {
			if _, ok := nextO[o.ID]; !ok {
				return true
			}
		}
	}
	return false
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(survey.DateLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return nil, domain.Validationf("fecha inválida %q (formato YYYY-MM-DD)", s)
		}
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(survey.DateLayout)
}

func entityToSurveyResponse(s *entity.Survey) *dto.SurveyResponse {
	if s == nil {
		return nil
	}
	out := &dto.SurveyResponse{
		EncuestaID:          s.ID,
		EmpresaID:           s.CompanyID,
		EmpresaNombre:       s.CompanyName,
		UsuarioCreadorID:    s.CreatorID,
		Titulo:              s.Title,
		Descripcion:         s.Description,
		FechaCreacion:       s.CreatedAt,
		FechaInicioVigencia: formatDate(s.ValidFrom),
		FechaFinVigencia:    formatDate(s.ValidTo),
		Estado:              s.Status,
		EnlaceLargo:         s.LongLink,
		EnlaceCorto:         s.ShortLink,
		Preguntas:           make([]dto.QuestionResponse, 0, len(s.Questions)),
	}
	for _, q := range s.Questions {
		qr := dto.QuestionResponse{
			PreguntaID:     q.ID,
			TipoPreguntaID: q.TypeID,
			TextoPregunta:  q.Text,
			Orden:          q.Order,
			EsObligatoria:  q.Required,
			Opciones:       make([]dto.OptionResponse, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			qr.Opciones = append(qr.Opciones, dto.OptionResponse{
				OpcionID:    o.ID,
				TextoOpcion: o.Text,
				Valor:       o.Value,
				Orden:       o.Order,
			})
		}
		out.Preguntas = append(out.Preguntas, qr)
	}
	return out
}
