// Package results agrega y exporta las respuestas recibidas por una encuesta.
package results

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
	"github.com/jhoicas/Encuestas-api/internal/domain/policy"
	"github.com/jhoicas/Encuestas-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// Formatos de exportación.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// Export archivo generado para descarga.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

// UseCase resultados de encuestas.
type UseCase struct {
	surveys   repository.SurveyRepository
	responses repository.ResponseRepository
	companies repository.CompanyRepository
	pdf       PDFGenerator
	csv       CSVExporter
}

// NewUseCase construye el caso de uso inyectando los generadores de archivos.
func NewUseCase(
	surveys repository.SurveyRepository,
	responses repository.ResponseRepository,
	companies repository.CompanyRepository,
	pdf PDFGenerator,
	csv CSVExporter,
) *UseCase {
	return &UseCase{surveys: surveys, responses: responses, companies: companies, pdf: pdf, csv: csv}
}

// Summary resultados agregados. Cualquier rol que vea la encuesta puede consultarlos.
func (uc *UseCase) Summary(ctx context.Context, p policy.Principal, surveyID int64) (*dto.SurveyResultsResponse, error) {
	s, responses, err := uc.load(ctx, p, surveyID)
	if err != nil {
		return nil, err
	}
	return Aggregate(s, responses), nil
}

// Export genera el archivo de resultados en el formato pedido (csv o pdf).
func (uc *UseCase) Export(ctx context.Context, p policy.Principal, surveyID int64, format string) (*Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF {
		return nil, domain.Validationf("formato no soportado: %q (csv, pdf)", format)
	}

	s, responses, err := uc.load(ctx, p, surveyID)
	if err != nil {
		return nil, err
	}
	base := fmt.Sprintf("resultados-%s", s.ShortLink)
	if s.ShortLink == "" {
		base = fmt.Sprintf("resultados-enc-%d", s.ID)
	}

	switch format {
	case FormatPDF:
		data, err := uc.pdf.GenerateResultsPDF(Aggregate(s, responses))
		if err != nil {
			return nil, fmt.Errorf("resultados: generar PDF: %w", err)
		}
		return &Export{Data: data, ContentType: "application/pdf", Filename: base + ".pdf"}, nil
	default:
		data, err := uc.csv.ExportResponsesCSV(s, responses)
		if err != nil {
			return nil, fmt.Errorf("resultados: generar CSV: %w", err)
		}
		return &Export{Data: data, ContentType: "text/csv; charset=utf-8", Filename: base + ".csv"}, nil
	}
}

// load encuesta (con nombre de empresa) y respuestas, leídas en paralelo.
func (uc *UseCase) load(ctx context.Context, p policy.Principal, surveyID int64) (*entity.Survey, []*entity.SurveyResponse, error) {
	var (
		s         *entity.Survey
		responses []*entity.SurveyResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		s, err = uc.surveys.GetByID(gctx, surveyID)
		return err
	})
	g.Go(func() error {
		var err error
		responses, err = uc.responses.ListBySurvey(gctx, surveyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if s == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !policy.CanViewResults(p, s) {
		return nil, nil, domain.ErrForbidden
	}

	s.CompanyName = entity.UnknownCompanyName
	c, err := uc.companies.GetByID(ctx, s.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if c != nil {
		s.CompanyName = c.Name
	}
	return s, responses, nil
}
