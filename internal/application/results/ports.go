package results

import (
	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
)

// PDFGenerator genera el informe de resultados en PDF.
type PDFGenerator interface {
	GenerateResultsPDF(summary *dto.SurveyResultsResponse) ([]byte, error)
}

// CSVExporter exporta las respuestas individuales: una fila por respuesta y una columna por pregunta.
type CSVExporter interface {
	ExportResponsesCSV(s *entity.Survey, responses []*entity.SurveyResponse) ([]byte, error)
}
