// Package export genera el CSV de respuestas individuales.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/Encuestas-api/internal/application/results"
	"github.com/jhoicas/Encuestas-api/internal/domain/entity"
)

var _ results.CSVExporter = (*CSVExporter)(nil)

// bom para que Excel abra el archivo como UTF-8.
const bom = "\uFEFF"

// CSVExporter una fila por respuesta y una columna por pregunta (en orden).
// Las casillas múltiples se unen con "; ".
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// ExportResponsesCSV escribe cabecera y filas.
func (e *CSVExporter) ExportResponsesCSV(s *entity.Survey, responses []*entity.SurveyResponse) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("export: encuesta vacía")
	}
	questions := append([]entity.Question(nil), s.Questions...)
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Order < questions[j].Order })

	optionText := map[int64]string{}
	for _, q := range questions {
		for _, o := range q.Options {
			optionText[o.ID] = o.Text
		}
	}

	var buf bytes.Buffer
	buf.WriteString(bom)
	w := csv.NewWriter(&buf)

	header := []string{"encuestaRespondidaID", "fechaRespuesta", "identificadorUsuario"}
	for _, q := range questions {
		header = append(header, q.Text)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: cabecera: %w", err)
	}

	for _, r := range responses {
		cells := map[int64][]string{}
		for _, a := range r.Answers {
			switch {
			case a.OptionID != nil:
				cells[a.QuestionID] = append(cells[a.QuestionID], optionText[*a.OptionID])
			case a.Text != nil:
				cells[a.QuestionID] = append(cells[a.QuestionID], *a.Text)
			}
		}
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.SubmittedAt.UTC().Format("2006-01-02 15:04:05"),
			r.Respondent,
		}
		for _, q := range questions {
			record = append(record, strings.Join(cells[q.ID], "; "))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export: fila %d: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}
