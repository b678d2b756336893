// Package pdf genera el informe de resultados de una encuesta con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empresa     │  Estado + total respuestas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por pregunta: enunciado, tabla Opción | Cant. | %            │
//	│               o últimas respuestas abiertas                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Respuestas por día + QR con el enlace público               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/application/results"
)

var _ results.PDFGenerator = (*MarotoReportGenerator)(nil)

// maxTextRows respuestas abiertas impresas por pregunta.
const maxTextRows = 10

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa results.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateResultsPDF genera el informe y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateResultsPDF(summary *dto.SurveyResultsResponse) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resultados: "+summary.Titulo, true).
		WithAuthor(summary.EmpresaNombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if summary.TotalRespuestas == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("La encuesta todavía no tiene respuestas.", props.Text{Size: 10, Top: 4, Color: colorGray}),
		)))
	}
	for _, q := range summary.Preguntas {
		m.AddRows(questionRows(q)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(summary)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(s *dto.SurveyResultsResponse) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(s.Titulo, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(s.EmpresaNombre, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("INFORME DE RESULTADOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d respuestas", s.TotalRespuestas), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+s.Estado, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

// questionRows enunciado y, según el tipo, tabla de opciones o respuestas abiertas.
func questionRows(q dto.QuestionResultDTO) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(7).Add(col.New(12).Add(text.New(
			fmt.Sprintf("%d. %s", q.Orden, q.TextoPregunta),
			props.Text{Style: fontstyle.Bold, Size: 10, Top: 1},
		))),
		row.New(5).Add(col.New(12).Add(text.New(
			fmt.Sprintf("%d respuestas", q.TotalRespuestas),
			props.Text{Size: 7.5, Color: colorGray, Top: 0.5},
		))),
	}

	if len(q.Opciones) > 0 {
		rows = append(rows, optionHeaderRow())
		for _, o := range q.Opciones {
			rows = append(rows, row.New(6).Add(
				col.New(8).Add(text.New(o.TextoOpcion, props.Text{Size: 8.5, Top: 1, Left: 2})),
				col.New(2).Add(text.New(fmt.Sprintf("%d", o.Cantidad), props.Text{Size: 8.5, Align: align.Right, Top: 1})),
				col.New(2).Add(text.New(o.Porcentaje.StringFixed(2)+"%", props.Text{Size: 8.5, Align: align.Right, Top: 1, Right: 1})),
			))
		}
		if q.Promedio != nil {
			rows = append(rows, row.New(6).Add(
				col.New(8).Add(text.New("Promedio", props.Text{Style: fontstyle.Bold, Size: 8.5, Top: 1, Left: 2})),
				col.New(4).Add(text.New(q.Promedio.StringFixed(2), props.Text{
					Style: fontstyle.Bold, Size: 8.5, Align: align.Right, Top: 1, Right: 1, Color: colorPrimary,
				})),
			))
		}
		return rows
	}

	for i, t := range q.Textos {
		if i == maxTextRows {
			rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(
				fmt.Sprintf("… y %d respuestas más", len(q.Textos)-maxTextRows),
				props.Text{Size: 7.5, Color: colorGray, Left: 2},
			))))
			break
		}
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New("“"+t.Texto+"”", props.Text{Size: 8.5, Top: 1, Left: 2})),
			col.New(3).Add(text.New(t.FechaRespuesta.Format("02/01/2006 15:04"), props.Text{
				Size: 7.5, Align: align.Right, Top: 1.5, Color: colorGray, Right: 1,
			})),
		))
	}
	return rows
}

func optionHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 2, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Opción", 8, align.Left),
		h("Cant.", 2, align.Right),
		h("%", 2, align.Right),
	)
}

// footerRows respuestas por día y QR al enlace público.
func footerRows(s *dto.SurveyResultsResponse) []core.Row {
	days := make([]core.Component, 0, len(s.RespuestasPorDia)+1)
	days = append(days, text.New("RESPUESTAS POR DÍA", props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
	}))
	for i, d := range s.RespuestasPorDia {
		days = append(days, text.New(fmt.Sprintf("%s: %d", d.Fecha, d.Cantidad), props.Text{
			Size: 8, Color: colorGray, Top: float64(6 + 4*i),
		}))
	}
	height := float64(10 + 4*len(s.RespuestasPorDia))

	if s.EnlaceLargo == "" {
		return []core.Row{row.New(height).Add(col.New(12).Add(days...))}
	}
	if height < 40 {
		height = 40
	}
	return []core.Row{row.New(height).Add(
		col.New(8).Add(days...),
		col.New(4).Add(
			code.NewQr(s.EnlaceLargo, props.Rect{Percent: 80, Center: true}),
		),
	), row.New(5).Add(col.New(12).Add(text.New(s.EnlaceLargo, props.Text{
		Size: 7, Align: align.Right, Color: colorGray,
	})))}
}
