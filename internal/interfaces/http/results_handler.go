package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Encuestas-api/internal/application/results"
)

// ResultsHandler resultados agregados y exportación.
type ResultsHandler struct {
	uc *results.UseCase
}

// NewResultsHandler construye el handler de resultados.
func NewResultsHandler(uc *results.UseCase) *ResultsHandler {
	return &ResultsHandler{uc: uc}
}

// Summary godoc
// @Summary      Resultados de una encuesta
// @Tags         resultados
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la encuesta"
// @Success      200  {object}  dto.SurveyResultsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/encuestas/{id}/resultados [get]
func (h *ResultsHandler) Summary(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.Summary(c.Context(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar resultados
// @Tags         resultados
// @Produce      application/pdf
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id       path   int     true   "ID de la encuesta"
// @Param        formato  query  string  false  "csv (por defecto) o pdf"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/encuestas/{id}/resultados/export [get]
func (h *ResultsHandler) Export(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.Export(c.Context(), GetPrincipal(c), id, c.Query("formato", results.FormatCSV))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.Filename))
	return c.Send(out.Data)
}
