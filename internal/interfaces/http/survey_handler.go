package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/application/usecase"
)

// SurveyHandler constructor y listado de encuestas.
type SurveyHandler struct {
	uc    *usecase.SurveyUseCase
	types *usecase.QuestionTypeUseCase
}

// NewSurveyHandler construye el handler de encuestas.
func NewSurveyHandler(uc *usecase.SurveyUseCase, types *usecase.QuestionTypeUseCase) *SurveyHandler {
	return &SurveyHandler{uc: uc, types: types}
}

// List godoc
// @Summary      Listar encuestas
// @Tags         encuestas
// @Produce      json
// @Security     BearerAuth
// @Param        q       query  string  false  "Búsqueda por título"
// @Param        estado  query  string  false  "Todas, Borrador, Publicada, Cerrada"
// @Success      200  {object}  dto.SurveyListResponse
// @Router       /api/encuestas [get]
func (h *SurveyHandler) List(c *fiber.Ctx) error {
	var f dto.SurveyFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetPrincipal(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de encuesta
// @Tags         encuestas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la encuesta"
// @Success      200  {object}  dto.SurveyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/encuestas/{id} [get]
func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.Get(c.Context(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar encuesta como borrador
// @Tags         encuestas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SurveyRequest  true  "Documento de la encuesta"
// @Success      201   {object}  dto.SurveyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/encuestas [post]
func (h *SurveyHandler) Save(c *fiber.Ctx) error {
	return h.create(c, false)
}

// Publish godoc
// @Summary      Crear y publicar encuesta
// @Tags         encuestas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SurveyRequest  true  "Documento de la encuesta"
// @Success      201   {object}  dto.SurveyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/encuestas/publicar [post]
func (h *SurveyHandler) Publish(c *fiber.Ctx) error {
	return h.create(c, true)
}

// Update godoc
// @Summary      Actualizar encuesta
// @Tags         encuestas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "ID de la encuesta"
// @Param        body  body  dto.SurveyRequest  true  "Documento de la encuesta"
// @Success      200   {object}  dto.SurveyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/encuestas/{id} [put]
func (h *SurveyHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

// UpdateAndPublish godoc
// @Summary      Actualizar y publicar encuesta
// @Tags         encuestas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "ID de la encuesta"
// @Param        body  body  dto.SurveyRequest  true  "Documento de la encuesta"
// @Success      200   {object}  dto.SurveyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/encuestas/{id}/publicar [put]
func (h *SurveyHandler) UpdateAndPublish(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *SurveyHandler) create(c *fiber.Ctx, publish bool) error {
	var in dto.SurveyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), in, publish)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *SurveyHandler) update(c *fiber.Ctx, publish bool) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.SurveyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), id, in, publish)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// QuestionTypes godoc
// @Summary      Tipos de pregunta
// @Tags         encuestas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.QuestionTypeResponse
// @Router       /api/tipos-pregunta [get]
func (h *SurveyHandler) QuestionTypes(c *fiber.Ctx) error {
	out, err := h.types.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
