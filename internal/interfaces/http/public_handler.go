package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Encuestas-api/internal/application/dto"
	"github.com/jhoicas/Encuestas-api/internal/application/usecase"
)

// PublicHandler vista pública de encuestas (sin autenticación).
type PublicHandler struct {
	uc *usecase.ResponseUseCase
}

func NewPublicHandler(uc *usecase.ResponseUseCase) *PublicHandler {
	return &PublicHandler{uc: uc}
}

// Get godoc
// @Summary      Encuesta pública por enlace corto
// @Description  Solo encuestas publicadas y dentro de su vigencia.
// @Tags         public
// @Produce      json
// @Param        enlace  path  string  true  "Enlace corto"
// @Success      200  {object}  dto.SurveyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/encuestas/{enlace} [get]
func (h *PublicHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetPublic(c.Context(), c.Params("enlace"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar respuestas
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        enlace  path  string                     true  "Enlace corto"
// @Param        body    body  dto.SubmitResponseRequest  true  "Respuestas"
// @Success      201  {object}  dto.SubmitResponseResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/encuestas/{enlace}/respuestas [post]
func (h *PublicHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitResponseRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Submit(c.Context(), c.Params("enlace"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
