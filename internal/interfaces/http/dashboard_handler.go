package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/omnistock-hub/internal/application/usecase"
)

// DashboardHandler analítica agregada del tablero.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Fetch godoc
// @Summary      Documento de analítica del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Fetch(c *fiber.Ctx) error {
	sess := GetSession(c)
	out, err := h.uc.Fetch(c.Context(), sess.BackendToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
