package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/irvanshandika/PUSCOM-sub000/internal/application/analytics"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/usecase"
)

// DashboardHandler resumen del panel y feed de actividad reciente.
type DashboardHandler struct {
	uc         *appanalytics.DashboardUseCase
	activities *usecase.ActivityUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, activities *usecase.ActivityUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, activities: activities}
}

// GetSummary devuelve los contadores del panel principal.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryResponse (users, products, contacts, service_requests,
// services_by_status, recent_activities[5]).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Activities godoc
// @Summary      Feed de actividad reciente
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de entradas"  default(10)
// @Success      200    {array}  dto.ActivityResponse
// @Router       /api/dashboard/activities [get]
func (h *DashboardHandler) Activities(c *fiber.Ctx) error {
	// el caso de uso aplica el valor por defecto y el máximo
	out, err := h.activities.List(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		out = []dto.ActivityResponse{}
	}
	return c.JSON(out)
}
