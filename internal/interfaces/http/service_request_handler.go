package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/usecase"
)

// ServiceRequestHandler ingreso de solicitudes, recibo, historial y panel de servicios.
type ServiceRequestHandler struct {
	uc      *usecase.ServiceRequestUseCase
	receipt ports.ReceiptGenerator
}

// NewServiceRequestHandler construye el handler.
func NewServiceRequestHandler(uc *usecase.ServiceRequestUseCase, receipt ports.ReceiptGenerator) *ServiceRequestHandler {
	return &ServiceRequestHandler{uc: uc, receipt: receipt}
}

// Submit godoc
// @Summary      Registrar solicitud de servicio
// @Description  Formulario multipart con hasta 5 fotos (campo images, 20 MB c/u). Nombre, email y teléfono se toman del perfil si vienen vacíos.
// @Tags         service-requests
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        device_type    formData  string  true   "Laptop | Komputer"
// @Param        damage         formData  string  true   "Descripción de la falla"
// @Param        date           formData  string  true   "YYYY-MM-DD"
// @Param        brand          formData  string  false  "Marca (Lainnya = custom_brand)"
// @Param        model          formData  string  false  "Modelo"
// @Param        computer_types formData  string  false  "Tipo de computadora"
// @Param        captcha_token  formData  string  false  "Token reCAPTCHA"
// @Param        images         formData  file    false  "Fotos"
// @Success      201  {object}  dto.ServiceRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/service-requests [post]
func (h *ServiceRequestHandler) Submit(c *fiber.Ctx) error {
	var form dto.CreateServiceRequestForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "INVALID_BODY", "Format permintaan tidak valid")
	}
	if fields := Validate(form); fields != nil {
		return validationError(c, fields)
	}

	var images []dto.FileInput
	if mf, err := c.MultipartForm(); err == nil {
		for _, fh := range mf.File["images"] {
			images = append(images, fileInput(fh))
		}
	}

	out, err := h.uc.Submit(c.UserContext(), actor(c), dto.SubmitServiceRequestInput{
		Form:     form,
		Images:   images,
		RemoteIP: c.IP(),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Recibo de una solicitud (dueño, admin o teknisi)
// @Tags         service-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ServiceRequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id} [get]
func (h *ServiceRequestHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReceiptPDF godoc
// @Summary      Recibo en PDF con QR a la página pública
// @Tags         service-requests
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id}/receipt.pdf [get]
func (h *ServiceRequestHandler) ReceiptPDF(c *fiber.Ctx) error {
	sr, err := h.uc.Load(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.receipt.GenerateReceiptPDF(c.UserContext(), sr)
	if err != nil {
		return writeError(c, fmt.Errorf("generar recibo: %w", err))
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="bukti-servis-%s.pdf"`, sr.ID))
	return c.Send(pdf)
}

// ListMine godoc
// @Summary      Historial de solicitudes propias
// @Tags         service-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ServiceRequestResponse
// @Router       /api/service-requests/me [get]
func (h *ServiceRequestHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Panel de servicios (admin, teknisi) ──────────────────────────────────────

// Board godoc
// @Summary      Panel de servicios agrupado por estado
// @Description  Cuatro pestañas (pending, in_progress, completed, rejected) con contadores y opciones de estado por ítem.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ServiceBoardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/services [get]
func (h *ServiceRequestHandler) Board(c *fiber.Ctx) error {
	out, err := h.uc.Board(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Cambiar el estado de una solicitud
// @Description  pending → in_progress | rejected; in_progress → completed | rejected. Rechazar exige rejected_reason.
// @Tags         dashboard
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.UpdateStatusRequest  true  "status, rejected_reason"
// @Success      200   {object}  dto.ServiceRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/dashboard/services/{id}/status [patch]
func (h *ServiceRequestHandler) Transition(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Transition(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
