package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/usecase"
)

// ContactHandler formulario público de contacto, buzón del panel y verificación reCAPTCHA.
type ContactHandler struct {
	uc      *usecase.ContactUseCase
	captcha ports.CaptchaVerifier
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase, captcha ports.CaptchaVerifier) *ContactHandler {
	return &ContactHandler{uc: uc, captcha: captcha}
}

// Submit godoc
// @Summary      Enviar mensaje de contacto
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContactRequest  true  "name, email, phone_number, message, captcha_token"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in dto.CreateContactRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Submit(c.UserContext(), in, c.IP())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Buzón de mensajes
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Nombre, email o mensaje"
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Success      200     {object}  dto.ContactListResponse
// @Router       /api/dashboard/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	var q dto.ContactListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "Parameter pencarian tidak valid")
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar mensaje
// @Tags         contacts
// @Security     Bearer
// @Param        id   path  string  true  "ID del mensaje"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VerifyRecaptcha godoc
// @Summary      Verificar un token reCAPTCHA
// @Tags         recaptcha
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecaptchaRequest  true  "token"
// @Success      200   {object}  dto.RecaptchaResponse
// @Failure      400   {object}  dto.RecaptchaResponse
// @Failure      500   {object}  dto.RecaptchaResponse
// @Router       /api/recaptcha [post]
func (h *ContactHandler) VerifyRecaptcha(c *fiber.Ctx) error {
	var in dto.RecaptchaRequest
	if err := c.BodyParser(&in); err != nil || in.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RecaptchaResponse{Success: false})
	}
	ok, err := h.captcha.Verify(c.UserContext(), in.Token, c.IP())
	if err != nil {
		log.Warn().Err(err).Msg("recaptcha: verificación fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.RecaptchaResponse{Success: false})
	}
	return c.JSON(dto.RecaptchaResponse{Success: ok})
}
