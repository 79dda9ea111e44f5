package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/assistant"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
)

const defaultChatTimeout = 2 * time.Minute

// ChatHandler endpoints de chat con respuesta text/event-stream.
//
// Formato de salida (igual para los tres endpoints):
//
//	data: {"content":"..."}\n\n   (uno por fragmento)
//	data: [DONE]\n\n
//
// Los errores anteriores al primer fragmento se devuelven como JSON {error} con su status;
// un error a mitad del stream se envía como evento {"error": "..."} antes de [DONE].
type ChatHandler struct {
	uc      *assistant.ChatUseCase
	baseCtx context.Context // se cancela al apagar el servidor
	timeout time.Duration
	log     zerolog.Logger
}

// NewChatHandler baseCtx acota la vida de los streams abiertos; timeout <= 0 usa 2 minutos.
func NewChatHandler(uc *assistant.ChatUseCase, baseCtx context.Context, timeout time.Duration, log zerolog.Logger) *ChatHandler {
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	return &ChatHandler{uc: uc, baseCtx: baseCtx, timeout: timeout, log: log}
}

// Gemini godoc
// @Summary      Asistente público (Gemini)
// @Description  Responde solo sobre computadoras y laptops. Una lista de mensajes vacía es válida.
// @Tags         chat
// @Accept       json
// @Produce      text/event-stream
// @Param        body  body  dto.ChatRequest  true  "messages"
// @Success      200   {string}  string  "data: {\"content\":\"...\"}"
// @Failure      400   {object}  dto.ChatErrorResponse
// @Failure      500   {object}  dto.ChatErrorResponse
// @Router       /api/chat/gemini [post]
func (h *ChatHandler) Gemini(c *fiber.Ctx) error {
	return h.customer(c, assistant.ProviderGemini)
}

// Groq godoc
// @Summary      Asistente público (Groq)
// @Tags         chat
// @Accept       json
// @Produce      text/event-stream
// @Param        body  body  dto.ChatRequest  true  "messages"
// @Success      200   {string}  string  "data: {\"content\":\"...\"}"
// @Failure      400   {object}  dto.ChatErrorResponse
// @Failure      500   {object}  dto.ChatErrorResponse
// @Router       /api/chat/groq [post]
func (h *ChatHandler) Groq(c *fiber.Ctx) error {
	return h.customer(c, assistant.ProviderGroq)
}

// ManajemenServis godoc
// @Summary      Asistente del personal de servicio
// @Description  Con serviceId analiza una solicitud; con serviceData resume toda la colección.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      text/event-stream
// @Param        body  body  dto.StaffChatRequest  true  "messages, serviceId, serviceData"
// @Success      200   {string}  string  "data: {\"content\":\"...\"}"
// @Failure      400   {object}  dto.ChatErrorResponse
// @Failure      404   {object}  dto.ChatErrorResponse
// @Failure      500   {object}  dto.ChatErrorResponse
// @Router       /api/chat/manajemen-servis [post]
func (h *ChatHandler) ManajemenServis(c *fiber.Ctx) error {
	var in dto.StaffChatRequest
	if err := c.BodyParser(&in); err != nil {
		return chatError(c, fiber.StatusBadRequest, "Format permintaan tidak valid")
	}
	ctx, cancel := context.WithTimeout(h.baseCtx, h.timeout)
	conv, err := h.uc.Staff(ctx, in)
	if err != nil {
		cancel()
		return h.chatFailure(c, err)
	}
	return h.stream(c, ctx, cancel, conv)
}

func (h *ChatHandler) customer(c *fiber.Ctx, provider string) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return chatError(c, fiber.StatusBadRequest, "Format permintaan tidak valid")
	}
	conv, err := h.uc.Customer(provider, in.Messages)
	if err != nil {
		return h.chatFailure(c, err)
	}
	ctx, cancel := context.WithTimeout(h.baseCtx, h.timeout)
	return h.stream(c, ctx, cancel, conv)
}

// stream arranca la llamada al proveedor y espera el primer fragmento antes de fijar
// el status: si el proveedor falla de entrada el cliente recibe un JSON de error normal.
// cancel se llama siempre, ya sea aquí o al terminar el body stream.
func (h *ChatHandler) stream(c *fiber.Ctx, ctx context.Context, cancel context.CancelFunc, conv *assistant.Conversation) error {
	chunks := make(chan string, 16)
	errCh := make(chan error, 1)
	go func() {
		defer close(chunks)
		errCh <- conv.Stream(ctx, func(s string) error {
			select {
			case chunks <- s:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	first, ok := <-chunks
	if !ok {
		// terminó sin fragmentos; errCh ya tiene el resultado
		if err := <-errCh; err != nil {
			cancel()
			return h.chatFailure(c, err)
		}
		errCh <- nil
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	provider := conv.Provider()
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		broken := false
		send := func(v any) {
			if broken {
				return
			}
			b, _ := json.Marshal(v)
			_, _ = w.WriteString("data: ")
			_, _ = w.Write(b)
			_, _ = w.WriteString("\n\n")
			if err := w.Flush(); err != nil {
				// cliente desconectado: se corta la llamada al proveedor
				broken = true
				cancel()
			}
		}

		if ok {
			send(dto.ChatChunk{Content: first})
		}
		for s := range chunks {
			send(dto.ChatChunk{Content: s})
		}
		if err := <-errCh; err != nil && !broken {
			h.log.Error().Err(err).Str("provider", provider).Msg("chat: error durante el stream")
			send(dto.ChatErrorResponse{Error: "Terjadi kesalahan saat memproses permintaan"})
		}
		if !broken {
			_, _ = w.WriteString("data: [DONE]\n\n")
			_ = w.Flush()
		}
	})
	return nil
}

// chatFailure mantiene el contrato {error} de los endpoints de chat.
func (h *ChatHandler) chatFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return chatError(c, fiber.StatusNotFound, "Data servis tidak ditemukan")
	case errors.Is(err, domain.ErrInvalidInput):
		return chatError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("chat: no se pudo iniciar la respuesta")
	return chatError(c, fiber.StatusInternalServerError, "Terjadi kesalahan saat memproses permintaan")
}

func chatError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ChatErrorResponse{Error: msg})
}
