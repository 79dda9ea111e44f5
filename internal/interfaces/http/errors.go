package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// El orden importa: el primero que coincide con errors.Is gana.
var errorMappings = []errorMapping{
	{domain.ErrCaptchaFailed, fiber.StatusBadRequest, "CAPTCHA_FAILED", domain.ErrCaptchaFailed.Error()},
	{domain.ErrTooManyImages, fiber.StatusBadRequest, "TOO_MANY_IMAGES", "Maksimal 5 foto per permintaan servis"},
	{domain.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Ukuran file maksimal 20 MB"},
	{domain.ErrUnsupportedMedia, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA", "Hanya file gambar yang diperbolehkan"},
	{domain.ErrInvalidTransition, fiber.StatusUnprocessableEntity, "INVALID_TRANSITION", "Perubahan status tidak diizinkan"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "Pengguna tidak ditemukan"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Data tidak ditemukan"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "Email sudah terdaftar"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "Data sudah ada"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "Data sudah diubah oleh pengguna lain, muat ulang halaman"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "Autentikasi gagal, periksa kembali email dan kata sandi"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "Anda tidak memiliki akses ke halaman ini"},
	{domain.ErrAIUnavailable, fiber.StatusServiceUnavailable, "AI_UNAVAILABLE", "Asisten AI sedang tidak tersedia"},
}

// writeError traduce un error de dominio a status + dto.ErrorResponse.
// Los errores no reconocidos se registran y se responden como 500 sin detalles internos.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("user_id", GetUserID(c)).
		Msg("error no controlado en handler")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Terjadi kesalahan pada server"})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Data tidak ditemukan"})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
