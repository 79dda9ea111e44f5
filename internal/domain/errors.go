package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Ciclo de vida e ingreso de solicitudes de servicio.
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrTooManyImages     = errors.New("máximo 5 imágenes por solicitud")
	ErrFileTooLarge      = errors.New("el archivo supera el tamaño máximo")
	ErrUnsupportedMedia  = errors.New("tipo de archivo no permitido")

	// El cliente distingue este mensaje para mostrar un aviso específico.
	ErrCaptchaFailed = errors.New("reCAPTCHA verification failed")

	ErrAIUnavailable = errors.New("proveedor de IA no configurado")
)
