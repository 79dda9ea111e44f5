package ports

import "context"

// CaptchaVerifier verifica en el servidor el token reCAPTCHA generado en el cliente.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}
