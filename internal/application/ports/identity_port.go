package ports

import "context"

// ExternalIdentity datos verificados de un proveedor de identidad externo.
type ExternalIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// IdentityVerifier valida un ID token de Google Sign-In.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
}
