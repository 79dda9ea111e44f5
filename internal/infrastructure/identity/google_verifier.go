// Package identity valida ID tokens de Google Sign-In usando el endpoint tokeninfo.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var _ ports.IdentityVerifier = (*GoogleVerifier)(nil)

// GoogleVerifier comprueba firma y expiración delegando en tokeninfo y exige aud == clientID.
type GoogleVerifier struct {
	clientID   string
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
}

// NewGoogleVerifier clientID vacío desactiva el inicio de sesión con Google.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID:   clientID,
		endpoint:   tokenInfoURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// WithEndpoint cambia la URL de tokeninfo (tests).
func (g *GoogleVerifier) WithEndpoint(u string) *GoogleVerifier {
	g.endpoint = u
	return g
}

// tokeninfo devuelve todos los claims como strings.
type tokenInfo struct {
	Iss           string `json:"iss"`
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Exp           string `json:"exp"`
}

// VerifyIDToken cualquier token rechazado por Google o emitido para otro cliente ⇒ domain.ErrUnauthorized.
func (g *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*ports.ExternalIdentity, error) {
	if g.clientID == "" {
		return nil, fmt.Errorf("%w: GOOGLE_CLIENT_ID no configurado", domain.ErrUnauthorized)
	}
	if idToken == "" {
		return nil, domain.ErrUnauthorized
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return nil, fmt.Errorf("identity: crear request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: llamada a tokeninfo: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err != nil {
		return nil, fmt.Errorf("identity: leer respuesta: %w", err)
	}
	if resp.StatusCode == http.StatusBadRequest {
		return nil, domain.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity: tokeninfo HTTP %d", resp.StatusCode)
	}

	var ti tokenInfo
	if err := json.Unmarshal(raw, &ti); err != nil {
		return nil, fmt.Errorf("identity: deserializar tokeninfo: %w", err)
	}
	if ti.Aud != g.clientID {
		return nil, fmt.Errorf("%w: audiencia inesperada", domain.ErrUnauthorized)
	}
	if ti.Iss != "accounts.google.com" && ti.Iss != "https://accounts.google.com" {
		return nil, fmt.Errorf("%w: emisor inesperado", domain.ErrUnauthorized)
	}
	if exp, err := strconv.ParseInt(ti.Exp, 10, 64); err == nil && g.now().Unix() >= exp {
		return nil, fmt.Errorf("%w: token expirado", domain.ErrUnauthorized)
	}
	if ti.Sub == "" || ti.Email == "" {
		return nil, fmt.Errorf("%w: token sin sub o email", domain.ErrUnauthorized)
	}
	return &ports.ExternalIdentity{
		Subject:       ti.Sub,
		Email:         ti.Email,
		EmailVerified: ti.EmailVerified == "true",
		Name:          ti.Name,
		Picture:       ti.Picture,
	}, nil
}
