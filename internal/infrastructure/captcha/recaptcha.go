// Package captcha verifica tokens reCAPTCHA contra el endpoint siteverify de Google.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
)

const siteVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

var (
	_ ports.CaptchaVerifier = (*RecaptchaVerifier)(nil)
	_ ports.CaptchaVerifier = DisabledVerifier{}
)

// RecaptchaVerifier cliente de siteverify.
type RecaptchaVerifier struct {
	secret     string
	minScore   float64
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewRecaptchaVerifier minScore solo aplica cuando Google devuelve score (reCAPTCHA v3).
func NewRecaptchaVerifier(secret string, minScore float64, log zerolog.Logger) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secret:     secret,
		minScore:   minScore,
		endpoint:   siteVerifyURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// WithEndpoint cambia la URL de siteverify (tests).
func (v *RecaptchaVerifier) WithEndpoint(u string) *RecaptchaVerifier {
	v.endpoint = u
	return v
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score,omitempty"`
	Action     string   `json:"action,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Verify un token vacío es inválido sin consultar a Google.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	form := url.Values{"secret": {v.secret}, "response": {token}}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("captcha: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha: llamada a siteverify: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err != nil {
		return false, fmt.Errorf("captcha: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha: siteverify HTTP %d", resp.StatusCode)
	}

	var out siteVerifyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return false, fmt.Errorf("captcha: deserializar respuesta: %w", err)
	}
	if !out.Success {
		v.log.Warn().Strs("error_codes", out.ErrorCodes).Msg("reCAPTCHA rechazado")
		return false, nil
	}
	if out.Score != nil && *out.Score < v.minScore {
		v.log.Warn().Float64("score", *out.Score).Float64("min_score", v.minScore).Str("action", out.Action).Msg("reCAPTCHA con score insuficiente")
		return false, nil
	}
	return true, nil
}

// DisabledVerifier acepta cualquier token. Se usa cuando RECAPTCHA_SECRET_KEY no está configurado.
type DisabledVerifier struct{}

// Verify siempre true.
func (DisabledVerifier) Verify(context.Context, string, string) (bool, error) { return true, nil }

// New devuelve el verificador real o, sin secreto, el desactivado con un aviso en el log.
func New(secret string, minScore float64, log zerolog.Logger) ports.CaptchaVerifier {
	if secret == "" {
		log.Warn().Msg("RECAPTCHA_SECRET_KEY vacío: verificación reCAPTCHA desactivada")
		return DisabledVerifier{}
	}
	return NewRecaptchaVerifier(secret, minScore, log)
}
