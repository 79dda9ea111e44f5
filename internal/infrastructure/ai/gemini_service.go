package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
)

// Verificar en tiempo de compilación que GeminiService implementa ChatModel.
var _ ports.ChatModel = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService adaptador de streaming sobre la API REST de Google Gemini (:streamGenerateContent?alt=sse).
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
// Si apiKey está vacío, Stream devuelve domain.ErrAIUnavailable.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{apiKey: apiKey, model: model, baseURL: geminiBaseURL, httpClient: newStreamingClient()}
}

// WithBaseURL cambia el endpoint (tests, proxies).
func (s *GeminiService) WithBaseURL(u string) *GeminiService {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

// Name implementa ChatModel.
func (s *GeminiService) Name() string { return "gemini" }

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiChunk struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Stream envía la conversación y entrega el texto de cada evento a onChunk.
// El mensaje de sistema va en system_instruction; el rol assistant se traduce a "model".
func (s *GeminiService) Stream(ctx context.Context, msgs []ports.Message, cfg ports.GenerationConfig, onChunk func(string) error) error {
	if s.apiKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY no configurado", domain.ErrAIUnavailable)
	}

	payload := geminiRequest{
		Contents: make([]geminiContent, 0, len(msgs)),
		GenerationConfig: genConfig{
			Temperature:     cfg.Temperature,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxTokens,
		},
	}
	var system []string
	for _, m := range msgs {
		switch m.Role {
		case ports.RoleSystem:
			system = append(system, m.Content)
		case ports.RoleAssistant:
			payload.Contents = append(payload.Contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			payload.Contents = append(payload.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}
	if len(system) > 0 {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: strings.Join(system, "\n\n")}}}
	}
	// Gemini exige al menos un turno en contents.
	if len(payload.Contents) == 0 {
		payload.Contents = append(payload.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: "Halo"}}})
	}

	endpoint := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s",
		s.baseURL, url.PathEscape(s.model), url.QueryEscape(s.apiKey))
	resp, err := postStream(ctx, s.httpClient, "Gemini", endpoint, nil, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return readSSE(resp.Body, func(data string) error {
		var chunk geminiChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("AI: deserializar evento Gemini: %w", err)
		}
		if chunk.Error != nil {
			return fmt.Errorf("AI: Gemini error %d: %s", chunk.Error.Code, chunk.Error.Message)
		}
		for _, c := range chunk.Candidates {
			for _, p := range c.Content.Parts {
				if p.Text == "" {
					continue
				}
				if err := onChunk(p.Text); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
