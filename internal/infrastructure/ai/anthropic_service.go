package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
)

// Verificar en tiempo de compilación que AnthropicService implementa ChatModel.
var _ ports.ChatModel = (*AnthropicService)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicService adaptador de streaming sobre /v1/messages de Anthropic.
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{apiKey: apiKey, model: model, baseURL: anthropicBaseURL, httpClient: newStreamingClient()}
}

// WithBaseURL cambia el endpoint (tests, proxies).
func (s *AnthropicService) WithBaseURL(u string) *AnthropicService {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

// Name implementa ChatModel.
func (s *AnthropicService) Name() string { return "anthropic" }

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	TopP        float64            `json:"top_p"`
	Stream      bool               `json:"stream"`
}

type anthropicEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Stream envía la conversación con stream:true y entrega los content_block_delta de texto.
// Anthropic exige que el primer turno sea del usuario y que los roles alternen; los turnos
// consecutivos del mismo rol se fusionan.
func (s *AnthropicService) Stream(ctx context.Context, msgs []ports.Message, cfg ports.GenerationConfig, onChunk func(string) error) error {
	if s.apiKey == "" {
		return fmt.Errorf("%w: ANTHROPIC_API_KEY no configurado", domain.ErrAIUnavailable)
	}

	payload := anthropicRequest{
		Model:       s.model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		Stream:      true,
	}
	var system []string
	for _, m := range msgs {
		if m.Role == ports.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		role := "user"
		if m.Role == ports.RoleAssistant {
			role = "assistant"
		}
		if len(payload.Messages) == 0 && role == "assistant" {
			continue
		}
		if n := len(payload.Messages); n > 0 && payload.Messages[n-1].Role == role {
			payload.Messages[n-1].Content += "\n\n" + m.Content
			continue
		}
		payload.Messages = append(payload.Messages, anthropicMessage{Role: role, Content: m.Content})
	}
	payload.System = strings.Join(system, "\n\n")
	if len(payload.Messages) == 0 {
		payload.Messages = []anthropicMessage{{Role: "user", Content: "Halo"}}
	}

	resp, err := postStream(ctx, s.httpClient, "Anthropic", s.baseURL+"/v1/messages", map[string]string{
		"x-api-key":         s.apiKey,
		"anthropic-version": anthropicVersion,
	}, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return readSSE(resp.Body, func(data string) error {
		var ev anthropicEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			return fmt.Errorf("AI: deserializar evento Anthropic: %w", err)
		}
		switch ev.Type {
		case "content_block_delta":
			if ev.Delta.Type == "text_delta" && ev.Delta.Text != "" {
				return onChunk(ev.Delta.Text)
			}
		case "message_stop":
			return errStreamDone
		case "error":
			if ev.Error != nil {
				return fmt.Errorf("AI: Anthropic error %s: %s", ev.Error.Type, ev.Error.Message)
			}
			return fmt.Errorf("AI: Anthropic error")
		}
		return nil
	})
}
