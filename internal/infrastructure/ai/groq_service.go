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

var _ ports.ChatModel = (*GroqService)(nil)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqService adaptador de streaming sobre la API compatible con OpenAI de Groq.
type GroqService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGroqService construye el adaptador. model suele ser "llama-3.3-70b-versatile".
func NewGroqService(apiKey, model string) *GroqService {
	return &GroqService{apiKey: apiKey, model: model, baseURL: groqBaseURL, httpClient: newStreamingClient()}
}

// WithBaseURL cambia el endpoint (tests, proxies).
func (s *GroqService) WithBaseURL(u string) *GroqService {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

// Name implementa ChatModel.
func (s *GroqService) Name() string { return "groq" }

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	TopP        float64         `json:"top_p"`
	MaxTokens   int             `json:"max_tokens"`
	Stream      bool            `json:"stream"`
}

type openAIChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Stream envía la conversación a /chat/completions con stream:true. El stream termina con "data: [DONE]".
func (s *GroqService) Stream(ctx context.Context, msgs []ports.Message, cfg ports.GenerationConfig, onChunk func(string) error) error {
	if s.apiKey == "" {
		return fmt.Errorf("%w: GROQ_API_KEY no configurado", domain.ErrAIUnavailable)
	}

	payload := openAIRequest{
		Model:       s.model,
		Messages:    make([]openAIMessage, 0, len(msgs)),
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		MaxTokens:   cfg.MaxTokens,
		Stream:      true,
	}
	for _, m := range msgs {
		payload.Messages = append(payload.Messages, openAIMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := postStream(ctx, s.httpClient, "Groq", s.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + s.apiKey}, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return readSSE(resp.Body, func(data string) error {
		if data == "[DONE]" {
			return errStreamDone
		}
		var chunk openAIChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("AI: deserializar evento Groq: %w", err)
		}
		if chunk.Error != nil {
			return fmt.Errorf("AI: Groq error: %s", chunk.Error.Message)
		}
		for _, c := range chunk.Choices {
			if c.Delta.Content == "" {
				continue
			}
			if err := onChunk(c.Delta.Content); err != nil {
				return err
			}
		}
		return nil
	})
}
