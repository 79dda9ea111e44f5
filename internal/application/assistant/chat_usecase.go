// Package assistant arma las conversaciones de los asistentes de chat:
// prompt de sistema, contexto de negocio y parámetros de generación por proveedor.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/analytics"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
)

// Proveedores del asistente público.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// Conversation mensajes listos para enviar a un modelo concreto.
type Conversation struct {
	model    ports.ChatModel
	messages []ports.Message
	config   ports.GenerationConfig
}

// Messages lista completa, con el prompt de sistema en la primera posición.
func (c *Conversation) Messages() []ports.Message { return c.messages }

// Provider nombre del modelo que atenderá la conversación.
func (c *Conversation) Provider() string { return c.model.Name() }

// Stream envía la conversación al proveedor y entrega cada fragmento a onChunk.
func (c *Conversation) Stream(ctx context.Context, onChunk func(string) error) error {
	return c.model.Stream(ctx, c.messages, c.config, onChunk)
}

// Models proveedores configurados; nil significa sin API key.
type Models struct {
	Gemini ports.ChatModel
	Groq   ports.ChatModel
	Staff  ports.ChatModel
}

// ChatUseCase prepara las conversaciones de los tres endpoints de chat.
type ChatUseCase struct {
	models Models
	stats  *analytics.ServiceStatsUseCase
	log    zerolog.Logger
}

// NewChatUseCase construye el caso de uso.
func NewChatUseCase(models Models, stats *analytics.ServiceStatsUseCase, log zerolog.Logger) *ChatUseCase {
	return &ChatUseCase{models: models, stats: stats, log: log}
}

// Customer conversación del asistente público. Una lista vacía es válida:
// el proveedor recibe solo el prompt de sistema.
func (uc *ChatUseCase) Customer(provider string, in []dto.ChatMessage) (*Conversation, error) {
	var (
		model ports.ChatModel
		cfg   ports.GenerationConfig
	)
	switch provider {
	case ProviderGemini:
		model, cfg = uc.models.Gemini, customerGeminiConfig
	case ProviderGroq:
		model, cfg = uc.models.Groq, customerGroqConfig
	default:
		return nil, fmt.Errorf("%w: proveedor %q", domain.ErrInvalidInput, provider)
	}
	if model == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAIUnavailable, provider)
	}
	return &Conversation{model: model, messages: withSystem(customerSystemPrompt, in), config: cfg}, nil
}

// Staff conversación del asistente manajemen-servis.
// Con ServiceID agrega el detalle de esa solicitud (ErrNotFound si no existe);
// con ServiceData agrega las estadísticas de toda la colección. Siempre incluye la tabla de precios.
func (uc *ChatUseCase) Staff(ctx context.Context, in dto.StaffChatRequest) (*Conversation, error) {
	if uc.models.Staff == nil {
		return nil, fmt.Errorf("%w: asistente de servicio", domain.ErrAIUnavailable)
	}
	prompt, err := uc.StaffPrompt(ctx, in)
	if err != nil {
		return nil, err
	}
	return &Conversation{model: uc.models.Staff, messages: withSystem(prompt, in.Messages), config: staffConfig}, nil
}

// StaffPrompt arma el prompt de sistema del personal. Se recalcula en cada llamada.
func (uc *ChatUseCase) StaffPrompt(ctx context.Context, in dto.StaffChatRequest) (string, error) {
	sections := []string{staffSystemPrompt}

	if id := strings.TrimSpace(in.ServiceID); id != "" {
		sr, err := uc.stats.Get(ctx, id)
		if err != nil {
			return "", fmt.Errorf("cargar servicio %s: %w", id, err)
		}
		if sr == nil {
			return "", domain.ErrNotFound
		}
		sections = append(sections, serviceDetailSection(sr))
	}
	if in.ServiceData {
		snap, err := uc.stats.Snapshot(ctx)
		if err != nil {
			return "", err
		}
		uc.log.Debug().Int("total", snap.Total).Int("top_issues", len(snap.TopIssues)).Msg("contexto de servicio agregado")
		sections = append(sections, collectionSection(snap))
	}

	sections = append(sections, renderPricingTable(PricingTable), formattingInstructions)
	return strings.Join(sections, "\n\n"), nil
}

// withSystem antepone el prompt de sistema y normaliza los roles recibidos del cliente.
// El cliente no puede inyectar mensajes de sistema: se tratan como del usuario.
func withSystem(system string, in []dto.ChatMessage) []ports.Message {
	out := make([]ports.Message, 0, len(in)+1)
	out = append(out, ports.Message{Role: ports.RoleSystem, Content: system})
	for _, m := range in {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		role := ports.RoleUser
		switch strings.ToLower(m.Role) {
		case "assistant", "model", "bot":
			role = ports.RoleAssistant
		}
		out = append(out, ports.Message{Role: role, Content: content})
	}
	return out
}
