package ports

import "context"

// Roles de los mensajes enviados al modelo.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message turno de conversación independiente del proveedor.
type Message struct {
	Role    string
	Content string
}

// GenerationConfig parámetros de muestreo fijados en código por cada asistente.
type GenerationConfig struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// ChatModel define el puerto de salida hacia un proveedor de LLM con respuesta en streaming.
// Cualquier adaptador (Gemini, Groq, Anthropic, mock) debe implementar esta interfaz.
// onChunk recibe cada fragmento de texto en orden; si devuelve error se corta el stream.
// El contexto cancela la llamada al proveedor si el cliente se desconecta.
type ChatModel interface {
	Name() string
	Stream(ctx context.Context, msgs []Message, cfg GenerationConfig, onChunk func(string) error) error
}
