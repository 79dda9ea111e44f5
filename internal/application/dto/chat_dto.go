package dto

// ChatMessage turno de la conversación enviado por el cliente.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest cuerpo de /api/chat/gemini y /api/chat/groq.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// StaffChatRequest cuerpo de /api/chat/manajemen-servis.
// Con serviceId se analiza una solicitud; con serviceData se resume toda la colección.
type StaffChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	ServiceID   string        `json:"serviceId"`
	ServiceData bool          `json:"serviceData"`
}

// ChatChunk un evento SSE de la respuesta.
type ChatChunk struct {
	Content string `json:"content"`
}
