package http_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
)

func postChat(t *testing.T, env *testEnv, path, body, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return env.do(t, req)
}

func TestChatGemini_MensajesVacios_SoloPromptDeSistema(t *testing.T) {
	env := newTestEnv(t)
	env.model.chunks = []string{"Halo! ", "Ada yang bisa dibantu?"}

	resp := postChat(t, env, "/api/chat/gemini", `{"messages":[]}`, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(b)
	assert.Contains(t, body, `data: {"content":"Halo! "}`+"\n\n")
	assert.Contains(t, body, `data: {"content":"Ada yang bisa dibantu?"}`+"\n\n")
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))

	got := env.model.received()
	require.Len(t, got, 1)
	assert.Equal(t, ports.RoleSystem, got[0].Role)
}

func TestChatGemini_ErrorAntesDelPrimerFragmento_JSON500(t *testing.T) {
	env := newTestEnv(t)
	env.model.err = errors.New("AI: gemini HTTP 429: quota")

	resp := postChat(t, env, "/api/chat/gemini", `{"messages":[{"role":"user","content":"halo"}]}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[dto.ChatErrorResponse](t, resp)
	assert.NotEmpty(t, body.Error)
}

func TestChatGemini_ErrorAMitadDelStream(t *testing.T) {
	env := newTestEnv(t)
	env.model.chunks = []string{"Laptop "}
	env.model.err = errors.New("conexión cortada")

	resp := postChat(t, env, "/api/chat/gemini", `{"messages":[{"role":"user","content":"laptop mati"}]}`, "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(b)
	assert.Contains(t, body, `data: {"content":"Laptop "}`)
	assert.Contains(t, body, `data: {"error":`)
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestChatGroq_SinAPIKey_Retorna500(t *testing.T) {
	env := newTestEnv(t) // solo Gemini configurado

	resp := postChat(t, env, "/api/chat/groq", `{"messages":[]}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[dto.ChatErrorResponse](t, resp)
	assert.NotEmpty(t, body.Error)
}

func TestChat_BodyInvalido_Retorna400(t *testing.T) {
	env := newTestEnv(t)

	resp := postChat(t, env, "/api/chat/gemini", `{"messages":`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatManajemenServis_RequierePersonal(t *testing.T) {
	env := newTestEnv(t)

	resp := postChat(t, env, "/api/chat/manajemen-servis", `{"messages":[]}`, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp2 := postChat(t, env, "/api/chat/manajemen-servis", `{"messages":[]}`, tokenFor(t, customerUID, "user"))
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
}
