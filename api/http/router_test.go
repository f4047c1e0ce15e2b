package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/artem13815/askexpert/api/http/handlers"
	"github.com/artem13815/askexpert/pkg/answer"
	"github.com/artem13815/askexpert/pkg/expert"
	"github.com/artem13815/askexpert/pkg/health"
	"github.com/artem13815/askexpert/pkg/health/checkers"
	"github.com/artem13815/askexpert/pkg/llm"
)

type recordingModel struct {
	mu    sync.Mutex
	reply string
	err   error
	delay time.Duration
	calls [][]llms.ChatMessage
}

func (m *recordingModel) Complete(ctx context.Context, messages []llms.ChatMessage) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, messages)
	m.mu.Unlock()
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *recordingModel) ModelName() string { return "gpt-4o-mini" }

func (m *recordingModel) Calls() [][]llms.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newApp(model llm.ChatModel, credential string, timeout time.Duration) *fiber.App {
	return newAppWithBase(context.Background(), model, credential, timeout)
}

func newAppWithBase(base context.Context, model llm.ChatModel, credential string, timeout time.Duration) *fiber.App {
	roles := expert.Default()
	svc := answer.NewService(roles, model, credential)
	readiness := health.NewService(checkers.NewCredentialChecker(credential != ""))

	app := fiber.New()
	app.Use(BaseContext(base))
	Register(app,
		handlers.NewHealthHandler(readiness),
		handlers.NewRolesHandler(roles),
		handlers.NewAskHandler(svc, timeout),
		handlers.NewFormHandler(roles, svc, timeout, "LangChain LLM Webアプリ"),
	)
	return app
}

func submitForm(t *testing.T, app *fiber.App, role, text string) (int, string) {
	t.Helper()
	form := url.Values{"role": {role}, "text": {text}}
	req := httptest.NewRequest(nethttp.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func postJSON(t *testing.T, app *fiber.App, path string, v any) (*nethttp.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(nethttp.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestForm_Show(t *testing.T) {
	app := newApp(&recordingModel{}, "sk-test", time.Second)
	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	html := string(body)
	assert.Contains(t, html, expert.LabelTutor)
	assert.Contains(t, html, expert.LabelCoach)
	assert.Less(t, strings.Index(html, expert.LabelTutor), strings.Index(html, expert.LabelCoach))
	assert.Contains(t, html, "送信")
	assert.NotContains(t, html, "回答結果")
}

func TestForm_TutorScenario(t *testing.T) {
	model := &recordingModel{reply: "辞書は {\"key\": 1} のように書きます。"}
	app := newApp(model, "sk-test", time.Second)

	status, html := submitForm(t, app, expert.LabelTutor, "辞書の使い方を教えて")
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, html, "回答結果")
	assert.Contains(t, html, "辞書は {&#34;key&#34;: 1} のように書きます。")

	calls := model.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, expert.TutorInstruction, calls[0][0].GetContent())
	assert.Equal(t, "辞書の使い方を教えて", calls[0][1].GetContent())
}

func TestForm_WhitespaceOnlyShowsWarning(t *testing.T) {
	model := &recordingModel{reply: "unused"}
	app := newApp(model, "sk-test", time.Second)

	for _, text := range []string{"", "  ", "\n\t", "　"} {
		status, html := submitForm(t, app, expert.LabelCoach, text)
		assert.Equal(t, nethttp.StatusOK, status)
		assert.Contains(t, html, answer.EmptyInputMessage)
		assert.NotContains(t, html, "回答結果")
	}
	assert.Empty(t, model.Calls())
}

func TestForm_KeepsSelectedRole(t *testing.T) {
	app := newApp(&recordingModel{}, "sk-test", time.Second)
	_, html := submitForm(t, app, expert.LabelCoach, " ")
	assert.Contains(t, html, `value="`+expert.LabelCoach+`" checked`)
	assert.NotContains(t, html, `value="`+expert.LabelTutor+`" checked`)
}

func TestForm_MissingCredentialScenario(t *testing.T) {
	model := &recordingModel{reply: "unused"}
	app := newApp(model, "", time.Second)

	_, html := submitForm(t, app, expert.LabelTutor, "test")
	assert.Contains(t, html, "OPENAI_API_KEY が見つかりません。StreamlitのSecretsまたは環境変数に設定してください。")
	assert.Empty(t, model.Calls())
}

func TestForm_ProviderErrorIsShown(t *testing.T) {
	model := &recordingModel{err: &llm.ProviderError{StatusCode: 401, Err: errors.New("invalid key")}}
	app := newApp(model, "sk-test", time.Second)

	_, html := submitForm(t, app, expert.LabelTutor, "test")
	assert.Contains(t, html, answer.ProviderMessage)
	assert.Contains(t, html, `class="answer error"`)
}

func TestAPI_Ask(t *testing.T) {
	model := &recordingModel{reply: "次の一歩を一緒に考えましょう。"}
	app := newApp(model, "sk-test", time.Second)

	resp, out := postJSON(t, app, "/api/v1/ask", map[string]string{
		"role": expert.LabelCoach,
		"text": "転職するか迷っています",
	})
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "次の一歩を一緒に考えましょう。", out["answer"])
	assert.Equal(t, expert.LabelCoach, out["role"])
	assert.Equal(t, "gpt-4o-mini", out["model"])
	assert.NotEmpty(t, out["id"])
	require.Len(t, model.Calls(), 1)
	assert.Equal(t, expert.CoachInstruction, model.Calls()[0][0].GetContent())
}

func TestAPI_AskEmptyText(t *testing.T) {
	model := &recordingModel{}
	app := newApp(model, "sk-test", time.Second)

	resp, out := postJSON(t, app, "/api/v1/ask", map[string]string{"role": expert.LabelCoach, "text": "  "})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, answer.EmptyInputMessage, out["message"])
	assert.Equal(t, "empty_input", out["kind"])
	assert.Empty(t, model.Calls())
}

func TestAPI_AskErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		model      *recordingModel
		credential string
		timeout    time.Duration
		status     int
		kind       string
	}{
		{"missing credential", &recordingModel{}, "", time.Second, nethttp.StatusServiceUnavailable, "credential_missing"},
		{"provider", &recordingModel{err: &llm.ProviderError{StatusCode: 429, Err: errors.New("slow down")}}, "sk", time.Second, nethttp.StatusBadGateway, "provider"},
		{"network", &recordingModel{err: errors.New("connection reset")}, "sk", time.Second, nethttp.StatusBadGateway, "network"},
		{"timeout", &recordingModel{delay: time.Second}, "sk", 20 * time.Millisecond, nethttp.StatusGatewayTimeout, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(tt.model, tt.credential, tt.timeout)
			resp, out := postJSON(t, app, "/api/v1/ask", map[string]string{"role": expert.LabelTutor, "text": "q"})
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.kind, out["kind"])
			assert.NotEmpty(t, out["message"])
		})
	}
}

func TestAPI_AskInvalidJSON(t *testing.T) {
	app := newApp(&recordingModel{}, "sk-test", time.Second)
	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/ask", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Roles(t *testing.T) {
	app := newApp(&recordingModel{}, "sk-test", time.Second)
	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/roles", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var roles []expert.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&roles))
	require.Len(t, roles, 2)
	assert.Equal(t, expert.LabelTutor, roles[0].Label)
	assert.Equal(t, expert.TutorInstruction, roles[0].Instruction)
	assert.Equal(t, expert.LabelCoach, roles[1].Label)
}

func TestHealthAndReady(t *testing.T) {
	ready := newApp(&recordingModel{}, "sk-test", time.Second)
	resp, err := ready.Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var live map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&live))
	assert.Equal(t, map[string]any{"status": "ok"}, live)

	resp, err = ready.Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	notReady := newApp(&recordingModel{}, "", time.Second)
	resp, err = notReady.Test(httptest.NewRequest(nethttp.MethodGet, "/api/v1/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, nethttp.StatusServiceUnavailable, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "not_ready", out["status"])
	assert.Equal(t, map[string]any{"llm_credential": "llm credential is not configured"}, out["details"])
}

func TestBaseContext_ShutdownCancelsAsk(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	cancel()

	model := &recordingModel{delay: time.Second}
	app := newAppWithBase(base, model, "sk-test", 5*time.Second)

	resp, out := postJSON(t, app, "/api/v1/ask", map[string]string{"role": expert.LabelTutor, "text": "q"})
	assert.Equal(t, 499, resp.StatusCode)
	assert.Equal(t, "canceled", out["kind"])
	assert.Equal(t, answer.CanceledMessage, out["message"])

	_, html := submitForm(t, app, expert.LabelTutor, "q")
	assert.Contains(t, html, answer.CanceledMessage)
}

func TestBaseContext_RequestContextEndsWithHandler(t *testing.T) {
	var seen context.Context
	app := fiber.New()
	app.Use(BaseContext(context.Background()))
	app.Get("/ctx", func(c *fiber.Ctx) error {
		seen = c.UserContext()
		require.NoError(t, seen.Err())
		return c.SendStatus(nethttp.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/ctx", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusNoContent, resp.StatusCode)
	require.NotNil(t, seen)
	assert.ErrorIs(t, seen.Err(), context.Canceled)
}
