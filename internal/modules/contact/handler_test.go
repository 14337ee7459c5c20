package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agenda-br/core/internal/middleware"
	jwtpkg "github.com/agenda-br/core/internal/pkg/jwt"
	"github.com/agenda-br/core/internal/pkg/revocation"
	"github.com/agenda-br/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contactEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions *session.Manager
}

func newContactEnv(t *testing.T) *contactEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtpkg.SetSecret("test-secret")

	db := newTestDB(t)
	sm := session.NewManager(revocation.NewMemoryStore(), time.Hour)

	router := gin.New()
	api := router.Group("/api")
	NewHandler(NewService(db), zap.NewNop()).RegisterRoutes(api, middleware.Auth(sm))

	return &contactEnv{router: router, db: db, sessions: sm}
}

func (e *contactEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.sessions.Issue(userID)
	require.NoError(t, err)
	return token
}

func (e *contactEnv) do(t *testing.T, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func contactBody() gin.H {
	return gin.H{
		"name":         "João Silva",
		"cpf":          "123.456.789-09",
		"phone":        "(11) 99999-9999",
		"cep":          "01001-000",
		"street":       "Rua Exemplo",
		"number":       "123",
		"complement":   "Apto 456",
		"neighborhood": "Centro",
		"city":         "São Paulo",
		"state":        "SP",
		"latitude":     -23.5505,
		"longitude":    -46.6333,
	}
}

func TestContactsRequireToken(t *testing.T) {
	env := newContactEnv(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/contacts"},
		{http.MethodPost, "/api/contacts"},
		{http.MethodGet, "/api/contacts/abc"},
		{http.MethodPut, "/api/contacts/abc"},
		{http.MethodDelete, "/api/contacts/abc"},
	}
	for _, r := range routes {
		w, body := env.do(t, r.method, r.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)
		assert.Equal(t, "Token de autenticação ausente.", body["message"])
	}
}

func TestCreateContactEndpoint(t *testing.T) {
	env := newContactEnv(t)
	owner := newTestUser(t, env.db, "a@example.com")
	token := env.tokenFor(t, owner)

	w, body := env.do(t, http.MethodPost, "/api/contacts", contactBody(), token)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Contato criado com sucesso.", body["message"])

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "123.456.789-09", data["cpf"])
	assert.Equal(t, owner, data["user_id"])
}

func TestCreateContactValidationEnvelope(t *testing.T) {
	env := newContactEnv(t)
	owner := newTestUser(t, env.db, "a@example.com")
	token := env.tokenFor(t, owner)

	payload := contactBody()
	payload["cpf"] = "123.456.789-00"
	payload["name"] = ""

	w, body := env.do(t, http.MethodPost, "/api/contacts", payload, token)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Erro de validação.", body["message"])

	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "cpf")
	assert.Contains(t, errs, "name")

	msgs := errs["cpf"].([]interface{})
	assert.Contains(t, msgs, "O campo cpf não é um CPF válido.")
}

func TestCreateContactNonNumericCoordinates(t *testing.T) {
	env := newContactEnv(t)
	owner := newTestUser(t, env.db, "a@example.com")
	token := env.tokenFor(t, owner)

	payload := contactBody()
	payload["latitude"] = "não é número"

	w, body := env.do(t, http.MethodPost, "/api/contacts", payload, token)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	errs := body["errors"].(map[string]interface{})
	msgs := errs["latitude"].([]interface{})
	assert.Contains(t, msgs, "O campo latitude deve ser um número.")
}

func TestShowContactEndpoint(t *testing.T) {
	env := newContactEnv(t)
	owner := newTestUser(t, env.db, "a@example.com")
	intruder := newTestUser(t, env.db, "b@example.com")
	token := env.tokenFor(t, owner)

	w, body := env.do(t, http.MethodPost, "/api/contacts", contactBody(), token)
	require.Equal(t, http.StatusCreated, w.Code)
	id := body["data"].(map[string]interface{})["id"].(string)

	w, body = env.do(t, http.MethodGet, "/api/contacts/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Contato encontrado com sucesso.", body["message"])

	// Someone else's token sees a 404, same as a missing id.
	w, body = env.do(t, http.MethodGet, "/api/contacts/"+id, nil, env.tokenFor(t, intruder))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Contato não encontrado.", body["message"])

	w, _ = env.do(t, http.MethodGet, "/api/contacts/no-such-id", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateContactEndpoint(t *testing.T) {
	env := newContactEnv(t)
	owner := newTestUser(t, env.db, "a@example.com")
	token := env.tokenFor(t, owner)

	w, body := env.do(t, http.MethodPost, "/api/contacts", contactBody(), token)
	require.Equal(t, http.StatusCreated, w.Code)
	id := body["data"].(map[string]interface{})["id"].(string)

	payload := contactBody()
	payload["name"] = "João Silva Atualizado"
	w, body = env.do(t, http.MethodPut, "/api/contacts/"+id, payload, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Contato atualizado com sucesso.", body["message"])
	assert.Equal(t, "João Silva Atualizado", body["data"].(map[string]interface{})["name"])

	w, _ = env.do(t, http.MethodPut, "/api/contacts/no-such-id", contactBody(), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteContactEndpoint(t *testing.T) {
	env := newContactEnv(t)
	owner := newTestUser(t, env.db, "a@example.com")
	token := env.tokenFor(t, owner)

	w, body := env.do(t, http.MethodPost, "/api/contacts", contactBody(), token)
	require.Equal(t, http.StatusCreated, w.Code)
	id := body["data"].(map[string]interface{})["id"].(string)

	w, body = env.do(t, http.MethodDelete, "/api/contacts/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Contato excluído com sucesso.", body["message"])

	w, _ = env.do(t, http.MethodDelete, "/api/contacts/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListContactsEndpoint(t *testing.T) {
	env := newContactEnv(t)
	owner := newTestUser(t, env.db, "a@example.com")
	token := env.tokenFor(t, owner)

	for i := 0; i < 12; i++ {
		payload := contactBody()
		payload["name"] = fmt.Sprintf("Contato %02d", i)
		payload["cpf"] = testCPF(300000000 + i)
		w, _ := env.do(t, http.MethodPost, "/api/contacts", payload, token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := env.do(t, http.MethodGet, "/api/contacts?qtd=5&page=2&orderBy=name&orderDirection=asc", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Contatos listados com sucesso.", body["message"])

	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 2, data["current_page"])
	assert.EqualValues(t, 5, data["per_page"])
	assert.EqualValues(t, 12, data["total"])
	assert.EqualValues(t, 3, data["last_page"])

	rows := data["data"].([]interface{})
	require.Len(t, rows, 5)
	assert.Equal(t, "Contato 05", rows[0].(map[string]interface{})["name"])
}

func TestListContactsSearchParam(t *testing.T) {
	env := newContactEnv(t)
	owner := newTestUser(t, env.db, "a@example.com")
	token := env.tokenFor(t, owner)

	w, _ := env.do(t, http.MethodPost, "/api/contacts", contactBody(), token)
	require.Equal(t, http.StatusCreated, w.Code)

	other := contactBody()
	other["name"] = "Maria Souza"
	other["cpf"] = testCPF(987654321)
	w, _ = env.do(t, http.MethodPost, "/api/contacts", other, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := env.do(t, http.MethodGet, "/api/contacts?search=maria", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	rows := data["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Maria Souza", rows[0].(map[string]interface{})["name"])
}
