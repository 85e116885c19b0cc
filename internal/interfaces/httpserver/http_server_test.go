package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notaria-server/intake-api/internal/config"
	"notaria-server/intake-api/internal/domain/chat"
	"notaria-server/intake-api/internal/domain/content"
	"notaria-server/intake-api/internal/infrastructure/auth"
	"notaria-server/intake-api/internal/infrastructure/metrics"
	chatrepo "notaria-server/intake-api/internal/infrastructure/repository/chat"
	"notaria-server/intake-api/internal/interfaces/httpserver"
	"notaria-server/intake-api/internal/interfaces/httpserver/handlers"
)

type stubContentStore struct {
	services []*content.Service
	posts    []*content.BlogPost
	contacts []*content.ContactRequest
}

func (s *stubContentStore) ListOrdered(ctx context.Context) ([]*content.Service, error) {
	return s.services, nil
}

func (s *stubContentStore) ListPublished(ctx context.Context, limit int) ([]*content.BlogPost, error) {
	if limit < len(s.posts) {
		return s.posts[:limit], nil
	}
	return s.posts, nil
}

func (s *stubContentStore) Create(ctx context.Context, request *content.ContactRequest) error {
	request.ID = uint(len(s.contacts) + 1)
	s.contacts = append([]*content.ContactRequest{request}, s.contacts...)
	return nil
}

func (s *stubContentStore) ListNewestFirst(ctx context.Context) ([]*content.ContactRequest, error) {
	return s.contacts, nil
}

func newTestServer(t *testing.T) (*gin.Engine, *chatrepo.InMemoryStore, *stubContentStore) {
	t.Helper()
	return newTestServerWithLogger(t, zerolog.Nop())
}

func newTestServerWithLogger(t *testing.T, log zerolog.Logger) (*gin.Engine, *chatrepo.InMemoryStore, *stubContentStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServiceName:     "intake-api",
		Environment:     "test",
		ShutdownTimeout: time.Second,
		StoreTimeout:    time.Second,
	}

	store := chatrepo.NewInMemoryStore()
	catalog := chat.NewRequirementsCatalog()
	engine := chat.NewDialogueEngine(catalog, store, store, cfg.StoreTimeout, log)
	recorder := chat.NewIntakeRecorder(catalog, store, store, store.Requests(), store, engine, cfg.StoreTimeout, log)

	contentStore := &stubContentStore{
		services: []*content.Service{
			{ID: 1, Title: "Compra Venta", Description: "Escrituración", IconName: "home", DisplayOrder: 1},
			{ID: 2, Title: "Donación", Description: "Donaciones", IconName: "gift", DisplayOrder: 2},
		},
	}
	contentService := content.NewContentService(contentStore, contentStore, contentStore, log)

	validator, err := auth.NewValidator(context.Background(), cfg, log)
	require.NoError(t, err)

	provider := handlers.NewProvider(engine, recorder, catalog, contentService, log)
	server := httpserver.New(cfg, log, provider, validator)
	return server.Engine(), store, contentStore
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOpenConversationEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot/conversation", gin.H{"sessionId": "s1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "s1", body["session_id"])
	assert.Equal(t, "welcome", body["current_step"])
	assert.Equal(t, "active", body["status"])
}

func TestOpenConversationRequiresSessionID(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot/conversation", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot/message", gin.H{
		"sessionId": "s2",
		"message":   "hola",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		BotMessage struct {
			Sender      string `json:"sender"`
			Message     string `json:"message"`
			MessageType string `json:"message_type"`
		} `json:"botMessage"`
		Conversation struct {
			CurrentStep string `json:"current_step"`
		} `json:"conversation"`
		Restarted bool `json:"restarted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bot", body.BotMessage.Sender)
	assert.Equal(t, "service_selection", body.BotMessage.MessageType)
	assert.Contains(t, body.BotMessage.Message, "1. Compra Venta")
	assert.Equal(t, "service_selection", body.Conversation.CurrentStep)
	assert.False(t, body.Restarted)
}

func TestSendMessageRequiresBody(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot/message", gin.H{"sessionId": "s3"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMessagesUnknownSessionReturnsEmptyArray(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/chatbot/conversation/never-seen/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServiceRequestEndpoint(t *testing.T) {
	router, store, _ := newTestServer(t)

	for _, msg := range []string{"hola", "1", "sí"} {
		rec := doJSON(t, router, http.MethodPost, "/api/chatbot/message", gin.H{
			"sessionId": "s4",
			"message":   msg,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot/service-request", gin.H{
		"sessionId":   "s4",
		"serviceType": "compra_venta",
		"clientName":  "María Pérez",
		"nationality": "Mexicana",
		"birthPlace":  "Guadalajara",
		"residence":   "Zapopan",
		"phone":       "3312345678",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "compra_venta", body["service_type"])
	assert.NotZero(t, body["id"])

	requests := store.StoredRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, "María Pérez", requests[0].ClientName)

	// The stored conversation is completed and the confirmation message is
	// readable through the history endpoint.
	histRec := doJSON(t, router, http.MethodGet, "/api/chatbot/conversation/s4/messages", nil)
	require.Equal(t, http.StatusOK, histRec.Code)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &history))
	last := history[len(history)-1]
	assert.Equal(t, "confirmation", last["message_type"])
}

func TestServiceRequestValidation(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot/service-request", gin.H{
		"sessionId":   "s5",
		"serviceType": "compra_venta",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListServicesEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/services", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Compra Venta", body[0]["title"])
}

func TestListBlogPostsRejectsBadLimit(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/blog-posts?limit=muchos", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/blog-posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestContactRequestEndpoints(t *testing.T) {
	router, _, contentStore := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/contact-requests", gin.H{
		"name":    "Juan López",
		"email":   "juan@example.com",
		"subject": "Consulta",
		"message": "¿Atienden los sábados?",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, contentStore.contacts, 1)

	// Auth is disabled in tests so the inbox listing is open.
	listRec := doJSON(t, router, http.MethodGet, "/v1/contact-requests", nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "pending", body[0]["status"])
}

func TestContactRequestValidation(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/contact-requests", gin.H{"name": "Juan"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorResponsesAreLoggedWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	router, _, _ := newTestServerWithLogger(t, zerolog.New(&buf))

	payload, err := json.Marshal(gin.H{
		"sessionId":   "ghost-session",
		"serviceType": "compra_venta",
		"clientName":  "Ana Torres",
		"nationality": "Mexicana",
		"birthPlace":  "Colima",
		"residence":   "Colima",
		"phone":       "5551234567",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chatbot/service-request", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "req-test-404")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	// The response carries the request id, the log carries the internals.
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "req-test-404", body["request_id"])

	logged := buf.String()
	assert.Contains(t, logged, "NOT_FOUND")
	assert.Contains(t, logged, "req-test-404")
	assert.Contains(t, logged, "error_uuid")
}

func TestIntakeErrorMetricBoundsServiceLabel(t *testing.T) {
	router, _, _ := newTestServer(t)

	before := testutil.ToFloat64(metrics.IntakesTotal.WithLabelValues("invalid", "error"))

	rec := doJSON(t, router, http.MethodPost, "/api/chatbot/conversation", gin.H{"sessionId": "s-metrics"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/chatbot/service-request", gin.H{
		"sessionId":   "s-metrics",
		"serviceType": "algo-que-nadie-ofrece",
		"clientName":  "Ana Torres",
		"nationality": "Mexicana",
		"birthPlace":  "Colima",
		"residence":   "Colima",
		"phone":       "5551234567",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	after := testutil.ToFloat64(metrics.IntakesTotal.WithLabelValues("invalid", "error"))
	assert.Equal(t, before+1, after)
}

func TestHealthEndpoints(t *testing.T) {
	router, _, _ := newTestServer(t)

	for _, path := range []string{"/", "/healthz", "/readyz"} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
