package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/assistant"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
	"github.com/aurybot/aury-backend/internal/services"
	"github.com/aurybot/aury-backend/internal/testutil"
)

func newChatRouter(t *testing.T, stub *testutil.StubLLM, planName string) chi.Router {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	users := testutil.NewMockUserRepository()
	if err := users.Create(context.Background(), &user.User{
		ID:    "u1",
		Email: "ana@example.com",
		Name:  "Ana",
		Plan:  planName,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tasks := testutil.NewMockTaskRepository()
	quota := services.NewQuotaService(users, testutil.NewMockNoteRepository(), tasks, testutil.NewMockHabitRepository(), testutil.NewMockProjectRepository(), log)
	service := assistant.NewService(stub, assistant.NewContextCache(10), users, tasks, quota, log)
	h := NewChatHandler(service, log, validator.New())

	r := chi.NewRouter()
	r.Post("/api/ai/chat", h.Chat)
	r.Delete("/api/ai/chat", h.ClearContext)
	return r
}

func TestChatHandler_Chat(t *testing.T) {
	stub := &testutil.StubLLM{Replies: []string{"¡Hola Ana!"}}
	router := newChatRouter(t, stub, plan.Premium)

	body := bytes.NewBufferString(`{"message":"hola"}`)
	rec := serveAs(router, httptest.NewRequest(http.MethodPost, "/api/ai/chat", body), "u1")

	if rec.Code != http.StatusOK {
		t.Fatalf("Chat status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	var result assistant.ChatResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode chat result: %v", err)
	}
	if result.Response != "¡Hola Ana!" {
		t.Errorf("response = %q", result.Response)
	}
}

func TestChatHandler_ModelFailureIsStill200(t *testing.T) {
	stub := &testutil.StubLLM{Err: errors.New("upstream down")}
	router := newChatRouter(t, stub, plan.Premium)

	body := bytes.NewBufferString(`{"message":"tengo que comprar leche"}`)
	rec := serveAs(router, httptest.NewRequest(http.MethodPost, "/api/ai/chat", body), "u1")

	if rec.Code != http.StatusOK {
		t.Fatalf("Chat status with model down = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	var result assistant.ChatResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode chat result: %v", err)
	}
	if result.Response == "" {
		t.Error("degraded reply is empty")
	}
	if len(result.Actions) != 0 {
		t.Errorf("degraded reply carries actions: %v", result.Actions)
	}
}

func TestChatHandler_QuotaExhausted(t *testing.T) {
	stub := &testutil.StubLLM{Replies: []string{"hola"}}
	router := newChatRouter(t, stub, plan.Free)

	// Free plan has a small daily chat budget; spend it
	budget := plan.ForPlan(plan.Free).ChatUploadsPerDay
	for i := 0; i < budget; i++ {
		body := bytes.NewBufferString(`{"message":"hola"}`)
		rec := serveAs(router, httptest.NewRequest(http.MethodPost, "/api/ai/chat", body), "u1")
		if rec.Code != http.StatusOK {
			t.Fatalf("Chat #%d status = %d, want 200", i+1, rec.Code)
		}
	}

	body := bytes.NewBufferString(`{"message":"hola otra vez"}`)
	rec := serveAs(router, httptest.NewRequest(http.MethodPost, "/api/ai/chat", body), "u1")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("Chat past budget status = %d, want 403\nbody: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "QUOTA_EXCEEDED" {
		t.Errorf("error envelope = %s", rec.Body.String())
	}
}

func TestChatHandler_MissingMessage(t *testing.T) {
	router := newChatRouter(t, &testutil.StubLLM{}, plan.Premium)

	rec := serveAs(router, httptest.NewRequest(http.MethodPost, "/api/ai/chat", bytes.NewBufferString(`{}`)), "u1")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Chat without message status = %d, want 400", rec.Code)
	}
}

func TestChatHandler_ClearContext(t *testing.T) {
	router := newChatRouter(t, &testutil.StubLLM{Replies: []string{"hola"}}, plan.Premium)

	rec := serveAs(router, httptest.NewRequest(http.MethodDelete, "/api/ai/chat", nil), "u1")
	if rec.Code != http.StatusOK {
		t.Errorf("ClearContext status = %d, want 200", rec.Code)
	}
}
