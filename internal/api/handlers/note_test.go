package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/api/middleware"
	"github.com/aurybot/aury-backend/internal/domain/note"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
	"github.com/aurybot/aury-backend/internal/services"
	"github.com/aurybot/aury-backend/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// serveAs routes the request through r with userID injected, the way
// the auth middleware would
func serveAs(r http.Handler, req *http.Request, userID string) *httptest.ResponseRecorder {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid response envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

func newNoteRouter(t *testing.T) (chi.Router, *testutil.MockNoteRepository) {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	users := testutil.NewMockUserRepository()
	for _, id := range []string{"u1", "u2"} {
		if err := users.Create(context.Background(), &user.User{
			ID:    id,
			Email: id + "@example.com",
			Plan:  plan.Free,
		}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	notes := testutil.NewMockNoteRepository()
	quota := services.NewQuotaService(users, notes, testutil.NewMockTaskRepository(), testutil.NewMockHabitRepository(), testutil.NewMockProjectRepository(), log)
	service := services.NewNoteService(notes, quota, &testutil.StubLLM{}, log)
	h := NewNoteHandler(service, log, validator.New())

	r := chi.NewRouter()
	r.Get("/api/notes", h.List)
	r.Post("/api/notes", h.Create)
	r.Get("/api/notes/{id}", h.Get)
	r.Put("/api/notes/{id}", h.Update)
	r.Delete("/api/notes/{id}", h.Delete)
	return r, notes
}

func TestNoteHandler_Create(t *testing.T) {
	router, notes := newNoteRouter(t)

	body := bytes.NewBufferString(`{"title":"Lista del mercado","content":"leche, pan","category":"personal"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/notes", body)
	rec := serveAs(router, req, "u1")

	if rec.Code != http.StatusCreated {
		t.Fatalf("Create status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("Create envelope not successful: %s", rec.Body.String())
	}

	var created note.Note
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created note: %v", err)
	}
	if created.Title != "Lista del mercado" {
		t.Errorf("created title = %q", created.Title)
	}
	if created.UserID != "u1" {
		t.Errorf("created note owner = %q, want u1", created.UserID)
	}
	if len(notes.Notes) != 1 {
		t.Errorf("persisted notes = %d, want 1", len(notes.Notes))
	}
}

func TestNoteHandler_Create_Validation(t *testing.T) {
	router, _ := newNoteRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewBufferString(`{"content":"sin título"}`))
	rec := serveAs(router, req, "u1")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Create without title status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error envelope = %s", rec.Body.String())
	}
}

func TestNoteHandler_Get_OwnerScoped(t *testing.T) {
	router, notes := newNoteRouter(t)
	notes.Notes["n1"] = &note.Note{ID: "n1", UserID: "u1", Title: "privada"}

	// Owner sees it
	rec := serveAs(router, httptest.NewRequest(http.MethodGet, "/api/notes/n1", nil), "u1")
	if rec.Code != http.StatusOK {
		t.Errorf("owner Get status = %d, want 200", rec.Code)
	}

	// Anyone else gets a 404, not a 403, to avoid leaking existence
	rec = serveAs(router, httptest.NewRequest(http.MethodGet, "/api/notes/n1", nil), "u2")
	if rec.Code != http.StatusNotFound {
		t.Errorf("non-owner Get status = %d, want 404", rec.Code)
	}
}

func TestNoteHandler_List_Filters(t *testing.T) {
	router, notes := newNoteRouter(t)
	notes.Notes["n1"] = &note.Note{ID: "n1", UserID: "u1", Title: "mercado", Category: "personal"}
	notes.Notes["n2"] = &note.Note{ID: "n2", UserID: "u1", Title: "informe", Category: "trabajo"}
	notes.Notes["n3"] = &note.Note{ID: "n3", UserID: "u2", Title: "ajena", Category: "personal"}

	rec := serveAs(router, httptest.NewRequest(http.MethodGet, "/api/notes?category=personal", nil), "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("List status = %d, want 200", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	var page struct {
		Data       []note.Note `json:"data"`
		TotalItems int64       `json:"total_items"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.TotalItems != 1 || len(page.Data) != 1 {
		t.Fatalf("List returned %d notes (total %d), want 1", len(page.Data), page.TotalItems)
	}
	if page.Data[0].ID != "n1" {
		t.Errorf("List returned %q, want n1", page.Data[0].ID)
	}
}

func TestNoteHandler_Update_Partial(t *testing.T) {
	router, notes := newNoteRouter(t)
	notes.Notes["n1"] = &note.Note{ID: "n1", UserID: "u1", Title: "borrador", Content: "texto", Category: "personal"}

	body := bytes.NewBufferString(`{"title":"final"}`)
	rec := serveAs(router, httptest.NewRequest(http.MethodPut, "/api/notes/n1", body), "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Update status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	n := notes.Notes["n1"]
	if n.Title != "final" {
		t.Errorf("title = %q, want final", n.Title)
	}
	if n.Content != "texto" || n.Category != "personal" {
		t.Errorf("untouched fields changed: %+v", n)
	}
}

func TestNoteHandler_Delete(t *testing.T) {
	router, notes := newNoteRouter(t)
	notes.Notes["n1"] = &note.Note{ID: "n1", UserID: "u1", Title: "adiós"}

	rec := serveAs(router, httptest.NewRequest(http.MethodDelete, "/api/notes/n1", nil), "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Delete status = %d, want 200", rec.Code)
	}
	if len(notes.Notes) != 0 {
		t.Errorf("note not deleted")
	}

	rec = serveAs(router, httptest.NewRequest(http.MethodDelete, "/api/notes/n1", nil), "u1")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second Delete status = %d, want 404", rec.Code)
	}
}
