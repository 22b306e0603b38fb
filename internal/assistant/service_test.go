package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/task"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/testutil"
)

type fakeQuota struct {
	err   error
	calls int
}

func (f *fakeQuota) Reserve(ctx context.Context, userID string, counter plan.Counter) error {
	f.calls++
	return f.err
}

func newChatFixture(t *testing.T, llmClient *testutil.StubLLM, quota Quota) (*Service, *testutil.MockTaskRepository) {
	t.Helper()

	users := testutil.NewMockUserRepository()
	if err := users.Create(context.Background(), &user.User{
		ID:    "u1",
		Email: "ana@example.com",
		Name:  "Ana",
		Plan:  plan.Free,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tasks := testutil.NewMockTaskRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	svc := NewService(llmClient, NewContextCache(10), users, tasks, quota, log)
	return svc, tasks
}

func TestService_Chat_AutoCreatesTask(t *testing.T) {
	// First completion answers the chat, second one serves the extractor
	stub := &testutil.StubLLM{Replies: []string{
		"Claro, lo apunto.",
		`[{"title":"comprar leche","description":"mañana temprano"}]`,
	}}
	svc, tasks := newChatFixture(t, stub, &fakeQuota{})

	result, err := svc.Chat(context.Background(), "u1", "tengo que comprar leche mañana")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if result.Response != "Claro, lo apunto." {
		t.Errorf("Chat() response = %q", result.Response)
	}
	if len(result.DetectedCategories) != 1 || result.DetectedCategories[0] != CategoryTask {
		t.Errorf("Chat() categories = %v, want [task]", result.DetectedCategories)
	}
	if len(result.Actions) != 1 {
		t.Fatalf("Chat() actions = %v, want one task_created", result.Actions)
	}
	action := result.Actions[0]
	if action.Type != ActionTaskCreated {
		t.Errorf("action type = %q, want %q", action.Type, ActionTaskCreated)
	}
	if action.Task == nil || action.Task.Title != "comprar leche" {
		t.Fatalf("action task = %+v, want title %q", action.Task, "comprar leche")
	}
	if !action.Task.AutoScheduled {
		t.Error("auto-created task should be marked auto_scheduled")
	}
	if action.Task.Category != task.CategoryAssistant {
		t.Errorf("task category = %q, want %q", action.Task.Category, task.CategoryAssistant)
	}

	if len(tasks.Tasks) != 1 {
		t.Errorf("persisted tasks = %d, want 1", len(tasks.Tasks))
	}
	if len(result.Suggestions) == 0 {
		t.Error("Chat() carried no canned suggestions")
	}
}

func TestService_Chat_ModelFailureDegrades(t *testing.T) {
	stub := &testutil.StubLLM{Err: errors.New("upstream timeout")}
	svc, tasks := newChatFixture(t, stub, &fakeQuota{})

	result, err := svc.Chat(context.Background(), "u1", "tengo que comprar leche")
	if err != nil {
		t.Fatalf("Chat() must not fail when the model is down, got %v", err)
	}

	if result.Response != apology {
		t.Errorf("Chat() response = %q, want canned apology", result.Response)
	}
	if len(result.Actions) != 0 {
		t.Errorf("Chat() actions = %v, want none", result.Actions)
	}
	if len(result.DetectedCategories) != 0 {
		t.Errorf("Chat() categories = %v, want none", result.DetectedCategories)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("Chat() suggestions = %v, want none on a degraded reply", result.Suggestions)
	}
	if len(tasks.Tasks) != 0 {
		t.Errorf("no tasks should be created on degraded replies, got %d", len(tasks.Tasks))
	}
}

func TestService_Chat_QuotaDenied(t *testing.T) {
	quotaErr := errors.New("quota exceeded")
	stub := &testutil.StubLLM{Replies: []string{"hola"}}
	svc, _ := newChatFixture(t, stub, &fakeQuota{err: quotaErr})

	_, err := svc.Chat(context.Background(), "u1", "hola")
	if !errors.Is(err, quotaErr) {
		t.Fatalf("Chat() error = %v, want quota error", err)
	}
	if stub.Calls != 0 {
		t.Errorf("model called %d times despite quota denial", stub.Calls)
	}
}

func TestService_Chat_SuggestionActions(t *testing.T) {
	stub := &testutil.StubLLM{Replies: []string{"Enciendo la luz."}}
	svc, _ := newChatFixture(t, stub, &fakeQuota{})

	result, err := svc.Chat(context.Background(), "u1", "enciende la luz del salón")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if len(result.Actions) != 1 || result.Actions[0].Type != ActionSuggestion {
		t.Fatalf("Chat() actions = %v, want one suggestion", result.Actions)
	}
	if result.Actions[0].Category != CategoryHome {
		t.Errorf("suggestion category = %v, want home", result.Actions[0].Category)
	}
}

func TestService_ClearContext(t *testing.T) {
	stub := &testutil.StubLLM{Replies: []string{"hola"}}
	svc, _ := newChatFixture(t, stub, &fakeQuota{})

	if _, err := svc.Chat(context.Background(), "u1", "hola aury"); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if svc.cache.Len("u1") == 0 {
		t.Fatal("expected cached turns after a chat")
	}

	svc.ClearContext("u1")
	if svc.cache.Len("u1") != 0 {
		t.Error("ClearContext() left cached turns behind")
	}
}
