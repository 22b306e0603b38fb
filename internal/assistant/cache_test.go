package assistant

import (
	"fmt"
	"testing"

	"github.com/aurybot/aury-backend/internal/llm"
)

func TestContextCache_Eviction(t *testing.T) {
	cache := NewContextCache(3)

	for i := 0; i < 5; i++ {
		cache.Append("u1", llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	history := cache.History("u1")
	if len(history) != 3 {
		t.Fatalf("History() length = %d, want 3", len(history))
	}
	// Oldest two were evicted
	for i, want := range []string{"m2", "m3", "m4"} {
		if history[i].Content != want {
			t.Errorf("History()[%d] = %q, want %q", i, history[i].Content, want)
		}
	}
}

func TestContextCache_PerUserWindows(t *testing.T) {
	cache := NewContextCache(5)

	cache.Append("u1", llm.Message{Role: llm.RoleUser, Content: "hola"})
	cache.Append("u2", llm.Message{Role: llm.RoleUser, Content: "buenas"})

	if got := cache.Len("u1"); got != 1 {
		t.Errorf("Len(u1) = %d, want 1", got)
	}
	if got := cache.Len("u2"); got != 1 {
		t.Errorf("Len(u2) = %d, want 1", got)
	}

	cache.Clear("u1")
	if got := cache.Len("u1"); got != 0 {
		t.Errorf("Len(u1) after Clear = %d, want 0", got)
	}
	if got := cache.Len("u2"); got != 1 {
		t.Errorf("Len(u2) after clearing u1 = %d, want 1", got)
	}
}

func TestContextCache_HistoryIsACopy(t *testing.T) {
	cache := NewContextCache(5)
	cache.Append("u1", llm.Message{Role: llm.RoleUser, Content: "original"})

	history := cache.History("u1")
	history[0].Content = "mutated"

	if got := cache.History("u1")[0].Content; got != "original" {
		t.Errorf("cached turn = %q, want %q", got, "original")
	}
}

func TestNewContextCache_MinimumWindow(t *testing.T) {
	cache := NewContextCache(0)
	cache.Append("u1", llm.Message{Role: llm.RoleUser, Content: "a"})
	cache.Append("u1", llm.Message{Role: llm.RoleUser, Content: "b"})

	if got := cache.Len("u1"); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}
