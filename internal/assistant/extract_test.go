package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/aurybot/aury-backend/internal/llm"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	return s.reply, s.err
}

func TestParseTaskArray(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
	}{
		{
			name:  "plain array",
			reply: `[{"title":"comprar leche","description":"antes del viernes"}]`,
			want:  1,
		},
		{
			name:  "array wrapped in prose",
			reply: "Aquí están las tareas: [{\"title\":\"llamar al banco\",\"description\":\"\"}] ¡Listo!",
			want:  1,
		},
		{
			name: "array in code fence",
			reply: "```json\n[{\"title\":\"enviar informe\",\"description\":\"\"}," +
				"{\"title\":\"revisar correo\",\"description\":\"\"}]\n```",
			want: 2,
		},
		{
			name:  "empty array",
			reply: "[]",
			want:  0,
		},
		{
			name:  "no array at all",
			reply: "No encontré tareas en el texto.",
			want:  0,
		},
		{
			name:  "malformed json",
			reply: "[{title: comprar leche}]",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTaskArray(tt.reply)
			if len(got) != tt.want {
				t.Errorf("parseTaskArray() returned %d candidates, want %d", len(got), tt.want)
			}
		})
	}
}

func TestExtractor_ModelFailureIsEmpty(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	ex := NewExtractor(&stubLLM{err: errors.New("model down")}, log)

	got := ex.Extract(context.Background(), "tengo que comprar leche")
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty on model failure", got)
	}
}

func TestExtractor_Extract(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	ex := NewExtractor(&stubLLM{reply: `[{"title":"comprar leche","description":"mañana"}]`}, log)

	got := ex.Extract(context.Background(), "tengo que comprar leche mañana")
	if len(got) != 1 {
		t.Fatalf("Extract() returned %d candidates, want 1", len(got))
	}
	if got[0].Title != "comprar leche" {
		t.Errorf("Extract() title = %q, want %q", got[0].Title, "comprar leche")
	}
}
