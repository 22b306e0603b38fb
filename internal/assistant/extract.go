package assistant

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aurybot/aury-backend/internal/llm"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// TaskCandidate is one actionable item the model found in a message
type TaskCandidate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

const extractionPrompt = "Extrae tareas accionables de texto. Devuelve SOLO un array JSON " +
	"con objetos que tengan campos 'title' y 'description'. Si no hay tareas, devuelve un array vacío []."

// Extractor asks the model for task candidates in free text
type Extractor struct {
	llm llm.Client
	log *logger.Logger
}

// NewExtractor creates an extractor backed by the given model client
func NewExtractor(client llm.Client, log *logger.Logger) *Extractor {
	return &Extractor{llm: client, log: log}
}

// Extract returns the task candidates found in text. Extraction is
// best effort: model errors and malformed replies yield an empty list,
// never an error.
func (e *Extractor) Extract(ctx context.Context, text string) []TaskCandidate {
	reply, err := e.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: extractionPrompt},
		{Role: llm.RoleUser, Content: "Extrae las tareas accionables de este texto: " + text},
	})
	if err != nil {
		e.log.WithError(err).Warn("Task extraction failed")
		return nil
	}

	return parseTaskArray(reply)
}

// parseTaskArray pulls the bracketed JSON array out of a model reply.
// Models wrap output in prose or code fences often enough that strict
// parsing of the whole reply is useless.
func parseTaskArray(s string) []TaskCandidate {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end <= start {
		return nil
	}

	var out []TaskCandidate
	if err := json.Unmarshal([]byte(s[start:end+1]), &out); err != nil {
		return nil
	}
	return out
}
