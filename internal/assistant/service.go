package assistant

import (
	"context"
	"fmt"

	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/task"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/llm"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/metrics"
)

// Quota reserves metered usage before the assistant does work
type Quota interface {
	Reserve(ctx context.Context, userID string, counter plan.Counter) error
}

// Action types
const (
	ActionTaskCreated = "task_created"
	ActionSuggestion  = "suggestion"
)

// Action describes something the assistant did, or a follow-up it is
// ready to handle
type Action struct {
	Type     string     `json:"type"`
	Category Category   `json:"category,omitempty"`
	Task     *task.Task `json:"task,omitempty"`
}

// ChatResult is what one chat turn produced
type ChatResult struct {
	Response           string     `json:"response"`
	Suggestions        []string   `json:"suggestions"`
	Actions            []Action   `json:"actions"`
	DetectedCategories []Category `json:"detected_categories"`
	SessionID          string     `json:"session_id"`
}

// suggestions are the canned follow-ups offered with every successful
// reply
var suggestions = []string{
	"🎯 ¿Optimizo tu agenda para máxima productividad?",
	"⚡ ¿Creo automatizaciones personalizadas?",
	"🏠 ¿Configuro tu hogar inteligente?",
	"📊 ¿Analizo tus patrones de trabajo?",
	"🤝 ¿Integro más herramientas a tu flujo?",
	"💡 ¿Sugiero mejoras basadas en tus hábitos?",
}

// apology is the degraded reply when the model is unreachable. The
// chat path never surfaces a model failure as an HTTP error.
const apology = "Lo siento, tuve un problema procesando tu mensaje. ¿Puedes intentarlo de nuevo en un momento?"

// Service runs a chat turn end to end: quota, context window, model
// call, keyword detection and automatic task creation.
type Service struct {
	llm       llm.Client
	extractor *Extractor
	cache     *ContextCache
	users     user.Repository
	tasks     task.Repository
	quota     Quota
	log       *logger.Logger
}

// NewService creates the chat service
func NewService(client llm.Client, cache *ContextCache, users user.Repository, tasks task.Repository, quota Quota, log *logger.Logger) *Service {
	return &Service{
		llm:       client,
		extractor: NewExtractor(client, log),
		cache:     cache,
		users:     users,
		tasks:     tasks,
		quota:     quota,
		log:       log,
	}
}

// Chat handles one user message and returns the assistant's reply plus
// any actions taken
func (s *Service) Chat(ctx context.Context, userID, message string) (*ChatResult, error) {
	if err := s.quota.Reserve(ctx, userID, plan.CounterChatUploads); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cache.Append(userID, llm.Message{Role: llm.RoleUser, Content: message})

	msgs := make([]llm.Message, 0, s.cache.Len(userID)+1)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: systemPrompt(u)})
	msgs = append(msgs, s.cache.History(userID)...)

	reply, err := s.llm.Complete(ctx, msgs)
	if err != nil {
		s.log.WithFields(map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Chat completion failed, degrading to canned reply")
		return &ChatResult{
			Response:           apology,
			Suggestions:        []string{},
			Actions:            []Action{},
			DetectedCategories: []Category{},
			SessionID:          sessionID(userID),
		}, nil
	}

	categories := Detect(message)
	actions := make([]Action, 0, len(categories))
	for _, c := range categories {
		metrics.RecordChatCategory(string(c))

		if c != CategoryTask {
			actions = append(actions, Action{Type: ActionSuggestion, Category: c})
			continue
		}

		for _, cand := range s.extractor.Extract(ctx, message) {
			if cand.Title == "" {
				continue
			}
			t := &task.Task{
				UserID:        userID,
				Title:         cand.Title,
				Description:   cand.Description,
				Status:        task.StatusPending,
				Priority:      task.PriorityMedium,
				Category:      task.CategoryAssistant,
				AutoScheduled: true,
			}
			if err := s.tasks.Create(ctx, t); err != nil {
				s.log.WithError(err).Error("Auto-created task not persisted")
				continue
			}
			metrics.RecordTaskExtracted()
			actions = append(actions, Action{Type: ActionTaskCreated, Category: c, Task: t})
		}
	}

	s.cache.Append(userID, llm.Message{Role: llm.RoleAssistant, Content: reply})

	if categories == nil {
		categories = []Category{}
	}
	return &ChatResult{
		Response:           reply,
		Suggestions:        suggestions,
		Actions:            actions,
		DetectedCategories: categories,
		SessionID:          sessionID(userID),
	}, nil
}

// ClearContext drops the user's cached conversation window
func (s *Service) ClearContext(userID string) {
	s.cache.Clear(userID)
}

func systemPrompt(u *user.User) string {
	name := "Aury"
	tone := "amable"
	if v, ok := u.AssistantConfig["name"].(string); ok && v != "" {
		name = v
	}
	if v, ok := u.AssistantConfig["tone"].(string); ok && v != "" {
		tone = v
	}
	return fmt.Sprintf(
		"Eres %s, el asistente personal de %s. Tu tono es %s. "+
			"Ayudas a organizar tareas, calendario, hábitos, hogar inteligente e integraciones. "+
			"Responde siempre en español, de forma natural y útil.",
		name, u.Name, tone)
}

func sessionID(userID string) string {
	return "aury_" + userID
}
