package services

import (
	"context"
	"strings"

	"github.com/aurybot/aury-backend/internal/assistant"
	"github.com/aurybot/aury-backend/internal/domain/note"
	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/llm"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// NoteService implements note.Service
type NoteService struct {
	repo      note.Repository
	quota     *QuotaService
	llm       llm.Client
	extractor *assistant.Extractor
	logger    *logger.Logger
}

// NewNoteService creates a new note service
func NewNoteService(repo note.Repository, quota *QuotaService, client llm.Client, log *logger.Logger) note.Service {
	return &NoteService{
		repo:      repo,
		quota:     quota,
		llm:       client,
		extractor: assistant.NewExtractor(client, log),
		logger:    log,
	}
}

// Create creates a note for a user, subject to plan limits
func (s *NoteService) Create(ctx context.Context, userID string, n *note.Note) (*note.Note, error) {
	if err := s.quota.EnsureCanCreate(ctx, userID, plan.CounterNotes); err != nil {
		return nil, err
	}

	n.UserID = userID
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create note")
		return nil, err
	}

	return n, nil
}

// GetByID retrieves a note owned by the given user
func (s *NoteService) GetByID(ctx context.Context, userID, id string) (*note.Note, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List retrieves notes of a user matching the filter
func (s *NoteService) List(ctx context.Context, userID string, filter note.Filter) ([]*note.Note, int64, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update applies a partial update to a note
func (s *NoteService) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*note.Note, error) {
	n, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["title"].(string); ok {
		n.Title = v
	}
	if v, ok := updates["content"].(string); ok {
		n.Content = v
	}
	if v, ok := updates["category"].(string); ok {
		n.Category = v
	}
	if v, ok := updates["tags"].([]interface{}); ok {
		tags := make([]string, 0, len(v))
		for _, t := range v {
			if str, ok := t.(string); ok {
				tags = append(tags, str)
			}
		}
		n.Tags = tags
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete deletes a note owned by the given user
func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// Analyze summarizes a note and extracts action items from it,
// consuming one daily analysis credit
func (s *NoteService) Analyze(ctx context.Context, userID, id string) (*note.Note, error) {
	if err := s.quota.Reserve(ctx, userID, plan.CounterAIAnalysis); err != nil {
		return nil, err
	}

	n, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: "Resume el siguiente texto en un párrafo corto, en español."},
		{Role: llm.RoleUser, Content: n.Title + "\n\n" + n.Content},
	})
	if err != nil {
		s.logger.ErrorWithErr(err, "Note analysis failed")
		return nil, errors.ServiceUnavailable("AI analysis is temporarily unavailable")
	}

	candidates := s.extractor.Extract(ctx, n.Content)
	extracted := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.Title != "" {
			extracted = append(extracted, c.Title)
		}
	}

	n.AISummary = strings.TrimSpace(summary)
	n.ExtractedTasks = extracted
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}
