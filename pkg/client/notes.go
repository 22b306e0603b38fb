package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// NoteService handles note API calls
type NoteService struct {
	client *Client
}

// CreateNoteRequest represents a request to create a note
type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// UpdateNoteRequest represents a partial note update
type UpdateNoteRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Category *string   `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// NoteListOptions contains options for listing notes
type NoteListOptions struct {
	Page     int
	PageSize int
	Category string
	Search   string
}

// List retrieves a page of notes
func (s *NoteService) List(ctx context.Context, opts *NoteListOptions) (*Page[Note], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Category != "" {
			query.Set("category", opts.Category)
		}
		if opts.Search != "" {
			query.Set("search", opts.Search)
		}
	}

	path := "/api/notes"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Note]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a note by ID
func (s *NoteService) Get(ctx context.Context, id string) (*Note, error) {
	var n Note
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/notes/%s", id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create creates a note
func (s *NoteService) Create(ctx context.Context, req CreateNoteRequest) (*Note, error) {
	var n Note
	if err := s.client.doRequest(ctx, "POST", "/api/notes", req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update applies a partial update to a note
func (s *NoteService) Update(ctx context.Context, id string, req UpdateNoteRequest) (*Note, error) {
	var n Note
	if err := s.client.doRequest(ctx, "PUT", fmt.Sprintf("/api/notes/%s", id), req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete deletes a note
func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/notes/%s", id), nil, nil)
}

// Analyze summarizes a note with the assistant
func (s *NoteService) Analyze(ctx context.Context, id string) (*Note, error) {
	var n Note
	if err := s.client.doRequest(ctx, "POST", fmt.Sprintf("/api/notes/%s/analyze", id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
