package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// TaskService handles task API calls
type TaskService struct {
	client *Client
}

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Category    string `json:"category,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Category    *string `json:"category,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// TaskListOptions contains options for listing tasks
type TaskListOptions struct {
	Page     int
	PageSize int
	Status   string
	Category string
	Priority string
}

// List retrieves a page of tasks
func (s *TaskService) List(ctx context.Context, opts *TaskListOptions) (*Page[Task], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
		if opts.Category != "" {
			query.Set("category", opts.Category)
		}
		if opts.Priority != "" {
			query.Set("priority", opts.Priority)
		}
	}

	path := "/api/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Task]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a task by ID
func (s *TaskService) Get(ctx context.Context, id string) (*Task, error) {
	var t Task
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/tasks/%s", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create creates a task
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var t Task
	if err := s.client.doRequest(ctx, "POST", "/api/tasks", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update applies a partial update to a task
func (s *TaskService) Update(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	var t Task
	if err := s.client.doRequest(ctx, "PUT", fmt.Sprintf("/api/tasks/%s", id), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Complete marks a task completed
func (s *TaskService) Complete(ctx context.Context, id string) (*Task, error) {
	status := "completed"
	return s.Update(ctx, id, UpdateTaskRequest{Status: &status})
}

// Delete deletes a task
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/tasks/%s", id), nil, nil)
}
