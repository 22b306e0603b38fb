package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// HabitService handles habit API calls
type HabitService struct {
	client *Client
}

// CreateHabitRequest represents a request to create a habit
type CreateHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
}

// HabitListOptions contains options for listing habits
type HabitListOptions struct {
	Page     int
	PageSize int
}

// List retrieves a page of habits
func (s *HabitService) List(ctx context.Context, opts *HabitListOptions) (*Page[Habit], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
	}

	path := "/api/habits"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Habit]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create creates a habit
func (s *HabitService) Create(ctx context.Context, req CreateHabitRequest) (*Habit, error) {
	var h Habit
	if err := s.client.doRequest(ctx, "POST", "/api/habits", req, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Complete marks a habit done for today
func (s *HabitService) Complete(ctx context.Context, id string) (*Habit, error) {
	var h Habit
	if err := s.client.doRequest(ctx, "POST", fmt.Sprintf("/api/habits/%s/complete", id), nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Delete deletes a habit
func (s *HabitService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/habits/%s", id), nil, nil)
}
