package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/device"
	"github.com/aurybot/aury-backend/internal/domain/habit"
	"github.com/aurybot/aury-backend/internal/domain/note"
	"github.com/aurybot/aury-backend/internal/domain/payment"
	"github.com/aurybot/aury-backend/internal/domain/project"
	"github.com/aurybot/aury-backend/internal/domain/task"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/llm"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[string]*user.User
	EmailIndex  map[string]*user.User
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[string]*user.User),
		EmailIndex: make(map[string]*user.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if u, ok := m.Users[id]; ok {
		delete(m.EmailIndex, u.Email)
		delete(m.Users, id)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var result []*user.User
	for _, u := range m.Users {
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

func (m *MockUserRepository) SaveDailyUsage(ctx context.Context, userID string, usage user.DailyUsage) error {
	u, ok := m.Users[userID]
	if !ok {
		return errors.NotFound("User")
	}
	u.DailyUsage = usage
	return nil
}

func (m *MockUserRepository) ReserveDailyUsage(ctx context.Context, userID string, counter user.UsageCounter, limit int, today string) (user.DailyUsage, error) {
	u, ok := m.Users[userID]
	if !ok {
		return user.DailyUsage{}, errors.NotFound("User")
	}

	if u.DailyUsage.Date != today {
		u.DailyUsage = user.DailyUsage{Date: today}
	}

	switch counter {
	case user.UsageAIAnalysis:
		if limit >= 0 && u.DailyUsage.AIAnalysisCount >= limit {
			return u.DailyUsage, user.ErrDailyLimitReached
		}
		u.DailyUsage.AIAnalysisCount++
	case user.UsageChatUploads:
		if limit >= 0 && u.DailyUsage.ChatUploadsCount >= limit {
			return u.DailyUsage, user.ErrDailyLimitReached
		}
		u.DailyUsage.ChatUploadsCount++
	default:
		return u.DailyUsage, fmt.Errorf("unknown counter %q", counter)
	}

	return u.DailyUsage, nil
}

func (m *MockUserRepository) ListPremiumExpired(ctx context.Context, before string) ([]*user.User, error) {
	var result []*user.User
	for _, u := range m.Users {
		if u.Plan != "premium" || u.PremiumExpiresAt == nil {
			continue
		}
		if u.PremiumExpiresAt.Format(time.RFC3339) < before {
			result = append(result, u)
		}
	}
	return result, nil
}

// MockNoteRepository is a mock implementation of note.Repository
type MockNoteRepository struct {
	Notes       map[string]*note.Note
	CreateError error
}

func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{Notes: make(map[string]*note.Note)}
}

func (m *MockNoteRepository) Create(ctx context.Context, n *note.Note) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	m.Notes[n.ID] = n
	return nil
}

func (m *MockNoteRepository) GetByID(ctx context.Context, userID, id string) (*note.Note, error) {
	n, ok := m.Notes[id]
	if !ok || n.UserID != userID {
		return nil, errors.NotFound("Note")
	}
	return n, nil
}

func (m *MockNoteRepository) Update(ctx context.Context, n *note.Note) error {
	if _, ok := m.Notes[n.ID]; !ok {
		return errors.NotFound("Note")
	}
	m.Notes[n.ID] = n
	return nil
}

func (m *MockNoteRepository) Delete(ctx context.Context, userID, id string) error {
	n, ok := m.Notes[id]
	if !ok || n.UserID != userID {
		return errors.NotFound("Note")
	}
	delete(m.Notes, id)
	return nil
}

func (m *MockNoteRepository) List(ctx context.Context, userID string, filter note.Filter) ([]*note.Note, int64, error) {
	var result []*note.Note
	for _, n := range m.Notes {
		if n.UserID != userID {
			continue
		}
		if filter.Category != "" && n.Category != filter.Category {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(n.Title), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(n.Content), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockNoteRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.Notes {
		if n.UserID == userID {
			count++
		}
	}
	return count, nil
}

// MockTaskRepository is a mock implementation of task.Repository
type MockTaskRepository struct {
	Tasks       map[string]*task.Task
	CreateError error
}

func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{Tasks: make(map[string]*task.Task)}
}

func (m *MockTaskRepository) Create(ctx context.Context, t *task.Task) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m.Tasks[t.ID] = t
	return nil
}

func (m *MockTaskRepository) GetByID(ctx context.Context, userID, id string) (*task.Task, error) {
	t, ok := m.Tasks[id]
	if !ok || t.UserID != userID {
		return nil, errors.NotFound("Task")
	}
	return t, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	if _, ok := m.Tasks[t.ID]; !ok {
		return errors.NotFound("Task")
	}
	m.Tasks[t.ID] = t
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, userID, id string) error {
	t, ok := m.Tasks[id]
	if !ok || t.UserID != userID {
		return errors.NotFound("Task")
	}
	delete(m.Tasks, id)
	return nil
}

func (m *MockTaskRepository) List(ctx context.Context, userID string, filter task.Filter) ([]*task.Task, int64, error) {
	var result []*task.Task
	for _, t := range m.Tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockTaskRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, t := range m.Tasks {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockTaskRepository) CountByStatus(ctx context.Context, userID, status string) (int64, error) {
	var count int64
	for _, t := range m.Tasks {
		if t.UserID == userID && t.Status == status {
			count++
		}
	}
	return count, nil
}

// MockHabitRepository is a mock implementation of habit.Repository
type MockHabitRepository struct {
	Habits map[string]*habit.Habit
}

func NewMockHabitRepository() *MockHabitRepository {
	return &MockHabitRepository{Habits: make(map[string]*habit.Habit)}
}

func (m *MockHabitRepository) Create(ctx context.Context, h *habit.Habit) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	m.Habits[h.ID] = h
	return nil
}

func (m *MockHabitRepository) GetByID(ctx context.Context, userID, id string) (*habit.Habit, error) {
	h, ok := m.Habits[id]
	if !ok || h.UserID != userID {
		return nil, errors.NotFound("Habit")
	}
	return h, nil
}

func (m *MockHabitRepository) Update(ctx context.Context, h *habit.Habit) error {
	if _, ok := m.Habits[h.ID]; !ok {
		return errors.NotFound("Habit")
	}
	m.Habits[h.ID] = h
	return nil
}

func (m *MockHabitRepository) Delete(ctx context.Context, userID, id string) error {
	h, ok := m.Habits[id]
	if !ok || h.UserID != userID {
		return errors.NotFound("Habit")
	}
	delete(m.Habits, id)
	return nil
}

func (m *MockHabitRepository) List(ctx context.Context, userID string, limit, offset int) ([]*habit.Habit, int64, error) {
	var result []*habit.Habit
	for _, h := range m.Habits {
		if h.UserID == userID {
			result = append(result, h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockHabitRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, h := range m.Habits {
		if h.UserID == userID {
			count++
		}
	}
	return count, nil
}

// MockProjectRepository is a mock implementation of project.Repository
type MockProjectRepository struct {
	Projects map[string]*project.Project
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{Projects: make(map[string]*project.Project)}
}

func (m *MockProjectRepository) Create(ctx context.Context, p *project.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.Projects[p.ID] = p
	return nil
}

func (m *MockProjectRepository) GetByID(ctx context.Context, userID, id string) (*project.Project, error) {
	p, ok := m.Projects[id]
	if !ok || p.UserID != userID {
		return nil, errors.NotFound("Project")
	}
	return p, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, p *project.Project) error {
	if _, ok := m.Projects[p.ID]; !ok {
		return errors.NotFound("Project")
	}
	m.Projects[p.ID] = p
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, userID, id string) error {
	p, ok := m.Projects[id]
	if !ok || p.UserID != userID {
		return errors.NotFound("Project")
	}
	delete(m.Projects, id)
	return nil
}

func (m *MockProjectRepository) List(ctx context.Context, userID string, limit, offset int) ([]*project.Project, int64, error) {
	var result []*project.Project
	for _, p := range m.Projects {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockProjectRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, p := range m.Projects {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

// MockDeviceRepository is a mock implementation of device.Repository
type MockDeviceRepository struct {
	Devices map[string]*device.Device
}

func NewMockDeviceRepository() *MockDeviceRepository {
	return &MockDeviceRepository{Devices: make(map[string]*device.Device)}
}

func (m *MockDeviceRepository) Create(ctx context.Context, d *device.Device) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	m.Devices[d.ID] = d
	return nil
}

func (m *MockDeviceRepository) GetByID(ctx context.Context, userID, id string) (*device.Device, error) {
	d, ok := m.Devices[id]
	if !ok || d.UserID != userID {
		return nil, errors.NotFound("Device")
	}
	return d, nil
}

func (m *MockDeviceRepository) Update(ctx context.Context, d *device.Device) error {
	if _, ok := m.Devices[d.ID]; !ok {
		return errors.NotFound("Device")
	}
	m.Devices[d.ID] = d
	return nil
}

func (m *MockDeviceRepository) Delete(ctx context.Context, userID, id string) error {
	d, ok := m.Devices[id]
	if !ok || d.UserID != userID {
		return errors.NotFound("Device")
	}
	delete(m.Devices, id)
	return nil
}

func (m *MockDeviceRepository) List(ctx context.Context, userID string) ([]*device.Device, error) {
	var result []*device.Device
	for _, d := range m.Devices {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockDeviceRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, d := range m.Devices {
		if d.UserID == userID {
			count++
		}
	}
	return count, nil
}

// MockPaymentRepository is a mock implementation of payment.Repository
type MockPaymentRepository struct {
	Payments map[string]*payment.Payment
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{Payments: make(map[string]*payment.Payment)}
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.Payments[p.ID] = p
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*payment.Payment, error) {
	p, ok := m.Payments[id]
	if !ok {
		return nil, errors.NotFound("Payment")
	}
	return p, nil
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	if _, ok := m.Payments[p.ID]; !ok {
		return errors.NotFound("Payment")
	}
	m.Payments[p.ID] = p
	return nil
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID string) ([]*payment.Payment, error) {
	var result []*payment.Payment
	for _, p := range m.Payments {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockPaymentRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*payment.Payment, int64, error) {
	var result []*payment.Payment
	for _, p := range m.Payments {
		if p.Status == status {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

// StubLLM is a canned llm.Client for tests. Replies are returned in
// order; after they run out the last one repeats. A non-nil Err makes
// every call fail.
type StubLLM struct {
	Replies []string
	Err     error
	Calls   int
}

func (s *StubLLM) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	s.Calls++
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Replies) == 0 {
		return "ok", nil
	}
	i := s.Calls - 1
	if i >= len(s.Replies) {
		i = len(s.Replies) - 1
	}
	return s.Replies[i], nil
}
