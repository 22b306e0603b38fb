package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/project"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// ProjectService implements project.Service
type ProjectService struct {
	repo        project.Repository
	quota       *QuotaService
	uploadsDir  string
	maxFileSize int64
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo project.Repository, quota *QuotaService, uploadsDir string, maxFileSize int64, log *logger.Logger) project.Service {
	return &ProjectService{
		repo:        repo,
		quota:       quota,
		uploadsDir:  uploadsDir,
		maxFileSize: maxFileSize,
		logger:      log,
	}
}

// Create creates a project for a user, subject to plan limits
func (s *ProjectService) Create(ctx context.Context, userID string, p *project.Project) (*project.Project, error) {
	if err := s.quota.EnsureCanCreate(ctx, userID, plan.CounterProjects); err != nil {
		return nil, err
	}

	p.UserID = userID
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create project")
		return nil, err
	}

	return p, nil
}

// GetByID retrieves a project owned by the given user
func (s *ProjectService) GetByID(ctx context.Context, userID, id string) (*project.Project, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List retrieves projects of a user
func (s *ProjectService) List(ctx context.Context, userID string, limit, offset int) ([]*project.Project, int64, error) {
	return s.repo.List(ctx, userID, limit, offset)
}

// Update applies a partial update to a project
func (s *ProjectService) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*project.Project, error) {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["name"].(string); ok {
		p.Name = v
	}
	if v, ok := updates["description"].(string); ok {
		p.Description = v
	}
	if v, ok := updates["status"].(string); ok {
		p.Status = v
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete deletes a project owned by the given user, removing its
// stored files from disk best effort
func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	for _, f := range p.Files {
		if err := os.Remove(filepath.Join(s.uploadsDir, f.StoredName)); err != nil && !os.IsNotExist(err) {
			s.logger.WithFields(map[string]interface{}{
				"project_id": id,
				"file":       f.StoredName,
			}).Warn("Failed to remove project file")
		}
	}

	return nil
}

// AttachFile stores an uploaded file under an opaque name and records
// it on the project
func (s *ProjectService) AttachFile(ctx context.Context, userID, id string, up project.Upload) (*project.File, error) {
	if s.maxFileSize > 0 && up.Size > s.maxFileSize {
		return nil, errors.BadRequest("File is too large")
	}

	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return nil, errors.Internal("Failed to prepare uploads directory", err)
	}

	storedName := uuid.New().String() + filepath.Ext(up.Filename)
	dst, err := os.Create(filepath.Join(s.uploadsDir, storedName))
	if err != nil {
		return nil, errors.Internal("Failed to store file", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, up.Reader)
	if err != nil {
		os.Remove(dst.Name())
		return nil, errors.Internal("Failed to store file", err)
	}

	f := project.File{
		ID:           uuid.New().String(),
		StoredName:   storedName,
		OriginalName: up.Filename,
		Size:         written,
		ContentType:  up.ContentType,
		UploadedAt:   time.Now().UTC(),
	}
	p.Files = append(p.Files, f)

	if err := s.repo.Update(ctx, p); err != nil {
		os.Remove(dst.Name())
		return nil, err
	}

	return &f, nil
}

// OpenFile opens a stored project file for reading
func (s *ProjectService) OpenFile(ctx context.Context, userID, id, fileID string) (io.ReadCloser, *project.File, error) {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	for i := range p.Files {
		if p.Files[i].ID != fileID {
			continue
		}
		rc, err := os.Open(filepath.Join(s.uploadsDir, p.Files[i].StoredName))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, errors.NotFound("File")
			}
			return nil, nil, errors.Internal("Failed to open file", err)
		}
		return rc, &p.Files[i], nil
	}

	return nil, nil, errors.NotFound("File")
}

// RemoveFile removes a stored file from a project
func (s *ProjectService) RemoveFile(ctx context.Context, userID, id, fileID string) error {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	idx := -1
	for i, f := range p.Files {
		if f.ID == fileID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errors.NotFound("File")
	}

	stored := p.Files[idx].StoredName
	p.Files = append(p.Files[:idx], p.Files[idx+1:]...)

	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.uploadsDir, stored)); err != nil && !os.IsNotExist(err) {
		s.logger.WithFields(map[string]interface{}{
			"project_id": id,
			"file":       stored,
		}).Warn("Failed to remove stored file")
	}

	return nil
}
