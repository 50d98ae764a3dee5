// AngelaMos | 2026
// service.go

package document

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

const DefaultType = "general"

type ObjectRemover interface {
	Remove(ctx context.Context, key string) error
}

type Service struct {
	repo    Repository
	objects ObjectRemover
	logger  *slog.Logger
}

// NewService accepts a nil remover when object storage is disabled.
func NewService(repo Repository, objects ObjectRemover, logger *slog.Logger) *Service {
	return &Service{repo: repo, objects: objects, logger: logger}
}

func (s *Service) Create(ctx context.Context, uploaderID string, req CreateDocumentRequest) (*Document, error) {
	d := &Document{
		ID:           uuid.New().String(),
		Name:         req.Name,
		FilePath:     req.FilePath,
		FileSize:     req.FileSize,
		MimeType:     req.MimeType,
		DocumentType: req.DocumentType,
		Version:      1,
		Tags:         normalizeTags(req.Tags),
		CaseID:       req.CaseID,
		ClientID:     req.ClientID,
	}
	if d.DocumentType == "" {
		d.DocumentType = DefaultType
	}
	if uploaderID != "" {
		d.UploadedBy = &uploaderID
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
	page core.PageParams,
) ([]Document, int, error) {
	return s.repo.List(ctx, params, page)
}

// Update applies a partial edit. Pointing the document at a new object
// bumps its version.
func (s *Service) Update(ctx context.Context, id string, req UpdateDocumentRequest) (*Document, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.FilePath != nil && *req.FilePath != d.FilePath {
		d.FilePath = *req.FilePath
		d.Version++
	}
	if req.FileSize != nil {
		d.FileSize = *req.FileSize
	}
	if req.MimeType != nil {
		d.MimeType = *req.MimeType
	}
	if req.DocumentType != nil {
		d.DocumentType = *req.DocumentType
	}
	if req.Tags != nil {
		d.Tags = normalizeTags(*req.Tags)
	}
	if req.CaseID != nil {
		d.CaseID = req.CaseID
	}
	if req.ClientID != nil {
		d.ClientID = req.ClientID
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the row, then the stored object. A failed object removal
// is logged and leaves an orphan in the bucket.
func (s *Service) Delete(ctx context.Context, id string) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.objects != nil {
		if err := s.objects.Remove(ctx, d.FilePath); err != nil {
			s.logger.WarnContext(ctx, "document object not removed",
				"document_id", id,
				"key", d.FilePath,
				"error", err,
			)
		}
	}
	return nil
}

func normalizeTags(in []string) Tags {
	out := make(Tags, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, tag := range in {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
