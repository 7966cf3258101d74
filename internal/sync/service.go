package sync

import (
	"context"

	"github.com/markdownlm/mdlm/internal/mdsdk"
)

// DocumentService is the narrow remote collaborator the engine drives. The
// server owns identifiers and version tokens; the engine only reads and
// echoes them back.
type DocumentService interface {
	// ListDocuments returns every document (full content and version token),
	// optionally restricted to one category.
	ListDocuments(ctx context.Context, category string) ([]*mdsdk.Document, error)
	// GetVersion returns the current remote version token without content.
	GetVersion(ctx context.Context, docID string) (int64, error)
	// CreateDocument creates a document and returns it with its
	// server-assigned identifier and initial version token.
	CreateDocument(ctx context.Context, category string, title string, content string) (*mdsdk.Document, error)
	// UpdateDocument replaces content, failing with
	// *mdsdk.VersionConflictError when expectedVersion is stale.
	UpdateDocument(ctx context.Context, docID string, content string, expectedVersion int64, changeReason string) (int64, error)
	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, docID string) error
}

// KnowledgeService adapts the SDK's knowledge API to DocumentService.
type KnowledgeService struct {
	api *mdsdk.KnowledgeAPI
}

func NewKnowledgeService(api *mdsdk.KnowledgeAPI) *KnowledgeService {
	return &KnowledgeService{api: api}
}

func (s *KnowledgeService) ListDocuments(ctx context.Context, category string) ([]*mdsdk.Document, error) {
	return s.api.ListDocuments(ctx, category)
}

func (s *KnowledgeService) GetVersion(ctx context.Context, docID string) (int64, error) {
	return s.api.GetVersion(ctx, docID)
}

func (s *KnowledgeService) CreateDocument(ctx context.Context, category string, title string, content string) (*mdsdk.Document, error) {
	return s.api.CreateDocument(ctx, &mdsdk.CreateDocumentParams{
		Title:    title,
		Content:  content,
		Category: category,
	})
}

func (s *KnowledgeService) UpdateDocument(ctx context.Context, docID string, content string, expectedVersion int64, changeReason string) (int64, error) {
	return s.api.UpdateDocument(ctx, docID, &mdsdk.UpdateDocumentParams{
		Content:         content,
		ExpectedVersion: expectedVersion,
		ChangeReason:    changeReason,
	})
}

func (s *KnowledgeService) DeleteDocument(ctx context.Context, docID string) error {
	return s.api.DeleteDocument(ctx, docID)
}

var _ DocumentService = (*KnowledgeService)(nil)
