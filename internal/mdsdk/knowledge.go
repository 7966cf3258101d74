package mdsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/imroc/req/v3"
)

const (
	knowledgeList    = "/api/knowledge"
	knowledgeDoc     = "/api/knowledge/%s"
	knowledgeVersion = "/api/knowledge/%s/version"
)

// KnowledgeAPI covers the document CRUD surface of the markdownlm API.
type KnowledgeAPI struct {
	client *req.Client
}

func newKnowledgeAPI(client *req.Client) *KnowledgeAPI {
	return &KnowledgeAPI{
		client: client,
	}
}

// ListDocuments returns all documents with full content and version tokens,
// optionally restricted to one category.
func (k *KnowledgeAPI) ListDocuments(ctx context.Context, category string) ([]*Document, error) {
	var resp docListResponse

	r := k.client.R().
		SetContext(ctx).
		SetSuccessResult(&resp)
	if category != "" {
		r.SetQueryParam("category", category)
	}
	res, err := r.Get(knowledgeList)

	if err := handleAPIError(res, err, "knowledge list"); err != nil {
		return nil, err
	}

	return resp.Docs, nil
}

// GetVersion returns the current remote version token for a document without
// fetching its content.
func (k *KnowledgeAPI) GetVersion(ctx context.Context, docID string) (int64, error) {
	var resp docVersionResponse

	res, err := k.client.R().
		SetContext(ctx).
		SetSuccessResult(&resp).
		Get(fmt.Sprintf(knowledgeVersion, url.PathEscape(docID)))

	if err := handleAPIError(res, err, "knowledge version"); err != nil {
		return 0, err
	}

	return resp.Version, nil
}

// CreateDocument creates a new document and returns it with its
// server-assigned identifier and initial version token.
func (k *KnowledgeAPI) CreateDocument(ctx context.Context, params *CreateDocumentParams) (*Document, error) {
	var resp docResponse

	res, err := k.client.R().
		SetContext(ctx).
		SetBody(params).
		SetSuccessResult(&resp).
		Post(knowledgeList)

	if err := handleAPIError(res, err, "knowledge create"); err != nil {
		return nil, err
	}
	if resp.Doc == nil {
		return nil, NewAPIError(res.StatusCode, "knowledge create: empty response")
	}

	return resp.Doc, nil
}

// UpdateDocument replaces a document's content and returns the new version
// token. The server rejects the update with a VersionConflictError when
// params.ExpectedVersion is stale.
func (k *KnowledgeAPI) UpdateDocument(ctx context.Context, docID string, params *UpdateDocumentParams) (int64, error) {
	var resp docResponse

	res, err := k.client.R().
		SetContext(ctx).
		SetBody(params).
		SetSuccessResult(&resp).
		Put(fmt.Sprintf(knowledgeDoc, url.PathEscape(docID)))

	if err == nil && res.StatusCode == http.StatusConflict {
		conflict := &VersionConflictError{
			DocID:           docID,
			ExpectedVersion: params.ExpectedVersion,
		}
		var body versionConflictResponse
		if jerr := jsonUnmarshal(res.Bytes(), &body); jerr == nil {
			conflict.ActualVersion = body.CurrentVersion
		}
		return 0, conflict
	}

	if err := handleAPIError(res, err, "knowledge update"); err != nil {
		return 0, err
	}
	if resp.Doc == nil {
		return 0, NewAPIError(res.StatusCode, "knowledge update: empty response")
	}

	return resp.Doc.Version, nil
}

// DeleteDocument removes a document from the knowledge base.
func (k *KnowledgeAPI) DeleteDocument(ctx context.Context, docID string) error {
	res, err := k.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf(knowledgeDoc, url.PathEscape(docID)))

	return handleAPIError(res, err, "knowledge delete")
}
