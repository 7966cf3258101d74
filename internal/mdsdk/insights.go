package mdsdk

import (
	"context"

	"github.com/imroc/req/v3"
)

const (
	knowledgeQuery    = "/api/knowledge/query"
	knowledgeValidate = "/api/knowledge/validate"
	knowledgeGaps     = "/api/knowledge/gaps/resolve"
)

// InsightsAPI covers the server-side rule engine: natural language queries,
// code validation and documentation gap resolution. These are passthrough
// calls; the client adds no logic on top.
type InsightsAPI struct {
	client *req.Client
}

func newInsightsAPI(client *req.Client) *InsightsAPI {
	return &InsightsAPI{
		client: client,
	}
}

func (i *InsightsAPI) Query(ctx context.Context, params *QueryParams) (*QueryResult, error) {
	var resp QueryResult

	res, err := i.client.R().
		SetContext(ctx).
		SetBody(params).
		SetSuccessResult(&resp).
		Post(knowledgeQuery)

	if err := handleAPIError(res, err, "knowledge query"); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (i *InsightsAPI) ValidateCode(ctx context.Context, params *ValidateParams) (*ValidateResult, error) {
	var resp ValidateResult

	res, err := i.client.R().
		SetContext(ctx).
		SetBody(params).
		SetSuccessResult(&resp).
		Post(knowledgeValidate)

	if err := handleAPIError(res, err, "knowledge validate"); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (i *InsightsAPI) ResolveGap(ctx context.Context, params *ResolveGapParams) (*ResolveGapResult, error) {
	var resp ResolveGapResult

	res, err := i.client.R().
		SetContext(ctx).
		SetBody(params).
		SetSuccessResult(&resp).
		Post(knowledgeGaps)

	if err := handleAPIError(res, err, "gap resolve"); err != nil {
		return nil, err
	}

	return &resp, nil
}
