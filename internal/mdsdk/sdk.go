package mdsdk

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"
)

// SDK is the client for the markdownlm API. All requests are scoped to the
// authenticated user; the server enforces that an API key can only touch its
// own knowledge base.
type SDK struct {
	client    *req.Client
	baseURL   string
	Knowledge *KnowledgeAPI
	Insights  *InsightsAPI
}

// New creates an SDK client for the given base URL and API key.
func New(baseURL string, apiKey string) (*SDK, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client := req.C().
		SetBaseURL(baseURL).
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(1*time.Second).
		SetTimeout(30*time.Second).
		SetUserAgent(UserAgent).
		SetCommonHeader(HeaderMdlmVersion, versionHeaderValue).
		SetCommonHeader(HeaderMdlmDeviceId, deviceId).
		SetCommonBearerAuthToken(apiKey).
		SetCommonErrorResult(&APIError{}).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal).
		OnBeforeRequest(func(_ *req.Client, r *req.Request) error {
			// Fresh id per request, for correlating client and server logs.
			r.SetHeader(HeaderMdlmRequestId, uuid.NewString())
			return nil
		})

	return &SDK{
		client:    client,
		baseURL:   baseURL,
		Knowledge: newKnowledgeAPI(client),
		Insights:  newInsightsAPI(client),
	}, nil
}

// Close releases idle connections held by the underlying client.
func (s *SDK) Close() {
	s.client.GetTransport().CloseIdleConnections()
}
