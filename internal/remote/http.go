package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harborline/draftquote/internal/wire"
	"github.com/harborline/draftquote/pkg/types"
)

// draftsPath is the remote store's draft collection endpoint.
const draftsPath = "/api/draft-quotes"

// Compile-time interface check.
var _ Store = (*HTTPStore)(nil)

// HTTPStore talks JSON to the remote draft store over HTTP.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore returns a store rooted at baseURL with the given request
// timeout.
func NewHTTPStore(baseURL string, timeout time.Duration) *HTTPStore {
	if timeout <= 0 {
		timeout = types.DefaultRequestTimeout
	}
	return &HTTPStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// CreateDraft POSTs a new draft to the collection endpoint.
func (s *HTTPStore) CreateDraft(ctx context.Context, req *wire.WireCreate) (*wire.WireResponse, error) {
	return s.do(ctx, http.MethodPost, s.baseURL+draftsPath, req)
}

// UpdateDraft PUTs the full draft under its server id.
func (s *HTTPStore) UpdateDraft(ctx context.Context, draftID string, req *wire.WireUpdate) (*wire.WireResponse, error) {
	return s.do(ctx, http.MethodPut, fmt.Sprintf("%s%s/%s", s.baseURL, draftsPath, draftID), req)
}

// GetDraft fetches the draft under its server id.
func (s *HTTPStore) GetDraft(ctx context.Context, draftID string) (*wire.WireResponse, error) {
	return s.do(ctx, http.MethodGet, fmt.Sprintf("%s%s/%s", s.baseURL, draftsPath, draftID), nil)
}

// do performs one JSON request/response cycle. Transport and status failures
// wrap types.ErrRemote.
func (s *HTTPStore) do(ctx context.Context, method, url string, body any) (*wire.WireResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, url, types.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: %w: status %d", method, url, types.ErrRemote, resp.StatusCode)
	}

	var out wire.WireResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w: %v", types.ErrRemote, err)
	}
	return &out, nil
}
