// Package catalog holds the fetched sake catalog and its load state.
package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"time"

	apperrors "sake-reco/internal/common/errors"
	commonhttp "sake-reco/internal/common/http"
	"sake-reco/internal/models"
)

// DefaultEndpoint is the read-only catalog API.
const DefaultEndpoint = "https://script.google.com/macros/s/AKfycbw3C6mroyk4Sr46I8qD86b_QYDjQKzDGDhdMtSWYNw66eWPOZIfUYDKHu-R0f8xnNL-/exec"

// Fetcher retrieves the full catalog in one call.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.CatalogItem, error)
}

type response struct {
	OK    bool                 `json:"ok"`
	Count int                  `json:"count"`
	Items []models.CatalogItem `json:"items"`
}

// HTTPFetcher performs a single GET against the catalog endpoint. It never retries.
type HTTPFetcher struct {
	endpoint string
	client   *commonhttp.Client
}

// NewHTTPFetcher falls back to DefaultEndpoint when endpoint is empty.
func NewHTTPFetcher(endpoint string, timeout time.Duration) *HTTPFetcher {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HTTPFetcher{
		endpoint: endpoint,
		client:   commonhttp.NewClient(timeout),
	}
}

func (f *HTTPFetcher) Endpoint() string {
	return f.endpoint
}

func (f *HTTPFetcher) Fetch(ctx context.Context) ([]models.CatalogItem, error) {
	resp, err := f.client.Get(ctx, f.endpoint)
	if err != nil {
		if isTimeout(err) {
			return nil, apperrors.NewCatalogTimeoutError(err)
		}
		return nil, apperrors.NewCatalogFetchFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewCatalogHTTPStatusError(resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if isTimeout(err) {
			return nil, apperrors.NewCatalogTimeoutError(err)
		}
		return nil, apperrors.NewCatalogDecodeFailedError(err)
	}
	if !body.OK {
		return nil, apperrors.NewCatalogNotOKError()
	}
	if body.Items == nil {
		return []models.CatalogItem{}, nil
	}
	return body.Items, nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
