package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/polkiloo/pharmanet/internal/server/http/dto"
)

// CatalogSource reads the sellable entries of a pharmacy catalog.
type CatalogSource interface {
	FetchCatalog(ctx context.Context, url string) ([]MirrorEntry, error)
}

// OrderSubmitter posts an order and reports the HTTP status received.
type OrderSubmitter interface {
	Submit(ctx context.Context, req dto.RoutedOrderRequest) (int, error)
}

// HTTPCatalogClient implements CatalogSource.
type HTTPCatalogClient struct {
	httpClient *http.Client
}

// NewHTTPCatalogClient creates a catalog client with the given per-request timeout.
func NewHTTPCatalogClient(timeout time.Duration) *HTTPCatalogClient {
	return &HTTPCatalogClient{httpClient: &http.Client{Timeout: timeout}}
}

// FetchCatalog keeps entries that carry a string code and a positive integer stock.
func (c *HTTPCatalogClient) FetchCatalog(ctx context.Context, url string) ([]MirrorEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch catalog %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf("fetch catalog %s: status %d", url, resp.StatusCode)
	}

	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, errors.Wrapf(err, "catalog %s must be a json array", url)
	}

	entries := make([]MirrorEntry, 0, len(items))
	for _, item := range items {
		code, ok := item["package_ndc_11"].(string)
		if !ok {
			continue
		}
		stock, ok := item["stock"].(float64)
		if !ok || stock <= 0 || stock != math.Trunc(stock) {
			continue
		}
		entries = append(entries, MirrorEntry{Code: code, Stock: int64(stock)})
	}
	return entries, nil
}

// HTTPOrderSubmitter implements OrderSubmitter against the orchestrator.
type HTTPOrderSubmitter struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPOrderSubmitter creates a submitter posting to {baseURL}/orders.
func NewHTTPOrderSubmitter(baseURL string, timeout time.Duration) *HTTPOrderSubmitter {
	return &HTTPOrderSubmitter{
		endpoint:   strings.TrimRight(baseURL, "/") + "/orders",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Submit posts req once. The returned status is zero when err is not nil.
func (s *HTTPOrderSubmitter) Submit(ctx context.Context, req dto.RoutedOrderRequest) (int, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return 0, errors.Wrap(err, "encode order")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
