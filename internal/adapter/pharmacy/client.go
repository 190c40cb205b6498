package pharmacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/cockroachdb/errors"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/pkg/auth"
	"github.com/polkiloo/pharmanet/internal/server/http/dto"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// UpstreamError is a non-success answer of a pharmacy. It is relayed to the
// caller unchanged.
type UpstreamError struct {
	PharmacyID  string
	StatusCode  int
	Body        []byte
	ContentType string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("pharmacy %s responded %d", e.PharmacyID, e.StatusCode)
}

// Client talks to one pharmacy.
type Client interface {
	CommitOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// HTTPClient implements Client via the pharmacy HTTP API. Calls are never retried.
type HTTPClient struct {
	id         string
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a client for the pharmacy id served at baseURL.
func NewHTTPClient(id, baseURL string, timeout time.Duration, token string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse pharmacy url")
	}
	if !parsed.IsAbs() {
		return nil, errors.Newf("pharmacy url %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		id:      id,
		baseURL: parsed,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *HTTPClient) endpoint(parts ...string) string {
	u := *c.baseURL
	u.Path = path.Join(append([]string{u.Path}, parts...)...)
	return u.String()
}

// CommitOrder submits req to the pharmacy. A 201 answer is decoded into the
// confirmed order; any other answer becomes an *UpstreamError.
func (c *HTTPClient) CommitOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	payload, err := json.Marshal(dto.NewOrderRequest(req))
	if err != nil {
		return nil, errors.Wrap(err, "encode order")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("orders"), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set(auth.TokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(err, "commit order")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.transportError(err, "read order response")
	}

	if resp.StatusCode != http.StatusCreated {
		c.logger.Warn("pharmacy rejected order",
			slog.String("pharmacy_id", c.id),
			slog.Int("status", resp.StatusCode),
		)
		return nil, &UpstreamError{
			PharmacyID:  c.id,
			StatusCode:  resp.StatusCode,
			Body:        body,
			ContentType: resp.Header.Get("Content-Type"),
		}
	}

	var data dto.OrderResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, domainErrors.Unavailable(err, fmt.Sprintf("decode order from %s", c.id))
	}
	order := data.Model(c.id)
	return &order, nil
}

// ListProducts reads the full catalog of the pharmacy.
func (c *HTTPClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("catalog", "products"), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(err, "list products")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &UpstreamError{
			PharmacyID:  c.id,
			StatusCode:  resp.StatusCode,
			Body:        body,
			ContentType: resp.Header.Get("Content-Type"),
		}
	}

	var data []dto.ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, domainErrors.Unavailable(err, fmt.Sprintf("decode catalog from %s", c.id))
	}
	products := make([]model.Product, 0, len(data))
	for _, p := range data {
		products = append(products, p.Model())
	}
	return products, nil
}

// transportError marks err as unavailable; timeouts additionally match
// context.DeadlineExceeded.
func (c *HTTPClient) transportError(err error, op string) error {
	c.logger.Warn("pharmacy unreachable",
		slog.String("pharmacy_id", c.id),
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	wrapped := domainErrors.Unavailable(err, fmt.Sprintf("%s at %s", op, c.id))
	if isTimeout(err) {
		return errors.Mark(wrapped, context.DeadlineExceeded)
	}
	return wrapped
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
