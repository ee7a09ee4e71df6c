// Package fide talks to the international ratings service and reconciles
// federation players against it.
package fide

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/chess-ratings/internal/platform/logging"
	"github.com/riskibarqy/chess-ratings/internal/platform/resilience"
	"github.com/riskibarqy/chess-ratings/internal/usecase"
)

const (
	defaultTimeout  = 5 * time.Second
	maxResponseSize = 2 << 20
	maxLoggedBody   = 256
)

var errTransient = crerr.New("fide transient failure")

// Player is one entry of the international rating list.
type Player struct {
	FideID         int64
	LastName       string
	FirstName      string
	Federation     string
	BirthYear      int
	StandardRating int
}

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// OnBreakerStateChange is registered on the breaker, e.g. to export
	// its state as a metric.
	OnBreakerStateChange resilience.StateChangeFunc
}

type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	retry      resilience.RetryPolicy
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "chess-ratings",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseSize,
		}
	}

	retry := resilience.DefaultRetryPolicy()
	retry.MaxRetries = max(cfg.MaxRetries, 0)
	if cfg.RetryBaseDelay > 0 {
		retry.BaseDelay = cfg.RetryBaseDelay
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	if cfg.OnBreakerStateChange != nil {
		breaker.OnStateChange(cfg.OnBreakerStateChange)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout:    timeout,
		retry:      retry,
		logger:     logger,
		breaker:    breaker,
	}
}

// LookupByID returns the rating list entry for fideID. An unknown id is
// reported as exists=false, not as an error.
func (c *Client) LookupByID(ctx context.Context, fideID int64) (Player, bool, error) {
	if fideID <= 0 {
		return Player{}, false, fmt.Errorf("%w: fide id must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload playerPayload
	found, err := c.getJSON(ctx, "/players/"+strconv.FormatInt(fideID, 10), nil, &payload)
	if err != nil {
		return Player{}, false, fmt.Errorf("%w: lookup fide_id=%d: %w", usecase.ErrDataSource, fideID, err)
	}
	if !found {
		return Player{}, false, nil
	}

	return payload.toPlayer(), true, nil
}

// Search lists rating list entries whose names match exactly.
func (c *Client) Search(ctx context.Context, lastName, firstName string) ([]Player, error) {
	lastName = strings.TrimSpace(lastName)
	if lastName == "" {
		return nil, fmt.Errorf("%w: last name is required", usecase.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("last_name", lastName)
	if first := strings.TrimSpace(firstName); first != "" {
		query.Set("first_name", first)
	}

	var envelope searchEnvelope
	found, err := c.getJSON(ctx, "/players", query, &envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: search last_name=%q: %w", usecase.ErrDataSource, lastName, err)
	}
	if !found {
		return []Player{}, nil
	}

	out := make([]Player, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		out = append(out, item.toPlayer())
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) (bool, error) {
	fullURL := c.buildURL(path, query)

	var (
		status int
		body   []byte
	)
	err := c.breaker.Do(func() error {
		return resilience.Retry(ctx, c.retry, isTransient, func(ctx context.Context, attempt int) error {
			var reqErr error
			status, body, reqErr = c.execute(ctx, fullURL)
			if reqErr != nil && attempt < c.retry.MaxRetries && isTransient(reqErr) {
				c.logger.DebugContext(ctx, "retrying fide request", "url", fullURL, "attempt", attempt+1, "error", reqErr)
			}
			return reqErr
		})
	}, isTransient)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "fide circuit breaker rejected request", "state", c.breaker.State())
		} else {
			c.logger.WarnContext(ctx, "fide request failed", "url", fullURL, "status", status, "error", err)
		}
		return false, err
	}
	if status == fasthttp.StatusNotFound {
		return false, nil
	}

	if err := sonic.Unmarshal(body, target); err != nil {
		return false, crerr.Wrap(err, "decode fide payload")
	}
	return true, nil
}

// execute performs one GET. A 404 is returned as a status without error.
func (c *Client) execute(ctx context.Context, fullURL string) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return 0, nil, crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	switch {
	case status >= 200 && status < 300:
		return status, body, nil
	case status == fasthttp.StatusNotFound:
		return status, nil, nil
	case isRetryableStatus(status):
		return status, nil, crerr.Mark(crerr.Newf("ratings service status=%d body=%s", status, abbreviateBody(body)), errTransient)
	default:
		return status, nil, crerr.Newf("ratings service status=%d body=%s", status, abbreviateBody(body))
	}
}

func (c *Client) buildURL(path string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)
	if encoded := query.Encode(); encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}
	return buf.String()
}

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) <= maxLoggedBody {
		return body
	}
	return body[:maxLoggedBody] + "..."
}

type playerPayload struct {
	FideID         int64  `json:"fide_id"`
	LastName       string `json:"last_name"`
	FirstName      string `json:"first_name"`
	Federation     string `json:"federation"`
	BirthYear      int    `json:"birth_year"`
	StandardRating int    `json:"standard_rating"`
}

func (p playerPayload) toPlayer() Player {
	return Player{
		FideID:         p.FideID,
		LastName:       strings.TrimSpace(p.LastName),
		FirstName:      strings.TrimSpace(p.FirstName),
		Federation:     strings.ToUpper(strings.TrimSpace(p.Federation)),
		BirthYear:      p.BirthYear,
		StandardRating: p.StandardRating,
	}
}

type searchEnvelope struct {
	Data []playerPayload `json:"data"`
}
