package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"polydash/internal/pkg/metrics"
	"polydash/internal/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errorBodyLimit caps how much of an upstream error body ends up in errors and logs.
const errorBodyLimit = 512

// UpstreamStatusError is returned when the upstream answered with a non-2xx status.
type UpstreamStatusError struct {
	API        string
	URL        string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s API request to %s failed with status %d: %s", e.API, e.URL, e.StatusCode, e.Body)
}

// StatusCode extracts the upstream status from err, 0 when err is not a status error.
func StatusCode(err error) int {
	var statusErr *UpstreamStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// Request describes one upstream call relative to the fetcher base URL.
type Request struct {
	// Endpoint is the metrics label, Path is used when empty.
	Endpoint string
	Path     string
	Query    url.Values
	Header   map[string]string
}

func (r Request) label() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return r.Path
}

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	API             string // metrics/log label: gamma, data, clob, llm
	BaseURL         string
	UserAgent       string
	Timeout         time.Duration
	MaxConnsPerHost int
	// Limiter is shared between fetchers hitting the same upstream, nil disables limiting.
	Limiter *rate.Limiter
}

// Fetcher performs rate limited JSON requests against one upstream host.
type Fetcher struct {
	client    *fasthttp.Client
	api       string
	baseURL   string
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts FetcherOptions, logger *zap.Logger) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client: &fasthttp.Client{
			Name:                     opts.UserAgent,
			MaxConnsPerHost:          opts.MaxConnsPerHost,
			NoDefaultUserAgentHeader: opts.UserAgent == "",
		},
		api:       opts.API,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		timeout:   timeout,
		limiter:   opts.Limiter,
		logger:    logger.Named(opts.API + "Fetcher"),
	}
}

// NewLimiter builds the process-wide token bucket for an upstream host.
func NewLimiter(perSecond, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = perSecond
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Get performs a GET request and returns the raw response body.
func (f *Fetcher) Get(ctx context.Context, r Request) ([]byte, error) {
	return f.do(ctx, fasthttp.MethodGet, r, nil)
}

// GetJSON performs a GET request and decodes the body into out.
func (f *Fetcher) GetJSON(ctx context.Context, r Request, out any) error {
	body, err := f.Get(ctx, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response from %s: %w", f.api, r.Path, err)
	}
	return nil
}

// GetRecords performs a GET request and decodes the body as a list of records.
// Both a bare array and an object wrapping the array under one of wrapKeys are accepted.
func (f *Fetcher) GetRecords(ctx context.Context, r Request, wrapKeys ...string) ([]utils.Record, error) {
	body, err := f.Get(ctx, r)
	if err != nil {
		return nil, err
	}
	records, err := DecodeRecords(body, wrapKeys...)
	if err != nil {
		f.logger.Error("Failed to decode upstream response",
			zap.String("path", r.Path),
			zap.ByteString("responseBody", truncate(body)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to decode %s response from %s: %w", f.api, r.Path, err)
	}
	return records, nil
}

// GetFirstRecords tries each request in order and returns the first non-empty record list.
// When every candidate fails the errors are combined; when some succeed empty, the result is empty.
func (f *Fetcher) GetFirstRecords(ctx context.Context, candidates []Request, wrapKeys ...string) ([]utils.Record, error) {
	var errs error
	succeeded := false
	for _, r := range candidates {
		records, err := f.GetRecords(ctx, r, wrapKeys...)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		succeeded = true
		if len(records) > 0 {
			return records, nil
		}
	}
	if succeeded {
		return []utils.Record{}, nil
	}
	return nil, errs
}

// PostJSON encodes payload, POSTs it and decodes the response body into out.
func (f *Fetcher) PostJSON(ctx context.Context, r Request, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request for %s: %w", f.api, r.Path, err)
	}
	raw, err := f.do(ctx, fasthttp.MethodPost, r, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response from %s: %w", f.api, r.Path, err)
	}
	return nil
}

func (f *Fetcher) do(ctx context.Context, method string, r Request, body []byte) (result []byte, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordUpstreamRequest(f.api, r.label(), time.Since(start), err)
	}()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s rate limiter: %w", f.api, err)
		}
	}

	requestURL := f.baseURL + r.Path
	if len(r.Query) > 0 {
		requestURL += "?" + r.Query.Encode()
	}

	f.logger.Debug("Requesting upstream", zap.String("method", method), zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if f.userAgent != "" {
		req.Header.SetUserAgent(f.userAgent)
	}
	for k, v := range r.Header {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBodyRaw(body)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline := time.Now().Add(f.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.client.DoDeadline(req, resp, deadline); err != nil {
		f.logger.Error("Failed to execute upstream request", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	rawBody := append([]byte(nil), resp.Body()...)

	if code := resp.StatusCode(); code < fasthttp.StatusOK || code >= fasthttp.StatusMultipleChoices {
		f.logger.Warn("Upstream request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", code),
			zap.ByteString("responseBody", truncate(rawBody)),
		)
		return nil, &UpstreamStatusError{API: f.api, URL: requestURL, StatusCode: code, Body: string(truncate(rawBody))}
	}
	return rawBody, nil
}

// DecodeRecords decodes a JSON body that is either an array of objects or an object
// carrying such an array under one of wrapKeys. A bare object is returned as a single record
// only when no wrap keys are given.
func DecodeRecords(body []byte, wrapKeys ...string) ([]utils.Record, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, err
	}
	switch v := decoded.(type) {
	case []any:
		return utils.AsRecords(v), nil
	case map[string]any:
		for _, key := range wrapKeys {
			if items, ok := v[key].([]any); ok {
				return utils.AsRecords(items), nil
			}
		}
		if len(wrapKeys) == 0 {
			return []utils.Record{utils.Record(v)}, nil
		}
		return []utils.Record{}, nil
	case nil:
		return []utils.Record{}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON %T, want array or object", decoded)
	}
}

func truncate(body []byte) []byte {
	if len(body) > errorBodyLimit {
		return body[:errorBodyLimit]
	}
	return body
}
