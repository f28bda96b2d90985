package hoyolab

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/alexbotov/hoyogo/internal/cache"
	"github.com/alexbotov/hoyogo/internal/ds"
)

// Headers the service expects on every call.
const (
	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36"
	appVersion = "1.5.0"
	clientType = "5"

	defaultLanguage   = "en-us"
	defaultTimeout    = 30 * time.Second
	defaultRetryDelay = 1 * time.Second
	defaultMaxRetries = 60
)

// Request accumulates headers, query parameters and body fields and sends
// them to the service. Query parameters and headers persist across sends;
// body fields are cleared after each successful send.
//
// Mutators are intended for a single logical owner configuring the request
// between sends. Send itself is safe for concurrent use: identical in-flight
// calls are merged and successful responses are cached.
type Request struct {
	mu       sync.Mutex
	headers  map[string]string
	params   map[string]string
	body     map[string]any
	referer  string
	signed   bool
	language string

	httpClient *http.Client
	cache      *cache.Cache
	group      singleflight.Group

	retryDelay time.Duration
	maxRetries int
	lenient    bool
}

// NewRequest creates a request bound to the given credential's cookie.
// cfg may be nil, in which case defaults apply.
func NewRequest(cred *Credential, cfg *Config) (*Request, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}
	cookie, err := cred.Cookie()
	if err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	language := cfg.Language
	if cred.Language != "" {
		language = cred.Language
	}

	return &Request{
		headers: map[string]string{
			"User-Agent":        userAgent,
			"Content-Type":      "application/json",
			"x-rpc-app_version": appVersion,
			"x-rpc-client_type": clientType,
			"x-rpc-device_id":   uuid.NewString(),
			"Cookie":            cookie,
		},
		params:     make(map[string]string),
		body:       make(map[string]any),
		language:   language,
		httpClient: cfg.HTTPClient,
		cache:      cache.New(cfg.CacheTTL),
		retryDelay: cfg.RetryDelay,
		maxRetries: cfg.MaxRetries,
		lenient:    cfg.LegacyErrorEnvelope,
	}, nil
}

// Close releases the request's background resources (the response-cache
// sweep goroutine). The request must not be used after Close.
func (r *Request) Close() {
	r.cache.Stop()
}

// SetReferer sets the Referer/Origin attached to POST calls.
func (r *Request) SetReferer(referer string) *Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.referer = referer
	return r
}

// SetBody merges fields into the request body. The body is sent on POST
// calls only and is cleared after each successful send.
func (r *Request) SetBody(fields map[string]any) *Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range fields {
		r.body[k] = v
	}
	return r
}

// SetParams merges query parameters. Unlike the body, parameters persist
// across sends.
func (r *Request) SetParams(params map[string]string) *Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range params {
		r.params[k] = v
	}
	return r
}

// SetSignature toggles the dynamic-security header on subsequent sends.
func (r *Request) SetSignature(on bool) *Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signed = on
	return r
}

// SetLanguage sets the x-rpc-language header value.
func (r *Request) SetLanguage(lang string) *Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.language = lang
	return r
}

// Send issues the request. An empty method defaults to GET. ttl overrides
// the cache default for this response; zero keeps the default.
//
// A cached response is returned without touching the network. A retcode of
// RetcodeRateLimited is retried once per second up to the configured limit;
// the final occurrence is returned as-is. Non-2xx HTTP statuses and
// transport failures surface as *TransportError and are never retried.
func (r *Request) Send(ctx context.Context, rawURL, method string, ttl time.Duration) (*Response, error) {
	if method == "" {
		method = http.MethodGet
	}
	return r.send(ctx, rawURL, method, ttl, 1)
}

func (r *Request) send(ctx context.Context, rawURL, method string, ttl time.Duration, attempt int) (*Response, error) {
	key := r.cacheKey(rawURL, method)
	if v, ok := r.cache.Get(key); ok {
		return v.(*Response), nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.roundTrip(ctx, rawURL, method)
	})
	if err != nil {
		var de *DecodeError
		if r.lenient && errors.As(err, &de) {
			// Legacy consumers expect a success-shaped envelope instead of
			// an error here. Logged so the failure is not silent.
			slog.Warn("absorbing decode failure into legacy envelope", "url", rawURL, "error", err)
			return &Response{Retcode: retcodeLegacyFailure, Message: ""}, nil
		}
		return nil, err
	}
	resp := v.(*Response)

	if resp.Retcode == RetcodeRateLimited && attempt <= r.maxRetries {
		slog.Debug("rate limited, retrying", "url", rawURL, "attempt", attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.retryDelay):
		}
		// The caller's ttl is not forwarded into retried attempts; a
		// response obtained after retries is cached with the default TTL.
		return r.send(ctx, rawURL, method, 0, attempt+1)
	}

	r.cache.SetWithTTL(key, resp, ttl)
	r.clearBody()
	return resp, nil
}

// roundTrip performs one HTTP exchange and decodes the envelope.
func (r *Request) roundTrip(ctx context.Context, rawURL, method string) (*Response, error) {
	req, err := r.buildHTTPRequest(ctx, rawURL, method)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		slog.Debug("request failed", "method", method, "url", rawURL, "error", err)
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Message: err.Error(), Err: err}
	}
	slog.Debug("request", "method", method, "url", rawURL, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var envelope Response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &DecodeError{URL: rawURL, Err: err}
	}
	return &envelope, nil
}

func (r *Request) buildHTTPRequest(ctx context.Context, rawURL, method string) (*http.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &TransportError{Message: "invalid url " + rawURL, Err: err}
	}
	q := u.Query()
	for k, v := range r.params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	var bodyReader io.Reader
	if method == http.MethodPost {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, &TransportError{Message: "encode body", Err: err}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, &TransportError{Message: "build request", Err: err}
	}

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	language := r.language
	if language == "" {
		language = defaultLanguage
	}
	req.Header.Set("x-rpc-language", language)

	if r.signed {
		req.Header.Set("DS", ds.Generate())
	}
	if method == http.MethodPost && r.referer != "" {
		req.Header.Set("Referer", r.referer)
		req.Header.Set("Origin", r.referer)
	}
	return req, nil
}

// cacheKey hashes the request identity: url, method and the current
// parameter and body maps serialized in stable key order. Hash collisions
// are accepted as a correctness risk.
func (r *Request) cacheKey(rawURL, method string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	b.WriteString(rawURL)
	b.WriteByte('|')
	b.WriteString(method)
	b.WriteByte('|')
	writeSortedStrings(&b, r.params)
	b.WriteByte('|')
	writeSortedValues(&b, r.body)

	return fmt.Sprintf("%x", md5.Sum([]byte(b.String())))
}

func (r *Request) clearBody() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.body = make(map[string]any)
}

func writeSortedStrings(b *strings.Builder, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s=%s&", k, m[k])
	}
}

func writeSortedValues(b *strings.Builder, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		encoded, err := json.Marshal(m[k])
		if err != nil {
			fmt.Fprintf(b, "%s=%v&", k, m[k])
			continue
		}
		fmt.Fprintf(b, "%s=%s&", k, encoded)
	}
}
