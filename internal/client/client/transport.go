package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/logging"
)

// Credentials is the process-wide credential holder the transport reads on
// every request and demotes on 401.
type Credentials interface {
	Token() string
	// ClearIfToken clears the stored credential only when it still equals
	// token and reports whether it did.
	ClearIfToken(ctx context.Context, token string) (bool, error)
}

type Option func(*Transport)

func WithCredentials(c Credentials) Option {
	return func(t *Transport) { t.creds = c }
}

// WithUnauthorizedHandler registers fn to run after a 401 has cleared the
// credential. It runs once per cleared token.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(t *Transport) { t.onUnauthorized = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(t *Transport) { t.log = l }
}

func WithTimeout(d time.Duration) Option {
	return func(t *Transport) { t.timeout = d }
}

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(t *Transport) { t.httpClient = hc }
}

// CallOption tunes a single call.
type CallOption func(*callOptions)

type callOptions struct {
	anonymous bool
}

// Anonymous sends the call without credentials. A 401 on an anonymous call
// never touches the session.
func Anonymous() CallOption {
	return func(o *callOptions) { o.anonymous = true }
}

type anonymousKey struct{}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}

// Transport sends JSON requests to the portfolio API, attaching the bearer
// token and handling 401 responses in one place.
type Transport struct {
	rc             *resty.Client
	creds          Credentials
	onUnauthorized func(ctx context.Context)
	log            logging.Logger

	timeout    time.Duration
	httpClient *http.Client
}

func NewTransport(baseURL string, opts ...Option) *Transport {
	t := &Transport{log: logging.Nop()}
	for _, opt := range opts {
		opt(t)
	}

	if t.httpClient != nil {
		t.rc = resty.NewWithClient(t.httpClient)
	} else {
		t.rc = resty.New()
	}
	if t.timeout > 0 {
		t.rc.SetTimeout(t.timeout)
	}

	t.rc.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetLogger(restyLogger{log: t.log}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		OnBeforeRequest(t.attachCredentials).
		OnAfterResponse(t.interceptUnauthorized).
		OnAfterResponse(t.logResponse)

	return t
}

func (t *Transport) BaseURL() string {
	return t.rc.BaseURL
}

func (t *Transport) attachCredentials(_ *resty.Client, r *resty.Request) error {
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.SetHeader(common.RequestIDHeaderName, uuid.NewString())
	}

	r.Header.Del(common.AuthorizationHeaderName)
	if isAnonymous(r.Context()) || t.creds == nil {
		return nil
	}
	if token := t.creds.Token(); token != "" {
		r.SetHeader(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return nil
}

func (t *Transport) interceptUnauthorized(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized || t.creds == nil {
		return nil
	}

	// only the token this request actually carried may be cleared
	sent := strings.TrimPrefix(resp.Request.Header.Get(common.AuthorizationHeaderName), common.BearerPrefix)
	if sent == "" {
		return nil
	}

	ctx := resp.Request.Context()
	cleared, err := t.creds.ClearIfToken(ctx, sent)
	if err != nil {
		t.log.Error(ctx, "failed to clear credential after 401", "error", err)
	}
	if cleared {
		t.log.Info(ctx, "session expired, credential cleared", "path", resp.Request.URL)
		if t.onUnauthorized != nil {
			t.onUnauthorized(ctx)
		}
	}
	return nil
}

func (t *Transport) logResponse(_ *resty.Client, resp *resty.Response) error {
	t.log.Debug(resp.Request.Context(), "api call",
		"method", resp.Request.Method,
		"path", resp.Request.URL,
		"status", resp.StatusCode(),
		"request_id", resp.Request.Header.Get(common.RequestIDHeaderName),
		"duration", resp.Time(),
	)
	return nil
}

// Send performs one call and returns the decoded envelope. Non-2xx
// responses and transport failures come back as *APIError.
func (t *Transport) Send(ctx context.Context, method, path string, body any, query url.Values, opts ...CallOption) (*models.Envelope, error) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}
	if co.anonymous {
		ctx = context.WithValue(ctx, anonymousKey{}, true)
	}

	r := t.rc.R().SetContext(ctx)
	if body != nil {
		r.SetBody(body)
	}
	if len(query) > 0 {
		r.SetQueryParamsFromValues(query)
	}

	resp, err := r.Execute(method, path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		t.log.Warn(ctx, "api unreachable", "method", method, "path", path, "error", err)
		return nil, &APIError{Method: method, Path: path, Kind: ErrUnavailable, Cause: err}
	}

	requestID := resp.Request.Header.Get(common.RequestIDHeaderName)

	if !resp.IsSuccess() {
		apiErr := &APIError{
			Method:    method,
			Path:      path,
			Status:    resp.StatusCode(),
			RequestID: requestID,
			Kind:      kindForStatus(resp.StatusCode()),
		}
		var eb models.ErrorBody
		if json.Unmarshal(resp.Body(), &eb) == nil {
			apiErr.Message = eb.Message
			if apiErr.Message == "" {
				apiErr.Message = eb.Error
			}
		}
		return nil, apiErr
	}

	var env models.Envelope
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			return nil, &APIError{Method: method, Path: path, Status: resp.StatusCode(), RequestID: requestID, Kind: ErrServer, Cause: err}
		}
		if !env.Success {
			return nil, &APIError{Method: method, Path: path, Status: resp.StatusCode(), RequestID: requestID, Message: env.Message, Kind: ErrRejected}
		}
	} else {
		env.Success = true
	}

	return &env, nil
}

// restyLogger routes resty's own diagnostics into the project logger.
type restyLogger struct {
	log logging.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Debug(context.Background(), "resty: "+fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Debug(context.Background(), "resty: "+fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(context.Background(), "resty: "+fmt.Sprintf(format, v...))
}

// decodeField unmarshals data[key] into out.
func decodeField(data json.RawMessage, key string, out any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return &missingFieldError{key: key}
	}
	return json.Unmarshal(raw, out)
}

type missingFieldError struct{ key string }

func (e *missingFieldError) Error() string { return "response data has no " + e.key }

// call is Send plus decoding of a single data field.
func call[T any](ctx context.Context, t *Transport, method, path string, body any, query url.Values, key string, opts ...CallOption) (T, error) {
	var out T
	env, err := t.Send(ctx, method, path, body, query, opts...)
	if err != nil {
		return out, err
	}
	if err := decodeField(env.Data, key, &out); err != nil {
		return out, &APIError{Method: method, Path: path, Kind: ErrServer, Cause: err}
	}
	return out, nil
}
