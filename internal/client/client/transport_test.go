package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "http://api.test"

// fakeCreds mimics session.Store closely enough for the transport.
type fakeCreds struct {
	mu      sync.Mutex
	token   string
	clears  int
	lastArg string
}

func (f *fakeCreds) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeCreds) ClearIfToken(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastArg = token
	if token == "" || f.token != token {
		return false, nil
	}
	f.token = ""
	f.clears++
	return true, nil
}

func (f *fakeCreds) set(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func newMockedTransport(t *testing.T, creds *fakeCreds, redirects *atomic.Int32) *Transport {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)

	opts := []Option{WithHTTPClient(hc), WithTimeout(2 * time.Second)}
	if creds != nil {
		opts = append(opts, WithCredentials(creds))
	}
	if redirects != nil {
		opts = append(opts, WithUnauthorizedHandler(func(context.Context) { redirects.Add(1) }))
	}
	return NewTransport(base, opts...)
}

func okEnvelope(data map[string]any) httpmock.Responder {
	return httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"success": true, "data": data})
}

func TestSend_AttachesBearerAndRequestID(t *testing.T) {
	creds := &fakeCreds{token: "t1"}
	tr := newMockedTransport(t, creds, nil)

	var gotAuth, gotReqID, gotCT string
	httpmock.RegisterResponder(http.MethodGet, base+"/api/auth/me", func(r *http.Request) (*http.Response, error) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotCT = r.Header.Get("Content-Type")
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"success": true, "data": map[string]any{"user": map[string]any{"id": "u1"}}})
	})

	u, err := New(tr).Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Bearer t1", gotAuth)
	assert.Len(t, gotReqID, 36)
	assert.Equal(t, "application/json", gotCT)
}

func TestSend_OmitsHeaderWithoutCredential(t *testing.T) {
	tr := newMockedTransport(t, &fakeCreds{}, nil)

	var sawAuth bool
	httpmock.RegisterResponder(http.MethodGet, base+"/api/projects", func(r *http.Request) (*http.Response, error) {
		_, sawAuth = r.Header["Authorization"]
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"success": true, "data": map[string]any{"projects": []any{}}})
	})

	_, _, err := New(tr).Projects.List(context.Background(), zeroParams)
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

func TestSend_AnonymousNeverCarriesToken(t *testing.T) {
	tr := newMockedTransport(t, &fakeCreds{token: "t1"}, nil)

	var sawAuth bool
	httpmock.RegisterResponder(http.MethodPost, base+"/api/posts/p1/increment-views", func(r *http.Request) (*http.Response, error) {
		_, sawAuth = r.Header["Authorization"]
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{"success": true, "data": map[string]any{"post": map[string]any{"id": "p1", "views": 4}}})
	})

	p, err := New(tr).Posts.IncrementViews(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Views)
	assert.False(t, sawAuth)
}

func TestSend_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			tr := newMockedTransport(t, &fakeCreds{token: "t1"}, nil)
			httpmock.RegisterResponder(http.MethodGet, base+"/api/skills/s1",
				httpmock.NewJsonResponderOrPanic(tt.status, map[string]any{"success": false, "message": "nope"}))

			_, err := New(tr).Skills.Get(context.Background(), "s1")
			require.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Message)
			assert.Equal(t, "nope", Message(err))
			assert.NotEmpty(t, apiErr.RequestID)
			assert.Equal(t, tt.status >= 500, Retryable(err))
		})
	}
}

func TestSend_TransportFailureIsUnavailable(t *testing.T) {
	tr := newMockedTransport(t, nil, nil)
	httpmock.RegisterResponder(http.MethodGet, base+"/api/dashboard", httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := New(tr).Dashboard.Stats(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, Retryable(err))
}

func TestSend_UnsuccessfulEnvelopeIsRejected(t *testing.T) {
	tr := newMockedTransport(t, nil, nil)
	httpmock.RegisterResponder(http.MethodGet, base+"/api/about",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"success": false, "message": "maintenance"}))

	_, err := New(tr).About.Get(context.Background())
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "maintenance", Message(err))
}

func TestSend_MissingDataKeyIsServerError(t *testing.T) {
	tr := newMockedTransport(t, nil, nil)
	httpmock.RegisterResponder(http.MethodGet, base+"/api/profiles", okEnvelope(map[string]any{"other": 1}))

	_, err := New(tr).Profile.Get(context.Background())
	require.ErrorIs(t, err, ErrServer)
}

func TestUnauthorized_ClearsAndRedirectsOnce(t *testing.T) {
	creds := &fakeCreds{token: "t1"}
	var redirects atomic.Int32
	tr := newMockedTransport(t, creds, &redirects)
	c := New(tr)

	// hold all three requests until they are in flight together
	var arrived sync.WaitGroup
	arrived.Add(3)
	release := make(chan struct{})
	go func() {
		arrived.Wait()
		close(release)
	}()
	unauthorized := func(r *http.Request) (*http.Response, error) {
		arrived.Done()
		<-release
		return httpmock.NewJsonResponse(http.StatusUnauthorized, map[string]any{"success": false, "message": "expired"})
	}
	httpmock.RegisterResponder(http.MethodGet, base+"/api/dashboard", unauthorized)
	httpmock.RegisterResponder(http.MethodGet, base+"/api/contact", unauthorized)
	httpmock.RegisterResponder(http.MethodGet, base+"/api/profiles", unauthorized)

	ctx := context.Background()
	errs := make(chan error, 3)
	go func() { _, err := c.Dashboard.Stats(ctx); errs <- err }()
	go func() { _, _, err := c.Contact.List(ctx, zeroParams); errs <- err }()
	go func() { _, err := c.Profile.Get(ctx); errs <- err }()

	for range 3 {
		require.ErrorIs(t, <-errs, ErrUnauthorized)
	}
	assert.Equal(t, 1, creds.clears)
	assert.Equal(t, int32(1), redirects.Load())
	assert.Empty(t, creds.Token())
}

func TestUnauthorized_StaleResponseKeepsNewerToken(t *testing.T) {
	creds := &fakeCreds{token: "t1"}
	var redirects atomic.Int32
	tr := newMockedTransport(t, creds, &redirects)

	httpmock.RegisterResponder(http.MethodGet, base+"/api/dashboard", func(r *http.Request) (*http.Response, error) {
		// a new login lands while the old request is in flight
		creds.set("t2")
		return httpmock.NewJsonResponse(http.StatusUnauthorized, map[string]any{"success": false})
	})

	_, err := New(tr).Dashboard.Stats(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "t1", creds.lastArg)
	assert.Equal(t, "t2", creds.Token())
	assert.Zero(t, redirects.Load())
}

func TestUnauthorized_AnonymousCallNeverDemotes(t *testing.T) {
	creds := &fakeCreds{token: "t1"}
	var redirects atomic.Int32
	tr := newMockedTransport(t, creds, &redirects)

	httpmock.RegisterResponder(http.MethodPost, base+"/api/auth/login",
		httpmock.NewJsonResponderOrPanic(http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid email or password"}))

	_, err := New(tr).Auth.Login(context.Background(), loginReq("a@b.com", "wrong"))
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", Message(err))
	assert.Equal(t, "t1", creds.Token())
	assert.Zero(t, redirects.Load())
}

func TestSend_SQLStyleTimestampsDecode(t *testing.T) {
	tr := newMockedTransport(t, &fakeCreds{token: "t1"}, nil)
	httpmock.RegisterResponder(http.MethodGet, base+"/api/skills/s1", okEnvelope(map[string]any{
		"skill": map[string]any{"id": "s1", "name": "Go", "level": 80, "category": "Backend", "created_at": "2024-01-01 10:00:00"},
	}))

	s, err := New(tr).Skills.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), s.CreatedAt.Time)
}
