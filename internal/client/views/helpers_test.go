package views

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/testutil/fakeapi"
)

// recorder is a Notifier that keeps everything it was told.
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

func (r *recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}

type staticCreds struct{ token string }

func (c staticCreds) Token() string { return c.token }
func (c staticCreds) ClearIfToken(context.Context, string) (bool, error) {
	return false, nil
}

func newAPI(t *testing.T) (*client.Client, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New(t)
	tr := client.NewTransport(srv.URL, client.WithCredentials(staticCreds{token: srv.IssueToken("u1")}), client.WithTimeout(5*time.Second))
	return client.New(tr), srv
}
