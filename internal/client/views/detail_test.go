package views

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

func TestPostDetail_LoadCountsAView(t *testing.T) {
	api, srv := newAPI(t)
	srv.SeedPosts(models.Post{ID: "p1", Title: "Hello", Content: "world", Status: models.PostPublished, Views: 3})
	note := &recorder{}
	d := NewPostDetail(api.Posts, note)

	post, err := d.Load(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.False(t, d.NotFound())

	assert.Eventually(t, func() bool {
		return srv.Calls("POST /api/posts/p1/increment-views") == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return srv.Posts()[0].Views == 4
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPostDetail_ViewCounterFailureIsSwallowed(t *testing.T) {
	api, srv := newAPI(t)
	srv.SeedPosts(models.Post{ID: "p1", Title: "Hello", Content: "world"})
	srv.Fail("POST /api/posts/p1/increment-views", http.StatusInternalServerError, 1)
	note := &recorder{}
	d := NewPostDetail(api.Posts, note)

	_, err := d.Load(context.Background(), "p1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return srv.Calls("POST /api/posts/p1/increment-views") == 1
	}, 2*time.Second, 10*time.Millisecond)
	item, ok := d.Item()
	require.True(t, ok)
	assert.Equal(t, "p1", item.ID)
	assert.Empty(t, note.Errors())
}

func TestPostDetail_NotFound(t *testing.T) {
	api, srv := newAPI(t)
	note := &recorder{}
	d := NewPostDetail(api.Posts, note)

	_, err := d.Load(context.Background(), "missing")
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.True(t, d.NotFound())
	assert.NoError(t, d.Err())
	_, ok := d.Item()
	assert.False(t, ok)
	assert.Empty(t, note.Errors())

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, srv.Calls("POST /api/posts/missing/increment-views"))
}

func TestDetailView_ServerError(t *testing.T) {
	api, srv := newAPI(t)
	srv.SeedProjects(projects("pr1")...)
	srv.Fail("GET /api/projects/pr1", http.StatusInternalServerError, 1)
	note := &recorder{}
	d := NewDetailView[models.Project](api.Projects, "Project", note)

	_, err := d.Load(context.Background(), "pr1")
	require.ErrorIs(t, err, client.ErrServer)
	assert.False(t, d.NotFound())
	assert.ErrorIs(t, d.Err(), client.ErrServer)
	require.Len(t, note.Errors(), 1)

	_, err = d.Load(context.Background(), "pr1")
	require.NoError(t, err)
	assert.NoError(t, d.Err())
	item, ok := d.Item()
	require.True(t, ok)
	assert.Equal(t, "title pr1", item.Title)
}
