package views

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

type Getter[T any] interface {
	Get(ctx context.Context, id string, opts ...client.CallOption) (T, error)
}

// DetailView holds one record fetched by id. A 404 puts it in the NotFound
// state instead of the error state.
type DetailView[T any] struct {
	src    Getter[T]
	notify Notifier
	noun   string

	mu       sync.Mutex
	item     *T
	loading  bool
	notFound bool
	err      error
	epoch    uint64
}

func NewDetailView[T any](src Getter[T], noun string, notify Notifier) *DetailView[T] {
	return &DetailView[T]{src: src, noun: noun, notify: notify}
}

// Load fetches id. Like ListView, a load started later wins over an
// earlier one that finishes after it.
func (d *DetailView[T]) Load(ctx context.Context, id string, opts ...client.CallOption) (T, error) {
	d.mu.Lock()
	d.epoch++
	epoch := d.epoch
	d.loading = true
	d.mu.Unlock()

	item, err := d.src.Get(ctx, id, opts...)

	d.mu.Lock()
	defer d.mu.Unlock()
	if epoch != d.epoch {
		return item, err
	}
	d.loading = false
	d.notFound = errors.Is(err, client.ErrNotFound)
	switch {
	case err == nil:
		d.item, d.err = &item, nil
	case d.notFound:
		d.item, d.err = nil, nil
	default:
		d.item, d.err = nil, err
		Failed(d.notify, "Failed to load "+strings.ToLower(d.noun), err)
	}
	return item, err
}

func (d *DetailView[T]) Item() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.item == nil {
		var zero T
		return zero, false
	}
	return *d.item, true
}

func (d *DetailView[T]) NotFound() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notFound
}

func (d *DetailView[T]) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *DetailView[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

type viewCounter interface {
	IncrementViewsAsync(id string)
}

// PostDetail is the public post page. Every successful load bumps the
// post's view counter in the background.
type PostDetail struct {
	*DetailView[models.Post]
	counter viewCounter
}

func NewPostDetail(posts *client.PostClient, notify Notifier) *PostDetail {
	return newPostDetail(posts, posts, notify)
}

func newPostDetail(src Getter[models.Post], counter viewCounter, notify Notifier) *PostDetail {
	return &PostDetail{DetailView: NewDetailView(src, "Post", notify), counter: counter}
}

func (p *PostDetail) Load(ctx context.Context, id string) (models.Post, error) {
	post, err := p.DetailView.Load(ctx, id, client.Anonymous())
	if err != nil {
		return post, err
	}
	p.counter.IncrementViewsAsync(id)
	return post, nil
}
