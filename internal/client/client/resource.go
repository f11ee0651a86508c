package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

type validator interface {
	Validate() error
}

func validate(v any) error {
	if vv, ok := v.(validator); ok {
		if err := vv.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return nil
}

// Resource is the CRUD façade shared by every collection endpoint:
// GET/POST <path>, GET/PUT/DELETE <path>/:id. T is the record, C the create
// request and U the (partial) update request.
type Resource[T models.Record, C, U any] struct {
	t       *Transport
	path    string
	listKey string
	itemKey string
}

func NewResource[T models.Record, C, U any](t *Transport, path, listKey, itemKey string) *Resource[T, C, U] {
	return &Resource[T, C, U]{t: t, path: path, listKey: listKey, itemKey: itemKey}
}

func (r *Resource[T, C, U]) Path() string {
	return r.path
}

func (r *Resource[T, C, U]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List returns the collection as filtered and ordered by the server.
// Pagination is nil when the endpoint does not paginate.
func (r *Resource[T, C, U]) List(ctx context.Context, params models.ListParams, opts ...CallOption) ([]T, *models.Pagination, error) {
	if err := validate(params); err != nil {
		return nil, nil, err
	}

	env, err := r.t.Send(ctx, http.MethodGet, r.path, nil, params.Values(), opts...)
	if err != nil {
		return nil, nil, err
	}

	var page struct {
		Pagination *models.Pagination `json:"pagination"`
	}
	items := []T{}
	if err := decodeField(env.Data, r.listKey, &items); err != nil {
		return nil, nil, &APIError{Method: http.MethodGet, Path: r.path, Kind: ErrServer, Cause: err}
	}
	if err := decodeField(env.Data, "pagination", &page.Pagination); err != nil {
		var missing *missingFieldError
		if !errors.As(err, &missing) {
			return nil, nil, &APIError{Method: http.MethodGet, Path: r.path, Kind: ErrServer, Cause: err}
		}
	}

	return items, page.Pagination, nil
}

func (r *Resource[T, C, U]) Get(ctx context.Context, id string, opts ...CallOption) (T, error) {
	return call[T](ctx, r.t, http.MethodGet, r.itemPath(id), nil, nil, r.itemKey, opts...)
}

// Create returns the record as stored by the server, with its id and
// timestamps.
func (r *Resource[T, C, U]) Create(ctx context.Context, req C) (T, error) {
	if err := validate(req); err != nil {
		var zero T
		return zero, err
	}
	return call[T](ctx, r.t, http.MethodPost, r.path, req, nil, r.itemKey)
}

// Update sends only the fields set in req and returns the full record.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, req U) (T, error) {
	if err := validate(req); err != nil {
		var zero T
		return zero, err
	}
	return call[T](ctx, r.t, http.MethodPut, r.itemPath(id), req, nil, r.itemKey)
}

// Delete removes the record. A 404 counts as success: the record is gone
// either way.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	_, err := r.t.Send(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// listAt fetches a list stored under key at a sub path of the resource.
func (r *Resource[T, C, U]) listAt(ctx context.Context, sub string, query url.Values, opts ...CallOption) ([]T, error) {
	items, err := call[[]T](ctx, r.t, http.MethodGet, r.path+sub, nil, query, r.listKey, opts...)
	if items == nil && err == nil {
		items = []T{}
	}
	return items, err
}

// byUser lists the records owned by userID.
func (r *Resource[T, C, U]) byUser(ctx context.Context, userID string, opts ...CallOption) ([]T, error) {
	return r.listAt(ctx, "/user/"+url.PathEscape(userID), nil, opts...)
}
