package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
	"github.com/dmitrijs2005/portfolio/internal/client/models"
	"github.com/dmitrijs2005/portfolio/internal/logging"
)

// Source is the CRUD surface a Synchronizer drives. *client.Resource and
// the entity clients embedding it satisfy it.
type Source[T models.Record, C, U any] interface {
	List(ctx context.Context, params models.ListParams, opts ...client.CallOption) ([]T, *models.Pagination, error)
	Create(ctx context.Context, req C) (T, error)
	Update(ctx context.Context, id string, req U) (T, error)
	Delete(ctx context.Context, id string) error
}

// Synchronizer couples a Source with a ListView. Successful mutations are
// folded into the view from the server's response; failed ones leave the
// view untouched and are reported to the Notifier.
type Synchronizer[T models.Record, C, U any] struct {
	src    Source[T, C, U]
	view   *ListView[T]
	notify Notifier
	log    logging.Logger
	noun   string

	mu     sync.Mutex
	params models.ListParams
}

// NewSynchronizer builds a Synchronizer over a fresh ListView. noun names
// one record in notifications ("Project", "Post").
func NewSynchronizer[T models.Record, C, U any](src Source[T, C, U], noun string, notify Notifier, log logging.Logger) *Synchronizer[T, C, U] {
	if log == nil {
		log = logging.Nop()
	}
	return &Synchronizer[T, C, U]{src: src, view: NewListView[T](), notify: notify, log: log, noun: noun}
}

func (s *Synchronizer[T, C, U]) View() *ListView[T] {
	return s.view
}

// SetParams changes the filters used by later refreshes.
func (s *Synchronizer[T, C, U]) SetParams(p models.ListParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
}

func (s *Synchronizer[T, C, U]) Params() models.ListParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Refresh refetches the list. When refreshes overlap only the most
// recently started one is shown.
func (s *Synchronizer[T, C, U]) Refresh(ctx context.Context, opts ...client.CallOption) error {
	ticket := s.view.Begin()
	items, page, err := s.src.List(ctx, s.Params(), opts...)
	applied := s.view.Commit(ticket, items, page, err)
	if !applied {
		s.log.Debug(ctx, "dropping superseded list result", "noun", s.noun, "ticket", uint64(ticket))
	}
	if err != nil {
		if applied {
			s.fail(fmt.Sprintf("Failed to load %ss", strings.ToLower(s.noun)), err)
		}
		return err
	}
	return nil
}

func (s *Synchronizer[T, C, U]) Create(ctx context.Context, req C) (T, error) {
	item, err := s.src.Create(ctx, req)
	if err != nil {
		s.fail(fmt.Sprintf("Failed to create %s", strings.ToLower(s.noun)), err)
		return item, err
	}
	s.view.Append(item)
	s.notify.Success(s.noun + " created successfully")
	return item, nil
}

func (s *Synchronizer[T, C, U]) Update(ctx context.Context, id string, req U) (T, error) {
	item, err := s.src.Update(ctx, id, req)
	if err != nil {
		s.fail(fmt.Sprintf("Failed to update %s", strings.ToLower(s.noun)), err)
		return item, err
	}
	if !s.view.Replace(item) {
		s.view.Append(item)
	}
	s.notify.Success(s.noun + " updated successfully")
	return item, nil
}

func (s *Synchronizer[T, C, U]) Delete(ctx context.Context, id string) error {
	if err := s.src.Delete(ctx, id); err != nil {
		s.fail(fmt.Sprintf("Failed to delete %s", strings.ToLower(s.noun)), err)
		return err
	}
	s.view.Remove(id)
	s.notify.Success(s.noun + " deleted successfully")
	return nil
}

func (s *Synchronizer[T, C, U]) fail(prefix string, err error) {
	Failed(s.notify, prefix, err)
}
