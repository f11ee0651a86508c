package views

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/portfolio/internal/client/models"
)

// Ticket identifies one list fetch. Only the most recent ticket may commit.
type Ticket uint64

// ListView is an ordered list of records plus its loading and error state.
// Mutation results are folded in by id so a record never appears twice.
type ListView[T models.Record] struct {
	mu         sync.Mutex
	items      []T
	pagination *models.Pagination
	loading    bool
	err        error
	epoch      Ticket
}

func NewListView[T models.Record]() *ListView[T] {
	return &ListView[T]{}
}

// Begin starts a fetch and supersedes every earlier ticket.
func (v *ListView[T]) Begin() Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.epoch++
	v.loading = true
	return v.epoch
}

// Commit applies the outcome of the fetch started with t and reports
// whether it was applied. Results of superseded fetches are dropped. A
// failed fetch keeps the items already shown.
func (v *ListView[T]) Commit(t Ticket, items []T, p *models.Pagination, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if t != v.epoch {
		return false
	}
	v.loading = false
	v.err = err
	if err != nil {
		return true
	}
	v.items = slices.Clone(items)
	v.pagination = p
	return true
}

// Append adds item at the end, or replaces the record with the same id.
func (v *ListView[T]) Append(item T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.indexLocked(item.GetID()); i >= 0 {
		v.items[i] = item
		return
	}
	v.items = append(v.items, item)
}

// Replace swaps the record with item's id for item.
func (v *ListView[T]) Replace(item T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexLocked(item.GetID())
	if i < 0 {
		return false
	}
	v.items[i] = item
	return true
}

func (v *ListView[T]) Remove(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexLocked(id)
	if i < 0 {
		return false
	}
	v.items = slices.Delete(v.items, i, i+1)
	return true
}

// Patch edits the record with the given id in place.
func (v *ListView[T]) Patch(id string, fn func(*T)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.indexLocked(id)
	if i < 0 {
		return false
	}
	fn(&v.items[i])
	return true
}

func (v *ListView[T]) indexLocked(id string) int {
	return slices.IndexFunc(v.items, func(it T) bool { return it.GetID() == id })
}

// Items returns a copy of the current records in order.
func (v *ListView[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.items)
}

func (v *ListView[T]) Find(id string) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.indexLocked(id); i >= 0 {
		return v.items[i], true
	}
	var zero T
	return zero, false
}

// Count returns how many records satisfy pred.
func (v *ListView[T]) Count(pred func(T) bool) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, it := range v.items {
		if pred(it) {
			n++
		}
	}
	return n
}

func (v *ListView[T]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items)
}

func (v *ListView[T]) Pagination() *models.Pagination {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pagination == nil {
		return nil
	}
	p := *v.pagination
	return &p
}

func (v *ListView[T]) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *ListView[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}
