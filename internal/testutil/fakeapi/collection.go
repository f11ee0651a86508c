package fakeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

type record = map[string]any

// collection keeps records as generic JSON objects in insertion order.
type collection struct {
	prefix    string
	seq       int
	items     []record
	paginated bool
}

func newCollection(prefix string, paginated bool) *collection {
	return &collection{prefix: prefix, paginated: paginated}
}

func (c *collection) nextID() string {
	c.seq++
	return fmt.Sprintf("%s%d", c.prefix, c.seq)
}

func (c *collection) add(rec record) record {
	if id, _ := rec["id"].(string); id == "" {
		rec["id"] = c.nextID()
	} else {
		c.seq++
	}
	c.items = append(c.items, rec)
	return maps.Clone(rec)
}

func (c *collection) index(id string) int {
	return slices.IndexFunc(c.items, func(r record) bool { return r["id"] == id })
}

func (c *collection) get(id string) (record, bool) {
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	return maps.Clone(c.items[i]), true
}

func (c *collection) patch(id string, fields record) (record, bool) {
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	for k, v := range fields {
		c.items[i][k] = v
	}
	return maps.Clone(c.items[i]), true
}

func (c *collection) remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

func (c *collection) where(pred func(record) bool) []record {
	out := []record{}
	for _, r := range c.items {
		if pred(r) {
			out = append(out, maps.Clone(r))
		}
	}
	return out
}

// query applies the list parameters the real API understands.
func (c *collection) query(q url.Values) ([]record, map[string]any) {
	items := c.where(func(r record) bool {
		for _, key := range []string{"status", "category", "issuer"} {
			if want := q.Get(key); want != "" && r[key] != want {
				return false
			}
		}
		if tags := q.Get("tags"); tags != "" && !hasAnyTag(r, strings.Split(tags, ",")) {
			return false
		}
		return true
	})

	if by := q.Get("sortBy"); by != "" {
		desc := strings.EqualFold(q.Get("sortOrder"), "DESC")
		slices.SortStableFunc(items, func(a, b record) int {
			n := compare(a[by], b[by])
			if desc {
				return -n
			}
			return n
		})
	}

	if !c.paginated {
		return items, nil
	}

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total := len(items)
	pages := (total + limit - 1) / limit
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return items[start:end], map[string]any{
		"currentPage":  page,
		"totalPages":   pages,
		"totalItems":   total,
		"itemsPerPage": limit,
	}
}

func hasAnyTag(r record, want []string) bool {
	tags, _ := r["tags"].([]any)
	for _, t := range tags {
		for _, w := range want {
			if t == strings.TrimSpace(w) {
				return true
			}
		}
	}
	return false
}

func compare(a, b any) int {
	switch x := a.(type) {
	case float64:
		y, _ := b.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

// toRecord converts a typed value to its generic JSON form.
func toRecord(v any) record {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		panic(err)
	}
	return r
}

func fromRecords[T any](rs []record) []T {
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		var v T
		b, _ := json.Marshal(r)
		_ = json.Unmarshal(b, &v)
		out = append(out, v)
	}
	return out
}

type gate struct {
	n       int
	arrived int
	ch      chan struct{}
}

func newGate(n int) *gate {
	return &gate{n: n, ch: make(chan struct{})}
}

// join is called with the server lock held and reports whether the gate
// is now full.
func (g *gate) join() bool {
	g.arrived++
	if g.arrived >= g.n {
		close(g.ch)
		return true
	}
	return false
}

func (g *gate) wait(ctx context.Context) {
	select {
	case <-g.ch:
	case <-ctx.Done():
	}
}
