package models

import (
	"net/url"
	"strconv"
)

type SortOrder string

const (
	SortASC  SortOrder = "ASC"
	SortDESC SortOrder = "DESC"
)

// ListParams are the server-side filters accepted by list endpoints. Zero
// values are omitted; the client never filters or sorts on its own.
type ListParams struct {
	Page      int
	Limit     int
	Status    string
	SortBy    string
	SortOrder SortOrder
	Tags      string
	Category  string
	Issuer    string
}

func (p ListParams) Validate() error {
	if p.Page < 0 {
		return invalid("page", "must not be negative")
	}
	if p.Limit < 0 {
		return invalid("limit", "must not be negative")
	}
	if p.SortOrder != "" {
		return oneOf("sortOrder", p.SortOrder, SortASC, SortDESC)
	}
	return nil
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("status", p.Status)
	set("sortBy", p.SortBy)
	set("sortOrder", string(p.SortOrder))
	set("tags", p.Tags)
	set("category", p.Category)
	set("issuer", p.Issuer)
	return v
}
