package domain

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Pagination describes one page of a list response. It is replaced
// wholesale on every list fetch.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// HasNext reports whether another page follows this one
func (p Pagination) HasNext() bool {
	return p.TotalPages > 0 && p.Page < p.TotalPages
}

// ListQuery holds list endpoint parameters
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string            // "asc" or "desc"
	Filters   map[string]string // extra equality filters, e.g. status=open
}

// Values encodes the query, skipping zero fields
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		values.Set("search", s)
	}
	if q.SortBy != "" {
		values.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		values.Set("sort_order", q.SortOrder)
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := strings.TrimSpace(q.Filters[k]); v != "" {
			values.Set(k, v)
		}
	}
	return values
}
