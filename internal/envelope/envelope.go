// Package envelope normalizes the CRM API's response shapes.
//
// Endpoints answer with one of:
//
//	{"success": true, "data": <payload>}
//	{"<key>": [ ... ], "pagination": {...}}
//	[ ... ]
//	<payload>
//
// Unwrap reduces all of them to the bare payload. Decoders built on top treat
// a missing or null list as "no records" and never fail on shape alone.
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mmcdole/kindred/internal/domain"
)

var null = []byte("null")

// Unwrap returns the payload inside raw. key names the list property of
// keyed wrappers and may be empty.
func Unwrap(raw json.RawMessage, key string) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return raw
	}
	switch trimmed[0] {
	case '[':
		return trimmed
	case '{':
	default:
		return raw
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return raw
	}
	_, hasSuccess := obj["success"]
	if data, hasData := obj["data"]; hasSuccess && hasData {
		return data
	}
	if key != "" {
		if list, ok := obj[key]; ok && isArray(list) {
			return bytes.TrimSpace(list)
		}
	}
	return raw
}

// DecodeList unwraps raw and decodes a list of T. Pagination is read from a
// "pagination" property next to the list; when absent a single page covering
// the whole list is reported.
func DecodeList[T any](raw json.RawMessage, key string) ([]T, domain.Pagination, error) {
	inner := Unwrap(raw, "")
	page, hasPage := pagination(inner)
	if !hasPage {
		page, hasPage = pagination(raw)
	}

	list := Unwrap(inner, key)
	if !isArray(list) {
		// {data: [...], pagination} without a success flag
		list = Unwrap(inner, "data")
	}

	items := []T{}
	if isArray(list) {
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, domain.Pagination{}, fmt.Errorf("decode list: %w", err)
		}
		if items == nil {
			items = []T{}
		}
	}

	if !hasPage {
		page = domain.Pagination{Total: len(items), Page: 1, Limit: len(items), TotalPages: 1}
		if len(items) == 0 {
			page.TotalPages = 0
		}
	}
	return items, page, nil
}

// DecodeOne unwraps raw and decodes a single T. A null payload yields the
// zero value.
func DecodeOne[T any](raw json.RawMessage) (T, error) {
	var out T
	inner := bytes.TrimSpace(Unwrap(raw, ""))
	if len(inner) == 0 || bytes.Equal(inner, null) {
		return out, nil
	}
	if err := json.Unmarshal(inner, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

func pagination(raw json.RawMessage) (domain.Pagination, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.Pagination{}, false
	}
	var wrapper struct {
		Pagination *domain.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil || wrapper.Pagination == nil {
		return domain.Pagination{}, false
	}
	return *wrapper.Pagination, true
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
