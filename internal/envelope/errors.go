package envelope

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// APIError is the structured error the API may return with a 4xx/5xx status
type APIError struct {
	Message string
	Code    string
	Fields  map[string]string
}

// ParseError extracts a structured error from a response body. It accepts
//
//	{"error": {"message": "...", "code": "...", "details": {...}}}
//	{"success": false, "error": "..."}
//	{"message": "...", "errors": {"field": ["..."]}}
//
// ok is false when the body carries no recognizable message or fields.
func ParseError(body []byte) (APIError, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return APIError{}, false
	}

	var out APIError
	if raw, ok := obj["error"]; ok {
		var text string
		if json.Unmarshal(raw, &text) == nil {
			out.Message = text
		} else {
			var nested struct {
				Message string          `json:"message"`
				Code    string          `json:"code"`
				Details json.RawMessage `json:"details"`
			}
			if json.Unmarshal(raw, &nested) == nil {
				out.Message = nested.Message
				out.Code = nested.Code
				out.Fields = parseFields(nested.Details)
			}
		}
	}
	if out.Message == "" {
		if raw, ok := obj["message"]; ok {
			_ = json.Unmarshal(raw, &out.Message)
		}
	}
	if out.Fields == nil {
		if raw, ok := obj["errors"]; ok {
			out.Fields = parseFields(raw)
		}
	}

	out.Message = strings.TrimSpace(out.Message)
	if out.Message == "" && len(out.Fields) > 0 {
		out.Message = summarizeFields(out.Fields)
	}
	return out, out.Message != "" || len(out.Fields) > 0
}

// parseFields accepts {"field": "msg"}, {"field": ["msg", ...]} or
// [{"field": "...", "message": "..."}].
func parseFields(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	fields := map[string]string{}

	var byName map[string]json.RawMessage
	if json.Unmarshal(raw, &byName) == nil {
		for name, v := range byName {
			var text string
			if json.Unmarshal(v, &text) == nil {
				fields[name] = text
				continue
			}
			var list []string
			if json.Unmarshal(v, &list) == nil && len(list) > 0 {
				fields[name] = strings.Join(list, "; ")
			}
		}
	} else {
		var list []struct {
			Field   string `json:"field"`
			Path    string `json:"path"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &list) == nil {
			for _, item := range list {
				name := item.Field
				if name == "" {
					name = item.Path
				}
				if name != "" && item.Message != "" {
					fields[name] = item.Message
				}
			}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func summarizeFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, fields[name]))
	}
	return strings.Join(parts, ", ")
}

// ErrorMessage returns the message ParseError finds in body, or ""
func ErrorMessage(body []byte) string {
	apiErr, _ := ParseError(body)
	return apiErr.Message
}
