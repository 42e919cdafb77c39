package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nalgeon/be"
)

func TestMessagePrefersAPIMessage(t *testing.T) {
	err := &Error{Kind: KindValidation, Status: 422, Message: "Email is already in use"}
	be.Equal(t, Message(err, "Failed to create contact"), "Email is already in use")

	wrapped := fmt.Errorf("create contact: %w", err)
	be.Equal(t, Message(wrapped, "Failed to create contact"), "Email is already in use")
}

func TestMessageFallsBackToErrorTextThenFallback(t *testing.T) {
	be.Equal(t, Message(errors.New("dial tcp: refused"), "Failed to fetch contacts"), "dial tcp: refused")
	be.Equal(t, Message(nil, "Failed to fetch contacts"), "Failed to fetch contacts")
	be.Equal(t, Message(errors.New("   "), "Failed to fetch contacts"), "Failed to fetch contacts")
}

func TestErrorMatchesSentinels(t *testing.T) {
	err := fmt.Errorf("get case: %w", &Error{Kind: KindNotFound, Status: 404})
	be.True(t, errors.Is(err, ErrNotFound))
	be.True(t, !errors.Is(err, ErrOffline))
	be.Equal(t, KindOf(err), KindNotFound)

	be.Equal(t, KindOf(ErrOffline), KindNetwork)
	be.Equal(t, KindOf(errors.New("boom")), KindUnknown)
	be.Equal(t, KindValidation.String(), "validation")
}

func TestListQueryValues(t *testing.T) {
	q := ListQuery{Page: 2, Limit: 25, Search: "  ada ", Filters: map[string]string{"status": "open", "empty": " "}}
	v := q.Values()
	be.Equal(t, v.Get("page"), "2")
	be.Equal(t, v.Get("limit"), "25")
	be.Equal(t, v.Get("search"), "ada")
	be.Equal(t, v.Get("status"), "open")
	be.True(t, !v.Has("empty"))
	be.True(t, !v.Has("sort_by"))
}
