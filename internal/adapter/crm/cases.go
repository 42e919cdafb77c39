package crm

import (
	"context"
	"net/http"

	"github.com/mmcdole/kindred/internal/domain"
)

func (c *Client) ListCases(ctx context.Context, q domain.ListQuery) ([]domain.Case, domain.Pagination, error) {
	return getList[domain.Case](ctx, c, "/api/cases", q.Values(), "cases")
}

func (c *Client) GetCase(ctx context.Context, id string) (domain.Case, error) {
	if err := requireID("case", id); err != nil {
		return domain.Case{}, err
	}
	return call[domain.Case](ctx, c, http.MethodGet, escape("/api/cases/%s", id), nil)
}

func (c *Client) CreateCase(ctx context.Context, cs domain.Case) (domain.Case, error) {
	return call[domain.Case](ctx, c, http.MethodPost, "/api/cases", cs)
}

func (c *Client) UpdateCase(ctx context.Context, cs domain.Case) (domain.Case, error) {
	if err := requireID("case", cs.ID); err != nil {
		return domain.Case{}, err
	}
	return call[domain.Case](ctx, c, http.MethodPut, escape("/api/cases/%s", cs.ID), cs)
}

// UpdateCaseStatus moves a case to status
func (c *Client) UpdateCaseStatus(ctx context.Context, id, status string) (domain.Case, error) {
	if err := requireID("case", id); err != nil {
		return domain.Case{}, err
	}
	body := map[string]string{"status": status}
	return call[domain.Case](ctx, c, http.MethodPatch, escape("/api/cases/%s/status", id), body)
}

func (c *Client) DeleteCase(ctx context.Context, id string) error {
	if err := requireID("case", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/cases/%s", id), nil)
}

func (c *Client) ListCaseNotes(ctx context.Context, caseID string) ([]domain.CaseNote, error) {
	return getAll[domain.CaseNote](ctx, c, escape("/api/cases/%s/notes", caseID), "notes")
}

func (c *Client) CreateCaseNote(ctx context.Context, n domain.CaseNote) (domain.CaseNote, error) {
	if err := requireID("case", n.CaseID); err != nil {
		return domain.CaseNote{}, err
	}
	return call[domain.CaseNote](ctx, c, http.MethodPost, escape("/api/cases/%s/notes", n.CaseID), n)
}

func (c *Client) DeleteCaseNote(ctx context.Context, caseID, noteID string) error {
	if err := requireID("note", noteID); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/cases/%s/notes/%s", caseID, noteID), nil)
}

// Outcome definitions

func (c *Client) ListOutcomes(ctx context.Context) ([]domain.OutcomeDefinition, error) {
	return getAll[domain.OutcomeDefinition](ctx, c, "/api/admin/outcomes", "outcomes")
}

func (c *Client) CreateOutcome(ctx context.Context, o domain.OutcomeDefinition) (domain.OutcomeDefinition, error) {
	return call[domain.OutcomeDefinition](ctx, c, http.MethodPost, "/api/admin/outcomes", o)
}

func (c *Client) UpdateOutcome(ctx context.Context, o domain.OutcomeDefinition) (domain.OutcomeDefinition, error) {
	if err := requireID("outcome", o.ID); err != nil {
		return domain.OutcomeDefinition{}, err
	}
	return call[domain.OutcomeDefinition](ctx, c, http.MethodPut, escape("/api/admin/outcomes/%s", o.ID), o)
}

func (c *Client) DeleteOutcome(ctx context.Context, id string) error {
	if err := requireID("outcome", id); err != nil {
		return err
	}
	return c.send(ctx, http.MethodDelete, escape("/api/admin/outcomes/%s", id), nil)
}

// ReorderOutcomes sends the desired order and returns the list as the server
// stored it
func (c *Client) ReorderOutcomes(ctx context.Context, orderedIDs []string) ([]domain.OutcomeDefinition, error) {
	body := map[string][]string{"ordered_ids": orderedIDs}
	respBody, err := c.doRequest(ctx, http.MethodPut, "/api/admin/outcomes/reorder", nil, body)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.OutcomeDefinition](c, respBody, "outcomes")
}
