// Package outcomes manages the admin-defined case outcome definitions.
//
// Outcomes are displayed by sort_order, ties broken by name. A created
// outcome is inserted in that order locally; a reorder takes the server's
// returned list as-is.
package outcomes

import (
	"cmp"
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/kindred/internal/collection"
	"github.com/mmcdole/kindred/internal/domain"
	"github.com/mmcdole/kindred/internal/slice"
)

// Service orchestrates outcome client calls and outcome state.
type Service struct {
	client   domain.OutcomeClient
	outcomes *slice.Slice[domain.OutcomeDefinition, string]
	logger   *slog.Logger
}

// NewService creates a new outcomes service.
func NewService(client domain.OutcomeClient, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:   client,
		outcomes: slice.New[domain.OutcomeDefinition, string]("outcomes", outcomeKey, logger, slice.SortedBy[domain.OutcomeDefinition, string](DisplayOrder)),
		logger:   logger,
	}
}

func outcomeKey(o domain.OutcomeDefinition) string { return o.ID }

// DisplayOrder compares outcomes by sort_order, then name
func DisplayOrder(a, b domain.OutcomeDefinition) int {
	return cmp.Or(
		cmp.Compare(a.SortOrder, b.SortOrder),
		strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
	)
}

// Outcomes returns the outcome list state
func (s *Service) Outcomes() *slice.Slice[domain.OutcomeDefinition, string] { return s.outcomes }

func (s *Service) FetchOutcomes(ctx context.Context) error {
	return s.outcomes.Fetch(ctx, "Failed to fetch outcomes", slice.Unpaged(s.client.ListOutcomes))
}

func (s *Service) CreateOutcome(ctx context.Context, o domain.OutcomeDefinition) (domain.OutcomeDefinition, error) {
	return s.outcomes.Create(ctx, "Failed to create outcome", func(ctx context.Context) (domain.OutcomeDefinition, error) {
		return s.client.CreateOutcome(ctx, o)
	})
}

func (s *Service) UpdateOutcome(ctx context.Context, o domain.OutcomeDefinition) (domain.OutcomeDefinition, error) {
	return s.outcomes.Update(ctx, o.ID, "Failed to update outcome", func(ctx context.Context) (domain.OutcomeDefinition, error) {
		return s.client.UpdateOutcome(ctx, o)
	})
}

func (s *Service) DeleteOutcome(ctx context.Context, id string) error {
	return s.outcomes.Delete(ctx, id, "Failed to delete outcome", func(ctx context.Context) error {
		return s.client.DeleteOutcome(ctx, id)
	})
}

// Reorder sends orderedIDs and replaces the list with the server's result
func (s *Service) Reorder(ctx context.Context, orderedIDs []string) error {
	var reordered []domain.OutcomeDefinition
	return s.outcomes.Do(ctx, "reorder outcomes", "Failed to reorder outcomes",
		func(ctx context.Context) error {
			var err error
			reordered, err = s.client.ReorderOutcomes(ctx, orderedIDs)
			return err
		},
		func(c *collection.Collection[domain.OutcomeDefinition, string]) {
			page := domain.Pagination{Total: len(reordered), Page: 1, Limit: len(reordered)}
			if len(reordered) > 0 {
				page.TotalPages = 1
			}
			c.Replace(reordered, page)
		})
}

// Active returns the loaded outcomes that can still be assigned to cases
func (s *Service) Active() []domain.OutcomeDefinition {
	var out []domain.OutcomeDefinition
	for _, o := range s.outcomes.Items() {
		if o.IsActive {
			out = append(out, o)
		}
	}
	return out
}
