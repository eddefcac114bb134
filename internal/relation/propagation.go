package relation

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/kiltahuone/paperclip/internal/model"
)

// PropagateFromSource recomputes context after a link or unlink
// involving source, and writes the resolved fields into every directly
// linked financial neighbor that source outranks. Propagation stops at
// one hop: a neighbor's own neighbors are never revisited.
func (s *Service) PropagateFromSource(ctx context.Context, source model.EntityRef) error {
	return s.PropagateContext(ctx, source, nil)
}

// PropagateContext is PropagateFromSource with a pre-resolved outward
// context, for callers that already computed one (e.g. with manual
// overrides applied). A nil context is computed once on demand.
func (s *Service) PropagateContext(ctx context.Context, source model.EntityRef, outward *model.FinancialContext) error {
	sourceTier := SourceOf(source.Type)
	if Priority(sourceTier) == 0 {
		// Non-financial entities never push values into neighbors.
		return nil
	}

	links, err := s.LoadRelationships(ctx, source, model.FinancialTypes, nil)
	if err != nil {
		return fmt.Errorf("failed to load neighbors of %s: %w", source, err)
	}

	for _, t := range model.FinancialTypes {
		for _, neighbor := range links[t].Linked {
			ref := neighbor.Ref()
			if !ShouldOverride(sourceTier, SourceOf(ref.Type)) {
				slog.Debug("Skipping propagation to equal or higher priority neighbor",
					"source", source.String(), "neighbor", ref.String())
				continue
			}

			if outward == nil {
				outward, err = s.outwardContext(ctx, source)
				if err != nil {
					return err
				}
			}

			update := buildUpdate(outward, neighbor)
			if update.IsZero() {
				continue
			}

			if err := s.storage.ApplyContext(ctx, ref, update); err != nil {
				return fmt.Errorf("failed to propagate context to %s: %w", ref, err)
			}

			slog.Info("Propagated context",
				"source", source.String(),
				"neighbor", ref.String(),
				"value_source", string(outward.ValueSource))
		}
	}

	return nil
}

// outwardContext is the context that flows from source into its
// neighbors: the source's own projected values, superseded only by a
// linked contributor that strictly outranks the source's tier. A
// receipt therefore pushes its own OCR values even though its resolved
// view (contributors only) would report the linked transaction.
func (s *Service) outwardContext(ctx context.Context, source model.EntityRef) (*model.FinancialContext, error) {
	entity, err := s.storage.GetEntity(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load propagation source %s: %w", source, err)
	}
	self := projectEntity(entity)

	resolved, err := s.ResolveContext(ctx, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve context of %s: %w", source, err)
	}

	if Priority(resolved.ValueSource) > Priority(self.ValueSource) {
		return resolved, nil
	}
	return self, nil
}

// buildUpdate converts an outward context into the partial write-back
// for one neighbor, applying the neighbor type's sign convention.
func buildUpdate(outward *model.FinancialContext, neighbor model.Entity) model.ContextUpdate {
	update := model.ContextUpdate{
		Date:        outward.Date,
		Description: outward.Description,
		Category:    outward.Category,
	}

	if outward.TotalAmount == nil {
		return update
	}
	amount := *outward.TotalAmount

	switch e := neighbor.(type) {
	case *model.Transaction:
		// Transactions carry signed amounts. Keep the direction the row
		// already has; a zero amount defaults to expense.
		if e.Amount > 0 {
			amount = math.Abs(amount)
		} else {
			amount = -math.Abs(amount)
		}
	case *model.Reimbursement:
		amount = math.Abs(amount)
	}

	update.Amount = &amount
	return update
}
