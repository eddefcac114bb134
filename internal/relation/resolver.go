package relation

import (
	"context"
	"fmt"
	"sort"

	"github.com/kiltahuone/paperclip/internal/model"
)

// ResolveContext computes the authoritative financial context for one
// focal entity by merging its directly linked financial contributors
// in priority order (manual > receipt > reimbursement > transaction).
//
// The function is pure with respect to graph state: calling it twice
// with no intervening mutation yields identical output. Overrides with
// any field set win unconditionally, even with zero contributors.
func (s *Service) ResolveContext(ctx context.Context, focal model.EntityRef, overrides *model.ContextOverride) (*model.FinancialContext, error) {
	var contributors []*model.FinancialContext

	// Draft entities have no id yet and therefore no edges; resolution
	// falls through to overrides only.
	if !focal.IsZero() {
		links, err := s.LoadRelationships(ctx, focal, model.FinancialTypes, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load contributors for %s: %w", focal, err)
		}

		for _, t := range model.FinancialTypes {
			for _, entity := range links[t].Linked {
				contributors = append(contributors, projectEntity(entity))
			}
		}
	}

	// Stable sort: among equal priorities the earlier-discovered
	// contributor stays the winner.
	sort.SliceStable(contributors, func(i, j int) bool {
		return Priority(contributors[i].ValueSource) > Priority(contributors[j].ValueSource)
	})

	resolved := &model.FinancialContext{}
	if len(contributors) > 0 {
		*resolved = *contributors[0]
	}

	applyOverrides(resolved, overrides)
	return resolved, nil
}

// projectEntity maps a linked record to a provisional context. This is
// the only place each entity type's schema is known to the resolver.
func projectEntity(entity model.Entity) *model.FinancialContext {
	switch e := entity.(type) {
	case *model.Receipt:
		currency := e.Currency
		if currency == "" {
			currency = model.DefaultCurrency
		}
		provisional := &model.FinancialContext{
			TotalAmount: ptr(e.TotalAmount),
			Description: ptr(e.StoreName),
			Currency:    ptr(currency),
			LineItems:   e.ParsedItems(),
			ValueSource: model.SourceReceipt,
		}
		if !e.PurchaseDate.IsZero() {
			provisional.Date = ptr(e.PurchaseDate)
		}
		if e.CreatedBy != "" {
			provisional.PurchaserID = ptr(e.CreatedBy)
		}
		return provisional

	case *model.Reimbursement:
		provisional := &model.FinancialContext{
			TotalAmount: ptr(e.Amount),
			Description: ptr(e.Description),
			Currency:    ptr(model.DefaultCurrency),
			ValueSource: model.SourceReimbursement,
		}
		if !e.CreatedAt.IsZero() {
			provisional.Date = ptr(e.CreatedAt)
		}
		if e.CreatedBy != "" {
			provisional.PurchaserID = ptr(e.CreatedBy)
		}
		return provisional

	case *model.Transaction:
		// Sign preserved: expenses stay negative.
		provisional := &model.FinancialContext{
			TotalAmount: ptr(e.Amount),
			Description: ptr(e.Description),
			Currency:    ptr(model.DefaultCurrency),
			ValueSource: model.SourceTransaction,
		}
		if !e.Date.IsZero() {
			provisional.Date = ptr(e.Date)
		}
		if e.Category != "" {
			provisional.Category = ptr(e.Category)
		}
		return provisional

	default:
		return &model.FinancialContext{}
	}
}

// applyOverrides overlays manual values onto the graph-resolved base.
// Any set field marks the whole context as manually sourced; unset
// fields keep their resolved values.
func applyOverrides(resolved *model.FinancialContext, overrides *model.ContextOverride) {
	if overrides.IsZero() {
		return
	}

	if overrides.Date != nil {
		resolved.Date = overrides.Date
	}
	if overrides.TotalAmount != nil {
		resolved.TotalAmount = overrides.TotalAmount
	}
	if overrides.Description != nil {
		resolved.Description = overrides.Description
	}
	if overrides.Currency != nil {
		resolved.Currency = overrides.Currency
	}
	if overrides.Category != nil {
		resolved.Category = overrides.Category
	}
	if overrides.PurchaserID != nil {
		resolved.PurchaserID = overrides.PurchaserID
	}
	if overrides.LineItems != nil {
		resolved.LineItems = overrides.LineItems
	}

	resolved.ValueSource = model.SourceManual
}

func ptr[T any](v T) *T {
	return &v
}
