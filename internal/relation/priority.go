// Package relation implements the entity relationship graph engine:
// one-hop link loading, financial context resolution, and context
// propagation between linked entities.
package relation

import "github.com/kiltahuone/paperclip/internal/model"

// Priority returns the resolution rank of a value source. Manual edits
// outrank every graph contributor; non-financial sources never
// contribute and rank zero.
func Priority(source model.ValueSource) int {
	switch source {
	case model.SourceManual:
		return 4
	case model.SourceReceipt:
		return 3
	case model.SourceReimbursement:
		return 2
	case model.SourceTransaction:
		return 1
	default:
		return 0
	}
}

// SourceOf maps an entity type to its value source tier.
func SourceOf(t model.EntityType) model.ValueSource {
	switch t {
	case model.EntityReceipt:
		return model.SourceReceipt
	case model.EntityReimbursement:
		return model.SourceReimbursement
	case model.EntityTransaction:
		return model.SourceTransaction
	default:
		return model.SourceNone
	}
}

// ShouldOverride reports whether values from source may overwrite the
// stored fields of target. Equal tiers never overwrite each other.
func ShouldOverride(source, target model.ValueSource) bool {
	return Priority(source) > Priority(target)
}
