package relation

import (
	"testing"

	"github.com/kiltahuone/paperclip/internal/model"
)

func TestPriority_Ordering(t *testing.T) {
	tests := []struct {
		name   string
		higher model.ValueSource
		lower  model.ValueSource
	}{
		{name: "manual beats receipt", higher: model.SourceManual, lower: model.SourceReceipt},
		{name: "receipt beats reimbursement", higher: model.SourceReceipt, lower: model.SourceReimbursement},
		{name: "reimbursement beats transaction", higher: model.SourceReimbursement, lower: model.SourceTransaction},
		{name: "transaction beats none", higher: model.SourceTransaction, lower: model.SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Priority(tt.higher) <= Priority(tt.lower) {
				t.Errorf("Priority(%q) = %d, want > Priority(%q) = %d",
					tt.higher, Priority(tt.higher), tt.lower, Priority(tt.lower))
			}
		})
	}
}

func TestShouldOverride_Totality(t *testing.T) {
	financial := []model.ValueSource{
		model.SourceReceipt,
		model.SourceReimbursement,
		model.SourceTransaction,
	}

	// Exactly one of override(x,y), override(y,x) holds for distinct
	// tiers; neither holds for equal tiers.
	for _, x := range financial {
		for _, y := range financial {
			xy := ShouldOverride(x, y)
			yx := ShouldOverride(y, x)

			if x == y {
				if xy || yx {
					t.Errorf("ShouldOverride(%q, %q): equal tiers must never override", x, y)
				}
				continue
			}
			if xy == yx {
				t.Errorf("ShouldOverride(%q, %q) = %v and ShouldOverride(%q, %q) = %v, want exactly one",
					x, y, xy, y, x, yx)
			}
		}
	}
}

func TestShouldOverride_ManualBeatsEveryFinancialTier(t *testing.T) {
	for _, source := range []model.ValueSource{
		model.SourceReceipt,
		model.SourceReimbursement,
		model.SourceTransaction,
	} {
		if !ShouldOverride(model.SourceManual, source) {
			t.Errorf("ShouldOverride(manual, %q) = false, want true", source)
		}
		if ShouldOverride(source, model.SourceManual) {
			t.Errorf("ShouldOverride(%q, manual) = true, want false", source)
		}
	}
}

func TestSourceOf_NonFinancialTypesRankZero(t *testing.T) {
	for _, entityType := range []model.EntityType{
		model.EntityInventory,
		model.EntityBudget,
		model.EntityFAQ,
		model.EntityNews,
		model.EntityMail,
		model.EntitySubmission,
	} {
		if got := Priority(SourceOf(entityType)); got != 0 {
			t.Errorf("Priority(SourceOf(%q)) = %d, want 0", entityType, got)
		}
	}
}
