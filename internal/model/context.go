package model

import "time"

// DefaultCurrency is assumed when a contributing entity supplies none.
const DefaultCurrency = "EUR"

// ValueSource names the contributor that determined a resolved
// context's values. The zero value means no contributor exists.
type ValueSource string

// Value source tiers, lowest to highest priority.
const (
	SourceNone          ValueSource = ""
	SourceTransaction   ValueSource = "transaction"
	SourceReimbursement ValueSource = "reimbursement"
	SourceReceipt       ValueSource = "receipt"
	SourceManual        ValueSource = "manual"
)

// LineItem is a single itemized row carried by a winning source,
// typically OCR-extracted receipt items.
type LineItem struct {
	Name         string  `json:"name"`
	SourceItemID string  `json:"source_item_id,omitempty"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
}

// FinancialContext is the resolved view of one focal entity, derived by
// merging values from its directly linked financial entities. It is
// computed on demand and never persisted.
type FinancialContext struct {
	Date        *time.Time
	TotalAmount *float64
	Description *string
	Currency    *string
	Category    *string
	PurchaserID *string
	LineItems   []LineItem
	ValueSource ValueSource
}

// ContextOverride carries caller-supplied manual values. A non-nil
// field overlays the graph-resolved base; any set field forces the
// resolved ValueSource to SourceManual.
type ContextOverride struct {
	Date        *time.Time
	TotalAmount *float64
	Description *string
	Currency    *string
	Category    *string
	PurchaserID *string
	LineItems   []LineItem
}

// IsZero reports whether no override field is set.
func (o *ContextOverride) IsZero() bool {
	if o == nil {
		return true
	}
	return o.Date == nil && o.TotalAmount == nil && o.Description == nil &&
		o.Currency == nil && o.Category == nil && o.PurchaserID == nil &&
		o.LineItems == nil
}

// ContextUpdate is the partial write-back applied to a neighbor's own
// record during propagation. Nil fields are left untouched.
type ContextUpdate struct {
	Date        *time.Time
	Amount      *float64
	Description *string
	Category    *string
}

// IsZero reports whether the update would change nothing.
func (u *ContextUpdate) IsZero() bool {
	if u == nil {
		return true
	}
	return u.Date == nil && u.Amount == nil && u.Description == nil && u.Category == nil
}
