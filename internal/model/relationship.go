package model

import "time"

// Relationship is a stored edge between two entities. The A/B slot
// assignment is fixed at creation time but carries no semantic
// direction: the unordered pair {(AType,AID), (BType,BID)} is unique,
// and callers must never assume which slot an entity occupies.
type Relationship struct {
	CreatedAt time.Time
	ID        string
	AType     EntityType
	AID       string
	BType     EntityType
	BID       string
	Metadata  string
	CreatedBy string
}

// Touches reports whether ref occupies either slot of the edge.
func (r *Relationship) Touches(ref EntityRef) bool {
	return (r.AType == ref.Type && r.AID == ref.ID) ||
		(r.BType == ref.Type && r.BID == ref.ID)
}

// Other returns the endpoint opposite to ref. The second return value
// is false when ref occupies neither slot. Extraction is symmetric:
// the result is identical no matter which slot ref was stored in.
func (r *Relationship) Other(ref EntityRef) (EntityRef, bool) {
	if r.AType == ref.Type && r.AID == ref.ID {
		return EntityRef{Type: r.BType, ID: r.BID}, true
	}
	if r.BType == ref.Type && r.BID == ref.ID {
		return EntityRef{Type: r.AType, ID: r.AID}, true
	}
	return EntityRef{}, false
}
