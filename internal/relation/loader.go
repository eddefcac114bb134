package relation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/model"
	"github.com/kiltahuone/paperclip/internal/service"
)

// Service is the relationship graph engine. It owns no state beyond
// its injected storage collaborator; every operation is a plain
// request/response computation.
type Service struct {
	storage service.Storage
}

// New creates a new relation service backed by the given storage.
func New(storage service.Storage) *Service {
	return &Service{storage: storage}
}

// TypeLinks holds, for one requested target type, the records linked
// to the focal entity and the not-yet-linked candidates.
type TypeLinks struct {
	Linked    []model.Entity
	Available []model.Entity
}

// LoadRelationships returns, per requested target type, the entities
// directly linked to focal. Only one-hop edges are considered: a chain
// A-B-C never makes C appear linked to A.
//
// When candidates supplies a set for a target type, Available is that
// set minus the linked ids; with no candidate set, Available is empty.
func (s *Service) LoadRelationships(ctx context.Context, focal model.EntityRef, targetTypes []model.EntityType, candidates map[model.EntityType][]model.Entity) (map[model.EntityType]*TypeLinks, error) {
	result := make(map[model.EntityType]*TypeLinks, len(targetTypes))
	for _, t := range targetTypes {
		result[t] = &TypeLinks{}
	}

	relationships, err := s.storage.GetRelationshipsFor(ctx, focal)
	if err != nil {
		return nil, fmt.Errorf("failed to load relationships for %s: %w", focal, err)
	}

	for i := range relationships {
		// The focal entity may occupy either slot; the other endpoint is
		// always the opposite one.
		other, ok := relationships[i].Other(focal)
		if !ok {
			continue
		}

		links, wanted := result[other.Type]
		if !wanted {
			continue
		}

		entity, err := s.storage.GetEntity(ctx, other)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				// Dangling edge: the linked record was deleted out from
				// under the relationship row.
				slog.Warn("Skipping dangling relationship",
					"relationship_id", relationships[i].ID,
					"endpoint", other.String())
				continue
			}
			return nil, fmt.Errorf("failed to resolve linked entity %s: %w", other, err)
		}

		links.Linked = append(links.Linked, entity)
	}

	for t, pool := range candidates {
		links, wanted := result[t]
		if !wanted {
			continue
		}

		linkedIDs := make(map[string]bool, len(links.Linked))
		for _, entity := range links.Linked {
			linkedIDs[entity.Ref().ID] = true
		}

		for _, candidate := range pool {
			if !linkedIDs[candidate.Ref().ID] {
				links.Available = append(links.Available, candidate)
			}
		}
	}

	return result, nil
}

// Link creates a relationship between two entities. A duplicate link
// is reported via common.ErrDuplicateLink; callers racing each other
// should treat that as "already linked" rather than a failure.
func (s *Service) Link(ctx context.Context, a, b model.EntityRef, metadata, createdBy string) (*model.Relationship, error) {
	rel, err := s.storage.CreateRelationship(ctx, a, b, metadata, createdBy)
	if err != nil {
		return nil, err
	}

	slog.Info("Linked entities", "a", a.String(), "b", b.String(), "relationship_id", rel.ID)
	return rel, nil
}

// Unlink deletes a relationship by id.
func (s *Service) Unlink(ctx context.Context, relationshipID string) error {
	if err := s.storage.DeleteRelationship(ctx, relationshipID); err != nil {
		return err
	}

	slog.Info("Unlinked entities", "relationship_id", relationshipID)
	return nil
}

// LinkExists reports whether the unordered pair is already linked.
func (s *Service) LinkExists(ctx context.Context, a, b model.EntityRef) (bool, error) {
	return s.storage.RelationshipExists(ctx, a, b)
}
