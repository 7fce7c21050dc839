package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"socialgraph/backend/internal/network"
)

// ============================================================================
// Person Operations
// ============================================================================

// UpsertPerson merges a Person node keyed by name. Attributes are merged onto
// the node, so keys never written again keep their last projected value.
func (r *Repository) UpsertPerson(ctx context.Context, p network.PersonView) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MERGE (p:Person {name: $name})
		ON CREATE SET
			p.id = $id,
			p.created_at = datetime($createdAt)
		SET p.attributes_json = $attributesJSON,
		    p.updated_at = datetime($updatedAt),
		    p += $attributes
	`

	attrsJSON, err := attributesJSON(p.Attributes)
	if err != nil {
		return err
	}

	err = run(ctx, session, query, map[string]interface{}{
		"name":           p.Name,
		"id":             p.ID,
		"createdAt":      p.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":      p.UpdatedAt.UTC().Format(time.RFC3339),
		"attributesJSON": attrsJSON,
		"attributes":     prefixedAttributes(p.Attributes),
	})
	if err != nil {
		return fmt.Errorf("failed to upsert person %s: %w", p.Name, err)
	}

	return nil
}

// CountPeople returns how many Person nodes exist with the given names
func (r *Repository) CountPeople(ctx context.Context, names []string) (int, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Person)
		WHERE p.name IN $names
		RETURN count(p) as people
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"names": names,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count people: %w", err)
	}

	if result.Next(ctx) {
		return getIntFromRecord(result.Record(), "people"), nil
	}
	return 0, result.Err()
}

// DeletePeople detaches and deletes the named Person nodes
func (r *Repository) DeletePeople(ctx context.Context, names []string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (p:Person)
		WHERE p.name IN $names
		DETACH DELETE p
	`
	if err := run(ctx, session, query, map[string]interface{}{"names": names}); err != nil {
		return fmt.Errorf("failed to delete people: %w", err)
	}
	return nil
}
