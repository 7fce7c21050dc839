package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/network"
)

// ============================================================================
// Friendship Operations
// ============================================================================

// MergeFriendships writes each friendship once as a FRIENDS_WITH relationship.
// Neo4j stores relationships with a direction; queries here ignore it.
func (r *Repository) MergeFriendships(ctx context.Context, friendships []network.Friendship) error {
	if len(friendships) == 0 {
		return nil
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	now := time.Now().UTC().Format(time.RFC3339)

	pairs := make([]map[string]interface{}, 0, len(friendships))
	for _, f := range friendships {
		pairs = append(pairs, map[string]interface{}{"a": f.A, "b": f.B})
	}

	query := fmt.Sprintf(`
		UNWIND $pairs AS pair
		MATCH (a:%[1]s {name: pair.a})
		MATCH (b:%[1]s {name: pair.b})
		MERGE (a)-[f:%[2]s]-(b)
		ON CREATE SET f.since = datetime($now)
	`, constants.PersonLabel, constants.FriendshipType)

	err := run(ctx, session, query, map[string]interface{}{
		"pairs": pairs,
		"now":   now,
	})
	if err != nil {
		return fmt.Errorf("failed to merge friendships: %w", err)
	}

	return nil
}

// ShortestPathLength asks Neo4j for the hop count between a and b over
// FRIENDS_WITH. It returns 0 for a == b and -1 when there is no path or
// either node is missing, matching network.SocialGraph.DegreeOfSeparation.
func (r *Repository) ShortestPathLength(ctx context.Context, a, b string) (int, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	// shortestPath rejects identical endpoints, so that case only checks existence
	query := fmt.Sprintf(`
		MATCH (a:%[1]s {name: $a}), (b:%[1]s {name: $b})
		OPTIONAL MATCH p = shortestPath((a)-[:%[2]s*]-(b))
		RETURN CASE WHEN p IS NULL THEN -1 ELSE length(p) END as hops
	`, constants.PersonLabel, constants.FriendshipType)
	if a == b {
		query = fmt.Sprintf(`
			MATCH (a:%s {name: $a})
			RETURN 0 as hops
		`, constants.PersonLabel)
	}

	result, err := session.Run(ctx, query, map[string]interface{}{
		"a": a,
		"b": b,
	})
	if err != nil {
		return constants.NoSeparation, fmt.Errorf("failed to query shortest path: %w", err)
	}

	if result.Next(ctx) {
		return getIntFromRecord(result.Record(), "hops"), nil
	}
	if err := result.Err(); err != nil {
		return constants.NoSeparation, fmt.Errorf("failed to read shortest path: %w", err)
	}
	return constants.NoSeparation, nil
}
