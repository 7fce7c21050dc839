package graph

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"socialgraph/backend/internal/network"
	"go.uber.org/zap"
)

func TestPrefixedAttributes(t *testing.T) {
	got := prefixedAttributes(network.Attributes{
		"age":    network.Int(30),
		"name":   network.String("shadow"),
		"active": network.Bool(true),
	})
	assert.Equal(t, map[string]interface{}{
		"attr_age":    30.0,
		"attr_name":   "shadow",
		"attr_active": true,
	}, got)
}

func TestAttributesJSON(t *testing.T) {
	got, err := attributesJSON(network.Attributes{"occupation": network.String("Engineer")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"occupation":"Engineer"}`, got)

	_, err = attributesJSON(network.Attributes{"broken": network.Value{}})
	assert.Error(t, err)
}

// TestRepository requires a running Neo4j instance
// Set NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD environment variables
func TestRepository_ProjectSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Skipf("Neo4j not reachable: %v", err)
	}
	defer driver.Close(ctx)

	repo := NewRepository(driver, 2)
	suffix := "-" + time.Now().Format("20060102150405")
	names := []string{"Alice" + suffix, "Bob" + suffix, "Charlie" + suffix, "David" + suffix, "Matthew" + suffix, "Hermit" + suffix}

	// Clean up
	defer func() {
		_ = repo.DeletePeople(ctx, names)
	}()

	g := network.New(zap.NewNop())
	for _, name := range names {
		require.NoError(t, g.AddPerson(ctx, name, network.Attributes{"age": network.Int(30)}))
	}
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {4, 3}}
	for _, e := range edges {
		require.NoError(t, g.AddFriendship(ctx, names[e[0]], names[e[1]]))
	}

	require.NoError(t, repo.EnsureConstraints(ctx))
	stats, err := repo.ProjectSnapshot(ctx, g.Snapshot(ctx))
	require.NoError(t, err)
	assert.Equal(t, len(names), stats.People)
	assert.Equal(t, len(edges), stats.Friendships)

	// Projecting twice must not duplicate anything
	_, err = repo.ProjectSnapshot(ctx, g.Snapshot(ctx))
	require.NoError(t, err)

	count, err := repo.CountPeople(ctx, names)
	require.NoError(t, err)
	assert.Equal(t, len(names), count)

	for _, a := range names {
		for _, b := range names {
			hops, err := repo.ShortestPathLength(ctx, a, b)
			require.NoError(t, err)
			assert.Equal(t, g.DegreeOfSeparation(ctx, a, b), hops, "%s -> %s", a, b)
		}
	}

	hops, err := repo.ShortestPathLength(ctx, names[0], "nobody"+suffix)
	require.NoError(t, err)
	assert.Equal(t, -1, hops)
}

func createTestDriver() (neo4j.DriverWithContext, error) {
	uri := getenv("NEO4J_URI", "bolt://localhost:7687")
	user := getenv("NEO4J_USER", "neo4j")
	password := getenv("NEO4J_PASSWORD", "password")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return Connect(ctx, uri, user, password)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
