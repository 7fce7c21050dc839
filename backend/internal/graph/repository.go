package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"socialgraph/backend/internal/constants"
	"socialgraph/backend/internal/network"
	apperrors "socialgraph/backend/pkg/errors"
	"socialgraph/backend/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Repository mirrors snapshots of the in-memory social graph into Neo4j.
// Writes only go one way; nothing is ever read back into the network package.
type Repository struct {
	driver  neo4j.DriverWithContext
	logger  *zap.Logger
	workers int
}

// ProjectionStats summarises one ProjectSnapshot call
type ProjectionStats struct {
	People      int           `json:"people"`
	Friendships int           `json:"friendships"`
	Duration    time.Duration `json:"duration"`
}

// NewRepository creates a new graph repository. workers bounds concurrent person writes.
func NewRepository(driver neo4j.DriverWithContext, workers int) *Repository {
	if workers < 1 {
		workers = constants.DefaultProjectionWorkers
	}
	return &Repository{
		driver:  driver,
		logger:  logger.Named("projection"),
		workers: workers,
	}
}

// Connect opens a driver for uri and verifies it can reach the server
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	return driver, nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// EnsureConstraints creates the uniqueness constraint on person names
func (r *Repository) EnsureConstraints(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := fmt.Sprintf(
		"CREATE CONSTRAINT person_name_unique IF NOT EXISTS FOR (p:%s) REQUIRE p.name IS UNIQUE",
		constants.PersonLabel,
	)
	if err := run(ctx, session, query, nil); err != nil {
		return fmt.Errorf("failed to create constraints: %w", err)
	}
	return nil
}

// ProjectSnapshot writes every person and then every friendship in snap.
// Person nodes are merged concurrently; friendships go in one batch once all
// endpoints exist.
func (r *Repository) ProjectSnapshot(ctx context.Context, snap network.Snapshot) (*ProjectionStats, error) {
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, p := range snap.People {
		p := p
		g.Go(func() error {
			return r.UpsertPerson(gctx, p)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := r.MergeFriendships(ctx, snap.Friendships); err != nil {
		return nil, err
	}

	stats := &ProjectionStats{
		People:      len(snap.People),
		Friendships: len(snap.Friendships),
		Duration:    time.Since(start),
	}
	r.logger.Info("Snapshot projected",
		zap.Int("people", stats.People),
		zap.Int("friendships", stats.Friendships),
		zap.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// run executes query and drains the result so server-side errors surface here
func run(ctx context.Context, session neo4j.SessionWithContext, query string, params map[string]interface{}) error {
	result, err := session.Run(ctx, query, params)
	if err != nil {
		return apperrors.NewGraphQueryFailed(query, err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return apperrors.NewGraphQueryFailed(query, err)
	}
	return nil
}
