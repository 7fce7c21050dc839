package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"socialgraph/backend/internal/graph"
	"socialgraph/backend/internal/network"
	"socialgraph/backend/pkg/config"
	"socialgraph/backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "scripts/example_network.json", "seed file with people and friendships")
	reset := flag.Bool("reset", false, "delete the seeded people from Neo4j before projecting")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...", zap.String("file", *file))

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("Failed to open seed file", zap.Error(err))
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	g := network.New(logger.Get())
	if err := loadSeed(ctx, f, g); err != nil {
		log.Fatal("Failed to load seed file", zap.Error(err))
	}
	snap := g.Snapshot(ctx)

	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	repo := graph.NewRepository(driver, cfg.ProjectionWorkers)
	defer repo.Close()

	// Create constraints
	log.Info("Creating constraints...")
	if err := repo.EnsureConstraints(ctx); err != nil {
		log.Warn("Failed to create constraints (may already exist)", zap.Error(err))
	}

	names := make([]string, 0, len(snap.People))
	for _, p := range snap.People {
		names = append(names, p.Name)
	}

	if *reset {
		log.Info("Deleting existing people", zap.Int("count", len(names)))
		if err := repo.DeletePeople(ctx, names); err != nil {
			log.Fatal("Failed to delete people", zap.Error(err))
		}
	}

	stats, err := repo.ProjectSnapshot(ctx, snap)
	if err != nil {
		log.Fatal("Failed to project seed network", zap.Error(err))
	}

	count, err := repo.CountPeople(ctx, names)
	if err != nil {
		log.Fatal("Failed to verify seeded people", zap.Error(err))
	}

	log.Info("Seeding completed successfully",
		zap.Int("people", stats.People),
		zap.Int("friendships", stats.Friendships),
		zap.Int("people_in_neo4j", count),
		zap.Duration("duration", stats.Duration),
	)
}

// loadSeed reads a snapshot-shaped JSON document and replays it through the
// graph's own operations, so seed files get the same validation as live input
func loadSeed(ctx context.Context, r io.Reader, g *network.SocialGraph) error {
	var seed network.Snapshot
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("failed to decode seed: %w", err)
	}

	for _, p := range seed.People {
		if err := g.AddPerson(ctx, p.Name, p.Attributes); err != nil {
			return err
		}
	}
	for _, f := range seed.Friendships {
		if err := g.AddFriendship(ctx, f.A, f.B); err != nil {
			return err
		}
	}
	return nil
}
