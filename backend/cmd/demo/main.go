package main

import (
	"context"
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

var pairs = [][2]string{
	{"Matthew", "David"},
	{"Alice", "David"},
	{"Alice", "Charlie"},
	{"Alice", "Alice"},
}

func main() {
	project := flag.Bool("project", false, "mirror the demo network into Neo4j and cross-check distances")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()
	log := logger.Get()

	ctx := context.Background()
	g := network.New(logger.Get())
	if err := buildExample(ctx, g); err != nil {
		log.Fatal("Failed to build example network", zap.Error(err))
	}
	report(ctx, os.Stdout, g)

	if !*project {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	repo := graph.NewRepository(driver, cfg.ProjectionWorkers)
	defer repo.Close()

	if err := repo.EnsureConstraints(ctx); err != nil {
		log.Fatal("Failed to create constraints", zap.Error(err))
	}
	stats, err := repo.ProjectSnapshot(ctx, g.Snapshot(ctx))
	if err != nil {
		log.Fatal("Projection failed", zap.Error(err))
	}
	fmt.Printf("\nProjected %d people and %d friendships in %s\n", stats.People, stats.Friendships, stats.Duration)

	for _, p := range pairs {
		hops, err := repo.ShortestPathLength(ctx, p[0], p[1])
		if err != nil {
			log.Fatal("Shortest path query failed", zap.Error(err))
		}
		fmt.Printf("Neo4j: %s -> %s = %d\n", p[0], p[1], hops)
	}
}

// buildExample creates Alice - Bob - Charlie - David - Matthew and gives Alice some details
func buildExample(ctx context.Context, g *network.SocialGraph) error {
	for _, name := range []string{"Alice", "Bob", "Charlie", "David", "Matthew"} {
		if err := g.AddPerson(ctx, name, nil); err != nil {
			return err
		}
	}
	for _, f := range [][2]string{{"Alice", "Bob"}, {"Bob", "Charlie"}, {"Charlie", "David"}, {"Matthew", "David"}} {
		if err := g.AddFriendship(ctx, f[0], f[1]); err != nil {
			return err
		}
	}
	return g.UpdatePersonDetails(ctx, "Alice", network.Attributes{
		"age":        network.Int(30),
		"occupation": network.String("Engineer"),
	})
}

func report(ctx context.Context, w io.Writer, g *network.SocialGraph) {
	for _, p := range pairs {
		fmt.Fprintf(w, "%s -> %s = %d\n", p[0], p[1], g.DegreeOfSeparation(ctx, p[0], p[1]))
	}
	if alice, err := g.Person(ctx, "Alice"); err == nil {
		fmt.Fprintf(w, "Alice: age=%s occupation=%s\n", alice.Attributes["age"], alice.Attributes["occupation"])
	}
}
