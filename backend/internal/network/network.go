// Package network holds the in-memory social graph: people with attribute
// bags, undirected friendships between them, and degree-of-separation queries.
//
// A single RWMutex guards the whole graph. Mutations take the write lock and
// every read, BFS included, takes the read lock, so readers always observe a
// graph in which friendship is symmetric.
package network

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "socialgraph/backend/pkg/errors"
	"go.uber.org/zap"
)

// Operation names reported to the Recorder
const (
	OpAddPerson     = "add_person"
	OpAddFriendship = "add_friendship"
	OpUpdatePerson  = "update_person"
)

// Recorder receives operation outcomes. internal/metrics provides the Prometheus implementation.
type Recorder interface {
	ObserveMutation(op string, err error)
	ObserveSeparation(outcome Outcome, visited int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMutation(string, error)                    {}
func (nopRecorder) ObserveSeparation(Outcome, int, time.Duration) {}

// Option configures a SocialGraph
type Option func(*SocialGraph)

// WithRecorder reports every operation to rec
func WithRecorder(rec Recorder) Option {
	return func(g *SocialGraph) {
		if rec != nil {
			g.recorder = rec
		}
	}
}

// WithMaxDepth stops separation searches after depth hops. Zero means unbounded.
func WithMaxDepth(depth int) Option {
	return func(g *SocialGraph) {
		if depth > 0 {
			g.maxDepth = depth
		}
	}
}

// SocialGraph is an undirected friendship graph keyed by person name
type SocialGraph struct {
	mu       sync.RWMutex
	people   map[string]*person
	log      *zap.Logger
	recorder Recorder
	maxDepth int
	now      func() time.Time
}

// New creates an empty social graph
func New(logger *zap.Logger, opts ...Option) *SocialGraph {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &SocialGraph{
		people:   make(map[string]*person),
		log:      logger.Named("network"),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ============================================================================
// Mutations
// ============================================================================

// AddPerson adds name with a copy of attrs and no friends. An existing name is
// left untouched and ErrPersonAlreadyExists is returned.
func (g *SocialGraph) AddPerson(ctx context.Context, name string, attrs Attributes) (err error) {
	defer func() { g.recorder.ObserveMutation(OpAddPerson, err) }()

	if err := ctx.Err(); err != nil {
		return apperrors.NewContextCancelled(OpAddPerson, err)
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.ErrInvalidName
	}
	if err := attrs.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.people[name]; exists {
		g.log.Warn("person already exists in the network", zap.String("name", name))
		return apperrors.NewPersonAlreadyExists(name)
	}

	now := g.now()
	g.people[name] = &person{
		id:         uuid.New().String(),
		name:       name,
		attributes: attrs.Clone(),
		friends:    make(map[string]struct{}),
		createdAt:  now,
		updatedAt:  now,
	}

	g.log.Debug("person added", zap.String("name", name), zap.Int("attributes", len(attrs)))
	return nil
}

// AddFriendship links a and b in both directions. Adding an existing
// friendship again changes nothing. Self-friendship is rejected.
func (g *SocialGraph) AddFriendship(ctx context.Context, a, b string) (err error) {
	defer func() { g.recorder.ObserveMutation(OpAddFriendship, err) }()

	if err := ctx.Err(); err != nil {
		return apperrors.NewContextCancelled(OpAddFriendship, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	pa, okA := g.people[a]
	pb, okB := g.people[b]
	if !okA || !okB {
		g.log.Warn("one or both individuals are not in the network",
			zap.String("name_a", a),
			zap.String("name_b", b),
		)
		return apperrors.NewPersonNotFound(missing(a, okA, b, okB)...)
	}
	if a == b {
		g.log.Warn("refusing self-friendship", zap.String("name", a))
		return apperrors.ErrSelfFriendship
	}

	if _, already := pa.friends[b]; already {
		return nil
	}

	now := g.now()
	pa.friends[b] = struct{}{}
	pb.friends[a] = struct{}{}
	pa.updatedAt = now
	pb.updatedAt = now

	g.log.Debug("friendship added", zap.String("name_a", a), zap.String("name_b", b))
	return nil
}

// UpdatePersonDetails merges attrs over name's attributes. Keys absent from
// attrs keep their values; friendships are not touched.
func (g *SocialGraph) UpdatePersonDetails(ctx context.Context, name string, attrs Attributes) (err error) {
	defer func() { g.recorder.ObserveMutation(OpUpdatePerson, err) }()

	if err := ctx.Err(); err != nil {
		return apperrors.NewContextCancelled(OpUpdatePerson, err)
	}
	if err := attrs.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.people[name]
	if !ok {
		g.log.Warn("person not found in the network", zap.String("name", name))
		return apperrors.NewPersonNotFound(name)
	}

	p.attributes.Merge(attrs)
	p.updatedAt = g.now()

	g.log.Debug("person updated", zap.String("name", name), zap.Int("attributes", len(attrs)))
	return nil
}

// ============================================================================
// Reads
// ============================================================================

// Person returns a copy of name's record
func (g *SocialGraph) Person(ctx context.Context, name string) (PersonView, error) {
	if err := ctx.Err(); err != nil {
		return PersonView{}, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	p, ok := g.people[name]
	if !ok {
		return PersonView{}, apperrors.NewPersonNotFound(name)
	}
	return p.view(), nil
}

// Friends returns name's friends sorted by name
func (g *SocialGraph) Friends(ctx context.Context, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	p, ok := g.people[name]
	if !ok {
		return nil, apperrors.NewPersonNotFound(name)
	}
	return p.friendNames(), nil
}

// People returns every person sorted by name
func (g *SocialGraph) People(ctx context.Context) []PersonView {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.sortedViews()
}

// Size returns the number of people and the number of friendships, each edge counted once
func (g *SocialGraph) Size(ctx context.Context) (people, friendships int) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ends := 0
	for _, p := range g.people {
		ends += len(p.friends)
	}
	return len(g.people), ends / 2
}

// Snapshot returns a consistent copy of all people and friendships
func (g *SocialGraph) Snapshot(ctx context.Context) Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := Snapshot{
		People:  g.sortedViews(),
		TakenAt: g.now(),
	}
	for _, v := range snap.People {
		for _, friend := range v.Friends {
			if v.Name < friend {
				snap.Friendships = append(snap.Friendships, Friendship{A: v.Name, B: friend})
			}
		}
	}
	return snap
}

// sortedViews assumes the caller holds at least the read lock
func (g *SocialGraph) sortedViews() []PersonView {
	views := make([]PersonView, 0, len(g.people))
	for _, p := range g.people {
		views = append(views, p.view())
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views
}

func missing(a string, okA bool, b string, okB bool) []string {
	var names []string
	if !okA {
		names = append(names, a)
	}
	if !okB && b != a {
		names = append(names, b)
	}
	return names
}
