package network

import (
	"context"
	"time"

	"socialgraph/backend/internal/constants"
	apperrors "socialgraph/backend/pkg/errors"
	"go.uber.org/zap"
)

// ============================================================================
// Degree of Separation
// ============================================================================

// Outcome classifies a separation query
type Outcome uint8

const (
	// OutcomeConnected means a path exists and Distance holds its length in hops
	OutcomeConnected Outcome = iota + 1
	// OutcomeNotFound means at least one of the two people is not in the network
	OutcomeNotFound
	// OutcomeUnreachable means both exist but no path connects them (within MaxDepth, if set)
	OutcomeUnreachable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConnected:
		return "connected"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// MarshalText lets Outcome appear as its name in JSON
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// SeparationResult is the tagged answer to a separation query
type SeparationResult struct {
	Outcome  Outcome `json:"outcome"`
	Distance int     `json:"distance"` // hops when Connected, otherwise -1
	Visited  int     `json:"visited"`  // people dequeued by the search
}

// Degree collapses the result to the single-integer form: hops, or -1
func (r SeparationResult) Degree() int {
	if r.Outcome == OutcomeConnected {
		return r.Distance
	}
	return constants.NoSeparation
}

func noPath(outcome Outcome, visited int) SeparationResult {
	return SeparationResult{Outcome: outcome, Distance: constants.NoSeparation, Visited: visited}
}

// DegreeOfSeparation returns the number of friendship hops on the shortest
// path between a and b, 0 when a == b, and -1 when either is missing or no
// path exists. Use Separation to tell the two -1 cases apart.
func (g *SocialGraph) DegreeOfSeparation(ctx context.Context, a, b string) int {
	res, err := g.Separation(ctx, a, b)
	if err != nil {
		return constants.NoSeparation
	}
	return res.Degree()
}

// Separation runs a breadth-first search from a and stops at the first
// dequeued person who has b as a friend. BFS dequeues every person at depth d
// before any at depth d+1, so the first hit is a shortest path.
//
// The only error is a cancelled or expired ctx.
func (g *SocialGraph) Separation(ctx context.Context, a, b string) (res SeparationResult, err error) {
	start := time.Now()
	defer func() {
		if err == nil {
			g.recorder.ObserveSeparation(res.Outcome, res.Visited, time.Since(start))
		}
	}()

	if err := ctx.Err(); err != nil {
		return noPath(OutcomeUnreachable, 0), apperrors.NewContextCancelled("separation", err)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	_, okA := g.people[a]
	_, okB := g.people[b]
	if !okA || !okB {
		g.log.Warn("one or both individuals are not in the network",
			zap.String("name_a", a),
			zap.String("name_b", b),
		)
		return noPath(OutcomeNotFound, 0), nil
	}
	if a == b {
		return SeparationResult{Outcome: OutcomeConnected, Distance: 0}, nil
	}

	type queueItem struct {
		name     string
		distance int
	}
	visited := map[string]struct{}{a: {}}
	queue := []queueItem{{a, 0}}
	dequeued := 0

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		dequeued++

		if dequeued%constants.ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return noPath(OutcomeUnreachable, dequeued), apperrors.NewContextCancelled("separation", err)
			}
		}

		if g.maxDepth > 0 && item.distance >= g.maxDepth {
			continue
		}

		for friend := range g.people[item.name].friends {
			if friend == b {
				return SeparationResult{Outcome: OutcomeConnected, Distance: item.distance + 1, Visited: dequeued}, nil
			}
			if _, seen := visited[friend]; seen {
				continue
			}
			visited[friend] = struct{}{}
			queue = append(queue, queueItem{friend, item.distance + 1})
		}
	}

	return noPath(OutcomeUnreachable, dequeued), nil
}
