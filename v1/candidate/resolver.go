package candidate

import (
	"context"
)

// Logger is the logging surface used by this package.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
}

// Resolver derives the candidate set of an actor from its tag matches.
type Resolver struct {
	store  Store
	logger Logger
}

// NewResolver returns a Resolver reading from store.
func NewResolver(store Store, logger Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// CandidateIDs returns the distinct target IDs matched by actorID, in order of
// first occurrence. The set is read fresh on every call. An actor without
// matches yields an empty, non-nil slice.
func (r *Resolver) CandidateIDs(ctx context.Context, actorID int64) ([]int64, error) {
	matches, err := r.store.MatchesForActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(matches))
	labels := make([]string, 0, len(matches))
	for i, m := range matches {
		ids[i] = m.TargetID
		if m.Label != "" {
			labels = append(labels, m.Label)
		}
	}
	candidates := Dedupe(ids)

	r.logger.Debug("Resolved candidates", nil, map[string]interface{}{
		"actor_id":   actorID,
		"matches":    len(matches),
		"candidates": len(candidates),
		"labels":     labels,
	})
	return candidates, nil
}

// Dedupe drops repeated IDs, keeping the first occurrence of each. The result
// is never nil.
func Dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
