package candidate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/tagsearch/v1/logger"
)

type fakeStore struct {
	matches map[int64][]Match
	err     error
	calls   int
}

func (f *fakeStore) MatchesForActor(_ context.Context, actorID int64) ([]Match, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.matches[actorID], nil
}

func TestResolver_NoMatches(t *testing.T) {
	r := NewResolver(&fakeStore{}, logger.NewNop())

	ids, err := r.CandidateIDs(context.Background(), 999)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestResolver_DedupesInFirstOccurrenceOrder(t *testing.T) {
	store := &fakeStore{matches: map[int64][]Match{
		1: {
			{TargetID: 30, TagSource: SourceInterest, Label: "Backend"},
			{TargetID: 10, TagSource: SourceInterest},
			{TargetID: 30, TagSource: SourceSkill, Label: "Backend"},
			{TargetID: 20, TagSource: SourceSkill},
			{TargetID: 10, TagSource: SourceSkill},
		},
	}}
	r := NewResolver(store, logger.NewNop())

	ids, err := r.CandidateIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 10, 20}, ids)
}

func TestResolver_ReadsFreshEveryCall(t *testing.T) {
	store := &fakeStore{matches: map[int64][]Match{}}
	r := NewResolver(store, logger.NewNop())

	ids, err := r.CandidateIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, ids)

	store.matches[1] = []Match{{TargetID: 5, TagSource: SourceSkill}}
	ids, err = r.CandidateIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids)
	assert.Equal(t, 2, store.calls)
}

func TestResolver_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	r := NewResolver(&fakeStore{err: boom}, logger.NewNop())

	_, err := r.CandidateIDs(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []int64{}, Dedupe(nil))
	assert.Equal(t, []int64{3, 1, 2}, Dedupe([]int64{3, 1, 3, 2, 1}))
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "requirements", cfg.TargetTable)
	assert.Equal(t, "title", cfg.LabelColumn)

	bad := Config{TargetTable: "requirements; DROP TABLE x", LabelColumn: "title"}
	assert.Error(t, bad.Validate())

	bad = Config{TargetTable: "requirements", LabelColumn: "t.title"}
	assert.Error(t, bad.Validate())
}
