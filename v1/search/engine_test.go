package search

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/tagsearch/v1/candidate"
	"github.com/Aleph-Alpha/tagsearch/v1/ingest"
	"github.com/Aleph-Alpha/tagsearch/v1/logger"
	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
	"github.com/Aleph-Alpha/tagsearch/v1/vectordb/vectordbtest"
)

var vocabulary = []string{"apple", "banana", "cherry", "durian"}

// wordEmbedder counts vocabulary words, so texts sharing words score high.
type wordEmbedder struct {
	calls int
	texts [][]string
}

func (w *wordEmbedder) EmbedBatch(_ context.Context, texts []string, _ bool) [][]float32 {
	w.calls++
	w.texts = append(w.texts, texts)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, len(vocabulary))
		for _, word := range strings.FieldsFunc(strings.ToLower(t), func(r rune) bool { return !unicode.IsLetter(r) }) {
			for j, known := range vocabulary {
				if word == known {
					v[j]++
				}
			}
		}
		out[i] = v
	}
	return out
}

type spyRecorder struct {
	results []int
}

func (s *spyRecorder) RecordSearch(_ time.Time, results int) {
	s.results = append(s.results, results)
}

type noMatches struct{}

func (noMatches) MatchesForActor(context.Context, int64) ([]candidate.Match, error) {
	return nil, nil
}

func seed(t *testing.T, col *vectordbtest.Collection, emb *wordEmbedder, owner int64, text string) ingest.Summary {
	t.Helper()
	p, err := ingest.NewPipeline(vectordbtest.NewManager(col), emb, logger.NewNop(),
		ingest.WithConfig(ingest.Config{MaxChars: 24, Overlap: 0}))
	require.NoError(t, err)
	s, err := p.Ingest(context.Background(), text, owner)
	require.NoError(t, err)
	return s
}

func TestSearch_EmptyCandidatesSkipsStore(t *testing.T) {
	mgr := vectordbtest.NewManager(vectordbtest.NewCollection("chunks"))
	emb := &wordEmbedder{}
	e := NewEngine(mgr, emb, logger.NewNop())

	results, err := e.Search(context.Background(), "apple", nil, 5)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Zero(t, mgr.Calls)
	assert.Zero(t, mgr.Collection.Searches)
	assert.Zero(t, emb.calls)
}

func TestSearch_ScenarioBestChunkFirst(t *testing.T) {
	col := vectordbtest.NewCollection("chunks")
	emb := &wordEmbedder{}
	s := seed(t, col, emb, 42, "apple apple apple。banana banana banana。")
	require.Equal(t, 2, s.ChunkCount)

	e := NewEngine(vectordbtest.NewManager(col), emb, logger.NewNop())
	results, err := e.Search(context.Background(), "banana", []int64{42}, 5)
	require.NoError(t, err)

	require.NotEmpty(t, results)
	assert.Equal(t, "42:1", results[0].ChunkID)
	assert.Equal(t, "banana banana banana。", results[0].Content)
	for _, r := range results[1:] {
		assert.Less(t, r.Score, results[0].Score)
	}
}

func TestSearch_ScenarioActorWithoutMatches(t *testing.T) {
	mgr := vectordbtest.NewManager(vectordbtest.NewCollection("chunks"))
	resolver := candidate.NewResolver(noMatches{}, logger.NewNop())

	ids, err := resolver.CandidateIDs(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, ids)

	results, err := NewEngine(mgr, &wordEmbedder{}, logger.NewNop()).Search(context.Background(), "apple", ids, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, mgr.Calls)
}

func TestSearch_RestrictsToCandidates(t *testing.T) {
	col := vectordbtest.NewCollection("chunks")
	emb := &wordEmbedder{}
	seed(t, col, emb, 1, "apple apple。")
	seed(t, col, emb, 2, "apple。")
	seed(t, col, emb, 3, "cherry。")

	e := NewEngine(vectordbtest.NewManager(col), emb, logger.NewNop())
	results, err := e.Search(context.Background(), "apple", []int64{2, 3}, 5)
	require.NoError(t, err)

	for _, r := range results {
		assert.Contains(t, []int64{2, 3}, r.OwningID)
	}
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[0].OwningID)

	req := col.Requests[len(col.Requests)-1]
	assert.Equal(t, OutputFields, req.OutputFields)
	assert.Equal(t, 5, req.TopK)
}

func TestSearch_MultiVectorQueryDedupes(t *testing.T) {
	col := vectordbtest.NewCollection("chunks")
	emb := &wordEmbedder{}
	seed(t, col, emb, 7, "apple banana banana。cherry。")

	e := NewEngine(vectordbtest.NewManager(col), emb, logger.NewNop(), WithQueryChunking(14, 0))
	query := "apple banana。apple cherry。"

	results, err := e.Search(context.Background(), query, []int64{7}, 5)
	require.NoError(t, err)

	req := col.Requests[len(col.Requests)-1]
	require.Len(t, req.Vectors, 2)

	seen := map[string]bool{}
	for _, r := range results {
		assert.False(t, seen[r.ChunkID], "duplicate %s", r.ChunkID)
		seen[r.ChunkID] = true
	}
	assert.Len(t, results, 2)
}

func TestSearch_DefaultTopK(t *testing.T) {
	col := vectordbtest.NewCollection("chunks")
	emb := &wordEmbedder{}
	e := NewEngine(vectordbtest.NewManager(col), emb, logger.NewNop())

	_, err := e.Search(context.Background(), "apple", []int64{1}, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, col.Requests[0].TopK)
}

func TestSearch_BlankQuery(t *testing.T) {
	col := vectordbtest.NewCollection("chunks")
	emb := &wordEmbedder{}
	e := NewEngine(vectordbtest.NewManager(col), emb, logger.NewNop())

	results, err := e.Search(context.Background(), " 。 ", []int64{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, col.Searches)
	assert.Zero(t, emb.calls)
}

func TestSearch_PropagatesStoreErrors(t *testing.T) {
	col := vectordbtest.NewCollection("chunks")
	mgr := vectordbtest.NewManager(col)
	mgr.Err = errors.New("collection not found")
	e := NewEngine(mgr, &wordEmbedder{}, logger.NewNop())

	_, err := e.Search(context.Background(), "apple", []int64{1}, 5)
	assert.ErrorContains(t, err, "collection not found")

	mgr.Err = nil
	col.Err = errors.New("query failed")
	_, err = e.Search(context.Background(), "apple", []int64{1}, 5)
	assert.ErrorContains(t, err, "query failed")
}

func TestSearch_RecordsMetrics(t *testing.T) {
	col := vectordbtest.NewCollection("chunks")
	emb := &wordEmbedder{}
	seed(t, col, emb, 1, "apple。")
	rec := &spyRecorder{}

	e := NewEngine(vectordbtest.NewManager(col), emb, logger.NewNop(), WithRecorder(rec))
	_, err := e.Search(context.Background(), "apple", []int64{1}, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, rec.results)
}

func TestSearch_FilterTargetsOwningID(t *testing.T) {
	col := vectordbtest.NewCollection("chunks")
	e := NewEngine(vectordbtest.NewManager(col), &wordEmbedder{}, logger.NewNop())

	_, err := e.Search(context.Background(), "apple", []int64{4, 5}, 5)
	require.NoError(t, err)

	must := col.Requests[0].Filters.Must.Conditions
	require.Len(t, must, 1)
	cond, ok := must[0].(*vectordb.MatchAnyCondition)
	require.True(t, ok)
	assert.Equal(t, vectordb.FieldOwningID, cond.Field)
	assert.Equal(t, []any{int64(4), int64(5)}, cond.Values)
}
