package qdrant

import (
	"context"
	"errors"
	"slices"
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

func TestPointID_IsStable(t *testing.T) {
	assert.Equal(t, PointID(7, 0), PointID(7, 0))
	assert.NotEqual(t, PointID(7, 0), PointID(7, 1))
	assert.NotEqual(t, PointID(7, 1), PointID(71, 0))
}

func TestCollection_Upsert(t *testing.T) {
	api := newFakeAPI()
	col := &Collection{name: "chunks", api: api}

	err := col.Upsert(context.Background(), []vectordb.Record{
		{OwningID: 7, ChunkNumber: 0, Text: "a。", Vector: []float32{1, 0}},
		{OwningID: 7, ChunkNumber: 1, Text: "b。", Vector: []float32{0, 1}},
	})
	require.NoError(t, err)
	require.Len(t, api.upserts, 1)

	req := api.upserts[0]
	assert.Equal(t, "chunks", req.CollectionName)
	assert.True(t, req.GetWait())
	require.Len(t, req.Points, 2)

	p := req.Points[1]
	assert.Equal(t, PointID(7, 1), p.GetId().GetUuid())
	assert.Equal(t, int64(7), p.Payload[vectordb.FieldOwningID].GetIntegerValue())
	assert.Equal(t, int64(1), p.Payload[vectordb.FieldChunkNumber].GetIntegerValue())
	assert.Equal(t, "b。", p.Payload[vectordb.FieldText].GetStringValue())
}

func TestCollection_UpsertEmptyIsNoop(t *testing.T) {
	api := newFakeAPI()
	col := &Collection{name: "chunks", api: api}

	require.NoError(t, col.Upsert(context.Background(), nil))
	assert.Empty(t, api.upserts)
}

func TestCollection_UpsertRejectsEmptyVector(t *testing.T) {
	api := newFakeAPI()
	col := &Collection{name: "chunks", api: api}

	err := col.Upsert(context.Background(), []vectordb.Record{{OwningID: 1}})
	assert.Error(t, err)
	assert.Empty(t, api.upserts)
}

func TestCollection_DeleteStale(t *testing.T) {
	api := newFakeAPI()
	col := &Collection{name: "chunks", api: api}

	require.NoError(t, col.DeleteStale(context.Background(), 7, 3))
	require.Len(t, api.deletes, 1)

	filter := api.deletes[0].GetPoints().GetFilter()
	require.NotNil(t, filter)
	require.Len(t, filter.Must, 2)

	match := filter.Must[0].GetField()
	assert.Equal(t, vectordb.FieldOwningID, match.Key)
	assert.Equal(t, int64(7), match.GetMatch().GetInteger())

	rng := filter.Must[1].GetField()
	assert.Equal(t, vectordb.FieldChunkNumber, rng.Key)
	assert.Equal(t, float64(3), rng.GetRange().GetGte())
}

func TestCollection_DeleteByOwner(t *testing.T) {
	api := newFakeAPI()
	col := &Collection{name: "chunks", api: api}

	require.NoError(t, col.DeleteByOwner(context.Background(), 9))
	filter := api.deletes[0].GetPoints().GetFilter()
	require.Len(t, filter.Must, 1)
	assert.Equal(t, int64(9), filter.Must[0].GetField().GetMatch().GetInteger())
}

func TestCollection_CountByOwner(t *testing.T) {
	api := newFakeAPI()
	api.count = 3
	col := &Collection{name: "chunks", api: api}

	n, err := col.CountByOwner(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
	assert.True(t, api.counts[0].GetExact())
}

func TestCollection_Search(t *testing.T) {
	api := newFakeAPI()
	api.batch = []*qdrant.BatchResult{
		{Result: []*qdrant.ScoredPoint{{
			Id:    qdrant.NewIDUUID(PointID(1, 0)),
			Score: 0.9,
			Payload: map[string]*qdrant.Value{
				vectordb.FieldOwningID:    {Kind: &qdrant.Value_IntegerValue{IntegerValue: 1}},
				vectordb.FieldChunkNumber: {Kind: &qdrant.Value_IntegerValue{IntegerValue: 0}},
				vectordb.FieldText:        {Kind: &qdrant.Value_StringValue{StringValue: "hello"}},
			},
		}}},
		{Result: nil},
	}
	col := &Collection{name: "chunks", api: api}

	out, err := col.Search(context.Background(), vectordb.SearchRequest{
		Vectors: [][]float32{{1, 0}, {0, 1}},
		TopK:    5,
		Filters: vectordb.NewFilterSet(vectordb.Must(
			vectordb.NewMatchAnyInt64(vectordb.FieldOwningID, []int64{1, 2}),
		)),
		OutputFields: []string{vectordb.FieldOwningID, vectordb.FieldChunkNumber, vectordb.FieldText},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Len(t, out[0], 1)
	assert.Empty(t, out[1])

	hit := out[0][0]
	assert.Equal(t, PointID(1, 0), hit.ID)
	assert.Equal(t, float32(0.9), hit.Score)
	assert.Equal(t, int64(1), hit.Payload[vectordb.FieldOwningID])
	assert.Equal(t, "hello", hit.Payload[vectordb.FieldText])

	require.Len(t, api.queries, 1)
	queries := api.queries[0].QueryPoints
	require.Len(t, queries, 2)
	for _, q := range queries {
		assert.Equal(t, uint64(5), q.GetLimit())
		require.NotNil(t, q.Filter)
		ints := q.Filter.Must[0].GetField().GetMatch().GetIntegers().GetIntegers()
		assert.Equal(t, []int64{1, 2}, ints)
		assert.Len(t, q.GetWithPayload().GetInclude().GetFields(), 3)
	}
}

func TestCollection_SearchRequestsFallbackPayloadKeys(t *testing.T) {
	api := newFakeAPI()
	api.batch = []*qdrant.BatchResult{
		{Result: []*qdrant.ScoredPoint{{
			Id:    qdrant.NewIDUUID(PointID(3, 2)),
			Score: 0.5,
			Payload: map[string]*qdrant.Value{
				"requirement_id": {Kind: &qdrant.Value_IntegerValue{IntegerValue: 3}},
				"chunk_id":       {Kind: &qdrant.Value_IntegerValue{IntegerValue: 2}},
				"content":        {Kind: &qdrant.Value_StringValue{StringValue: "legacy"}},
			},
		}}},
	}
	col := &Collection{name: "chunks", api: api}

	out, err := col.Search(context.Background(), vectordb.SearchRequest{
		Vectors:      [][]float32{{1, 0}},
		TopK:         1,
		OutputFields: vectordb.PayloadKeys(),
	})
	require.NoError(t, err)

	require.Len(t, api.queries, 1)
	fields := api.queries[0].QueryPoints[0].GetWithPayload().GetInclude().GetFields()
	for _, key := range slices.Concat(vectordb.ChunkNumberKeys, vectordb.OwningIDKeys, vectordb.TextKeys) {
		assert.Contains(t, fields, key)
	}

	require.Len(t, out, 1)
	require.Len(t, out[0], 1)
	hit := out[0][0]
	owner, ok := vectordb.LookupInt(hit, vectordb.OwningIDAccessors...)
	assert.True(t, ok)
	assert.Equal(t, int64(3), owner)
	chunk, ok := vectordb.LookupInt(hit, vectordb.ChunkNumberAccessors...)
	assert.True(t, ok)
	assert.Equal(t, int64(2), chunk)
	text, _ := vectordb.LookupString(hit, vectordb.TextAccessors...)
	assert.Equal(t, "legacy", text)
}

func TestCollection_SearchValidation(t *testing.T) {
	col := &Collection{name: "chunks", api: newFakeAPI()}

	_, err := col.Search(context.Background(), vectordb.SearchRequest{TopK: 5})
	assert.Error(t, err)

	_, err = col.Search(context.Background(), vectordb.SearchRequest{Vectors: [][]float32{{1}}, TopK: 0})
	assert.Error(t, err)

	_, err = col.Search(context.Background(), vectordb.SearchRequest{Vectors: [][]float32{{}}, TopK: 1})
	assert.Error(t, err)
}

func TestCollection_SearchPropagatesErrors(t *testing.T) {
	api := newFakeAPI()
	api.opErr = errors.New("boom")
	col := &Collection{name: "chunks", api: api}

	_, err := col.Search(context.Background(), vectordb.SearchRequest{Vectors: [][]float32{{1}}, TopK: 1})
	assert.ErrorContains(t, err, "boom")
}

func TestConvertFilterSet(t *testing.T) {
	t.Run("nil and empty", func(t *testing.T) {
		assert.Nil(t, convertFilterSet(nil))
		assert.Nil(t, convertFilterSet(vectordb.NewFilterSet()))
		assert.Nil(t, convertFilterSet(vectordb.NewFilterSet(vectordb.Must(
			vectordb.NewNumericRange("n", vectordb.NumericRange{}),
			vectordb.NewMatchAny("x"),
		))))
	})

	t.Run("keywords and bool", func(t *testing.T) {
		f := convertFilterSet(vectordb.NewFilterSet(
			vectordb.Should(vectordb.NewMatchAny("lang", "ja", "en")),
			vectordb.MustNot(vectordb.NewMatch("draft", true)),
		))
		require.NotNil(t, f)
		assert.Equal(t, []string{"ja", "en"}, f.Should[0].GetField().GetMatch().GetKeywords().GetStrings())
		assert.True(t, f.MustNot[0].GetField().GetMatch().GetBoolean())
	})

	t.Run("json numbers", func(t *testing.T) {
		f := convertFilterSet(vectordb.NewFilterSet(vectordb.Must(
			vectordb.NewMatch(vectordb.FieldOwningID, float64(4)),
		)))
		assert.Equal(t, int64(4), f.Must[0].GetField().GetMatch().GetInteger())
	})
}

func TestExtractValue_Nested(t *testing.T) {
	v := &qdrant.Value{Kind: &qdrant.Value_ListValue{ListValue: &qdrant.ListValue{
		Values: []*qdrant.Value{
			{Kind: &qdrant.Value_DoubleValue{DoubleValue: 1.5}},
			{Kind: &qdrant.Value_StructValue{StructValue: &qdrant.Struct{
				Fields: map[string]*qdrant.Value{"k": {Kind: &qdrant.Value_BoolValue{BoolValue: true}}},
			}}},
		},
	}}}

	got := extractValue(v)
	assert.Equal(t, []any{1.5, map[string]any{"k": true}}, got)
}

func TestExtractPointID(t *testing.T) {
	id, err := extractPointID(qdrant.NewIDNum(42))
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	_, err = extractPointID(nil)
	assert.Error(t, err)
}
