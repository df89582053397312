package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

// pointNamespace seeds the name-based point IDs.
var pointNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tagsearch/chunks"))

// PointID returns the stable point ID of a chunk. Writing the same chunk twice
// overwrites the same point.
func PointID(owningID int64, chunkNumber int) string {
	return uuid.NewSHA1(pointNamespace, []byte(fmt.Sprintf("%d:%d", owningID, chunkNumber))).String()
}

// Collection is a handle to one Qdrant collection. It is cheap and safe for
// concurrent use; it shares the connection of the Manager that created it.
type Collection struct {
	name string
	api  pointsAPI
}

var _ vectordb.Collection = (*Collection)(nil)

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Upsert writes records in one request and waits until they are applied.
func (c *Collection) Upsert(ctx context.Context, records []vectordb.Record) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, r := range records {
		if len(r.Vector) == 0 {
			return fmt.Errorf("[Qdrant] record %d:%d has an empty vector", r.OwningID, r.ChunkNumber)
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(PointID(r.OwningID, r.ChunkNumber)),
			Vectors: qdrant.NewVectors(r.Vector...),
			Payload: buildPayload(r),
		})
	}

	_, err := c.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.name,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to upsert %d points into '%s': %w", len(points), c.name, err)
	}
	return nil
}

// DeleteByOwner removes every record of owningID.
func (c *Collection) DeleteByOwner(ctx context.Context, owningID int64) error {
	filter := vectordb.NewFilterSet(
		vectordb.Must(vectordb.NewMatch(vectordb.FieldOwningID, owningID)),
	)
	return c.deleteByFilter(ctx, filter)
}

// DeleteStale removes records of owningID whose chunk number is keep or higher.
func (c *Collection) DeleteStale(ctx context.Context, owningID int64, keep int) error {
	filter := vectordb.NewFilterSet(
		vectordb.Must(
			vectordb.NewMatch(vectordb.FieldOwningID, owningID),
			vectordb.NewNumericRange(vectordb.FieldChunkNumber, vectordb.NumericRange{
				Gte: vectordb.Float64Ptr(float64(keep)),
			}),
		),
	)
	return c.deleteByFilter(ctx, filter)
}

func (c *Collection) deleteByFilter(ctx context.Context, filters *vectordb.FilterSet) error {
	_, err := c.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: c.name,
		Wait:           qdrant.PtrOf(true),
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: convertFilterSet(filters),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to delete points from '%s': %w", c.name, err)
	}
	return nil
}

// CountByOwner returns the exact number of records stored for owningID.
func (c *Collection) CountByOwner(ctx context.Context, owningID int64) (uint64, error) {
	filter := vectordb.NewFilterSet(
		vectordb.Must(vectordb.NewMatch(vectordb.FieldOwningID, owningID)),
	)
	n, err := c.api.Count(ctx, &qdrant.CountPoints{
		CollectionName: c.name,
		Filter:         convertFilterSet(filter),
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("[Qdrant] failed to count points in '%s': %w", c.name, err)
	}
	return n, nil
}

// Search runs one similarity query per vector in a single round trip. The
// result slice is parallel to req.Vectors.
func (c *Collection) Search(ctx context.Context, req vectordb.SearchRequest) ([][]vectordb.SearchResult, error) {
	if err := validateSearchInput(req); err != nil {
		return nil, err
	}

	limit := uint64(req.TopK)
	filter := convertFilterSet(req.Filters)
	withPayload := payloadSelector(req.OutputFields)

	queries := make([]*qdrant.QueryPoints, len(req.Vectors))
	for i, vec := range req.Vectors {
		queries[i] = &qdrant.QueryPoints{
			CollectionName: c.name,
			Query:          qdrant.NewQuery(vec...),
			Filter:         filter,
			Limit:          &limit,
			WithPayload:    withPayload,
		}
	}

	batch, err := c.api.QueryBatch(ctx, &qdrant.QueryBatchPoints{
		CollectionName: c.name,
		QueryPoints:    queries,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] batch query on '%s' failed: %w", c.name, err)
	}
	if len(batch) != len(req.Vectors) {
		return nil, fmt.Errorf("[Qdrant] batch query returned %d results for %d vectors", len(batch), len(req.Vectors))
	}

	out := make([][]vectordb.SearchResult, len(batch))
	for i, br := range batch {
		results, err := parseSearchResults(br.GetResult())
		if err != nil {
			return nil, err
		}
		out[i] = results
	}
	return out, nil
}
