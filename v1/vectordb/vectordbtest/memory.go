// Package vectordbtest provides an in-memory vectordb.Collection for tests.
package vectordbtest

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

type key struct {
	owningID    int64
	chunkNumber int
}

// Collection keeps records in memory and scores them by cosine similarity.
// Set Err to make every operation fail.
type Collection struct {
	mu      sync.Mutex
	name    string
	records map[key]vectordb.Record

	Err error

	Upserts  int
	Deletes  int
	Searches int
	Requests []vectordb.SearchRequest
}

var _ vectordb.Collection = (*Collection)(nil)

// NewCollection returns an empty collection.
func NewCollection(name string) *Collection {
	return &Collection{name: name, records: make(map[key]vectordb.Record)}
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) Upsert(_ context.Context, records []vectordb.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Upserts++
	for _, r := range records {
		c.records[key{r.OwningID, r.ChunkNumber}] = r
	}
	return nil
}

func (c *Collection) DeleteByOwner(ctx context.Context, owningID int64) error {
	return c.DeleteStale(ctx, owningID, 0)
}

func (c *Collection) DeleteStale(_ context.Context, owningID int64, keep int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Deletes++
	for k := range c.records {
		if k.owningID == owningID && k.chunkNumber >= keep {
			delete(c.records, k)
		}
	}
	return nil
}

func (c *Collection) CountByOwner(_ context.Context, owningID int64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return 0, c.Err
	}
	var n uint64
	for k := range c.records {
		if k.owningID == owningID {
			n++
		}
	}
	return n, nil
}

// Records returns the records of owningID ordered by chunk number.
func (c *Collection) Records(owningID int64) []vectordb.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []vectordb.Record
	for k, r := range c.records {
		if k.owningID == owningID {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b vectordb.Record) int { return cmp.Compare(a.ChunkNumber, b.ChunkNumber) })
	return out
}

func (c *Collection) Search(_ context.Context, req vectordb.SearchRequest) ([][]vectordb.SearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	c.Searches++
	c.Requests = append(c.Requests, req)

	out := make([][]vectordb.SearchResult, len(req.Vectors))
	for i, vec := range req.Vectors {
		var hits []vectordb.SearchResult
		for _, r := range c.records {
			payload := payloadOf(r)
			if !matches(req.Filters, payload) {
				continue
			}
			hits = append(hits, vectordb.SearchResult{
				ID:      fmt.Sprintf("%d-%d", r.OwningID, r.ChunkNumber),
				Score:   cosine(vec, r.Vector),
				Payload: payload,
			})
		}
		slices.SortStableFunc(hits, func(a, b vectordb.SearchResult) int {
			if d := cmp.Compare(b.Score, a.Score); d != 0 {
				return d
			}
			return cmp.Compare(a.ID, b.ID)
		})
		if len(hits) > req.TopK {
			hits = hits[:req.TopK]
		}
		out[i] = hits
	}
	return out, nil
}

func payloadOf(r vectordb.Record) map[string]any {
	return map[string]any{
		vectordb.FieldOwningID:    r.OwningID,
		vectordb.FieldChunkNumber: int64(r.ChunkNumber),
		vectordb.FieldText:        r.Text,
	}
}

func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range min(len(a), len(b)) {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// Manager hands out one Collection.
type Manager struct {
	Collection *Collection
	Err        error
	Calls      int
}

var _ vectordb.Manager = (*Manager)(nil)

// NewManager returns a manager over col.
func NewManager(col *Collection) *Manager {
	return &Manager{Collection: col}
}

func (m *Manager) GetCollection(context.Context, bool) (vectordb.Collection, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Collection, nil
}
