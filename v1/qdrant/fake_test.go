package qdrant

import (
	"context"
	"sync"
	"sync/atomic"

	qdrant "github.com/qdrant/go-client/qdrant"
)

type fakeAPI struct {
	mu sync.Mutex

	info    *qdrant.CollectionInfo
	infoErr error

	upserts []*qdrant.UpsertPoints
	deletes []*qdrant.DeletePoints
	counts  []*qdrant.CountPoints
	queries []*qdrant.QueryBatchPoints

	count  uint64
	batch  []*qdrant.BatchResult
	opErr  error
	closed atomic.Int32
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{info: &qdrant.CollectionInfo{Status: qdrant.CollectionStatus_Green}}
}

func (f *fakeAPI) HealthCheck(context.Context) (*qdrant.HealthCheckReply, error) {
	return &qdrant.HealthCheckReply{Title: "fake"}, nil
}

func (f *fakeAPI) GetCollectionInfo(context.Context, string) (*qdrant.CollectionInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.info, nil
}

func (f *fakeAPI) Upsert(_ context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, req)
	return &qdrant.UpdateResult{}, f.opErr
}

func (f *fakeAPI) Delete(_ context.Context, req *qdrant.DeletePoints) (*qdrant.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, req)
	return &qdrant.UpdateResult{}, f.opErr
}

func (f *fakeAPI) Count(_ context.Context, req *qdrant.CountPoints) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = append(f.counts, req)
	return f.count, f.opErr
}

func (f *fakeAPI) QueryBatch(_ context.Context, req *qdrant.QueryBatchPoints) ([]*qdrant.BatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, req)
	if f.opErr != nil {
		return nil, f.opErr
	}
	return f.batch, nil
}

func (f *fakeAPI) Close() error {
	f.closed.Add(1)
	return nil
}
