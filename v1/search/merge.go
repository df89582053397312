package search

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

// MergeResults flattens per-vector result lists into one ranking. A chunk
// returned for several query vectors is kept once with its best score; hits
// that carry no chunk or point identifier are never merged. The
// output is ordered by score, highest first, with ties kept in order of first
// appearance, and holds at most topK results.
func MergeResults(lists [][]vectordb.SearchResult, topK int) []Result {
	merged := make([]Result, 0)
	index := make(map[string]int)

	for _, list := range lists {
		for _, hit := range list {
			r := toResult(hit)
			if r.ChunkID == "" {
				// Nothing to dedupe on; keep the hit as is.
				merged = append(merged, r)
				continue
			}
			if i, ok := index[r.ChunkID]; ok {
				if r.Score > merged[i].Score {
					merged[i].Score = r.Score
				}
				continue
			}
			index[r.ChunkID] = len(merged)
			merged = append(merged, r)
		}
	}

	slices.SortStableFunc(merged, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if topK > 0 && len(merged) > topK {
		merged = merged[:topK]
	}
	return merged
}

func toResult(hit vectordb.SearchResult) Result {
	r := Result{Score: hit.Score}

	chunk, chunkOK := vectordb.LookupInt(hit, vectordb.ChunkNumberAccessors...)
	owner, ownerOK := vectordb.LookupInt(hit, vectordb.OwningIDAccessors...)
	r.Content, _ = vectordb.LookupString(hit, vectordb.TextAccessors...)
	r.ChunkNumber = int(chunk)
	r.OwningID = owner

	if chunkOK && ownerOK {
		r.ChunkID = fmt.Sprintf("%d:%d", owner, chunk)
	} else {
		r.ChunkID, _ = vectordb.LookupString(hit, vectordb.PointID())
	}
	return r
}
