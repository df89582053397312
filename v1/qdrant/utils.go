package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

func validateSearchInput(req vectordb.SearchRequest) error {
	if len(req.Vectors) == 0 {
		return fmt.Errorf("[Qdrant] at least one query vector is required")
	}
	for i, v := range req.Vectors {
		if len(v) == 0 {
			return fmt.Errorf("[Qdrant] query vector %d is empty", i)
		}
	}
	if req.TopK <= 0 {
		return fmt.Errorf("[Qdrant] topK must be greater than 0")
	}
	return nil
}

// extractVectorDetails returns the vector size and distance metric of a
// collection, or (0, "") when the config is missing or uses named vectors.
func extractVectorDetails(info *qdrant.CollectionInfo) (int, string) {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0, ""
	}

	if cfg, ok := info.Config.Params.VectorsConfig.Config.(*qdrant.VectorsConfig_Params); ok {
		return int(cfg.Params.Size), cfg.Params.Distance.String()
	}
	return 0, ""
}
