package vectordb

// Payload keys written for every record.
const (
	FieldOwningID    = "owning_id"
	FieldChunkNumber = "chunk_number"
	FieldText        = "text"
)

// Record is one embedded chunk as stored in the vector database.
type Record struct {
	OwningID    int64     `json:"owningId"`
	ChunkNumber int       `json:"chunkNumber"`
	Text        string    `json:"text"`
	Vector      []float32 `json:"vector"`
}

// SearchRequest is a multi-vector similarity query sharing one filter.
type SearchRequest struct {
	// Vectors are searched independently; TopK applies to each of them.
	Vectors [][]float32 `json:"vectors"`

	TopK int `json:"maxResults"`

	Filters *FilterSet `json:"filters,omitempty"`

	// OutputFields limits the returned payload. Empty means all fields.
	OutputFields []string `json:"outputFields,omitempty"`
}

// SearchResult is one scored match.
type SearchResult struct {
	ID string `json:"id"`

	// Score is the raw similarity reported by the store; higher is closer.
	Score float32 `json:"score"`

	Payload map[string]any `json:"payload"`
}
