package embedding

import (
	"context"
	"fmt"
)

const (
	cacheHit  = "hit"
	cacheMiss = "miss"
)

// Client embeds texts through a Provider with a read-through cache in front.
// Service failures never reach callers: they get zero vectors instead.
type Client struct {
	cfg      Config
	provider Provider
	cache    Cache
	logger   Logger
	recorder Recorder
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithProvider replaces the HTTP provider.
func WithProvider(p Provider) ClientOption {
	return func(c *Client) { c.provider = p }
}

// WithCache enables caching through cache.
func WithCache(cache Cache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

// WithRecorder reports cache and degradation counts to r.
func WithRecorder(r Recorder) ClientOption {
	return func(c *Client) { c.recorder = r }
}

// NewClient validates cfg and builds a client. Without WithProvider the client
// talks to cfg.Endpoint over HTTP.
func NewClient(cfg Config, logger Logger, opts ...ClientOption) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	c := &Client{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(c)
	}

	if c.provider == nil {
		p, err := NewInferenceProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
		}
		c.provider = p
	}

	return c, nil
}

// Dimension is the configured vector length.
func (c *Client) Dimension() int {
	return c.cfg.Dimension
}

// EmbedBatch returns exactly one vector of the configured dimension per text,
// in input order. With useCache, only texts missing from the cache are sent to
// the service and fresh vectors are written back. If the service call fails,
// every text that needed it gets a zero vector.
func (c *Client) EmbedBatch(ctx context.Context, texts []string, useCache bool) [][]float32 {
	out := make([][]float32, len(texts))
	if len(texts) == 0 {
		return out
	}

	useCache = useCache && c.cache != nil
	keys := make([]string, len(texts))
	missing := make([]int, 0, len(texts))

	if useCache {
		for i, t := range texts {
			keys[i] = CacheKey(c.cfg.Model, t)
		}
		cached, err := c.cache.GetMany(ctx, keys)
		if err != nil {
			c.logger.Warn("embedding cache read failed, treating as miss", err, nil)
		}
		for i := range texts {
			if v, ok := cached[keys[i]]; ok && len(v) == c.cfg.Dimension {
				out[i] = v
				continue
			}
			missing = append(missing, i)
		}
		c.record(len(texts)-len(missing), len(missing))
	} else {
		for i := range texts {
			missing = append(missing, i)
		}
	}

	if len(missing) == 0 {
		return out
	}

	batch := make([]string, len(missing))
	for j, i := range missing {
		batch[j] = texts[i]
	}

	res := c.embed(ctx, batch)
	if res.outcome == OutcomeDegraded {
		c.logger.Error("embedding service failed, using zero vectors", res.err, map[string]interface{}{
			"texts":     len(batch),
			"dimension": c.cfg.Dimension,
			"model":     c.cfg.Model,
		})
		if c.recorder != nil {
			c.recorder.RecordEmbeddingDegraded(len(batch))
		}
	}

	fresh := make(map[string][]float32, len(missing))
	for j, i := range missing {
		out[i] = res.vectors[j]
		if useCache && res.outcome == OutcomeOK {
			fresh[keys[i]] = res.vectors[j]
		}
	}

	if len(fresh) > 0 {
		if err := c.cache.SetMany(ctx, fresh, c.cfg.CacheTTL); err != nil {
			c.logger.Warn("embedding cache write failed", err, map[string]interface{}{
				"entries": len(fresh),
			})
		}
	}

	return out
}

// EmbedOne embeds a single text.
func (c *Client) EmbedOne(ctx context.Context, text string) []float32 {
	vectors := c.EmbedBatch(ctx, []string{text}, true)
	if len(vectors) == 0 {
		return make([]float32, c.cfg.Dimension)
	}
	return vectors[0]
}

// embed calls the provider once and validates the answer. A failed call comes
// back as OutcomeDegraded with zero vectors and the cause.
func (c *Client) embed(ctx context.Context, texts []string) result {
	vectors, err := c.provider.Create(ctx, c.cfg.Model, texts...)
	if err == nil {
		err = validate(vectors, len(texts), c.cfg.Dimension)
	}
	if err != nil {
		return result{
			vectors: zeroVectors(len(texts), c.cfg.Dimension),
			outcome: OutcomeDegraded,
			err:     err,
		}
	}
	return result{vectors: vectors, outcome: OutcomeOK}
}

func (c *Client) record(hits, misses int) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordCacheLookup(cacheHit, hits)
	c.recorder.RecordCacheLookup(cacheMiss, misses)
}
