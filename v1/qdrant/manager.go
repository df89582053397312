package qdrant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	qdrant "github.com/qdrant/go-client/qdrant"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/tagsearch/v1/vectordb"
)

// Logger is the logging surface used by this package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// State is the connection state of a Manager.
type State int32

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// pointsAPI is the part of *qdrant.Client the manager and collections use.
type pointsAPI interface {
	HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error)
	GetCollectionInfo(ctx context.Context, collectionName string) (*qdrant.CollectionInfo, error)
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Delete(ctx context.Context, request *qdrant.DeletePoints) (*qdrant.UpdateResult, error)
	Count(ctx context.Context, request *qdrant.CountPoints) (uint64, error)
	QueryBatch(ctx context.Context, request *qdrant.QueryBatchPoints) ([]*qdrant.BatchResult, error)
	Close() error
}

type dialFunc func(ctx context.Context, cfg Config) (pointsAPI, error)

// Manager owns the single connection to the vector store. It connects lazily,
// reuses the connection for every caller and hands out collection handles.
type Manager struct {
	cfg    Config
	logger Logger
	dial   dialFunc

	mu    sync.RWMutex
	api   pointsAPI
	state State

	connecting singleflight.Group
}

// NewManager returns a disconnected manager for cfg.
func NewManager(cfg Config, logger Logger) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		cfg:    cfg,
		logger: logger,
		dial:   dialQdrant,
		state:  Disconnected,
	}
}

var (
	sharedMu sync.Mutex
	shared   atomic.Pointer[Manager]
)

// Shared returns the process-wide manager, creating it from cfg on first use.
// Later calls return the same instance and ignore their arguments.
func Shared(cfg Config, logger Logger) *Manager {
	if m := shared.Load(); m != nil {
		return m
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if m := shared.Load(); m != nil {
		return m
	}
	m := NewManager(cfg, logger)
	shared.Store(m)
	return m
}

func dialQdrant(ctx context.Context, cfg Config) (pointsAPI, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Host,
		Port:                   cfg.Port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	hctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if _, err := client.HealthCheck(hctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}
	return client, nil
}

// State reports the current connection state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Connect makes sure the manager is connected. It returns true right away when
// already connected; otherwise it dials and reports whether that worked. The
// failure cause is logged, not returned. Concurrent callers share one attempt.
func (m *Manager) Connect(ctx context.Context) bool {
	return m.connect(ctx) == nil
}

func (m *Manager) connect(ctx context.Context) error {
	if m.State() == Connected {
		return nil
	}

	// The dial outlives the caller that started it; every caller waits on its
	// own context instead.
	dialCtx := context.WithoutCancel(ctx)
	ch := m.connecting.DoChan("connect", func() (any, error) {
		if m.State() == Connected {
			return nil, nil
		}

		api, err := m.dial(dialCtx, m.cfg)
		if err != nil {
			m.logger.Error("Failed to connect to vector store", err, map[string]interface{}{
				"host": m.cfg.Host,
				"port": m.cfg.Port,
			})
			return nil, err
		}

		m.mu.Lock()
		m.api = api
		m.state = Connected
		m.mu.Unlock()

		m.logger.Info("Connected to vector store", nil, map[string]interface{}{
			"host": m.cfg.Host,
			"port": m.cfg.Port,
		})
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetCollection connects if needed and returns the configured collection.
// The collection must already exist. With load set it must also be ready to
// serve queries.
func (m *Manager) GetCollection(ctx context.Context, load bool) (vectordb.Collection, error) {
	if err := m.connect(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	m.mu.RLock()
	api := m.api
	m.mu.RUnlock()
	if api == nil {
		return nil, ErrNotConnected
	}

	info, err := api.GetCollectionInfo(ctx, m.cfg.Collection)
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, m.cfg.Collection)
		}
		return nil, fmt.Errorf("[Qdrant] failed to get collection '%s': %w", m.cfg.Collection, err)
	}

	if load {
		if err := m.checkReady(info); err != nil {
			return nil, err
		}
	}

	return &Collection{name: m.cfg.Collection, api: api}, nil
}

func (m *Manager) checkReady(info *qdrant.CollectionInfo) error {
	switch info.GetStatus() {
	case qdrant.CollectionStatus_Green, qdrant.CollectionStatus_Yellow:
	default:
		return fmt.Errorf("%w: %s is %s", ErrCollectionNotReady, m.cfg.Collection, info.GetStatus().String())
	}

	if _, distance := extractVectorDetails(info); distance != "" && distance != qdrant.Distance_Cosine.String() {
		m.logger.Warn("Collection does not use cosine distance", nil, map[string]interface{}{
			"collection": m.cfg.Collection,
			"distance":   distance,
		})
	}
	return nil
}

// Disconnect closes the connection. Calling it while disconnected does nothing.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Connected {
		return
	}
	if err := m.api.Close(); err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Warn("Error while closing vector store connection", err, nil)
	}
	m.api = nil
	m.state = Disconnected
}
