package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
)

// Index is the document search index facade.
type Index interface {
	Pinger
	Searcher
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs queries against the document index.
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
	TermVectors(ctx context.Context, req *TermVectorsRequest) ([]similarity.FieldStats, error)
}

// KV stores opaque values that expire.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache is the key-value store facade.
type Cache interface {
	Pinger
	KV
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
