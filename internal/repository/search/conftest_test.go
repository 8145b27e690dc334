package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/advsearch/internal/db"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn      func(ctx context.Context, req *db.SearchRequest) (*db.SearchResponse, error)
	termVectorsFn func(ctx context.Context, req *db.TermVectorsRequest) ([]similarity.FieldStats, error)
}

func (m *mockStore) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResponse, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &db.SearchResponse{}, nil
}

func (m *mockStore) TermVectors(ctx context.Context, req *db.TermVectorsRequest) ([]similarity.FieldStats, error) {
	if m.termVectorsFn != nil {
		return m.termVectorsFn(ctx, req)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
