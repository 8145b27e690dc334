package advsearch

import (
	"context"
	"testing"

	"github.com/kailas-cloud/advsearch/internal/domain/search/request"
	"github.com/kailas-cloud/advsearch/internal/domain/search/result"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, req request.Search) (result.Page, error)
	titlesFn  func(ctx context.Context, title string, excludeID int64) ([]result.Summary, error)
	similarFn func(ctx context.Context, id int64, group string) ([]result.Document, []similarity.TermWeight, error)
	suggestFn func(ctx context.Context, fieldName, prefix string) ([]string, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req request.Search) (result.Page, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) SimilarTitles(ctx context.Context, title string, excludeID int64) ([]result.Summary, error) {
	return m.titlesFn(ctx, title, excludeID)
}

func (m *mockSearchUC) SimilarDocuments(
	ctx context.Context, id int64, group string,
) ([]result.Document, []similarity.TermWeight, error) {
	return m.similarFn(ctx, id, group)
}

func (m *mockSearchUC) Suggest(ctx context.Context, fieldName, prefix string) ([]string, error) {
	return m.suggestFn(ctx, fieldName, prefix)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- pinger mock ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

func testClient(t *testing.T, search searchUseCase) *Client {
	t.Helper()
	catalog, err := buildCatalog([]Field{
		TextField("title", 5),
		IntegerField("numPages", "numPages"),
		StringField("publisher", "publisher.keyword"),
		BooleanField("soloable", "soloable"),
	})
	if err != nil {
		t.Fatalf("buildCatalog: %v", err)
	}
	return &Client{search: search, catalog: catalog, index: &mockPinger{}}
}
