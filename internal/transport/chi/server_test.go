package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/advsearch/internal/domain"
	"github.com/kailas-cloud/advsearch/internal/domain/field"
	"github.com/kailas-cloud/advsearch/internal/domain/search/aggregation"
	"github.com/kailas-cloud/advsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/advsearch/internal/domain/search/request"
	"github.com/kailas-cloud/advsearch/internal/domain/search/result"
	"github.com/kailas-cloud/advsearch/internal/domain/search/sorting"
	"github.com/kailas-cloud/advsearch/internal/domain/similarity"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
)

// --- Mocks ---

type mockSearch struct {
	searchFn    func(ctx context.Context, req request.Search) (result.Page, error)
	titlesFn    func(ctx context.Context, title string, excludeID int64) ([]result.Summary, error)
	similarFn   func(ctx context.Context, id int64, group string) ([]result.Document, []similarity.TermWeight, error)
	suggestFn   func(ctx context.Context, fieldName, prefix string) ([]string, error)
	searchCalls int
}

func (m *mockSearch) Search(ctx context.Context, req request.Search) (result.Page, error) {
	m.searchCalls++
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return result.Page{}, nil
}

func (m *mockSearch) SimilarTitles(ctx context.Context, title string, excludeID int64) ([]result.Summary, error) {
	if m.titlesFn != nil {
		return m.titlesFn(ctx, title, excludeID)
	}
	return nil, nil
}

func (m *mockSearch) SimilarDocuments(
	ctx context.Context, id int64, group string,
) ([]result.Document, []similarity.TermWeight, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, id, group)
	}
	return nil, nil, nil
}

func (m *mockSearch) Suggest(ctx context.Context, fieldName, prefix string) ([]string, error) {
	if m.suggestFn != nil {
		return m.suggestFn(ctx, fieldName, prefix)
	}
	return nil, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

// --- Helpers ---

func testCatalog(t *testing.T) *field.Catalog {
	t.Helper()
	var fields []field.Descriptor
	for _, spec := range []struct {
		name string
		ft   field.Type
		opts field.Options
	}{
		{"title", field.Text, field.Options{FreetextSearchable: true, SearchBoost: 3}},
		{"numPages", field.Integer, field.Options{Filterable: true, AggregationTarget: "numPages"}},
		{"environments", field.String, field.Options{Filterable: true, AggregationTarget: "environments.keyword"}},
		{"soloable", field.Boolean, field.Options{Filterable: true, AggregationTarget: "soloable"}},
	} {
		f, err := field.New(spec.name, spec.ft, spec.opts)
		if err != nil {
			t.Fatalf("field.New(%s): %v", spec.name, err)
		}
		fields = append(fields, f)
	}
	c, err := field.NewCatalog(fields)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func newTestRouter(t *testing.T, search SearchService, health HealthChecker) http.Handler {
	t.Helper()
	if health == nil {
		health = &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}}
	}
	return NewRouter(NewServer(search, health, testCatalog(t)), nil, zap.NewNop())
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

// --- Search ---

func TestSearch_BindsParametersAndFilters(t *testing.T) {
	var got request.Search
	search := &mockSearch{searchFn: func(_ context.Context, req request.Search) (result.Page, error) {
		got = req
		return result.Page{}, nil
	}}
	h := newTestRouter(t, search, nil)

	params := url.Values{}
	params.Set("q", "ghoul king")
	params.Set("page", "2")
	params.Set("sortBy", "title")
	params.Set("seed", "abc")
	params.Set("numPages", "≥10~≤32")
	params.Set("environments", "dungeon~swamp")
	params.Set("title", "ignored, not filterable")
	params.Set("nonsense", "1")

	rr := do(t, h, "/search?"+params.Encode())
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	if got.Query() != "ghoul king" || got.Page() != 2 || got.SortKey() != sorting.Title || got.Seed() != "abc" {
		t.Errorf("request = %q page %d sort %q seed %q", got.Query(), got.Page(), got.SortKey(), got.Seed())
	}
	if got.PageSize() != request.DefaultPageSize {
		t.Errorf("PageSize() = %d", got.PageSize())
	}
	if got.Filters().Len() != 2 {
		t.Fatalf("Filters().Len() = %d, want 2", got.Filters().Len())
	}
	v, ok := got.Filters().Get("numPages")
	if !ok {
		t.Fatal("numPages filter missing")
	}
	r, ok := v.(filter.IntRange)
	if !ok || r.Min() == nil || *r.Min() != 10 || r.Max() == nil || *r.Max() != 32 {
		t.Errorf("numPages filter = %#v", v)
	}
	v, _ = got.Filters().Get("environments")
	if s, ok := v.(filter.StringSet); !ok || len(s.Values()) != 2 {
		t.Errorf("environments filter = %#v", v)
	}
}

func TestSearch_Defaults(t *testing.T) {
	var got request.Search
	search := &mockSearch{searchFn: func(_ context.Context, req request.Search) (result.Page, error) {
		got = req
		return result.Page{}, nil
	}}
	rr := do(t, newTestRouter(t, search, nil), "/search")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got.Page() != 1 || got.Seed() != "" || got.Query() != "" || got.Filters().Len() != 0 {
		t.Errorf("defaults: page %d seed %q query %q filters %d",
			got.Page(), got.Seed(), got.Query(), got.Filters().Len())
	}
}

func TestSearch_ResponseShape(t *testing.T) {
	search := &mockSearch{searchFn: func(context.Context, request.Search) (result.Page, error) {
		docs := []result.Document{result.New("a1", 1.5, map[string]any{"id": float64(7), "title": "Tomb"})}
		stats := map[string]aggregation.Stat{
			"numPages": aggregation.IntegerStat{Min: 1, Max: 64, CountUnknown: 3},
			"soloable": aggregation.BooleanStat{CountAll: 10, CountUnknown: 1, CountNo: 4, CountYes: 5},
		}
		return result.NewPage(docs, 21, 20, stats), nil
	}}
	rr := do(t, newTestRouter(t, search, nil), "/search?q=tomb")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Items []struct {
			ID       string         `json:"id"`
			Score    float64        `json:"score"`
			Document map[string]any `json:"document"`
		} `json:"items"`
		Total   int64                     `json:"total"`
		HasMore bool                      `json:"hasMore"`
		Stats   map[string]map[string]any `json:"stats"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].ID != "a1" || body.Items[0].Document["title"] != "Tomb" {
		t.Errorf("items = %+v", body.Items)
	}
	if body.Total != 21 || !body.HasMore {
		t.Errorf("total %d hasMore %v", body.Total, body.HasMore)
	}
	if body.Stats["numPages"]["countUnknown"] != float64(3) {
		t.Errorf("numPages stat = %v", body.Stats["numPages"])
	}
	if body.Stats["soloable"]["countYes"] != float64(5) {
		t.Errorf("soloable stat = %v", body.Stats["soloable"])
	}
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		svcErr    error
		wantCode  int
		wantError ErrorCode
		wantCalls int
	}{
		{"page not a number", "/search?page=abc", nil, http.StatusBadRequest, ErrorCodeBadRequest, 0},
		{"page past the result window", "/search?page=251", nil, http.StatusBadRequest, ErrorCodeOutOfRange, 0},
		{"page zero", "/search?page=0", nil, http.StatusBadRequest, ErrorCodeOutOfRange, 0},
		{"page overflowing the window check", "/search?page=4611686018427387904", nil, http.StatusBadRequest, ErrorCodeOutOfRange, 0},
		{
			"misconfigured catalog", "/search",
			fmt.Errorf("build query: %w", domain.ErrLogic), http.StatusInternalServerError, ErrorCodeInternal, 1,
		},
		{
			"index failure", "/search",
			errors.New("connection refused"), http.StatusInternalServerError, ErrorCodeInternal, 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &mockSearch{searchFn: func(context.Context, request.Search) (result.Page, error) {
				return result.Page{}, tt.svcErr
			}}
			rr := do(t, newTestRouter(t, search, nil), tt.target)
			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			resp := decodeError(t, rr)
			if resp.Code != tt.wantError {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantError)
			}
			if tt.wantCode == http.StatusInternalServerError && resp.Message != "internal error" {
				t.Errorf("message leaks internals: %q", resp.Message)
			}
			if search.searchCalls != tt.wantCalls {
				t.Errorf("search calls = %d, want %d", search.searchCalls, tt.wantCalls)
			}
		})
	}
}

// --- Similar titles ---

func TestSimilarTitles(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantTitle   string
		wantExclude int64
	}{
		{"no ignore id", "/similar-titles?title=Lost+Mine", "Lost Mine", -1},
		{"with ignore id", "/similar-titles?title=Lost+Mine&ignoreId=42", "Lost Mine", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var title string
			var exclude int64
			search := &mockSearch{titlesFn: func(_ context.Context, ti string, ex int64) ([]result.Summary, error) {
				title, exclude = ti, ex
				return []result.Summary{{ID: 1, Title: "The Lost Mine", Slug: "the-lost-mine"}}, nil
			}}
			rr := do(t, newTestRouter(t, search, nil), tt.target)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			if title != tt.wantTitle || exclude != tt.wantExclude {
				t.Errorf("called with %q, %d", title, exclude)
			}
			var body SimilarTitlesResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Items) != 1 || body.Items[0].Slug != "the-lost-mine" {
				t.Errorf("items = %+v", body.Items)
			}
		})
	}
}

func TestSimilarTitles_BadIgnoreID(t *testing.T) {
	rr := do(t, newTestRouter(t, &mockSearch{}, nil), "/similar-titles?title=x&ignoreId=abc")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

// --- Similar documents ---

func TestSimilarDocuments(t *testing.T) {
	var gotID int64
	var gotGroup string
	search := &mockSearch{similarFn: func(_ context.Context, id int64, group string) (
		[]result.Document, []similarity.TermWeight, error,
	) {
		gotID, gotGroup = id, group
		return []result.Document{result.New("b2", 2, map[string]any{"title": "Crypt"})},
			[]similarity.TermWeight{{Term: "crypt", Weight: 4.2}}, nil
	}}
	rr := do(t, newTestRouter(t, search, nil), "/documents/17/similar?fieldGroup=bossMonsters")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if gotID != 17 || gotGroup != "bossMonsters" {
		t.Errorf("called with %d, %q", gotID, gotGroup)
	}
	var body SimilarDocumentsResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || len(body.Terms) != 1 || body.Terms[0].Term != "crypt" {
		t.Errorf("body = %+v", body)
	}
}

func TestSimilarDocuments_EmptyListsNotNull(t *testing.T) {
	rr := do(t, newTestRouter(t, &mockSearch{}, nil), "/documents/17/similar?fieldGroup=unknown")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	want := `{"items":[],"terms":[]}` + "\n"
	if rr.Body.String() != want {
		t.Errorf("body = %q, want %q", rr.Body.String(), want)
	}
}

func TestSimilarDocuments_BadID(t *testing.T) {
	rr := do(t, newTestRouter(t, &mockSearch{}, nil), "/documents/abc/similar")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Code != ErrorCodeBadRequest {
		t.Errorf("code = %s", resp.Code)
	}
}

// --- Suggest ---

func TestSuggest(t *testing.T) {
	var gotField, gotPrefix string
	search := &mockSearch{suggestFn: func(_ context.Context, f, p string) ([]string, error) {
		gotField, gotPrefix = f, p
		return []string{"Dungeon", "Dungeon Crawl"}, nil
	}}
	rr := do(t, newTestRouter(t, search, nil), "/fields/environments/suggest?q=dun")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if gotField != "environments" || gotPrefix != "dun" {
		t.Errorf("called with %q, %q", gotField, gotPrefix)
	}
	var body SuggestResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Values) != 2 {
		t.Errorf("values = %v", body.Values)
	}
}

func TestSuggest_UnknownField(t *testing.T) {
	search := &mockSearch{suggestFn: func(context.Context, string, string) ([]string, error) {
		return nil, fmt.Errorf("suggest: %w: %q", domain.ErrUnknownField, "nope")
	}}
	rr := do(t, newTestRouter(t, search, nil), "/fields/nope/suggest")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	resp := decodeError(t, rr)
	if resp.Code != ErrorCodeUnknownField || resp.Message != domain.ErrUnknownField.Error() {
		t.Errorf("response = %+v", resp)
	}
}

// --- Health ---

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		status healthuc.Status
		want   int
	}{
		{healthuc.Healthy, http.StatusOK},
		{healthuc.Degraded, http.StatusOK},
		{healthuc.Unhealthy, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			health := &mockHealth{report: healthuc.Report{
				Status: tt.status,
				Checks: map[string]healthuc.CheckResult{"index": healthuc.CheckOK},
			}}
			rr := do(t, newTestRouter(t, &mockSearch{}, health), "/health")
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			var body HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != string(tt.status) || body.Checks["index"] != "ok" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

// --- Router ---

func TestRouter_UnknownRoute(t *testing.T) {
	rr := do(t, newTestRouter(t, &mockSearch{}, nil), "/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Code != ErrorCodeNotFound {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	rr := do(t, newTestRouter(t, &mockSearch{}, nil), "/health")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	search := &mockSearch{searchFn: func(context.Context, request.Search) (result.Page, error) {
		panic("boom")
	}}
	rr := do(t, newTestRouter(t, search, nil), "/search")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Code != ErrorCodeInternal {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestRouter_Auth(t *testing.T) {
	h := NewRouter(NewServer(&mockSearch{}, &mockHealth{}, testCatalog(t)), []string{"secret"}, zap.NewNop())
	if rr := do(t, h, "/search"); rr.Code != http.StatusUnauthorized {
		t.Errorf("search without key: status = %d", rr.Code)
	}
	if rr := do(t, h, "/health"); rr.Code != http.StatusOK {
		t.Errorf("health without key: status = %d", rr.Code)
	}
}
