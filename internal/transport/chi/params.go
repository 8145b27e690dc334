package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/advsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/advsearch/internal/domain/search/request"
	"github.com/kailas-cloud/advsearch/internal/domain/search/sorting"
)

// Query parameter names.
const (
	paramQuery      = "q"
	paramSortBy     = "sortBy"
	paramSeed       = "seed"
	paramPage       = "page"
	paramTitle      = "title"
	paramIgnoreID   = "ignoreId"
	paramFieldGroup = "fieldGroup"
)

// badParamError marks a query or path parameter that failed to bind.
type badParamError struct {
	name string
	err  error
}

func (e *badParamError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %v", e.name, e.err)
}

func (e *badParamError) Unwrap() error { return e.err }

// optionalQuery binds an optional form-style query parameter into dest.
// dest keeps its value when the parameter is absent.
func optionalQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &badParamError{name: name, err: err}
	}
	return nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	var v int64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, &badParamError{name: name, err: err}
	}
	return v, nil
}

func pathString(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", &badParamError{name: name, err: err}
	}
	return v, nil
}

// searchRequest reads q, sortBy, seed, page and one raw filter per filterable
// catalog field. Parameters that match no catalog field are ignored.
func (s *Server) searchRequest(r *http.Request) (request.Search, error) {
	var (
		q      string
		sortBy string
		seed   string
		page   = 1
	)
	for name, dest := range map[string]any{
		paramQuery:  &q,
		paramSortBy: &sortBy,
		paramSeed:   &seed,
		paramPage:   &page,
	} {
		if err := optionalQuery(r, name, dest); err != nil {
			return request.Search{}, err
		}
	}

	filters := filter.NewSet()
	values := r.URL.Query()
	for _, f := range s.catalog.Filterable() {
		if !values.Has(f.Name()) {
			continue
		}
		v, err := filter.Decode(f.FieldType(), values.Get(f.Name()))
		if err != nil {
			return request.Search{}, fmt.Errorf("decode filter %q: %w", f.Name(), err)
		}
		filters = filters.With(f.Name(), v)
	}

	req, err := request.New(q, filters, page, request.DefaultPageSize, sorting.Key(sortBy), seed)
	if err != nil {
		return request.Search{}, fmt.Errorf("build search request: %w", err)
	}
	return req, nil
}
