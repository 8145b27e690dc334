package field

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/advsearch/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	d, err := New("title", String, Options{FreetextSearchable: true, SearchBoost: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name() != "title" {
		t.Errorf("Name() = %q", d.Name())
	}
	if d.SearchBoost() != 3 {
		t.Errorf("SearchBoost() = %f, want 3", d.SearchBoost())
	}
	if d.Filterable() {
		t.Error("Filterable() = true")
	}
}

func TestNew_DefaultBoost(t *testing.T) {
	d, err := New("description", Text, Options{FreetextSearchable: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.SearchBoost() != 1 {
		t.Errorf("SearchBoost() = %f, want 1", d.SearchBoost())
	}
}

func TestNew_BoostIgnoredWithoutFreetext(t *testing.T) {
	d, err := New("numPages", Integer, Options{SearchBoost: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.SearchBoost() != 0 {
		t.Errorf("SearchBoost() = %f, want 0", d.SearchBoost())
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		ft        Type
		opts      Options
		wantLogic bool
	}{
		{"empty name", "", String, Options{}, false},
		{"invalid type", "x", "float", Options{}, false},
		{"text filter", "description", Text, Options{Filterable: true}, true},
		{"url filter", "link", URL, Options{Filterable: true}, true},
		{"text aggregation", "description", Text, Options{AggregationTarget: "description"}, true},
		{"negative boost", "title", String, Options{FreetextSearchable: true, SearchBoost: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fieldName, tt.ft, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, domain.ErrLogic) != tt.wantLogic {
				t.Errorf("errors.Is(ErrLogic) = %v, want %v (err: %v)", !tt.wantLogic, tt.wantLogic, err)
			}
		})
	}
}

func TestTermField(t *testing.T) {
	tests := []struct {
		ft   Type
		want string
	}{
		{String, "edition.keyword"},
		{Integer, "edition"},
		{Boolean, "edition"},
	}
	for _, tt := range tests {
		d := Reconstruct("edition", tt.ft, Options{})
		if got := d.TermField(); got != tt.want {
			t.Errorf("TermField(%s) = %q, want %q", tt.ft, got, tt.want)
		}
	}
}

func TestCatalog_OrderAndSelection(t *testing.T) {
	c, err := NewCatalog([]Descriptor{
		Reconstruct("title", String, Options{FreetextSearchable: true, SearchBoost: 2}),
		Reconstruct("numPages", Integer, Options{Filterable: true, AggregationTarget: "numPages"}),
		Reconstruct("description", Text, Options{FreetextSearchable: true}),
		Reconstruct("edition", String, Options{Filterable: true, FreetextSearchable: true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filterable := c.Filterable()
	if len(filterable) != 2 || filterable[0].Name() != "numPages" || filterable[1].Name() != "edition" {
		t.Errorf("Filterable() = %v", names(filterable))
	}
	freetext := c.Freetext()
	if len(freetext) != 3 || freetext[0].Name() != "title" || freetext[2].Name() != "edition" {
		t.Errorf("Freetext() = %v", names(freetext))
	}
	if len(c.All()) != 4 {
		t.Errorf("All() len = %d", len(c.All()))
	}
}

func TestCatalog_Get(t *testing.T) {
	c, err := NewCatalog([]Descriptor{Reconstruct("title", String, Options{})})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Get("title"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = c.Get("missing")
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestCatalog_Duplicate(t *testing.T) {
	_, err := NewCatalog([]Descriptor{
		Reconstruct("title", String, Options{}),
		Reconstruct("title", Text, Options{}),
	})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
}

func names(ds []Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name()
	}
	return out
}
