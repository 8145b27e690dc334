package request

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/advsearch/internal/domain"
	"github.com/kailas-cloud/advsearch/internal/domain/search/filter"
	"github.com/kailas-cloud/advsearch/internal/domain/search/sorting"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("ghouls", filter.NewSet(), 1, 0, "", "202642")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "ghouls" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.PageSize() != DefaultPageSize {
		t.Errorf("PageSize() = %d, want %d", r.PageSize(), DefaultPageSize)
	}
	if r.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", r.Offset())
	}
	if r.Seed() != "202642" {
		t.Errorf("Seed() = %q", r.Seed())
	}
}

func TestNew_Offset(t *testing.T) {
	r, err := New("", filter.NewSet(), 3, 20, sorting.Title, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Offset() != 40 {
		t.Errorf("Offset() = %d, want 40", r.Offset())
	}
	if r.SortKey() != sorting.Title {
		t.Errorf("SortKey() = %q", r.SortKey())
	}
}

func TestNew_PageWindow(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		wantErr  bool
	}{
		{"first page", 1, 20, false},
		{"exactly at ceiling", 250, 20, false},
		{"one past ceiling", 251, 20, true},
		{"exact 5000 with size 1", 5000, 1, false},
		{"5001 with size 1", 5001, 1, true},
		{"zero page", 0, 20, true},
		{"negative page", -1, 20, true},
		{"product wraps to zero", math.MaxInt/2 + 1, 20, true},
		{"product wraps negative", math.MaxInt/4 + 1, 20, true},
		{"page size above ceiling", 1, MaxResults + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("", filter.NewSet(), tt.page, tt.pageSize, "", "")
			if tt.wantErr {
				if !errors.Is(err, domain.ErrOutOfRange) {
					t.Fatalf("expected ErrOutOfRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNew_LongQueryAccepted(t *testing.T) {
	q := strings.Repeat("beholder lair ", 1000)
	r, err := New(q, filter.NewSet(), 1, 20, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != q {
		t.Error("query was altered")
	}
}

func TestWeeklySeed(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC) }
	s := NewWeeklySeed(clock)
	if got := s.Seed(); got != "202642" {
		t.Errorf("Seed() = %q, want 202642", got)
	}
}

func TestWeeklySeed_ISOYearBoundary(t *testing.T) {
	// 2027-01-01 is a Friday and belongs to ISO week 53 of 2026.
	clock := func() time.Time { return time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC) }
	if got := NewWeeklySeed(clock).Seed(); got != "202653" {
		t.Errorf("Seed() = %q, want 202653", got)
	}
}

func TestWeeklySeed_StableWithinWeek(t *testing.T) {
	day := time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC) // Monday
	first := NewWeeklySeed(func() time.Time { return day }).Seed()
	last := NewWeeklySeed(func() time.Time { return day.Add(6*24*time.Hour + 23*time.Hour) }).Seed()
	if first != last {
		t.Errorf("seed changed within a week: %q vs %q", first, last)
	}
}

func TestWithSeed(t *testing.T) {
	r, err := New("", filter.NewSet(), 1, 20, sorting.Random, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seeded := r.WithSeed("202601")
	if seeded.Seed() != "202601" || r.Seed() != "" {
		t.Errorf("seeds = %q / %q", seeded.Seed(), r.Seed())
	}
}

func TestFixedSeed(t *testing.T) {
	var src SeedSource = FixedSeed("202601")
	if got := src.Seed(); got != "202601" {
		t.Errorf("Seed() = %q", got)
	}
}
