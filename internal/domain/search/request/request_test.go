package request

import (
	"errors"
	"testing"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain"
)

func mustNew(t *testing.T, raw map[string]string) Request {
	t.Helper()
	r, err := New(raw)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func validationField(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation sentinel, got %v", err)
	}
	return ve.Field
}

func TestNew_Defaults(t *testing.T) {
	r := mustNew(t, map[string]string{"q": "lahmacun"})
	if r.Sort() != SortRelevance {
		t.Errorf("expected default sort relevance, got %s", r.Sort())
	}
	if r.Page() != 1 {
		t.Errorf("expected default page 1, got %d", r.Page())
	}
	if r.PageSize() != DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", DefaultPageSize, r.PageSize())
	}
	if r.Origin() != nil {
		t.Error("expected nil origin")
	}
}

func TestNew_TrimsAndLowercases(t *testing.T) {
	r := mustNew(t, map[string]string{
		"q":        "  LAHMACUN ",
		"district": " Kadikoy ",
		"cuisine":  "Kebap",
	})
	if r.Query() != "lahmacun" {
		t.Errorf("expected normalized query, got %q", r.Query())
	}
	if r.District() != "kadikoy" {
		t.Errorf("expected normalized district, got %q", r.District())
	}
	if r.Cuisine() != "kebap" {
		t.Errorf("expected normalized cuisine, got %q", r.Cuisine())
	}
}

func TestNew_QueryTooShort(t *testing.T) {
	_, err := New(map[string]string{"q": " a "})
	if got := validationField(t, err); got != "q" {
		t.Errorf("expected field q, got %s", got)
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'k'
	}
	_, err := New(map[string]string{"q": string(long)})
	if got := validationField(t, err); got != "q" {
		t.Errorf("expected field q, got %s", got)
	}
}

func TestNew_PriceTierRange(t *testing.T) {
	for _, bad := range []string{"0", "5", "abc", "1.5"} {
		_, err := New(map[string]string{"q": "kebap", "price_tier": bad})
		if got := validationField(t, err); got != "price_tier" {
			t.Errorf("price_tier=%q: expected field price_tier, got %s", bad, got)
		}
	}
	r := mustNew(t, map[string]string{"q": "kebap", "price_tier": "4"})
	if r.PriceTier() != 4 {
		t.Errorf("expected tier 4, got %d", r.PriceTier())
	}
}

func TestNew_MinScoreRange(t *testing.T) {
	for _, bad := range []string{"0.5", "10.1", "x"} {
		_, err := New(map[string]string{"q": "kebap", "min_score": bad})
		if got := validationField(t, err); got != "min_score" {
			t.Errorf("min_score=%q: expected field min_score, got %s", bad, got)
		}
	}
	r := mustNew(t, map[string]string{"q": "kebap", "min_score": "7.5"})
	if r.MinScore() != 7.5 {
		t.Errorf("expected 7.5, got %f", r.MinScore())
	}
}

func TestNew_PageAndSizeBounds(t *testing.T) {
	_, err := New(map[string]string{"q": "kebap", "page": "0"})
	if got := validationField(t, err); got != "page" {
		t.Errorf("expected field page, got %s", got)
	}
	_, err = New(map[string]string{"q": "kebap", "page_size": "51"})
	if got := validationField(t, err); got != "page_size" {
		t.Errorf("expected field page_size, got %s", got)
	}
	r := mustNew(t, map[string]string{"q": "kebap", "page": "3", "page_size": "10"})
	if r.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", r.Offset())
	}
}

func TestNew_DistanceSortWithoutCoordinates(t *testing.T) {
	_, err := New(map[string]string{"q": "kebap", "sort_by": "distance"})
	if got := validationField(t, err); got != "coordinates" {
		t.Errorf("expected field coordinates, got %s", got)
	}
}

func TestNew_DistanceSortWithCoordinates(t *testing.T) {
	r := mustNew(t, map[string]string{
		"q": "kebap", "sort_by": "distance", "lat": "40.99", "lng": "29.03",
	})
	if r.Sort() != SortDistance {
		t.Errorf("expected distance sort, got %s", r.Sort())
	}
	o := r.Origin()
	if o == nil || o.Latitude != 40.99 || o.Longitude != 29.03 {
		t.Errorf("unexpected origin: %+v", o)
	}
}

func TestNew_LatWithoutLng(t *testing.T) {
	_, err := New(map[string]string{"q": "kebap", "lat": "41.0"})
	if got := validationField(t, err); got != "coordinates" {
		t.Errorf("expected field coordinates, got %s", got)
	}
}

func TestNew_CoordinatesOutOfRange(t *testing.T) {
	_, err := New(map[string]string{"q": "kebap", "lat": "91", "lng": "29"})
	if got := validationField(t, err); got != "coordinates" {
		t.Errorf("expected field coordinates, got %s", got)
	}
}

func TestNew_InvalidSort(t *testing.T) {
	_, err := New(map[string]string{"q": "kebap", "sort_by": "price"})
	if got := validationField(t, err); got != "sort_by" {
		t.Errorf("expected field sort_by, got %s", got)
	}
}

func TestNew_ScoreSortAlias(t *testing.T) {
	r := mustNew(t, map[string]string{"q": "lahmacun", "sort_by": "score"})
	if r.Sort() != SortRelevance {
		t.Errorf("expected score alias to map to relevance, got %s", r.Sort())
	}
}

func TestFields_OnlySetFilters(t *testing.T) {
	r := mustNew(t, map[string]string{"q": "kebap"})
	f := r.Fields()
	if _, ok := f["district"]; ok {
		t.Error("unset district should not appear in fields")
	}
	if f["q"] != "kebap" || f["sort_by"] != "relevance" || f["page"] != "1" || f["page_size"] != "20" {
		t.Errorf("unexpected base fields: %v", f)
	}
}

func TestFields_DeterministicAcrossInputOrder(t *testing.T) {
	a := mustNew(t, map[string]string{
		"q": "iskender", "district": "besiktas", "min_score": "6", "price_tier": "2",
	})
	b := mustNew(t, map[string]string{
		"price_tier": "2", "min_score": "6.0", "district": " Besiktas", "q": " Iskender ",
	})
	fa, fb := a.Fields(), b.Fields()
	if len(fa) != len(fb) {
		t.Fatalf("field maps differ in size: %v vs %v", fa, fb)
	}
	for k, v := range fa {
		if fb[k] != v {
			t.Errorf("field %s differs: %q vs %q", k, v, fb[k])
		}
	}
}
