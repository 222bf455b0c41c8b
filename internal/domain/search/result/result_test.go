package result

import (
	"testing"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/request"
)

func TestNewPagination_Boundaries(t *testing.T) {
	p := NewPagination(45, 1, 20)
	if p.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", p.TotalPages)
	}
	if p.HasPrev || !p.HasNext {
		t.Errorf("page 1: expected hasPrev=false hasNext=true, got %+v", p)
	}

	p = NewPagination(45, 3, 20)
	if p.HasNext {
		t.Error("last page must not have next")
	}
	if !p.HasPrev {
		t.Error("last page must have prev")
	}
}

func TestNewPagination_EmptyResult(t *testing.T) {
	p := NewPagination(0, 1, 20)
	if p.TotalPages != 0 {
		t.Errorf("expected 0 total pages, got %d", p.TotalPages)
	}
	if p.HasNext || p.HasPrev {
		t.Errorf("empty result must have no neighbors, got %+v", p)
	}
}

func TestNewPagination_ExactMultiple(t *testing.T) {
	p := NewPagination(40, 2, 20)
	if p.TotalPages != 2 {
		t.Errorf("expected 2 total pages, got %d", p.TotalPages)
	}
	if p.HasNext {
		t.Error("final exact page must not have next")
	}
}

func TestFiltersFrom_UnsetAreNull(t *testing.T) {
	req, err := request.New(map[string]string{"q": "lahmacun"})
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	f := FiltersFrom(&req)
	if f.District != nil || f.Cuisine != nil || f.PriceTier != nil || f.MinScore != nil {
		t.Errorf("unset filters must be nil: %+v", f)
	}
	if f.Latitude != nil || f.Longitude != nil {
		t.Error("absent origin must echo as nil coordinates")
	}
	if f.Query != "lahmacun" || f.SortBy != "relevance" {
		t.Errorf("unexpected echo: %+v", f)
	}
}

func TestFiltersFrom_SetAreEchoed(t *testing.T) {
	req, err := request.New(map[string]string{
		"q": "kokorec", "district": "sisli", "price_tier": "2",
		"min_score": "6", "lat": "41.06", "lng": "28.99",
	})
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	f := FiltersFrom(&req)
	if f.District == nil || *f.District != "sisli" {
		t.Errorf("expected district echo, got %v", f.District)
	}
	if f.PriceTier == nil || *f.PriceTier != 2 {
		t.Errorf("expected price tier echo, got %v", f.PriceTier)
	}
	if f.MinScore == nil || *f.MinScore != 6 {
		t.Errorf("expected min score echo, got %v", f.MinScore)
	}
	if f.Latitude == nil || *f.Latitude != 41.06 || f.Longitude == nil || *f.Longitude != 28.99 {
		t.Errorf("expected origin echo, got %v %v", f.Latitude, f.Longitude)
	}
}
