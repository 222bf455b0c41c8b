package ranking

import (
	"testing"

	"github.com/FeritTasdildiren/iyisiniye/internal/domain/search/request"
)

func chainFor(t *testing.T, raw map[string]string) Chain {
	t.Helper()
	req, err := request.New(raw)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return For(&req)
}

func TestFor_Relevance(t *testing.T) {
	c := chainFor(t, map[string]string{"q": "lahmacun"})
	if len(c) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(c))
	}
	if c[0].Key != KeyScore || c[0].Direction != Desc || !c[0].NullsLast {
		t.Errorf("expected score desc nulls last, got %+v", c[0])
	}
	if c[1].Key != KeyID || c[1].Direction != Asc {
		t.Errorf("expected id asc tie-break, got %+v", c[1])
	}
	if c.UsesDistance() {
		t.Error("relevance chain must not use distance")
	}
}

func TestFor_Distance(t *testing.T) {
	c := chainFor(t, map[string]string{
		"q": "lahmacun", "sort_by": "distance", "lat": "41.0", "lng": "29.0",
	})
	if len(c) != 3 {
		t.Fatalf("expected 3 terms, got %d", len(c))
	}
	if c[0].Key != KeyDistance || c[0].Direction != Asc {
		t.Errorf("expected distance asc first, got %+v", c[0])
	}
	if c[1].Key != KeyScore || c[1].Direction != Desc || !c[1].NullsLast {
		t.Errorf("expected score desc nulls last second, got %+v", c[1])
	}
	if c[2].Key != KeyID {
		t.Errorf("expected id tie-break last, got %+v", c[2])
	}
	if !c.UsesDistance() {
		t.Error("distance chain must report UsesDistance")
	}
}

func TestFor_Recency(t *testing.T) {
	c := chainFor(t, map[string]string{"q": "lahmacun", "sort_by": "recency"})
	if len(c) != 3 {
		t.Fatalf("expected 3 terms, got %d", len(c))
	}
	if c[0].Key != KeyCreatedAt || c[0].Direction != Desc {
		t.Errorf("expected created_at desc first, got %+v", c[0])
	}
	if c[2].Key != KeyID || c[2].Direction != Asc {
		t.Errorf("expected id asc tie-break, got %+v", c[2])
	}
}

func TestFor_EveryChainEndsOnID(t *testing.T) {
	cases := []map[string]string{
		{"q": "lahmacun"},
		{"q": "lahmacun", "sort_by": "recency"},
		{"q": "lahmacun", "sort_by": "distance", "lat": "41.0", "lng": "29.0"},
	}
	for _, raw := range cases {
		c := chainFor(t, raw)
		last := c[len(c)-1]
		if last.Key != KeyID || last.Direction != Asc {
			t.Errorf("sort_by=%s: chain must end on id asc, got %+v", raw["sort_by"], last)
		}
	}
}
