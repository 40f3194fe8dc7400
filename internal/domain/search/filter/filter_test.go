package filter

import "testing"

func TestNewMatch(t *testing.T) {
	c, err := NewMatch("industry", "saas", "marketplace")
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	if !c.IsMatch() || c.IsRange() {
		t.Fatalf("expected match condition, got %+v", c)
	}
	if c.Key() != "industry" {
		t.Errorf("key = %q", c.Key())
	}
	if got := c.Matches(); len(got) != 2 || got[0] != "saas" || got[1] != "marketplace" {
		t.Errorf("matches = %v", got)
	}
}

func TestNewMatchRejectsEmpty(t *testing.T) {
	if _, err := NewMatch("", "x"); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := NewMatch("stage"); err == nil {
		t.Error("expected error for no values")
	}
	if _, err := NewMatch("stage", ""); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestNewRangeBounds(t *testing.T) {
	lo, hi := 0.5, 0.9
	r, err := NewRangeBounds(nil, &lo, nil, &hi)
	if err != nil {
		t.Fatalf("NewRangeBounds: %v", err)
	}
	if r.LowerInclusive() == nil || *r.LowerInclusive() != 0.5 {
		t.Errorf("gte = %v", r.LowerInclusive())
	}
	if r.UpperInclusive() == nil || *r.UpperInclusive() != 0.9 {
		t.Errorf("lte = %v", r.UpperInclusive())
	}

	if _, err := NewRangeBounds(nil, nil, nil, nil); err == nil {
		t.Error("expected error for empty range")
	}
	if _, err := NewRangeBounds(&lo, &lo, nil, nil); err == nil {
		t.Error("expected error for gt+gte")
	}
	if _, err := NewRangeBounds(nil, nil, &hi, &hi); err == nil {
		t.Error("expected error for lt+lte")
	}
}

func TestRangeHelpers(t *testing.T) {
	r := GTE(0.7)
	if r.LowerInclusive() == nil || *r.LowerInclusive() != 0.7 {
		t.Errorf("GTE lower = %v", r.LowerInclusive())
	}
	if r.UpperInclusive() != nil || r.GT() != nil || r.LT() != nil {
		t.Error("GTE should only set the inclusive lower bound")
	}

	b := Between(10, 20)
	if b.LowerInclusive() == nil || *b.LowerInclusive() != 10 {
		t.Errorf("Between lower = %v", b.LowerInclusive())
	}
	if b.UpperInclusive() == nil || *b.UpperInclusive() != 20 {
		t.Errorf("Between upper = %v", b.UpperInclusive())
	}
}

func TestValidateConditionCount(t *testing.T) {
	conds := make([]Condition, MaxConditions)
	for i := range conds {
		conds[i], _ = NewMatch("k", "v")
	}
	if err := Validate(conds); err != nil {
		t.Errorf("Validate at limit: %v", err)
	}
	extra, _ := NewMatch("k", "v")
	if err := Validate(append(conds, extra)); err == nil {
		t.Error("expected error above limit")
	}
}
