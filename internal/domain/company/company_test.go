package company

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/scoutdex/internal/domain"
)

func validCompany() *Company {
	return &Company{
		Name:        "Acme Robotics",
		Description: "Warehouse automation platform",
		Industry:    IndustrySaaS,
		Stage:       StageSeed,
		Website:     "https://acme.example",
		FitScore:    0.8,
	}
}

func TestValidate(t *testing.T) {
	if err := validCompany().Validate(); err != nil {
		t.Fatalf("valid company rejected: %v", err)
	}

	cases := map[string]func(*Company){
		"empty name":        func(c *Company) { c.Name = "  " },
		"empty description": func(c *Company) { c.Description = "" },
		"bad industry":      func(c *Company) { c.Industry = "fintech" },
		"bad stage":         func(c *Company) { c.Stage = "series_z" },
		"relative website":  func(c *Company) { c.Website = "acme.example/about" },
		"fit score high":    func(c *Company) { c.FitScore = 1.5 },
		"fit score low":     func(c *Company) { c.FitScore = -0.1 },
		"bad evaluation":    func(c *Company) { c.Evaluations = []domain.Evaluation{{Score: 2}} },
	}
	for name, mutate := range cases {
		c := validCompany()
		mutate(c)
		err := c.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", name)
			continue
		}
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: error %v is not ErrValidation", name, err)
		}
	}
}

func TestStageTransitions(t *testing.T) {
	cases := []struct {
		from, to Stage
		ok       bool
	}{
		{StageIdea, StageSeed, true},
		{StageSeed, StageSeed, true},
		{StageSeed, StageMVP, false},
		{StageLater, StageIdea, false},
		{StageSeriesA, StageLater, true},
		{StageSeed, "series_z", false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestSearchProjection(t *testing.T) {
	c := validCompany()
	c.StampCreate(time.Unix(1700000000, 0).UTC())

	if got := c.SearchText(); got != "Acme Robotics Warehouse automation platform" {
		t.Errorf("SearchText = %q", got)
	}

	md := c.SearchMetadata()
	want := map[string]string{
		"entity_type": "company",
		"name":        "Acme Robotics",
		"industry":    "saas",
		"stage":       "seed",
		"fit_score":   "0.8",
		"created_ts":  "1700000000",
	}
	for k, v := range want {
		if md[k] != v {
			t.Errorf("metadata[%s] = %q, want %q", k, md[k], v)
		}
	}
}

func TestFiltersConditions(t *testing.T) {
	min := 0.5
	from := time.Unix(1700000000, 0)
	f := Filters{
		Industries:  []Industry{IndustrySaaS, IndustryMarketplace},
		Stages:      []Stage{StageSeed},
		MinFitScore: &min,
		DateFrom:    &from,
	}
	conds, err := f.Conditions()
	if err != nil {
		t.Fatalf("Conditions: %v", err)
	}
	if len(conds) != 4 {
		t.Fatalf("expected 4 conditions, got %d", len(conds))
	}
	if conds[0].Key() != "industry" || len(conds[0].Matches()) != 2 {
		t.Errorf("industry condition = %+v", conds[0])
	}
	if conds[2].Key() != "fit_score" || conds[2].Range() == nil {
		t.Errorf("fit_score condition = %+v", conds[2])
	}
	if conds[3].Key() != "created_ts" || conds[3].Range().LowerInclusive() == nil {
		t.Errorf("created_ts condition = %+v", conds[3])
	}
}

func TestFiltersRejectUnknownValues(t *testing.T) {
	if _, err := (Filters{Industries: []Industry{"fintech"}}).Conditions(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown industry: %v", err)
	}
	if _, err := (Filters{Stages: []Stage{"series_z"}}).Conditions(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown stage: %v", err)
	}
}
