package filter

import "fmt"

// MaxConditions is the maximum number of conditions in a single filter.
const MaxConditions = 32

// Condition is a single filter clause combined with AND semantics:
// either a tag match (any of the listed values) or a numeric range.
// An absent field means "no constraint", never "match empty".
type Condition struct {
	key       string
	matches   []string
	rangeExpr *Range
}

// NewMatch creates a tag match condition. With multiple values the
// condition matches documents carrying any of them.
func NewMatch(key string, values ...string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if len(values) == 0 {
		return Condition{}, fmt.Errorf("at least one match value is required for key %q", key)
	}
	for _, v := range values {
		if v == "" {
			return Condition{}, fmt.Errorf("empty match value for key %q", key)
		}
	}
	return Condition{key: key, matches: values}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, rangeExpr: &r}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Matches returns the accepted tag values.
func (c Condition) Matches() []string { return c.matches }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsMatch reports whether this is a tag match condition.
func (c Condition) IsMatch() bool { return len(c.matches) > 0 }

// IsRange reports whether this is a numeric range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// Validate checks a condition set for well-formedness.
func Validate(conds []Condition) error {
	if len(conds) > MaxConditions {
		return fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	return nil
}

// Range is a numeric range with optional inclusive/exclusive boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeBounds validates and creates a Range. At least one boundary is
// required; gt/gte and lt/lte are mutually exclusive.
func NewRangeBounds(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GTE creates a lower-inclusive range.
func GTE(v float64) Range { return Range{gte: &v} }

// Between creates an inclusive range on both ends.
func Between(lo, hi float64) Range { return Range{gte: &lo, lte: &hi} }

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// LowerInclusive returns the lower inclusive bound.
func (r Range) LowerInclusive() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// UpperInclusive returns the upper inclusive bound.
func (r Range) UpperInclusive() *float64 { return r.lte }
