package domain

// Op is a filter condition operator.
type Op string

const (
	OpEq       Op = "eq"       // exact equality
	OpContains Op = "contains" // case-insensitive substring; matches any element on array fields
	OpIn       Op = "in"       // set membership
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpLt       Op = "lt"
	OpGt       Op = "gt"
)

// Cond is a single field constraint.
type Cond struct {
	Field string
	Op    Op
	Value any
}

// Filter is a typed filter specification: Conds are ANDed together, and each
// group in Ors is a disjunction that must hold in addition to Conds. Built
// fresh per request, never persisted.
type Filter struct {
	Conds []Cond
	Ors   [][]Cond
}

// Eq adds an exact-equality constraint.
func (f Filter) Eq(field string, v any) Filter {
	f.Conds = append(f.Conds, Cond{Field: field, Op: OpEq, Value: v})
	return f
}

// Contains adds a case-insensitive substring constraint.
func (f Filter) Contains(field, v string) Filter {
	f.Conds = append(f.Conds, Cond{Field: field, Op: OpContains, Value: v})
	return f
}

// In adds a set-membership constraint.
func (f Filter) In(field string, vals []string) Filter {
	f.Conds = append(f.Conds, Cond{Field: field, Op: OpIn, Value: vals})
	return f
}

// Gte adds an inclusive lower bound.
func (f Filter) Gte(field string, v any) Filter {
	f.Conds = append(f.Conds, Cond{Field: field, Op: OpGte, Value: v})
	return f
}

// Lte adds an inclusive upper bound.
func (f Filter) Lte(field string, v any) Filter {
	f.Conds = append(f.Conds, Cond{Field: field, Op: OpLte, Value: v})
	return f
}

// Lt adds an exclusive upper bound.
func (f Filter) Lt(field string, v any) Filter {
	f.Conds = append(f.Conds, Cond{Field: field, Op: OpLt, Value: v})
	return f
}

// Gt adds an exclusive lower bound.
func (f Filter) Gt(field string, v any) Filter {
	f.Conds = append(f.Conds, Cond{Field: field, Op: OpGt, Value: v})
	return f
}

// AnyOf adds a disjunction: at least one of the given conditions must hold.
// Empty groups are dropped.
func (f Filter) AnyOf(conds ...Cond) Filter {
	if len(conds) == 0 {
		return f
	}
	f.Ors = append(f.Ors, conds)
	return f
}

// IsZero reports whether the filter has no constraints at all.
func (f Filter) IsZero() bool {
	return len(f.Conds) == 0 && len(f.Ors) == 0
}
