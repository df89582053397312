package vectordb

// NewFilterSet builds a FilterSet from clauses.
//
//	filters := vectordb.NewFilterSet(
//		vectordb.Must(vectordb.NewMatchAny(vectordb.FieldOwningID, int64(4), int64(9))),
//	)
func NewFilterSet(clauses ...func(*FilterSet)) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must adds conditions that all have to hold.
func Must(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Must = appendConditions(fs.Must, conditions)
	}
}

// Should adds conditions of which at least one has to hold.
func Should(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Should = appendConditions(fs.Should, conditions)
	}
}

// MustNot adds conditions that must not hold.
func MustNot(conditions ...FilterCondition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.MustNot = appendConditions(fs.MustNot, conditions)
	}
}

func appendConditions(cs *ConditionSet, conditions []FilterCondition) *ConditionSet {
	if cs == nil {
		cs = &ConditionSet{}
	}
	cs.Conditions = append(cs.Conditions, conditions...)
	return cs
}

// NewMatch is field == value.
func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value}
}

// NewMatchAny is field IN values.
func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	return &MatchAnyCondition{Field: field, Values: values}
}

// NewMatchAnyInt64 is NewMatchAny for integer ids.
func NewMatchAnyInt64(field string, ids []int64) *MatchAnyCondition {
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return &MatchAnyCondition{Field: field, Values: values}
}

// NewNumericRange restricts field to r.
func NewNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Field: field, Range: r}
}

// Float64Ptr returns &v, for building ranges.
func Float64Ptr(v float64) *float64 {
	return &v
}
