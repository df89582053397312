package vectordbtest

import "github.com/Aleph-Alpha/tagsearch/v1/vectordb"

func matches(fs *vectordb.FilterSet, payload map[string]any) bool {
	if fs == nil {
		return true
	}
	if fs.Must != nil {
		for _, c := range fs.Must.Conditions {
			if !eval(c, payload) {
				return false
			}
		}
	}
	if fs.Should != nil && len(fs.Should.Conditions) > 0 {
		hit := false
		for _, c := range fs.Should.Conditions {
			if eval(c, payload) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if fs.MustNot != nil {
		for _, c := range fs.MustNot.Conditions {
			if eval(c, payload) {
				return false
			}
		}
	}
	return true
}

func eval(c vectordb.FilterCondition, payload map[string]any) bool {
	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		return equal(payload[cond.Field], cond.Value)
	case *vectordb.MatchAnyCondition:
		for _, v := range cond.Values {
			if equal(payload[cond.Field], v) {
				return true
			}
		}
		return false
	case *vectordb.NumericRangeCondition:
		n, ok := number(payload[cond.Field])
		if !ok {
			return false
		}
		r := cond.Range
		return (r.Gt == nil || n > *r.Gt) &&
			(r.Gte == nil || n >= *r.Gte) &&
			(r.Lt == nil || n < *r.Lt) &&
			(r.Lte == nil || n <= *r.Lte)
	default:
		return false
	}
}

func equal(a, b any) bool {
	na, aok := number(a)
	nb, bok := number(b)
	if aok && bok {
		return na == nb
	}
	return a == b
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
