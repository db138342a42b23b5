// Package condition evaluates declarative rule groups against in-memory
// value maps. Groups combine rules with AND/OR and may nest.
package condition

import (
	"fmt"
	"strings"
	"time"
)

type Rule struct {
	Field    string      `json:"field" bson:"field"`
	Operator string      `json:"operator" bson:"operator"`
	Value    interface{} `json:"value" bson:"value"`
}

type Group struct {
	Operator string  `json:"operator" bson:"operator"` // "AND" (default) or "OR"
	Rules    []Rule  `json:"rules" bson:"rules"`
	Groups   []Group `json:"groups,omitempty" bson:"groups,omitempty"`
}

// Evaluate reports whether the value map satisfies the group. A nil group or
// an empty group matches everything.
func Evaluate(group *Group, values map[string]interface{}) (bool, error) {
	if group == nil {
		return true, nil
	}

	var results []bool

	for _, rule := range group.Rules {
		ok, err := evaluateRule(rule, values)
		if err != nil {
			return false, err
		}
		results = append(results, ok)
	}

	for i := range group.Groups {
		ok, err := Evaluate(&group.Groups[i], values)
		if err != nil {
			return false, err
		}
		results = append(results, ok)
	}

	if len(results) == 0 {
		return true, nil
	}

	if strings.ToUpper(group.Operator) == "OR" {
		for _, r := range results {
			if r {
				return true, nil
			}
		}
		return false, nil
	}

	for _, r := range results {
		if !r {
			return false, nil
		}
	}
	return true, nil
}

func evaluateRule(rule Rule, values map[string]interface{}) (bool, error) {
	actual, exists := values[rule.Field]

	switch rule.Operator {
	case "eq":
		return exists && Compare(actual, rule.Value) == 0, nil
	case "ne":
		return !exists || Compare(actual, rule.Value) != 0, nil
	case "gt":
		return exists && Compare(actual, rule.Value) > 0, nil
	case "lt":
		return exists && Compare(actual, rule.Value) < 0, nil
	case "gte":
		return exists && Compare(actual, rule.Value) >= 0, nil
	case "lte":
		return exists && Compare(actual, rule.Value) <= 0, nil
	case "in":
		return exists && inList(actual, rule.Value), nil
	case "nin":
		return !exists || !inList(actual, rule.Value), nil
	case "contains":
		return exists && strings.Contains(strings.ToLower(toString(actual)), strings.ToLower(toString(rule.Value))), nil
	case "startsWith", "starts_with":
		return exists && strings.HasPrefix(strings.ToLower(toString(actual)), strings.ToLower(toString(rule.Value))), nil
	case "endsWith", "ends_with":
		return exists && strings.HasSuffix(strings.ToLower(toString(actual)), strings.ToLower(toString(rule.Value))), nil
	default:
		return false, fmt.Errorf("unknown operator: %s", rule.Operator)
	}
}

func inList(actual, list interface{}) bool {
	items, ok := list.([]interface{})
	if !ok {
		if strs, ok := list.([]string); ok {
			for _, s := range strs {
				if Compare(actual, s) == 0 {
					return true
				}
			}
		}
		return false
	}
	for _, item := range items {
		if Compare(actual, item) == 0 {
			return true
		}
	}
	return false
}

// Compare returns -1/0/1 where both sides are comparable, preferring numeric
// comparison, then time, then string comparison.
func Compare(a, b interface{}) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}

	as, bs := toString(a), toString(b)
	return strings.Compare(as, bs)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
