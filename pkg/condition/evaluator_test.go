package condition

import (
	"testing"
	"time"
)

func TestEvaluateRules(t *testing.T) {
	values := map[string]interface{}{
		"status":   "active",
		"amount":   120.5,
		"quantity": 3,
		"name":     "Winter Jacket",
		"created":  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		group   *Group
		want    bool
		wantErr bool
	}{
		{
			name:  "nil group matches",
			group: nil,
			want:  true,
		},
		{
			name:  "empty group matches",
			group: &Group{},
			want:  true,
		},
		{
			name: "eq string",
			group: &Group{Rules: []Rule{
				{Field: "status", Operator: "eq", Value: "active"},
			}},
			want: true,
		},
		{
			name: "eq mixed numeric types",
			group: &Group{Rules: []Rule{
				{Field: "quantity", Operator: "eq", Value: 3.0},
			}},
			want: true,
		},
		{
			name: "gt number",
			group: &Group{Rules: []Rule{
				{Field: "amount", Operator: "gt", Value: 100},
			}},
			want: true,
		},
		{
			name: "missing field fails eq",
			group: &Group{Rules: []Rule{
				{Field: "missing", Operator: "eq", Value: "x"},
			}},
			want: false,
		},
		{
			name: "missing field passes ne",
			group: &Group{Rules: []Rule{
				{Field: "missing", Operator: "ne", Value: "x"},
			}},
			want: true,
		},
		{
			name: "in list",
			group: &Group{Rules: []Rule{
				{Field: "status", Operator: "in", Value: []interface{}{"active", "pending"}},
			}},
			want: true,
		},
		{
			name: "contains case insensitive",
			group: &Group{Rules: []Rule{
				{Field: "name", Operator: "contains", Value: "jacket"},
			}},
			want: true,
		},
		{
			name: "and combination short circuit",
			group: &Group{Rules: []Rule{
				{Field: "status", Operator: "eq", Value: "active"},
				{Field: "amount", Operator: "lt", Value: 100},
			}},
			want: false,
		},
		{
			name: "or combination",
			group: &Group{Operator: "OR", Rules: []Rule{
				{Field: "status", Operator: "eq", Value: "archived"},
				{Field: "amount", Operator: "gte", Value: 120.5},
			}},
			want: true,
		},
		{
			name: "nested group",
			group: &Group{
				Rules: []Rule{{Field: "status", Operator: "eq", Value: "active"}},
				Groups: []Group{
					{Operator: "OR", Rules: []Rule{
						{Field: "quantity", Operator: "gt", Value: 10},
						{Field: "name", Operator: "startsWith", Value: "winter"},
					}},
				},
			},
			want: true,
		},
		{
			name: "time comparison",
			group: &Group{Rules: []Rule{
				{Field: "created", Operator: "gte", Value: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			}},
			want: true,
		},
		{
			name: "unknown operator",
			group: &Group{Rules: []Rule{
				{Field: "status", Operator: "between", Value: "x"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.group, values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Evaluate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}
