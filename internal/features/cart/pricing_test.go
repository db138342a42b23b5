package cart

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestEvaluateDiscountThreshold(t *testing.T) {
	rules := []PricingRule{{
		Name: "10 off over 100",
		Script: `
if subtotal >= 100 {
	discount = 10.0
}
`,
	}}

	got := EvaluateDiscount(context.Background(), rules, 150, 3, "customer", zap.NewNop())
	if got != 10 {
		t.Errorf("discount = %v, want 10", got)
	}

	got = EvaluateDiscount(context.Background(), rules, 50, 1, "customer", zap.NewNop())
	if got != 0 {
		t.Errorf("discount below threshold = %v, want 0", got)
	}
}

func TestEvaluateDiscountUserType(t *testing.T) {
	rules := []PricingRule{{
		Name: "wholesale percentage",
		Script: `
if user_type == "wholesale" {
	discount = subtotal * 0.15
}
`,
	}}

	got := EvaluateDiscount(context.Background(), rules, 200, 4, "wholesale", zap.NewNop())
	if got != 30 {
		t.Errorf("wholesale discount = %v, want 30", got)
	}

	got = EvaluateDiscount(context.Background(), rules, 200, 4, "customer", zap.NewNop())
	if got != 0 {
		t.Errorf("customer discount = %v, want 0", got)
	}
}

func TestEvaluateDiscountAccumulatesInPriorityOrder(t *testing.T) {
	rules := []PricingRule{
		{Name: "flat", Script: `discount = 5.0`},
		{Name: "bulk", Script: `
if item_count >= 10 {
	discount = 20.0
}
`},
	}

	got := EvaluateDiscount(context.Background(), rules, 300, 12, "customer", zap.NewNop())
	if got != 25 {
		t.Errorf("combined discount = %v, want 25", got)
	}
}

func TestEvaluateDiscountGuards(t *testing.T) {
	// A broken script and a negative discount are both ignored.
	rules := []PricingRule{
		{Name: "broken", Script: `discount = )nope(`},
		{Name: "negative", Script: `discount = -50.0`},
		{Name: "good", Script: `discount = 5.0`},
	}

	got := EvaluateDiscount(context.Background(), rules, 100, 2, "customer", zap.NewNop())
	if got != 5 {
		t.Errorf("guarded discount = %v, want 5", got)
	}
}

func TestEvaluateDiscountCappedAtSubtotal(t *testing.T) {
	rules := []PricingRule{{Name: "too generous", Script: `discount = 500.0`}}

	got := EvaluateDiscount(context.Background(), rules, 80, 1, "customer", zap.NewNop())
	if got != 80 {
		t.Errorf("capped discount = %v, want 80", got)
	}
}
