package cart

import (
	"context"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

// EvaluateDiscount runs every active pricing rule against the cart summary
// and accumulates the discounts they assign. A rule that fails to run is
// skipped so one broken script cannot block checkout. The combined discount
// never exceeds the subtotal.
func EvaluateDiscount(ctx context.Context, rules []PricingRule, subtotal float64, itemCount int, userType string, logger *zap.Logger) float64 {
	total := 0.0
	for _, rule := range rules {
		discount, err := runRule(ctx, rule, subtotal, itemCount, userType)
		if err != nil {
			logger.Warn("pricing rule failed",
				zap.String("rule", rule.Name),
				zap.Error(err))
			continue
		}
		if discount < 0 {
			logger.Warn("pricing rule returned a negative discount, ignoring",
				zap.String("rule", rule.Name),
				zap.Float64("discount", discount))
			continue
		}
		total += discount
	}

	if total > subtotal {
		total = subtotal
	}
	return total
}

func runRule(ctx context.Context, rule PricingRule, subtotal float64, itemCount int, userType string) (float64, error) {
	script := tengo.NewScript([]byte(rule.Script))
	script.SetImports(stdlib.GetModuleMap("math", "fmt", "text"))

	if err := script.Add("subtotal", subtotal); err != nil {
		return 0, err
	}
	if err := script.Add("item_count", itemCount); err != nil {
		return 0, err
	}
	if err := script.Add("user_type", userType); err != nil {
		return 0, err
	}
	if err := script.Add("discount", 0.0); err != nil {
		return 0, err
	}

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return 0, err
	}
	return compiled.Get("discount").Float(), nil
}
