package config

import (
	"testing"
	"time"
)

func TestGetEnvHours(t *testing.T) {
	t.Setenv("CART_TTL_HOURS", "48")
	if got := getEnvHours("CART_TTL_HOURS", 72); got != 48*time.Hour {
		t.Errorf("getEnvHours = %v, want 48h", got)
	}

	// Unset and unparseable values fall back, already scaled to hours.
	if got := getEnvHours("CART_TTL_HOURS_UNSET", 72); got != 72*time.Hour {
		t.Errorf("fallback = %v, want 72h", got)
	}
	t.Setenv("CART_TTL_HOURS", "soon")
	if got := getEnvHours("CART_TTL_HOURS", 72); got != 72*time.Hour {
		t.Errorf("unparseable = %v, want 72h", got)
	}
}
