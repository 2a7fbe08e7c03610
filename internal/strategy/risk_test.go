package strategy

import (
	"math"
	"testing"

	"MarketPulse/internal/model"
)

func TestClassify_Boundaries(t *testing.T) {
	th := model.DefaultThresholds
	tests := []struct {
		z    float64
		want string
	}{
		{0, "Normal"},
		{1.0, "Normal"},
		{1.5, "Normal"}, // edge belongs to the lower tier
		{1.51, "Caution"},
		{2.0, "Caution"}, // edge belongs to the lower tier
		{2.01, "Danger"},
		{2.5, "Danger"},
		{-1.5, "Normal"},
		{-1.8, "Caution"},
		{-3.0, "Danger"},
	}
	for _, tt := range tests {
		if got := Classify(tt.z, th); got.Label != tt.want {
			t.Errorf("Classify(%.2f): expected %s, got %s", tt.z, tt.want, got.Label)
		}
	}
}

func TestClassify_Monotonic(t *testing.T) {
	th := model.DefaultThresholds
	prev := -1
	for z := 0.0; z <= 4.0; z += 0.01 {
		w := Classify(z, th).Weight
		if w < prev {
			t.Fatalf("weight dropped from %d to %d at z=%.2f", prev, w, z)
		}
		prev = w
	}
}

func TestClassify_Overrides(t *testing.T) {
	th := model.Thresholds{Caution: 0.5, Danger: 1.0}
	if got := Classify(0.8, th); got.Label != "Caution" {
		t.Errorf("override caution band: expected Caution, got %s", got.Label)
	}
	if got := Classify(1.2, th); got.Label != "Danger" {
		t.Errorf("override danger band: expected Danger, got %s", got.Label)
	}
	// z within default bands stays Normal with defaults
	if got := Classify(0.8, model.DefaultThresholds); got.Label != "Normal" {
		t.Errorf("default bands: expected Normal, got %s", got.Label)
	}
}

func TestClassify_WeightsAndColors(t *testing.T) {
	th := model.DefaultThresholds
	if n := Classify(0, th); n.Weight != 0 || n.Color != "green" {
		t.Errorf("unexpected normal tier: %+v", n)
	}
	if c := Classify(1.8, th); c.Weight != 1 || c.Color != "#ffcc00" {
		t.Errorf("unexpected caution tier: %+v", c)
	}
	if d := Classify(math.Inf(1), th); d.Weight != 2 || d.Color != "red" {
		t.Errorf("unexpected danger tier: %+v", d)
	}
}
