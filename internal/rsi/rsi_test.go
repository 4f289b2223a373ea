package rsi

import (
	"math"
	"testing"
)

func TestCalculate_InsufficientData(t *testing.T) {
	for n := 0; n <= DefaultPeriod; n++ {
		prices := make([]float64, n)
		for i := range prices {
			prices[i] = 100 + float64(i)
		}
		if got := Calculate(prices, DefaultPeriod); len(got) != 0 {
			t.Errorf("len(prices)=%d: expected empty result, got %d values", n, len(got))
		}
	}
}

func TestCalculate_InvalidPeriod(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	if got := Calculate(prices, 0); got != nil {
		t.Errorf("period 0: expected nil, got %v", got)
	}
	if got := Calculate(prices, -3); got != nil {
		t.Errorf("negative period: expected nil, got %v", got)
	}
}

func TestCalculate_StrictlyIncreasing(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i)*2.5
	}

	values := Calculate(prices, DefaultPeriod)
	if len(values) != len(prices)-DefaultPeriod {
		t.Fatalf("expected %d values, got %d", len(prices)-DefaultPeriod, len(values))
	}
	for i, v := range values {
		if v != 100 {
			t.Errorf("value %d: expected exactly 100 with zero losses, got %v", i, v)
		}
	}
}

func TestCalculate_StrictlyDecreasing(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 500 - float64(i)*1.25
	}

	values := Calculate(prices, DefaultPeriod)
	if len(values) != len(prices)-DefaultPeriod {
		t.Fatalf("expected %d values, got %d", len(prices)-DefaultPeriod, len(values))
	}
	for i, v := range values {
		if v != 0 {
			t.Errorf("value %d: expected exactly 0 with zero gains, got %v", i, v)
		}
	}
}

// Reference sequence verified against an independent Wilder RSI
// implementation at full float64 precision.
func TestCalculate_WilderReference(t *testing.T) {
	prices := []float64{
		100, 102, 104, 106, 108, 110, 112, 114,
		113, 112, 111, 110, 109, 108, 107,
		108, 106, 109.5, 109.5, 105.25,
	}
	want := []float64{
		66.66666666666666,
		68.29268292682927,
		61.79966044142615,
		67.60438586775945,
		67.60438586775945,
		55.687507861266,
	}

	got := Calculate(prices, 14)
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("value %d: expected %.12f, got %.12f", i, want[i], got[i])
		}
	}
}

func TestCalculate_ValueRange(t *testing.T) {
	prices := []float64{
		42, 41.5, 43, 44, 42.2, 41.8, 45, 44.1, 43.3, 46,
		45.5, 44.9, 47, 46.2, 45.8, 48, 47.1, 46.5, 49, 48.3,
		47.9, 50, 49.1, 48.5, 51,
	}
	for _, v := range Calculate(prices, 14) {
		if v < 0 || v > 100 {
			t.Errorf("RSI out of [0,100]: %v", v)
		}
	}
}

func TestSignalHelpers(t *testing.T) {
	if IsOversold(30, 30) {
		t.Error("value equal to threshold must not be oversold")
	}
	if !IsOversold(29.999, 30) {
		t.Error("value below threshold must be oversold")
	}
	if IsOverbought(70, 70) {
		t.Error("value equal to threshold must not be overbought")
	}
	if !IsOverbought(70.001, 70) {
		t.Error("value above threshold must be overbought")
	}
}
