package mocks

import (
	"testing"
	"time"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 100

	bars := gen.Generate(config)

	if len(bars) != 100 {
		t.Errorf("expected 100 bars, got %d", len(bars))
	}

	// Verify bars are in chronological order and indexed
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			t.Errorf("bars not in chronological order at index %d", i)
		}

		if bars[i].Index != i {
			t.Errorf("expected index %d, got %d", i, bars[i].Index)
		}
	}

	// Verify OHLC values are positive and consistent
	for i, b := range bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			t.Errorf("invalid OHLC values at index %d: O=%f H=%f L=%f C=%f",
				i, b.Open, b.High, b.Low, b.Close)
		}

		if b.High < b.Low {
			t.Errorf("High < Low at index %d: H=%f L=%f", i, b.High, b.Low)
		}
	}

	// Verify time intervals
	for i := 1; i < len(bars); i++ {
		actualInterval := bars[i].Time.Sub(bars[i-1].Time)
		if actualInterval != config.Interval {
			t.Errorf("unexpected interval at index %d: expected %v, got %v",
				i, config.Interval, actualInterval)
		}
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(42)

	config := DefaultConfig()
	config.Count = 10

	bars1 := gen1.Generate(config)
	bars2 := gen2.Generate(config)

	for i := range bars1 {
		if bars1[i].Close != bars2[i].Close {
			t.Errorf("bars not reproducible at index %d: got %f and %f",
				i, bars1[i].Close, bars2[i].Close)
		}
	}
}

func TestDataGenerator_Different_Seeds(t *testing.T) {
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(123)

	config := DefaultConfig()
	config.Count = 10

	bars1 := gen1.Generate(config)
	bars2 := gen2.Generate(config)

	sameCount := 0
	for i := range bars1 {
		if bars1[i].Close == bars2[i].Close {
			sameCount++
		}
	}

	if sameCount == len(bars1) {
		t.Error("different seeds produced identical bars")
	}
}

func TestGenerateCycles(t *testing.T) {
	gen := NewDataGenerator(7)
	config := DefaultConfig()
	config.Count = 400

	bars := gen.GenerateCycles(config, 100, 0.2)

	if len(bars) != 400 {
		t.Fatalf("expected 400 bars, got %d", len(bars))
	}

	// the wave peaks a quarter period in and bottoms at three quarters
	if bars[25].Close <= bars[75].Close {
		t.Errorf("expected peak above trough: %f <= %f", bars[25].Close, bars[75].Close)
	}

	for i, b := range bars {
		if b.High < b.Close || b.Low > b.Close {
			t.Errorf("close outside range at index %d", i)
		}
	}
}

func TestFlatThenRise(t *testing.T) {
	bars := FlatThenRise(200, 10)

	if len(bars) != 210 {
		t.Fatalf("expected 210 bars, got %d", len(bars))
	}

	if bars[199].Close != 100 {
		t.Errorf("expected flat close 100, got %f", bars[199].Close)
	}

	if bars[200].Close != 101 || bars[209].Close != 110 {
		t.Errorf("unexpected rise: %f, %f", bars[200].Close, bars[209].Close)
	}

	if bars[200].High != 101.5 || bars[200].Low != 100.5 {
		t.Errorf("unexpected range: %f, %f", bars[200].High, bars[200].Low)
	}
}

func TestWithSharpDrop(t *testing.T) {
	bars := FlatThenRise(200, 40)
	dropped := WithSharpDrop(bars, 230, 20)

	if dropped[230].Close != bars[230].Close-20 {
		t.Errorf("expected drop at 230, got %f", dropped[230].Close)
	}

	if dropped[230].Open != bars[230].Open {
		t.Errorf("expected open of the drop bar unchanged")
	}

	if dropped[229].Close != bars[229].Close {
		t.Errorf("bars before the drop must not change")
	}

	if bars[230].Close != 131 {
		t.Errorf("input must not be modified, got %f", bars[230].Close)
	}
}

func TestGenerate10K(t *testing.T) {
	bars := Generate10K()

	if len(bars) != 10000 {
		t.Errorf("expected 10000 bars, got %d", len(bars))
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Count != 1000 {
		t.Errorf("expected default count 1000, got %d", config.Count)
	}

	if config.Interval != 24*time.Hour {
		t.Errorf("expected default interval 24h, got %v", config.Interval)
	}

	if config.InitialPrice != 100.0 {
		t.Errorf("expected default initial price 100.0, got %f", config.InitialPrice)
	}
}
