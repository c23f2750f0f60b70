package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

// DataGenerator generates bar series for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how bars are generated.
type GeneratorConfig struct {
	// StartTime is the time of the first bar
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of bars to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical per-bar move)
	Volatility float64
	// Trend is the total drift over the series (-0.5 to 0.5 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns daily bars with a 2% per-bar volatility.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:       24 * time.Hour,
		Count:          1000,
		InitialPrice:   100.0,
		Volatility:     0.02,
		Trend:          0.0,
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// Generate creates bars following a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.Bar {
	bars := make([]types.Bar, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		z := g.rng.NormFloat64()
		drift := config.Trend / float64(config.Count)

		close := open * (1 + config.Volatility*z + drift)
		if close <= 0 {
			close = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		bars[i] = types.Bar{
			Index:  i,
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: roundToDecimals(volume, 2),
		}

		currentPrice = close
		currentTime = currentTime.Add(config.Interval)
	}

	return bars
}

// GenerateCycles creates a noisy sine wave around InitialPrice, which crosses its
// moving averages in both directions.
func (g *DataGenerator) GenerateCycles(config GeneratorConfig, period int, amplitude float64) []types.Bar {
	bars := g.Generate(config)
	prev := config.InitialPrice

	for i := range bars {
		wave := config.InitialPrice * (1 + amplitude*math.Sin(2*math.Pi*float64(i)/float64(period)))
		noise := 1 + config.Volatility*0.1*g.rng.NormFloat64()
		close := roundToDecimals(wave*noise, 4)

		bars[i].Open = roundToDecimals(prev, 4)
		bars[i].Close = close
		bars[i].High = roundToDecimals(math.Max(prev, close)*(1+g.rng.Float64()*0.005), 4)
		bars[i].Low = roundToDecimals(math.Min(prev, close)*(1-g.rng.Float64()*0.005), 4)
		prev = close
	}

	return bars
}

// FlatThenRise returns flat bars at 100 followed by bars rising by 1 each.
// Every bar spans close +/- 0.5 with a constant volume.
func FlatThenRise(flat, rise int) []types.Bar {
	bars := make([]types.Bar, flat+rise)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0

	for i := range bars {
		open := price
		if i >= flat {
			price += 1
		}

		bars[i] = types.Bar{
			Index:  i,
			Time:   start.AddDate(0, 0, i),
			Open:   open,
			High:   price + 0.5,
			Low:    price - 0.5,
			Close:  price,
			Volume: 1000,
		}
	}

	return bars
}

// WithSharpDrop returns a copy of bars where bar at and every bar after it is
// shifted down by drop.
func WithSharpDrop(bars []types.Bar, at int, drop float64) []types.Bar {
	out := make([]types.Bar, len(bars))
	copy(out, bars)

	for i := at; i < len(out); i++ {
		if i > at {
			out[i].Open -= drop
		}

		out[i].High -= drop
		out[i].Low -= drop
		out[i].Close -= drop
	}

	return out
}

// Generate10K is a convenience function to generate 10,000 bars
// with default settings for benchmarking.
func Generate10K() []types.Bar {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Count = 10000

	return gen.Generate(config)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
