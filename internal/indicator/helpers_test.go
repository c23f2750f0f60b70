package indicator

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

func barsFromCloses(prices ...float64) []types.Bar {
	bars := make([]types.Bar, len(prices))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, price := range prices {
		bars[i] = types.Bar{
			Index:  i,
			Time:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price + 0.5,
			Low:    price - 0.5,
			Close:  price,
			Volume: 1000,
		}
	}

	return bars
}

func randomWalkBars(n int, seed int64) []types.Bar {
	r := rand.New(rand.NewSource(seed))
	bars := make([]types.Bar, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0

	for i := 0; i < n; i++ {
		open := price
		price = math.Max(1, price*(1+r.NormFloat64()*0.02))
		bars[i] = types.Bar{
			Index:  i,
			Time:   start.AddDate(0, 0, i),
			Open:   open,
			High:   math.Max(open, price) * (1 + r.Float64()*0.01),
			Low:    math.Min(open, price) * (1 - r.Float64()*0.01),
			Close:  price,
			Volume: 1000 + r.Float64()*500,
		}
	}

	return bars
}
