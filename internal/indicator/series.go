package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Series helpers work on []float64 where NaN marks an undefined value.

func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

func closes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Close
	}

	return out
}

func volumes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Volume
	}

	return out
}

func defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// toOption turns an undefined value into None.
func toOption(v float64) optional.Option[float64] {
	if !defined(v) {
		return optional.None[float64]()
	}

	return optional.Some(v)
}

// window returns values[i-period+1..i] if every value in it is defined.
func window(values []float64, i, period int) ([]float64, bool) {
	start := i - period + 1
	if start < 0 {
		return nil, false
	}

	w := values[start : i+1]
	for _, v := range w {
		if !defined(v) {
			return nil, false
		}
	}

	return w, true
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// stdDev returns the standard deviation with ddof degrees of freedom removed.
func stdDev(values []float64, ddof int) float64 {
	m := mean(values)

	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}

	return math.Sqrt(sum / float64(len(values)-ddof))
}

// rollingSMA is undefined until period values are available.
func rollingSMA(values []float64, period int) []float64 {
	out := undefinedSeries(len(values))

	for i := range values {
		if w, ok := window(values, i, period); ok {
			out[i] = mean(w)
		}
	}

	return out
}

func rollingStdDev(values []float64, period, ddof int) []float64 {
	out := undefinedSeries(len(values))

	for i := range values {
		if w, ok := window(values, i, period); ok {
			out[i] = stdDev(w, ddof)
		}
	}

	return out
}

// smooth is an exponential recursion seeded with the mean of the first period
// consecutive defined values. An undefined input restarts the seeding.
func smooth(values []float64, period int, alpha float64) []float64 {
	out := undefinedSeries(len(values))
	run := 0
	seeded := false
	prev := 0.0

	for i, v := range values {
		if !defined(v) {
			run = 0
			seeded = false

			continue
		}

		if seeded {
			prev = v*alpha + prev*(1-alpha)
			out[i] = prev

			continue
		}

		run++
		if run == period {
			prev = mean(values[i-period+1 : i+1])
			seeded = true
			out[i] = prev
		}
	}

	return out
}

// emaSeries uses alpha = 2/(period+1).
func emaSeries(values []float64, period int) []float64 {
	return smooth(values, period, 2.0/float64(period+1))
}

// wilderSeries uses alpha = 1/period.
func wilderSeries(values []float64, period int) []float64 {
	return smooth(values, period, 1.0/float64(period))
}

func subtract(a, b []float64) []float64 {
	out := undefinedSeries(len(a))

	for i := range a {
		if defined(a[i]) && defined(b[i]) {
			out[i] = a[i] - b[i]
		}
	}

	return out
}
