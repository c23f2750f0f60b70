package types

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Bar is one OHLCV record for a time period. Index is the ordinal position in the series.
type Bar struct {
	Index  int       `csv:"index"`
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// Validate reports a DataError when a price field the signal engine reads is missing.
// Missing values are carried as NaN after loading.
func (b Bar) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"close", b.Close},
		{"high", b.High},
		{"low", b.Low},
		{"volume", b.Volume},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.NewDataError("bar %d has a missing or non-numeric %s", b.Index, f.name)
		}
	}

	return nil
}

// Truncate returns a private copy of bars[0..end] inclusive.
func Truncate(bars []Bar, end int) []Bar {
	if end >= len(bars) {
		end = len(bars) - 1
	}

	if end < 0 {
		return []Bar{}
	}

	prefix := make([]Bar, end+1)
	copy(prefix, bars[:end+1])

	return prefix
}
