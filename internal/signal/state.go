package signal

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// SimulationState is the position carried from one bar to the next.
// Every run starts from a fresh FLAT state.
type SimulationState struct {
	Position     types.PositionState
	EntryPrice   float64
	TrailingStop optional.Option[float64]
}

// NewSimulationState returns the FLAT state.
func NewSimulationState() SimulationState {
	return SimulationState{
		Position:     types.PositionFlat,
		EntryPrice:   0,
		TrailingStop: optional.None[float64](),
	}
}

func (s SimulationState) enterLong(close, atr, multiplier float64) SimulationState {
	return SimulationState{
		Position:     types.PositionLong,
		EntryPrice:   close,
		TrailingStop: optional.Some(close - atr*multiplier),
	}
}

func (s SimulationState) enterShort(close, atr, multiplier float64) SimulationState {
	return SimulationState{
		Position:     types.PositionShort,
		EntryPrice:   close,
		TrailingStop: optional.Some(close + atr*multiplier),
	}
}

// ratchet moves the stop toward price only: up for LONG, down for SHORT.
func (s SimulationState) ratchet(close, atr, multiplier float64) SimulationState {
	next := s

	switch s.Position {
	case types.PositionLong:
		next.TrailingStop = optional.Some(math.Max(s.TrailingStop.TakeOr(math.Inf(-1)), close-atr*multiplier))
	case types.PositionShort:
		next.TrailingStop = optional.Some(math.Min(s.TrailingStop.TakeOr(math.Inf(1)), close+atr*multiplier))
	case types.PositionFlat:
	}

	return next
}

// profit is the return of the open position at close.
func (s SimulationState) profit(close float64) float64 {
	if s.EntryPrice == 0 {
		return 0
	}

	switch s.Position {
	case types.PositionLong:
		return (close - s.EntryPrice) / s.EntryPrice
	case types.PositionShort:
		return (s.EntryPrice - close) / s.EntryPrice
	default:
		return 0
	}
}

// Snapshot is the state after a bar was processed.
type Snapshot struct {
	Index        int
	Position     types.PositionState
	EntryPrice   float64
	TrailingStop optional.Option[float64]
}

func (s SimulationState) snapshot(index int) Snapshot {
	return Snapshot{
		Index:        index,
		Position:     s.Position,
		EntryPrice:   s.EntryPrice,
		TrailingStop: s.TrailingStop,
	}
}
