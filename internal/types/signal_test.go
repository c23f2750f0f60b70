package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) TestPositionStateString() {
	suite.Equal("FLAT", PositionFlat.String())
	suite.Equal("LONG", PositionLong.String())
	suite.Equal("SHORT", PositionShort.String())
}

func (suite *SignalTestSuite) TestSignalCodeDomain() {
	for code := SignalCode(-2); code <= 2; code++ {
		suite.True(code.Valid())
	}

	suite.False(SignalCode(3).Valid())
	suite.False(SignalCode(-3).Valid())
}

func (suite *SignalTestSuite) TestHold() {
	record := Hold(12)
	suite.Equal(12, record.Index)
	suite.Equal(SignalHold, record.Signal)
	suite.Equal(TradeTypeHold, record.TradeType)
	suite.False(record.IsSignal())

	suite.True(SignalRecord{Index: 1, Signal: SignalSell, TradeType: TradeTypeCloseLong}.IsSignal())
}

func (suite *SignalTestSuite) TestParseTradeType() {
	for _, tradeType := range AllTradeTypes {
		parsed, ok := ParseTradeType(string(tradeType))
		suite.True(ok)
		suite.Equal(tradeType, parsed)
	}

	parsed, ok := ParseTradeType("BUY")
	suite.False(ok)
	suite.Equal(TradeTypeHold, parsed)
}

func (suite *SignalTestSuite) TestTradeTypeDirection() {
	suite.True(TradeTypeLong.OpensLong())
	suite.True(TradeTypeReverseShortToLong.OpensLong())
	suite.False(TradeTypeCloseShort.OpensLong())
	suite.True(TradeTypeShort.OpensShort())
	suite.True(TradeTypeReverseLongToShort.OpensShort())
	suite.False(TradeTypeCloseLong.OpensShort())
}

func (suite *SignalTestSuite) TestJoinSignalRows() {
	bars := []Bar{{Index: 0, Close: 1}, {Index: 1, Close: 2}}
	rows := []IndicatorRow{NewIndicatorRow(0), NewIndicatorRow(1)}
	records := []SignalRecord{Hold(0), {Index: 1, Signal: SignalBuy, TradeType: TradeTypeLong}}

	table := JoinSignalRows(bars, rows, records)
	suite.Len(table, 2)
	suite.Equal(2.0, table[1].Bar.Close)
	suite.Equal(TradeTypeLong, table[1].Record.TradeType)
}
