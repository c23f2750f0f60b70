package pipeline

import (
	"fmt"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/signal"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/mocks"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PipelineTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func (suite *PipelineTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
}

func (suite *PipelineTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *PipelineTestSuite) TestNewFromConfig() {
	p, err := NewFromConfig(indicator.DefaultConfig(), signal.DefaultConfig(signal.VariantSimple), nil)
	suite.Require().NoError(err)
	suite.Equal(200, p.Engine().WarmupOffset())

	bars := mocks.FlatThenRise(200, 10)
	records, err := p.Run(bars)
	suite.Require().NoError(err)
	suite.Len(records, len(bars))
	suite.Equal(types.TradeTypeLong, records[200].TradeType)
}

func (suite *PipelineTestSuite) TestNewFromConfigInvalid() {
	indicators := indicator.DefaultConfig()
	indicators.RSIPeriod = 0

	_, err := NewFromConfig(indicators, signal.DefaultConfig(signal.VariantSimple), nil)
	suite.True(errors.IsConfigurationError(err))

	strategy := signal.DefaultConfig(signal.VariantSimple)
	strategy.TrailingStopMultiplier = -1

	_, err = NewFromConfig(indicator.DefaultConfig(), strategy, nil)
	suite.True(errors.IsConfigurationError(err))
}

func (suite *PipelineTestSuite) TestRunTable() {
	p, err := NewFromConfig(indicator.DefaultConfig(), signal.DefaultConfig(signal.VariantSimple), nil)
	suite.Require().NoError(err)

	bars := mocks.FlatThenRise(200, 5)
	table, err := p.RunTable(bars)
	suite.Require().NoError(err)
	suite.Len(table, len(bars))

	suite.Equal(bars[200], table[200].Bar)
	suite.True(table[200].Indicators.SMASlow.IsSome())
	suite.Equal(types.TradeTypeLong, table[200].Record.TradeType)
	suite.True(table[0].Indicators.SMASlow.IsNone())
}

func (suite *PipelineTestSuite) TestProviderFailure() {
	provider := mocks.NewMockProvider(suite.ctrl)
	provider.EXPECT().Compute(gomock.Any()).Return(nil, fmt.Errorf("boom"))

	engine, err := signal.NewEngine(signal.DefaultConfig(signal.VariantSimple), 0, nil)
	suite.Require().NoError(err)

	_, err = New(provider, engine).Run(mocks.FlatThenRise(3, 0))
	suite.Error(err)
	suite.Contains(err.Error(), "failed to compute indicators")
}

func (suite *PipelineTestSuite) TestEngineFailureOnMisalignedProvider() {
	provider := mocks.NewMockProvider(suite.ctrl)
	provider.EXPECT().Compute(gomock.Any()).Return([]types.IndicatorRow{types.NewIndicatorRow(0)}, nil)

	config := signal.DefaultConfig(signal.VariantSimple)
	config.WarmupOffset = optional.Some(0)

	engine, err := signal.NewEngine(config, 0, nil)
	suite.Require().NoError(err)

	_, err = New(provider, engine).Run(mocks.FlatThenRise(3, 0))
	suite.Error(err)
	suite.True(errors.IsDataError(err))
	suite.Contains(err.Error(), "failed to run signal engine")
}
