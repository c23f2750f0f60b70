package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// fakeCalculator is a minimal calculator for testing the registry
type fakeCalculator struct {
	name string
}

func (f *fakeCalculator) Name() string {
	return f.name
}

func (f *fakeCalculator) Columns() []types.IndicatorName {
	return nil
}

func (f *fakeCalculator) Lookback() int {
	return 0
}

func (f *fakeCalculator) Calculate(bars []types.Bar, rows []types.IndicatorRow) error {
	return nil
}

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) TestRegisterIndicator() {
	registry := NewIndicatorRegistry()

	calculator := &fakeCalculator{name: "rsi"}
	err := registry.RegisterIndicator(calculator)
	suite.NoError(err)

	retrieved, err := registry.GetIndicator("rsi")
	suite.NoError(err)
	suite.Equal(calculator, retrieved)
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	registry := NewIndicatorRegistry()

	suite.NoError(registry.RegisterIndicator(&fakeCalculator{name: "atr"}))

	err := registry.RegisterIndicator(&fakeCalculator{name: "atr"})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
	suite.Contains(err.Error(), "already registered")
}

func (suite *RegistryTestSuite) TestGetUnknown() {
	registry := NewIndicatorRegistry()

	_, err := registry.GetIndicator("missing")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestListKeepsRegistrationOrder() {
	registry := NewIndicatorRegistry()

	for _, name := range []string{"c", "a", "b"} {
		suite.NoError(registry.RegisterIndicator(&fakeCalculator{name: name}))
	}

	suite.Equal([]string{"c", "a", "b"}, registry.ListIndicators())
}

func (suite *RegistryTestSuite) TestRemoveIndicator() {
	registry := NewIndicatorRegistry()

	suite.NoError(registry.RegisterIndicator(&fakeCalculator{name: "a"}))
	suite.NoError(registry.RegisterIndicator(&fakeCalculator{name: "b"}))
	suite.NoError(registry.RemoveIndicator("a"))

	suite.Equal([]string{"b"}, registry.ListIndicators())

	err := registry.RemoveIndicator("a")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}
