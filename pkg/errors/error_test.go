package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidPeriod, "invalid period")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidPeriod, err.Code)
	suite.Equal("invalid period", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeDataError, "bar %d has a non-numeric close", 12)
	suite.Equal(ErrCodeDataError, err.Code)
	suite.Equal("bar 12 has a non-numeric close", err.Message)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "query failed", cause)
	suite.Equal(ErrCodeQueryFailed, err.Code)
	suite.Equal(cause, err.Cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataNotFound, cause, "no bars in %s", "btc.csv")
	suite.Equal("no bars in btc.csv", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	suite.Equal("[100] bad config", New(ErrCodeConfigurationError, "bad config").Error())

	err := Wrap(ErrCodeDataNotFound, "data not found", errors.New("underlying error"))
	suite.Equal("[201] data not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestGetCode() {
	suite.Equal(ErrCodeInvalidWarmup, GetCode(New(ErrCodeInvalidWarmup, "warmup")))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("standard error")))

	// the outermost code wins
	err := Wrap(ErrCodeSimulationFailed, "simulation failed", New(ErrCodeDataError, "bad bar"))
	suite.Equal(ErrCodeSimulationFailed, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidMultiplier, "multiplier")
	suite.True(HasCode(err, ErrCodeInvalidMultiplier))
	suite.False(HasCode(err, ErrCodeDataError))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.True(Is(err, cause))

	var coded *Error
	suite.True(As(err, &coded))
	suite.Equal(ErrCodeDataNotFound, coded.Code)
}

func (suite *ErrorTestSuite) TestIsConfigurationError() {
	suite.True(IsConfigurationError(NewConfigurationError("warmup %d exceeds %d bars", 200, 5)))
	suite.True(IsConfigurationError(New(ErrCodeInvalidPeriod, "period")))
	suite.True(IsConfigurationError(fmt.Errorf("load: %w", New(ErrCodeInvalidThreshold, "threshold"))))
	suite.False(IsConfigurationError(NewDataError("bad bar")))
	suite.False(IsConfigurationError(errors.New("plain")))
	suite.False(IsConfigurationError(nil))
}

func (suite *ErrorTestSuite) TestIsDataError() {
	suite.True(IsDataError(NewDataError("bar %d close is NaN", 3)))
	suite.True(IsDataError(New(ErrCodeMisalignedRows, "misaligned")))
	suite.False(IsDataError(New(ErrCodeInvalidPeriod, "period")))
	suite.False(IsDataError(nil))
}

func (suite *ErrorTestSuite) TestIsDataErrorThroughOuterCode() {
	// an outer non-data code still exposes the data error underneath
	err := Wrap(ErrCodeSimulationFailed, "simulation failed", NewDataError("bar 7 volume is NaN"))
	suite.True(IsDataError(err))
	suite.False(IsConfigurationError(err))
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeConfigurationError)
	suite.Equal(ErrorCode(200), ErrCodeDataError)
	suite.Equal(ErrorCode(300), ErrCodeIndicatorNotFound)
	suite.Equal(ErrorCode(400), ErrCodeSimulationFailed)
	suite.Equal(ErrorCode(500), ErrCodeLookaheadViolation)
	suite.Equal(ErrorCode(600), ErrCodeBacktestConfigError)
	suite.Equal(ErrorCode(700), ErrCodeWriteFailed)
}
