package types

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BarTestSuite struct {
	suite.Suite
}

func TestBarSuite(t *testing.T) {
	suite.Run(t, new(BarTestSuite))
}

func (suite *BarTestSuite) TestValidate() {
	tests := []struct {
		name    string
		bar     Bar
		wantErr bool
	}{
		{
			name: "valid bar",
			bar:  Bar{Index: 0, Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1000},
		},
		{
			name:    "missing close",
			bar:     Bar{Index: 3, Open: 100, High: 101, Low: 99, Close: math.NaN(), Volume: 1000},
			wantErr: true,
		},
		{
			name:    "infinite high",
			bar:     Bar{Index: 4, Open: 100, High: math.Inf(1), Low: 99, Close: 100, Volume: 1000},
			wantErr: true,
		},
		{
			name:    "missing volume",
			bar:     Bar{Index: 5, Open: 100, High: 101, Low: 99, Close: 100, Volume: math.NaN()},
			wantErr: true,
		},
		{
			name: "missing open is not read by the engine",
			bar:  Bar{Index: 6, Open: math.NaN(), High: 101, Low: 99, Close: 100, Volume: 1000},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := tc.bar.Validate()
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.IsDataError(err))
			} else {
				suite.NoError(err)
			}
		})
	}
}

func (suite *BarTestSuite) TestTruncate() {
	bars := []Bar{{Index: 0, Close: 1}, {Index: 1, Close: 2}, {Index: 2, Close: 3}}

	prefix := Truncate(bars, 1)
	suite.Len(prefix, 2)
	suite.Equal(2.0, prefix[1].Close)

	// the prefix is a private copy
	prefix[0].Close = 42
	suite.Equal(1.0, bars[0].Close)

	suite.Len(Truncate(bars, 10), 3)
	suite.Empty(Truncate(bars, -1))
}
