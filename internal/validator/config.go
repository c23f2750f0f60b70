package validator

import (
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Mode selects which signal-bearing bars are re-simulated.
type Mode string

const (
	// ModeSampled checks the first SampleSize signal bars and stops at the first violation.
	ModeSampled Mode = "sampled"
	// ModeExhaustive checks every signal bar and reports every violation.
	ModeExhaustive Mode = "exhaustive"
)

// AllModes lists the supported modes.
var AllModes = []any{string(ModeSampled), string(ModeExhaustive)}

type Config struct {
	Mode        Mode `yaml:"mode" json:"mode" jsonschema:"title=Mode,enum=sampled,enum=exhaustive,default=sampled"`
	SampleSize  int  `yaml:"sample_size" json:"sample_size" jsonschema:"title=Sample Size,minimum=1,default=5" validate:"gte=1"`
	Parallelism int  `yaml:"parallelism" json:"parallelism" jsonschema:"title=Parallelism,description=Number of re-simulations run at once,minimum=1,default=1" validate:"gte=1"`
}

func DefaultConfig() Config {
	return Config{
		Mode:        ModeSampled,
		SampleSize:  5,
		Parallelism: 1,
	}
}

func (c Config) Validate() error {
	if c.Mode != ModeSampled && c.Mode != ModeExhaustive {
		return errors.Newf(errors.ErrCodeInvalidParameter, "unknown validation mode %q", c.Mode)
	}

	if c.Mode == ModeSampled && c.SampleSize < 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "sample_size must be at least 1, got %d", c.SampleSize)
	}

	if c.Parallelism < 1 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "parallelism must be at least 1, got %d", c.Parallelism)
	}

	return nil
}
