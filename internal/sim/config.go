package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when match options fail validation at
// construction. Nothing inside the minute loop ever errors.
var ErrInvalidConfig = errors.New("invalid match config")

// Config enumerates the recognized match options.
type Config struct {
	// RegulationMinutes is the length of the match before added time.
	// Must be positive and even so it splits into two halves.
	RegulationMinutes int

	// AddedTimeMin/Max bound the per-half added time draw, inclusive.
	AddedTimeMin int
	AddedTimeMax int

	// MaxSubstitutions per team.
	MaxSubstitutions int

	// HomeAdvantage multiplies the home side's aggregate attack. 1.0
	// disables it.
	HomeAdvantage float64

	// FitnessFloor is the on-pitch fitness level below which the engine
	// consults the substitution policy.
	FitnessFloor float64

	// Substitutions selects the tactical policy by name; empty means
	// PolicyDefault.
	Substitutions string
}

// DefaultConfig mirrors a standard competitive fixture: 90 minutes, one to
// five added minutes per half, three substitutions, a mild home boost.
func DefaultConfig() Config {
	return Config{
		RegulationMinutes: 90,
		AddedTimeMin:      1,
		AddedTimeMax:      5,
		MaxSubstitutions:  3,
		HomeAdvantage:     1.08,
		FitnessFloor:      0.55,
		Substitutions:     PolicyDefault,
	}
}

// Validate fails fast on malformed options, before any simulation begins.
func (c Config) Validate() error {
	if c.RegulationMinutes <= 0 {
		return fmt.Errorf("%w: regulation minutes %d must be positive", ErrInvalidConfig, c.RegulationMinutes)
	}
	if c.RegulationMinutes%2 != 0 {
		return fmt.Errorf("%w: regulation minutes %d must split into two halves", ErrInvalidConfig, c.RegulationMinutes)
	}
	if c.AddedTimeMin < 0 || c.AddedTimeMax < c.AddedTimeMin {
		return fmt.Errorf("%w: added time range [%d,%d]", ErrInvalidConfig, c.AddedTimeMin, c.AddedTimeMax)
	}
	if c.MaxSubstitutions < 0 {
		return fmt.Errorf("%w: max substitutions %d is negative", ErrInvalidConfig, c.MaxSubstitutions)
	}
	if c.HomeAdvantage < 1.0 {
		return fmt.Errorf("%w: home advantage %.2f below 1.0", ErrInvalidConfig, c.HomeAdvantage)
	}
	if c.FitnessFloor < 0 || c.FitnessFloor >= 1 {
		return fmt.Errorf("%w: fitness floor %.2f outside [0,1)", ErrInvalidConfig, c.FitnessFloor)
	}
	if c.Substitutions != "" {
		if _, err := NewPolicy(c.Substitutions); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// MaxLength is the upper bound on the match clock: regulation plus the
// maximum added time for both halves. Run always terminates within it.
func (c Config) MaxLength() int {
	return c.RegulationMinutes + 2*c.AddedTimeMax
}
