package fault

import (
	"errors"
	"fmt"
)

// Severity bounds and scale.
const (
	MaxSeverity       = 5
	MagnitudePerLevel = 0.4
)

// ErrSeverityRange is returned by [Spec.Validate] for a severity outside
// [0, MaxSeverity].
var ErrSeverityRange = errors.New("fault: severity out of range")

// Setting configures one fault kind.
type Setting struct {
	Enabled  bool
	Severity int
	// Frequency of the periodic kinds in Hz; zero selects DefaultFrequency.
	Frequency float64
}

// Magnitude returns the dimensionless strength Severity*0.4, with Severity
// clamped to [0, MaxSeverity].
func (s Setting) Magnitude() float64 {
	return float64(min(max(s.Severity, 0), MaxSeverity)) * MagnitudePerLevel
}

// Active reports whether applying s changes anything.
func (s Setting) Active() bool {
	return s.Enabled && s.Magnitude() > 0
}

// Spec maps fault kinds to their settings. Kinds absent from the map are
// disabled.
type Spec map[Kind]Setting

// Enable turns k on at the given severity with its default frequency.
func (s Spec) Enable(k Kind, severity int) {
	s[k] = Setting{Enabled: true, Severity: severity, Frequency: DefaultFrequency(k)}
}

// Active returns the kinds that [Injector.Apply] will run, in order.
func (s Spec) Active() []Kind {
	var out []Kind
	for k := range numKinds {
		if s[k].Active() {
			out = append(out, k)
		}
	}
	return out
}

// Validate reports the first out-of-range severity in application order,
// then any key outside the enumeration.
func (s Spec) Validate() error {
	for k := range numKinds {
		set, ok := s[k]
		if ok && (set.Severity < 0 || set.Severity > MaxSeverity) {
			return fmt.Errorf("%w: %s severity %d", ErrSeverityRange, k, set.Severity)
		}
	}
	for k := range s {
		if !k.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
		}
	}
	return nil
}
