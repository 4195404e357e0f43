package modulation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownScheme is returned for a scheme name or value outside the
	// enumeration.
	ErrUnknownScheme = errors.New("modulation: unknown scheme")
	// ErrNotDigital is returned by bit-level operations on analog schemes.
	ErrNotDigital = errors.New("modulation: scheme is not digital")
)

// Scheme identifies a modulation.
type Scheme int

const (
	AM Scheme = iota
	FM
	PM
	DSBSC
	SSB
	ASK
	FSK
	PSK
	QPSK

	numSchemes
)

var schemeNames = [numSchemes]string{
	AM:    "am",
	FM:    "fm",
	PM:    "pm",
	DSBSC: "dsb-sc",
	SSB:   "ssb",
	ASK:   "ask",
	FSK:   "fsk",
	PSK:   "psk",
	QPSK:  "qpsk",
}

// Valid reports whether s is one of the enumerated schemes.
func (s Scheme) Valid() bool { return s >= 0 && s < numSchemes }

// IsDigital reports whether s carries a bit sequence.
func (s Scheme) IsDigital() bool { return s >= ASK && s < numSchemes }

// BitsPerSymbol returns 2 for QPSK and 1 for the other digital schemes.
func (s Scheme) BitsPerSymbol() int {
	if s == QPSK {
		return 2
	}
	return 1
}

// String returns the lower-case scheme name.
func (s Scheme) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// ParseScheme resolves a scheme name as returned by String.
func ParseScheme(name string) (Scheme, error) {
	for s := range numSchemes {
		if schemeNames[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Schemes returns every scheme in declaration order.
func Schemes() []Scheme {
	out := make([]Scheme, numSchemes)
	for i := range out {
		out[i] = Scheme(i)
	}
	return out
}
