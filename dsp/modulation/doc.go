// Package modulation synthesizes and demodulates analog (AM, FM, PM, DSB-SC,
// SSB) and digital (ASK, FSK, PSK, QPSK) carriers.
//
// Digital schemes read the bit sequence periodically: the bit for time t is
// Bits[floor(t*BitRate) mod len(Bits)]. QPSK consumes bits in Gray-coded
// pairs at half the bit rate.
//
// The demodulators are deliberately simple detectors (envelope, differential
// and correlator based) rather than textbook-exact inverses. FM modulation of
// an arbitrary message substitutes beta*m(t) for the integrated phase; only
// the default sinusoidal message uses the closed form.
package modulation
