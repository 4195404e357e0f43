package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-siglab/dsp/filter/lti"
)

func runBode(e *env, args []string) error {
	fs := newFlagSet(e, "bode")
	num := fs.String("num", "1", "numerator coefficients, highest power of s first")
	den := fs.String("den", "1,1", "denominator coefficients, highest power of s first")
	start := fs.Float64("start", 0.01, "start frequency")
	stop := fs.Float64("stop", 100, "stop frequency")
	points := fs.Int("points", 9, "number of log-spaced points")
	hz := fs.Bool("hz", false, "frequencies in Hz instead of rad/s")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := parseCoefficients(*num)
	if err != nil {
		return fmt.Errorf("numerator: %w", err)
	}
	a, err := parseCoefficients(*den)
	if err != nil {
		return fmt.Errorf("denominator: %w", err)
	}
	tf, err := lti.New(b, a)
	if err != nil {
		return err
	}

	var pts []lti.BodePoint
	unit := "rad/s"
	if *hz {
		unit = "Hz"
		pts, err = tf.BodeHz(*start, *stop, *points)
	} else {
		pts, err = tf.Bode(*start, *stop, *points)
	}
	if err != nil {
		return err
	}

	tw := newTable(e.stdout)
	_, _ = fmt.Fprintf(tw, "w [%s]\tmagnitude [dB]\tphase [deg]\n", unit)
	for _, p := range pts {
		_, _ = fmt.Fprintf(tw, "%.4g\t%.3f\t%.2f\n", p.Frequency, p.MagnitudeDB, p.PhaseDeg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	poles, err := tf.Poles()
	if err != nil {
		return err
	}
	stable, err := tf.IsStable()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(e.stdout, "\norder=%d stable=%t poles=%s\n", tf.Order(), stable, formatRoots(poles))
	return nil
}

func parseCoefficients(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func formatRoots(roots []complex128) string {
	parts := make([]string, len(roots))
	for i, r := range roots {
		if imag(r) == 0 {
			parts[i] = strconv.FormatFloat(real(r), 'g', 4, 64)
			continue
		}
		parts[i] = fmt.Sprintf("%.4g%+.4gi", real(r), imag(r))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
