package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrShortSeries    = errors.New("analysis: series too short")
	ErrConstantSeries = errors.New("analysis: series has zero variance")
)

// windowFactor is Sokal's c: the sum stops at the first lag M >= c·τ(M).
const windowFactor = 5.0

// Autocorrelation returns ρ(0..maxLag) of x, with ρ(0) = 1. The series is
// zero padded to twice its length so the FFT gives the linear, not the
// circular, correlation.
func Autocorrelation(x []float64, maxLag int) ([]float64, error) {
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 values, got %d", ErrShortSeries, n)
	}
	if maxLag < 0 || maxLag >= n {
		maxLag = n - 1
	}

	if constant(x) {
		return nil, ErrConstantSeries
	}

	mean := stat.Mean(x, nil)
	padded := make([]float64, 2*n)
	for i, v := range x {
		padded[i] = v - mean
	}

	fft := fourier.NewFFT(len(padded))
	coeff := fft.Coefficients(nil, padded)
	for i, c := range coeff {
		coeff[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	acf := fft.Sequence(nil, coeff)

	// Sequence is unnormalised, which the division by acf[0] cancels.
	out := make([]float64, maxLag+1)
	for k := range out {
		out[k] = acf[k] / acf[0]
	}
	return out, nil
}

// IntegratedTime returns the integrated autocorrelation time in the
// convention τ = 1/2 + Σρ(k), in units of the sample spacing. This is half
// of the τ = 1 + 2Σρ(k) convention; an uncorrelated series gives 1/2 and
// the effective number of independent samples is N/(2τ).
func IntegratedTime(x []float64) (float64, error) {
	rho, err := Autocorrelation(x, -1)
	if err != nil {
		return 0, err
	}
	tau := 0.5
	for m := 1; m < len(rho); m++ {
		tau += rho[m]
		if float64(m) >= windowFactor*tau {
			break
		}
	}
	return tau, nil
}

func constant(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return false
		}
	}
	return true
}
