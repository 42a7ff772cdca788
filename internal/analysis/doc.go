// Package analysis provides time-series tools for Markov chain output.
//
//   - [Autocorrelation]: normalised autocorrelation via FFT
//   - [IntegratedTime]: integrated autocorrelation time with automatic windowing
//
// Successive Metropolis samples are correlated; dividing the number of
// samples by 2τ gives the effective number of independent ones:
//
//	tau, err := analysis.IntegratedTime(result.Series(absMagnetization))
//	if err == nil {
//	    effective := float64(len(samples)) / (2 * tau)
//	}
package analysis
