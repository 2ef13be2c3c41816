package pairing

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// pair is one matched before/after observation.
type pair struct {
	before float64
	after  float64
}

// pairedTTest computes the two-sided paired-samples t-test over the
// difference series d_i = after_i - before_i with n-1 degrees of
// freedom.
//
// Degenerate cases surface as values, never as errors, so batch
// computation over many questions and respondents keeps going:
//   - fewer than 2 pairs: NaN statistic and p-value
//   - zero-variance differences with zero mean: NaN (0/0)
//   - zero-variance differences with nonzero mean: ±Inf with p = 0
func pairedTTest(pairs []pair) (statistic, pvalue float64) {
	n := len(pairs)
	if n < 2 {
		return math.NaN(), math.NaN()
	}

	diffs := make([]float64, n)
	for i, p := range pairs {
		diffs[i] = p.after - p.before
	}

	mean, _ := stats.Mean(diffs)
	sd, _ := stats.StandardDeviationSample(diffs)

	if sd == 0 {
		if mean == 0 {
			return math.NaN(), math.NaN()
		}
		return math.Inf(int(math.Copysign(1, mean))), 0
	}

	statistic = mean / (sd / math.Sqrt(float64(n)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	pvalue = 2 * dist.CDF(-math.Abs(statistic))
	return statistic, pvalue
}

// Describe returns the sample mean and sample standard deviation of
// values, NaN where undefined.
func Describe(values []float64) (mean, sd float64) {
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	mean, _ = stats.Mean(values)
	if len(values) < 2 {
		return mean, math.NaN()
	}
	sd, _ = stats.StandardDeviationSample(values)
	return mean, sd
}
