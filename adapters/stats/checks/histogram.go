package checks

import (
	"math"

	"goresid/domain/diagnostics"

	"gonum.org/v1/gonum/floats"
)

// Histogram bins data into equal-width bins. The bin width is the smaller of
// the Freedman-Diaconis and Sturges widths (Sturges alone when the
// interquartile range is zero). The last bin is closed on the right.
func Histogram(data []float64) (*diagnostics.HistogramResult, error) {
	if err := requireN("histogram", len(data), 1); err != nil {
		return nil, err
	}

	sorted := sortedCopy(data)
	first, last := sorted[0], sorted[len(sorted)-1]
	if first == last {
		first -= 0.5
		last += 0.5
	}

	bins := 1
	if width := autoBinWidth(sorted); width > 0 {
		bins = int(math.Ceil((last - first) / width))
		if bins < 1 {
			bins = 1
		}
	}

	edges := make([]float64, bins+1)
	floats.Span(edges, first, last)
	edges[bins] = last

	counts := make([]int, bins)
	span := last - first
	for _, v := range data {
		i := int((v - first) / span * float64(bins))
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		// Round-off in the scaled index can put an edge value one bin off.
		if i > 0 && v < edges[i] {
			i--
		}
		if i < bins-1 && v >= edges[i+1] {
			i++
		}
		counts[i]++
	}
	return &diagnostics.HistogramResult{Edges: edges, Counts: counts}, nil
}

func autoBinWidth(sorted []float64) float64 {
	n := float64(len(sorted))
	ptp := sorted[len(sorted)-1] - sorted[0]
	sturges := ptp / (math.Log2(n) + 1)

	iqr := quantileLinear(sorted, 0.75) - quantileLinear(sorted, 0.25)
	fd := 2 * iqr * math.Pow(n, -1.0/3.0)
	if fd > 0 {
		return math.Min(fd, sturges)
	}
	return sturges
}
