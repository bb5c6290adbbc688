package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"goresid/adapters/model"
	"goresid/domain/dataset"
	"goresid/ports"
)

// ScenarioConfig configures a synthetic evaluation set scored by a known
// linear model.
type ScenarioConfig struct {
	Rows      int     `json:"rows"`
	Features  int     `json:"features"`
	Intercept float64 `json:"intercept"`
	NoiseStd  float64 `json:"noise_std"`
	// Heteroscedastic makes the noise scale grow linearly with x1.
	Heteroscedastic bool `json:"heteroscedastic"`
	// Duplicate appends a column equal to 2·x1 to the variable set.
	Duplicate bool  `json:"duplicate"`
	Labeled   bool  `json:"labeled"`
	Seed      int64 `json:"seed"`
}

// DefaultScenarioConfig returns a well-behaved regression scenario
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Rows:      200,
		Features:  3,
		Intercept: 1.0,
		NoiseStd:  1.0,
		Seed:      42,
	}
}

// Scenario is everything a diagnostics run needs.
type Scenario struct {
	ModelID string
	Alias   string
	Frame   *dataset.Frame
	Target  *dataset.Series
	Models  ports.ModelRegistry
	Scoring ports.ScoringRegistry
	Noise   []float64
}

// ScenarioModelID and ScenarioAlias name the registry entries of a scenario.
const (
	ScenarioModelID = "ols"
	ScenarioAlias   = "base"
)

// NewScenario draws features and noise from a seeded source. The target is
// the model's prediction plus noise, so residuals equal the noise exactly.
func NewScenario(config ScenarioConfig) (*Scenario, error) {
	if config.Rows < 1 || config.Features < 1 {
		return nil, fmt.Errorf("scenario needs at least one row and one feature")
	}
	rng := rand.New(rand.NewSource(config.Seed))

	names := make([]string, 0, config.Features+1)
	values := make([][]float64, 0, config.Features+1)
	coefs := make(map[string]float64, config.Features)
	for j := 0; j < config.Features; j++ {
		name := fmt.Sprintf("x%d", j+1)
		col := make([]float64, config.Rows)
		for i := range col {
			col[i] = rng.NormFloat64()
		}
		names = append(names, name)
		values = append(values, col)
		coefs[name] = float64(j+1) * 0.5
	}
	if config.Duplicate {
		dup := make([]float64, config.Rows)
		for i, v := range values[0] {
			dup[i] = 2 * v
		}
		names = append(names, "x1_dup")
		values = append(values, dup)
	}

	var index []string
	if config.Labeled {
		index = make([]string, config.Rows)
		for i := range index {
			index[i] = fmt.Sprintf("row-%04d", i)
		}
	}
	frame, err := dataset.NewFrame(names, values, index)
	if err != nil {
		return nil, err
	}

	linear := &model.LinearModel{Intercept: config.Intercept, Coefficients: coefs}
	target := make([]float64, config.Rows)
	noise := make([]float64, config.Rows)
	for i := range target {
		target[i] = config.Intercept
		for j := 0; j < config.Features; j++ {
			target[i] += coefs[names[j]] * values[j][i]
		}
		scale := config.NoiseStd
		if config.Heteroscedastic {
			scale *= 7 + 2*values[0][i]
		}
		noise[i] = scale * rng.NormFloat64()
		target[i] += noise[i]
	}
	series, err := dataset.NewSeries("y", target, index)
	if err != nil {
		return nil, err
	}

	return &Scenario{
		ModelID: ScenarioModelID,
		Alias:   ScenarioAlias,
		Frame:   frame,
		Target:  series,
		Models:  ports.ModelRegistry{ScenarioModelID: {Model: linear, Variables: ScenarioAlias}},
		Scoring: ports.ScoringRegistry{ScenarioAlias: names},
		Noise:   noise,
	}, nil
}

// OrthogonalFrame returns a frame of k mutually orthogonal, centred ±1
// columns (Walsh patterns) with n rows. n must be a multiple of 2^k.
func OrthogonalFrame(n, k int) (*dataset.Frame, error) {
	if k < 1 || n%(1<<k) != 0 {
		return nil, fmt.Errorf("n=%d must be a positive multiple of 2^%d", n, k)
	}
	names := make([]string, k)
	values := make([][]float64, k)
	for j := 0; j < k; j++ {
		names[j] = fmt.Sprintf("w%d", j+1)
		values[j] = make([]float64, n)
		for i := 0; i < n; i++ {
			if (i>>j)&1 == 0 {
				values[j][i] = 1
			} else {
				values[j][i] = -1
			}
		}
	}
	return dataset.NewFrame(names, values, nil)
}

// AlternatingSequence has Durbin-Watson statistic close to 4.
func AlternatingSequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
		if i%2 == 1 {
			out[i] = -1
		}
	}
	return out
}

// TrendingSequence is a slow sine wave; its Durbin-Watson statistic is
// close to 0.
func TrendingSequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
	}
	return out
}

// NormalSample draws n standard normal values from a seeded source.
func NormalSample(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}
