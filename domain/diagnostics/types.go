package diagnostics

// Kind tags each report step.
type Kind string

const (
	KindDescriptive      Kind = "descriptive"
	KindHistogram        Kind = "histogram"
	KindDensity          Kind = "density"
	KindQQ               Kind = "qq"
	KindJarqueBera       Kind = "jarque_bera"
	KindShapiroWilk      Kind = "shapiro_wilk"
	KindAndersonDarling  Kind = "anderson_darling"
	KindDAgostino        Kind = "dagostino"
	KindDurbinWatson     Kind = "durbin_watson"
	KindHomoscedasticity Kind = "homoscedasticity"
	KindBreuschPagan     Kind = "breusch_pagan"
	KindVIF              Kind = "vif"
	KindCorrelation      Kind = "correlation"
)

// Steps is the fixed order in which every run executes its checks.
var Steps = []Kind{
	KindDescriptive,
	KindHistogram,
	KindDensity,
	KindQQ,
	KindJarqueBera,
	KindShapiroWilk,
	KindAndersonDarling,
	KindDAgostino,
	KindDurbinWatson,
	KindHomoscedasticity,
	KindBreuschPagan,
	KindVIF,
	KindCorrelation,
}

// Result is the tagged union of per-step payloads.
type Result interface {
	Kind() Kind
}

// Visual is implemented by results that are meant to be drawn.
type Visual interface {
	Result
	Figures() []Figure
}

// Figure names one drawable panel of a visual result.
type Figure struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Kind  Kind   `json:"kind"`
}

// Figure names
const (
	FigureHistogram         = "residual_histogram"
	FigureDensity           = "residual_density"
	FigureQQ                = "residual_qq"
	FigurePredictedResidual = "predicted_vs_residual"
	FigureActualPredicted   = "actual_vs_predicted"
	FigureCorrelation       = "correlation_matrix"
)

// ColumnSummary mirrors a describe() column: sample std, linear quartiles.
type ColumnSummary struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// DescriptiveResult summarises the predicted, actual and residual columns.
type DescriptiveResult struct {
	Columns []ColumnSummary `json:"columns"`
}

func (DescriptiveResult) Kind() Kind { return KindDescriptive }

// HistogramResult bins residuals. len(Edges) == len(Counts)+1.
type HistogramResult struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

func (HistogramResult) Kind() Kind { return KindHistogram }

func (HistogramResult) Figures() []Figure {
	return []Figure{{Name: FigureHistogram, Title: "Residuals histogram", Kind: KindHistogram}}
}

// DensityResult is a Gaussian kernel density estimate evaluated on a grid.
type DensityResult struct {
	Bandwidth float64   `json:"bandwidth"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
}

func (DensityResult) Kind() Kind { return KindDensity }

func (DensityResult) Figures() []Figure {
	return []Figure{{Name: FigureDensity, Title: "Test data residuals kernel density plot", Kind: KindDensity}}
}

// QQResult pairs theoretical normal quantiles with ordered residuals and the
// least-squares line through them.
type QQResult struct {
	Theoretical []float64 `json:"theoretical"`
	Ordered     []float64 `json:"ordered"`
	Slope       float64   `json:"slope"`
	Intercept   float64   `json:"intercept"`
	R           float64   `json:"r"`
}

func (QQResult) Kind() Kind { return KindQQ }

func (QQResult) Figures() []Figure {
	return []Figure{{Name: FigureQQ, Title: "Residuals qq plot", Kind: KindQQ}}
}

// JarqueBeraResult holds the JB statistic, its chi-squared(2) p-value and
// the moments it was built from. Kurtosis is not excess kurtosis.
type JarqueBeraResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Skew      float64 `json:"skew"`
	Kurtosis  float64 `json:"kurtosis"`
	Verdict   Verdict `json:"verdict"`
}

func (JarqueBeraResult) Kind() Kind { return KindJarqueBera }

// ShapiroWilkResult holds W and its p-value.
type ShapiroWilkResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Verdict   Verdict `json:"verdict"`
}

func (ShapiroWilkResult) Kind() Kind { return KindShapiroWilk }

// CriticalLevel is one row of the Anderson-Darling table. Significance is a
// percentage.
type CriticalLevel struct {
	Significance  float64  `json:"significance"`
	CriticalValue float64  `json:"critical_value"`
	Decision      Decision `json:"decision"`
	Text          string   `json:"text"`
}

// AndersonDarlingResult holds A² and the per-level decisions.
type AndersonDarlingResult struct {
	Statistic float64         `json:"statistic"`
	Levels    []CriticalLevel `json:"levels"`
}

func (AndersonDarlingResult) Kind() Kind { return KindAndersonDarling }

// DAgostinoResult holds K² = SkewZ² + KurtosisZ² and its p-value.
type DAgostinoResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	SkewZ     float64 `json:"skew_z"`
	KurtosisZ float64 `json:"kurtosis_z"`
	Verdict   Verdict `json:"verdict"`
}

func (DAgostinoResult) Kind() Kind { return KindDAgostino }

// DurbinWatsonResult holds d in [0,4] and its serial correlation bucket.
type DurbinWatsonResult struct {
	Statistic   float64           `json:"statistic"`
	Correlation SerialCorrelation `json:"correlation"`
	Ordering    SequenceOrder     `json:"ordering"`
	Text        string            `json:"text"`
}

func (DurbinWatsonResult) Kind() Kind { return KindDurbinWatson }

// HomoscedasticityResult carries the scatter data for the two homoscedasticity
// panels. LineMin/LineMax bound the 45 degree reference line.
type HomoscedasticityResult struct {
	Predicted []float64 `json:"predicted"`
	Actual    []float64 `json:"actual"`
	Residual  []float64 `json:"residual"`
	LineMin   float64   `json:"line_min"`
	LineMax   float64   `json:"line_max"`
}

func (HomoscedasticityResult) Kind() Kind { return KindHomoscedasticity }

func (HomoscedasticityResult) Figures() []Figure {
	return []Figure{
		{Name: FigurePredictedResidual, Title: "Model predicted values against residuals", Kind: KindHomoscedasticity},
		{Name: FigureActualPredicted, Title: "Plot of Regression Test Values, Predicted vs. Actual", Kind: KindHomoscedasticity},
	}
}

// BreuschPaganResult holds the Lagrange multiplier and F forms of the test.
type BreuschPaganResult struct {
	LM       float64       `json:"lm"`
	LMPValue float64       `json:"lm_p_value"`
	F        Float         `json:"f"`
	FPValue  float64       `json:"f_p_value"`
	DF       int           `json:"df"`
	Ordering SequenceOrder `json:"ordering"`
	Verdict  Verdict       `json:"verdict"`
}

func (BreuschPaganResult) Kind() Kind { return KindBreuschPagan }

// VIFRow is the variance inflation factor of one feature.
type VIFRow struct {
	Feature string `json:"feature"`
	VIF     Float  `json:"vif"`
}

// VIFResult has one row per prediction-set column.
type VIFResult struct {
	Rows           []VIFRow `json:"rows"`
	Max            Float    `json:"max"`
	Multicollinear bool     `json:"multicollinear"`
	Text           string   `json:"text"`
}

func (VIFResult) Kind() Kind { return KindVIF }

// CorrelationResult is the Pearson matrix of the prediction set. Mask marks
// the cells hidden in the lower-triangle view (diagonal and above).
type CorrelationResult struct {
	Features []string    `json:"features"`
	Matrix   [][]float64 `json:"matrix"`
	Rounded  [][]float64 `json:"rounded"`
	Mask     [][]bool    `json:"mask"`
}

func (CorrelationResult) Kind() Kind { return KindCorrelation }

func (CorrelationResult) Figures() []Figure {
	return []Figure{{Name: FigureCorrelation, Title: "Correlation Matrix", Kind: KindCorrelation}}
}
