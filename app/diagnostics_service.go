package app

import (
	"context"
	"fmt"
	"time"

	"goresid/adapters/stats/checks"
	"goresid/domain/core"
	"goresid/domain/dataset"
	"goresid/domain/diagnostics"
	"goresid/internal"
	"goresid/ports"
)

// DefaultAlpha is the significance level used when none is configured.
const DefaultAlpha = 0.05

// RunObserver receives timings for metrics. Implementations must be safe for
// concurrent use.
type RunObserver interface {
	ObserveStep(kind diagnostics.Kind, elapsed time.Duration, err error)
	ObserveRun(modelID string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveStep(diagnostics.Kind, time.Duration, error) {}
func (nopObserver) ObserveRun(string, time.Duration, error)            {}

// DiagnosticsService runs the residual diagnostics battery for registered
// models. The registries are read-only; one service can serve concurrent
// runs.
type DiagnosticsService struct {
	models   ports.ModelRegistry
	scoring  ports.ScoringRegistry
	alpha    float64
	order    diagnostics.SequenceOrder
	logger   *internal.Logger
	observer RunObserver
}

// Option configures a DiagnosticsService.
type Option func(*DiagnosticsService)

// WithAlpha sets the default significance level.
func WithAlpha(alpha float64) Option {
	return func(s *DiagnosticsService) { s.alpha = alpha }
}

// WithSequenceOrder sets the default ordering for order-sensitive tests.
func WithSequenceOrder(order diagnostics.SequenceOrder) Option {
	return func(s *DiagnosticsService) { s.order = order }
}

// WithLogger replaces the default logger.
func WithLogger(logger *internal.Logger) Option {
	return func(s *DiagnosticsService) { s.logger = logger }
}

// WithObserver attaches a metrics observer.
func WithObserver(observer RunObserver) Option {
	return func(s *DiagnosticsService) { s.observer = observer }
}

// NewDiagnosticsService creates a diagnostics service over fixed registries.
func NewDiagnosticsService(models ports.ModelRegistry, scoring ports.ScoringRegistry, opts ...Option) *DiagnosticsService {
	s := &DiagnosticsService{
		models:   models,
		scoring:  scoring,
		alpha:    DefaultAlpha,
		order:    diagnostics.OrderResidual,
		logger:   internal.DefaultLogger,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Models returns the model registry the service was built with.
func (s *DiagnosticsService) Models() ports.ModelRegistry {
	return s.models
}

// Scoring returns the scoring registry the service was built with.
func (s *DiagnosticsService) Scoring() ports.ScoringRegistry {
	return s.scoring
}

// RunRequest defines one diagnostics run. Zero Alpha and empty Order fall
// back to the service defaults; an empty RunID is generated.
type RunRequest struct {
	RunID   core.RunID
	ModelID string
	Frame   *dataset.Frame
	Target  *dataset.Series
	Alpha   float64
	Order   diagnostics.SequenceOrder
}

// runState is what every step reads. It is never modified after the
// residual table is built.
type runState struct {
	table *diagnostics.ResidualTable
	pset  *diagnostics.PredictionSet
	alpha float64
	order diagnostics.SequenceOrder
}

type stepFunc func(*runState) (diagnostics.Result, error)

var stepFuncs = map[diagnostics.Kind]stepFunc{
	diagnostics.KindDescriptive:      descriptiveStep,
	diagnostics.KindHistogram:        histogramStep,
	diagnostics.KindDensity:          densityStep,
	diagnostics.KindQQ:               qqStep,
	diagnostics.KindJarqueBera:       jarqueBeraStep,
	diagnostics.KindShapiroWilk:      shapiroWilkStep,
	diagnostics.KindAndersonDarling:  andersonDarlingStep,
	diagnostics.KindDAgostino:        dagostinoStep,
	diagnostics.KindDurbinWatson:     durbinWatsonStep,
	diagnostics.KindHomoscedasticity: homoscedasticityStep,
	diagnostics.KindBreuschPagan:     breuschPaganStep,
	diagnostics.KindVIF:              vifStep,
	diagnostics.KindCorrelation:      correlationStep,
}

// Run builds the residual table and executes every step once, in the fixed
// order of diagnostics.Steps. The first error aborts the run and no partial
// report is returned.
func (s *DiagnosticsService) Run(ctx context.Context, req RunRequest) (report *diagnostics.Report, err error) {
	start := time.Now()
	defer func() { s.observer.ObserveRun(req.ModelID, time.Since(start), err) }()

	alpha, order, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}
	log := s.logger.With("run_id", runID.String(), "model_id", req.ModelID)
	log.Info("diagnostics run started (alpha=%s, order=%s)", diagnostics.FormatAlpha(alpha), order)

	table, pset, err := BuildResiduals(ctx, ResidualInput{
		ModelID: req.ModelID,
		Frame:   req.Frame,
		Target:  req.Target,
		Models:  s.models,
		Scoring: s.scoring,
	})
	if err != nil {
		log.Warn("building residuals failed: %v", err)
		return nil, fmt.Errorf("build residuals: %w", err)
	}

	state := &runState{table: table, pset: pset, alpha: alpha, order: order}
	report = &diagnostics.Report{
		RunID:        runID,
		ModelID:      req.ModelID,
		Variables:    pset.Alias,
		Features:     append([]string(nil), pset.Features()...),
		Alpha:        alpha,
		Ordering:     order,
		Observations: table.Len(),
		Fingerprint:  table.Fingerprint(),
		Residuals:    table,
	}

	for _, kind := range diagnostics.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run canceled before %s: %w", kind, err)
		}
		stepStart := time.Now()
		res, err := stepFuncs[kind](state)
		s.observer.ObserveStep(kind, time.Since(stepStart), err)
		if err != nil {
			log.Warn("step %s failed: %v", kind, err)
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		log.Debug("step %s done in %s", kind, time.Since(stepStart))
		report.Set(res)
	}

	log.Info("diagnostics run finished: %d observations in %s", table.Len(), time.Since(start))
	return report, nil
}

func (s *DiagnosticsService) resolve(req RunRequest) (float64, diagnostics.SequenceOrder, error) {
	alpha := req.Alpha
	if alpha == 0 {
		alpha = s.alpha
	}
	if !(alpha > 0 && alpha < 1) {
		return 0, "", fmt.Errorf("%w: got %v", core.ErrInvalidAlpha, alpha)
	}
	order := req.Order
	if order == "" {
		order = s.order
	}
	order, err := diagnostics.ParseSequenceOrder(string(order))
	if err != nil {
		return 0, "", err
	}
	return alpha, order, nil
}

func descriptiveStep(st *runState) (diagnostics.Result, error) {
	return checks.DescribeResiduals(st.table)
}

func histogramStep(st *runState) (diagnostics.Result, error) {
	return checks.Histogram(st.table.Residual())
}

func densityStep(st *runState) (diagnostics.Result, error) {
	return checks.KernelDensity(st.table.Residual())
}

func qqStep(st *runState) (diagnostics.Result, error) {
	return checks.NormalProbabilityPlot(st.table.Residual())
}

func jarqueBeraStep(st *runState) (diagnostics.Result, error) {
	res, err := checks.JarqueBera(st.table.Residual())
	if err != nil {
		return nil, err
	}
	res.Verdict = diagnostics.JarqueBeraVerdict(res.PValue, st.alpha)
	return res, nil
}

func shapiroWilkStep(st *runState) (diagnostics.Result, error) {
	res, err := checks.ShapiroWilk(st.table.Residual())
	if err != nil {
		return nil, err
	}
	res.Verdict = diagnostics.NormalityVerdict(res.PValue, st.alpha)
	return res, nil
}

func andersonDarlingStep(st *runState) (diagnostics.Result, error) {
	return checks.AndersonDarling(st.table.Residual())
}

func dagostinoStep(st *runState) (diagnostics.Result, error) {
	res, err := checks.DAgostino(st.table.Residual())
	if err != nil {
		return nil, err
	}
	res.Verdict = diagnostics.NormalityVerdict(res.PValue, st.alpha)
	return res, nil
}

func durbinWatsonStep(st *runState) (diagnostics.Result, error) {
	d, err := checks.DurbinWatson(st.table.ResidualSequence(st.order))
	if err != nil {
		return nil, err
	}
	c := diagnostics.ClassifyDurbinWatson(d)
	return &diagnostics.DurbinWatsonResult{
		Statistic:   d,
		Correlation: c,
		Ordering:    st.order,
		Text:        diagnostics.DurbinWatsonText(c),
	}, nil
}

func homoscedasticityStep(st *runState) (diagnostics.Result, error) {
	predicted := st.table.Predicted()
	actual := st.table.Actual()
	lo, hi := predicted[0], predicted[0]
	for _, col := range [][]float64{predicted, actual} {
		for _, v := range col {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return &diagnostics.HomoscedasticityResult{
		Predicted: predicted,
		Actual:    actual,
		Residual:  st.table.Residual(),
		LineMin:   lo,
		LineMax:   hi,
	}, nil
}

// breuschPaganStep pairs residuals with prediction-set rows by position. With
// residual ordering the sorted residuals meet rows in frame order.
func breuschPaganStep(st *runState) (diagnostics.Result, error) {
	res, err := checks.BreuschPagan(st.table.ResidualSequence(st.order), st.pset.Frame)
	if err != nil {
		return nil, err
	}
	res.Ordering = st.order
	res.Verdict = diagnostics.HomoscedasticityVerdict(res.LMPValue, st.alpha)
	return res, nil
}

func vifStep(st *runState) (diagnostics.Result, error) {
	res, err := checks.VarianceInflation(st.pset.Frame)
	if err != nil {
		return nil, err
	}
	res.Multicollinear = diagnostics.Multicollinear(float64(res.Max))
	res.Text = diagnostics.MulticollinearityText(res.Multicollinear)
	return res, nil
}

func correlationStep(st *runState) (diagnostics.Result, error) {
	return checks.Correlation(st.pset.Frame)
}
