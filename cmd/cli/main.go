package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"goresid/adapters/api"
	"goresid/adapters/excel"
	"goresid/adapters/model"
	"goresid/adapters/plot"
	"goresid/app"
	"goresid/domain/diagnostics"
	"goresid/internal"
	"goresid/internal/config"
	apperrors "goresid/internal/errors"
	"goresid/internal/report"
	"goresid/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	err = execute(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func execute(cfg *config.Config, logger *internal.Logger) error {
	rootCmd := &cobra.Command{
		Use:           "goresid",
		Short:         "Residual diagnostics for fitted regression models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("registry", cfg.Registry, "Model and variable set registry (YAML)")

	rootCmd.AddCommand(
		newRunCmd(cfg, logger),
		newModelsCmd(),
		newServeCmd(cfg, logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// loadRegistry reads the registry named by the --registry flag.
func loadRegistry(cmd *cobra.Command) (ports.ModelRegistry, ports.ScoringRegistry, error) {
	path, _ := cmd.Flags().GetString("registry")
	models, scoring, err := model.NewFileRegistry(path).Load(cmd.Context())
	if err != nil {
		return nil, nil, apperrors.Wrapf(err, "load registry %s", path)
	}
	return models, scoring, nil
}

func newRunCmd(cfg *config.Config, logger *internal.Logger) *cobra.Command {
	var (
		dataPath  string
		sheet     string
		indexCol  string
		targetCol string
		modelID   string
		alpha     float64
		order     string
		format    string
		plotsDir  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every diagnostic check for one model on an evaluation set",
		Long: `Load an evaluation table (.xlsx or .csv), split off the target column,
score it with the named model and print the diagnostics report.

Example: goresid run --data eval.csv --target y --model ols --plots figures/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, scoring, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			reader := excel.NewDataReader(excel.ReaderConfig{FilePath: dataPath, Sheet: sheet, IndexColumn: indexCol}).WithLogger(logger)
			frame, err := reader.ReadFrame(cmd.Context())
			if err != nil {
				return err
			}
			features, target, err := frame.SplitTarget(targetCol)
			if err != nil {
				return err
			}

			seq, err := diagnostics.ParseSequenceOrder(order)
			if err != nil {
				return err
			}
			reportFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			svc := app.NewDiagnosticsService(models, scoring, app.WithLogger(logger))
			result, err := svc.Run(cmd.Context(), app.RunRequest{
				ModelID: modelID,
				Frame:   features,
				Target:  target,
				Alpha:   alpha,
				Order:   seq,
			})
			if err != nil {
				return err
			}

			if err := report.Write(cmd.OutOrStdout(), result, reportFormat); err != nil {
				return err
			}
			if plotsDir == "" {
				return nil
			}
			return writeFigures(cmd.Context(), cfg, logger, result, plotsDir)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Evaluation table (.xlsx or .csv)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default: first sheet)")
	cmd.Flags().StringVar(&indexCol, "index", "", "Column holding row labels")
	cmd.Flags().StringVar(&targetCol, "target", "", "Column holding observed values")
	cmd.Flags().StringVar(&modelID, "model", "", "Registered model identifier")
	cmd.Flags().Float64Var(&alpha, "alpha", cfg.Diagnostics.Alpha, "Significance level")
	cmd.Flags().StringVar(&order, "order", cfg.Diagnostics.SequenceOrder, "Residual sequence for order-sensitive tests: residual|observation")
	cmd.Flags().StringVar(&format, "format", cfg.Report.Format, "Report format: text|markdown|html|json")
	cmd.Flags().StringVar(&plotsDir, "plots", "", "Write one image per figure into this directory")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func writeFigures(ctx context.Context, cfg *config.Config, logger *internal.Logger, result *diagnostics.Report, dir string) error {
	format, err := plot.ParseFormat(cfg.Plot.Format)
	if err != nil {
		return err
	}
	opts := plot.Options{Format: format, Width: cfg.Plot.Width, Height: cfg.Plot.Height}
	sink, err := plot.NewDirSink(dir, opts)
	if err != nil {
		return err
	}
	if err := plot.RenderAll(ctx, result, sink, opts, logger); err != nil {
		return err
	}
	logger.Info("Wrote %d figures to %s", len(result.Figures()), dir)
	return nil
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List registered models and their feature sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, scoring, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range models.IDs() {
				entry := models[id]
				fmt.Fprintf(out, "%s\t%s\t%v\n", id, entry.Variables, scoring[entry.Variables])
			}
			return nil
		},
	}
}

func newServeCmd(cfg *config.Config, logger *internal.Logger) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagnostics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, scoring, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			return api.NewFromConfig(cfg, models, scoring, logger).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", cfg.Server.Addr, "Listen address")
	return cmd
}
