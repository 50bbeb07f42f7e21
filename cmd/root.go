package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"httplatencies/internal/banner"
	"httplatencies/internal/cli"
	"httplatencies/internal/config"
	"httplatencies/internal/export"
	"httplatencies/internal/logging"
	"httplatencies/internal/runner"
	"httplatencies/internal/stats"
	"httplatencies/internal/storage"
	"httplatencies/internal/tui/live"
)

// NewRootCmd builds the probe command and its subcommands around a fresh
// viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "httplatencies",
		Short: "Measure HTTP GET latencies from many concurrent, paced workers",
		Long: `
httplatencies starts a fleet of workers that each send a fixed number of paced
GET requests, rotating over target URLs, local source addresses, HTTP clients
and header values read from files. Successful latencies are collected into a
millisecond histogram and summarized when every worker is done.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}

			logging.Setup(v.GetString("log-level"), v.GetString("log-format"), cmd.ErrOrStderr())

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, v)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.httplatencies.yaml)")
	pf.String("history-db", config.DefaultHistoryDB(), "Run history database")
	pf.String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Diagnostic log format (text, json)")

	f := rootCmd.Flags()
	addProbeFlags(f)

	_ = v.BindPFlags(pf)
	_ = v.BindPFlags(f)
	config.SetupEnv(v)

	rootCmd.AddCommand(newTargetCmd(), newHistoryCmd(v))

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), banner.GetString())
		fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
	})

	return rootCmd
}

// addProbeFlags registers the flags of a probe run. Their names are the
// config keys.
func addProbeFlags(f *pflag.FlagSet) {
	f.StringSliceP("url", "u", nil, "Target URL, repeatable")
	f.StringSliceP("local-ip", "l", nil, "Local source address, repeatable")
	f.IntP("tasks", "t", config.DefaultTaskCount, "Number of concurrent workers")
	f.IntP("probes", "p", config.DefaultProbeCount, "Requests per worker")
	f.StringSliceP("header-file", "H", nil, "Header values as name:path, one value per line, repeatable")
	f.IntP("clients", "c", 0, "HTTP client pool size (0 = one per local address)")
	f.Duration("timeout", config.DefaultTimeout, "Per-request timeout")
	f.Duration("interval", config.DefaultInterval, "Pause between two requests of a worker")
	f.Bool("tui", false, "Show the live dashboard")
	f.StringP("out", "o", "", "Write <prefix>_summary.json and <prefix>_histogram.csv")
	f.String("metrics-file", "", "Write probe metrics in Prometheus text format")
	f.Bool("save", false, "Store the run in the history database")
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)

		return v.ReadInConfig()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	v.AddConfigPath(home)
	v.SetConfigType("yaml")
	v.SetConfigName(".httplatencies")

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}

	return nil
}

func runProbe(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()
	metrics := stats.NewMetrics()

	r, err := runner.New(cfg, runner.WithMetrics(metrics), runner.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	var res runner.Result
	if cfg.TUI {
		res, err = runTUI(ctx, r)
		if err != nil {
			return err
		}
	} else {
		res = cli.Start(ctx, r, out, isTerminal(out))
	}

	if ctx.Err() != nil {
		logger.Warn("run interrupted, summarizing partial results",
			"outcomes", res.Outcomes(), "expected", res.Expected)
	}

	summary, summaryErr := stats.Summarize(res.Histogram)
	if err := cli.PrintSummary(out, res, summary, summaryErr); err != nil {
		return err
	}

	return writeOutputs(cfg, export.NewReport(cfg, res, summary, summaryErr), res, metrics)
}

// runTUI drives r under the live dashboard. Quitting the dashboard cancels
// the run; the result still holds whatever was collected.
func runTUI(ctx context.Context, r *runner.Runner) (runner.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(live.NewModel(r.Cfg.ExpectedSamples()), tea.WithAltScreen())

	done := make(chan runner.Result, 1)
	go func() {
		res := r.Run(ctx, live.Observer{Program: p})

		msg := "no data"
		if summary, err := stats.Summarize(res.Histogram); err == nil {
			msg = summary.String()
		}

		p.Send(live.DoneMsg{Summary: msg})
		done <- res
	}()

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	cancel()
	res := <-done

	return res, err
}

func writeOutputs(cfg *config.Config, rep export.Report, res runner.Result, metrics *stats.Metrics) error {
	if cfg.Out != "" {
		if dir := filepath.Dir(cfg.Out); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}

		if err := export.Write(cfg.Out, rep, res.Histogram); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if cfg.Save {
		store, err := storage.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Save(storage.NewHistoryItem(rep)); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && cli.IsTerminal(f)
}
