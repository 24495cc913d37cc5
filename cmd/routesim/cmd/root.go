package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"cosmossdk.io/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/pkg/telemetry"
)

const envPrefix = "ROUTESIM"

// Config keys, also used as flag names.
const (
	FlagConfig          = "config"
	FlagFixture         = "fixture"
	FlagLogLevel        = "log-level"
	FlagLogJSON         = "log-json"
	FlagTraceEnabled    = "trace-enabled"
	FlagTraceEndpoint   = "trace-endpoint"
	FlagTraceSampleRate = "trace-sample-rate"
	FlagEnvironment     = "environment"
	FlagMetricsEnabled  = "metrics-enabled"
	FlagMetricsOut      = "metrics-out"
)

// Config is the resolved simulator configuration.
type Config struct {
	Fixture  string
	LogLevel string
	LogJSON  bool
	Tracing  telemetry.Config

	// MetricsOut receives the Prometheus text dump when metrics are
	// enabled; empty means stderr.
	MetricsOut string
}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v         *viper.Viper
	cfg       Config
	logger    log.Logger
	telemetry *telemetry.Provider
}

// NewRootCmd creates the routesim command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "routesim",
		Short: "Simulate pool manager routes against a YAML pool fixture",
		Long: `routesim loads pools, balances and fee settings from a YAML fixture into an
in-memory pool manager, then estimates or executes routes against it.

Every flag can also be set in a config file or through ROUTESIM_* environment
variables, e.g. ROUTESIM_FIXTURE or ROUTESIM_TRACE_ENDPOINT.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return a.init(cmd.Flags(), cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.writeMetrics(cmd.ErrOrStderr()); err != nil {
				return err
			}
			return a.telemetry.Shutdown(cmd.Context())
		},
	}

	AddConfigFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		NewPoolsCmd(a),
		NewEstimateInCmd(a),
		NewEstimateOutCmd(a),
		NewSwapInCmd(a),
		NewSwapOutCmd(a),
		NewRunCmd(a),
	)
	return rootCmd
}

// AddConfigFlags registers the flags shared by every subcommand.
func AddConfigFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "config file (yaml, toml or json)")
	flags.String(FlagFixture, "fixture.yaml", "pool fixture file")
	flags.String(FlagLogLevel, "info", "log level, e.g. info or x/poolmanager:debug,*:error")
	flags.Bool(FlagLogJSON, false, "log in JSON")
	flags.Bool(FlagTraceEnabled, false, "export OpenTelemetry traces")
	flags.String(FlagTraceEndpoint, "localhost:4318", "OTLP/HTTP collector endpoint")
	flags.Float64(FlagTraceSampleRate, 1.0, "trace sample rate in [0,1]")
	flags.String(FlagEnvironment, "local", "environment attached to traces")
	flags.Bool(FlagMetricsEnabled, false, "collect route metrics and print them in the Prometheus text format")
	flags.String(FlagMetricsOut, "", "file the route metrics are written to (default stderr)")
}

// ReadConfig resolves configuration from flags, environment and an optional
// config file, in that order of precedence.
func ReadConfig(v *viper.Viper, flags *pflag.FlagSet) (Config, error) {
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(FlagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		Fixture:  v.GetString(FlagFixture),
		LogLevel: v.GetString(FlagLogLevel),
		LogJSON:  v.GetBool(FlagLogJSON),
		Tracing: telemetry.Config{
			Enabled:     v.GetBool(FlagTraceEnabled),
			Endpoint:    v.GetString(FlagTraceEndpoint),
			SampleRate:  v.GetFloat64(FlagTraceSampleRate),
			Environment: v.GetString(FlagEnvironment),
			RunID:       uuid.NewString(),

			PrometheusEnabled: v.GetBool(FlagMetricsEnabled),
		},
		MetricsOut: v.GetString(FlagMetricsOut),
	}
	if cfg.Fixture == "" {
		return Config{}, fmt.Errorf("a fixture file is required")
	}
	if err := telemetry.ValidateConfig(cfg.Tracing); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger builds the simulator logger.
func NewLogger(cfg Config, w io.Writer) (log.Logger, error) {
	filter, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := []log.Option{log.FilterOption(filter), log.ColorOption(false)}
	if cfg.LogJSON {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(w, opts...), nil
}

func (a *app) init(flags *pflag.FlagSet, logOut io.Writer) error {
	cfg, err := ReadConfig(a.v, flags)
	if err != nil {
		return err
	}
	logger, err := NewLogger(cfg, logOut)
	if err != nil {
		return err
	}
	provider, err := telemetry.NewProvider(cfg.Tracing)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.With("run_id", cfg.Tracing.RunID)
	a.telemetry = provider
	return nil
}

// writeMetrics dumps the collected route metrics, if any, to the configured
// file or to w.
func (a *app) writeMetrics(w io.Writer) error {
	if a.telemetry == nil || !a.cfg.Tracing.PrometheusEnabled {
		return nil
	}
	if a.cfg.MetricsOut == "" {
		return a.telemetry.WriteMetrics(w)
	}
	f, err := os.Create(a.cfg.MetricsOut)
	if err != nil {
		return fmt.Errorf("metrics out: %w", err)
	}
	if err := a.telemetry.WriteMetrics(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// simulator loads the configured fixture into a fresh simulator.
func (a *app) simulator() (*Simulator, error) {
	fixture, err := LoadFixture(a.cfg.Fixture)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded fixture", "path", a.cfg.Fixture, "pools", len(fixture.Pools), "accounts", len(fixture.Accounts))
	return NewSimulator(fixture, a.logger)
}
