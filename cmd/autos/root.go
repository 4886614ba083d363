package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"autos/internal/config"
	"autos/internal/metrics"
	"autos/internal/metrics/datadog"
	"autos/internal/metrics/prompush"
)

var errInvalidConfig = errors.New("configuration is invalid")

// app carries the global flags and the effective configuration between the
// root command and its subcommands.
type app struct {
	cfgFile        string
	verbose        bool
	metricsBackend string
	pushgatewayURL string
	statsdAddr     string

	cfg config.Pipeline
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "autos",
		Short:         "Clean a used-car listing export and summarize it by brand",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./autos.yaml when present)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")
	pf.StringVar(&a.metricsBackend, "metrics-backend", "", "metrics backend: none, pushgateway or datadog")
	pf.StringVar(&a.pushgatewayURL, "pushgateway-url", "", "Pushgateway base URL")
	pf.StringVar(&a.statsdAddr, "statsd-addr", "", "DogStatsD address (host:port)")

	root.AddCommand(newRunCmd(a), newDescribeCmd(a), newValidateCmd(a), newSampleCmd())
	return root
}

// load reads .env, the config file and AUTOS_* variables, then applies the
// global flags that were set explicitly.
func (a *app) load(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if f.Changed("metrics-backend") {
		cfg.Metrics.Backend = a.metricsBackend
	}
	if f.Changed("pushgateway-url") {
		cfg.Metrics.PushgatewayURL = a.pushgatewayURL
	}
	if f.Changed("statsd-addr") {
		cfg.Metrics.StatsdAddr = a.statsdAddr
	}
	a.cfg = cfg

	if cfg.Verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}
	return nil
}

// check lints the effective configuration, printing every issue to stderr.
func (a *app) check(cmd *cobra.Command) error {
	issues := config.ValidatePipeline(a.cfg)
	for _, iss := range issues {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return errInvalidConfig
	}
	return nil
}

// setupMetrics installs the configured backend and returns the function
// that flushes it. A backend that fails to start leaves metrics disabled.
func (a *app) setupMetrics(runID string) func() {
	m := a.cfg.Metrics
	var (
		b   metrics.Backend
		err error
	)
	switch strings.ToLower(m.Backend) {
	case "pushgateway":
		b, err = prompush.NewBackend(a.cfg.Job, m.PushgatewayURL, runID)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       m.StatsdAddr,
			GlobalTags: []string{"job:" + a.cfg.Job, "run_id:" + runID},
		})
	default:
		log.Printf("metrics: disabled (backend=%q)", m.Backend)
		return func() {}
	}
	if err != nil {
		log.Printf("metrics: init %s backend: %v; using nop", m.Backend, err)
		return func() {}
	}
	log.Printf("metrics: backend=%s job=%s run=%s", m.Backend, a.cfg.Job, runID)
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}

// sourceFlags are the input options shared by run and describe.
type sourceFlags struct {
	encoding string
	unmapped string
	lenient  bool
}

func (s *sourceFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&s.encoding, "encoding", "", "input text encoding (default Latin-1)")
	f.StringVar(&s.unmapped, "unmapped", "", "unknown header policy: error or passthrough")
	f.BoolVar(&s.lenient, "lenient", false, "skip malformed rows instead of failing")
}

// apply copies the flags that were set, and the optional path argument, into cfg.
func (s *sourceFlags) apply(cmd *cobra.Command, args []string, cfg *config.Pipeline) {
	f := cmd.Flags()
	if len(args) > 0 {
		cfg.Source.Path = args[0]
	}
	if f.Changed("encoding") {
		cfg.Source.Encoding = s.encoding
	}
	if f.Changed("unmapped") {
		cfg.Schema.Unmapped = s.unmapped
	}
	if f.Changed("lenient") {
		cfg.Source.Lenient = s.lenient
	}
}
