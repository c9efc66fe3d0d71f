// Command genenet designs genetic circuits: it wires templates over a part
// catalog, compiles devices into reaction networks and checks them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-genenet/pkg/catalog"
	"github.com/dd0wney/cluso-genenet/pkg/config"
	"github.com/dd0wney/cluso-genenet/pkg/logging"
	"github.com/dd0wney/cluso-genenet/pkg/metrics"
	"github.com/dd0wney/cluso-genenet/pkg/template"
)

// app carries what every command shares once flags are parsed
type app struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
	stderr  io.Writer

	envFile      string
	catalogPath  string
	templatesDir string
	logLevel     string
	metricsFile  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr, metrics: metrics.NewRegistry()}

	root := &cobra.Command{
		Use:   "genenet",
		Short: "Genetic circuit design",
		Long: `genenet assigns catalog proteins to circuit templates, builds devices
from the resulting wirings and compiles devices into reaction networks.

Defaults come from the environment (GENENET_CATALOG, GENENET_TEMPLATES,
GENENET_SEED, GENENET_MAX_SOLUTIONS, GENENET_WORKERS, LOG_LEVEL) and an
optional .env file. Flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.writeMetrics()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "read settings from this .env file instead of ./.env")
	flags.StringVar(&a.catalogPath, "catalog", "", "catalog directory or .snap file")
	flags.StringVar(&a.templatesDir, "templates", "", "template directory")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write metrics in the Prometheus text format to this file on success")

	root.AddCommand(
		newSolveCmd(a),
		newCompileCmd(a),
		newReportCmd(a),
		newVariationsCmd(a),
		newTemplateCmd(a),
		newCatalogCmd(a),
	)
	return root
}

// setup loads the configuration and applies flag overrides
func (a *app) setup(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Read(files...)
	if err != nil {
		return err
	}
	if a.catalogPath != "" {
		cfg.CatalogPath = a.catalogPath
	}
	if a.templatesDir != "" {
		cfg.TemplatesDir = a.templatesDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(a.stderr).With(logging.Component("cli"), logging.String("command", cmd.Name()))
	return nil
}

// writeMetrics exports the run's metrics when --metrics-file is set
func (a *app) writeMetrics() error {
	if a.metricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.metricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	a.logger.Debug("metrics written", logging.Path(a.metricsFile))
	return nil
}

// loadCatalog opens the configured catalog directory or snapshot
func (a *app) loadCatalog() (*catalog.Catalog, error) {
	opts := []catalog.Option{
		catalog.WithCacheSize(a.cfg.CacheSize),
		catalog.WithMetrics(a.metrics),
	}
	timer := logging.StartTimer(a.logger, "catalog loaded", logging.Path(a.cfg.CatalogPath))

	var (
		c   *catalog.Catalog
		err error
	)
	if a.cfg.CatalogIsSnapshot() {
		c, err = catalog.OpenSnapshot(a.cfg.CatalogPath, opts...)
	} else {
		c, err = catalog.Load(a.cfg.CatalogPath, opts...)
	}
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	timer.End()
	return c, nil
}

// loadTemplate loads a template and its subnetworks from the template directory
func (a *app) loadTemplate(id string) (*template.Template, error) {
	return template.Load(template.DirSource{Dir: a.cfg.TemplatesDir}, id)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
