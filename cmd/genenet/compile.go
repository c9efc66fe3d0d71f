package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/catalog"
	"github.com/dd0wney/cluso-genenet/pkg/network"
)

// Model output formats
const (
	formatText   = "text"
	formatFernML = "fernml"
)

type compileOptions struct {
	devices []string
	file    string
	format  string
	outDir  string
	workers int
}

func newCompileCmd(a *app) *cobra.Command {
	opts := &compileOptions{}
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile devices into reaction networks",
		Long: `Parses devices in their single-line form and compiles each into a
reaction network. Devices come from --device flags and from --file, one per
line. Models are printed in order, or written to --out-dir as <device>.txt
or <device>.fernml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				a.cfg.Workers = opts.workers
			}
			return runCompile(cmd, a, opts)
		},
	}
	cmd.Flags().StringArrayVar(&opts.devices, "device", nil, "device text, repeatable")
	cmd.Flags().StringVar(&opts.file, "file", "", "file of devices, one per line")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "text or fernml")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "write one file per device into this directory")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent compilations (default from GENENET_WORKERS)")
	return cmd
}

// parseDevices reads devices from inline texts followed by a file
func parseDevices(cat *catalog.Catalog, texts []string, file string) ([]*biopart.Device, error) {
	if file != "" {
		lines, err := readLines(file)
		if err != nil {
			return nil, err
		}
		texts = append(texts, lines...)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("no devices given")
	}

	devices := make([]*biopart.Device, 0, len(texts))
	for _, text := range texts {
		d, err := biopart.ParseDevice(text, cat)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

func runCompile(cmd *cobra.Command, a *app, opts *compileOptions) error {
	if opts.format != formatText && opts.format != formatFernML {
		return fmt.Errorf("unknown format %q (want text or fernml)", opts.format)
	}
	cat, err := a.loadCatalog()
	if err != nil {
		return err
	}
	devices, err := parseDevices(cat, opts.devices, opts.file)
	if err != nil {
		return err
	}

	c := network.NewCompiler(network.WithLogger(a.logger), network.WithMetrics(a.metrics))
	models, err := c.CompileAll(cmd.Context(), devices, a.cfg.Workers)
	if err != nil {
		return err
	}

	if opts.outDir == "" {
		for _, m := range models {
			if err := writeModel(cmd.OutOrStdout(), m, opts.format); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", opts.outDir, err)
	}
	ext := ".txt"
	if opts.format == formatFernML {
		ext = ".fernml"
	}
	for _, m := range models {
		path := filepath.Join(opts.outDir, m.Device+ext)
		if err := writeModelFile(path, m, opts.format); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func writeModel(w io.Writer, m *network.Model, format string) error {
	if format == formatFernML {
		return network.WriteFernML(w, m)
	}
	_, err := io.WriteString(w, m.String())
	return err
}

func writeModelFile(path string, m *network.Model, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeModel(f, m, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
