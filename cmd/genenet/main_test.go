package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-genenet/pkg/catalog"
	"github.com/dd0wney/cluso-genenet/pkg/catalog/catalogtest"
	"github.com/dd0wney/cluso-genenet/pkg/config"
)

const (
	demuxDevice = "|demux[(pm_iim0_0,rbs0,pc_i0m0,t);(pm_iim0_iim1_0,rbs0,pc_reporter0,t);(pm_iim1_i0m0_0,rbs0,pc_reporter1,t)],{es_iim0,es_iim1}|"
	chainDevice = "|notnot[(pm_iim0_0,rbs0,pc_i0m0,t);(pm_i0m0_0,rbs0,pc_i0m1,t);(pm_i0m1_0,rbs0,pc_reporter0,t)],{es_iim0}|"
)

// workspace is a temporary catalog, template directory and settings file
type workspace struct {
	dir       string
	catalog   string
	templates string
	settings  string
}

func newWorkspace(t *testing.T, id string, cat *catalog.Catalog) *workspace {
	t.Helper()
	for _, key := range []string{config.EnvCatalog, config.EnvTemplates, config.EnvSeed,
		config.EnvMaxSolutions, config.EnvWorkers, config.EnvCacheSize, config.EnvLogLevel} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)

	ws := &workspace{
		dir:       dir,
		catalog:   filepath.Join(dir, "catalog"),
		templates: filepath.Join(dir, "templates"),
		settings:  filepath.Join(dir, "settings.yaml"),
	}
	require.NoError(t, catalog.Save(cat, ws.catalog))
	require.NoError(t, os.MkdirAll(ws.templates, 0o755))
	for name, doc := range catalogtest.Templates {
		require.NoError(t, os.WriteFile(filepath.Join(ws.templates, name+".yaml"), []byte(doc), 0o644))
	}
	require.NoError(t, os.WriteFile(ws.settings, []byte(catalogtest.Settings[id]), 0o644))
	return ws
}

// run executes the command line and returns stdout and stderr
func (ws *workspace) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--catalog", ws.catalog, "--templates", ws.templates, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

// TestSolve tests the three search modes
func TestSolve(t *testing.T) {
	ws := newWorkspace(t, "Demultiplexer0", catalogtest.Demultiplexer1(t))

	out, _, err := ws.run(t, "solve", "--settings", ws.settings, "--mode", "all")
	require.NoError(t, err)
	assert.Len(t, lines(out), 10)

	out, _, err = ws.run(t, "solve", "--settings", ws.settings, "--mode", "all", "--max", "3")
	require.NoError(t, err)
	assert.Len(t, lines(out), 3)

	out, _, err = ws.run(t, "solve", "--settings", ws.settings)
	require.NoError(t, err)
	assert.Equal(t, []string{demuxDevice}, lines(out))

	out, _, err = ws.run(t, "solve", "--settings", ws.settings, "--mode", "random", "--seed", "7")
	require.NoError(t, err)
	assert.Len(t, lines(out), 1)

	_, _, err = ws.run(t, "solve", "--settings", ws.settings, "--mode", "fastest")
	assert.ErrorContains(t, err, "unknown mode")
}

// TestMetricsFile tests exporting the run's metrics after a command
func TestMetricsFile(t *testing.T) {
	ws := newWorkspace(t, "Demultiplexer0", catalogtest.Demultiplexer0(t))
	path := filepath.Join(ws.dir, "genenet.prom")

	_, _, err := ws.run(t, "--metrics-file", path, "solve", "--settings", ws.settings)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `genenet_wiring_searches_total{mode="first",outcome="solved"} 1`)
	assert.Contains(t, string(data), "genenet_catalog_cache_lookups_total")

	compiled := filepath.Join(ws.dir, "compile.prom")
	_, _, err = ws.run(t, "compile", "--device", demuxDevice, "--metrics-file", compiled)
	require.NoError(t, err)
	data, err = os.ReadFile(compiled)
	require.NoError(t, err)
	assert.Contains(t, string(data), "genenet_network_models_total 1")

	_, _, err = ws.run(t, "--metrics-file", filepath.Join(ws.dir, "missing", "x.prom"), "template", "--id", "NotGate")
	assert.ErrorContains(t, err, "write metrics")
}

// TestSolve_OutFile tests writing devices to a file
func TestSolve_OutFile(t *testing.T) {
	ws := newWorkspace(t, "NotChain", catalogtest.NotChain(t))
	path := filepath.Join(ws.dir, "devices.txt")

	_, _, err := ws.run(t, "solve", "--settings", ws.settings, "--mode", "all", "--out", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, lines(string(data)), 16)
	assert.Equal(t, chainDevice, lines(string(data))[0])

	// compile the file back
	out, _, err := ws.run(t, "compile", "--file", path, "--workers", "3")
	require.NoError(t, err)
	assert.Equal(t, 16, strings.Count(out, "Model: ("))
}

// TestSolve_Unsatisfiable tests that no device is a normal outcome
func TestSolve_Unsatisfiable(t *testing.T) {
	ws := newWorkspace(t, "Demultiplexer0", catalogtest.Demultiplexer(t, 1, 3, 0))

	out, errOut, err := ws.run(t, "solve", "--settings", ws.settings, "--mode", "all")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "no device found")
}

// TestCompile tests text and FernML output
func TestCompile(t *testing.T) {
	ws := newWorkspace(t, "Demultiplexer0", catalogtest.Demultiplexer0(t))

	out, _, err := ws.run(t, "compile", "--device", demuxDevice)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Model: ("))
	assert.Contains(t, out, "pg2_gene_11 (0)")

	out, _, err = ws.run(t, "compile", "--device", demuxDevice, "--format", "fernml")
	require.NoError(t, err)
	assert.Contains(t, out, `<fernml version="1.0">`)

	dir := filepath.Join(ws.dir, "models")
	out, _, err = ws.run(t, "compile", "--device", demuxDevice, "--format", "fernml", "--out-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "demux.fernml"), strings.TrimSpace(out))
	_, err = os.Stat(filepath.Join(dir, "demux.fernml"))
	assert.NoError(t, err)

	_, _, err = ws.run(t, "compile")
	assert.ErrorContains(t, err, "no devices given")
	_, _, err = ws.run(t, "compile", "--device", demuxDevice, "--format", "sbml")
	assert.ErrorContains(t, err, "unknown format")
	_, _, err = ws.run(t, "compile", "--device", "|demux[(pm_nope,rbs0,pc_i0m0,t)],{}|")
	assert.Error(t, err)
}

// TestReport tests the report and device check
func TestReport(t *testing.T) {
	ws := newWorkspace(t, "Demultiplexer0", catalogtest.Demultiplexer0(t))

	out, _, err := ws.run(t, "report", "--device", demuxDevice)
	require.NoError(t, err)
	assert.Contains(t, out, "*** Report ***")
	assert.Contains(t, out, "Warning IncompatibleProtein")

	_, _, err = ws.run(t, "report", "--device", "|x[(pm_iim0_0,rbs0,pc_i0m0,t);(pm_iim0_iim1_0,rbs0,pc_i0m0,t)],{}|")
	assert.ErrorContains(t, err, "failed 1 check(s)")
}

// TestVariations tests listing variations and a mutation
func TestVariations(t *testing.T) {
	ws := newWorkspace(t, "NotChain", catalogtest.NotChain(t))

	out, _, err := ws.run(t, "variations", "--settings", ws.settings, "--device", chainDevice)
	require.NoError(t, err)
	assert.Len(t, lines(out), 3)

	for _, kind := range []string{"rbs", "promoter", "tf"} {
		_, _, err = ws.run(t, "variations", "--settings", ws.settings, "--device", chainDevice, "--mutate", kind)
		assert.NoError(t, err, kind)
	}
	_, _, err = ws.run(t, "variations", "--settings", ws.settings, "--device", chainDevice, "--mutate", "all")
	assert.ErrorContains(t, err, "unknown mutation")
}

// TestTemplate tests the template dump
func TestTemplate(t *testing.T) {
	ws := newWorkspace(t, "NotChain", catalogtest.NotChain(t))

	out, _, err := ws.run(t, "template", "--id", "NotChain")
	require.NoError(t, err)
	assert.Contains(t, out, "n0.v")
	assert.Contains(t, out, "feedback loops: 0")

	_, _, err = ws.run(t, "template", "--id", "Missing")
	assert.Error(t, err)
}

// TestCatalog tests snapshot conversion and reading it back
func TestCatalog(t *testing.T) {
	ws := newWorkspace(t, "Demultiplexer0", catalogtest.Demultiplexer0(t))
	snap := filepath.Join(ws.dir, "parts.snap")

	_, _, err := ws.run(t, "catalog", "snapshot", "--out", snap)
	require.NoError(t, err)

	var stdout bytes.Buffer
	cmd := newRootCmd(&stdout, &bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", snap, "catalog", "info"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "promoter")
	assert.Contains(t, stdout.String(), "libraries")

	_, _, err = ws.run(t, "--catalog", filepath.Join(ws.dir, "missing"), "catalog", "info")
	assert.Error(t, err)
}

// TestConfigErrors tests that invalid settings stop every command
func TestConfigErrors(t *testing.T) {
	ws := newWorkspace(t, "Demultiplexer0", catalogtest.Demultiplexer0(t))
	t.Setenv(config.EnvWorkers, "-2")

	_, _, err := ws.run(t, "catalog", "info")
	assert.ErrorContains(t, err, "Config.Workers")
}
