package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{args[0], "--no-color", "--log-level=warn"}, args[1:]...))

	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_Minimum(t *testing.T) {
	out, err := runCLI(t, "minimum", "--potential", "lj")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"r_min", "phi_min"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1.122462048", "-1"}, strings.Fields(lines[1]))

	t.Logf("✓ minimum:\n%s", out)
}

func TestCLI_TableYAML(t *testing.T) {
	out, err := runCLI(t, "table",
		"--potential", "sw", "--param", "lam=1.5",
		"--beta", "0.5,1", "--props", "sig,lam", "--output", "yaml")
	require.NoError(t, err)

	var doc tableDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))

	assert.Equal(t, []string{"beta", "sig", "lam"}, doc.Columns)
	require.Len(t, doc.Rows, 2)
	for i, beta := range []float64{0.5, 1} {
		assert.Equal(t, beta, doc.Rows[i][0])
		assert.InDelta(t, 1.0, doc.Rows[i][1], 1e-12)
		assert.InDelta(t, 1.5, doc.Rows[i][2], 1e-12)
	}

	t.Logf("✓ table yaml:\n%s", out)
}

func TestCLI_TableTSV(t *testing.T) {
	out, err := runCLI(t, "table", "--potential", "lj", "--beta", "1", "--key-format", "nf_%s", "-w", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"beta", "nf_B2", "nf_sig", "nf_eps", "nf_lam"}, strings.Fields(lines[0]))
	assert.Len(t, strings.Fields(lines[1]), 5)
}

func TestCLI_B2(t *testing.T) {
	out, err := runCLI(t, "b2", "--potential", "hs", "--param", "sig=1", "--beta", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	fields := strings.Fields(lines[1])
	require.Len(t, fields, 4)
	assert.Equal(t, "2.094395102", fields[1])
	assert.Equal(t, "0", fields[3])
}

func TestCLI_ConfigFileWithFlagOverride(t *testing.T) {
	path := writeConfig(t, "potential:\n  name: lj\n  lfs: true\n  rcut: 2.5\nbetas: [1.0]\n")

	out, err := runCLI(t, "minimum", "-c", path, "--potential", "lj", "--bounds", "0.9,2.0")
	require.NoError(t, err)

	fields := strings.Fields(strings.Split(strings.TrimSpace(out), "\n")[1])
	require.Len(t, fields, 2)
	assert.NotEqual(t, "-1", fields[1], "the force shift changes the well depth")
}

func TestCLI_Errors(t *testing.T) {
	_, err := runCLI(t, "table", "--potential", "morse")
	assert.Error(t, err)

	_, err = runCLI(t, "table", "--potential", "lj", "--cut")
	assert.Error(t, err)

	_, err = runCLI(t, "minimum", "--potential", "hs")
	assert.Error(t, err)

	_, err = runCLI(t, "minimum", "--log-level", "loud")
	assert.Error(t, err)
}
