package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	buf := bytes.NewBuffer(nil)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append(args, `--config`, filepath.Join(t.TempDir(), `missing.json`)))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestChartCommand(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	out, err := execute(t, `chart`, `alignment-score`, `--width`, `20`)
	require.NoError(t, err)
	assert.Contains(t, out, `model-a`)
	assert.Contains(t, out, `-3.27`)

	_, err = execute(t, `chart`, `nope`)
	assert.ErrorContains(t, err, `unknown dataset`)
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, `check`)
	require.NoError(t, err)
	assert.Contains(t, out, `2 posts, 3 datasets`)

	site := filepath.Join(t.TempDir(), `site.yaml`)
	require.NoError(t, os.WriteFile(site, []byte("datasets:\n  - name: flat\n    kind: horizontal\n    domain: {min: 1, max: 1}\n    rows:\n      - {label: a, values: [1]}\n"), 0644))
	cfgPath := filepath.Join(t.TempDir(), `config.json`)
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{content: "`+filepath.ToSlash(site)+`"}`), 0644))
	buf := bytes.NewBuffer(nil)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{`check`, `--config`, cfgPath})
	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), `no width`)
}
