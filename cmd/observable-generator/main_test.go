package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"observable-generator/internal/config"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = execute(context.Background(), args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run(t, "version")

	assert.Equal(t, 0, code)
	assert.Equal(t, "observable-generator "+version+"\n", stdout)
}

func TestCheck_ExamplesUpToDate(t *testing.T) {
	for _, example := range []string{"basic", "embedded"} {
		t.Run(example, func(t *testing.T) {
			dir := filepath.Join("..", "..", "examples", example)

			code, stdout, stderr := run(t, "check", "--no-color", "--dir", dir, ".")

			assert.Equal(t, 0, code, "stderr: %s", stderr)
			assert.Contains(t, stdout, "up to date")
			assert.NotContains(t, stdout, "outdated")
			assert.NotContains(t, stdout, "stale")
		})
	}
}

func TestCheck_VerboseShowsSkippedFields(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "basic")

	code, _, stderr := run(t, "check", "--no-color", "--verbose", "--dir", dir, ".")

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "OBS200")
	assert.Contains(t, stderr, "field observable-generator/examples/basic.Person.id skipped")
}

func TestList(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "embedded")

	code, stdout, stderr := run(t, "list", "--no-color", "--dir", dir, ".")

	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Account")
	assert.Contains(t, stdout, "Settings")
	assert.Contains(t, stdout, "changed:PropertyChanged")
	assert.Contains(t, stdout, "Theme (_theme)")
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("version: \"2\"\n"), 0o644))

	code, _, stderr := run(t, "check", "--config", path, "--dir", filepath.Join("..", "..", "examples", "basic"), ".")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unsupported config version")
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.FileSuffix = "_props.go"
	cfg.Workers = 2
	require.NoError(t, config.WriteFile(cfg, filepath.Join(dir, config.FileName)))

	v := viper.New()
	root := newRootCmd(v)
	require.NoError(t, root.PersistentFlags().Parse([]string{"--dir", dir, "--workers", "4", "--require-prefix=false"}))

	loaded, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "_props.go", loaded.FileSuffix)
	assert.Equal(t, 4, loaded.Workers)
	require.NotNil(t, loaded.RequirePrefix)
	assert.False(t, *loaded.RequirePrefix)
	assert.True(t, *loaded.ReportSkippedFields)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("OBSERVABLE_GENERATOR_SUFFIX", "_env.go")

	v := viper.New()
	root := newRootCmd(v)
	require.NoError(t, root.PersistentFlags().Parse([]string{"--dir", t.TempDir()}))

	loaded, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "_env.go", loaded.FileSuffix)
}

func TestWarningsAsErrors(t *testing.T) {
	dir := filepath.Join("testdata", "conflict")

	code, _, stderr := run(t, "check", "--no-color", "--dir", dir, ".")
	assert.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stderr, "warning OBS201")

	code, stdout, stderr := run(t, "check", "--no-color", "--warnings-as-errors", "--dir", dir, ".")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error OBS201")
	assert.Contains(t, stderr, "1 errors reported, no files changed")
	assert.Empty(t, stdout)
}

func TestCodes(t *testing.T) {
	code, stdout, _ := run(t, "codes")

	assert.Equal(t, 0, code)
	for _, c := range []string{"OBS100", "OBS101", "OBS102", "OBS200", "OBS201"} {
		assert.Contains(t, stdout, c)
	}
}
