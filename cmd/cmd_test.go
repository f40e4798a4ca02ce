// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofill/geofill-cli/internal/observability"
)

const quietConfig = `
logger:
  level: error
injector:
  address_delay: 10ms
network:
  rate_limit: 0
`

// writeConfig writes content to a config file in a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// executeCommand runs a fresh command tree with the quiet config unless the
// args name their own.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	hasConfig := false
	for _, a := range args {
		if a == "--config" || a == "-c" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "--config", writeConfig(t, quietConfig))
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "geofill "+Version)

	out, err = executeCommand(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "locale-consistent")
	for _, sub := range []string{"generate", "regenerate", "countries", "scan", "fill", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestConfigLoading(t *testing.T) {
	t.Run("InvalidBackend", func(t *testing.T) {
		path := writeConfig(t, "browser:\n  backend: lynx\n")
		_, err := executeCommand(t, "", "countries", "--config", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "browser.backend")
	})

	t.Run("MissingExplicitFile", func(t *testing.T) {
		_, err := executeCommand(t, "", "countries", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("EnvOverride", func(t *testing.T) {
		t.Setenv("GEOFILL_OUTPUT_FORMAT", "yaml")
		out, err := executeCommand(t, "", "countries")
		require.NoError(t, err)
		assert.Contains(t, out, "- country:")
	})

	t.Run("FlagBeatsEnv", func(t *testing.T) {
		t.Setenv("GEOFILL_OUTPUT_FORMAT", "yaml")
		out, err := executeCommand(t, "", "countries", "-f", "json")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["), out)
	})

	t.Run("UnknownFormatFlag", func(t *testing.T) {
		_, err := executeCommand(t, "", "countries", "-f", "csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output.format")
	})

	t.Run("GeocodeWithoutKey", func(t *testing.T) {
		t.Setenv("GEOFILL_GEOAPIFY_KEY", "")
		path := writeConfig(t, "geocode:\n  enabled: true\n")
		_, err := executeCommand(t, "", "generate", "--config", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEOFILL_GEOAPIFY_KEY")
	})
}
