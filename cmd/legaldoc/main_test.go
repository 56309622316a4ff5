package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func testConfig(t *testing.T) string {
	t.Helper()
	for _, name := range []string{
		"PORT", "DATABASE_DRIVER", "DATABASE_URL", "LLM_PROVIDER", "LLM_MODEL", "OLLAMA_BASE_URL",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "CORS_ORIGINS", "LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	configData := fmt.Sprintf("database:\n  driver: sqlite\n  url: %q\n  seed: false\n", filepath.Join(dir, "legaldoc.db"))
	require.NoError(t, os.WriteFile(configPath, []byte(configData), 0644))
	return configPath
}

func runApp(configPath, input string, args ...string) (string, error) {
	out := &bytes.Buffer{}
	app := newApp()
	app.Writer = out
	app.ErrWriter = &bytes.Buffer{}
	app.Reader = strings.NewReader(input)

	err := app.Run(append([]string{"legaldoc", "--config", configPath}, args...))
	return out.String(), err
}

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "error"} {
		assert.NoError(t, setupLogger(level))
	}
	assert.Error(t, setupLogger("verbose"))
}

func TestHistoryFlagDefault(t *testing.T) {
	app := newApp()
	for _, cmd := range app.Commands {
		if cmd.Name != "history" {
			continue
		}
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "limit" {
				assert.Equal(t, 20, f.Value)
				return
			}
		}
	}
	t.Fatal("history --limit flag not found")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runApp(testConfig(t), "", "--log-level", "verbose", "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestSeedQueryHistory(t *testing.T) {
	configPath := testConfig(t)

	out, err := runApp(configPath, "", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 3 documents")

	out, err = runApp(configPath, "", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")

	out, err = runApp(configPath, "", "query", "non-compete", "clause")
	require.NoError(t, err)
	assert.Contains(t, out, "NON-COMPETE")
	assert.Contains(t, out, "Employment Contract")

	out, err = runApp(configPath, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "non-compete clause")
}

func TestInteractiveQuery(t *testing.T) {
	configPath := testConfig(t)

	_, err := runApp(configPath, "", "seed")
	require.NoError(t, err)

	out, err := runApp(configPath, "confidentiality\n\nexit\nnever asked\n", "query")
	require.NoError(t, err)
	assert.Contains(t, out, "CONFIDENTIALITY")

	out, err = runApp(configPath, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "confidentiality")
	assert.NotContains(t, out, "never asked")
}

func TestHistoryEmpty(t *testing.T) {
	out, err := runApp(testConfig(t), "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No queries yet")
}

func TestImportRequiresURL(t *testing.T) {
	_, err := runApp(testConfig(t), "", "import")
	assert.Error(t, err)
}

func TestServeRejectsInvalidPort(t *testing.T) {
	_, err := runApp(testConfig(t), "", "serve", "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}
