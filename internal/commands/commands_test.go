package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bankview/bankview/internal/commands"
	"github.com/bankview/bankview/internal/config"
)

// project is a temporary working directory with a config file and a data
// directory seeded from testdata.
type project struct {
	dir     string
	dataDir string
	cfgPath string
}

func newProject(t *testing.T, edit func(*config.Config)) *project {
	t.Helper()
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	p := &project{
		dir:     dir,
		dataDir: filepath.Join(dir, "data"),
		cfgPath: filepath.Join(dir, config.FileName),
	}
	require.NoError(t, os.MkdirAll(p.dataDir, 0o755))
	for _, name := range []string{"operations.json", "transactions.csv"} {
		data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(p.dataDir, name), data, 0o644))
	}

	cfg := config.Default()
	cfg.Data.Dir = p.dataDir
	cfg.Log.Level = "info"
	if edit != nil {
		edit(cfg)
	}
	require.NoError(t, config.Save(p.cfgPath, cfg))
	return p
}

// run executes the command tree in-process and returns stdout and stderr.
func (p *project) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return runBankview(t, stdin, append([]string{"--config", p.cfgPath}, args...)...)
}

func runBankview(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
