package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/earlylint/internal/cli/config"
	"github.com/leapstack-labs/earlylint/pkg/lint"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		setupDir func(t *testing.T, dir string) // setup before running
		args     []string
		wantErr  bool
	}{
		{
			name: "init empty directory",
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, ".earlylint.yaml"), []byte("existing"), 0o600)
			},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, ".earlylint.yaml"), []byte("existing"), 0o600)
			},
			args: []string{"--force"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setupDir != nil {
				tt.setupDir(t, dir)
			}

			out, _, err := executeCommand(t, nil, NewInitCommand(), append(tt.args, dir)...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "already exists")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Created ")
			assert.FileExists(t, filepath.Join(dir, ".earlylint.yaml"))
		})
	}
}

func TestInitCommand_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "crate")

	_, _, err := executeCommand(t, nil, NewInitCommand(), dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".earlylint.yaml"))
}

func TestInitCommand_ConfigLoads(t *testing.T) {
	dir := t.TempDir()
	_, _, err := executeCommand(t, nil, NewInitCommand(), dir)
	require.NoError(t, err)

	cfg, err := config.LoadFrom(dir, "", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".earlylint.yaml"), cfg.ConfigFile)
	assert.Equal(t, config.DefaultSeverity, cfg.Severity)
	assert.Equal(t, config.DefaultApplicability, cfg.Fix.Applicability)
	assert.Empty(t, cfg.Lint.Disabled)
}

func TestRenderConfig(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, renderConfig(&sb))
	out := sb.String()

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc), out)
	assert.Equal(t, "hint", doc["severity"])

	for _, ri := range lint.AllRules() {
		assert.Contains(t, out, "#   "+ri.ID+":", "every rule is listed")
	}
	assert.Contains(t, out, "#   builtin-type-shadow:\n  #     extra_types: ...")
}
