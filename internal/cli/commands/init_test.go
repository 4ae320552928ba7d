package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapcube/internal/project"
	"github.com/leapstack-labs/leapcube/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:    "init empty directory",
			args:    []string{},
			wantErr: false,
			wantFiles: []string{
				"leapcube.yaml",
				".gitignore",
				"cubes/orders.yaml",
				"views/sales.yaml",
			},
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "leapcube.yaml"), []byte("existing"), 0600)
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing alternate config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "leapcube.yml"), []byte("existing"), 0600)
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "leapcube.yaml"), []byte("existing"), 0600)
			},
			args:    []string{"--force"},
			wantErr: false,
			wantFiles: []string{
				"leapcube.yaml",
				"cubes",
			},
		},
		{
			name:    "init example",
			args:    []string{"--example"},
			wantErr: false,
			wantFiles: []string{
				"leapcube.yaml",
				"cubes/orders.yaml",
				"cubes/customers.yaml",
				"views/sales.yaml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(append([]string{tmpDir}, tt.args...))

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				path := filepath.Join(tmpDir, filepath.FromSlash(f))
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "expected file/dir %q to exist", f)
			}
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
	assert.NotNil(t, cmd.Flags().Lookup("example"), "--example flag should exist")
}

func TestInitTemplatesValidate(t *testing.T) {
	for _, template := range []string{"minimal", "example"} {
		t.Run(template, func(t *testing.T) {
			dir := t.TempDir()
			files, err := copyTemplate(template, dir, false)
			require.NoError(t, err)
			require.NotEmpty(t, files)

			layout, _, err := project.Open(dir)
			require.NoError(t, err)

			result, err := validate.New(validate.Config{}).ValidateProject(t.Context(), layout)
			require.NoError(t, err)
			assert.True(t, result.Valid, "errors: %v", result.Errors)
			assert.Empty(t, result.MissingDescriptions)
			assert.Empty(t, result.CubesMissingDataSource)
			assert.Empty(t, result.SuspectPrimaryKeys)
		})
	}
}

func TestCopyTemplate_SkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cubes"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cubes", "orders.yaml"), []byte("mine"), 0600))

	files, err := copyTemplate("minimal", dir, false)
	require.NoError(t, err)

	assert.Contains(t, files, scaffoldedFile{Path: "cubes/orders.yaml", Skipped: true})
	assert.Contains(t, files, scaffoldedFile{Path: ".gitignore"})

	content, err := os.ReadFile(filepath.Join(dir, "cubes", "orders.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(content))

	files, err = copyTemplate("minimal", dir, true)
	require.NoError(t, err)
	assert.Contains(t, files, scaffoldedFile{Path: "cubes/orders.yaml"})
}

func TestGroupTemplateFiles(t *testing.T) {
	groups := groupTemplateFiles([]scaffoldedFile{
		{Path: "leapcube.yaml"},
		{Path: "cubes/orders.yaml"},
		{Path: "views/sales.yaml", Skipped: true},
		{Path: ".gitignore"},
		{Path: "cubes.yaml"},
	})

	assert.Equal(t, []scaffoldedFile{{Path: "leapcube.yaml"}, {Path: ".gitignore"}, {Path: "cubes.yaml"}}, groups["config"])
	assert.Equal(t, []scaffoldedFile{{Path: "cubes/orders.yaml"}}, groups["cubes"])
	assert.Equal(t, []scaffoldedFile{{Path: "views/sales.yaml", Skipped: true}}, groups["views"])
}
