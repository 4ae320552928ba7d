package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapcube/internal/cli/testutil"
	"github.com/leapstack-labs/leapcube/pkg/advisory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Text(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	useProject(t, dir, "text")

	out, errOut, err := run(t, NewValidateCommand())
	require.NoError(t, err)
	assert.Empty(t, errOut)

	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "✓ Validation passed.")
	assert.Contains(t, out, "Cubes  (2): customers, orders")
	assert.Contains(t, out, "Views  (1): sales")
	assert.Contains(t, out, "⚠ 1 cube(s) missing data_source")
	assert.Contains(t, out, "  customers")
}

func TestValidate_Markdown(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	useProject(t, dir, "markdown")

	out, _, err := run(t, NewValidateCommand())
	require.NoError(t, err)

	assert.Contains(t, out, "# Validation")
	assert.Contains(t, out, "- **Status**: passed")
	assert.Contains(t, out, "- **Cubes**: 2")
	assert.Contains(t, out, "## Cubes Missing data_source")
	assert.Contains(t, out, "- customers")
}

func TestValidate_MarkdownFailure(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.WriteFile(t, dir, filepath.Join("cubes", "broken.yaml"), "cubes:\n  - name: broken\n")
	testutil.WriteFile(t, dir, filepath.Join("cubes", "twice.yaml"), "cubes: [{name: a, sql: x}]\n---\ncubes: [{name: b, sql: y}]\n")
	useProject(t, dir, "markdown")

	out, _, err := run(t, NewValidateCommand())
	require.ErrorIs(t, err, ErrValidationFailed)

	assert.Contains(t, out, "- **Status**: failed")
	assert.Contains(t, out, "- **Errors**: 2")
	assert.Contains(t, out, "- **parse**: 1")
	assert.Contains(t, out, "- **schema**: 1")
	assert.NotContains(t, out, "- **duplicate_name**")
	assert.Contains(t, out, "cubes/twice.yaml: YAML parse error — ")
}

func TestValidate_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	useProject(t, dir, "")

	out, _, err := run(t, NewValidateCommand(), "--format", "json")
	require.NoError(t, err)

	var result struct {
		Valid                  bool     `json:"valid"`
		Errors                 []string `json:"errors"`
		Cubes                  []string `json:"cubes"`
		Views                  []string `json:"views"`
		CubesMissingDataSource []string `json:"cubesMissingDataSource"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"customers", "orders"}, result.Cubes)
	assert.Equal(t, []string{"sales"}, result.Views)
	assert.Equal(t, []string{"customers"}, result.CubesMissingDataSource)
}

func TestValidate_Failure(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.WriteFile(t, dir, filepath.Join("cubes", "broken.yaml"), "cubes:\n  - name: broken\n")
	useProject(t, dir, "text")

	out, _, err := run(t, NewValidateCommand())
	require.ErrorIs(t, err, ErrValidationFailed)

	assert.Contains(t, out, "Validation failed:")
	assert.Contains(t, out, "  • cubes/broken.yaml: cubes.0 (broken)")
	assert.NotContains(t, out, "Validation passed.")
}

func TestValidate_EmptyProject(t *testing.T) {
	dir := t.TempDir()
	useProject(t, dir, "text")

	out, errOut, err := run(t, NewValidateCommand())
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No cube or view files found in cubes/ or views/.")
}

func TestValidate_DirectoryArgument(t *testing.T) {
	other := testutil.SetupTestProject(t)
	testutil.WriteFile(t, other, "leapcube.yaml", "cubes_dir: cubes\nviews_dir: views\nadvisories:\n  disabled: [AD02]\n")

	// The current project is empty; the argument wins.
	useProject(t, t.TempDir(), "json")

	out, _, err := run(t, NewValidateCommand(), other)
	require.NoError(t, err)

	var result struct {
		Valid                  bool     `json:"valid"`
		Cubes                  []string `json:"cubes"`
		CubesMissingDataSource []string `json:"cubesMissingDataSource"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)
	assert.Len(t, result.Cubes, 2)
	assert.Empty(t, result.CubesMissingDataSource, "AD02 is disabled by the directory's config")
}

func TestGroupMissingDescriptions(t *testing.T) {
	parents, byParent := groupMissingDescriptions([]advisory.MissingDescription{
		{Parent: "orders", Type: advisory.EntityCube, Name: "orders"},
		{Parent: "orders", Type: advisory.EntityMeasure, Name: "count"},
		{Parent: "sales", Type: advisory.EntityView, Name: "sales"},
		{Parent: "orders", Type: advisory.EntityDimension, Name: "status"},
	})

	assert.Equal(t, []string{"orders", "sales"}, parents)
	assert.Equal(t, []string{"(cube)", "count", "status"}, byParent["orders"])
	assert.Equal(t, []string{"(view)"}, byParent["sales"])
}

func TestIsConfigFile(t *testing.T) {
	assert.True(t, isConfigFile("/p/leapcube.yaml"))
	assert.False(t, isConfigFile("/p/cubes/orders.yaml"))
}

func TestRelativeNames(t *testing.T) {
	root := filepath.FromSlash("/p")
	got := relativeNames(root, []string{
		filepath.FromSlash("/p/cubes/orders.yaml"),
		filepath.FromSlash("/p/views/sales.yml"),
	})
	assert.Equal(t, "cubes/orders.yaml, views/sales.yml", got)
}
