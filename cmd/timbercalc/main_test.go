package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(project.EnvConfigPath, filepath.Join(dir, "config.json"))
	t.Setenv(project.EnvOutputDir, "")
	t.Setenv(project.EnvCompany, "")
	return dir
}

func TestLandingCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "landing", "--env", "none.env", "--cost", "1000", "--tax", "18", "--freight", "100", "--top", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "1364.78")
	assert.NotContains(t, out, "Per unit")
}

func TestLandingCommandRejectsNegative(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "landing", "--env", "none.env", "--cost", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cost cannot be negative")
}

func TestCalcCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "l=10 g=40 q=1 r=250\n/totals\n/quit\n", "calc", "round-log", "--env", "none.env")
	require.NoError(t, err)
	assert.Contains(t, out, "Round Log (CFT)")
	assert.Contains(t, out, "Added #1")
	assert.Contains(t, out, "amount 1736.11")
}

func TestCalcCommandUnknownModule(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "calc", "plywood", "--env", "none.env")
	assert.Error(t, err)
}

func TestImportCommandSavesDocument(t *testing.T) {
	dir := isolate(t)
	outDir := filepath.Join(dir, "out")
	t.Setenv(project.EnvOutputDir, outDir)

	csvPath := filepath.Join(dir, "stock.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Size,Grade,Length,Qty,Rate\n2x1,1st Grade,12,3,5\n1x1,,10,4,\n"), 0644))

	out, err := run(t, "", "import", "beading", csvPath, "--customer", "Sharma Traders", "--format", "xlsx", "--env", "none.env")
	require.NoError(t, err)
	assert.Contains(t, out, "Beading/Patti for Sharma Traders: 2 entries")
	assert.FileExists(t, filepath.Join(outDir, "Sharma_Traders.xlsx"))

	cfg, err := project.LoadAppConfig(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(outDir, "Sharma_Traders.xlsx")}, cfg.RecentExports)
}

func TestConfigSetAndShow(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, "", "config", "set", "company", "Acme Timber", "--env", "none.env")
	require.NoError(t, err)
	_, err = run(t, "", "config", "set", "grades", "Export, 1st Grade", "--env", "none.env")
	require.NoError(t, err)

	cfg, err := project.LoadAppConfig(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "Acme Timber", cfg.CompanyName)
	assert.Equal(t, []string{"Export", "1st Grade"}, cfg.GradePriority)

	out, err := run(t, "", "config", "show", "--env", "none.env")
	require.NoError(t, err)
	assert.Contains(t, out, `"company_name": "Acme Timber"`)
}

func TestApplySettingErrors(t *testing.T) {
	cfg := model.DefaultAppConfig()
	assert.Error(t, applySetting(&cfg, "tax", "-5"))
	assert.Error(t, applySetting(&cfg, "format", "docx"))
	assert.Error(t, applySetting(&cfg, "colour", "blue"))

	require.NoError(t, applySetting(&cfg, "format", "excel"))
	assert.Equal(t, "xlsx", cfg.ExportFormat)
}
