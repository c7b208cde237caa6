package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PANDASANG1231/risk-model-tool/pkg/riskkit/models"
)

const gradesCSV = `grade,count,bad_rate
A,120,0.01
B,80,0.05
C,40,0.12
`

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSheetWriteAndInspect(t *testing.T) {
	dir := t.TempDir()
	data := writeTemp(t, dir, "grades.csv", gradesCSV)
	book := filepath.Join(dir, "report.xlsx")

	execute(t, "sheet", "write", data, "--book", book, "--sheet", "Report", "--anchor", "G1",
		"--index", "--print-area", "--chart", "line", "--x", "grade", "--chart-title", "Bad rate")

	out := execute(t, "inspect", book, "--sheet", "Report")
	var wb models.WorkbookData
	require.NoError(t, json.Unmarshal([]byte(out), &wb))

	s := wb.Sheets["Report"]
	assert.Equal(t, []string{"G1:J4"}, s.TableCandidates)
	require.Len(t, s.Charts, 1)
	assert.Equal(t, "L1", s.Charts[0].Anchor)
	assert.Equal(t, "Bad rate", s.Charts[0].Title)
	require.Len(t, s.PrintAreas, 1)

	areas := filepath.Join(dir, "areas")
	execute(t, "inspect", book, "--print-areas-dir", areas)
	_, err := os.Stat(filepath.Join(areas, "Report_area1.json"))
	assert.NoError(t, err)
}

func TestChartCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeTemp(t, dir, "grades.csv", gradesCSV)

	svg := filepath.Join(dir, "grades.svg")
	execute(t, "chart", data, "--type", "bar", "--x", "grade", "--y", "count", "--out", svg)
	_, err := os.Stat(svg)
	assert.NoError(t, err)

	out := execute(t, "chart", data, "--x", "grade", "--title", "Grades")
	assert.Contains(t, out, `"title":"Grades"`)
	assert.Contains(t, out, `"categories":["A","B","C"]`)

	out = execute(t, "chart", data, "--inline")
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))
}

func TestPreprocessCommands(t *testing.T) {
	dir := t.TempDir()
	data := writeTemp(t, dir, "train.csv", "x,city\n1,a\n,b\n3,\n4,a\n")
	table := filepath.Join(dir, "config.csv")
	ref := filepath.Join(dir, "reference.csv")
	fitted := filepath.Join(dir, "fitted.csv")

	execute(t, "preprocess", "config", data, "-o", table)
	execute(t, "preprocess", "fit", data, "--config-table", table, "--reference", ref,
		"--steps", "MissingImpute", "-o", fitted)
	applied := execute(t, "preprocess", "apply", data, "--reference", ref, "--steps", "MissingImpute")

	want, err := os.ReadFile(fitted)
	require.NoError(t, err)
	assert.Equal(t, string(want), applied)
	assert.Equal(t, "x,city\n1,a\n-1,b\n3,missing\n4,a\n", applied)
}

func TestCorrCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeTemp(t, dir, "vars.csv", "a,b,c\n1,1,2\n2,2,1\n3,3,2\n4,5,1\n5,4,2\n")

	out := execute(t, "corr", data, "--thresh", "0.5")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "variable,a,c", lines[0])
}
