package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pbitheme"
	"github.com/tsawler/pbitheme/pbix"
)

const testLayout = `{
  "sections": [
    {
      "name": "ReportSection1",
      "displayName": "Overview",
      "config": "{}",
      "visualContainers": [
        {"config": "{\"singleVisual\":{\"visualType\":\"card\",\"objects\":{\"labels\":[{\"properties\":{\"color\":{\"solid\":{\"color\":{\"expr\":{\"ThemeDataColor\":{\"ColorId\":2,\"Percent\":0}}}}}}}]},\"vcObjects\":{\"title\":[{\"properties\":{\"show\":{\"expr\":{\"Literal\":{\"Value\":\"true\"}}},\"text\":{\"expr\":{\"Literal\":{\"Value\":\"'Revenue'\"}}}}}]}}}"},
        {"config": "{\"singleVisual\":{\"visualType\":\"tableEx\",\"vcObjects\":{\"title\":[{\"properties\":{\"show\":{\"expr\":{\"Literal\":{\"Value\":\"false\"}}}}}]}}}"}
      ]
    },
    {
      "name": "ReportSection2",
      "displayName": "Detail",
      "config": "{}",
      "visualContainers": [
        {"config": "{\"singleVisual\":{\"visualType\":\"card\"}}"}
      ]
    }
  ]
}`

func createTestPBIX(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "report.pbix")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(pbix.LayoutEntry)
	require.NoError(t, err)
	_, err = w.Write([]byte(testLayout))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

// runCmd runs the command line and returns the exit code, stdout and
// stderr.
func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append(args, "--color", "never"), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCmd(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "pbitheme v"+version+"\n", out)
}

func TestInspect(t *testing.T) {
	path := createTestPBIX(t)

	code, out, _ := runCmd(t, "inspect", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Overview (ReportSection1)")
	assert.Contains(t, out, "card - Revenue")
	assert.Contains(t, out, "color=   #01b8aa")
	assert.Contains(t, out, "[ ]  2  page")

	code, out, _ = runCmd(t, "inspect", "--json", path)
	require.Equal(t, exitOK, code)

	var got inspectOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Pages, 2)
	assert.Equal(t, []string{"card", "tableEx"}, got.VisualTypes)
	assert.Equal(t, "card - Revenue", got.Pages[0].Visuals[0].Label)
	assert.Equal(t, map[string]any{"solid": map[string]any{"color": "#01b8aa"}}, got.Pages[0].Visuals[0].Objects["labels"]["color"])
}

func TestCompile(t *testing.T) {
	path := createTestPBIX(t)
	output := filepath.Join(t.TempDir(), "theme.json")

	code, out, errOut := runCmd(t, "compile", path,
		"--select", "Overview:0",
		"--select", "ReportSection1:1",
		"--wildcard", "Overview:0:title",
		"--exclude", "ReportSection1:1:title",
		"--name", "Sales",
		"--data-colors", "#111111,#222222",
		"-o", output)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, output+"\n", out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Sales", doc["name"])
	assert.Equal(t, []any{"#111111", "#222222"}, doc["dataColors"])

	styles := doc["visualStyles"].(map[string]any)
	assert.Contains(t, styles, "card")
	assert.Contains(t, styles, "tableEx")
	assert.Contains(t, styles, "*")
	assert.Equal(t, map[string]any{"*": map[string]any{}}, styles["tableEx"])
	assert.NotContains(t, string(data), "__selected")
}

func TestCompile_Stdout(t *testing.T) {
	code, out, _ := runCmd(t, "compile", createTestPBIX(t), "--select", "Detail:0", "-o", "-")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "{\n    \"name\": \"My Theme\""), out)
}

func TestCompile_Conflicts(t *testing.T) {
	code, out, errOut := runCmd(t, "compile", createTestPBIX(t),
		"--select", "Overview:0",
		"--select", "Detail:0",
		"-o", "-")
	assert.Equal(t, exitConflict, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "DuplicateVisualType")
	assert.Contains(t, errOut, "card (page Overview, visual 0)")
	assert.Contains(t, errOut, "card (page Detail, visual 0)")
	assert.NotContains(t, errOut, "Error:")

	code, _, errOut = runCmd(t, "compile", createTestPBIX(t),
		"--select", "Overview:0",
		"--select", "Overview:1",
		"--wildcard", "Overview:0:title",
		"--wildcard", "Overview:1:title",
		"-o", "-")
	assert.Equal(t, exitConflict, code)
	assert.Contains(t, errOut, "DuplicateWildcardProperty")
}

func TestCompile_Errors(t *testing.T) {
	path := createTestPBIX(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"wrong extension", []string{"compile", "report.xlsx"}, "InvalidExtension"},
		{"missing file", []string{"compile", filepath.Join(t.TempDir(), "x.pbix")}, "UnreadableArchive"},
		{"bad ref", []string{"compile", path, "--select", "Overview"}, "want page:index"},
		{"bad index", []string{"compile", path, "--select", "Overview:x"}, "not a number"},
		{"unknown page", []string{"compile", path, "--select", "Nowhere:0"}, "no page"},
		{"ineligible object", []string{"compile", path, "--select", "Overview:0", "--exclude", "Overview:0:nothing"}, "unknown object"},
		{"invalid color", []string{"compile", path, "--background", "blue", "-o", "-"}, "background"},
		{"bad color mode", []string{"version", "--color", "sometimes"}, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			assert.Equal(t, exitError, code)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestSelectionInitAndCompile(t *testing.T) {
	path := createTestPBIX(t)
	selPath := filepath.Join(t.TempDir(), "selection.yaml")

	code, _, errOut := runCmd(t, "selection", "init", path, "-o", selPath)
	require.Equal(t, exitOK, code, errOut)

	data, err := os.ReadFile(selPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page: ReportSection1")

	edited := strings.Replace(string(data), "selected: false", "selected: true", 1)
	require.NoError(t, os.WriteFile(selPath, []byte(edited), 0644))

	code, out, errOut := runCmd(t, "compile", path, "--selection", selPath, "-o", "-")
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, `"card"`)

	code, out, _ = runCmd(t, "selection", "init", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "visuals:")
}

func TestPalette(t *testing.T) {
	code, out, _ := runCmd(t, "palette")
	require.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 42)
	assert.Contains(t, lines[2], "#01B8AA")

	code, out, _ = runCmd(t, "palette", "--ramp")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "#41cabf")
}

func TestStrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "legacy.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"name":"x","visualStyles":{"card":{"*":{"labels":[{"__selected":true,"fontSize":12}]}}}}`), 0644))

	code, out, _ := runCmd(t, "strip", in)
	require.Equal(t, exitOK, code)
	assert.NotContains(t, out, "__selected")
	assert.Contains(t, out, `"fontSize": 12`)

	outPath := filepath.Join(dir, "clean.json")
	code, _, _ = runCmd(t, "strip", in, "-o", outPath)
	require.Equal(t, exitOK, code)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pbitheme.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("name: From Config\nbackground: \"#ffffff\"\n"), 0644))

	code, out, errOut := runCmd(t, "compile", createTestPBIX(t), "--config", cfgPath, "--select", "Detail:0", "-o", "-")
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, `"name": "From Config"`)
	assert.Contains(t, out, `"background": "#ffffff"`)

	code, out, _ = runCmd(t, "compile", createTestPBIX(t), "--config", cfgPath, "--name", "From Flag", "-o", "-")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, `"name": "From Flag"`)
}

func TestLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "pbitheme.log")
	output := filepath.Join(t.TempDir(), "theme.json")

	for i := 0; i < 2; i++ {
		code, _, errOut := runCmd(t, "compile", createTestPBIX(t), "--select", "Detail:0",
			"--log-level", "info", "--log-file", logPath, "-o", output)
		require.Equal(t, exitOK, code, errOut)
		assert.NotContains(t, errOut, "wrote theme")
	}

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "wrote theme"))
}

func TestParseRefs(t *testing.T) {
	s := pbitheme.Must(pbitheme.Open(createTestPBIX(t)))

	pageID, index, err := parseVisualRef(s, "Overview:1")
	require.NoError(t, err)
	assert.Equal(t, "ReportSection1", pageID)
	assert.Equal(t, 1, index)

	pageID, index, object, err := parseObjectRef(s, "ReportSection2:0:title")
	require.NoError(t, err)
	assert.Equal(t, "ReportSection2", pageID)
	assert.Equal(t, 0, index)
	assert.Equal(t, "title", object)

	_, _, _, err = parseObjectRef(s, "Overview:0:")
	assert.Error(t, err)
}
