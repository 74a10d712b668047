package maincmd_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/mna/ilex/internal/filetest"
	"github.com/mna/ilex/internal/maincmd"
	"github.com/mna/ilex/lang/token"
)

var testUpdateRunTests = flag.Bool("test.update-run-tests", false, "If set, replace expected run test results with actual results.")

func TestRunFile(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".ilex") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			_ = maincmd.RunFile(stdio, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateRunTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateRunTests)
		})
	}
}

func TestRunFileMissing(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	err := maincmd.RunFile(stdio, filepath.Join("testdata", "in", "does-not-exist.ilex"))
	require.Error(t, err)
	require.NotEmpty(t, ebuf.String())
}

func TestAnalyseFileReportsUndefinedName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.ilex")
	require.NoError(t, writeFile(path, "pr nope;\n"))

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	err := maincmd.AnalyseFile(stdio, path)
	require.Error(t, err)
	require.Empty(t, buf.String())
	require.NotEmpty(t, ebuf.String())
}

func TestParseFilePrintsTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.ilex")
	require.NoError(t, writeFile(path, "var a: int = 1;\n"))

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	require.NoError(t, maincmd.ParseFile(stdio, path))
	require.Empty(t, ebuf.String())
	require.Contains(t, buf.String(), "VarDecl a")
}

func TestTokenizeFilePrintsTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.ilex")
	require.NoError(t, writeFile(path, "var a = 1;\n"))

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	require.NoError(t, maincmd.TokenizeFile(stdio, token.PosLong, path))
	require.Empty(t, ebuf.String())
	require.Contains(t, buf.String(), "var")
	require.Contains(t, buf.String(), "identifier")
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
