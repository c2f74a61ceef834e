package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv isolates HOME and returns a tree to search and a config path
func testEnv(t *testing.T) (root, cfgPath string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	root = t.TempDir()
	for _, p := range []string{"report.txt", "docs/Report-2024.pdf", "docs/notes.md", "reports/"} {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(p), 0644))
	}
	return root, filepath.Join(home, "missing-config.yaml")
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScanPrintsMatchesInOrder(t *testing.T) {
	root, cfg := testEnv(t)

	out, err := execute(t, "", "scan", "REPORT", "--config", cfg, "--volume", root)
	require.NoError(t, err)

	first := strings.Index(out, filepath.Join(root, "report.txt"))
	second := strings.Index(out, filepath.Join(root, "docs", "Report-2024.pdf"))
	require.GreaterOrEqual(t, first, 0, out)
	require.Greater(t, second, first, out)
	assert.Contains(t, out, "2 match(es)")
	assert.NotContains(t, out, "notes.md")
}

func TestScanFolders(t *testing.T) {
	root, cfg := testEnv(t)

	out, err := execute(t, "", "scan", "report", "--kind", "folder", "--sizes", "--config", cfg, "--volume", root)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "reports"))
	assert.Contains(t, out, "1 match(es)")
	assert.Contains(t, out, "Sizes")
}

func TestScanSkip(t *testing.T) {
	root, cfg := testEnv(t)

	out, err := execute(t, "", "scan", "report", "--config", cfg, "--volume", root, "--skip", filepath.Join(root, "docs"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 match(es)")
	assert.NotContains(t, out, "Report-2024.pdf")
}

func TestScanUnknownVolume(t *testing.T) {
	_, cfg := testEnv(t)

	_, err := execute(t, "", "scan", "x", "--config", cfg, "--volume", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "unknown volume")
}

func TestScanDeleteConfirmed(t *testing.T) {
	root, cfg := testEnv(t)

	out, err := execute(t, "1\ny\n", "scan", "report", "--delete", "--config", cfg, "--volume", root)
	require.NoError(t, err)
	assert.Contains(t, out, "File deleted successfully.")
	assert.NoFileExists(t, filepath.Join(root, "report.txt"))
	assert.FileExists(t, filepath.Join(root, "docs", "Report-2024.pdf"))
}

func TestScanDeleteDeclined(t *testing.T) {
	root, cfg := testEnv(t)

	out, err := execute(t, "2\nn\n", "scan", "report", "--delete", "--config", cfg, "--volume", root)
	require.NoError(t, err)
	assert.Contains(t, out, "File not deleted.")
	assert.FileExists(t, filepath.Join(root, "docs", "Report-2024.pdf"))
}

func TestScanDeleteOutOfRange(t *testing.T) {
	root, cfg := testEnv(t)

	out, err := execute(t, "3\n", "scan", "report", "--delete", "--config", cfg, "--volume", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid selection.")
	assert.FileExists(t, filepath.Join(root, "report.txt"))
	assert.FileExists(t, filepath.Join(root, "docs", "Report-2024.pdf"))
}

func TestSaveThenDeleteFromReport(t *testing.T) {
	root, cfg := testEnv(t)

	out, err := execute(t, "", "scan", "report", "--save", "--config", cfg, "--volume", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved report")

	out, err = execute(t, "", "delete", "--report", "latest", "--index", "2", "--yes", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "File deleted successfully.")
	assert.FileExists(t, filepath.Join(root, "report.txt"))
	assert.NoFileExists(t, filepath.Join(root, "docs", "Report-2024.pdf"))

	// A second save shows what changed
	out, err = execute(t, "", "scan", "report", "--save", "--config", cfg, "--volume", root)
	require.NoError(t, err)
	assert.Contains(t, out, "0 new, 1 gone")
}

func TestDeleteFromReportOutOfRange(t *testing.T) {
	root, cfg := testEnv(t)

	_, err := execute(t, "", "scan", "report", "--save", "--config", cfg, "--volume", root)
	require.NoError(t, err)

	_, err = execute(t, "", "delete", "--report", "latest", "--index", "0", "--yes", "--config", cfg)
	assert.Error(t, err)
	assert.FileExists(t, filepath.Join(root, "report.txt"))
}

func TestDeletePath(t *testing.T) {
	root, cfg := testEnv(t)
	target := filepath.Join(root, "docs", "notes.md")

	out, err := execute(t, "n\n", "delete", `"`+target+`"`, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "File found: "+target)
	assert.Contains(t, out, "File not deleted.")
	assert.FileExists(t, target)

	out, err = execute(t, "y\n", "delete", target, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "File deleted successfully.")
	assert.NoFileExists(t, target)
}

func TestDeletePathRejectsDirectory(t *testing.T) {
	root, cfg := testEnv(t)

	_, err := execute(t, "y\n", "delete", filepath.Join(root, "docs"), "--config", cfg)
	assert.ErrorContains(t, err, "file not found or invalid path")
	assert.DirExists(t, filepath.Join(root, "docs"))
}

func TestDeleteNeedsTarget(t *testing.T) {
	_, cfg := testEnv(t)
	_, err := execute(t, "", "delete", "--config", cfg)
	assert.Error(t, err)
}

func TestMenuSearchAndExit(t *testing.T) {
	root, cfg := testEnv(t)

	input := strings.Join([]string{"1", "report", "1", "", "5"}, "\n") + "\n"
	out, err := execute(t, input, "menu", "--config", cfg, "--volume", root)
	require.NoError(t, err)

	assert.Contains(t, out, "2. All drives")
	assert.Contains(t, out, filepath.Join(root, "report.txt"))
	assert.Contains(t, out, "No files deleted.")
	assert.Contains(t, out, "Exiting...")
}

func TestMenuBadChoices(t *testing.T) {
	root, cfg := testEnv(t)

	input := strings.Join([]string{"9", "2", "report", "7", "4", filepath.Join(root, "docs"), "5"}, "\n") + "\n"
	out, err := execute(t, input, "menu", "--config", cfg, "--volume", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Invalid option.")
	assert.Contains(t, out, "Invalid drive selection.")
	assert.Contains(t, out, "File not found or invalid path.")
}

func TestMenuEndsOnEOF(t *testing.T) {
	root, cfg := testEnv(t)
	_, err := execute(t, "", "menu", "--config", cfg, "--volume", root)
	assert.NoError(t, err)
}

func TestStartupFromConfig(t *testing.T) {
	_, _ = testEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "OneDrive.lnk"), nil, 0644))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("startup_dir: "+dir+"\n"), 0644))

	out, err := execute(t, "", "startup", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "- OneDrive.lnk")

	require.NoError(t, os.WriteFile(cfgPath, []byte("startup_dir: "+filepath.Join(dir, "gone")+"\n"), 0644))
	out, err = execute(t, "", "startup", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Startup folder not found.")
}

func TestVolumes(t *testing.T) {
	_, cfg := testEnv(t)
	out, err := execute(t, "", "volumes", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "PATH")
}

func TestBadKindFlag(t *testing.T) {
	root, cfg := testEnv(t)
	_, err := execute(t, "", "scan", "x", "--kind", "socket", "--config", cfg, "--volume", root)
	assert.ErrorContains(t, err, "unknown match kind")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "3.0 GiB", formatBytes(3<<30))
}

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "short", truncateMiddle("short", 10))
	assert.Equal(t, "abc...xyz", truncateMiddle("abcdefghijklmnopqrstuvwxyz", 9))
}

func TestPrintFrozenFillsMissedMatches(t *testing.T) {
	set := &core.ResultSet{
		State: core.StateCancelled,
		Matches: []model.Match{
			{Path: "/a/one.log", Kind: model.KindFile},
			{Path: "/a/two.log", Kind: model.KindFile},
			{Path: "/a/three.log", Kind: model.KindFile},
		},
	}

	var out bytes.Buffer
	printFrozen(newConsole(&out, strings.NewReader("")), set, 1)
	assert.Contains(t, out.String(), "   1. /a/one.log")
	assert.Contains(t, out.String(), "   2. /a/two.log")
	assert.Contains(t, out.String(), "   3. /a/three.log")

	out.Reset()
	printFrozen(newConsole(&out, strings.NewReader("")), set, 3)
	assert.Empty(t, out.String(), "nothing to add when every match was shown")
}
