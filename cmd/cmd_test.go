package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teksttv-audit/cmd"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := cmd.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDiffCommand_Edited(t *testing.T) {
	out, err := execute(t, "diff", "Kop - de kat zit op de mat", "de hond zit op de mat")
	require.NoError(t, err)

	assert.Contains(t, out, "AI Written, Edited")
	assert.Contains(t, out, "Before: de [-kat-] zit op de mat")
	assert.Contains(t, out, "After:  de {+hond+} zit op de mat")
}

func TestDiffCommand_HTML(t *testing.T) {
	out, err := execute(t, "diff", "--html", "a <b>", "a c")
	require.NoError(t, err)

	assert.Contains(t, out, "<del class='text-red-500 line-through'>&lt;b&gt;</del>")
	assert.Contains(t, out, "<ins class='text-green-600 bg-green-100'>c</ins>")
}

func TestDiffCommand_Unedited(t *testing.T) {
	out, err := execute(t, "diff", "  zelfde tekst ", "zelfde tekst")
	require.NoError(t, err)

	assert.Contains(t, out, "AI Written, Not Edited")
	assert.NotContains(t, out, "Before:")
}

func TestDiffCommand_Files(t *testing.T) {
	dir := t.TempDir()
	ai := filepath.Join(dir, "ai.txt")
	human := filepath.Join(dir, "human.txt")
	require.NoError(t, os.WriteFile(ai, []byte("er is brand\n"), 0644))
	require.NoError(t, os.WriteFile(human, []byte("er is grote brand\n"), 0644))

	out, err := execute(t, "diff", "--files", ai, human)
	require.NoError(t, err)
	assert.Contains(t, out, "{+grote+}")

	_, err = execute(t, "diff", "--files", filepath.Join(dir, "missing.txt"), human)
	assert.Error(t, err)
}

func TestDiffCommand_Args(t *testing.T) {
	_, err := execute(t, "diff", "alleen een")
	assert.Error(t, err)
}

func TestAuditCommand_MissingConfig(t *testing.T) {
	_, err := execute(t, "audit", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAuditCommand_InvalidFlags(t *testing.T) {
	_, err := execute(t, "audit", "--period", "2024-13")
	assert.Error(t, err)

	_, err = execute(t, "audit", "--all", "--period", "2024-05")
	assert.Error(t, err)
}

func TestAuditCommand_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audit:\n  workers: 0\n"), 0644))

	_, err := execute(t, "audit", "-c", path)
	assert.Error(t, err)
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := cmd.NewRootCommand()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"audit", "periods", "diff", "history"})
}
