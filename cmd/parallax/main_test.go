package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/parallax/internal/export"
	"github.com/san-kum/parallax/internal/scene"
	"github.com/san-kum/parallax/internal/storage"
	"github.com/san-kum/parallax/internal/sweep"
	"github.com/san-kum/parallax/internal/viz"
)

func saveMinimalRun(t *testing.T, dir string) string {
	t.Helper()
	res, err := sweep.New(scene.Minimal(), nil).Run(context.Background(), sweep.Config{From: 0, To: 2000, Step: 500})
	require.NoError(t, err)

	st := storage.New(dir)
	require.NoError(t, st.Init())
	runID, err := st.Save(res)
	require.NoError(t, err)
	return runID
}

func TestExportSVGTheme(t *testing.T) {
	dir := t.TempDir()
	runID := saveMinimalRun(t, dir)
	out := filepath.Join(dir, "chart.svg")

	root := newRootCmd()
	root.SetArgs([]string{"--data", dir, "export-svg", runID, "--theme", "ocean", "-o", out})
	require.NoError(t, root.Execute())

	table, err := storage.New(dir).LoadTable(runID)
	require.NoError(t, err)
	want := export.Palette(string(viz.ThemeOcean.LayerFrom), string(viz.ThemeOcean.LayerTo), len(table.Columns))
	other := export.Palette(string(viz.ThemeCyberpunk.LayerFrom), string(viz.ThemeCyberpunk.LayerTo), len(table.Columns))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(data)
	require.Contains(t, svg, `stroke="`+want[0]+`"`)
	require.Contains(t, svg, `stroke="`+want[len(want)-1]+`"`)
	require.False(t, strings.Contains(svg, `stroke="`+other[0]+`"`))
}

func TestExportSVGRegistersTheme(t *testing.T) {
	cmd, _, err := newRootCmd().Find([]string{"export-svg"})
	require.NoError(t, err)
	require.NotNil(t, cmd.Flags().Lookup("theme"))
}
