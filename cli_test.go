package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_ThemeSetPersistsForRender(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "local.db"))

	out, err := runCLI(t, "theme", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "system")

	out, err = runCLI(t, "theme", "set", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")

	out, err = runCLI(t, "theme", "get")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "preference:") && strings.Contains(out, "dark"), out)

	page := filepath.Join(dir, "index.html")
	_, err = runCLI(t, "render", "-o", page)
	require.NoError(t, err)

	f, err := os.Open(page)
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	assert.True(t, doc.Find("html").HasClass("dark"))
	assert.Equal(t, "dark", doc.Find("html").AttrOr("data-theme", ""))
}

func TestCLI_RenderOverrideIsNotStored(t *testing.T) {
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "local.db"))

	out, err := runCLI(t, "render", "--theme", "dark")
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.True(t, doc.Find("html").HasClass("dark"))

	out, err = runCLI(t, "theme", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "system")
}

func TestCLI_RejectsUnknownTheme(t *testing.T) {
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "local.db"))

	for _, value := range []string{"sepia", "DARK"} {
		_, err := runCLI(t, "theme", "set", value)
		assert.Error(t, err, "value %q", value)
	}

	_, err := runCLI(t, "render", "--theme", "sepia")
	assert.Error(t, err)
}
