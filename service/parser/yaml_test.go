package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocale(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestYamlLoad(t *testing.T) {
	root := t.TempDir()
	c := model.Component{ID: 1, ProjectSlug: "docs", Slug: "website"}
	dir := filepath.Join(root, "docs", "website", "locale")
	writeLocale(t, dir, "source.yml", "greeting: Hello\nfarewell: Bye\n")
	writeLocale(t, dir, "de.yml", "greeting: Hallo\nfarewell: \"\"\n")

	p := NewYaml(model.FilePath(root))
	units, err := p.Load(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, units, 4)

	byKey := make(map[string]model.Unit)
	for _, u := range units {
		byKey[u.Language+"/"+u.IDHash] = u
	}

	src := byKey["/greeting"]
	assert.Equal(t, "Hello", src.Source)
	assert.Empty(t, src.Target)
	assert.False(t, src.Translated)

	de := byKey["de/greeting"]
	assert.Equal(t, "Hallo", de.Target)
	assert.Equal(t, "Hello", de.Source, "the source text must be backfilled")
	assert.True(t, de.Translated)

	empty := byKey["de/farewell"]
	assert.False(t, empty.Translated, "an empty target is untranslated")
}

func TestYamlLoadNoFiles(t *testing.T) {
	root := t.TempDir()
	p := NewYaml(model.FilePath(root))
	units, err := p.Load(context.Background(), model.Component{ID: 1, ProjectSlug: "docs", Slug: "website"})
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestYamlLoadMalformed(t *testing.T) {
	root := t.TempDir()
	c := model.Component{ID: 1, ProjectSlug: "docs", Slug: "website"}
	dir := filepath.Join(root, "docs", "website", "locale")
	writeLocale(t, dir, "de.yml", "greeting: [unclosed\n")

	p := NewYaml(model.FilePath(root))
	_, err := p.Load(context.Background(), c)
	require.ErrorIs(t, err, model.ErrParse)
}
