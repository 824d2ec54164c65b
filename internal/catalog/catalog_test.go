package catalog

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templatehub/internal/errors"
)

func testdataDir() string {
	wd, _ := os.Getwd()
	return filepath.Join(wd, "..", "..", "testdata")
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func writeUnit(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte(content), 0o644))
}

func unitContent(title string) string {
	return "---\ntitle: " + title + "\ndescription: A template.\ntags: [ts]\n---\n\nBody.\n"
}

func TestLoad_Fixtures(t *testing.T) {
	var logs bytes.Buffer
	c, err := Load(filepath.Join(testdataDir(), "content"), Options{Logger: testLogger(&logs)})
	require.NoError(t, err)

	assert.Equal(t, 4, c.Len())
	assert.Empty(t, c.Skipped())

	doc, err := c.Resolve("nextjs-starter")
	require.NoError(t, err)
	assert.Equal(t, "Next.js Starter", doc.Title)
	assert.Contains(t, doc.HTML, "<h1")

	assert.Contains(t, logs.String(), "frontmatter slug ignored")
	_, err = c.Resolve("marketing-landing")
	assert.True(t, errors.Is(err, errors.ErrNotFound), "declared slug must not be routable")
}

func TestLoad_EntriesMatchResolve(t *testing.T) {
	c, err := Load(filepath.Join(testdataDir(), "content"), Options{Logger: testLogger(&bytes.Buffer{})})
	require.NoError(t, err)

	for _, e := range c.Entries() {
		doc, err := c.Resolve(e.Slug)
		require.NoError(t, err, "slug %q", e.Slug)
		assert.Equal(t, e.Title, doc.Title)
		assert.Equal(t, e.Path, doc.Path)
	}
}

func TestLoad_EmptyRoot(t *testing.T) {
	c, err := Load(t.TempDir(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Entries())
}

func TestLoad_MissingRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrContentUnavailable))
}

func TestLoad_SkipMalformed(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "good", unitContent("Good"))
	writeUnit(t, root, "bad", "---\ntitle: [broken\n---\n")

	var logs bytes.Buffer
	c, err := Load(root, Options{Policy: SkipMalformed, Logger: testLogger(&logs)})
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"bad"}, c.Skipped())
	assert.Contains(t, logs.String(), "skipping content unit")

	_, err = c.Resolve("bad")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestLoad_Strict(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "good", unitContent("Good"))
	writeUnit(t, root, "bad", "---\ntitle: [broken\n---\n")

	_, err := Load(root, Options{Policy: Strict})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedContent))
}

func TestLoad_DuplicateSlug(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "My Template", unitContent("From dir"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "my-template.md"), []byte(unitContent("From file")), 0o644))

	c, err := Load(root, Options{Logger: testLogger(&bytes.Buffer{})})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Len(t, c.Skipped(), 1)

	_, err = Load(root, Options{Policy: Strict})
	assert.True(t, errors.Is(err, errors.ErrMalformedContent))
}

func TestResolve_Unknown(t *testing.T) {
	c, err := Load(filepath.Join(testdataDir(), "content"), Options{Logger: testLogger(&bytes.Buffer{})})
	require.NoError(t, err)

	_, err = c.Resolve("does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestEntries_ReturnsCopy(t *testing.T) {
	c, err := Load(filepath.Join(testdataDir(), "content"), Options{Logger: testLogger(&bytes.Buffer{})})
	require.NoError(t, err)

	entries := c.Entries()
	entries[0].Title = "mutated"
	assert.NotEqual(t, "mutated", c.Entries()[0].Title)
}

func TestStore_CachesUntilInvalidated(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "one", unitContent("One"))

	s := NewStore(root, Options{Logger: testLogger(&bytes.Buffer{})})
	first, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())

	writeUnit(t, root, "two", unitContent("Two"))

	cached, err := s.Get()
	require.NoError(t, err)
	assert.Same(t, first, cached, "Get must not rescan the filesystem")
	assert.Equal(t, 1, cached.Len())

	reloaded, err := s.Reload()
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())
}

func TestStore_FailedLoadIsNotCached(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	s := NewStore(root, Options{})

	_, err := s.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrContentUnavailable))

	writeUnit(t, root, "one", unitContent("One"))

	c, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestStore_WatchInvalidates(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "one", unitContent("One"))

	s := NewStore(root, Options{Logger: testLogger(&bytes.Buffer{})})
	first, err := s.Get()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx, 20*time.Millisecond))

	writeUnit(t, root, "two", unitContent("Two"))

	assert.Eventually(t, func() bool {
		c, err := s.Get()
		return err == nil && c != first && c.Len() == 2
	}, 3*time.Second, 25*time.Millisecond)
}

func TestStore_WatchMissingRoot(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing"), Options{})
	err := s.Watch(context.Background(), 0)
	assert.Error(t, err)
}
