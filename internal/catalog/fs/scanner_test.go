package fs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"templatehub/internal/errors"
)

func testdataDir() string {
	wd, _ := os.Getwd()
	return filepath.Join(wd, "..", "..", "..", "testdata")
}

func TestScanContentDir_FindsUnits(t *testing.T) {
	units, err := ScanContentDir(filepath.Join(testdataDir(), "content"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var slugs []string
	for _, u := range units {
		slugs = append(slugs, u.Slug)
		if u.Path == "" {
			t.Errorf("unit %q has no markdown file", u.Name)
		}
		if !filepath.IsAbs(u.Path) {
			t.Errorf("unit %q path is not absolute: %s", u.Name, u.Path)
		}
	}
	sort.Strings(slugs)

	expected := []string{"ai-chatbot", "beginner-guide", "landing-page", "nextjs-starter"}
	if len(slugs) != len(expected) {
		t.Fatalf("expected slugs %v, got %v", expected, slugs)
	}
	for i := range expected {
		if slugs[i] != expected[i] {
			t.Errorf("expected slugs %v, got %v", expected, slugs)
			break
		}
	}
}

func TestScanContentDir_PrefersMDXIndex(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "both")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "index.md"), []byte("# md"), 0644)
	os.WriteFile(filepath.Join(dir, "index.mdx"), []byte("# mdx"), 0644)

	units, err := ScanContentDir(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if filepath.Base(units[0].Path) != "index.mdx" {
		t.Errorf("expected index.mdx, got %s", units[0].Path)
	}
}

func TestScanContentDir_DirectoryWithoutIndex(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "empty-template"), 0755)

	units, err := ScanContentDir(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].Path != "" {
		t.Errorf("expected empty path, got %q", units[0].Path)
	}
}

func TestScanContentDir_EmptyRoot(t *testing.T) {
	units, err := ScanContentDir(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 0 {
		t.Errorf("expected no units, got %d", len(units))
	}
}

func TestScanContentDir_MissingRoot(t *testing.T) {
	_, err := ScanContentDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !errors.Is(err, errors.ErrContentUnavailable) {
		t.Errorf("expected CONTENT_UNAVAILABLE, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected cause to be os.ErrNotExist, got %v", err)
	}
}

func TestScanContentDir_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content")
	os.WriteFile(path, []byte("x"), 0644)

	_, err := ScanContentDir(path)
	if !errors.Is(err, errors.ErrContentUnavailable) {
		t.Errorf("expected CONTENT_UNAVAILABLE, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"nextjs-starter":  "nextjs-starter",
		"Next.js Starter": "next-js-starter",
		"Café Blog":       "cafe-blog",
		"--AI__Chat--":    "ai-chat",
		"日本語":             "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q): expected %q, got %q", in, want, got)
		}
	}

	if got := SlugFromName("日本語"); got != "日本語" {
		t.Errorf("expected raw name fallback, got %q", got)
	}
}
