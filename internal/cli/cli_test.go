package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templatehub/internal/catalog"
	"templatehub/internal/catalog/models"
	"templatehub/internal/config"
)

func testdataDir() string {
	wd, _ := os.Getwd()
	return filepath.Join(wd, "..", "..", "testdata")
}

func testEnv(root string) (Env, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := Env{
		Config: &config.Config{ContentDir: root, Addr: config.DefaultAddr},
		Store:  catalog.NewStore(root, catalog.Options{}),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return env, &stdout, &stderr
}

func fixtureEnv() (Env, *bytes.Buffer, *bytes.Buffer) {
	return testEnv(filepath.Join(testdataDir(), "content"))
}

func TestList(t *testing.T) {
	env, stdout, _ := fixtureEnv()

	code := Run(context.Background(), []string{"list"}, env)
	require.Equal(t, 0, code)

	out := stdout.String()
	for _, want := range []string{"AI Chatbot", "Beginner Guide", "Landing Page", "Next.js Starter", "Showing 4 of 4"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "rust", "unknown tags are never shown")
}

func TestList_TagFilter(t *testing.T) {
	env, stdout, _ := fixtureEnv()

	code := Run(context.Background(), []string{"list", "-tag", "ts"}, env)
	require.Equal(t, 0, code)

	out := stdout.String()
	assert.Contains(t, out, "AI Chatbot")
	assert.Contains(t, out, "Next.js Starter")
	assert.NotContains(t, out, "Beginner Guide")
	assert.Contains(t, out, "Showing 2 of 4")
}

func TestList_NoMatches(t *testing.T) {
	env, stdout, _ := fixtureEnv()

	code := Run(context.Background(), []string{"list", "-tag", "ts,beginner"}, env)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "No templates match these filters")
}

func TestList_UnknownTagWarns(t *testing.T) {
	env, stdout, stderr := fixtureEnv()

	code := Run(context.Background(), []string{"list", "-tag", "rust"}, env)
	require.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), `ignoring unknown tag "rust"`)
	assert.Contains(t, stdout.String(), "Showing 4 of 4")
}

func TestList_JSONWithQuery(t *testing.T) {
	env, stdout, _ := fixtureEnv()

	code := Run(context.Background(), []string{"list", "-json", "-q", "next"}, env)
	require.Equal(t, 0, code)

	var entries []models.Entry
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "nextjs-starter", entries[0].Slug)
}

func TestList_EmptyRoot(t *testing.T) {
	env, stdout, _ := testEnv(t.TempDir())

	code := Run(context.Background(), []string{"list"}, env)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "No templates yet")

	stdout.Reset()
	code = Run(context.Background(), []string{"list", "-json"}, env)
	require.Equal(t, 0, code)
	assert.JSONEq(t, "[]", stdout.String())
}

func TestList_MissingRoot(t *testing.T) {
	env, _, stderr := testEnv(filepath.Join(t.TempDir(), "missing"))

	code := Run(context.Background(), []string{"list"}, env)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error:")
}

func TestShow(t *testing.T) {
	env, stdout, _ := fixtureEnv()

	code := Run(context.Background(), []string{"show", "nextjs-starter"}, env)
	require.Equal(t, 0, code)

	out := stdout.String()
	for _, want := range []string{"Next.js Starter", "Date: Jan 15, 2025", "Tags: TypeScript, Full Stack, Open Source", "Cover: /images/nextjs-starter.png", "Everything you need"} {
		assert.Contains(t, out, want)
	}
}

func TestShow_HTML(t *testing.T) {
	env, stdout, _ := fixtureEnv()

	code := Run(context.Background(), []string{"show", "-html", "nextjs-starter"}, env)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "<h1")
}

func TestShow_UnknownSlug(t *testing.T) {
	env, stdout, stderr := fixtureEnv()

	code := Run(context.Background(), []string{"show", "marketing-landing"}, env)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "not found")
}

func TestShow_MissingArgument(t *testing.T) {
	env, _, stderr := fixtureEnv()

	code := Run(context.Background(), []string{"show"}, env)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Usage: templatehub show")
}

func TestTags(t *testing.T) {
	env, stdout, _ := fixtureEnv()

	code := Run(context.Background(), []string{"tags"}, env)
	require.Equal(t, 0, code)

	out := stdout.String()
	for _, want := range []string{"ts", "TypeScript", "dev-edition", "AI/ML", "Perfect for beginners"} {
		assert.Contains(t, out, want)
	}
}

func TestHelpAndUnknown(t *testing.T) {
	env, stdout, stderr := fixtureEnv()

	assert.Equal(t, 0, Run(context.Background(), []string{"help"}, env))
	assert.Contains(t, stdout.String(), "Usage: templatehub")

	assert.Equal(t, 1, Run(context.Background(), []string{"frobnicate"}, env))
	assert.Contains(t, stderr.String(), "Unknown command: frobnicate")
}

func TestServe_BadFlag(t *testing.T) {
	env, _, stderr := fixtureEnv()

	code := Run(context.Background(), []string{"serve", "-nope"}, env)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "flag provided but not defined")
}

func TestServe_StopsWithContext(t *testing.T) {
	env, _, _ := fixtureEnv()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := Run(ctx, []string{"serve", "-addr", "127.0.0.1:0"}, env)
	assert.Equal(t, 0, code)
}
