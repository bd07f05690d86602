package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

const seriesManifest = `[
	{
		"id": "201",
		"title": "Episode Two",
		"user": "author-san",
		"userId": "99",
		"seriesId": "1000",
		"seriesTitle": "My Series",
		"novelMeta": {
			"id": "201",
			"title": "Episode Two",
			"description": "second",
			"coverUrl": "https://i.pximg.net/img/201_cover.jpg",
			"embeddedImages": null
		}
	},
	{
		"id": "105",
		"title": "Episode One",
		"user": "author-san",
		"userId": "99",
		"seriesId": "1000",
		"seriesTitle": "My Series",
		"novelMeta": {
			"id": "105",
			"title": "Episode One",
			"description": "first",
			"coverUrl": "https://i.pximg.net/img/105_cover.png",
			"embeddedImages": {
				"3": "https://i.pximg.net/img/inline3.png",
				"12": "https://i.pximg.net/img/inline12.jpg"
			}
		}
	}
]`

func TestLoadSeries(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "series.json", seriesManifest)

	series, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), series.ID)
	assert.Equal(t, "My Series", series.Title)
	assert.Equal(t, "author-san", series.Author)
	require.Len(t, series.Novels, 2)

	// Sorted by ascending novel id, not input order.
	assert.Equal(t, int64(105), series.Novels[0].ID)
	assert.Equal(t, int64(201), series.Novels[1].ID)

	first := series.Novels[0]
	assert.Equal(t, "Episode One", first.Title)
	assert.Equal(t, "first", first.Description)
	assert.Equal(t, "105.png", first.CoverFile)
	assert.Equal(t, map[string]string{
		"3":  "105-3.png",
		"12": "105-12.jpg",
	}, first.EmbeddedFiles)

	second := series.Novels[1]
	assert.Equal(t, "201.jpg", second.CoverFile)
	assert.Nil(t, second.EmbeddedFiles)
}

func TestExtractStandaloneNovelFallback(t *testing.T) {
	entries := []Entry{
		{
			ID:          42,
			Title:       "One Shot",
			User:        "someone",
			SeriesID:    0,
			SeriesTitle: "",
			NovelMeta: &NovelMeta{
				ID:       42,
				Title:    "One Shot",
				CoverURL: "https://example.com/42.jpg",
			},
		},
	}

	series, err := Extract(entries)
	require.NoError(t, err)

	// A standalone novel borrows its own id and title.
	assert.Equal(t, int64(42), series.ID)
	assert.Equal(t, "One Shot", series.Title)
	require.Len(t, series.Novels, 1)
}

func TestExtractSkipsEntriesWithoutNovelMeta(t *testing.T) {
	entries := []Entry{
		{ID: 1, Title: "not a novel", User: "u", SeriesID: 5, SeriesTitle: "S"},
		{ID: 2, Title: "novel", User: "u", SeriesID: 5, SeriesTitle: "S",
			NovelMeta: &NovelMeta{ID: 2, Title: "novel", CoverURL: "x.png"}},
	}

	series, err := Extract(entries)
	require.NoError(t, err)
	require.Len(t, series.Novels, 1)
	assert.Equal(t, int64(2), series.Novels[0].ID)
}

func TestExtractDeduplicatesNovels(t *testing.T) {
	meta := &NovelMeta{ID: 7, Title: "dup", CoverURL: "7.png"}
	entries := []Entry{
		{ID: 7, User: "u", SeriesID: 1, SeriesTitle: "S", NovelMeta: meta},
		{ID: 7, User: "u", SeriesID: 1, SeriesTitle: "S", NovelMeta: meta},
	}

	series, err := Extract(entries)
	require.NoError(t, err)
	assert.Len(t, series.Novels, 1)
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract(nil)
	assert.ErrorIs(t, err, ErrNoEntries)

	_, err = Extract([]Entry{{ID: 1, Title: "x", User: "u"}})
	assert.ErrorIs(t, err, ErrNoNovels)
}

func TestLoadMergesMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeManifest(t, dir, "a.json", `[
		{"id": "10", "title": "A", "user": "u", "seriesId": "1", "seriesTitle": "S",
		 "novelMeta": {"id": "10", "title": "A", "coverUrl": "10.jpg"}}
	]`)
	b := writeManifest(t, dir, "b.json", `[
		{"id": "20", "title": "B", "user": "u", "seriesId": "1", "seriesTitle": "S",
		 "novelMeta": {"id": "20", "title": "B", "coverUrl": "20.jpg"}}
	]`)

	series, err := Load(a, b)
	require.NoError(t, err)
	assert.Len(t, series.Novels, 2)
}

func TestLoadNumericIDs(t *testing.T) {
	dir := t.TempDir()
	// Some exporter versions emit numbers instead of strings.
	path := writeManifest(t, dir, "num.json", `[
		{"id": 10, "title": "A", "user": "u", "seriesId": 3, "seriesTitle": "S",
		 "novelMeta": {"id": 10, "title": "A", "coverUrl": "10.jpg"}}
	]`)

	series, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), series.ID)
	assert.Equal(t, int64(10), series.Novels[0].ID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "series.json", seriesManifest)
	writeManifest(t, dir, "junk.json", `{"not": "a manifest"}`)
	writeManifest(t, dir, "broken.json", `[{`)

	found, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "My Series", found[0].Series.Title)
}

func TestFileExt(t *testing.T) {
	assert.Equal(t, "jpg", fileExt("https://example.com/a/b.c/cover.jpg"))
	assert.Equal(t, "png", fileExt("x.png"))
	assert.Equal(t, "noext", fileExt("noext"))
}
