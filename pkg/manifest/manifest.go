// Package manifest reads the result JSON exported by
// PixivBatchDownloader and normalizes it into a series model.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Gavin1937/pbd-epub-builder/pkg/data"
)

// Sentinel errors for manifest extraction.
var (
	ErrNoEntries = errors.New("manifest contains no entries")
	ErrNoNovels  = errors.New("manifest contains no novel entries")
)

// ID accepts the number-or-string ids the exporter emits. Null decodes
// to zero.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = 0
		return nil
	}
	s := string(b)
	if s[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", s, err)
	}
	*id = ID(v)
	return nil
}

// Entry is one element of the exporter's result array.
type Entry struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	User        string     `json:"user"`
	UserID      ID         `json:"userId"`
	SeriesID    ID         `json:"seriesId"`
	SeriesTitle string     `json:"seriesTitle"`
	NovelMeta   *NovelMeta `json:"novelMeta"`
}

// NovelMeta carries the per-novel metadata the exporter attaches to
// novel downloads.
type NovelMeta struct {
	ID             ID                `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	CoverURL       string            `json:"coverUrl"`
	EmbeddedImages map[string]string `json:"embeddedImages"`
}

// ToNovel converts the exporter metadata into the domain model,
// deriving the file names the downloader saved images under.
func (m *NovelMeta) ToNovel() *data.Novel {
	novel := &data.Novel{
		ID:          int64(m.ID),
		Title:       m.Title,
		Description: m.Description,
		CoverFile:   fmt.Sprintf("%d.%s", int64(m.ID), fileExt(m.CoverURL)),
	}
	if len(m.EmbeddedImages) > 0 {
		novel.EmbeddedFiles = make(map[string]string, len(m.EmbeddedImages))
		for marker, url := range m.EmbeddedImages {
			novel.EmbeddedFiles[marker] = fmt.Sprintf("%d-%s.%s", int64(m.ID), marker, fileExt(url))
		}
	}
	return novel
}

// Load reads one or more manifest files and merges their entries in
// argument order. Series metadata comes from the first entry.
func Load(paths ...string) (*data.Series, error) {
	var entries []Entry
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest: %w", err)
		}
		var part []Entry
		if err := json.Unmarshal(raw, &part); err != nil {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
		}
		entries = append(entries, part...)
	}
	return Extract(entries)
}

// Extract normalizes merged entries into a series. A standalone novel
// (null seriesId) borrows its own id and title as series metadata.
func Extract(entries []Entry) (*data.Series, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	first := entries[0]
	series := &data.Series{
		ID:     int64(first.SeriesID),
		Title:  first.SeriesTitle,
		Author: first.User,
	}
	if series.ID == 0 {
		series.ID = int64(first.ID)
	}
	if series.Title == "" {
		series.Title = first.Title
	}

	seen := make(map[int64]bool)
	for _, entry := range entries {
		if entry.NovelMeta == nil {
			continue
		}
		novel := entry.NovelMeta.ToNovel()
		if seen[novel.ID] {
			continue
		}
		seen[novel.ID] = true
		series.Novels = append(series.Novels, novel)
	}
	if len(series.Novels) == 0 {
		return nil, ErrNoNovels
	}

	sort.Slice(series.Novels, func(i, j int) bool {
		return series.Novels[i].ID < series.Novels[j].ID
	})

	return series, nil
}

// Discovered pairs a manifest file with the series it describes.
type Discovered struct {
	Path   string
	Series *data.Series
}

// Discover scans a directory for JSON files that parse as manifests.
// Files that are not manifests are skipped.
func Discover(dir string) ([]Discovered, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var found []Discovered
	for _, path := range matches {
		series, err := Load(path)
		if err != nil {
			continue
		}
		found = append(found, Discovered{Path: path, Series: series})
	}
	return found, nil
}

// fileExt mirrors the exporter's naming: everything after the last
// dot of the source URL.
func fileExt(url string) string {
	if i := strings.LastIndex(url, "."); i >= 0 {
		return url[i+1:]
	}
	return url
}
