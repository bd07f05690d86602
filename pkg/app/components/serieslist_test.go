package components

import (
	"strings"
	"testing"
	"time"

	"github.com/Gavin1937/pbd-epub-builder/pkg/data"
)

func testItems() []SeriesListItem {
	return []SeriesListItem{
		{
			Path: "a.json",
			Series: &data.Series{
				ID:     1,
				Title:  "Alpha",
				Author: "author-a",
				Novels: []*data.Novel{{ID: 1}},
			},
		},
		{
			Path: "b.json",
			Series: &data.Series{
				ID:     2,
				Title:  "Beta",
				Author: "author-b",
				Novels: []*data.Novel{{ID: 2}, {ID: 3}},
			},
			Built: &data.Book{
				SeriesID: 2,
				BuiltAt:  time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
			},
		},
	}
}

func TestSeriesListNavigation(t *testing.T) {
	list := NewSeriesList()
	list.SetItems(testItems())

	if list.Selected().Series.Title != "Alpha" {
		t.Errorf("Expected Alpha selected first, got %s", list.Selected().Series.Title)
	}

	list.Next()
	if list.Selected().Series.Title != "Beta" {
		t.Errorf("Expected Beta after Next, got %s", list.Selected().Series.Title)
	}

	// Wraps around
	list.Next()
	if list.Selected().Series.Title != "Alpha" {
		t.Errorf("Expected wrap to Alpha, got %s", list.Selected().Series.Title)
	}

	list.Prev()
	if list.Selected().Series.Title != "Beta" {
		t.Errorf("Expected wrap back to Beta, got %s", list.Selected().Series.Title)
	}
}

func TestSeriesListEmpty(t *testing.T) {
	list := NewSeriesList()

	if list.Selected() != nil {
		t.Error("Expected nil selection on empty list")
	}

	// Navigation on an empty list must not panic
	list.Next()
	list.Prev()

	view := list.View()
	if !strings.Contains(view, "No series manifests") {
		t.Errorf("Expected empty message, got:\n%s", view)
	}
}

func TestSeriesListSetItemsClampsSelection(t *testing.T) {
	list := NewSeriesList()
	list.SetItems(testItems())
	list.Next()

	list.SetItems(testItems()[:1])
	if list.SelectedIndex != 0 {
		t.Errorf("Expected selection clamped to 0, got %d", list.SelectedIndex)
	}

	list.SetItems(nil)
	if list.SelectedIndex != 0 {
		t.Errorf("Expected selection reset on empty items, got %d", list.SelectedIndex)
	}
}

func TestSeriesListView(t *testing.T) {
	list := NewSeriesList()
	list.SetItems(testItems())

	view := list.View()

	for _, want := range []string{"Alpha", "Beta", "author-a", "Novels: 2", "Not built", "Built 2025-06-01"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}
