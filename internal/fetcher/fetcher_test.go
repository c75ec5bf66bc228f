package fetcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guizot/tech-news-digest/internal/model"
)

var testNow = time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

type fakeSource struct {
	name  string
	items []model.Item
	err   error
}

func (s fakeSource) Name() string { return s.name }

func (s fakeSource) Fetch(_ context.Context) ([]model.Item, error) {
	return s.items, s.err
}

func newTestFetcher(sources []Source, keywords []string) *Fetcher {
	f := New(sources, 24*time.Hour, 25, keywords)
	f.now = func() time.Time { return testNow }
	return f
}

func item(title, link string, age time.Duration) model.Item {
	return model.Item{
		Title: title,
		Link:  link,
		Date:  testNow.Add(-age),
	}
}

func TestFetchExcludesItemsOlderThanWindow(t *testing.T) {
	src := fakeSource{name: "blog", items: []model.Item{
		item("fresh", "https://example.com/1", time.Hour),
		item("stale", "https://example.com/2", 25*time.Hour),
		item("boundary", "https://example.com/3", 23*time.Hour),
	}}

	items, err := newTestFetcher([]Source{src}, nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items inside the window, got %d", len(items))
	}
	for _, it := range items {
		if it.Title == "stale" {
			t.Error("item older than the window must be excluded")
		}
	}
}

func TestFetchDropsUndatedItems(t *testing.T) {
	src := fakeSource{name: "blog", items: []model.Item{
		{Title: "undated", Link: "https://example.com/1"},
		item("dated", "https://example.com/2", time.Hour),
	}}

	items, err := newTestFetcher([]Source{src}, nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "dated" {
		t.Fatalf("expected only the dated item, got %v", items)
	}
}

func TestFetchSkipsFailingSource(t *testing.T) {
	sources := []Source{
		fakeSource{name: "broken", err: errors.New("connection refused")},
		fakeSource{name: "working", items: []model.Item{
			item("survivor", "https://example.com/1", time.Hour),
		}},
	}

	items, err := newTestFetcher(sources, nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("a failing source must not fail the run: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item from the working source, got %d", len(items))
	}
}

func TestFetchThreeFeedsOneWithItems(t *testing.T) {
	withItems := make([]model.Item, 0, 5)
	for i := 0; i < 5; i++ {
		withItems = append(withItems, item(
			"story "+string(rune('a'+i)),
			"https://example.com/"+string(rune('a'+i)),
			time.Duration(i)*time.Hour,
		))
	}
	sources := []Source{
		fakeSource{name: "busy", items: withItems},
		fakeSource{name: "quiet1"},
		fakeSource{name: "quiet2"},
	}

	items, err := newTestFetcher(sources, nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
}

func TestFetchSortsNewestFirst(t *testing.T) {
	src := fakeSource{name: "blog", items: []model.Item{
		item("old", "https://example.com/1", 10*time.Hour),
		item("newest", "https://example.com/2", time.Hour),
		item("middle", "https://example.com/3", 5*time.Hour),
	}}

	items, _ := newTestFetcher([]Source{src}, nil).Fetch(context.Background())
	if items[0].Title != "newest" || items[2].Title != "old" {
		t.Errorf("items out of order: %v, %v, %v", items[0].Title, items[1].Title, items[2].Title)
	}
}

func TestFetchDeduplicatesAcrossSources(t *testing.T) {
	sources := []Source{
		fakeSource{name: "a", items: []model.Item{
			item("Same Story", "https://example.com/story?utm_source=a", 2*time.Hour),
		}},
		fakeSource{name: "b", items: []model.Item{
			item("same story", "https://example.com/story?ref=b", time.Hour),
		}},
	}

	items, _ := newTestFetcher(sources, nil).Fetch(context.Background())
	if len(items) != 1 {
		t.Fatalf("expected query-string variants to deduplicate, got %d items", len(items))
	}
	if items[0].Link != "https://example.com/story" {
		t.Errorf("link should have its query stripped: %q", items[0].Link)
	}
	// the newer copy wins
	if items[0].Date != testNow.Add(-time.Hour) {
		t.Errorf("dedup kept the older copy: %v", items[0].Date)
	}
}

func TestFetchCapsAtMaxArticles(t *testing.T) {
	var many []model.Item
	for i := 0; i < 40; i++ {
		many = append(many, item(
			"story", "https://example.com/"+string(rune('a'+i)),
			time.Duration(i)*time.Minute,
		))
	}

	f := New([]Source{fakeSource{name: "busy", items: many}}, 24*time.Hour, 25, nil)
	f.now = func() time.Time { return testNow }

	items, _ := f.Fetch(context.Background())
	if len(items) != 25 {
		t.Fatalf("expected cap at 25 items, got %d", len(items))
	}
	// cap keeps the newest items
	if items[0].Date != testNow {
		t.Errorf("cap dropped the newest item")
	}
}

func TestFetchFilterKeywords(t *testing.T) {
	src := fakeSource{name: "blog", items: []model.Item{
		item("Sponsored: buy now", "https://example.com/1", time.Hour),
		{
			Title:      "Categorized",
			Link:       "https://example.com/2",
			Categories: []string{"sponsored"},
			Date:       testNow.Add(-time.Hour),
		},
		item("Regular news", "https://example.com/3", time.Hour),
	}}

	items, _ := newTestFetcher([]Source{src}, []string{"sponsored"}).Fetch(context.Background())
	if len(items) != 1 || items[0].Title != "Regular news" {
		t.Fatalf("keyword filter should keep only regular news, got %v", items)
	}
}

func TestFetchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := fakeSource{name: "blog", items: []model.Item{
		item("story", "https://example.com/1", time.Hour),
	}}
	if _, err := newTestFetcher([]Source{src}, nil).Fetch(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestStableID(t *testing.T) {
	a := stableID("Title", "https://example.com/x?utm=1")
	b := stableID("title", "https://example.com/x")
	if a != b {
		t.Error("case and query string must not affect the ID")
	}
	if len(a) != 16 {
		t.Errorf("ID length = %d, want 16", len(a))
	}
	if c := stableID("other", "https://example.com/x"); c == a {
		t.Error("different titles must produce different IDs")
	}
}
